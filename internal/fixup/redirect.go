// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package fixup

import (
	"go.uber.org/zap"

	"fillmore-labs.com/scopext/ir"
)

// redirectToCaller rewires a marker whose scope chains terminate at caller
// arguments to depend on those arguments directly, so the caller sees the
// dependency without peeking into this function. Additional arguments chain
// through fresh markers threaded into the dependent's uses.
func (f *Fixer) redirectToCaller(m ir.Inst, args []ir.Value) {
	f.log.Debug("redirecting dependency to caller arguments",
		zap.String("function", f.fn.Name), zap.Int("arguments", len(args)))

	f.fn.SetOperand(m, 1, args[0])

	prev := m

	for _, a := range args[1:] {
		dep := f.fn.Result(prev)

		next := f.fn.InsertMarkerAfter(prev, dep, a)

		// Value markers forward the dependent; address markers leave the
		// address in place and only assert the dependency.
		if !f.fn.IsAddress(dep) {
			f.fn.ReplaceUses(dep, f.fn.Result(next), next)
		}

		prev = next
	}
}
