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

import "fillmore-labs.com/scopext/ir"

// normalizeBase looks through compiler-introduced borrows, retargeting the
// marker at the borrowed value itself. Borrows of source-level bindings stay
// in place.
func (f *Fixer) normalizeBase(m ir.Inst, base ir.Value) ir.Value {
	for {
		def := f.fn.Def(base)
		if !def.IsValid() || f.fn.Op(def) != ir.OpBeginBorrow || f.fn.UserVisible(def) {
			return base
		}

		base = f.fn.Operand(def, 0)
		f.fn.SetOperand(m, 1, base)
	}
}
