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
	"slices"

	"fillmore-labs.com/scopext/internal/scope"
	"fillmore-labs.com/scopext/ir"
)

// extension is one nested chain of extendable scopes, innermost first,
// terminated by the owner whose liveness bounds any extension.
type extension struct {
	scopes []scope.Scope
	owner  ir.Value

	// arg is set when the chain terminates at a caller argument the marker
	// may be redirected to.
	arg ir.Value

	// dependsOnCaller is set by the use walk when the marked value escapes
	// to the caller.
	dependsOnCaller bool
}

// gather collects the scope chains enclosing the innermost scope. Coroutine
// scopes fork the chain, one extension per operand the yield depends on.
func gather(fn *ir.Function, sc scope.Scope) []extension {
	var exts []extension

	gatherInto(fn, nil, sc, &exts)

	return exts
}

func gatherInto(fn *ir.Function, chain []scope.Scope, sc scope.Scope, exts *[]extension) {
	switch sc.Kind {
	case scope.KindAccess:
		gatherAccess(fn, chain, sc, exts)

	case scope.KindBorrow, scope.KindInitialized:
		chain = append(chain, sc)
		gatherEnclosing(fn, chain, fn.Operand(sc.Begin, 0), exts)

	case scope.KindYield:
		chain = append(chain, sc)

		deps := fn.CoroutineDeps(sc.Begin)
		if len(deps) == 0 {
			// The yield depends on nothing; the coroutine token itself
			// bounds the chain.
			finish(chain, scope.Scope{Kind: scope.KindBorrowed, Value: fn.Result(sc.Begin)}, exts)

			return
		}

		for _, idx := range deps {
			gatherEnclosing(fn, slices.Clone(chain), fn.Operand(sc.Begin, idx), exts)
		}

	default:
		finish(chain, sc, exts)
	}
}

// gatherAccess walks a stack of nested accesses and projections down to the
// accessed storage.
func gatherAccess(fn *ir.Function, chain []scope.Scope, sc scope.Scope, exts *[]extension) {
	chain = append(chain, sc)

	kind := fn.AccessKindOf(sc.Begin)
	addr := fn.Operand(sc.Begin, 0)

walk:
	for {
		def := fn.Def(addr)
		if !def.IsValid() {
			break
		}

		switch fn.Op(def) {
		case ir.OpBeginAccess:
			chain = append(chain, scope.Scope{Kind: scope.KindAccess, Begin: def})

			if fn.AccessKindOf(def) == ir.ModifyAccess {
				kind = ir.ModifyAccess
			}

			addr = fn.Operand(def, 0)

		case ir.OpFieldAddr:
			addr = fn.Operand(def, 0)

		default:
			break walk
		}
	}

	if fn.IsFuncArg(addr) {
		if fn.ConventionOf(addr).AllowsAccess(kind) {
			finish(chain, scope.Scope{Kind: scope.KindCaller, Value: addr}, exts)
		} else {
			// The access outlives what the convention grants; keep the
			// owner for bounding but never redirect.
			finish(chain, scope.Scope{Kind: scope.KindUnknown, Value: addr}, exts)
		}

		return
	}

	root := scope.Classify(fn, addr)
	if root.Kind.Extendable() {
		gatherInto(fn, chain, root, exts)

		return
	}

	finish(chain, root, exts)
}

// gatherEnclosing continues the chain at the scope protecting v.
func gatherEnclosing(fn *ir.Function, chain []scope.Scope, v ir.Value, exts *[]extension) {
	esc := scope.Classify(fn, v)
	if esc.Kind.Extendable() {
		gatherInto(fn, chain, esc, exts)

		return
	}

	finish(chain, esc, exts)
}

// finish terminates a chain at a non-extendable scope.
func finish(chain []scope.Scope, terminal scope.Scope, exts *[]extension) {
	ext := extension{scopes: chain, owner: terminal.Value}
	if terminal.Kind == scope.KindCaller {
		ext.arg = terminal.Value
	}

	*exts = append(*exts, ext)
}
