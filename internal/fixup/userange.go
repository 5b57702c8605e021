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

	"fillmore-labs.com/scopext/internal/irange"
	"fillmore-labs.com/scopext/internal/liveness"
	"fillmore-labs.com/scopext/ir"
)

// computeUseRange collects the transitive uses of the marked value into a
// range anchored at the chain's innermost scope begin, clipped to the
// owner's liveness. It returns nil when a use is not dominated by the begin,
// and records on ext whether the value escapes to the caller.
func (f *Fixer) computeUseRange(m ir.Inst, ext *extension) *irange.Range {
	bound := f.ownerBound(ext)
	defer bound.Release()

	rng := irange.New(f.fn, ext.scopes[0].Begin)
	rng.Insert(m)

	visited := make(map[ir.Value]bool)

	var work []ir.Value

	push := func(v ir.Value) {
		if v.IsValid() && !visited[v] {
			visited[v] = true
			work = append(work, v)
		}
	}

	// Uses past the owner's liveness cannot be served by extension and are
	// left to later diagnostics.
	use := func(u ir.Inst) {
		if bound.Covers(u) {
			rng.Insert(u)
		}
	}

	push(f.fn.Result(m))

	for len(work) > 0 {
		v := work[len(work)-1]
		work = work[:len(work)-1]

		for _, u := range f.fn.Uses(v) {
			user := u.User

			switch f.fn.Op(user) {
			case ir.OpMarkDependence:
				if u.Operand == 0 {
					push(f.fn.Result(user)) // forwarded dependent
				} else {
					use(user)
				}

			case ir.OpBr:
				use(user)
				push(f.fn.Params(f.fn.Dests(user)[0])[u.Operand])

			case ir.OpStore, ir.OpStoreBorrow:
				use(user)

				if u.Operand == 0 {
					f.followStored(user, push, use, ext)
				}

			case ir.OpReturn:
				ext.dependsOnCaller = true

				use(user)

			case ir.OpBeginCoroutine:
				use(user)

				if slices.Contains(f.fn.CoroutineDeps(user), u.Operand) {
					push(f.fn.Result(user))
				}

			case ir.OpBeginAccess, ir.OpBeginBorrow, ir.OpCopy, ir.OpLoad, ir.OpFieldAddr:
				use(user)
				push(f.fn.Result(user))

			default:
				use(user)
			}
		}
	}

	if !rng.Valid() {
		rng.Release()

		return nil
	}

	return rng
}

// followStored propagates dependence through memory: loads reachable from
// the store pick up the dependency, stores through inout arguments escape to
// the caller.
func (f *Fixer) followStored(st ir.Inst, push func(ir.Value), use func(ir.Inst), ext *extension) {
	dest := f.fn.Operand(st, 1)

	if f.fn.IsFuncArg(dest) && f.fn.ConventionOf(dest) == ir.ConventionInout {
		ext.dependsOnCaller = true

		return
	}

	for _, du := range f.fn.Uses(dest) {
		if f.fn.Op(du.User) == ir.OpLoad && f.locals.Reaches(st, du.User) {
			use(du.User)
			push(f.fn.Result(du.User))
		}
	}
}

// ownerBound selects the liveness bound clipping the use range.
func (f *Fixer) ownerBound(ext *extension) *liveness.Bound {
	switch {
	case ext.arg.IsValid() || !ext.owner.IsValid():
		return liveness.WholeFunction(f.fn)

	case f.fn.IsAddress(ext.owner):
		outermost := ext.scopes[len(ext.scopes)-1]

		return liveness.AddressBound(f.fn, ext.owner, outermost.Begin)

	default:
		return liveness.ValueBound(f.fn, ext.owner)
	}
}
