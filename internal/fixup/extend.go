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
	"fmt"

	"fillmore-labs.com/scopext/internal/config"
	"fillmore-labs.com/scopext/internal/irange"
	"fillmore-labs.com/scopext/internal/reach"
	"fillmore-labs.com/scopext/internal/scope"
	"fillmore-labs.com/scopext/ir"
)

// plan is the extension decision for one scope of a chain.
type plan struct {
	sc         scope.Scope
	ends       []ir.Inst
	needed     bool
	completion reach.Completion // yield scopes only
}

// extendScopes widens every scope of the chain, innermost first, until each
// covers the use range. The whole chain is verified on a throwaway copy of
// the range before any instruction moves, so an infeasible chain leaves the
// function untouched. It reports whether the function was mutated and
// whether the chain was verified.
func (f *Fixer) extendScopes(ext *extension, rng *irange.Range) (mutated, ok bool) {
	trial := rng.Clone()
	defer trial.Release()

	plans := make([]plan, 0, len(ext.scopes))

	for _, sc := range ext.scopes {
		pl := plan{sc: sc, ends: sc.Ends(f.fn)}

		for _, e := range pl.ends {
			if trial.Contains(e) {
				pl.needed = true

				break
			}
		}

		if pl.needed && sc.Kind == scope.KindYield {
			if !f.flags.Enabled(config.ExtendYieldScopes) {
				return false, false
			}

			c, agreed := f.yieldCompletion(sc, trial)
			if !agreed {
				return false, false
			}

			pl.completion = c
		}

		// The next outer scope must cover this scope's full extent.
		for _, e := range pl.ends {
			trial.TryInsert(e)
		}

		plans = append(plans, pl)
	}

	// Verified; replay on the real range.
	newEnds := make(map[ir.Inst]bool)

	var dead []ir.Inst

	for i := range plans {
		f.commitScope(&plans[i], rng, &dead, newEnds)

		mutated = mutated || plans[i].needed
	}

	for _, e := range dead {
		f.fn.RemoveInst(e)
	}

	return mutated, true
}

// yieldCompletion checks that one completion kind of the coroutine reaches
// every boundary point of the range, so the moved completions preserve the
// normal-versus-abort outcome on all paths.
func (f *Fixer) yieldCompletion(sc scope.Scope, rng *irange.Range) (reach.Completion, bool) {
	found := reach.CompletionNone

	for _, point := range rng.Boundary() {
		c, ok := f.oracle.CompletionReaching(sc.Begin, point)
		if !ok {
			return reach.CompletionNone, false
		}

		if found != reach.CompletionNone && found != c {
			return reach.CompletionNone, false
		}

		found = c
	}

	return found, true
}

// commitScope inserts new scope ends at the range boundary, schedules the
// overtaken originals for removal, and widens the range to the scope's full
// extent for the outer scopes.
func (f *Fixer) commitScope(pl *plan, rng *irange.Range, dead *[]ir.Inst, newEnds map[ir.Inst]bool) {
	// The scope's own ends join the range before the boundary is taken, so
	// the boundary lands past every original end and no path keeps a second
	// close once the originals are retired.
	retired := make([]ir.Inst, 0, len(pl.ends))

	for _, e := range pl.ends {
		if rng.TryInsert(e) {
			retired = append(retired, e)
		}
	}

	if !pl.needed {
		return
	}

	token := f.fn.Result(pl.sc.Begin)

	for _, point := range rng.Boundary() {
		// Inner scopes of this chain already placed their new ends at
		// the boundary; this scope closes after them.
		for newEnds[point] {
			point = f.fn.Following(point)
		}

		n := f.fn.InsertBefore(point, endOpcode(pl), token)
		newEnds[n] = true
	}

	*dead = append(*dead, retired...)
}

// endOpcode returns the instruction closing the scope. A moved coroutine
// completion keeps the outcome the oracle saw on every path.
func endOpcode(pl *plan) ir.Opcode {
	switch pl.sc.Kind {
	case scope.KindAccess:
		return ir.OpEndAccess

	case scope.KindBorrow, scope.KindInitialized:
		return ir.OpEndBorrow

	case scope.KindYield:
		if pl.completion == reach.CompletionAbort {
			return ir.OpAbortCoroutine
		}

		return ir.OpEndCoroutine

	default:
		msg := fmt.Errorf("fixup: no end instruction for %s scope", pl.sc.Kind)
		panic(msg)
	}
}
