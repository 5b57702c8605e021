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

// Package fixup implements the scope extension pass: it widens the scopes
// protecting the base of each unresolved dependency marker until they cover
// every use of the marked value, and redirects markers whose scope chain
// ends at caller arguments to depend on those arguments directly.
package fixup

import (
	"slices"

	"go.uber.org/zap"

	"fillmore-labs.com/scopext/internal/config"
	"fillmore-labs.com/scopext/internal/reach"
	"fillmore-labs.com/scopext/internal/scope"
	"fillmore-labs.com/scopext/ir"
)

// Fixer runs the scope extension pass over one function.
type Fixer struct {
	fn    *ir.Function
	log   *zap.Logger
	flags config.Flags

	locals *reach.LocalReach
	oracle *reach.Oracle
}

// New returns a fixer for the function.
func New(fn *ir.Function, log *zap.Logger, flags config.Flags) *Fixer {
	return &Fixer{
		fn:     fn,
		log:    log,
		flags:  flags,
		locals: reach.NewLocalReach(fn),
		oracle: reach.NewOracle(fn),
	}
}

// Run processes every unresolved dependency marker of the function and
// returns the number of markers whose scopes were extended or redirected.
func (f *Fixer) Run() int {
	// Snapshot first: fixing a marker inserts instructions.
	var markers []ir.Inst

	for _, b := range f.fn.Blocks() {
		for _, i := range f.fn.Insts(b) {
			if f.fn.Op(i) == ir.OpMarkDependence && !f.fn.Resolved(i) {
				markers = append(markers, i)
			}
		}
	}

	changed := 0

	for _, m := range markers {
		if f.fixMarker(m) {
			changed++
		}
	}

	return changed
}

// fixMarker widens the scope chain of one marker, reporting whether the
// function was mutated. The marker stays unresolved; the diagnostic stage
// owns the resolution flag.
func (f *Fixer) fixMarker(m ir.Inst) bool {
	base := f.fn.Operand(m, 1)
	if f.flags.Enabled(config.NormalizeBorrowBases) {
		base = f.normalizeBase(m, base)
	}

	sc := scope.Classify(f.fn, base)
	if !sc.Kind.Extendable() {
		f.log.Debug("dependency base needs no extension",
			zap.String("function", f.fn.Name), zap.Stringer("kind", sc.Kind))

		return false
	}

	changed := false

	var callerArgs []ir.Value

	for _, ext := range gather(f.fn, sc) {
		rng := f.computeUseRange(m, &ext)
		if rng == nil {
			f.log.Debug("use range escapes the dependency base",
				zap.String("function", f.fn.Name))

			continue
		}

		mutated, ok := f.extendScopes(&ext, rng)
		rng.Release()

		if !ok {
			continue
		}

		changed = changed || mutated

		if ext.dependsOnCaller && ext.arg.IsValid() && !slices.Contains(callerArgs, ext.arg) {
			callerArgs = append(callerArgs, ext.arg)
		}
	}

	if f.flags.Enabled(config.RedirectCallerDeps) && len(callerArgs) > 0 {
		f.redirectToCaller(m, callerArgs)

		changed = true
	}

	return changed
}
