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

// Package reach answers reachability queries over a function's control-flow
// graph: which coroutine completion reaches a program point, and whether one
// instruction can reach another.
package reach

import (
	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/scopext/ir"
)

// Completion classifies how a coroutine scope was closed on the paths
// reaching a program point.
type Completion uint8

//go:generate go tool stringer -type Completion -linecomment
const (
	// CompletionNone means no single completion kind reaches the point.
	CompletionNone Completion = iota // none
	// CompletionNormal means every path passed an end_coroutine.
	CompletionNormal // normal
	// CompletionAbort means every path passed an abort_coroutine.
	CompletionAbort // abort
)

// Oracle answers which completion of a coroutine scope reaches a given
// insertion point. An oracle is bound to one function and reuses its
// traversal state across queries.
type Oracle struct {
	fn    *ir.Function
	seen  intsets.Sparse
	queue []ir.Block
}

// NewOracle returns an oracle for the function.
func NewOracle(fn *ir.Function) *Oracle {
	return &Oracle{fn: fn}
}

// CompletionReaching reports the completion kind of the coroutine scope
// opened by begin on paths reaching point, where point is an insert-before
// location. It reports false when the kinds disagree across paths, when a
// path from the begin reaches the point without completing, or when an
// end_coroutine carries a result pinning the scope in place.
func (o *Oracle) CompletionReaching(begin, point ir.Inst) (Completion, bool) {
	token := o.fn.Result(begin)

	for _, u := range o.fn.Uses(token) {
		if o.fn.Op(u.User) == ir.OpEndCoroutine && o.fn.Result(u.User).IsValid() {
			return CompletionNone, false
		}
	}

	found := CompletionNone

	record := func(c Completion) bool {
		if found != CompletionNone && found != c {
			return false // paths disagree
		}
		found = c

		return true
	}

	// Scan the point's block above the insertion position first.
	kind, hitBegin := o.scanBlock(o.fn.BlockOf(point), point, begin, token)
	if hitBegin {
		return CompletionNone, false
	}

	if kind != CompletionNone {
		return kind, true
	}

	entry := o.fn.Entry()

	o.seen.Clear()
	o.seen.Insert(int(o.fn.BlockOf(point)))
	o.queue = append(o.queue[:0], o.fn.BlockOf(point))

	for len(o.queue) > 0 {
		cur := o.queue[len(o.queue)-1]
		o.queue = o.queue[:len(o.queue)-1]

		for _, p := range o.fn.Preds(cur) {
			if o.seen.Has(int(p)) {
				continue
			}
			o.seen.Insert(int(p))

			kind, hitBegin := o.scanBlock(p, 0, begin, token)
			if hitBegin {
				return CompletionNone, false
			}

			if kind != CompletionNone {
				if !record(kind) {
					return CompletionNone, false
				}

				continue // path completed, stop walking it
			}

			if p == entry {
				return CompletionNone, false // reached entry without a completion
			}

			o.queue = append(o.queue, p)
		}
	}

	if found == CompletionNone {
		return CompletionNone, false
	}

	return found, true
}

// scanBlock walks block b backward from the instruction preceding before
// (the whole block when before is invalid) and returns the nearest
// completion of token, or whether the begin itself was reached first.
func (o *Oracle) scanBlock(b ir.Block, before, begin ir.Inst, token ir.Value) (Completion, bool) {
	insts := o.fn.Insts(b)

	start := len(insts) - 1
	if before.IsValid() {
		start = -1

		for idx, i := range insts {
			if i == before {
				start = idx - 1

				break
			}
		}
	}

	for idx := start; idx >= 0; idx-- {
		i := insts[idx]
		if i == begin {
			return CompletionNone, true
		}

		switch o.fn.Op(i) {
		case ir.OpEndCoroutine:
			if o.fn.Operand(i, 0) == token {
				return CompletionNormal, false
			}

		case ir.OpAbortCoroutine:
			if o.fn.Operand(i, 0) == token {
				return CompletionAbort, false
			}
		}
	}

	return CompletionNone, false
}
