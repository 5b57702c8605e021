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

package reach

import (
	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/scopext/ir"
)

// LocalReach answers whether one instruction can reach another, memoizing
// the forward block closure per source block. Inserting scope ends never
// adds or removes edges, so the memo stays valid across the whole pass.
type LocalReach struct {
	fn    *ir.Function
	memo  map[ir.Block]*intsets.Sparse
	queue []ir.Block
}

// NewLocalReach returns a reachability cache for the function.
func NewLocalReach(fn *ir.Function) *LocalReach {
	return &LocalReach{fn: fn, memo: make(map[ir.Block]*intsets.Sparse)}
}

// Reaches reports whether control can flow from instruction from to
// instruction to.
func (l *LocalReach) Reaches(from, to ir.Inst) bool {
	fb, tb := l.fn.BlockOf(from), l.fn.BlockOf(to)

	if fb == tb && l.fn.Before(from, to) {
		return true
	}

	return l.closure(fb).Has(int(tb))
}

// closure returns the set of blocks reachable from b through at least one
// edge.
func (l *LocalReach) closure(b ir.Block) *intsets.Sparse {
	if s, ok := l.memo[b]; ok {
		return s
	}

	s := new(intsets.Sparse)
	l.queue = append(l.queue[:0], b)

	for len(l.queue) > 0 {
		cur := l.queue[len(l.queue)-1]
		l.queue = l.queue[:len(l.queue)-1]

		for _, succ := range l.fn.Succs(cur) {
			if s.Has(int(succ)) {
				continue
			}

			s.Insert(int(succ))
			l.queue = append(l.queue, succ)
		}
	}

	l.memo[b] = s

	return s
}
