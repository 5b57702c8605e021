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

// Package irange implements instruction ranges: connected regions of a
// function's control-flow graph anchored at a begin instruction and grown
// by inserting member instructions.
package irange

import (
	"fmt"
	"sync"

	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/scopext/ir"
)

// Range is a connected region of the control-flow graph. It is anchored at a
// begin instruction and contains every member instruction plus all blocks on
// paths from the begin to a member.
//
// A member is only accepted when the begin dominates it; [Range.Insert]
// invalidates the range otherwise, while [Range.TryInsert] rejects the
// member and leaves the range intact.
//
// Ranges are pooled; callers must Release a range when done with it.
type Range struct {
	fn         *ir.Function
	begin      ir.Inst
	beginBlock ir.Block
	valid      bool

	members intsets.Sparse // member instructions, including begin
	marked  intsets.Sparse // blocks on begin-to-member paths, including the begin block

	// Reusable traversal state, reset on each insertion.
	scratch intsets.Sparse
	queue   []ir.Block
}

var pool = sync.Pool{New: func() any { return new(Range) }}

// New acquires a range anchored at begin. The begin instruction itself is a
// member.
func New(fn *ir.Function, begin ir.Inst) *Range {
	r := pool.Get().(*Range)

	r.fn = fn
	r.begin = begin
	r.beginBlock = fn.BlockOf(begin)
	r.valid = true
	r.members.Clear()
	r.marked.Clear()

	r.members.Insert(int(begin))
	r.marked.Insert(int(r.beginBlock))

	return r
}

// Clone acquires an independent copy of the range.
func (r *Range) Clone() *Range {
	c := pool.Get().(*Range)

	c.fn = r.fn
	c.begin = r.begin
	c.beginBlock = r.beginBlock
	c.valid = r.valid
	c.members.Copy(&r.members)
	c.marked.Copy(&r.marked)

	return c
}

// Release returns the range to the pool.
func (r *Range) Release() {
	r.fn = nil
	pool.Put(r)
}

// Valid reports whether every inserted member was dominated by the begin.
func (r *Range) Valid() bool { return r.valid }

// Insert adds a member instruction. If the begin does not dominate it, the
// whole range becomes invalid.
func (r *Range) Insert(i ir.Inst) {
	if !r.TryInsert(i) {
		r.valid = false
	}
}

// TryInsert adds a member instruction, reporting whether the begin dominates
// it. On failure the range is left unchanged.
func (r *Range) TryInsert(i ir.Inst) bool {
	b := r.fn.BlockOf(i)

	if b == r.beginBlock {
		if i != r.begin && r.fn.Before(i, r.begin) {
			return false // member above the begin in its own block
		}

		r.members.Insert(int(i))

		return true
	}

	if r.marked.Has(int(b)) {
		r.members.Insert(int(i))

		return true
	}

	// Walk backward from the member's block. Every path must run into the
	// begin block; a path escaping to the function entry means the begin
	// does not dominate the member.
	entry := r.fn.Entry()
	if b == entry {
		return false
	}

	r.scratch.Clear()
	r.scratch.Insert(int(b))
	r.queue = append(r.queue[:0], b)

	for len(r.queue) > 0 {
		cur := r.queue[len(r.queue)-1]
		r.queue = r.queue[:len(r.queue)-1]

		for _, p := range r.fn.Preds(cur) {
			if p == r.beginBlock || r.marked.Has(int(p)) || r.scratch.Has(int(p)) {
				continue
			}

			if p == entry {
				return false
			}

			r.scratch.Insert(int(p))
			r.queue = append(r.queue, p)
		}
	}

	r.marked.UnionWith(&r.scratch)
	r.members.Insert(int(i))

	return true
}

// Contains reports whether the instruction lies strictly within the range:
// on a begin-to-member path and no later than the last member on it.
func (r *Range) Contains(i ir.Inst) bool {
	b := r.fn.BlockOf(i)
	if !r.marked.Has(int(b)) {
		return false
	}

	if b == r.beginBlock && i != r.begin && r.fn.Before(i, r.begin) {
		return false
	}

	if r.hasMarkedSucc(b) {
		return true // interior block, covered to its terminator
	}

	last := r.lastMemberIn(b)
	if !last.IsValid() {
		return false
	}

	return i == last || r.fn.Before(i, last)
}

// Boundary returns the insertion points delimiting the range: for each block
// where the range stops, the instruction before which a new scope end must
// be placed; for each edge leaving an interior block, the first instruction
// of the block outside the range. Points are deduplicated.
func (r *Range) Boundary() []ir.Inst {
	var points []ir.Inst

	seen := make(map[ir.Inst]bool)

	add := func(i ir.Inst) {
		if !seen[i] {
			seen[i] = true
			points = append(points, i)
		}
	}

	for _, bi := range r.marked.AppendTo(nil) {
		b := ir.Block(bi)

		if !r.hasMarkedSucc(b) {
			last := r.lastMemberIn(b)
			if !last.IsValid() {
				continue
			}

			if r.fn.Op(last).IsTerminator() {
				add(last) // a return consuming the value; end before it
			} else {
				add(r.fn.Following(last))
			}

			continue
		}

		for _, s := range r.fn.Succs(b) {
			if !r.marked.Has(int(s)) {
				add(r.fn.First(s))
			}
		}
	}

	if len(points) == 0 {
		msg := fmt.Errorf("irange: range at %s has no boundary", r.fn.Op(r.begin))
		panic(msg)
	}

	return points
}

// hasMarkedSucc reports whether the range continues past the block.
func (r *Range) hasMarkedSucc(b ir.Block) bool {
	for _, s := range r.fn.Succs(b) {
		if r.marked.Has(int(s)) {
			return true
		}
	}

	return false
}

// lastMemberIn returns the last member instruction of a block.
func (r *Range) lastMemberIn(b ir.Block) ir.Inst {
	insts := r.fn.Insts(b)
	for idx := len(insts) - 1; idx >= 0; idx-- {
		if r.members.Has(int(insts[idx])) {
			return insts[idx]
		}
	}

	return 0
}
