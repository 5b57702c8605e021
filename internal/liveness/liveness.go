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

// Package liveness computes the liveness bound of a scope chain's owner:
// the region of the function beyond which no scope may be extended.
package liveness

import (
	"sync"

	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/scopext/ir"
)

// Bound is the owner's liveness region. Bounds are pooled; callers must
// Release a bound when done with it.
type Bound struct {
	fn    *ir.Function
	whole bool

	start      ir.Inst // start of the region; invalid when the owner is a parameter
	startBlock ir.Block

	marked intsets.Sparse       // blocks on start-to-consumer paths
	lastIn map[ir.Block]ir.Inst // final consumer per terminating block

	queue []ir.Block
}

var pool = sync.Pool{New: func() any { return &Bound{lastIn: make(map[ir.Block]ir.Inst)} }}

// WholeFunction acquires a bound covering the entire function, used for
// borrowed and trivial owners.
func WholeFunction(fn *ir.Function) *Bound {
	b := acquire(fn)
	b.whole = true

	return b
}

// ValueBound acquires the linear ownership liveness of a uniquely owned
// value: from its definition to its consuming uses. Owners that are not
// uniquely owned are valid across the whole function.
func ValueBound(fn *ir.Function, owner ir.Value) *Bound {
	if fn.OwnershipOf(owner) != ir.OwnershipOwned {
		return WholeFunction(fn)
	}

	b := acquire(fn)

	if def := fn.Def(owner); def.IsValid() {
		b.start = def
		b.startBlock = fn.BlockOf(def)
	} else {
		b.startBlock = fn.ParamBlock(owner)
	}

	var consumers []ir.Inst

	for _, u := range fn.Uses(owner) {
		if consumes(fn.Op(u.User), u.Operand) {
			consumers = append(consumers, u.User)
		}
	}

	b.compute(consumers)

	return b
}

// AddressBound acquires the live range of the storage behind an address
// owner, starting at the given instruction (the outermost scope begin).
// Function arguments back caller storage and are valid across the whole
// function.
func AddressBound(fn *ir.Function, owner ir.Value, start ir.Inst) *Bound {
	if fn.IsFuncArg(owner) {
		return WholeFunction(fn)
	}

	b := acquire(fn)
	b.start = start
	b.startBlock = fn.BlockOf(start)

	var consumers []ir.Inst

	for _, u := range fn.Uses(owner) {
		if fn.Op(u.User) == ir.OpDeallocLocal {
			consumers = append(consumers, u.User)
		}
	}

	b.compute(consumers)

	return b
}

// Release returns the bound to the pool.
func (b *Bound) Release() {
	b.fn = nil
	pool.Put(b)
}

// Covers reports whether the owner is still alive at the instruction.
func (b *Bound) Covers(i ir.Inst) bool {
	if b.whole {
		return true
	}

	blk := b.fn.BlockOf(i)
	if !b.marked.Has(int(blk)) {
		return false
	}

	if blk == b.startBlock && b.start.IsValid() && i != b.start && b.fn.Before(i, b.start) {
		return false
	}

	if b.hasMarkedSucc(blk) {
		return true // liveness continues past this block
	}

	last, ok := b.lastIn[blk]
	if !ok {
		return true // no consumer, live to the end of the block
	}

	return i == last || b.fn.Before(i, last)
}

func acquire(fn *ir.Function) *Bound {
	b := pool.Get().(*Bound)

	b.fn = fn
	b.whole = false
	b.start = 0
	b.startBlock = 0
	b.marked.Clear()
	clear(b.lastIn)

	return b
}

// compute marks the blocks between the start and the consumers. Without
// consumers the owner stays alive on every path out of the start block.
func (b *Bound) compute(consumers []ir.Inst) {
	b.marked.Insert(int(b.startBlock))

	if len(consumers) == 0 {
		b.markForward()

		return
	}

	for _, c := range consumers {
		blk := b.fn.BlockOf(c)

		if last, ok := b.lastIn[blk]; !ok || b.fn.Before(last, c) {
			b.lastIn[blk] = c
		}

		if b.marked.Has(int(blk)) && blk != b.startBlock {
			continue
		}

		b.marked.Insert(int(blk))
		b.queue = append(b.queue[:0], blk)

		for len(b.queue) > 0 {
			cur := b.queue[len(b.queue)-1]
			b.queue = b.queue[:len(b.queue)-1]

			for _, p := range b.fn.Preds(cur) {
				if b.marked.Has(int(p)) {
					continue
				}

				b.marked.Insert(int(p))
				b.queue = append(b.queue, p)
			}
		}
	}
}

// markForward marks every block reachable from the start block.
func (b *Bound) markForward() {
	b.queue = append(b.queue[:0], b.startBlock)

	for len(b.queue) > 0 {
		cur := b.queue[len(b.queue)-1]
		b.queue = b.queue[:len(b.queue)-1]

		for _, s := range b.fn.Succs(cur) {
			if b.marked.Has(int(s)) {
				continue
			}

			b.marked.Insert(int(s))
			b.queue = append(b.queue, s)
		}
	}
}

func (b *Bound) hasMarkedSucc(blk ir.Block) bool {
	for _, s := range b.fn.Succs(blk) {
		if b.marked.Has(int(s)) {
			return true
		}
	}

	return false
}

// consumes reports whether an operand slot ends an owned value's lifetime.
func consumes(op ir.Opcode, operand int) bool {
	switch op {
	case ir.OpDestroy, ir.OpReturn:
		return true

	case ir.OpStore, ir.OpStoreBorrow:
		return operand == 0

	case ir.OpBr:
		return true // ownership transfers to the block parameter

	default:
		return false
	}
}
