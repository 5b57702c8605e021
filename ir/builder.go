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

package ir

import "fmt"

// Builder constructs a [Function] incrementally. It appends instructions to
// a current block and enforces terminator discipline: once a block is
// terminated, no further instructions may be appended to it.
//
// The builder is the construction surface for the upstream lowering stage
// and for tests; the scope extension pass itself mutates functions through
// the narrower insertion methods on [Function].
type Builder struct {
	fn  *Function
	cur Block
}

// NewBuilder creates a builder positioned at the entry block of a fresh
// function.
func NewBuilder(name string) *Builder {
	fn := NewFunction(name)

	return &Builder{fn: fn, cur: fn.Entry()}
}

// Func returns the function under construction.
func (b *Builder) Func() *Function { return b.fn }

// Block creates a new basic block without changing the insertion point.
func (b *Builder) Block() Block { return b.fn.NewBlock() }

// SetBlock moves the insertion point to the end of blk.
func (b *Builder) SetBlock(blk Block) { b.cur = blk }

// Arg declares a function argument with the given passing convention.
func (b *Builder) Arg(conv Convention) Value { return b.fn.AddArg(conv) }

// Param declares a parameter on a non-entry block.
func (b *Builder) Param(blk Block, own Ownership, addr bool) Value {
	return b.fn.AddParam(blk, own, addr)
}

// AllocLocal allocates local storage and returns its address.
func (b *Builder) AllocLocal() Value {
	i := b.emit(instData{op: OpAllocLocal})

	return b.fn.newResult(i, true, OwnershipNone)
}

// DeallocLocal ends the lifetime of local storage.
func (b *Builder) DeallocLocal(addr Value) Inst {
	return b.emit(instData{op: OpDeallocLocal, operands: []Value{addr}})
}

// BeginAccess opens a formal access scope and returns the accessed address.
func (b *Builder) BeginAccess(kind AccessKind, addr Value) Value {
	i := b.emit(instData{op: OpBeginAccess, operands: []Value{addr}, kind: kind})

	return b.fn.newResult(i, true, OwnershipNone)
}

// EndAccess closes the access scope that produced the address.
func (b *Builder) EndAccess(access Value) Inst {
	return b.emit(instData{op: OpEndAccess, operands: []Value{access}})
}

// BeginBorrow opens a borrow scope. visible marks a source-level binding.
func (b *Builder) BeginBorrow(v Value, visible bool) Value {
	i := b.emit(instData{op: OpBeginBorrow, operands: []Value{v}, visible: visible})

	return b.fn.newResult(i, false, OwnershipBorrowed)
}

// EndBorrow closes a borrow or initialized-store scope.
func (b *Builder) EndBorrow(borrow Value) Inst {
	return b.emit(instData{op: OpEndBorrow, operands: []Value{borrow}})
}

// StoreBorrow initializes dest by borrowing src and returns the initialized
// address, valid until a paired end_borrow.
func (b *Builder) StoreBorrow(src, dest Value) Value {
	i := b.emit(instData{op: OpStoreBorrow, operands: []Value{src, dest}})

	return b.fn.newResult(i, true, OwnershipNone)
}

// Store writes src through the dest address.
func (b *Builder) Store(src, dest Value) Inst {
	return b.emit(instData{op: OpStore, operands: []Value{src, dest}})
}

// Load reads an owned value from an address.
func (b *Builder) Load(addr Value) Value {
	i := b.emit(instData{op: OpLoad, operands: []Value{addr}})

	return b.fn.newResult(i, false, OwnershipOwned)
}

// FieldAddr projects an interior address.
func (b *Builder) FieldAddr(addr Value) Value {
	i := b.emit(instData{op: OpFieldAddr, operands: []Value{addr}})

	return b.fn.newResult(i, true, OwnershipNone)
}

// Copy produces an owned copy of a value.
func (b *Builder) Copy(v Value) Value {
	i := b.emit(instData{op: OpCopy, operands: []Value{v}})

	return b.fn.newResult(i, false, OwnershipOwned)
}

// Destroy consumes an owned value.
func (b *Builder) Destroy(v Value) Inst {
	return b.emit(instData{op: OpDestroy, operands: []Value{v}})
}

// Call applies an opaque callee and returns its owned result.
func (b *Builder) Call(args ...Value) Value {
	i := b.emit(instData{op: OpCall, operands: args})

	return b.fn.newResult(i, false, OwnershipOwned)
}

// BeginCoroutine starts a coroutine. deps lists the operand indices the
// yielded value is declared to scope-depend on. The returned yield doubles
// as the completion token.
func (b *Builder) BeginCoroutine(deps []int, args ...Value) Value {
	for _, d := range deps {
		if d < 0 || d >= len(args) {
			msg := fmt.Errorf("ir: coroutine dependency index %d out of range", d)
			panic(msg)
		}
	}

	i := b.emit(instData{op: OpBeginCoroutine, operands: args, deps: deps})

	return b.fn.newResult(i, false, OwnershipBorrowed)
}

// EndCoroutine completes a coroutine normally.
func (b *Builder) EndCoroutine(token Value) Inst {
	return b.emit(instData{op: OpEndCoroutine, operands: []Value{token}})
}

// EndCoroutineResult completes a coroutine normally and produces a result.
// Such completions pin the scope: there is no insertion point before the
// result is consumed, so the scope extension pass treats them as fixed.
func (b *Builder) EndCoroutineResult(token Value) Value {
	i := b.emit(instData{op: OpEndCoroutine, operands: []Value{token}})

	return b.fn.newResult(i, false, OwnershipOwned)
}

// AbortCoroutine completes a coroutine by aborting it.
func (b *Builder) AbortCoroutine(token Value) Inst {
	return b.emit(instData{op: OpAbortCoroutine, operands: []Value{token}})
}

// MarkDependence asserts that dependent is valid only while base stays
// within its scope. The marker starts out unresolved.
func (b *Builder) MarkDependence(dependent, base Value) Value {
	i := b.emit(instData{op: OpMarkDependence, operands: []Value{dependent, base}})

	return b.fn.newResult(i, b.fn.values[dependent].addr, b.fn.values[dependent].own)
}

// Br branches unconditionally, passing args to the destination's parameters.
func (b *Builder) Br(dest Block, args ...Value) Inst {
	if got, want := len(args), len(b.fn.blocks[dest].params); got != want {
		msg := fmt.Errorf("ir: br to b%d with %d arguments, block has %d parameters", dest, got, want)
		panic(msg)
	}

	from := b.cur
	i := b.emit(instData{op: OpBr, operands: args, dests: []Block{dest}})
	b.fn.addPred(from, dest)

	return i
}

// CondBr branches to one of two destinations. The condition is abstract.
func (b *Builder) CondBr(then, els Block) Inst {
	from := b.cur
	i := b.emit(instData{op: OpCondBr, dests: []Block{then, els}})
	b.fn.addPred(from, then)
	b.fn.addPred(from, els)

	return i
}

// Return terminates the function with at most one result value.
func (b *Builder) Return(vs ...Value) Inst {
	if len(vs) > 1 {
		msg := fmt.Errorf("ir: return with %d values", len(vs))
		panic(msg)
	}

	return b.emit(instData{op: OpReturn, operands: vs})
}

// Unreachable terminates a block control never leaves normally.
func (b *Builder) Unreachable() Inst {
	return b.emit(instData{op: OpUnreachable})
}

// emit appends to the current block, enforcing terminator discipline.
func (b *Builder) emit(d instData) Inst {
	if t := b.fn.Terminator(b.cur); t.IsValid() {
		msg := fmt.Errorf("ir: appending %s to terminated block b%d", d.op, b.cur)
		panic(msg)
	}

	return b.fn.append(b.cur, d)
}
