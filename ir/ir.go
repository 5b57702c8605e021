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

import (
	"fmt"
	"slices"
)

// Block is a stable handle for a basic block. The zero value is invalid.
type Block uint32

// Inst is a stable handle for an instruction. The zero value is invalid.
type Inst uint32

// Value is a stable handle for a value. The zero value is invalid.
type Value uint32

// IsValid reports whether the handle refers to a block.
func (b Block) IsValid() bool { return b != 0 }

// IsValid reports whether the handle refers to an instruction.
func (i Inst) IsValid() bool { return i != 0 }

// IsValid reports whether the handle refers to a value.
func (v Value) IsValid() bool { return v != 0 }

// Use is a single operand slot of an instruction.
type Use struct {
	User    Inst
	Operand int
}

// blockData is the arena entry for one basic block.
type blockData struct {
	params []Value
	insts  []Inst
	preds  []Block
}

// instData is the arena entry for one instruction.
type instData struct {
	op       Opcode
	block    Block
	operands []Value
	result   Value

	kind     AccessKind // begin_access
	visible  bool       // begin_borrow: source-level binding
	deps     []int      // begin_coroutine: operand indices its yield depends on
	resolved bool       // mark_dependence
	dests    []Block    // terminators
}

// valueData is the arena entry for one value.
type valueData struct {
	def   Inst  // defining instruction; invalid for block parameters
	block Block // owning block for parameters
	index int   // parameter position
	addr  bool
	own   Ownership
	conv  Convention // entry block parameters only
	uses  []Use
}

// Function is a function body: a control-flow graph of basic blocks owning
// all instructions and values through index arenas. Index 0 of each arena is
// unused so the zero handle stays invalid.
type Function struct {
	Name string

	blocks []blockData
	insts  []instData
	values []valueData
}

// NewFunction creates an empty function with an entry block.
func NewFunction(name string) *Function {
	f := &Function{
		Name:   name,
		blocks: make([]blockData, 1),
		insts:  make([]instData, 1),
		values: make([]valueData, 1),
	}

	f.NewBlock()

	return f
}

// NewBlock appends a new, empty basic block.
func (f *Function) NewBlock() Block {
	f.blocks = append(f.blocks, blockData{})

	return Block(len(f.blocks) - 1)
}

// Entry returns the function's entry block.
func (f *Function) Entry() Block { return 1 }

// NumBlocks returns the number of blocks, for sizing handle-keyed sets.
func (f *Function) NumBlocks() int { return len(f.blocks) }

// NumInsts returns the size of the instruction arena, including removed slots.
func (f *Function) NumInsts() int { return len(f.insts) }

// NumValues returns the size of the value arena.
func (f *Function) NumValues() int { return len(f.values) }

// Blocks returns all block handles in creation order, entry first.
func (f *Function) Blocks() []Block {
	bs := make([]Block, 0, len(f.blocks)-1)
	for i := 1; i < len(f.blocks); i++ {
		bs = append(bs, Block(i))
	}

	return bs
}

// Insts returns the instructions of a block in execution order.
// The returned slice is owned by the function and must not be mutated.
func (f *Function) Insts(b Block) []Inst { return f.blocks[b].insts }

// Params returns the parameters of a block.
func (f *Function) Params(b Block) []Value { return f.blocks[b].params }

// Preds returns the predecessor blocks.
func (f *Function) Preds(b Block) []Block { return f.blocks[b].preds }

// Succs returns the successor blocks, taken from the block's terminator.
func (f *Function) Succs(b Block) []Block {
	insts := f.blocks[b].insts
	if len(insts) == 0 {
		return nil
	}

	return f.insts[insts[len(insts)-1]].dests
}

// Terminator returns the block's terminating instruction, if present.
func (f *Function) Terminator(b Block) Inst {
	insts := f.blocks[b].insts
	if len(insts) == 0 {
		return 0
	}

	last := insts[len(insts)-1]
	if !f.insts[last].op.IsTerminator() {
		return 0
	}

	return last
}

// AddParam adds a parameter to a non-entry block.
func (f *Function) AddParam(b Block, own Ownership, addr bool) Value {
	v := f.newValue(valueData{block: b, index: len(f.blocks[b].params), addr: addr, own: own})
	f.blocks[b].params = append(f.blocks[b].params, v)

	return v
}

// AddArg adds a function argument with the given passing convention.
// Function arguments are the parameters of the entry block.
func (f *Function) AddArg(conv Convention) Value {
	entry := f.Entry()
	v := f.newValue(valueData{
		block: entry,
		index: len(f.blocks[entry].params),
		addr:  conv == ConventionInout,
		own:   conv.ownership(),
		conv:  conv,
	})
	f.blocks[entry].params = append(f.blocks[entry].params, v)

	return v
}

// Op returns the instruction's opcode. Removed instructions report OpInvalid.
func (f *Function) Op(i Inst) Opcode { return f.insts[i].op }

// BlockOf returns the block containing the instruction.
func (f *Function) BlockOf(i Inst) Block { return f.insts[i].block }

// Operands returns the instruction's operand values.
// The returned slice is owned by the function and must not be mutated.
func (f *Function) Operands(i Inst) []Value { return f.insts[i].operands }

// Operand returns a single operand value.
func (f *Function) Operand(i Inst, idx int) Value { return f.insts[i].operands[idx] }

// Result returns the instruction's result value, or an invalid handle.
func (f *Function) Result(i Inst) Value { return f.insts[i].result }

// AccessKindOf returns the kind of a begin_access instruction.
func (f *Function) AccessKindOf(i Inst) AccessKind { return f.insts[i].kind }

// UserVisible reports whether a begin_borrow corresponds to a source-level
// binding that carries diagnostic meaning.
func (f *Function) UserVisible(i Inst) bool { return f.insts[i].visible }

// CoroutineDeps returns the operand indices a begin_coroutine's yielded
// value is declared to scope-depend on.
func (f *Function) CoroutineDeps(i Inst) []int { return f.insts[i].deps }

// Resolved reports the resolution flag of a mark_dependence instruction.
func (f *Function) Resolved(i Inst) bool { return f.insts[i].resolved }

// Resolve marks a dependency marker as processed.
func (f *Function) Resolve(i Inst) {
	if f.insts[i].op != OpMarkDependence {
		msg := fmt.Errorf("ir: resolving %s", f.insts[i].op)
		panic(msg)
	}

	f.insts[i].resolved = true
}

// Dests returns the destination blocks of a terminator.
func (f *Function) Dests(i Inst) []Block { return f.insts[i].dests }

// Uses returns all operand slots referring to the value.
// The returned slice is owned by the function and must not be mutated.
func (f *Function) Uses(v Value) []Use { return f.values[v].uses }

// Def returns the instruction defining the value, or an invalid handle for
// block parameters.
func (f *Function) Def(v Value) Inst { return f.values[v].def }

// ParamBlock returns the block owning a parameter value, or an invalid
// handle for instruction results.
func (f *Function) ParamBlock(v Value) Block {
	if f.values[v].def.IsValid() {
		return 0
	}

	return f.values[v].block
}

// ParamIndex returns the position of a parameter within its block.
func (f *Function) ParamIndex(v Value) int { return f.values[v].index }

// IsFuncArg reports whether the value is a function argument.
func (f *Function) IsFuncArg(v Value) bool {
	return !f.values[v].def.IsValid() && f.values[v].block == f.Entry()
}

// ConventionOf returns the passing convention of a function argument.
func (f *Function) ConventionOf(v Value) Convention { return f.values[v].conv }

// IsAddress reports whether the value is an address.
func (f *Function) IsAddress(v Value) bool { return f.values[v].addr }

// OwnershipOf returns the value's ownership.
func (f *Function) OwnershipOf(v Value) Ownership { return f.values[v].own }

// SetOperand rewrites one operand slot, keeping use lists consistent.
func (f *Function) SetOperand(i Inst, idx int, v Value) {
	old := f.insts[i].operands[idx]
	if old == v {
		return
	}

	f.removeUse(old, Use{User: i, Operand: idx})
	f.insts[i].operands[idx] = v
	f.values[v].uses = append(f.values[v].uses, Use{User: i, Operand: idx})
}

// ReplaceUses redirects all uses of old to v, except operands of the given
// instruction. An invalid except handle redirects every use.
func (f *Function) ReplaceUses(old, v Value, except Inst) {
	uses := slices.Clone(f.values[old].uses)
	for _, u := range uses {
		if u.User == except {
			continue
		}

		f.SetOperand(u.User, u.Operand, v)
	}
}

// Before reports whether a executes before b. Both must be in the same block.
func (f *Function) Before(a, b Inst) bool {
	blk := f.insts[a].block
	if blk != f.insts[b].block {
		msg := fmt.Errorf("ir: ordering instructions of different blocks: %s, %s", f.insts[a].op, f.insts[b].op)
		panic(msg)
	}

	return f.indexIn(blk, a) < f.indexIn(blk, b)
}

// Following returns the instruction after i within its block. The caller
// must ensure i is not the block's last instruction.
func (f *Function) Following(i Inst) Inst {
	blk := f.insts[i].block
	pos := f.indexIn(blk, i)

	insts := f.blocks[blk].insts
	if pos+1 >= len(insts) {
		msg := fmt.Errorf("ir: no instruction follows %s in block b%d", f.insts[i].op, blk)
		panic(msg)
	}

	return insts[pos+1]
}

// First returns the first instruction of a block.
func (f *Function) First(b Block) Inst {
	insts := f.blocks[b].insts
	if len(insts) == 0 {
		msg := fmt.Errorf("ir: block b%d has no instructions", b)
		panic(msg)
	}

	return insts[0]
}

// InsertBefore creates a resultless instruction immediately before pos.
func (f *Function) InsertBefore(pos Inst, op Opcode, operands ...Value) Inst {
	return f.insertAt(f.insts[pos].block, f.indexIn(f.insts[pos].block, pos), instData{op: op, operands: operands})
}

// InsertAfter creates a resultless instruction immediately after pos.
func (f *Function) InsertAfter(pos Inst, op Opcode, operands ...Value) Inst {
	return f.insertAt(f.insts[pos].block, f.indexIn(f.insts[pos].block, pos)+1, instData{op: op, operands: operands})
}

// InsertMarkerAfter creates an unresolved mark_dependence immediately after
// pos. The result value mirrors the dependent operand.
func (f *Function) InsertMarkerAfter(pos Inst, dependent, base Value) Inst {
	blk := f.insts[pos].block
	i := f.insertAt(blk, f.indexIn(blk, pos)+1, instData{
		op:       OpMarkDependence,
		operands: []Value{dependent, base},
	})
	f.insts[i].result = f.newValue(valueData{
		def:  i,
		addr: f.values[dependent].addr,
		own:  f.values[dependent].own,
	})

	return i
}

// RemoveInst deletes an instruction. Its result must be unused, and it must
// not be a terminator.
func (f *Function) RemoveInst(i Inst) {
	d := &f.insts[i]
	if d.op.IsTerminator() {
		msg := fmt.Errorf("ir: removing terminator %s", d.op)
		panic(msg)
	}

	if r := d.result; r.IsValid() && len(f.values[r].uses) > 0 {
		msg := fmt.Errorf("ir: removing %s whose result has %d uses", d.op, len(f.values[r].uses))
		panic(msg)
	}

	for idx, v := range d.operands {
		f.removeUse(v, Use{User: i, Operand: idx})
	}

	blk := &f.blocks[d.block]
	pos := f.indexIn(d.block, i)
	blk.insts = slices.Delete(blk.insts, pos, pos+1)

	*d = instData{op: OpInvalid}
}

// append adds a new instruction at the end of a block.
func (f *Function) append(b Block, d instData) Inst {
	return f.insertAt(b, len(f.blocks[b].insts), d)
}

// insertAt splices a new instruction into a block at the given position and
// registers its operand uses.
func (f *Function) insertAt(b Block, pos int, d instData) Inst {
	d.block = b
	f.insts = append(f.insts, d)
	i := Inst(len(f.insts) - 1)

	blk := &f.blocks[b]
	blk.insts = slices.Insert(blk.insts, pos, i)

	for idx, v := range d.operands {
		f.values[v].uses = append(f.values[v].uses, Use{User: i, Operand: idx})
	}

	return i
}

// newValue allocates a value arena entry.
func (f *Function) newValue(d valueData) Value {
	f.values = append(f.values, d)

	return Value(len(f.values) - 1)
}

// newResult allocates the result value of an instruction.
func (f *Function) newResult(i Inst, addr bool, own Ownership) Value {
	v := f.newValue(valueData{def: i, addr: addr, own: own})
	f.insts[i].result = v

	return v
}

// indexIn locates an instruction within its block.
func (f *Function) indexIn(b Block, i Inst) int {
	pos := slices.Index(f.blocks[b].insts, i)
	if pos < 0 {
		msg := fmt.Errorf("ir: instruction %s not in block b%d", f.insts[i].op, b)
		panic(msg)
	}

	return pos
}

// removeUse drops one use entry from a value's use list.
func (f *Function) removeUse(v Value, u Use) {
	uses := f.values[v].uses
	pos := slices.Index(uses, u)
	if pos < 0 {
		msg := fmt.Errorf("ir: unrecorded use of value v%d", v)
		panic(msg)
	}

	f.values[v].uses = slices.Delete(uses, pos, pos+1)
}

// addPred records a control-flow edge; called when terminators are built.
func (f *Function) addPred(from, to Block) {
	blk := &f.blocks[to]
	if !slices.Contains(blk.preds, from) {
		blk.preds = append(blk.preds, from)
	}
}
