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

package ir_test

import (
	"slices"
	"testing"

	. "fillmore-labs.com/scopext/ir"
)

func TestBuilderDiamond(t *testing.T) {
	t.Parallel()

	b := NewBuilder("diamond")
	fn := b.Func()

	x := b.Arg(ConventionOwned)

	then, els, join := b.Block(), b.Block(), b.Block()
	p := b.Param(join, OwnershipOwned, false)

	b.CondBr(then, els)

	b.SetBlock(then)
	b.Br(join, x)

	b.SetBlock(els)
	b.Br(join, x)

	b.SetBlock(join)
	b.Return(p)

	if got, want := fn.Succs(fn.Entry()), []Block{then, els}; !slices.Equal(got, want) {
		t.Errorf("Entry successors = %v, want %v", got, want)
	}

	if got, want := fn.Preds(join), []Block{then, els}; !slices.Equal(got, want) {
		t.Errorf("Join predecessors = %v, want %v", got, want)
	}

	if got := fn.Terminator(join); fn.Op(got) != OpReturn {
		t.Errorf("Join terminator = %s, want %s", fn.Op(got), OpReturn)
	}

	// The argument flows into the join parameter through both branches.
	if got := len(fn.Uses(x)); got != 2 {
		t.Errorf("Argument uses = %d, want 2", got)
	}

	if got := len(fn.Uses(p)); got != 1 {
		t.Errorf("Parameter uses = %d, want 1", got)
	}
}

func TestInsertionOrder(t *testing.T) {
	t.Parallel()

	b := NewBuilder("order")
	fn := b.Func()

	x := b.Arg(ConventionOwned)
	c := b.Copy(x)
	ret := b.Return(c)

	def := fn.Def(c)

	before := fn.InsertBefore(ret, OpDestroy, x)
	after := fn.InsertAfter(def, OpEndAccess, c)

	// Expected block order: copy, end_access, destroy, return.
	if !fn.Before(def, after) || !fn.Before(after, before) || !fn.Before(before, ret) {
		t.Error("Inserted instructions are out of order")
	}

	if got := fn.First(fn.Entry()); got != def {
		t.Errorf("First = %v, want %v", got, def)
	}

	if got := fn.Following(after); got != before {
		t.Errorf("Following = %v, want %v", got, before)
	}
}

func TestReplaceUses(t *testing.T) {
	t.Parallel()

	b := NewBuilder("replace")
	fn := b.Func()

	x := b.Arg(ConventionOwned)
	c := b.Copy(x)
	d1 := b.Destroy(c)
	d2 := b.Destroy(c)
	b.Return()

	fn.ReplaceUses(c, x, d2)

	if got := fn.Operand(d1, 0); got != x {
		t.Errorf("Replaced operand = %v, want %v", got, x)
	}

	if got := fn.Operand(d2, 0); got != c {
		t.Errorf("Excepted operand = %v, want %v", got, c)
	}
}

func TestRemoveInst(t *testing.T) {
	t.Parallel()

	b := NewBuilder("remove")
	fn := b.Func()

	x := b.Arg(ConventionOwned)
	d := b.Destroy(x)
	ret := b.Return()

	fn.RemoveInst(d)

	if got, want := fn.Insts(fn.Entry()), []Inst{ret}; !slices.Equal(got, want) {
		t.Errorf("Instructions after removal = %v, want %v", got, want)
	}

	if got := len(fn.Uses(x)); got != 0 {
		t.Errorf("Uses after removal = %d, want 0", got)
	}
}

func TestInsertMarkerAfter(t *testing.T) {
	t.Parallel()

	b := NewBuilder("marker")
	fn := b.Func()

	x := b.Arg(ConventionBorrowed)
	y := b.Arg(ConventionBorrowed)
	md := fn.Def(b.MarkDependence(x, y))

	m := fn.InsertMarkerAfter(md, fn.Result(md), y)

	if fn.Resolved(m) {
		t.Error("Fresh marker is resolved")
	}

	fn.Resolve(m)

	if !fn.Resolved(m) {
		t.Error("Marker is not resolved")
	}

	r := fn.Result(m)
	if fn.OwnershipOf(r) != fn.OwnershipOf(fn.Result(md)) || fn.IsAddress(r) != fn.IsAddress(fn.Result(md)) {
		t.Error("Marker result does not mirror its dependent")
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	b := NewBuilder("f")

	x := b.Arg(ConventionOwned)
	bor := b.BeginBorrow(x, true)
	b.EndBorrow(bor)
	b.Return(x)

	want := `func @f(%1 : owned):
bb1:
  %2 = begin_borrow [var] %1
  end_borrow %2
  return %1
`

	if got := b.Func().String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
