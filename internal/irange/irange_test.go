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

package irange_test

import (
	"slices"
	"testing"

	. "fillmore-labs.com/scopext/internal/irange"
	"fillmore-labs.com/scopext/ir"
)

func TestStraightLine(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("straight")
	fn := b.Func()

	x := b.Arg(ir.ConventionOwned)
	early := fn.Def(b.Copy(x))
	begin := fn.Def(b.Copy(x))
	mid := fn.Def(b.Copy(x))
	late := fn.Def(b.Copy(x))
	b.Return()

	r := New(fn, begin)
	defer r.Release()

	r.Insert(mid)

	if !r.Valid() {
		t.Fatal("Range invalid after dominated insert")
	}

	if r.TryInsert(early) {
		t.Error("TryInsert accepted a member above the begin")
	}

	if !r.Valid() {
		t.Error("TryInsert failure invalidated the range")
	}

	if !r.Contains(mid) || r.Contains(late) || r.Contains(early) {
		t.Error("Contains does not match the inserted members")
	}

	if got, want := r.Boundary(), []ir.Inst{late}; !slices.Equal(got, want) {
		t.Errorf("Boundary = %v, want %v", got, want)
	}
}

func TestBranch(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("branch")
	fn := b.Func()

	x := b.Arg(ir.ConventionOwned)
	begin := fn.Def(b.Copy(x))

	then, els := b.Block(), b.Block()
	b.CondBr(then, els)

	b.SetBlock(then)
	thenUse := fn.Def(b.Copy(x))
	thenRet := b.Return()

	b.SetBlock(els)
	elsFirst := fn.Def(b.Copy(x))
	b.Return()

	r := New(fn, begin)
	defer r.Release()

	r.Insert(thenUse)

	if !r.Valid() {
		t.Fatal("Range invalid after dominated insert")
	}

	if r.Contains(elsFirst) {
		t.Error("Contains includes the untaken branch")
	}

	got := r.Boundary()
	want := []ir.Inst{thenRet, elsFirst}

	slices.Sort(got)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("Boundary = %v, want %v", got, want)
	}
}

func TestDominanceFailure(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("undominated")
	fn := b.Func()

	x := b.Arg(ir.ConventionOwned)

	then, els, join := b.Block(), b.Block(), b.Block()
	b.CondBr(then, els)

	b.SetBlock(then)
	begin := fn.Def(b.Copy(x))
	b.Br(join)

	b.SetBlock(els)
	b.Br(join)

	b.SetBlock(join)
	use := fn.Def(b.Copy(x))
	b.Return()

	r := New(fn, begin)
	defer r.Release()

	r.Insert(use)

	if r.Valid() {
		t.Error("Insert accepted a member the begin does not dominate")
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("clone")
	fn := b.Func()

	x := b.Arg(ir.ConventionOwned)
	begin := fn.Def(b.Copy(x))
	mid := fn.Def(b.Copy(x))
	late := fn.Def(b.Copy(x))
	b.Return()

	r := New(fn, begin)
	defer r.Release()

	c := r.Clone()
	defer c.Release()

	c.Insert(mid)

	if r.Contains(mid) {
		t.Error("Mutating a clone changed the original")
	}

	if !c.Contains(mid) || c.Contains(late) {
		t.Error("Clone does not match the inserted members")
	}
}
