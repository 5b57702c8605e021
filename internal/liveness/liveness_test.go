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

package liveness_test

import (
	"testing"

	. "fillmore-labs.com/scopext/internal/liveness"
	"fillmore-labs.com/scopext/ir"
)

func TestValueBound(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("value")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	v := b.Copy(x)
	use := fn.Def(b.Copy(v))
	destroy := b.Destroy(v)
	after := fn.Def(b.Copy(x))
	b.Return()

	bound := ValueBound(fn, v)
	defer bound.Release()

	if !bound.Covers(use) || !bound.Covers(destroy) {
		t.Error("Bound excludes uses before the consumer")
	}

	if bound.Covers(after) {
		t.Error("Bound covers an instruction past the destroy")
	}
}

func TestValueBoundBranches(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("branches")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	v := b.Copy(x)

	then, els := b.Block(), b.Block()
	b.CondBr(then, els)

	b.SetBlock(then)
	thenUse := fn.Def(b.Copy(x))
	thenDestroy := b.Destroy(v)
	thenAfter := fn.Def(b.Copy(x))
	b.Return()

	b.SetBlock(els)
	elsUse := fn.Def(b.Copy(x))
	b.Destroy(v)
	b.Return()

	bound := ValueBound(fn, v)
	defer bound.Release()

	if !bound.Covers(thenUse) || !bound.Covers(elsUse) {
		t.Error("Bound excludes uses on consuming paths")
	}

	if !bound.Covers(thenDestroy) {
		t.Error("Bound excludes the consumer itself")
	}

	if bound.Covers(thenAfter) {
		t.Error("Bound covers an instruction past a branch-local destroy")
	}
}

func TestValueBoundBorrowed(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("borrowed")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	last := b.Return(x)

	bound := ValueBound(fn, x)
	defer bound.Release()

	if !bound.Covers(last) {
		t.Error("Borrowed values are not bounded")
	}
}

func TestAddressBound(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("address")
	fn := b.Func()

	x := b.Arg(ir.ConventionOwned)
	local := b.AllocLocal()
	b.Store(x, local)
	access := b.BeginAccess(ir.ReadAccess, local)
	use := fn.Def(b.Load(access))
	b.EndAccess(access)
	dealloc := b.DeallocLocal(local)
	after := fn.Def(b.Copy(x))
	b.Return()

	bound := AddressBound(fn, local, fn.Def(access))
	defer bound.Release()

	if !bound.Covers(use) || !bound.Covers(dealloc) {
		t.Error("Bound excludes uses before the dealloc")
	}

	if bound.Covers(after) {
		t.Error("Bound covers an instruction past the dealloc")
	}
}

func TestAddressBoundArgument(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("inout")
	fn := b.Func()

	addr := b.Arg(ir.ConventionInout)
	access := b.BeginAccess(ir.ModifyAccess, addr)
	b.EndAccess(access)
	last := b.Return()

	bound := AddressBound(fn, addr, fn.Def(access))
	defer bound.Release()

	if !bound.Covers(last) {
		t.Error("Caller storage is not bounded within the function")
	}
}
