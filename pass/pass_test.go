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

package pass_test

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"fillmore-labs.com/scopext/internal/testir"
	"fillmore-labs.com/scopext/ir"
	. "fillmore-labs.com/scopext/pass"
)

// narrowAccess builds a function whose access scope ends before the last
// use of the dependent value.
func narrowAccess(name string) *ir.Function {
	b := ir.NewBuilder(name)

	addr := b.Arg(ir.ConventionInout)
	a := b.BeginAccess(ir.ReadAccess, addr)
	v := b.Load(a)
	d := b.MarkDependence(v, a)
	b.EndAccess(a)
	b.Call(d)
	b.Return()

	return b.Func()
}

func TestFix(t *testing.T) {
	t.Parallel()

	fn := narrowAccess("f")

	p := New(WithLogger(zaptest.NewLogger(t)))

	if got := p.Fix(fn); got != 1 {
		t.Errorf("Fix = %d, want 1", got)
	}

	end := testir.FindOne(t, fn, ir.OpEndAccess)
	call := testir.FindOne(t, fn, ir.OpCall)

	if !fn.Before(call, end) {
		t.Error("Access scope still ends before the last use")
	}
}

func TestFixDisabledYield(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("yield")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	dep := b.Copy(x)
	token := b.BeginCoroutine([]int{0}, x)
	d := b.MarkDependence(dep, token)
	b.EndCoroutine(token)
	b.Call(d)
	b.Return()

	before := fn.String()

	p := New(WithLogger(zaptest.NewLogger(t)), WithYieldExtension(false))

	if got := p.Fix(fn); got != 0 {
		t.Errorf("Fix = %d, want 0", got)
	}

	if fn.String() != before {
		t.Error("Pass extended a coroutine scope with yield extension disabled")
	}
}

func TestFixAll(t *testing.T) {
	t.Parallel()

	fns := make([]*ir.Function, 16)
	for i := range fns {
		fns[i] = narrowAccess(fmt.Sprintf("f%d", i))
	}

	p := New(WithLogger(zaptest.NewLogger(t)))

	if err := p.FixAll(t.Context(), fns); err != nil {
		t.Fatalf("FixAll failed: %v", err)
	}

	for _, fn := range fns {
		end := testir.FindOne(t, fn, ir.OpEndAccess)
		call := testir.FindOne(t, fn, ir.OpCall)

		if !fn.Before(call, end) {
			t.Errorf("Function %s: access scope still ends before the last use", fn.Name)
		}
	}
}

func TestOptionsNil(t *testing.T) {
	t.Parallel()

	// nil options are ignored.
	p := New(nil, Options{WithCallerRedirect(true), nil}, WithBorrowNormalization(true))

	fn := narrowAccess("f")

	if got := p.Fix(fn); got != 1 {
		t.Errorf("Fix = %d, want 1", got)
	}
}
