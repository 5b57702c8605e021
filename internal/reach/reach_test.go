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

package reach_test

import (
	"testing"

	. "fillmore-labs.com/scopext/internal/reach"
	"fillmore-labs.com/scopext/ir"
)

func TestCompletionStraightLine(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("straight")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	token := b.BeginCoroutine(nil, x)
	b.EndCoroutine(token)
	point := fn.Def(b.Copy(x))
	b.Return()

	o := NewOracle(fn)

	got, ok := o.CompletionReaching(fn.Def(token), point)
	if !ok || got != CompletionNormal {
		t.Errorf("CompletionReaching = %s, %v, want %s, true", got, ok, CompletionNormal)
	}
}

func TestCompletionBranches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		thenKind Completion
		elsKind  Completion
		want     Completion
		wantOK   bool
	}{
		{name: "BothNormal", thenKind: CompletionNormal, elsKind: CompletionNormal, want: CompletionNormal, wantOK: true},
		{name: "BothAbort", thenKind: CompletionAbort, elsKind: CompletionAbort, want: CompletionAbort, wantOK: true},
		{name: "Mixed", thenKind: CompletionNormal, elsKind: CompletionAbort, want: CompletionNone, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := ir.NewBuilder("branches")
			fn := b.Func()

			x := b.Arg(ir.ConventionBorrowed)
			token := b.BeginCoroutine(nil, x)

			then, els, join := b.Block(), b.Block(), b.Block()
			b.CondBr(then, els)

			complete := func(kind Completion) {
				if kind == CompletionAbort {
					b.AbortCoroutine(token)
				} else {
					b.EndCoroutine(token)
				}
			}

			b.SetBlock(then)
			complete(tt.thenKind)
			b.Br(join)

			b.SetBlock(els)
			complete(tt.elsKind)
			b.Br(join)

			b.SetBlock(join)
			point := fn.Def(b.Copy(x))
			b.Return()

			o := NewOracle(fn)

			got, ok := o.CompletionReaching(fn.Def(token), point)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CompletionReaching = %s, %v, want %s, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompletionMissing(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("missing")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	token := b.BeginCoroutine(nil, x)
	point := fn.Def(b.Copy(x))
	b.EndCoroutine(token)
	b.Return()

	o := NewOracle(fn)

	// The begin itself reaches the point without an intervening completion.
	if _, ok := o.CompletionReaching(fn.Def(token), point); ok {
		t.Error("CompletionReaching accepted a point inside the coroutine scope")
	}
}

func TestCompletionPinnedByResult(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("pinned")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	token := b.BeginCoroutine(nil, x)
	res := b.EndCoroutineResult(token)
	point := fn.Def(b.Copy(x))
	b.Return(res)

	o := NewOracle(fn)

	if _, ok := o.CompletionReaching(fn.Def(token), point); ok {
		t.Error("CompletionReaching accepted a completion that produces a result")
	}
}

func TestLocalReach(t *testing.T) {
	t.Parallel()

	b := ir.NewBuilder("local")
	fn := b.Func()

	x := b.Arg(ir.ConventionBorrowed)
	first := fn.Def(b.Copy(x))
	second := fn.Def(b.Copy(x))

	then, els := b.Block(), b.Block()
	b.CondBr(then, els)

	b.SetBlock(then)
	inThen := fn.Def(b.Copy(x))
	b.Return()

	b.SetBlock(els)
	inEls := fn.Def(b.Copy(x))
	b.Return()

	l := NewLocalReach(fn)

	tests := []struct {
		name     string
		from, to ir.Inst
		want     bool
	}{
		{name: "SameBlockForward", from: first, to: second, want: true},
		{name: "SameBlockBackward", from: second, to: first, want: false},
		{name: "AcrossEdge", from: first, to: inThen, want: true},
		{name: "SiblingBranches", from: inThen, to: inEls, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Reaches(tt.from, tt.to); got != tt.want {
				t.Errorf("Reaches = %v, want %v", got, tt.want)
			}
		})
	}
}
