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

// Package scope classifies the base of a dependency marker into the closed
// set of scope kinds the extension pass distinguishes.
package scope

import (
	"fmt"

	"fillmore-labs.com/scopext/ir"
)

// Kind is the kind of scope protecting a dependency base.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota // invalid

	// KindAccess is a formal access scope on an address.
	KindAccess // access
	// KindBorrow is a value-borrow scope.
	KindBorrow // borrow
	// KindYield is the region between a coroutine's begin and a completion.
	KindYield // yield
	// KindInitialized is the region anchored by a borrowing store.
	KindInitialized // initialized

	// KindCaller is a function argument; its scope is the caller's and
	// already maximal within this function.
	KindCaller // caller
	// KindOwned is a uniquely owned value bounded by linear liveness.
	KindOwned // owned
	// KindBorrowed is a borrowed or trivial value with no tighter bound.
	KindBorrowed // borrowed
	// KindLocal is function-local storage.
	KindLocal // local

	// KindUnknown is a base this pass cannot analyze.
	KindUnknown // unknown
)

// Extendable reports whether scopes of this kind have end instructions the
// pass may push outward.
func (k Kind) Extendable() bool {
	switch k {
	case KindAccess, KindBorrow, KindYield, KindInitialized:
		return true

	default:
		return false
	}
}

// Scope describes the innermost scope protecting a dependency base: a tagged
// variant over the scope-opening instruction (extendable kinds) or the
// anchoring value (terminal kinds).
type Scope struct {
	Kind  Kind
	Begin ir.Inst  // scope-opening instruction, extendable kinds only
	Value ir.Value // anchoring value, terminal kinds only
}

// Classify resolves the scope protecting base, looking through dependence
// forwarding and interior address projections.
func Classify(fn *ir.Function, base ir.Value) Scope {
	for {
		def := fn.Def(base)
		if !def.IsValid() {
			if fn.IsFuncArg(base) {
				return Scope{Kind: KindCaller, Value: base}
			}

			return classifyValue(fn, base)
		}

		switch fn.Op(def) {
		case ir.OpBeginAccess:
			return Scope{Kind: KindAccess, Begin: def}

		case ir.OpBeginBorrow:
			return Scope{Kind: KindBorrow, Begin: def}

		case ir.OpBeginCoroutine:
			return Scope{Kind: KindYield, Begin: def}

		case ir.OpStoreBorrow:
			return Scope{Kind: KindInitialized, Begin: def}

		case ir.OpAllocLocal:
			return Scope{Kind: KindLocal, Value: base}

		case ir.OpMarkDependence:
			base = fn.Operand(def, 0) // look through the forwarded dependent

		case ir.OpFieldAddr:
			base = fn.Operand(def, 0)

		case ir.OpCopy, ir.OpLoad:
			return Scope{Kind: KindOwned, Value: base}

		default:
			return classifyValue(fn, base)
		}
	}
}

// classifyValue buckets a value with no scope-opening definition.
func classifyValue(fn *ir.Function, v ir.Value) Scope {
	if fn.OwnershipOf(v) == ir.OwnershipOwned {
		return Scope{Kind: KindOwned, Value: v}
	}

	// Borrowed and trivial values are valid across the whole function.
	return Scope{Kind: KindBorrowed, Value: v}
}

// Ends returns the scope's ending instructions. Every extendable scope must
// have at least one end reachable through its begin's uses; a violation
// means the upstream stage produced malformed IR.
func (s Scope) Ends(fn *ir.Function) []ir.Inst {
	if !s.Kind.Extendable() {
		return nil
	}

	token := fn.Result(s.Begin)

	var ends []ir.Inst

	for _, u := range fn.Uses(token) {
		if s.endsWith(fn.Op(u.User)) {
			ends = append(ends, u.User)
		}
	}

	if len(ends) == 0 {
		msg := fmt.Errorf("scope: extendable %s scope at %s has no ending instruction", s.Kind, fn.Op(s.Begin))
		panic(msg)
	}

	return ends
}

// endsWith reports whether op closes a scope of this kind.
func (s Scope) endsWith(op ir.Opcode) bool {
	switch s.Kind {
	case KindAccess:
		return op == ir.OpEndAccess

	case KindBorrow, KindInitialized:
		return op == ir.OpEndBorrow

	case KindYield:
		return op == ir.OpEndCoroutine || op == ir.OpAbortCoroutine

	default:
		return false
	}
}
