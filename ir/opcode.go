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

// Opcode identifies the operation an instruction performs.
type Opcode uint8

//go:generate go tool stringer -type Opcode -linecomment
const (
	// OpInvalid marks an instruction slot that has been removed.
	OpInvalid Opcode = iota // invalid

	// OpAllocLocal allocates function-local storage and produces its address.
	OpAllocLocal // alloc_local
	// OpDeallocLocal ends the lifetime of function-local storage.
	OpDeallocLocal // dealloc_local

	// OpBeginAccess opens a formal access scope on an address.
	OpBeginAccess // begin_access
	// OpEndAccess closes the access scope opened by its operand's definition.
	OpEndAccess // end_access

	// OpBeginBorrow opens a borrow scope on a value.
	OpBeginBorrow // begin_borrow
	// OpEndBorrow closes a borrow or initialized-store scope.
	OpEndBorrow // end_borrow

	// OpStoreBorrow initializes local storage by borrowing its source.
	// The result is the initialized address, valid until a paired end_borrow.
	OpStoreBorrow // store_borrow

	// OpStore writes a value through an address.
	OpStore // store
	// OpLoad reads a value from an address.
	OpLoad // load
	// OpFieldAddr projects an interior address out of an address.
	OpFieldAddr // field_addr

	// OpCopy produces an independently owned copy of a value.
	OpCopy // copy
	// OpDestroy consumes an owned value, ending its linear lifetime.
	OpDestroy // destroy
	// OpCall applies an opaque callee to its operands.
	OpCall // call

	// OpBeginCoroutine starts a coroutine and produces its yielded value,
	// which doubles as the token consumed by the completions.
	OpBeginCoroutine // begin_coroutine
	// OpEndCoroutine is the normal completion of a coroutine. It may carry
	// a result of its own.
	OpEndCoroutine // end_coroutine
	// OpAbortCoroutine is the aborting completion of a coroutine.
	OpAbortCoroutine // abort_coroutine

	// OpMarkDependence asserts that its first operand is valid only while
	// its base (second) operand stays within its scope.
	OpMarkDependence // mark_dependence

	// OpBr branches unconditionally, passing arguments to the destination's
	// block parameters.
	OpBr // br
	// OpCondBr branches to one of two destinations. The branch condition is
	// abstract; the scope extension pass never inspects it.
	OpCondBr // cond_br
	// OpReturn returns from the function with an optional value.
	OpReturn // return
	// OpUnreachable terminates a block that control never leaves normally.
	OpUnreachable // unreachable
)

// IsTerminator reports whether the opcode ends a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpBr, OpCondBr, OpReturn, OpUnreachable:
		return true

	default:
		return false
	}
}

// OpensScope reports whether the opcode begins a begin/end bounded region.
func (op Opcode) OpensScope() bool {
	switch op {
	case OpBeginAccess, OpBeginBorrow, OpStoreBorrow, OpBeginCoroutine:
		return true

	default:
		return false
	}
}

// EndsScope reports whether the opcode closes a begin/end bounded region.
func (op Opcode) EndsScope() bool {
	switch op {
	case OpEndAccess, OpEndBorrow, OpEndCoroutine, OpAbortCoroutine:
		return true

	default:
		return false
	}
}
