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

// Package testir provides utilities for querying IR functions in tests.
//
// It is designed to simplify testing of the scope extension pass by handling
// common boilerplate for locating instructions after a pass mutated the
// function.
package testir

import (
	"testing"

	"fillmore-labs.com/scopext/ir"
)

// FindAll returns every instruction of the function with the given opcode,
// in block and instruction order.
func FindAll(fn *ir.Function, op ir.Opcode) []ir.Inst {
	var found []ir.Inst

	for _, b := range fn.Blocks() {
		for _, i := range fn.Insts(b) {
			if fn.Op(i) == op {
				found = append(found, i)
			}
		}
	}

	return found
}

// FindOne returns the single instruction of the function with the given
// opcode and fails the test otherwise.
func FindOne(tb testing.TB, fn *ir.Function, op ir.Opcode) ir.Inst {
	tb.Helper()

	found := FindAll(fn, op)
	if len(found) != 1 {
		tb.Fatalf("Expected one %s instruction, got %d", op, len(found))
	}

	return found[0]
}

// Count returns the number of instructions with the given opcode.
func Count(fn *ir.Function, op ir.Opcode) int {
	return len(FindAll(fn, op))
}
