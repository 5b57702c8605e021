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
	"strings"
)

// String renders the function in a stable textual form. Value numbers are
// arena handles, so the rendering of untouched instructions does not shift
// when the pass inserts or removes neighbors. Used for debug dumps and for
// before/after comparisons in tests.
func (f *Function) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "func @%s(", f.Name)

	for i, p := range f.Params(f.Entry()) {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%%%d : %s", p, f.values[p].conv)
	}

	sb.WriteString("):\n")

	for _, b := range f.Blocks() {
		f.printBlock(&sb, b)
	}

	return sb.String()
}

func (f *Function) printBlock(sb *strings.Builder, b Block) {
	fmt.Fprintf(sb, "bb%d", b)

	if params := f.Params(b); b != f.Entry() && len(params) > 0 {
		sb.WriteByte('(')

		for i, p := range params {
			if i > 0 {
				sb.WriteString(", ")
			}

			fmt.Fprintf(sb, "%%%d : %s", p, f.values[p].own)
		}

		sb.WriteByte(')')
	}

	sb.WriteString(":\n")

	for _, i := range f.blocks[b].insts {
		sb.WriteString("  ")
		f.printInst(sb, i)
		sb.WriteByte('\n')
	}
}

func (f *Function) printInst(sb *strings.Builder, i Inst) {
	d := &f.insts[i]

	if d.result.IsValid() {
		fmt.Fprintf(sb, "%%%d = ", d.result)
	}

	sb.WriteString(d.op.String())

	if d.op == OpBeginAccess {
		sb.WriteByte(' ')
		sb.WriteString(d.kind.String())
	}

	if d.op == OpBeginBorrow && d.visible {
		sb.WriteString(" [var]")
	}

	switch d.op {
	case OpBr:
		fmt.Fprintf(sb, " bb%d", d.dests[0])
		printArgs(sb, d.operands)

	case OpCondBr:
		fmt.Fprintf(sb, " bb%d, bb%d", d.dests[0], d.dests[1])

	default:
		for idx, v := range d.operands {
			if idx > 0 {
				sb.WriteByte(',')
			}

			fmt.Fprintf(sb, " %%%d", v)
		}
	}
}

func printArgs(sb *strings.Builder, args []Value) {
	if len(args) == 0 {
		return
	}

	sb.WriteByte('(')

	for i, v := range args {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(sb, "%%%d", v)
	}

	sb.WriteByte(')')
}
