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

// Package ir implements the mid-level intermediate representation the scope
// extension pass operates on.
//
// A [Function] is a control-flow graph of basic blocks. Blocks, instructions
// and values are referenced by stable integer handles ([Block], [Inst],
// [Value]) into per-function arenas, so instructions can be inserted and
// removed mid-analysis without invalidating references held by a worklist.
//
// Instructions produce at most one result value. Values merge at block
// parameters, which are populated by the arguments of unconditional branches.
// The parameters of the entry block are the function arguments and carry a
// passing [Convention].
//
// Some instructions open scopes, regions of guaranteed validity for a
// resource bounded by explicit end instructions: begin_access/end_access,
// begin_borrow/end_borrow, store_borrow/end_borrow, and
// begin_coroutine paired with the alternative completions end_coroutine and
// abort_coroutine. The mark_dependence instruction asserts that its dependent
// operand is only valid while its base operand remains within such a scope.
package ir
