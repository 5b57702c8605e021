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

// Package pass implements the scope extension pass over mid-level IR.
//
// # Overview
//
// A dependency marker (mark_dependence) pins a value to the scope of its
// base. Earlier stages emit the marker next to the base's definition, which
// is often a scope too narrow for the marked value's uses.
//
// # Example
//
// Before:
//
//	%a = begin_access [read] %storage
//	%v = load %a
//	%d = mark_dependence %v on %a
//	end_access %a        // scope ends before the last use of %d
//	call %f(%d)
//
// After running the pass:
//
//	%a = begin_access [read] %storage
//	%v = load %a
//	%d = mark_dependence %v on %a
//	call %f(%d)
//	end_access %a        // scope extended past the last use
//
// The pass walks the chain of scopes protecting the base, widens each one
// until it covers every transitive use of the marked value, and, when the
// chain bottoms out at caller arguments, redirects the marker to depend on
// those arguments directly.
package pass
