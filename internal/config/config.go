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

// Package config holds the behavior switches of the scope extension pass.
package config

// Behavior represents optional behaviors of the pass.
type Behavior uint8

const (
	// ExtendYieldScopes allows extending coroutine scopes by moving their
	// completion instructions.
	ExtendYieldScopes Behavior = 1 << iota

	// RedirectCallerDeps rewrites markers whose scope chain ends at caller
	// arguments to depend on those arguments directly.
	RedirectCallerDeps

	// NormalizeBorrowBases replaces compiler-introduced borrow bases with
	// the borrowed value before classification.
	NormalizeBorrowBases
)

// Flags is the set of enabled behaviors.
type Flags struct {
	mask Behavior
}

// DefaultFlags returns the flags with every behavior enabled.
func DefaultFlags() Flags {
	return Flags{mask: ExtendYieldScopes | RedirectCallerDeps | NormalizeBorrowBases}
}

// Set enables or disables one behavior.
func (f *Flags) Set(b Behavior, enabled bool) {
	if enabled {
		f.mask |= b
	} else {
		f.mask &^= b
	}
}

// Enabled reports whether the behavior is enabled.
func (f Flags) Enabled(b Behavior) bool {
	return f.mask&b != 0
}
