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

package config_test

import (
	"testing"

	. "fillmore-labs.com/scopext/internal/config"
)

func TestDefaultFlags(t *testing.T) {
	t.Parallel()

	flags := DefaultFlags()

	for _, b := range []Behavior{ExtendYieldScopes, RedirectCallerDeps, NormalizeBorrowBases} {
		if !flags.Enabled(b) {
			t.Errorf("Behavior %b is not enabled by default", b)
		}
	}
}

func TestFlagsSet(t *testing.T) {
	t.Parallel()

	var flags Flags

	flags.Set(ExtendYieldScopes, true)
	flags.Set(RedirectCallerDeps, true)
	flags.Set(ExtendYieldScopes, false)

	if flags.Enabled(ExtendYieldScopes) {
		t.Error("Disabled behavior is enabled")
	}

	if !flags.Enabled(RedirectCallerDeps) {
		t.Error("Enabled behavior is disabled")
	}
}
