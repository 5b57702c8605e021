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

//go:generate go tool stringer -type AccessKind,Ownership,Convention -linecomment -output types_string.go

// AccessKind is the kind of a formal access scope.
type AccessKind uint8

const (
	// ReadAccess is a read-only access.
	ReadAccess AccessKind = iota // read

	// ModifyAccess is a mutating access.
	ModifyAccess // modify
)

// Ownership classifies how a value is held.
type Ownership uint8

const (
	// OwnershipNone is for trivial values and addresses.
	OwnershipNone Ownership = iota // none

	// OwnershipOwned marks a uniquely owned value with a linear lifetime.
	OwnershipOwned // owned

	// OwnershipBorrowed marks a value borrowed from elsewhere.
	OwnershipBorrowed // borrowed
)

// Convention is the passing convention of a function argument.
type Convention uint8

const (
	// ConventionTrivial passes a value without ownership.
	ConventionTrivial Convention = iota // trivial

	// ConventionOwned transfers ownership to the callee.
	ConventionOwned // owned

	// ConventionBorrowed lends the value for the duration of the call.
	ConventionBorrowed // borrowed

	// ConventionInout passes the address of caller storage for mutation.
	ConventionInout // inout
)

// AllowsAccess reports whether an argument passed with this convention can
// anchor a formal access of the given kind.
func (c Convention) AllowsAccess(kind AccessKind) bool {
	switch c {
	case ConventionInout:
		return true

	case ConventionBorrowed:
		return kind == ReadAccess

	default:
		return false
	}
}

// ownership returns the ownership of a value passed with this convention.
func (c Convention) ownership() Ownership {
	switch c {
	case ConventionOwned:
		return OwnershipOwned

	case ConventionBorrowed:
		return OwnershipBorrowed

	default:
		return OwnershipNone
	}
}
