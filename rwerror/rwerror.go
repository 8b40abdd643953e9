// Copyright 2015 go-swagger maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rwerror carries the error taxonomy of spec.md §7: every fatal or
// non-fatal diagnostic the rewrite engine raises is tagged with a Kind and
// the Scope path at which it occurred.
package rwerror

import "fmt"

// Kind classifies a rewrite-engine error.
type Kind int

const (
	// LoadFailure is I/O, parse, or unsupported-scheme failure in the
	// Document Loader. Fatal — aborts the current rewrite.
	LoadFailure Kind = iota
	// ReferenceSyntaxError is a malformed $ref (e.g. more than one '#').
	// Non-fatal — the caller warns and leaves the node untouched.
	ReferenceSyntaxError
	// ReferenceUnresolved is a fragment that failed to navigate to a
	// target. Non-fatal.
	ReferenceUnresolved
	// CyclicReference is raised when Scope depth exceeds scope.MaxDepth.
	// Fatal.
	CyclicReference
	// FilterConfigError is an invalid Filter pattern. Fatal at
	// construction, before traversal begins.
	FilterConfigError
)

func (k Kind) String() string {
	switch k {
	case LoadFailure:
		return "LoadFailure"
	case ReferenceSyntaxError:
		return "ReferenceSyntaxError"
	case ReferenceUnresolved:
		return "ReferenceUnresolved"
	case CyclicReference:
		return "CyclicReference"
	case FilterConfigError:
		return "FilterConfigError"
	default:
		return "UnknownError"
	}
}

// Error is the structured error value returned on fatal rewrite failures,
// and the value logged for non-fatal diagnostics.
type Error struct {
	Kind  Kind
	Scope string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Scope, e.Err)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Scope)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error for the given kind, scope rendering and cause.
func New(kind Kind, scope string, err error) *Error {
	return &Error{Kind: kind, Scope: scope, Err: err}
}
