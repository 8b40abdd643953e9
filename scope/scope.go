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

// Package scope tracks the current JSON-pointer path during a tree walk, for
// diagnostics and for bounding unresolved $ref recursion (spec.md §4.3).
package scope

import (
	"strconv"
	"strings"
)

// MaxDepth is the hard limit on Scope length used by resolver.Resolver to
// detect a cyclic $ref chain. Ground truth: original_source's dereference.rs
// checks `context.scope.len() > 50` before re-entering a resolved node.
const MaxDepth = 50

// segment is one step of a Scope: either a property name or an array index.
type segment struct {
	name    string
	index   int
	isIndex bool
}

// Scope is an ordered, mutable stack of path segments. Push/pop must be
// strictly balanced across all recursion (spec.md §3's scope-balance
// invariant) — Len() lets callers (and property-based tests) verify that.
type Scope struct {
	segments []segment
}

// New returns an empty Scope, positioned at the document root.
func New() *Scope {
	return &Scope{}
}

// Len returns the current depth of the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.segments)
}

// PushProperty descends into an object property.
func (s *Scope) PushProperty(name string) {
	s.segments = append(s.segments, segment{name: name})
}

// PushIndex descends into an array element.
func (s *Scope) PushIndex(i int) {
	s.segments = append(s.segments, segment{index: i, isIndex: true})
}

// Pop ascends out of the most recently entered segment. Popping an empty
// scope is a no-op — callers that pop unconditionally in a defer still
// behave correctly at the root.
func (s *Scope) Pop() {
	if len(s.segments) == 0 {
		return
	}
	s.segments = s.segments[:len(s.segments)-1]
}

// String renders the scope as a JSON-pointer-like string, e.g.
// "#/properties/name/allOf/0", used in diagnostics and error messages.
func (s *Scope) String() string {
	if s == nil || len(s.segments) == 0 {
		return "#"
	}
	var b strings.Builder
	b.WriteString("#")
	for _, seg := range s.segments {
		b.WriteByte('/')
		if seg.isIndex {
			b.WriteString(strconv.Itoa(seg.index))
		} else {
			b.WriteString(escapeToken(seg.name))
		}
	}
	return b.String()
}

// escapeToken applies RFC 6901 JSON pointer token escaping.
func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
