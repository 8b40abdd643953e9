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

package rewrite

import (
	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/resolver"
	"github.com/ceejbot/schema-tools/rwerror"
)

// AllOfOptions configures AllOfMerger (spec.md §4.5).
type AllOfOptions struct {
	// Soft selects the "flatten" flavor over the "hard merge" flavor. Both
	// run the identical algorithm below; a single-element allOf is
	// collapsed either way (spec.md §9, open question — this follows the
	// behavior of the source rather than the flavor's stated intent).
	Soft bool
	// LeaveInvalidProperties is accepted for interface parity but has no
	// observable effect: the contract for "valid sibling property of the
	// parent schema type" is left undefined pending a validator (spec.md
	// §4.5, §9).
	LeaveInvalidProperties bool
	// Filter gates which allOf-bearing nodes are folded. A nil Filter
	// folds every node.
	Filter *Filter
}

// AllOfMerger folds allOf arrays into their parent object, depth-first
// (spec.md §4.5).
type AllOfMerger struct {
	Options  AllOfOptions
	resolver *resolver.Resolver
}

// NewAllOfMerger returns an AllOfMerger that resolves $ref allOf entries
// through res.
func NewAllOfMerger(res *resolver.Resolver, opts AllOfOptions) *AllOfMerger {
	return &AllOfMerger{resolver: res, Options: opts}
}

// Trigger matches an object carrying an allOf array that the configured
// Filter accepts.
func (m *AllOfMerger) Trigger(obj *document.Object) bool {
	v, ok := obj.Get("allOf")
	if !ok {
		return false
	}
	if _, isArray := v.(*document.Array); !isArray {
		return false
	}
	return m.Options.Filter.Matches(obj)
}

// Handle implements the five-step fold of spec.md §4.5: recurse into every
// non-allOf sibling, resolve or recurse into each allOf entry, fold entries
// 2..N into the first as an accumulator, then merge the accumulator into
// the parent and drop the allOf key.
func (m *AllOfMerger) Handle(w *Walker, obj *document.Object) (document.Value, error) {
	allOfVal, _ := obj.Get("allOf")
	allOfArr := allOfVal.(*document.Array)

	rest, err := m.walkSiblings(w, obj)
	if err != nil {
		return nil, err
	}

	entries, err := m.resolveEntries(w, *allOfArr)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return rest, nil
	}

	accumulator := entries[0]
	for _, e := range entries[1:] {
		accumulator = document.Merge(accumulator, e)
	}

	return document.Merge(rest, accumulator), nil
}

func (m *AllOfMerger) walkSiblings(w *Walker, obj *document.Object) (*document.Object, error) {
	rest := document.NewObjectWithCapacity(obj.Len())
	var walkErr error
	obj.Range(func(k string, v document.Value) bool {
		if k == "allOf" {
			return true
		}
		w.Scope.PushProperty(k)
		nv, err := w.walk(v)
		w.Scope.Pop()
		if err != nil {
			walkErr = err
			return false
		}
		rest.Set(k, nv)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return rest, nil
}

func (m *AllOfMerger) resolveEntries(w *Walker, allOf document.Array) ([]document.Value, error) {
	entries := make([]document.Value, 0, len(allOf))
	for i, entry := range allOf {
		w.Scope.PushProperty("allOf")
		w.Scope.PushIndex(i)
		nv, err := m.processEntry(w, entry)
		w.Scope.Pop()
		w.Scope.Pop()
		if err != nil {
			return nil, err
		}
		entries = append(entries, nv)
	}
	return entries, nil
}

// processEntry resolves entry via Resolver when it is itself a $ref object,
// otherwise walks it directly (spec.md §4.5 step 3).
func (m *AllOfMerger) processEntry(w *Walker, entry document.Value) (document.Value, error) {
	if obj, ok := entry.(*document.Object); ok {
		if refVal, has := obj.Get("$ref"); has {
			if refStr, isString := refVal.(string); isString {
				resolved, err := m.resolver.Resolve(refStr, w.Scope, w.Process)
				if err != nil {
					if rerr, ok := err.(*rwerror.Error); ok {
						switch rerr.Kind {
						case rwerror.ReferenceSyntaxError, rwerror.ReferenceUnresolved:
							debugLog("allof %s: %v", w.Scope, rerr)
							return entry, nil
						}
					}
					return nil, err
				}
				return resolved, nil
			}
		}
	}
	return w.walk(entry)
}
