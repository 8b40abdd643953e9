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

// Package rewrite implements Component D (spec.md §4.4–§4.6): the
// Dereferencer and the two AllOf-Merger flavors, sharing one depth-first
// traversal skeleton parameterized by a (trigger, handler) pair per
// spec.md §9 ("avoid a deep inheritance hierarchy").
package rewrite

import (
	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/scope"
)

// NodeRewriter is the trigger/handler pair a concrete rewrite supplies to
// Walker. Trigger inspects an object node; Handle produces its replacement
// when Trigger reports true. Handle is responsible for recursing into any
// children it still needs walked — the skeleton does not re-walk a node
// Handle already replaced.
type NodeRewriter interface {
	Trigger(obj *document.Object) bool
	Handle(w *Walker, obj *document.Object) (document.Value, error)
}

// Walker performs the shared depth-first traversal: children before
// triggers at each node (spec.md §4.6), Scope pushed before descent and
// popped after regardless of error.
type Walker struct {
	Scope    *scope.Scope
	rewriter NodeRewriter
}

// NewWalker returns a Walker driven by r, with a fresh Scope at the
// document root.
func NewWalker(r NodeRewriter) *Walker {
	return &Walker{Scope: scope.New(), rewriter: r}
}

// Process adapts Walker to resolver.ProcessFunc: Resolver calls this on a
// resolved target so the target's own nested $refs/allOf expand under its
// document's context before Resolve returns.
func (w *Walker) Process(v document.Value) (document.Value, error) {
	return w.walk(v)
}

// Walk runs the full traversal over root and returns the rewritten tree.
func (w *Walker) Walk(root document.Value) (document.Value, error) {
	return w.walk(root)
}

func (w *Walker) walk(v document.Value) (document.Value, error) {
	switch t := v.(type) {
	case *document.Object:
		return w.walkObject(t)
	case *document.Array:
		return w.walkArray(t)
	default:
		return v, nil
	}
}

func (w *Walker) walkObject(obj *document.Object) (document.Value, error) {
	if w.rewriter.Trigger(obj) {
		return w.rewriter.Handle(w, obj)
	}

	result := document.NewObjectWithCapacity(obj.Len())
	var walkErr error
	obj.Range(func(k string, v document.Value) bool {
		w.Scope.PushProperty(k)
		nv, err := w.walk(v)
		w.Scope.Pop()
		if err != nil {
			walkErr = err
			return false
		}
		result.Set(k, nv)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return result, nil
}

func (w *Walker) walkArray(arr *document.Array) (document.Value, error) {
	result := make(document.Array, 0, len(*arr))
	for i, elem := range *arr {
		w.Scope.PushIndex(i)
		nv, err := w.walk(elem)
		w.Scope.Pop()
		if err != nil {
			return nil, err
		}
		result = append(result, nv)
	}
	return &result, nil
}
