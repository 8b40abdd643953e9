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

// Package resolver implements Component C (spec.md §4.3): it turns a $ref
// string plus the current Scope and current-document stack into a resolved,
// deep-cloned JSON value, switching the active document across Storage as
// needed and guarding against unbounded $ref recursion.
package resolver

import (
	"fmt"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/loader"
	"github.com/ceejbot/schema-tools/ref"
	"github.com/ceejbot/schema-tools/rwerror"
	"github.com/ceejbot/schema-tools/scope"
	"github.com/ceejbot/schema-tools/storage"
)

// ProcessFunc is the rewriter's reentrant node processor: Resolver hands it
// the resolved (and already cloned) target so nested $refs inside it expand
// under the target document's context. Passed as a callback rather than a
// back-reference to keep the ownership graph a tree (spec.md §9).
type ProcessFunc func(document.Value) (document.Value, error)

// Resolver tracks the current-document stack for one rewrite invocation. It
// is not safe for concurrent use; a rewrite is single-threaded (spec.md §5).
type Resolver struct {
	storage *storage.Storage
	loader  *loader.Loader
	// stack is the current-document stack: stack[0] is always the root
	// schema's URL (spec.md §3's invariant), stack[len-1] is active.
	stack []string
}

// New returns a Resolver backed by store and ld. Open must be called once
// before Resolve.
func New(store *storage.Storage, ld *loader.Loader) *Resolver {
	return &Resolver{storage: store, loader: ld}
}

// Open loads the root document at url, sets it as the sole entry of the
// current-document stack, and returns its root value — the same value
// stored in Storage, not a clone. Rewriters build a new tree from it rather
// than mutating it; the engine then stores that tree as the Schema's Root.
func (r *Resolver) Open(url string) (document.Value, error) {
	schema, err := r.storage.GetOrLoad(url, func() (document.Value, error) {
		return r.loader.Load(url)
	})
	if err != nil {
		return nil, err
	}
	r.stack = []string{url}
	return schema.Root, nil
}

// ActiveURL returns the URL at the top of the current-document stack.
func (r *Resolver) ActiveURL() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1]
}

// StackDepth reports the length of the current-document stack, the root
// document included — used by tests asserting the stack returns to 1
// after a rewrite completes.
func (r *Resolver) StackDepth() int {
	return len(r.stack)
}

// Resolve implements the six-step resolution algorithm of spec.md §4.3.
// process is called on the resolved (cloned) target so its own nested
// $refs expand before Resolve returns. sc is the caller's live Scope; it is
// pushed for the duration of the recursion into process and popped before
// Resolve returns, so push/pop stay balanced even on error.
func (r *Resolver) Resolve(raw string, sc *scope.Scope, process ProcessFunc) (document.Value, error) {
	reference, err := ref.Parse(raw)
	if err != nil {
		return nil, err
	}

	pushedDoc := false
	if reference.HasAddress() {
		absolute, rerr := r.resolveAddress(reference)
		if rerr != nil {
			return nil, rerr
		}
		schema, lerr := r.storage.GetOrLoad(absolute, func() (document.Value, error) {
			return r.loader.Load(absolute)
		})
		if lerr != nil {
			return nil, rwerror.New(rwerror.LoadFailure, sc.String(), lerr)
		}
		r.stack = append(r.stack, absolute)
		pushedDoc = true
	}
	if pushedDoc {
		defer func() { r.stack = r.stack[:len(r.stack)-1] }()
	}

	activeSchema, ok := r.storage.Get(r.ActiveURL())
	if !ok {
		return nil, rwerror.New(rwerror.LoadFailure, sc.String(), fmt.Errorf("no schema loaded for %q", r.ActiveURL()))
	}

	target, nerr := document.Navigate(activeSchema.Root, reference.Pointer())
	if nerr != nil {
		return nil, rwerror.New(rwerror.ReferenceUnresolved, sc.String(), fmt.Errorf("navigate %q in %q: %w", reference.Pointer(), r.ActiveURL(), nerr))
	}

	sc.PushProperty(raw)
	if sc.Len() > scope.MaxDepth {
		sc.Pop()
		return nil, rwerror.New(rwerror.CyclicReference, sc.String(), fmt.Errorf("reference chain exceeds depth %d at %q", scope.MaxDepth, raw))
	}
	defer sc.Pop()

	resolved, perr := process(document.Clone(target))
	if perr != nil {
		return nil, perr
	}
	return resolved, nil
}

// resolveAddress joins a relative reference address against the active
// document's URL, returning the absolute address (fragment stripped).
func (r *Resolver) resolveAddress(reference ref.Reference) (string, error) {
	base, err := ref.Parse(r.ActiveURL())
	if err != nil {
		return "", err
	}
	resolved, err := reference.Resolve(base)
	if err != nil {
		return "", err
	}
	return resolved.Address(), nil
}
