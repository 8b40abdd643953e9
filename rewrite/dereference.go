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
	"net/url"

	"golang.org/x/text/cases"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/ref"
	"github.com/ceejbot/schema-tools/resolver"
	"github.com/ceejbot/schema-tools/rwerror"
)

// DereferenceOptions configures the Dereferencer (spec.md §4.4).
type DereferenceOptions struct {
	// SkipRootInternalReferences, when true, leaves a fragment-only $ref
	// untouched while the current-document stack has exactly one element
	// (the root).
	SkipRootInternalReferences bool
	// CreateInternalReferences is accepted for interface parity with the
	// source options struct but is not exercised: collapsing repeated
	// resolutions to one materialized $ref is left as future work (spec.md
	// §9, open question).
	CreateInternalReferences bool
	// SkipReferences is a set of host names; references whose address's
	// host matches one of these (case-insensitively) are left as-is.
	SkipReferences []string
}

// Dereferencer inlines $ref targets in place, depth-first (spec.md §4.4).
type Dereferencer struct {
	Options  DereferenceOptions
	resolver *resolver.Resolver
	caser    cases.Caser
}

// NewDereferencer returns a Dereferencer resolving references through res.
func NewDereferencer(res *resolver.Resolver, opts DereferenceOptions) *Dereferencer {
	return &Dereferencer{resolver: res, Options: opts, caser: cases.Fold()}
}

// Trigger matches an object carrying a string $ref.
func (d *Dereferencer) Trigger(obj *document.Object) bool {
	v, ok := obj.Get("$ref")
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

// Handle resolves obj's $ref, merges obj's sibling keys over the resolved
// value, and returns the merged replacement. Non-fatal resolution failures
// (malformed $ref, unresolved fragment, a skipped host) leave obj
// unchanged with a warning; load failures and cyclic references are fatal
// and propagate.
func (d *Dereferencer) Handle(w *Walker, obj *document.Object) (document.Value, error) {
	refVal, _ := obj.Get("$ref")
	refStr := refVal.(string)

	parsed, perr := ref.Parse(refStr)
	if perr != nil {
		debugLog("dereference %s: %v", w.Scope, perr)
		return obj, nil
	}

	if d.Options.SkipRootInternalReferences && !parsed.HasAddress() && d.resolver.StackDepth() == 1 {
		return obj, nil
	}

	if d.skipHost(parsed) {
		debugLog("dereference %s: skipping %q (host in skip list)", w.Scope, refStr)
		return obj, nil
	}

	resolved, err := d.resolver.Resolve(refStr, w.Scope, w.Process)
	if err != nil {
		if rerr, ok := err.(*rwerror.Error); ok {
			switch rerr.Kind {
			case rwerror.ReferenceSyntaxError, rwerror.ReferenceUnresolved:
				debugLog("dereference %s: %v", w.Scope, rerr)
				return obj, nil
			}
		}
		return nil, err
	}

	return mergeSiblings(obj, resolved), nil
}

// mergeSiblings layers obj's non-$ref keys over resolved, overwriting any
// same-named key already present there. If resolved is not an object, the
// sibling keys are discarded and resolved is returned as-is (spec.md §4.4).
func mergeSiblings(obj *document.Object, resolved document.Value) document.Value {
	resolvedObj, ok := resolved.(*document.Object)
	if !ok {
		return resolved
	}
	result := resolvedObj.ShallowCopy()
	obj.Range(func(k string, v document.Value) bool {
		if k == "$ref" {
			return true
		}
		result.Set(k, v)
		return true
	})
	return result
}

func (d *Dereferencer) skipHost(r ref.Reference) bool {
	if len(d.Options.SkipReferences) == 0 || !r.HasAddress() {
		return false
	}
	u, err := url.Parse(r.Address())
	if err != nil || u.Host == "" {
		return false
	}
	host := d.caser.String(u.Host)
	for _, h := range d.Options.SkipReferences {
		if d.caser.String(h) == host {
			return true
		}
	}
	return false
}
