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

// Package ref implements the $ref grammar of spec.md §6:
//
//	#<json-pointer>                    fragment only, current document
//	<relative-url>[#<json-pointer>]    resolved against the active document
//	<absolute-url>[#<json-pointer>]    absolute
//
// on top of github.com/go-openapi/jsonreference, the same library the
// teacher's own Ref type (go-openapi/spec's ref.go) wraps.
package ref

import (
	"fmt"
	"strings"

	"github.com/go-openapi/jsonreference"

	"github.com/ceejbot/schema-tools/rwerror"
)

// Reference is a parsed $ref string.
type Reference struct {
	raw string
	jsonreference.Ref
}

// Parse validates and parses a raw $ref string. A reference with more than
// one '#' is a ReferenceSyntaxError (spec.md §4.3 step 1).
func Parse(raw string) (Reference, error) {
	if strings.Count(raw, "#") > 1 {
		return Reference{}, rwerror.New(rwerror.ReferenceSyntaxError, "", fmt.Errorf("cannot parse reference %q: more than one '#'", raw))
	}

	r, err := jsonreference.New(raw)
	if err != nil {
		return Reference{}, rwerror.New(rwerror.ReferenceSyntaxError, "", fmt.Errorf("cannot parse reference %q: %w", raw, err))
	}

	return Reference{raw: raw, Ref: r}, nil
}

// HasAddress reports whether the reference names a document (as opposed to
// being a pure fragment that targets the active document).
func (r Reference) HasAddress() bool {
	return r.Address() != ""
}

// Address returns the non-fragment part of the reference — empty for a
// fragment-only reference such as "#/definitions/Pet".
func (r Reference) Address() string {
	u := r.GetURL()
	if u == nil {
		return ""
	}
	addr := *u
	addr.Fragment = ""
	return addr.String()
}

// Pointer returns the JSON-pointer fragment (without the leading '#'),
// empty if the reference has none — in which case the target is the
// resolved document's root.
func (r Reference) Pointer() string {
	p := r.GetPointer()
	if p == nil {
		return ""
	}
	return p.String()
}

// Resolve joins r's address against base (the active document's address)
// when r's address is relative, following the same Inherits mechanism the
// teacher uses in expander.go's normalizeFileRef / nextRef.
func (r Reference) Resolve(base Reference) (Reference, error) {
	if !r.HasAddress() {
		return r, nil
	}
	if r.IsCanonical() {
		return r, nil
	}

	resolved, err := base.Ref.Inherits(r.Ref)
	if err != nil {
		return Reference{}, rwerror.New(rwerror.ReferenceSyntaxError, "", fmt.Errorf("resolve reference %q against %q: %w", r.raw, base.raw, err))
	}

	return Reference{raw: resolved.String(), Ref: *resolved}, nil
}

func (r Reference) String() string {
	if r.raw != "" {
		return r.raw
	}
	return r.Ref.String()
}
