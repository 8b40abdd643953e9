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
	"fmt"
	"strings"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/rwerror"
)

// FilterOptions configures which allOf-bearing nodes AllOfMerger folds.
// This is a small configuration value, not a plugin system (spec.md §9).
type FilterOptions struct {
	// KeywordContains requires that every listed substring appear in at
	// least one key of the node for the node to match.
	KeywordContains []string
	// RequireKey, if set, requires the node to carry this key.
	RequireKey string
}

// Filter is a configurable predicate over a candidate node. A nil *Filter
// always matches — absence of configuration means "fold everything"
// (spec.md §4.5).
type Filter struct {
	opts FilterOptions
}

// NewFilter validates opts and returns a Filter. An empty KeywordContains
// entry is rejected as a FilterConfigError, raised at construction, before
// any traversal begins (spec.md §7).
func NewFilter(opts FilterOptions) (*Filter, error) {
	for _, kw := range opts.KeywordContains {
		if strings.TrimSpace(kw) == "" {
			return nil, rwerror.New(rwerror.FilterConfigError, "", fmt.Errorf("keyword_contains entries must not be empty"))
		}
	}
	return &Filter{opts: opts}, nil
}

// Matches reports whether obj satisfies the filter. Evaluation has no side
// effects.
func (f *Filter) Matches(obj *document.Object) bool {
	if f == nil {
		return true
	}
	if f.opts.RequireKey != "" && !obj.Has(f.opts.RequireKey) {
		return false
	}
	for _, kw := range f.opts.KeywordContains {
		if !anyKeyContains(obj, kw) {
			return false
		}
	}
	return true
}

func anyKeyContains(obj *document.Object, substr string) bool {
	matched := false
	obj.Range(func(k string, _ document.Value) bool {
		if strings.Contains(k, substr) {
			matched = true
			return false
		}
		return true
	})
	return matched
}
