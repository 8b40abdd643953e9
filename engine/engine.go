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

// Package engine exposes the operations contract of spec.md §6 —
// load_root, rewrite_dereference, rewrite_merge_allof,
// rewrite_flatten_allof — as the single entry point collaborators (the
// command-line front end, OpenAPI-specific rewrites) drive the core
// through.
package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ceejbot/schema-tools/loader"
	"github.com/ceejbot/schema-tools/resolver"
	"github.com/ceejbot/schema-tools/rewrite"
	"github.com/ceejbot/schema-tools/storage"
)

// Engine owns one Storage for the lifetime of a single rewrite invocation.
// Storage instances are never shared across independent rewrites (spec.md
// §5); callers needing parallelism construct one Engine per root document.
type Engine struct {
	storage *storage.Storage
	loader  *loader.Loader
}

// New returns an Engine with a fresh Storage and the default Loader.
func New() *Engine {
	return &Engine{storage: storage.New(), loader: loader.New()}
}

// LoadRoot normalizes urlOrPath to an absolute file path or URL and loads
// it as the root document of a new rewrite.
func (e *Engine) LoadRoot(urlOrPath string) (*storage.Schema, error) {
	absolute, err := absPath(urlOrPath)
	if err != nil {
		return nil, err
	}
	res := resolver.New(e.storage, e.loader)
	if _, err := res.Open(absolute); err != nil {
		return nil, err
	}
	schema, _ := e.storage.Get(absolute)
	return schema, nil
}

// Dereference runs the Dereferencer (spec.md §4.4) over schema's root,
// replacing it with the rewritten tree.
func (e *Engine) Dereference(schema *storage.Schema, opts rewrite.DereferenceOptions) error {
	res := resolver.New(e.storage, e.loader)
	root, err := res.Open(schema.URL)
	if err != nil {
		return err
	}
	deref := rewrite.NewDereferencer(res, opts)
	w := rewrite.NewWalker(deref)
	rewritten, err := w.Walk(root)
	if err != nil {
		return err
	}
	schema.Root = rewritten
	return nil
}

// MergeAllOf runs the hard-merge AllOf flavor (spec.md §4.5) over schema's
// root.
func (e *Engine) MergeAllOf(schema *storage.Schema, filter *rewrite.Filter) error {
	return e.runAllOf(schema, rewrite.AllOfOptions{Soft: false, Filter: filter})
}

// FlattenAllOf runs the soft-merge ("flatten") AllOf flavor (spec.md §4.5)
// over schema's root.
func (e *Engine) FlattenAllOf(schema *storage.Schema, opts rewrite.AllOfOptions) error {
	opts.Soft = true
	return e.runAllOf(schema, opts)
}

func (e *Engine) runAllOf(schema *storage.Schema, opts rewrite.AllOfOptions) error {
	res := resolver.New(e.storage, e.loader)
	root, err := res.Open(schema.URL)
	if err != nil {
		return err
	}
	merger := rewrite.NewAllOfMerger(res, opts)
	w := rewrite.NewWalker(merger)
	rewritten, err := w.Walk(root)
	if err != nil {
		return err
	}
	schema.Root = rewritten
	return nil
}

// absPath returns the absolute form of fname: http(s) URLs and file://
// URLs pass through unchanged; a relative filesystem path is joined
// against the working directory. Ground truth: go-openapi/spec's
// normalizer.go absPath.
func absPath(fname string) (string, error) {
	if strings.HasPrefix(fname, "http://") || strings.HasPrefix(fname, "https://") || strings.HasPrefix(fname, "file://") {
		return fname, nil
	}
	if filepath.IsAbs(fname) {
		return fname, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, fname), nil
}
