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

// Package storage holds every document a rewrite has loaded, keyed by its
// canonical URL (spec.md §4.2, Component B). A document is loaded at most
// once per Storage: the first successful load wins, and every subsequent
// reference to the same URL reuses the cached Schema.
package storage

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ceejbot/schema-tools/document"
)

// Schema is one loaded document and the canonical URL it was loaded from.
type Schema struct {
	URL  string
	Root document.Value
}

// Storage is a set of loaded documents, safe for concurrent use. Multiple
// Resolvers operating on independent root documents may share one Storage
// only if they never mutate a Schema's Root in place. resolver.Resolve hands
// out a document.Clone of each referenced target (spec.md §5), but
// resolver.Open returns a Schema's Root itself, uncloned.
type Storage struct {
	mu    sync.RWMutex
	byURL map[string]*Schema
	group singleflight.Group
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{byURL: make(map[string]*Schema)}
}

// Get returns the cached Schema for url, if one has already been loaded.
func (s *Storage) Get(url string) (*Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sch, ok := s.byURL[url]
	return sch, ok
}

// GetOrLoad returns the cached Schema for url, loading it with loadFn on a
// cache miss. Concurrent calls for the same url collapse onto a single
// loadFn invocation via singleflight, so a document is never fetched twice
// even when two goroutines race to resolve the same $ref.
func (s *Storage) GetOrLoad(url string, loadFn func() (document.Value, error)) (*Schema, error) {
	if sch, ok := s.Get(url); ok {
		return sch, nil
	}

	v, err, _ := s.group.Do(url, func() (interface{}, error) {
		if sch, ok := s.Get(url); ok {
			return sch, nil
		}
		root, err := loadFn()
		if err != nil {
			return nil, err
		}
		sch := &Schema{URL: url, Root: root}
		s.mu.Lock()
		if existing, ok := s.byURL[url]; ok {
			s.mu.Unlock()
			return existing, nil
		}
		s.byURL[url] = sch
		s.mu.Unlock()
		return sch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schema), nil
}

// Len reports how many distinct documents are currently cached.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byURL)
}
