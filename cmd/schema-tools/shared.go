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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/storage"
)

// runBatch runs rewrite (one independent engine.New() per file, per
// spec.md §5's "Storage instances are not shared across rewrites") over
// every input file concurrently and writes each result. A caller running a
// single file pays no concurrency overhead beyond one goroutine.
func runBatch(files []string, outDir string, rewrite func(file string) (*storage.Schema, error)) error {
	var g errgroup.Group
	for _, file := range files {
		file := file
		g.Go(func() error {
			schema, err := rewrite(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			return writeResult(file, outDir, len(files) > 1, schema)
		})
	}
	return g.Wait()
}

func writeResult(inputFile, outDir string, multi bool, schema *storage.Schema) error {
	data, err := document.Marshal(schema.Root)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	switch {
	case outDir == "" || outDir == "-":
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	case multi:
		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile)) + ".json"
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(outDir, base), data, 0o644)
	default:
		return os.WriteFile(outDir, data, 0o644)
	}
}
