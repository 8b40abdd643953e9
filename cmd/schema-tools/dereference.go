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
	"github.com/spf13/cobra"

	"github.com/ceejbot/schema-tools/engine"
	"github.com/ceejbot/schema-tools/rewrite"
	"github.com/ceejbot/schema-tools/storage"
)

func newDereferenceCmd() *cobra.Command {
	var (
		out                        string
		skipRootInternalReferences bool
		skipReferences             []string
	)

	cmd := &cobra.Command{
		Use:   "dereference <file>...",
		Short: "Inline $ref targets in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts := rewrite.DereferenceOptions{
				SkipRootInternalReferences: skipRootInternalReferences,
				SkipReferences:             skipReferences,
			}
			return runBatch(args, out, func(file string) (*storage.Schema, error) {
				e := engine.New()
				schema, err := e.LoadRoot(file)
				if err != nil {
					return nil, err
				}
				if err := e.Dereference(schema, opts); err != nil {
					return nil, err
				}
				return schema, nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (single input) or directory (multiple inputs); \"-\" or unset writes to stdout")
	cmd.Flags().BoolVar(&skipRootInternalReferences, "skip-root-internal-references", false, "leave root-document fragment-only $refs untouched")
	cmd.Flags().StringSliceVar(&skipReferences, "skip-references", nil, "host names whose $refs are left untouched")

	return cmd
}
