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

func newMergeAllOfCmd() *cobra.Command {
	var (
		out             string
		keywordContains []string
		requireKey      string
	)

	cmd := &cobra.Command{
		Use:   "merge-allof <file>...",
		Short: "Hard-merge allOf arrays into their parent object",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			filter, err := buildFilter(keywordContains, requireKey)
			if err != nil {
				return err
			}
			return runBatch(args, out, func(file string) (*storage.Schema, error) {
				e := engine.New()
				schema, err := e.LoadRoot(file)
				if err != nil {
					return nil, err
				}
				if err := e.MergeAllOf(schema, filter); err != nil {
					return nil, err
				}
				return schema, nil
			})
		},
	}

	addFilterFlags(cmd, &keywordContains, &requireKey)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (single input) or directory (multiple inputs); \"-\" or unset writes to stdout")

	return cmd
}

func newFlattenAllOfCmd() *cobra.Command {
	var (
		out                    string
		keywordContains        []string
		requireKey             string
		leaveInvalidProperties bool
	)

	cmd := &cobra.Command{
		Use:   "flatten-allof <file>...",
		Short: "Soft-merge (flatten) allOf arrays into their parent object",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			filter, err := buildFilter(keywordContains, requireKey)
			if err != nil {
				return err
			}
			opts := rewrite.AllOfOptions{
				Filter:                 filter,
				LeaveInvalidProperties: leaveInvalidProperties,
			}
			return runBatch(args, out, func(file string) (*storage.Schema, error) {
				e := engine.New()
				schema, err := e.LoadRoot(file)
				if err != nil {
					return nil, err
				}
				if err := e.FlattenAllOf(schema, opts); err != nil {
					return nil, err
				}
				return schema, nil
			})
		},
	}

	addFilterFlags(cmd, &keywordContains, &requireKey)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (single input) or directory (multiple inputs); \"-\" or unset writes to stdout")
	cmd.Flags().BoolVar(&leaveInvalidProperties, "leave-invalid-properties", false, "preserve allOf-only keys at the parent instead of dropping them (currently a no-op)")

	return cmd
}

func addFilterFlags(cmd *cobra.Command, keywordContains *[]string, requireKey *string) {
	cmd.Flags().StringSliceVar(keywordContains, "keyword-contains", nil, "only fold nodes where each listed substring appears in at least one key")
	cmd.Flags().StringVar(requireKey, "require-key", "", "only fold nodes that carry this key")
}

func buildFilter(keywordContains []string, requireKey string) (*rewrite.Filter, error) {
	if len(keywordContains) == 0 && requireKey == "" {
		return nil, nil
	}
	return rewrite.NewFilter(rewrite.FilterOptions{
		KeywordContains: keywordContains,
		RequireKey:      requireKey,
	})
}
