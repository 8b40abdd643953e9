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

// Command schema-tools is the command-line front end (out of core scope
// per spec.md §1) driving the rewrite engine through the operations
// contract in package engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "schema-tools",
		Short:         "Rewrite JSON Schema and OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDereferenceCmd())
	root.AddCommand(newMergeAllOfCmd())
	root.AddCommand(newFlattenAllOfCmd())

	return root
}
