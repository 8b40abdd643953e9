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
	"log"
	"os"
)

// Debug gates ambient logging of non-fatal diagnostics (unresolved
// fragments, malformed $refs, skipped hosts) — the same env-var-switched
// package-level flag the teacher's expander.go exposes.
var Debug = os.Getenv("SCHEMA_TOOLS_DEBUG") != ""

func debugLog(msg string, args ...interface{}) {
	if !Debug {
		return
	}
	log.Printf(msg, args...)
}
