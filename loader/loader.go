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

// Package loader implements the Document Loader (spec.md §4.1, Component A):
// given a URL it fetches the raw bytes — local file, file://, or http(s)://
// — and parses them into a document.Value. JSON and YAML share one parse
// path (document.Unmarshal), so no content-sniffing is needed to choose a
// decoder; only network loads need a retry policy.
package loader

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-openapi/swag/loading"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/rwerror"
)

// Debug enables ambient logging of every load attempt, the same
// environment-gated pattern the teacher's expander.go uses for its own
// Debug flag.
var Debug = os.Getenv("SCHEMA_TOOLS_DEBUG") != ""

func debugLog(msg string, args ...interface{}) {
	if !Debug {
		return
	}
	log.Printf(msg, args...)
}

// Loader fetches and parses documents named by a URL.
type Loader struct {
	// MaxElapsedTime bounds the backoff retry applied to http(s) loads.
	// Zero uses backoff's own default (15 minutes); tests should set this
	// short.
	MaxElapsedTime time.Duration
	// Client is accepted but not read by Load: every fetch, local or
	// remote, goes through loading.LoadFromFileOrHTTP's own client, whether
	// or not Client is set.
	Client *http.Client
}

// New returns a Loader with the teacher's defaults.
func New() *Loader {
	return &Loader{MaxElapsedTime: 30 * time.Second}
}

// Load fetches url and parses it into a document.Value. Any failure —
// unreachable host, non-2xx response, malformed JSON/YAML — is wrapped as
// an rwerror.LoadFailure (fatal, spec.md §7).
func (l *Loader) Load(url string) (document.Value, error) {
	data, err := l.fetch(url)
	if err != nil {
		return nil, rwerror.New(rwerror.LoadFailure, "", fmt.Errorf("load %q: %w", url, err))
	}

	v, err := document.Unmarshal(data)
	if err != nil {
		return nil, rwerror.New(rwerror.LoadFailure, "", fmt.Errorf("parse %q: %w", url, err))
	}

	debugLog("loader: loaded %s (%d bytes)", url, len(data))
	return v, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	if !isRemote(url) {
		return loading.LoadFromFileOrHTTP(url)
	}

	var data []byte
	operation := func() error {
		raw, ferr := loading.LoadFromFileOrHTTP(url)
		if ferr != nil {
			debugLog("loader: retrying %s after error: %v", url, ferr)
			return ferr
		}
		data = raw
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	if l.MaxElapsedTime > 0 {
		policy.MaxElapsedTime = l.MaxElapsedTime
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return data, nil
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
