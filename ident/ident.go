// Copyright 2026 The ADQL Semantic Checker Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ident implements ADQL identifier normalization: the
// delimited-identifier ("quoted") rules that decide case sensitivity and
// equality between a table or column name as it appears in a query and as
// it is catalogued in a schema.
package ident

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrEmptyIdentifier is returned when a normalized identifier would be the
// empty string.
var ErrEmptyIdentifier = errors.NewKind("identifier %q normalizes to an empty name")

// Identifier is a normalized ADQL name: its text, whether comparisons
// against it are case-sensitive, and (optionally) the database-side text it
// was paired with by a schema loader. Identifiers never carry qualification
// -- a dotted name is split by the caller before normalization.
type Identifier struct {
	text          string
	caseSensitive bool
	dbText        string
	hasDbText     bool
}

// Normalize strips surrounding whitespace and, if the result is wrapped in a
// single matching pair of double quotes, unwraps it and marks the
// identifier case-sensitive, collapsing any doubled inner `""` to a single
// `"`. Otherwise the identifier is case-insensitive. An identifier whose
// normalized text is empty is rejected.
func Normalize(text string) (Identifier, error) {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		inner := trimmed[1 : len(trimmed)-1]
		unescaped := strings.ReplaceAll(inner, `""`, `"`)
		if strings.TrimSpace(unescaped) == "" {
			return Identifier{}, ErrEmptyIdentifier.New(text)
		}
		return Identifier{text: unescaped, caseSensitive: true}, nil
	}

	if trimmed == "" {
		return Identifier{}, ErrEmptyIdentifier.New(text)
	}

	return Identifier{text: trimmed, caseSensitive: false}, nil
}

// MustNormalize is Normalize, panicking on error. Intended for literal
// identifiers known at compile time (standard function names, fixture
// tables), in the spirit of regexp.MustCompile.
func MustNormalize(text string) Identifier {
	id, err := Normalize(text)
	if err != nil {
		panic(err)
	}
	return id
}

// WithDbText returns a copy of id carrying the given database-side text.
func (id Identifier) WithDbText(dbText string) Identifier {
	id.dbText = dbText
	id.hasDbText = true
	return id
}

// Text returns the normalized ADQL text (without surrounding quotes).
func (id Identifier) Text() string { return id.text }

// CaseSensitive reports whether id was delimited (quoted).
func (id Identifier) CaseSensitive() bool { return id.caseSensitive }

// DbText returns the paired database-side text, if any, and whether one was
// set.
func (id Identifier) DbText() (string, bool) { return id.dbText, id.hasDbText }

// IsEmpty reports whether id is the zero value (never produced by
// Normalize, but convenient for callers building up identifiers
// incrementally).
func (id Identifier) IsEmpty() bool { return id.text == "" }

// Equals implements the case-sensitivity combination rule: if either side
// is case-insensitive, comparison folds ASCII case; if both are
// case-sensitive, comparison is exact.
func Equals(a, b Identifier) bool {
	if a.caseSensitive && b.caseSensitive {
		return a.text == b.text
	}
	return asciiEqualFold(a.text, b.text)
}

func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Denormalize re-applies double-quoting iff id is case-sensitive, doubling
// any inner `"`. The result round-trips through Normalize.
func Denormalize(id Identifier) string {
	if !id.caseSensitive {
		return id.text
	}
	escaped := strings.ReplaceAll(id.text, `"`, `""`)
	return `"` + escaped + `"`
}

// String renders id for diagnostics; it is never used for comparison.
func (id Identifier) String() string {
	return Denormalize(id)
}

// Lower returns the ASCII-lowercased text, used as a map key by callers
// that need case-insensitive indexing regardless of id's own sensitivity,
// e.g. a table's column index.
func (id Identifier) Lower() string {
	return strings.ToLower(id.text)
}
