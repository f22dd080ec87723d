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

package ident

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrEmptyTableSegment is returned when a qualified name's table segment is
// empty (e.g. "cat.schema.").
var ErrEmptyTableSegment = errors.NewKind("qualified name %q has an empty table segment")

// QualifiedName is the result of splitting a "cat.schema.table"-shaped
// input. Catalog and Schema may be empty.
type QualifiedName struct {
	Catalog string
	Schema  string
	Table   string
}

// SplitQualified splits input by ".", trims each segment, and keeps the
// last segment as the table name, the previous one as schema, and joins any
// remaining leading segments (re-inserting the separating dots) as catalog.
// A dot inside a double-quoted segment is not a separator, so a delimited
// identifier is never split; each segment keeps its surrounding quotes and
// can be passed to Normalize as is.
func SplitQualified(input string) (QualifiedName, error) {
	parts := splitRespectingQuotes(input)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	table := parts[len(parts)-1]
	if table == "" {
		return QualifiedName{}, ErrEmptyTableSegment.New(input)
	}

	var schema, catalog string
	if len(parts) >= 2 {
		schema = parts[len(parts)-2]
	}
	if len(parts) >= 3 {
		catalog = strings.Join(parts[:len(parts)-2], ".")
	}

	return QualifiedName{Catalog: catalog, Schema: schema, Table: table}, nil
}

// splitRespectingQuotes splits on "." but never inside a double-quoted
// segment, so a delimited identifier containing a literal dot is preserved
// whole.
func splitRespectingQuotes(input string) []string {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == '.' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}
