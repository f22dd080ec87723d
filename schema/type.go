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

// Package schema is the ADQL/TAP schema metadata model: the tagged DbType
// union, DbColumn/DbTable records, and the SchemaCatalog a host loads once
// and the checker treats as read-only for the duration of a check.
package schema

import "fmt"

// Tag identifies a TAP data type.
type Tag int

const (
	SMALLINT Tag = iota
	INTEGER
	BIGINT
	REAL
	DOUBLE
	BINARY
	VARBINARY
	CHAR
	VARCHAR
	BLOB
	CLOB
	TIMESTAMP
	POINT
	REGION
	UNKNOWN
	UNKNOWN_NUMERIC
)

func (t Tag) String() string {
	switch t {
	case SMALLINT:
		return "SMALLINT"
	case INTEGER:
		return "INTEGER"
	case BIGINT:
		return "BIGINT"
	case REAL:
		return "REAL"
	case DOUBLE:
		return "DOUBLE"
	case BINARY:
		return "BINARY"
	case VARBINARY:
		return "VARBINARY"
	case CHAR:
		return "CHAR"
	case VARCHAR:
		return "VARCHAR"
	case BLOB:
		return "BLOB"
	case CLOB:
		return "CLOB"
	case TIMESTAMP:
		return "TIMESTAMP"
	case POINT:
		return "POINT"
	case REGION:
		return "REGION"
	case UNKNOWN:
		return "UNKNOWN"
	case UNKNOWN_NUMERIC:
		return "UNKNOWN_NUMERIC"
	default:
		return "INVALID"
	}
}

// DbType is a TAP/ADQL data type: a tag, an optional length (for the
// variable-length tags), and an optional label carried by the two UNKNOWN
// variants (the original type name the host or function registry could not
// map).
type DbType struct {
	Tag    Tag
	Length int
	Label  string
}

// New builds a DbType with no length or label, for tags that don't carry
// one.
func New(tag Tag) DbType { return DbType{Tag: tag} }

// NewSized builds a DbType for one of the length-bearing tags (BINARY,
// VARBINARY, CHAR, VARCHAR).
func NewSized(tag Tag, length int) DbType { return DbType{Tag: tag, Length: length} }

// NewUnknown builds an UNKNOWN DbType carrying the original, unmapped type
// label.
func NewUnknown(label string) DbType { return DbType{Tag: UNKNOWN, Label: label} }

// NewUnknownNumeric builds an UNKNOWN_NUMERIC DbType carrying the original
// label.
func NewUnknownNumeric(label string) DbType { return DbType{Tag: UNKNOWN_NUMERIC, Label: label} }

// IsNumeric reports whether t's tag is in the numeric capability set.
func (t DbType) IsNumeric() bool {
	switch t.Tag {
	case SMALLINT, INTEGER, BIGINT, REAL, DOUBLE, BINARY, VARBINARY, BLOB, UNKNOWN_NUMERIC:
		return true
	default:
		return false
	}
}

// IsString reports whether t's tag is in the string capability set.
func (t DbType) IsString() bool {
	switch t.Tag {
	case CHAR, VARCHAR, CLOB, TIMESTAMP:
		return true
	default:
		return false
	}
}

// IsGeometry reports whether t's tag is in the geometry capability set.
func (t DbType) IsGeometry() bool {
	switch t.Tag {
	case POINT, REGION:
		return true
	default:
		return false
	}
}

// IsUnknown reports whether t's tag is one of the two unknown variants.
func (t DbType) IsUnknown() bool {
	return t.Tag == UNKNOWN || t.Tag == UNKNOWN_NUMERIC
}

// isBinary reports whether t's tag is one of the binary-family tags.
func (t DbType) isBinary() bool {
	switch t.Tag {
	case BINARY, VARBINARY, BLOB:
		return true
	default:
		return false
	}
}

// isBlobLike reports whether t is one of the "unbounded" variants of its
// family (BLOB for binary, CLOB for string) as opposed to a fixed/variable
// length bounded variant.
func (t DbType) isBlobLike() bool {
	return t.Tag == BLOB || t.Tag == CLOB
}

// IsCompatible implements the USING/NATURAL JOIN column-unification
// compatibility rule: true if either side is UNKNOWN; else binary
// sides must agree on BLOB-ness, numeric sides are always compatible,
// geometry sides must share a tag, string sides must agree on CLOB-ness,
// and anything else requires an identical tag.
func IsCompatible(a, b DbType) bool {
	if a.IsUnknown() || b.IsUnknown() {
		return true
	}
	if a.isBinary() && b.isBinary() {
		return a.isBlobLike() == b.isBlobLike()
	}
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	if a.IsGeometry() && b.IsGeometry() {
		return a.Tag == b.Tag
	}
	if a.IsString() && b.IsString() {
		return a.isBlobLike() == b.isBlobLike()
	}
	return a.Tag == b.Tag
}

// String renders t for diagnostics, e.g. "VARCHAR(32)" or "UNKNOWN(bytea)".
func (t DbType) String() string {
	switch t.Tag {
	case BINARY, VARBINARY, CHAR, VARCHAR:
		return fmt.Sprintf("%s(%d)", t.Tag, t.Length)
	case UNKNOWN, UNKNOWN_NUMERIC:
		if t.Label != "" {
			return fmt.Sprintf("%s(%s)", t.Tag, t.Label)
		}
		return t.Tag.String()
	default:
		return t.Tag.String()
	}
}
