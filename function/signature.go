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

// Package function implements the ADQL function signature registry:
// parsing textual signatures, the compare-form ordering key, and
// binary-search lookup with the forward-resolution discipline for calls
// whose argument types aren't fully known yet.
package function

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/adql-go/semcheck/schema"
)

// ErrMalformedSignature is returned when a textual signature doesn't match
// the "name(p1 T1, p2 T2) -> R" grammar.
var ErrMalformedSignature = errors.NewKind("malformed function signature %q")

var signatureRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)\s*\(((?:[^()]|\([^()]*\))*)\)(?:\s*->\s*([A-Za-z_][A-Za-z0-9 _]*(?:\([0-9]+\))?))?\s*$`)
var typeRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9 _]*?)\s*(?:\(\s*([0-9]+)\s*\))?$`)

// standardTypeNames is the exact-match TAP type enumeration.
var standardTypeNames = map[string]schema.Tag{
	"CHAR":      schema.CHAR,
	"VARCHAR":   schema.VARCHAR,
	"BINARY":    schema.BINARY,
	"VARBINARY": schema.VARBINARY,
	"SMALLINT":  schema.SMALLINT,
	"INTEGER":   schema.INTEGER,
	"BIGINT":    schema.BIGINT,
	"REAL":      schema.REAL,
	"DOUBLE":    schema.DOUBLE,
	"BLOB":      schema.BLOB,
	"CLOB":      schema.CLOB,
	"TIMESTAMP": schema.TIMESTAMP,
	"POINT":     schema.POINT,
	"REGION":    schema.REGION,
}

// synonymTags is the fallback map of common DB type synonyms.
var synonymTags = map[string]schema.Tag{
	"bool":        schema.SMALLINT,
	"int4":        schema.INTEGER,
	"float8":      schema.DOUBLE,
	"bytea":       schema.BLOB,
	"text":        schema.CLOB,
	"date":        schema.TIMESTAMP,
	"time":        schema.TIMESTAMP,
	"timetz":      schema.TIMESTAMP,
	"timestamptz": schema.TIMESTAMP,
	"polygon":     schema.REGION,
	"box":         schema.REGION,
	"circle":      schema.REGION,
	"position":    schema.POINT,
}

var sizedTags = map[schema.Tag]bool{
	schema.CHAR: true, schema.VARCHAR: true, schema.BINARY: true, schema.VARBINARY: true,
}

// ResolveTypeName maps a textual type name (with an optional "(n)" length
// suffix) to a DbType, trying an exact uppercase match against the TAP
// enumeration first, then the synonym table, then falling back to
// UNKNOWN(label).
func ResolveTypeName(raw string) schema.DbType {
	m := typeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return schema.NewUnknown(raw)
	}
	name := strings.TrimSpace(m[1])
	lengthStr := m[2]

	upper := strings.ToUpper(name)
	if tag, ok := standardTypeNames[upper]; ok {
		if sizedTags[tag] && lengthStr != "" {
			return schema.NewSized(tag, cast.ToInt(lengthStr))
		}
		return schema.New(tag)
	}

	if tag, ok := synonymTags[strings.ToLower(name)]; ok {
		if sizedTags[tag] && lengthStr != "" {
			return schema.NewSized(tag, cast.ToInt(lengthStr))
		}
		return schema.New(tag)
	}

	return schema.NewUnknown(name)
}

// FunctionParam is one declared parameter of a FunctionDef.
type FunctionParam struct {
	Name string
	Type schema.DbType
}

// FunctionDef is a registered function signature: its name, declared
// return type, and parameter list.
type FunctionDef struct {
	Name       string
	ReturnType schema.DbType
	Params     []FunctionParam
}

// ParseSignature parses a textual signature of the form
// "name(p1 T1, p2 T2) -> R".
func ParseSignature(text string) (FunctionDef, error) {
	m := signatureRe.FindStringSubmatch(text)
	if m == nil {
		return FunctionDef{}, ErrMalformedSignature.New(text)
	}

	def := FunctionDef{Name: m[1]}
	if m[3] != "" {
		def.ReturnType = ResolveTypeName(m[3])
	}

	paramsText := strings.TrimSpace(m[2])
	if paramsText != "" {
		for _, p := range strings.Split(paramsText, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			fields := strings.SplitN(p, " ", 2)
			if len(fields) != 2 {
				return FunctionDef{}, ErrMalformedSignature.New(text)
			}
			def.Params = append(def.Params, FunctionParam{
				Name: strings.TrimSpace(fields[0]),
				Type: ResolveTypeName(strings.TrimSpace(fields[1])),
			})
		}
	}

	return def, nil
}

// MustParseSignature is ParseSignature, panicking on error -- for building
// literal signature tables at package-init time.
func MustParseSignature(text string) FunctionDef {
	def, err := ParseSignature(text)
	if err != nil {
		panic(err)
	}
	return def
}

// CompareForm is the ordering key used for binary-search lookup:
// lowercase(name) followed by three bits per parameter ("num|str|geo").
func (d FunctionDef) CompareForm() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(d.Name))
	for _, p := range d.Params {
		b.WriteByte(bitChar(p.Type.IsNumeric()))
		b.WriteByte(bitChar(p.Type.IsString()))
		b.WriteByte(bitChar(p.Type.IsGeometry()))
	}
	return b.String()
}

func bitChar(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}
