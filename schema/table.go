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

package schema

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/adql-go/semcheck/ident"
)

// ErrEmptyIdentifier is returned when constructing a table or column from
// an empty normalized identifier.
var ErrEmptyIdentifier = errors.NewKind("cannot use an empty identifier for a %s")

// DbTable is a catalogued table: its ADQL-side and DB-side three-part name,
// and an ordered list of columns keyed by ADQL name. Tables created while
// the host loads the schema are referenced, never copied, by the checker; a
// derived table (sub-query result) or an aliased table is created per-query
// and owned by the scope it lives in.
type DbTable struct {
	AdqlName        ident.Identifier
	AdqlSchema      ident.Identifier
	AdqlCatalog     ident.Identifier
	DbName          ident.Identifier
	DbSchema        ident.Identifier
	DbCatalog       ident.Identifier
	columns         []*DbColumn
	byLowerAdqlName map[string][]*DbColumn

	// OriginTable is set on a TableAlias: the table it wraps. Nil for
	// ordinary catalogued, never-aliased tables.
	OriginTable *DbTable
}

// NewTable constructs an empty table with the given ADQL/DB three-part
// names. adqlName must not be empty.
func NewTable(adqlName, adqlSchema, adqlCatalog, dbName, dbSchema, dbCatalog ident.Identifier) (*DbTable, error) {
	if adqlName.IsEmpty() {
		return nil, ErrEmptyIdentifier.New("table")
	}
	return &DbTable{
		AdqlName:        adqlName,
		AdqlSchema:      adqlSchema,
		AdqlCatalog:     adqlCatalog,
		DbName:          dbName,
		DbSchema:        dbSchema,
		DbCatalog:       dbCatalog,
		byLowerAdqlName: make(map[string][]*DbColumn),
	}, nil
}

// AddColumn appends a column to t, setting its Table back-reference. The
// column's AdqlName must not be empty.
func (t *DbTable) AddColumn(adqlName, dbName ident.Identifier, typ DbType) (*DbColumn, error) {
	if adqlName.IsEmpty() {
		return nil, ErrEmptyIdentifier.New("column")
	}
	col := &DbColumn{AdqlName: adqlName, DbName: dbName, Type: typ, Table: t}
	t.columns = append(t.columns, col)
	key := adqlName.Lower()
	t.byLowerAdqlName[key] = append(t.byLowerAdqlName[key], col)
	return col, nil
}

// Columns returns t's columns in declaration order. The slice must not be
// mutated by callers.
func (t *DbTable) Columns() []*DbColumn { return t.columns }

// GetColumn looks up columns by name: by ADQL name, O(1) via the lowercase
// index narrowed by exact Equals; by DB name, O(#columns) via a linear
// scan.
func (t *DbTable) GetColumn(name ident.Identifier, byAdqlName bool) []*DbColumn {
	if byAdqlName {
		candidates := t.byLowerAdqlName[name.Lower()]
		var matches []*DbColumn
		for _, c := range candidates {
			if ident.Equals(c.AdqlName, name) {
				matches = append(matches, c)
			}
		}
		return matches
	}

	var matches []*DbColumn
	for _, c := range t.columns {
		if ident.Equals(c.DbName, name) {
			matches = append(matches, c)
		}
	}
	return matches
}

// NewAlias wraps t in a TableAlias-flavored DbTable: a new table whose ADQL
// and DB name are both the alias, columns are shared by value (via
// DbColumn.Copy) with their Table back-pointer overridden to point at the
// alias, and whose OriginTable is t.
func NewAlias(t *DbTable, alias ident.Identifier) *DbTable {
	wrapper := &DbTable{
		AdqlName:        alias,
		DbName:          alias,
		byLowerAdqlName: make(map[string][]*DbColumn),
		OriginTable:     t,
	}
	for _, c := range t.columns {
		aliased := c.Copy(c.DbName, c.AdqlName, wrapper)
		wrapper.columns = append(wrapper.columns, &aliased)
		key := aliased.AdqlName.Lower()
		wrapper.byLowerAdqlName[key] = append(wrapper.byLowerAdqlName[key], &aliased)
	}
	return wrapper
}
