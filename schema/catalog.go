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

import "github.com/adql-go/semcheck/ident"

// TableRef identifies a table to search for, optionally qualified by
// schema and/or catalog. A nil Schema/Catalog means "unspecified", not "the
// empty identifier".
type TableRef struct {
	Catalog *ident.Identifier
	Schema  *ident.Identifier
	Table   ident.Identifier
}

// SchemaCatalog is the read-only collection of tables
// a host loads from on-disk schema metadata. It is safe for concurrent
// reads by multiple checks.
type SchemaCatalog struct {
	tables []*DbTable
}

// NewSchemaCatalog returns an empty catalog.
func NewSchemaCatalog() *SchemaCatalog {
	return &SchemaCatalog{}
}

// AddTable registers t with the catalog.
func (c *SchemaCatalog) AddTable(t *DbTable) {
	c.tables = append(c.tables, t)
}

// MustAddTable is AddTable for a table built with NewTable, panicking if
// table construction failed. Convenience for package-init-time fixtures and
// tests, in the spirit of regexp.MustCompile.
func (c *SchemaCatalog) MustAddTable(adqlName, adqlSchema, adqlCatalog, dbName, dbSchema, dbCatalog ident.Identifier) *DbTable {
	t, err := NewTable(adqlName, adqlSchema, adqlCatalog, dbName, dbSchema, dbCatalog)
	if err != nil {
		panic(err)
	}
	c.AddTable(t)
	return t
}

// Tables returns every registered table, in registration order.
func (c *SchemaCatalog) Tables() []*DbTable { return c.tables }

// Search returns every table matching ref: the table-name part must always
// match; schema and catalog parts narrow the match only when ref supplies
// them.
func (c *SchemaCatalog) Search(ref TableRef) []*DbTable {
	var matches []*DbTable
	for _, t := range c.tables {
		if !ident.Equals(t.AdqlName, ref.Table) {
			continue
		}
		if ref.Schema != nil && !ident.Equals(t.AdqlSchema, *ref.Schema) {
			continue
		}
		if ref.Catalog != nil && !ident.Equals(t.AdqlCatalog, *ref.Catalog) {
			continue
		}
		matches = append(matches, t)
	}
	return matches
}
