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

package symtab

import (
	"github.com/adql-go/semcheck/ident"
	"github.com/adql-go/semcheck/schema"
)

// TableQuery describes a table reference to resolve, analogous to Query
// for columns.
type TableQuery struct {
	Catalog *ident.Identifier
	Schema  *ident.Identifier
	Table   ident.Identifier
}

// TableList is an ordered collection of the tables visible within a FROM
// clause or CTE list, each under the name it was introduced by (a
// TableAlias wrapper for an aliased table, the table itself otherwise).
type TableList struct {
	tables []*schema.DbTable
}

// NewTableList returns an empty list.
func NewTableList() *TableList {
	return &TableList{}
}

// Add registers t (already wrapped in a TableAlias by the caller if it has
// one) as visible in this list.
func (l *TableList) Add(t *schema.DbTable) { l.tables = append(l.tables, t) }

// All returns every table, in order.
func (l *TableList) All() []*schema.DbTable { return l.tables }

// Search returns every table matching q under the name it is visible by
// at this level, analogous to ColumnList.Search's table-matching step.
func (l *TableList) Search(q TableQuery) []*schema.DbTable {
	var matches []*schema.DbTable
	for _, t := range l.tables {
		if !ident.Equals(t.AdqlName, q.Table) {
			continue
		}
		if q.Schema != nil && !ident.Equals(t.AdqlSchema, *q.Schema) {
			continue
		}
		if q.Catalog != nil && !ident.Equals(t.AdqlCatalog, *q.Catalog) {
			continue
		}
		matches = append(matches, t)
	}
	return matches
}
