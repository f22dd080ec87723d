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

// Column is a resolved entry in a ColumnList: either a plain schema.DbColumn
// belonging to one table, or a CommonColumn covering several.
type Column struct {
	plain  *schema.DbColumn
	common *CommonColumn
}

// FromDbColumn wraps a plain column.
func FromDbColumn(c *schema.DbColumn) Column { return Column{plain: c} }

// FromCommonColumn wraps a CommonColumn.
func FromCommonColumn(cc *CommonColumn) Column { return Column{common: cc} }

// Name returns the column's ADQL name.
func (c Column) Name() ident.Identifier {
	if c.plain != nil {
		return c.plain.AdqlName
	}
	return c.common.GeneralColumn.AdqlName
}

// Type returns the column's type.
func (c Column) Type() schema.DbType {
	if c.plain != nil {
		return c.plain.Type
	}
	return c.common.GeneralColumn.Type
}

// IsCommon reports whether c is a CommonColumn (covers more than one
// table).
func (c Column) IsCommon() bool { return c.common != nil }

// Common returns the underlying CommonColumn, or nil if c is plain.
func (c Column) Common() *CommonColumn { return c.common }

// CoveredTables returns the table(s) this column is reachable through: one
// for a plain column, possibly several for a CommonColumn.
func (c Column) CoveredTables() []*schema.DbTable {
	if c.plain != nil {
		return []*schema.DbTable{c.plain.Table}
	}
	return c.common.CoveredTables
}

// DbColumn returns the concrete schema.DbColumn to bind an AST back-pointer
// to: the plain column itself, or the CommonColumn's GeneralColumn (whose
// Table is nil) when c is a CommonColumn.
func (c Column) DbColumn() *schema.DbColumn {
	if c.plain != nil {
		return c.plain
	}
	return &c.common.GeneralColumn
}

// Query describes a column reference to resolve: an optional three-part
// table qualification plus a required column name. A nil qualifier part
// means "not specified", matching any.
type Query struct {
	Catalog *ident.Identifier
	Schema  *ident.Identifier
	Table   *ident.Identifier
	Column  ident.Identifier
}

// ColumnList is an ordered sequence of Columns, keyed by ADQL name, visible
// within one query level's scope.
type ColumnList struct {
	entries []Column
}

// NewColumnList returns an empty list.
func NewColumnList() *ColumnList {
	return &ColumnList{}
}

// Add appends a plain column.
func (l *ColumnList) Add(c *schema.DbColumn) { l.entries = append(l.entries, FromDbColumn(c)) }

// AddCommon appends a CommonColumn.
func (l *ColumnList) AddCommon(cc *CommonColumn) { l.entries = append(l.entries, FromCommonColumn(cc)) }

// All returns every entry, in order.
func (l *ColumnList) All() []Column { return l.entries }

// Search returns every entry matching q: candidates are narrowed by column
// name first, then by q's table/schema/catalog qualifiers when supplied,
// with common columns absorbing their pre-merge duplicates on an
// unqualified lookup.
func (l *ColumnList) Search(q Query) []Column {
	var byName []Column
	for _, e := range l.entries {
		if ident.Equals(e.Name(), q.Column) {
			byName = append(byName, e)
		}
	}

	if q.Table == nil {
		return l.flattenCommon(byName)
	}

	var qualified []Column
	for _, e := range byName {
		if l.anyCoveredTableMatches(e, *q.Table, q.Schema, q.Catalog) {
			qualified = append(qualified, e)
		}
	}
	return qualified
}

// anyCoveredTableMatches reports whether the qualifier (table, and
// optionally schema/catalog) names one of e's covered tables. A covered
// table is matched under the name it is visible by at this query level:
// its alias when aliased (the covered table is then the TableAlias
// wrapper), its own name otherwise -- so an alias hides the wrapped
// table's original name, and two aliases of one table stay distinct.
func (l *ColumnList) anyCoveredTableMatches(e Column, table ident.Identifier, sch, cat *ident.Identifier) bool {
	for _, t := range e.CoveredTables() {
		if t == nil {
			continue
		}
		if !ident.Equals(t.AdqlName, table) {
			continue
		}
		if sch != nil && !ident.Equals(t.AdqlSchema, *sch) {
			continue
		}
		if cat != nil && !ident.Equals(t.AdqlCatalog, *cat) {
			continue
		}
		return true
	}
	return false
}

// flattenCommon reduces an unqualified match set in which at least one
// candidate is a CommonColumn: a plain candidate whose table is covered by
// one of the common candidates is the same column seen again through its
// pre-merge side, so the common column absorbs it. After a NATURAL JOIN the
// shared name therefore resolves to the single common column rather than
// once per joined side.
func (l *ColumnList) flattenCommon(candidates []Column) []Column {
	var commons []*CommonColumn
	for _, c := range candidates {
		if c.IsCommon() {
			commons = append(commons, c.Common())
		}
	}
	if len(commons) == 0 {
		return candidates
	}

	var out []Column
	for _, c := range candidates {
		if c.IsCommon() {
			out = append(out, c)
			continue
		}
		absorbed := false
		for _, cc := range commons {
			if cc.Covers(c.plain.Table) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			out = append(out, c)
		}
	}
	return out
}
