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

// Package symtab implements the ordered, searchable symbol tables used to
// resolve table and column references within a single query level's scope:
// ColumnList and TableList, plus the CommonColumn produced by NATURAL JOIN
// / USING column unification.
package symtab

import (
	"fmt"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/adql-go/semcheck/schema"
)

// ErrJoinUnresolvable is raised when a NATURAL JOIN or USING clause cannot
// merge two columns -- either because their types are incompatible or
// because a USING column is missing on one side.
var ErrJoinUnresolvable = errors.NewKind("join unresolvable: %s")

// CommonColumn is the result of unifying two (or more) columns in a NATURAL
// JOIN or USING clause. Its GeneralColumn.Table is always nil: the column
// is no longer tied to a single source table. CoveredTables is flat --
// merging a CommonColumn with another CommonColumn unions their cover sets
// rather than nesting.
type CommonColumn struct {
	GeneralColumn schema.DbColumn
	CoveredTables []*schema.DbTable
}

// NewCommonColumn merges left and right into a CommonColumn, checking type
// compatibility. The merged column keeps left's names. covered
// supplies the source tables to attribute the merge to (normally left's and
// right's owning tables, but see Merge for flattening nested common
// columns).
func NewCommonColumn(left, right schema.DbColumn, covered []*schema.DbTable) (*CommonColumn, error) {
	if !schema.IsCompatible(left.Type, right.Type) {
		return nil, ErrJoinUnresolvable.New(fmt.Sprintf("incompatible types %s and %s", left.Type, right.Type))
	}
	general := left
	general.Table = nil
	return &CommonColumn{GeneralColumn: general, CoveredTables: dedupTables(covered)}, nil
}

// Merge combines two CommonColumns that were both found to unify the same
// column name, flattening their cover sets rather than nesting.
func Merge(a, b *CommonColumn) (*CommonColumn, error) {
	if !schema.IsCompatible(a.GeneralColumn.Type, b.GeneralColumn.Type) {
		return nil, ErrJoinUnresolvable.New(fmt.Sprintf("incompatible types %s and %s", a.GeneralColumn.Type, b.GeneralColumn.Type))
	}
	return &CommonColumn{
		GeneralColumn: a.GeneralColumn,
		CoveredTables: dedupTables(append(append([]*schema.DbTable{}, a.CoveredTables...), b.CoveredTables...)),
	}, nil
}

func dedupTables(tables []*schema.DbTable) []*schema.DbTable {
	seen := make(map[*schema.DbTable]bool, len(tables))
	var out []*schema.DbTable
	for _, t := range tables {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Covers reports whether t is one of cc's covered tables.
func (cc *CommonColumn) Covers(t *schema.DbTable) bool {
	for _, ct := range cc.CoveredTables {
		if ct == t {
			return true
		}
	}
	return false
}
