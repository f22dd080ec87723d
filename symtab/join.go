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
	"fmt"

	"github.com/adql-go/semcheck/ident"
	"github.com/adql-go/semcheck/schema"
)

// MergeNatural builds the column list for `left NATURAL JOIN right`: every
// column name present on both sides becomes a CommonColumn; everything else
// passes through unchanged. Order: left's non-merged columns in their
// original order, the merged columns, then right's non-merged columns.
// If no names are shared the join degenerates to a cross product and both
// sides' columns pass through untouched. A side's entry may itself already
// be a CommonColumn from an earlier join in a multi-way FROM clause; it
// takes part in the scan like any other column, so a chained
// `(t1 NATURAL JOIN t2) NATURAL JOIN t3` keeps one flat common column
// covering all three tables instead of leaving t3's copy loose.
func MergeNatural(left, right *ColumnList) (*ColumnList, error) {
	var sharedNames []ident.Identifier
	seen := func(name ident.Identifier) bool {
		for _, n := range sharedNames {
			if ident.Equals(n, name) {
				return true
			}
		}
		return false
	}
	for _, lc := range left.All() {
		if seen(lc.Name()) {
			continue
		}
		for _, rc := range right.All() {
			if ident.Equals(lc.Name(), rc.Name()) {
				sharedNames = append(sharedNames, lc.Name())
				break
			}
		}
	}

	return mergeOn(left, right, sharedNames)
}

// MergeUsing builds the column list for `left JOIN right USING (cols)`.
// Every name in cols must be present on both sides, or the merge fails with
// ErrJoinUnresolvable.
func MergeUsing(left, right *ColumnList, cols []ident.Identifier) (*ColumnList, error) {
	for _, name := range cols {
		if len(left.Search(Query{Column: name})) == 0 || len(right.Search(Query{Column: name})) == 0 {
			return nil, ErrJoinUnresolvable.New(fmt.Sprintf("USING column %s absent on one side", name))
		}
	}
	return mergeOn(left, right, cols)
}

func mergeOn(left, right *ColumnList, names []ident.Identifier) (*ColumnList, error) {
	merged := NewColumnList()

	isMerged := func(l *ColumnList, name ident.Identifier) bool {
		for _, n := range names {
			if ident.Equals(n, name) {
				return true
			}
		}
		return false
	}

	for _, lc := range left.All() {
		if !isMerged(left, lc.Name()) {
			appendColumn(merged, lc)
		}
	}

	for _, name := range names {
		leftMatches := left.Search(Query{Column: name})
		rightMatches := right.Search(Query{Column: name})
		if len(leftMatches) == 0 || len(rightMatches) == 0 {
			return nil, ErrJoinUnresolvable.New(fmt.Sprintf("column %s missing from one side of the join", name))
		}

		cc, err := combineSide(leftMatches[0], rightMatches[0])
		if err != nil {
			return nil, err
		}
		merged.AddCommon(cc)
	}

	for _, rc := range right.All() {
		if !isMerged(right, rc.Name()) {
			appendColumn(merged, rc)
		}
	}

	return merged, nil
}

func appendColumn(list *ColumnList, c Column) {
	if c.IsCommon() {
		list.AddCommon(c.Common())
	} else {
		list.Add(c.plain)
	}
}

// combineSide merges two Columns (each possibly already a CommonColumn from
// an earlier join in a multi-way FROM clause) into one CommonColumn,
// keeping the cover set flat.
func combineSide(left, right Column) (*CommonColumn, error) {
	if left.IsCommon() && right.IsCommon() {
		return Merge(left.Common(), right.Common())
	}
	if left.IsCommon() {
		return mergeColumnIntoCommon(left.Common(), right)
	}
	if right.IsCommon() {
		return mergeColumnIntoCommon(right.Common(), left)
	}
	return NewCommonColumn(*left.plain, *right.plain, []*schema.DbTable{left.plain.Table, right.plain.Table})
}

func mergeColumnIntoCommon(cc *CommonColumn, plain Column) (*CommonColumn, error) {
	plainCC, err := NewCommonColumn(cc.GeneralColumn, *plain.plain, append(append([]*schema.DbTable{}, cc.CoveredTables...), plain.plain.Table))
	if err != nil {
		return nil, err
	}
	return plainCC, nil
}
