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

package symtab_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adql-go/semcheck/ident"
	"github.com/adql-go/semcheck/schema"
	"github.com/adql-go/semcheck/symtab"
)

// tablesEqualUnordered reports whether want and got cover the same tables by
// identity, regardless of order. CommonColumn.CoveredTables has no defined
// order (it is built by walking two independently-ordered ColumnLists), so
// plain assert.Equal would be order-sensitive for no good reason; cmp.Diff
// with cmpopts.SortSlices sorts both sides by name first.
func tablesEqualUnordered(t *testing.T, want, got []*schema.DbTable) {
	t.Helper()
	byName := func(a, b *schema.DbTable) bool { return a.AdqlName.String() < b.AdqlName.String() }
	identity := cmp.Comparer(func(a, b *schema.DbTable) bool { return a == b })
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(byName), identity); diff != "" {
		t.Errorf("covered tables mismatch (-want +got):\n%s", diff)
	}
}

func mustID(t *testing.T, s string) ident.Identifier {
	t.Helper()
	id, err := ident.Normalize(s)
	require.NoError(t, err)
	return id
}

func buildTable(t *testing.T, name string, cols ...string) *schema.DbTable {
	t.Helper()
	tbl, err := schema.NewTable(mustID(t, name), ident.Identifier{}, ident.Identifier{}, mustID(t, name), ident.Identifier{}, ident.Identifier{})
	require.NoError(t, err)
	for _, c := range cols {
		_, err := tbl.AddColumn(mustID(t, c), mustID(t, c), schema.New(schema.INTEGER))
		require.NoError(t, err)
	}
	return tbl
}

func columnListFor(t *testing.T, tbl *schema.DbTable) *symtab.ColumnList {
	t.Helper()
	l := symtab.NewColumnList()
	for _, c := range tbl.Columns() {
		l.Add(c)
	}
	return l
}

func TestMergeNaturalDegeneratesWithoutSharedNames(t *testing.T) {
	t1 := buildTable(t, "t1", "a")
	t2 := buildTable(t, "t2", "b")

	merged, err := symtab.MergeNatural(columnListFor(t, t1), columnListFor(t, t2))
	require.NoError(t, err)
	assert.Len(t, merged.All(), 2)
	for _, c := range merged.All() {
		assert.False(t, c.IsCommon())
	}
}

func TestMergeNaturalProducesCommonColumn(t *testing.T) {
	t1 := buildTable(t, "t1", "id", "a")
	t2 := buildTable(t, "t2", "id", "b")

	merged, err := symtab.MergeNatural(columnListFor(t, t1), columnListFor(t, t2))
	require.NoError(t, err)
	require.Len(t, merged.All(), 3)

	matches := merged.Search(symtab.Query{Column: mustID(t, "id")})
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsCommon())
	tablesEqualUnordered(t, []*schema.DbTable{t1, t2}, matches[0].Common().CoveredTables)
}

// A chained (t1 NATURAL JOIN t2) NATURAL JOIN t3 must fold t3's copy of an
// already-merged name into the existing CommonColumn, unioning the cover
// set, rather than letting it pass through as a loose duplicate.
func TestMergeNaturalFlattensChainedCommonColumn(t *testing.T) {
	t1 := buildTable(t, "t1", "id", "a")
	t2 := buildTable(t, "t2", "id", "b")
	t3 := buildTable(t, "t3", "id", "c")

	inner, err := symtab.MergeNatural(columnListFor(t, t1), columnListFor(t, t2))
	require.NoError(t, err)

	merged, err := symtab.MergeNatural(inner, columnListFor(t, t3))
	require.NoError(t, err)
	require.Len(t, merged.All(), 4)

	matches := merged.Search(symtab.Query{Column: mustID(t, "id")})
	require.Len(t, matches, 1)
	require.True(t, matches[0].IsCommon())
	tablesEqualUnordered(t, []*schema.DbTable{t1, t2, t3}, matches[0].Common().CoveredTables)
}

// An unqualified search must resolve a NATURAL-joined name to the single
// CommonColumn, with the common column absorbing any candidate that is one
// of its own pre-merge sides seen again.
func TestSearchCommonColumnAbsorbsCoveredDuplicates(t *testing.T) {
	t1 := buildTable(t, "t1", "id")
	t2 := buildTable(t, "t2", "id")

	cc, err := symtab.NewCommonColumn(*t1.Columns()[0], *t2.Columns()[0], []*schema.DbTable{t1, t2})
	require.NoError(t, err)

	list := symtab.NewColumnList()
	list.Add(t1.Columns()[0])
	list.AddCommon(cc)

	matches := list.Search(symtab.Query{Column: mustID(t, "id")})
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsCommon())
}

func TestMergeUsingRejectsIncompatibleTypes(t *testing.T) {
	t1, err := schema.NewTable(mustID(t, "t1"), ident.Identifier{}, ident.Identifier{}, mustID(t, "t1"), ident.Identifier{}, ident.Identifier{})
	require.NoError(t, err)
	_, err = t1.AddColumn(mustID(t, "geom"), mustID(t, "geom"), schema.New(schema.POINT))
	require.NoError(t, err)

	t2, err := schema.NewTable(mustID(t, "t2"), ident.Identifier{}, ident.Identifier{}, mustID(t, "t2"), ident.Identifier{}, ident.Identifier{})
	require.NoError(t, err)
	_, err = t2.AddColumn(mustID(t, "geom"), mustID(t, "geom"), schema.New(schema.REGION))
	require.NoError(t, err)

	_, err = symtab.MergeUsing(columnListFor(t, t1), columnListFor(t, t2), []ident.Identifier{mustID(t, "geom")})
	require.Error(t, err)
	require.True(t, symtab.ErrJoinUnresolvable.Is(err))
}

// A qualified reference resolves through the name a table is visible under
// at this level: the TableAlias wrapper's columns match the alias, and the
// wrapped table's original name is hidden.
func TestColumnListSearchQualifiedThroughAliasWrapper(t *testing.T) {
	t1 := buildTable(t, "t1", "x")
	wrapper := schema.NewAlias(t1, mustID(t, "a"))

	list := columnListFor(t, wrapper)

	aliasRef := mustID(t, "a")
	matches := list.Search(symtab.Query{Table: &aliasRef, Column: mustID(t, "x")})
	require.Len(t, matches, 1)
	assert.Same(t, wrapper, matches[0].DbColumn().Table)

	originalRef := mustID(t, "t1")
	assert.Empty(t, list.Search(symtab.Query{Table: &originalRef, Column: mustID(t, "x")}))
}

func TestTableListSearchByAliasWrapper(t *testing.T) {
	t1 := buildTable(t, "t1")
	wrapper := schema.NewAlias(t1, mustID(t, "a"))

	tl := symtab.NewTableList()
	tl.Add(wrapper)

	matches := tl.Search(symtab.TableQuery{Table: mustID(t, "a")})
	require.Len(t, matches, 1)
	assert.Same(t, wrapper, matches[0])
	assert.Same(t, t1, matches[0].OriginTable)

	assert.Empty(t, tl.Search(symtab.TableQuery{Table: mustID(t, "t1")}))
}
