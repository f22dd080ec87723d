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

package checker

import (
	"github.com/adql-go/semcheck/symtab"
)

// Scope holds the tables and columns visible at one query level. Each
// nested sub-query pushes a fresh Scope whose tables/columns start out
// empty but whose parent pointer lets column resolution fall through to the
// enclosing level for correlated references; table lookups (a wildcard's
// qualifier) see only the level's own tables. Delegation up
// the parent chain is read-only: a sub-query gets a frozen view of
// everything its enclosing level had resolved so far, without being able
// to mutate that outer state.
type Scope struct {
	parent  *Scope
	tables  *symtab.TableList
	columns *symtab.ColumnList
}

// newRootScope creates the scope for a top-level query.
func newRootScope() *Scope {
	return &Scope{tables: symtab.NewTableList(), columns: symtab.NewColumnList()}
}

// push creates the scope for a sub-query nested directly under s. The
// pushed scope gets its own empty symbol tables: a table or alias
// introduced inside a sub-query's FROM clause never leaks out to, or
// collides with, one at an enclosing level.
func (s *Scope) push() *Scope {
	return &Scope{parent: s, tables: symtab.NewTableList(), columns: symtab.NewColumnList()}
}
