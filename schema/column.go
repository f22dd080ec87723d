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

// DbColumn belongs to exactly one parent DbTable, which owns it by value; a
// DbColumn's Table field is a non-owning back-reference. A nil Table is
// used only for the generalColumn carried inside a symtab.CommonColumn,
// which is no longer tied to a single source table.
type DbColumn struct {
	AdqlName ident.Identifier
	DbName   ident.Identifier
	Type     DbType
	Table    *DbTable
}

// Copy produces an independent DbColumn with new names and a new parent,
// used by NewAlias to re-parent a table's columns under the alias wrapper.
func (c DbColumn) Copy(dbName, adqlName ident.Identifier, table *DbTable) DbColumn {
	c.DbName = dbName
	c.AdqlName = adqlName
	c.Table = table
	return c
}
