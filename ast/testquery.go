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

package ast

// This file is a minimal, hand-built implementation of the Query contract,
// used by the checker package's own test suite in place of a real ADQL
// parser. Construction happens through the New* functions below, mirroring
// how a hand-assembled plan tree is built in plan-package tests.

type query struct {
	pos        Pos
	source     TableExpr
	items      []SelectItem
	conditions []ValueExpr
	groupBy    []GroupOrderItem
	orderBy    []GroupOrderItem
}

func NewQuery(pos Pos, source TableExpr, items []SelectItem, conditions ...ValueExpr) *query {
	return &query{pos: pos, source: source, items: items, conditions: conditions}
}

// WithGroupBy attaches a GROUP BY list to q, returning q for chaining.
func (q *query) WithGroupBy(items ...GroupOrderItem) *query {
	q.groupBy = items
	return q
}

// WithOrderBy attaches an ORDER BY list to q, returning q for chaining.
func (q *query) WithOrderBy(items ...GroupOrderItem) *query {
	q.orderBy = items
	return q
}

func (q *query) Pos() Pos                      { return q.pos }
func (q *query) Source() TableExpr             { return q.source }
func (q *query) SelectItems() []SelectItem     { return q.items }
func (q *query) Conditions() []ValueExpr       { return q.conditions }
func (q *query) GroupBy() []GroupOrderItem     { return q.groupBy }
func (q *query) OrderBy() []GroupOrderItem     { return q.orderBy }

type namedTable struct {
	pos      Pos
	catalog  string
	schema   string
	table    string
	alias    string
	resolved interface{}
}

func NewNamedTable(pos Pos, catalog, schema, table, alias string) *namedTable {
	return &namedTable{pos: pos, catalog: catalog, schema: schema, table: table, alias: alias}
}

func (t *namedTable) tableExprNode()            {}
func (t *namedTable) Pos() Pos                  { return t.pos }
func (t *namedTable) Catalog() string           { return t.catalog }
func (t *namedTable) Schema() string            { return t.schema }
func (t *namedTable) Table() string             { return t.table }
func (t *namedTable) Alias() string             { return t.alias }
func (t *namedTable) SetResolved(v interface{}) { t.resolved = v }
func (t *namedTable) Resolved() interface{}     { return t.resolved }

type derivedTable struct {
	pos      Pos
	alias    string
	subquery Query
}

func NewDerivedTable(pos Pos, alias string, subquery Query) *derivedTable {
	return &derivedTable{pos: pos, alias: alias, subquery: subquery}
}

func (t *derivedTable) tableExprNode()    {}
func (t *derivedTable) Pos() Pos          { return t.pos }
func (t *derivedTable) Alias() string     { return t.alias }
func (t *derivedTable) Subquery() Query   { return t.subquery }

type joinExpr struct {
	pos   Pos
	kind  JoinKind
	left  TableExpr
	right TableExpr
	on    ValueExpr
	using []string
}

func NewJoin(pos Pos, kind JoinKind, left, right TableExpr, on ValueExpr, using ...string) *joinExpr {
	return &joinExpr{pos: pos, kind: kind, left: left, right: right, on: on, using: using}
}

func (j *joinExpr) tableExprNode()        {}
func (j *joinExpr) Pos() Pos              { return j.pos }
func (j *joinExpr) Kind() JoinKind        { return j.kind }
func (j *joinExpr) Left() TableExpr       { return j.left }
func (j *joinExpr) Right() TableExpr      { return j.right }
func (j *joinExpr) On() ValueExpr         { return j.on }
func (j *joinExpr) UsingColumns() []string { return j.using }

type selectItem struct {
	pos               Pos
	expr              ValueExpr
	alias             string
	wildcard          bool
	wildcardQualifier string
	resolved          interface{}
}

func NewSelectItem(pos Pos, expr ValueExpr, alias string) *selectItem {
	return &selectItem{pos: pos, expr: expr, alias: alias}
}

func NewWildcard(pos Pos, qualifier string) *selectItem {
	return &selectItem{pos: pos, wildcard: true, wildcardQualifier: qualifier}
}

func (s *selectItem) Pos() Pos                    { return s.pos }
func (s *selectItem) Expr() ValueExpr             { return s.expr }
func (s *selectItem) Alias() string               { return s.alias }
func (s *selectItem) IsWildcard() bool            { return s.wildcard }
func (s *selectItem) WildcardQualifier() string   { return s.wildcardQualifier }
func (s *selectItem) SetResolved(v interface{})   { s.resolved = v }
func (s *selectItem) Resolved() interface{}       { return s.resolved }

type columnRef struct {
	pos         Pos
	catalog     string
	schema      string
	table       string
	column      string
	resolved    interface{}
	unknownType bool
}

func NewColumnRef(pos Pos, catalog, schema, table, column string) *columnRef {
	return &columnRef{pos: pos, catalog: catalog, schema: schema, table: table, column: column}
}

func (c *columnRef) Pos() Pos                  { return c.pos }
func (c *columnRef) Kind() ValueExprKind       { return ExprColumnRef }
func (c *columnRef) Operands() []ValueExpr     { return nil }
func (c *columnRef) SetUnknownType()           { c.unknownType = true }
func (c *columnRef) Catalog() string           { return c.catalog }
func (c *columnRef) Schema() string            { return c.schema }
func (c *columnRef) Table() string             { return c.table }
func (c *columnRef) Column() string            { return c.column }
func (c *columnRef) SetResolved(v interface{}) { c.resolved = v }
func (c *columnRef) Resolved() interface{}     { return c.resolved }

type funcCall struct {
	pos         Pos
	name        string
	args        []ValueExpr
	resolved    interface{}
	unknownType bool
	stcsLiteral string
	hasSTCS     bool
}

func NewFuncCall(pos Pos, name string, args ...ValueExpr) *funcCall {
	return &funcCall{pos: pos, name: name, args: args}
}

// WithSTCSLiteral marks fc as a geometry constructor whose STC-S argument
// text is lit, for tests that exercise the checker's region-validation
// phase without a real parser extracting the literal from an AST node.
func (fc *funcCall) WithSTCSLiteral(lit string) *funcCall {
	fc.stcsLiteral = lit
	fc.hasSTCS = true
	return fc
}

func (fc *funcCall) Pos() Pos                      { return fc.pos }
func (fc *funcCall) Kind() ValueExprKind           { return ExprFuncCall }
func (fc *funcCall) Operands() []ValueExpr         { return fc.args }
func (fc *funcCall) SetUnknownType()               { fc.unknownType = true }
func (fc *funcCall) Name() string                  { return fc.name }
func (fc *funcCall) Args() []ValueExpr             { return fc.args }
func (fc *funcCall) SetResolved(v interface{})     { fc.resolved = v }
func (fc *funcCall) Resolved() interface{}         { return fc.resolved }
func (fc *funcCall) STCSLiteral() (string, bool)   { return fc.stcsLiteral, fc.hasSTCS }

type literal struct {
	pos      Pos
	isString bool
	text     string
}

func NewStringLiteral(pos Pos, text string) *literal {
	return &literal{pos: pos, isString: true, text: text}
}

func NewNumericLiteral(pos Pos, text string) *literal {
	return &literal{pos: pos, text: text}
}

func (l *literal) Pos() Pos               { return l.pos }
func (l *literal) Kind() ValueExprKind    { return ExprLiteral }
func (l *literal) Operands() []ValueExpr  { return nil }
func (l *literal) SetUnknownType()        {}
func (l *literal) IsString() bool         { return l.isString }
func (l *literal) StringValue() string   { return l.text }

type otherExpr struct {
	pos         Pos
	operands    []ValueExpr
	unknownType bool
}

// NewOtherExpr builds an opaque operator node (comparison, arithmetic,
// CASE, ...) whose only semantic content visible to the checker is its
// operand list.
func NewOtherExpr(pos Pos, operands ...ValueExpr) *otherExpr {
	return &otherExpr{pos: pos, operands: operands}
}

func (o *otherExpr) Pos() Pos                { return o.pos }
func (o *otherExpr) Kind() ValueExprKind     { return ExprOther }
func (o *otherExpr) Operands() []ValueExpr   { return o.operands }
func (o *otherExpr) SetUnknownType()         { o.unknownType = true }

type subqueryExpr struct {
	pos         Pos
	query       Query
	unknownType bool
}

func NewSubqueryExpr(pos Pos, q Query) *subqueryExpr {
	return &subqueryExpr{pos: pos, query: q}
}

func (s *subqueryExpr) Pos() Pos                 { return s.pos }
func (s *subqueryExpr) Kind() ValueExprKind      { return ExprSubquery }
func (s *subqueryExpr) Operands() []ValueExpr    { return nil }
func (s *subqueryExpr) SetUnknownType()          { s.unknownType = true }
func (s *subqueryExpr) Query() Query             { return s.query }

type groupOrderItem struct {
	pos      Pos
	kind     GroupOrderKind
	index    int
	name     string
	expr     ValueExpr
	resolved interface{}
}

// NewOrdinalRef builds a GROUP BY / ORDER BY item referring to the n'th
// (1-based) SELECT item.
func NewOrdinalRef(pos Pos, n int) *groupOrderItem {
	return &groupOrderItem{pos: pos, kind: GroupOrderIndex, index: n}
}

// NewNameRef builds a GROUP BY / ORDER BY item that is a bare, unqualified
// name -- matched against SELECT-item aliases before falling back to an
// ordinary column lookup.
func NewNameRef(pos Pos, name string) *groupOrderItem {
	return &groupOrderItem{pos: pos, kind: GroupOrderName, name: name}
}

// NewExprRef builds a GROUP BY / ORDER BY item that is an arbitrary
// expression, walked like any other ValueExpr.
func NewExprRef(e ValueExpr) *groupOrderItem {
	return &groupOrderItem{pos: e.Pos(), kind: GroupOrderExpr, expr: e}
}

func (g *groupOrderItem) Pos() Pos                  { return g.pos }
func (g *groupOrderItem) Kind() GroupOrderKind      { return g.kind }
func (g *groupOrderItem) Index() int                { return g.index }
func (g *groupOrderItem) Name() string              { return g.name }
func (g *groupOrderItem) Expr() ValueExpr           { return g.expr }
func (g *groupOrderItem) SetResolved(v interface{}) { g.resolved = v }
func (g *groupOrderItem) Resolved() interface{}     { return g.resolved }
