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

// Package checker implements the ADQL semantic checker's orchestrator: a
// recursive, per-query-level walk that resolves tables, columns,
// functions, and embedded STC-S geometry literals against a schema
// catalog, accumulating every problem it finds into an ErrorReport instead
// of stopping at the first one.
package checker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/adql-go/semcheck/ast"
	"github.com/adql-go/semcheck/function"
	"github.com/adql-go/semcheck/ident"
	"github.com/adql-go/semcheck/schema"
	"github.com/adql-go/semcheck/stcs"
	"github.com/adql-go/semcheck/symtab"
)

// resolvedInfo is the checker's own bookkeeping for one ValueExpr node's
// resolved type category, kept in session.typeOf rather than round-tripped
// through the ast package's SetResolved.
type resolvedInfo struct {
	category function.ArgCategory
}

var unresolvedCategory = function.ArgCategory{Numeric: true, String: true, Geometry: true}

type session struct {
	ctx     context.Context
	opts    Options
	catalog *schema.SchemaCatalog
	geomRe  *regexp.Regexp
	report  *ErrorReport
	log     *logrus.Entry
	typeOf  map[ast.ValueExpr]resolvedInfo
	colLink map[ast.ColumnRef]*schema.DbColumn
}

// Check walks q against catalog under opts, returning an ErrorReport
// listing every diagnostic found. An empty (OK) report means the query
// passed every check; the report is never nil.
func Check(ctx context.Context, q ast.Query, catalog *schema.SchemaCatalog, opts Options) *ErrorReport {
	id := uuid.NewV4()
	base := opts.Logger
	if base == nil {
		base = logrus.StandardLogger()
	}
	log := base.WithFields(logrus.Fields{"component": "checker", "check_id": id.String()})
	report := &ErrorReport{}

	// A nil AllowedCoordSys means "accept any coordinate system": no
	// regex is compiled and checkCoordSys skips the check entirely.
	// A non-nil (possibly empty) slice is enforced via the compiled
	// pattern, which always implicitly admits the all-default system.
	var re *regexp.Regexp
	if opts.AllowedCoordSys != nil {
		var err error
		re, err = stcs.CompilePatterns(opts.AllowedCoordSys)
		if err != nil {
			report.add(q.Pos(), err)
			return report
		}
	}

	s := &session{
		ctx:     ctx,
		opts:    opts,
		catalog: catalog,
		geomRe:  re,
		report:  report,
		log:     log,
		typeOf:  make(map[ast.ValueExpr]resolvedInfo),
		colLink: make(map[ast.ColumnRef]*schema.DbColumn),
	}
	s.checkQuery(q, newRootScope())
	return report
}

// checkQuery runs one query level's five phases: resolve its FROM
// tree into a Scope, then resolve every column reference, function call,
// and STC-S geometry literal reachable from its SELECT list and predicate
// list, recursing into nested sub-queries as they're discovered.
func (s *session) checkQuery(q ast.Query, scope *Scope) {
	if err := s.ctx.Err(); err != nil {
		s.report.add(q.Pos(), err)
		return
	}

	log := s.log.WithField("phase", "ResolveTables")
	log.Debug("entering query level")
	if src := q.Source(); src != nil {
		scope.columns = s.resolveTableExpr(src, scope)
	}

	s.log.WithField("phase", "ResolveColumns").Debug("resolving select list")
	for _, item := range q.SelectItems() {
		if item.IsWildcard() {
			s.resolveWildcard(item, scope)
			continue
		}
		s.walkExpr(item.Expr(), scope)
	}

	s.log.WithField("phase", "TypeCheck").Debug("resolving predicates")
	for _, cond := range q.Conditions() {
		s.walkExpr(cond, scope)
	}

	s.log.WithField("phase", "ResolveColumns").Debug("resolving group/order by")
	items := q.SelectItems()
	for _, g := range q.GroupBy() {
		s.resolveGroupOrderItem(g, items, scope)
	}
	for _, o := range q.OrderBy() {
		s.resolveGroupOrderItem(o, items, scope)
	}

	s.log.WithField("phase", "Exit").Debug("leaving query level")
}

// resolveGroupOrderItem resolves one GROUP BY / ORDER BY entry against the
// selected columns: an ordinal resolves against the current level's own
// SELECT list, a bare name is matched against a
// SELECT-item alias before falling back to plain column lookup in the
// current scope, and any other expression is walked like any other
// ValueExpr. Parent scopes are never consulted here.
func (s *session) resolveGroupOrderItem(item ast.GroupOrderItem, items []ast.SelectItem, scope *Scope) {
	switch item.Kind() {
	case ast.GroupOrderExpr:
		s.walkExpr(item.Expr(), scope)

	case ast.GroupOrderIndex:
		n := item.Index()
		if n < 1 || n > len(items) {
			s.report.add(item.Pos(), ErrIndexOutOfBounds.New(fmt.Sprintf("%d", n)))
			item.SetResolved(nil)
			return
		}
		item.SetResolved(s.selectItemColumn(items[n-1]))

	case ast.GroupOrderName:
		name := item.Name()
		nameID, err := ident.Normalize(name)
		if err != nil {
			s.report.add(item.Pos(), err)
			return
		}
		for _, sel := range items {
			if sel.IsWildcard() || sel.Alias() == "" {
				continue
			}
			aliasID, err := ident.Normalize(sel.Alias())
			if err != nil || !ident.Equals(nameID, aliasID) {
				continue
			}
			item.SetResolved(s.selectItemColumn(sel))
			return
		}

		query := symtab.Query{Column: nameID}
		matches := scope.columns.Search(query)
		switch len(matches) {
		case 0:
			s.report.add(item.Pos(), ErrUnknownColumn.New(name))
			item.SetResolved(nil)
		case 1:
			item.SetResolved(matches[0].DbColumn())
		default:
			s.report.add(item.Pos(), ErrAmbiguousColumn.New(name))
			item.SetResolved(nil)
		}
	}
}

// selectItemColumn returns the DbColumn a SELECT item's own resolution
// bound to, or nil when the item isn't a direct, successfully resolved
// column reference -- e.g. a literal, an arithmetic expression, or a
// column that itself failed to resolve. This is not an error: an ordinal
// naming a non-column expression simply has no single column to bind.
func (s *session) selectItemColumn(sel ast.SelectItem) *schema.DbColumn {
	if sel.IsWildcard() {
		return nil
	}
	cr, ok := sel.Expr().(ast.ColumnRef)
	if !ok {
		return nil
	}
	return s.colLink[cr]
}

func (s *session) resolveWildcard(item ast.SelectItem, scope *Scope) {
	qualifier := item.WildcardQualifier()
	if qualifier == "" {
		return
	}
	id, err := ident.Normalize(qualifier)
	if err != nil {
		s.report.add(item.Pos(), err)
		return
	}
	matches := scope.tables.Search(symtab.TableQuery{Table: id})
	switch len(matches) {
	case 0:
		s.report.add(item.Pos(), ErrUnknownTable.New(qualifier))
	case 1:
		// Unambiguous: rebind the wildcard to the table (or alias wrapper)
		// the qualifier named.
		item.SetResolved(matches[0])
	default:
		s.report.add(item.Pos(), ErrAmbiguousTable.New(qualifier))
	}
}

// walkExpr resolves e in post-order: every operand is resolved (and has
// its type category recorded) before e itself, so a function call's
// argument categories are always known by the time the call is looked up.
// Since an expression tree has no forward references to later siblings,
// this single bottom-up pass is all the "forward resolution" a UDF call
// needs -- there is no case where retrying later would discover anything
// new that wasn't already available from the children just walked.
func (s *session) walkExpr(e ast.ValueExpr, scope *Scope) {
	if e == nil {
		return
	}
	for _, operand := range e.Operands() {
		s.walkExpr(operand, scope)
	}

	switch e.Kind() {
	case ast.ExprColumnRef:
		s.resolveColumnRef(e.(ast.ColumnRef), scope)
	case ast.ExprFuncCall:
		s.resolveFuncCall(e.(ast.FuncCall), scope)
	case ast.ExprLiteral:
		lit := e.(ast.Literal)
		if lit.IsString() {
			s.typeOf[e] = resolvedInfo{category: function.ArgCategory{String: true}}
		} else {
			s.typeOf[e] = resolvedInfo{category: function.ArgCategory{Numeric: true}}
		}
	case ast.ExprSubquery:
		sub := e.(ast.SubqueryExpr)
		s.checkQuery(sub.Query(), scope.push())
		e.SetUnknownType()
		s.typeOf[e] = resolvedInfo{category: unresolvedCategory}
	default: // ExprOther: an opaque operator (comparison, arithmetic, CASE, ...)
		s.checkOperatorTypes(e)
		e.SetUnknownType()
		s.typeOf[e] = resolvedInfo{category: unresolvedCategory}
	}
}

// checkOperatorTypes applies the only type-check an opaque ExprOther node
// supports: when it has exactly two operands (a binary comparison or
// arithmetic expression) and both resolved to a known category, the two
// sides must share at least one category.
func (s *session) checkOperatorTypes(e ast.ValueExpr) {
	ops := e.Operands()
	if len(ops) != 2 {
		return
	}
	left, lok := s.typeOf[ops[0]]
	right, rok := s.typeOf[ops[1]]
	if !lok || !rok || left.category.IsUnresolved() || right.category.IsUnresolved() {
		return
	}
	if !categoriesOverlap(left.category, right.category) {
		s.report.add(e.Pos(), ErrTypeMismatch.New(fmt.Sprintf("%s vs %s", renderCategory(left.category), renderCategory(right.category))))
	}
}

func categoriesOverlap(a, b function.ArgCategory) bool {
	return (a.Numeric && b.Numeric) || (a.String && b.String) || (a.Geometry && b.Geometry)
}

func renderCategory(c function.ArgCategory) string {
	switch {
	case c.Numeric:
		return "numeric"
	case c.String:
		return "string"
	case c.Geometry:
		return "geometry"
	default:
		return "?"
	}
}

func (s *session) resolveColumnRef(cr ast.ColumnRef, scope *Scope) {
	colID, err := ident.Normalize(cr.Column())
	if err != nil {
		s.report.add(cr.Pos(), err)
		return
	}

	query := symtab.Query{Column: colID}
	if cr.Table() != "" {
		if id, err := ident.Normalize(cr.Table()); err == nil {
			query.Table = &id
		}
	}
	if cr.Schema() != "" {
		if id, err := ident.Normalize(cr.Schema()); err == nil {
			query.Schema = &id
		}
	}
	if cr.Catalog() != "" {
		if id, err := ident.Normalize(cr.Catalog()); err == nil {
			query.Catalog = &id
		}
	}

	matches := scope.columns.Search(query)
	// A correlated reference is legal: a column absent from the current
	// level falls through to each enclosing scope in turn, innermost
	// first, until one resolves it or the chain runs out.
	for level := scope.parent; len(matches) == 0 && level != nil; level = level.parent {
		matches = level.columns.Search(query)
	}

	switch len(matches) {
	case 0:
		s.report.add(cr.Pos(), ErrUnknownColumn.New(cr.Column()))
		cr.SetResolved(nil)
	case 1:
		col := matches[0].DbColumn()
		cr.SetResolved(col)
		s.colLink[cr] = col
		s.typeOf[cr] = resolvedInfo{category: function.CategoryOf(matches[0].Type())}
	default:
		s.report.add(cr.Pos(), ErrAmbiguousColumn.New(cr.Column()))
		cr.SetResolved(nil)
	}
}

func (s *session) resolveFuncCall(fc ast.FuncCall, scope *Scope) {
	args := make([]function.ArgCategory, len(fc.Args()))
	for i, a := range fc.Args() {
		if info, ok := s.typeOf[a]; ok {
			args[i] = info.category
		} else {
			args[i] = unresolvedCategory
		}
	}
	call := function.CallSite{Name: fc.Name(), Args: args}

	// The AllowedGeometries whitelist applies to every geometry-constructor
	// call by name alone -- unconditionally, not only when the call happens
	// to carry a literal STC-S argument (validating the literal itself is
	// the separate check resolveGeometryLiteral performs below).
	if function.IsGeometryFunction(fc.Name()) && !s.opts.geometryAllowed(fc.Name()) {
		s.report.add(fc.Pos(), ErrUnresolvedFunction.New(call.Signature()))
	} else if lit, ok := fc.STCSLiteral(); ok {
		s.resolveGeometryLiteral(fc, lit)
	}

	defs, accept := s.opts.lookup(call)

	switch {
	case len(defs) > 0:
		// More than one surviving definition means some argument's type is
		// still unresolved -- not an error. Either way the first match
		// stands in for downstream type propagation.
		fc.SetResolved(defs[0])
		s.typeOf[fc] = resolvedInfo{category: function.CategoryOf(defs[0].ReturnType)}
	case accept:
		// No AllowedUdfs whitelist configured: an unknown function is
		// accepted unconditionally, just with no signature to propagate a
		// return type from.
		fc.SetResolved(nil)
		s.typeOf[fc] = resolvedInfo{category: unresolvedCategory}
	default:
		s.report.add(fc.Pos(), ErrUnresolvedFunction.New(call.Signature()))
		fc.SetResolved(nil)
		s.typeOf[fc] = resolvedInfo{category: unresolvedCategory}
	}
}

// resolveGeometryLiteral validates the string literal carried by a geometry
// constructor. For POINT/CIRCLE/BOX/POLYGON the literal is a
// coordinate system; for REGION it is a full STC-S region, validated
// recursively. The AllowedGeometries whitelist on the call's own name is
// checked in resolveFuncCall before this is ever reached.
func (s *session) resolveGeometryLiteral(fc ast.FuncCall, text string) {
	if strings.EqualFold(fc.Name(), "region") {
		region, err := stcs.ParseRegion(text)
		if err != nil {
			s.report.add(fc.Pos(), err)
			return
		}
		s.checkRegion(fc.Pos(), region)
		return
	}

	cs, err := stcs.ParseCoordSys(text)
	if err != nil {
		s.report.add(fc.Pos(), err)
		return
	}
	s.checkCoordSys(fc.Pos(), cs)
}

// checkRegion validates a parsed STC-S region tree: each shape's kind must
// name an allowed geometry constructor (POSITION maps to POINT for the
// whitelist check) and its coordinate system must match the allowed set;
// UNION/INTERSECTION/NOT recurse into their inner regions, with a
// combinator's own coordinate system accepted but ignored since the inner
// regions carry their own.
func (s *session) checkRegion(pos ast.Pos, r *stcs.Region) {
	switch r.Kind {
	case stcs.Union, stcs.Intersection, stcs.Not:
		for _, inner := range r.Inner {
			s.checkRegion(pos, inner)
		}
	default:
		name := regionFunctionName(r.Kind)
		if !s.opts.geometryAllowed(name) {
			s.report.add(pos, ErrUnresolvedFunction.New(strings.ToUpper(name)))
		}
		s.checkCoordSys(pos, r.CoordSys)
	}
}

// regionFunctionName maps a region kind to the geometry-constructor name the
// AllowedGeometries whitelist is expressed in. POSITION has no constructor
// of its own; it is whitelisted as POINT.
func regionFunctionName(k stcs.RegionKind) string {
	if k == stcs.Position {
		return "point"
	}
	return strings.ToLower(k.String())
}

func (s *session) checkCoordSys(pos ast.Pos, cs stcs.CoordSys) {
	if s.geomRe == nil {
		// No AllowedCoordSys configured: every coordinate system accepted.
		return
	}
	if !s.geomRe.MatchString(cs.String()) {
		s.report.add(pos, ErrCoordSysNotAllowed.New(cs.String()))
	}
}

// resolveTableExpr resolves one node of a FROM tree, registering every
// table it finds directly on scope.tables and returning the ColumnList
// visible through that node alone.
func (s *session) resolveTableExpr(te ast.TableExpr, scope *Scope) *symtab.ColumnList {
	switch t := te.(type) {
	case ast.NamedTable:
		return s.resolveNamedTable(t, scope)
	case ast.DerivedTable:
		return s.resolveDerivedTable(t, scope)
	case ast.JoinExpr:
		return s.resolveJoin(t, scope)
	default:
		s.report.add(te.Pos(), fmt.Errorf("unrecognized table expression"))
		return symtab.NewColumnList()
	}
}

func (s *session) resolveNamedTable(t ast.NamedTable, scope *Scope) *symtab.ColumnList {
	empty := symtab.NewColumnList()

	tableID, err := ident.Normalize(t.Table())
	if err != nil {
		s.report.add(t.Pos(), err)
		return empty
	}

	ref := schema.TableRef{Table: tableID}
	if t.Schema() != "" {
		if id, err := ident.Normalize(t.Schema()); err == nil {
			ref.Schema = &id
		}
	}
	if t.Catalog() != "" {
		if id, err := ident.Normalize(t.Catalog()); err == nil {
			ref.Catalog = &id
		}
	}

	matches := s.catalog.Search(ref)
	if len(matches) == 0 {
		s.report.add(t.Pos(), ErrUnknownTable.New(t.Table()))
		t.SetResolved(nil)
		return empty
	}
	if len(matches) > 1 {
		s.report.add(t.Pos(), ErrAmbiguousTable.New(t.Table()))
	}

	bound := matches[0]
	if t.Alias() != "" {
		aliasID, err := ident.Normalize(t.Alias())
		if err != nil {
			s.report.add(t.Pos(), err)
			return empty
		}
		// The wrapper's copied columns carry the alias as their table
		// identity, so two aliases of the same table (a self-join) stay
		// distinguishable during resolution, and the wrapped table's
		// original name is hidden at this level the way an alias hides it
		// in SQL.
		bound = schema.NewAlias(bound, aliasID)
	}

	scope.tables.Add(bound)
	t.SetResolved(bound)

	colList := symtab.NewColumnList()
	for _, c := range bound.Columns() {
		colList.Add(c)
	}
	return colList
}

func (s *session) resolveDerivedTable(t ast.DerivedTable, scope *Scope) *symtab.ColumnList {
	empty := symtab.NewColumnList()

	s.checkQuery(t.Subquery(), scope.push())

	aliasID, err := ident.Normalize(t.Alias())
	if err != nil {
		s.report.add(t.Pos(), err)
		return empty
	}

	virtual, err := schema.NewTable(aliasID, ident.Identifier{}, ident.Identifier{}, aliasID, ident.Identifier{}, ident.Identifier{})
	if err != nil {
		s.report.add(t.Pos(), err)
		return empty
	}

	for i, item := range t.Subquery().SelectItems() {
		if item.IsWildcard() {
			continue
		}
		name := item.Alias()
		if name == "" {
			if cr, ok := item.Expr().(ast.ColumnRef); ok {
				name = cr.Column()
			}
		}
		if name == "" {
			name = fmt.Sprintf("col%d", i+1)
		}
		nameID, err := ident.Normalize(name)
		if err != nil {
			continue
		}
		virtual.AddColumn(nameID, nameID, schema.NewUnknown(name))
	}

	scope.tables.Add(virtual)
	colList := symtab.NewColumnList()
	for _, c := range virtual.Columns() {
		colList.Add(c)
	}
	return colList
}

func (s *session) resolveJoin(t ast.JoinExpr, scope *Scope) *symtab.ColumnList {
	leftCols := s.resolveTableExpr(t.Left(), scope)
	rightCols := s.resolveTableExpr(t.Right(), scope)

	switch t.Kind() {
	case ast.JoinNatural:
		merged, err := symtab.MergeNatural(leftCols, rightCols)
		if err != nil {
			s.report.add(t.Pos(), err)
			return concatColumns(leftCols, rightCols)
		}
		return merged

	case ast.JoinUsing:
		var cols []ident.Identifier
		for _, c := range t.UsingColumns() {
			id, err := ident.Normalize(c)
			if err != nil {
				s.report.add(t.Pos(), err)
				continue
			}
			cols = append(cols, id)
		}
		merged, err := symtab.MergeUsing(leftCols, rightCols, cols)
		if err != nil {
			s.report.add(t.Pos(), err)
			return concatColumns(leftCols, rightCols)
		}
		return merged

	default: // inner/left/right/full/cross
		combined := concatColumns(leftCols, rightCols)
		if on := t.On(); on != nil {
			// parent is scope.parent, not scope itself: an ON condition
			// sees only the two joined branches' columns directly, and
			// falls through to the true enclosing query level (not back
			// into this same level's own in-progress scope) for a
			// correlated reference.
			onScope := &Scope{tables: scope.tables, columns: combined, parent: scope.parent}
			s.walkExpr(on, onScope)
		}
		return combined
	}
}

func concatColumns(lists ...*symtab.ColumnList) *symtab.ColumnList {
	out := symtab.NewColumnList()
	for _, l := range lists {
		for _, c := range l.All() {
			if c.IsCommon() {
				out.AddCommon(c.Common())
			} else {
				out.Add(c.DbColumn())
			}
		}
	}
	return out
}
