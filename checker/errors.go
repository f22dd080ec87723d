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
	"fmt"
	"strings"

	"github.com/adql-go/semcheck/ast"
	"gopkg.in/src-d/go-errors.v1"
)

// The checker's own error kinds. Errors raised by lower packages
// (ident, schema, symtab, function, stcs) are reported as-is; these cover
// conditions only the orchestrator itself detects.
var (
	ErrUnknownTable       = errors.NewKind("unknown table: %s")
	ErrAmbiguousTable     = errors.NewKind("ambiguous table reference: %s")
	ErrUnknownColumn      = errors.NewKind("unknown column: %s")
	ErrAmbiguousColumn    = errors.NewKind("ambiguous column reference: %s")
	ErrUnresolvedFunction = errors.NewKind("no matching signature for function %s")
	ErrCoordSysNotAllowed = errors.NewKind("coordinate system not allowed: %s")
	ErrTypeMismatch       = errors.NewKind("type mismatch: %s")
	ErrIndexOutOfBounds   = errors.NewKind("column index out of bounds: %s")
)

// Diagnostic pairs one accumulated error with the query-text position it
// was raised at. The checker never stops at the first Diagnostic; it
// keeps walking and collects every one it can find.
type Diagnostic struct {
	Pos ast.Pos
	Err error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d: %s", d.Pos, d.Err.Error())
}

// ErrorReport accumulates every Diagnostic found across an entire Check
// call, including all nested sub-query levels. A zero-value ErrorReport is
// ready to use.
type ErrorReport struct {
	diagnostics []Diagnostic
}

func (r *ErrorReport) add(pos ast.Pos, err error) {
	if err == nil {
		return
	}
	r.diagnostics = append(r.diagnostics, Diagnostic{Pos: pos, Err: err})
}

// OK reports whether the query passed every check with no diagnostics.
func (r *ErrorReport) OK() bool { return len(r.diagnostics) == 0 }

// Diagnostics returns every accumulated diagnostic, in the order they were
// discovered during the walk.
func (r *ErrorReport) Diagnostics() []Diagnostic { return r.diagnostics }

// Entries is an alias for Diagnostics, for callers that prefer the
// collection-style name.
func (r *ErrorReport) Entries() []Diagnostic { return r.diagnostics }

// Is reports whether any accumulated diagnostic was raised from kind, the
// report-wide analogue of errors.Kind.Is on a single error value.
func (r *ErrorReport) Is(kind *errors.Kind) bool {
	for _, d := range r.diagnostics {
		if kind.Is(d.Err) {
			return true
		}
	}
	return false
}

func (r *ErrorReport) Error() string {
	lines := make([]string, len(r.diagnostics))
	for i, d := range r.diagnostics {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}
