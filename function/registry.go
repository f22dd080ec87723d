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

package function

import (
	"sort"
	"strings"
)

// Registry is a read-only-after-construction collection of
// FunctionDefs, kept sorted by CompareForm for binary-search lookup.
type Registry struct {
	defs []FunctionDef
}

// NewRegistry builds a Registry from defs, sorted by compare form.
func NewRegistry(defs ...FunctionDef) *Registry {
	sorted := append([]FunctionDef{}, defs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CompareForm() < sorted[j].CompareForm() })
	return &Registry{defs: sorted}
}

// MustParse builds a Registry from literal textual signatures, panicking on
// a malformed one -- for package-init-time standard function tables.
func MustParse(signatures ...string) *Registry {
	defs := make([]FunctionDef, 0, len(signatures))
	for _, s := range signatures {
		defs = append(defs, MustParseSignature(s))
	}
	return NewRegistry(defs...)
}

// Defs returns every registered definition, in sorted (compare-form) order.
func (r *Registry) Defs() []FunctionDef { return r.defs }

// nameCompare orders def and call names the same way Compare's first step
// does (case-insensitive lexicographic), ignoring parameter categories
// entirely.
func nameCompare(defName, callName string) int {
	dn := strings.ToLower(defName)
	cn := strings.ToLower(callName)
	switch {
	case dn < cn:
		return -1
	case dn > cn:
		return 1
	default:
		return 0
	}
}

// Lookup finds every registered definition whose Compare against call is
// zero. Compare is only monotonic over the registry's CompareForm order in
// its name component -- an unresolved call argument makes Compare skip a
// parameter position entirely while CompareForm still sorts
// on that position's literal category bits, so a full binary search on
// Compare itself can skip past a real match when an overload set differs
// only in a position the call leaves unresolved. Name comparison alone
// has no such hazard (every definition sharing a name occupies one
// contiguous run, since CompareForm's name prefix dominates the sort), so
// Lookup binary-searches only to that run's edges and falls back to a
// linear Compare scan within it -- still skipping the bulk of an
// unrelated-name registry, but never relying on Compare's monotonicity
// where it doesn't hold.
func (r *Registry) Lookup(call CallSite) []FunctionDef {
	lo := sort.Search(len(r.defs), func(i int) bool { return nameCompare(r.defs[i].Name, call.Name) >= 0 })
	hi := sort.Search(len(r.defs), func(i int) bool { return nameCompare(r.defs[i].Name, call.Name) > 0 })

	var matches []FunctionDef
	for _, def := range r.defs[lo:hi] {
		if Compare(def, call) == 0 {
			matches = append(matches, def)
		}
	}
	return matches
}
