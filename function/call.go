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
	"strings"

	"github.com/adql-go/semcheck/schema"
)

// ArgCategory is an argument's type category at the point of a call. An
// argument whose type is still unresolved reports true for all three.
type ArgCategory struct {
	Numeric  bool
	String   bool
	Geometry bool
}

// CategoryOf derives an ArgCategory from a resolved schema.DbType. An
// UNKNOWN/UNKNOWN_NUMERIC type is treated as unresolved (all three true)
// since its true category can't be determined yet.
func CategoryOf(t schema.DbType) ArgCategory {
	if t.IsUnknown() {
		return ArgCategory{Numeric: true, String: true, Geometry: true}
	}
	return ArgCategory{Numeric: t.IsNumeric(), String: t.IsString(), Geometry: t.IsGeometry()}
}

// IsUnresolved reports whether every category bit is set, i.e. the
// argument's type is not yet known.
func (c ArgCategory) IsUnresolved() bool {
	return c.Numeric && c.String && c.Geometry
}

// CallSite is a function call's name and argument categories, as observed
// during a single walk (possibly before every argument's type is known).
type CallSite struct {
	Name string
	Args []ArgCategory
}

// Signature renders the call site's synthesized signature for diagnostics,
// naming each argument by its resolved category.
func (c CallSite) Signature() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		switch {
		case a.IsUnresolved():
			b.WriteString("?")
		case a.Numeric:
			b.WriteString("numeric")
		case a.String:
			b.WriteString("string")
		case a.Geometry:
			b.WriteString("geometry")
		default:
			b.WriteString("?")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Compare orders a definition against a call site: name first (lexicographic
// on inequality), then a positional category comparison in the fixed order
// numeric/string/geometry up to min(#params, #args), then arity as a
// tiebreak. Zero means "match".
func Compare(def FunctionDef, call CallSite) int {
	defName := strings.ToLower(def.Name)
	callName := strings.ToLower(call.Name)
	if defName != callName {
		if defName < callName {
			return -1
		}
		return 1
	}

	n := len(def.Params)
	if len(call.Args) < n {
		n = len(call.Args)
	}

	for i := 0; i < n; i++ {
		paramType := def.Params[i].Type
		arg := call.Args[i]

		if paramType.IsUnknown() || arg.IsUnresolved() {
			continue
		}

		if c := compareCategory(paramType.IsNumeric(), arg.Numeric); c != 0 {
			return c
		}
		if c := compareCategory(paramType.IsString(), arg.String); c != 0 {
			return c
		}
		if c := compareCategory(paramType.IsGeometry(), arg.Geometry); c != 0 {
			return c
		}
	}

	return len(def.Params) - len(call.Args)
}

func compareCategory(defHas, callHas bool) int {
	if defHas == callHas {
		return 0
	}
	if defHas {
		return 1
	}
	return -1
}
