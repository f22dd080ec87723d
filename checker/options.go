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
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/adql-go/semcheck/function"
)

// Options configures one Check call against a host's deployment: which
// user-defined functions it exposes beyond the ADQL standard library, which
// geometry constructors may appear in STC-S literals, and which coordinate
// systems those literals may declare. Every field follows the same
// nil-vs-empty convention: a nil slice/registry means "unconstrained", a
// non-nil one (even with zero elements) is enforced.
type Options struct {
	// AllowedUdfs is the whitelist of additional, host-specific function
	// signatures a call may resolve against beyond function.Standard. Nil
	// means "accept any unknown function": a call that doesn't match
	// a Standard signature is simply left with an unresolved type, no
	// diagnostic. A non-nil registry, even an empty one, is enforced: a
	// call matching neither Standard nor this registry becomes
	// UnresolvedFunction.
	AllowedUdfs *function.Registry

	// AllowedGeometries restricts which geometry constructor function names
	// (POINT, CIRCLE, BOX, POLYGON, REGION, ...) may be used. Nil means
	// every geometry constructor name is allowed; a non-nil (possibly
	// empty) slice is enforced.
	AllowedGeometries []string

	// AllowedCoordSys is the list of STC-S coordinate system patterns
	// a geometry literal's coordinate system must match. Nil means
	// any coordinate system is accepted; a non-nil (possibly empty) slice
	// is enforced, with the all-default coordinate system always
	// implicitly accepted.
	AllowedCoordSys []string

	// Logger receives the checker's phase-transition debug entries. Nil
	// means logrus.StandardLogger(). Diagnostic-only; never changes control
	// flow.
	Logger logrus.FieldLogger
}

// lookup resolves call against the standard registry first, then the
// host's UDF whitelist (if configured). defs is the set of matching
// signatures; accept reports whether the call should be left
// unflagged even with zero defs -- true when no whitelist is configured at
// all, since an unconfigured whitelist accepts any unknown function
// unconditionally.
func (o Options) lookup(call function.CallSite) (defs []function.FunctionDef, accept bool) {
	if std := function.Standard.Lookup(call); len(std) > 0 {
		return std, true
	}
	if o.AllowedUdfs == nil {
		return nil, true
	}
	defs = o.AllowedUdfs.Lookup(call)
	return defs, len(defs) > 0
}

func (o Options) geometryAllowed(name string) bool {
	if o.AllowedGeometries == nil {
		return true
	}
	for _, g := range o.AllowedGeometries {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}
