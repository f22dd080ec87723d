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

import "strings"

// Standard is the registry of ADQL's built-in functions: the aggregates,
// math functions, and geometry/region constructors and predicates every
// ADQL implementation supports regardless of a host's UDF whitelist.
var Standard = MustParse(
	"count(x double) -> bigint",
	"sum(x double) -> double",
	"avg(x double) -> double",
	"min(x double) -> double",
	"max(x double) -> double",
	"abs(x double) -> double",
	"round(x double) -> double",
	"sqrt(x double) -> double",
	"point(coordsys varchar, ra double, dec double) -> point",
	"circle(coordsys varchar, ra double, dec double, radius double) -> region",
	"box(coordsys varchar, ra double, dec double, width double, height double) -> region",
	"polygon(coordsys varchar, coords double) -> region",
	"region(s varchar) -> region",
	"centroid(r region) -> point",
	"coord1(p point) -> double",
	"coord2(p point) -> double",
	"coordsys(p point) -> varchar",
	"contains(a region, b region) -> integer",
	"intersects(a region, b region) -> integer",
	"area(r region) -> double",
	"distance(a point, b point) -> double",
)

// geometryConstructorNames are the STC-S-consuming geometry constructors:
// the ones a host's AllowedGeometries whitelist governs. This is narrower
// than "any function touching a geometry type" --
// contains/intersects/area/distance/centroid/coord1/
// coord2/coordsys consume or produce geometries but never take a
// coordinate-system or STC-S literal argument, so they are not the
// "geometry-function node" the whitelist is scoped to.
var geometryConstructorNames = map[string]bool{
	"point":   true,
	"circle":  true,
	"box":     true,
	"polygon": true,
	"region":  true,
}

// IsGeometryFunction reports whether name (case-insensitive) is one of
// Standard's geometry constructors. This is independent of how a
// particular call spells its arguments: it is the name alone that makes a
// call subject to a host's AllowedGeometries whitelist, whether or not
// that call happens to carry a literal STC-S argument.
func IsGeometryFunction(name string) bool {
	return geometryConstructorNames[strings.ToLower(name)]
}
