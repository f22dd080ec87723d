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

package stcs

import (
	"regexp"
	"strings"
)

// CompilePatterns compiles a list of allowed-coordinate-system patterns
// ("framePart refposPart flavorPart", each part a literal, "*", or
// "(v1|v2|...)") into a single regex matching a CoordSys's canonical
// three-token String() form. The default value of each part is always
// implicitly added to that part's allowed set, so the all-default
// coordinate system (and therefore the empty input string) is always
// accepted.
func CompilePatterns(patterns []string) (*regexp.Regexp, error) {
	var alternatives []string
	for _, p := range patterns {
		alt, err := compileOnePattern(p)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}
	// Even a fully empty pattern list admits the all-default coordinate
	// system: an empty STC-S input parses to CoordSys{Default} and must
	// still validate against an "empty" (but non-null) allowed list.
	alternatives = append(alternatives, "(?i)^"+regexp.QuoteMeta(Default.String())+"$")

	return regexp.Compile(strings.Join(alternatives, "|"))
}

func compileOnePattern(pattern string) (string, error) {
	fields := strings.Fields(pattern)
	framePart := "*"
	refposPart := "*"
	flavorPart := "*"
	if len(fields) >= 1 {
		framePart = fields[0]
	}
	if len(fields) >= 2 {
		refposPart = fields[1]
	}
	if len(fields) >= 3 {
		flavorPart = fields[2]
	}

	frameAlt := compilePart(framePart, stringSliceOf(frames), string(UNKNOWNFRAME))
	refposAlt := compilePart(refposPart, stringSliceOf(refPositions), string(UNKNOWNREFPOS))
	flavorAlt := compilePart(flavorPart, stringSliceOf(flavors), string(SPHERICAL2))

	return "(?i)^" + frameAlt + " " + refposAlt + " " + flavorAlt + "$", nil
}

// compilePart turns one pattern part into a regex alternation, always
// including the part's default value in the allowed set.
func compilePart(part string, universe []string, defaultValue string) string {
	var values []string
	switch {
	case part == "*":
		values = append(values, universe...)
	case strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")"):
		values = strings.Split(part[1:len(part)-1], "|")
	default:
		values = []string{part}
	}

	hasDefault := false
	for _, v := range values {
		if strings.EqualFold(v, defaultValue) {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		values = append(values, defaultValue)
	}

	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(strings.TrimSpace(v))
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

func stringSliceOf[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}
