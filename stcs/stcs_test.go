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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordSysDefaults(t *testing.T) {
	cs, err := ParseCoordSys("")
	require.NoError(t, err)
	assert.Equal(t, Default, cs)
}

func TestParseCoordSysPartial(t *testing.T) {
	cs, err := ParseCoordSys("ICRS")
	require.NoError(t, err)
	assert.Equal(t, ICRS, cs.Frame)
	assert.Equal(t, UNKNOWNREFPOS, cs.RefPos)
	assert.Equal(t, SPHERICAL2, cs.Flavor)
}

func TestParseCoordSysFull(t *testing.T) {
	cs, err := ParseCoordSys("FK5 GEOCENTER SPHERICAL2")
	require.NoError(t, err)
	assert.Equal(t, CoordSys{Frame: FK5, RefPos: GEOCENTER, Flavor: SPHERICAL2}, cs)
}

func TestParseCoordSysCaseInsensitive(t *testing.T) {
	cs, err := ParseCoordSys("icrs geocenter")
	require.NoError(t, err)
	assert.Equal(t, ICRS, cs.Frame)
	assert.Equal(t, GEOCENTER, cs.RefPos)
}

func TestParseCoordSysCartesianRejectsNonDefaultFrame(t *testing.T) {
	_, err := ParseCoordSys("ICRS CARTESIAN2")
	require.Error(t, err)
	assert.True(t, ErrCartesianRequiresUnknownFrame.Is(err))
}

func TestParseCoordSysRejectsUnknownToken(t *testing.T) {
	_, err := ParseCoordSys("ICRS BOGUS")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestCompilePatternsAcceptsDefaultAlways(t *testing.T) {
	re, err := CompilePatterns([]string{"ICRS * SPHERICAL2"})
	require.NoError(t, err)
	assert.True(t, re.MatchString(Default.String()))
}

func TestCompilePatternsRestrictsFrame(t *testing.T) {
	re, err := CompilePatterns([]string{"(ICRS|FK5) * SPHERICAL2"})
	require.NoError(t, err)

	icrs := CoordSys{Frame: ICRS, RefPos: GEOCENTER, Flavor: SPHERICAL2}
	galactic := CoordSys{Frame: GALACTIC, RefPos: GEOCENTER, Flavor: SPHERICAL2}
	assert.True(t, re.MatchString(icrs.String()))
	assert.False(t, re.MatchString(galactic.String()))
}

func TestCompilePatternsEmptyListStillAcceptsDefault(t *testing.T) {
	re, err := CompilePatterns(nil)
	require.NoError(t, err)
	assert.True(t, re.MatchString(Default.String()))
}

func TestParseRegionPosition(t *testing.T) {
	r, err := ParseRegion("POSITION ICRS 10.5 -20.25")
	require.NoError(t, err)
	assert.Equal(t, Position, r.Kind)
	assert.Equal(t, ICRS, r.CoordSys.Frame)
	assert.Equal(t, []float64{10.5, -20.25}, r.Numbers)
}

func TestParseRegionCircleDefaultCoordSys(t *testing.T) {
	r, err := ParseRegion("CIRCLE 10 20 1.5")
	require.NoError(t, err)
	assert.Equal(t, Circle, r.Kind)
	assert.Equal(t, Default, r.CoordSys)
	assert.Equal(t, []float64{10, 20, 1.5}, r.Numbers)
}

func TestParseRegionBox(t *testing.T) {
	r, err := ParseRegion("BOX ICRS 10 20 2 2")
	require.NoError(t, err)
	assert.Equal(t, Box, r.Kind)
	assert.Len(t, r.Numbers, 4)
}

func TestParseRegionPolygonRequiresThreeVertices(t *testing.T) {
	_, err := ParseRegion("POLYGON ICRS 0 0 1 0")
	require.Error(t, err)
}

func TestParseRegionPolygonAcceptsThreeVertices(t *testing.T) {
	r, err := ParseRegion("POLYGON ICRS 0 0 1 0 1 1")
	require.NoError(t, err)
	assert.Equal(t, Polygon, r.Kind)
	assert.Len(t, r.Numbers, 6)
}

func TestParseRegionUnionRequiresAtLeastTwo(t *testing.T) {
	_, err := ParseRegion("UNION ICRS (CIRCLE ICRS 10 20 1)")
	require.Error(t, err)
}

func TestParseRegionUnionOfTwo(t *testing.T) {
	r, err := ParseRegion("UNION ICRS (CIRCLE ICRS 10 20 1 CIRCLE ICRS 30 40 2)")
	require.NoError(t, err)
	assert.Equal(t, Union, r.Kind)
	assert.Len(t, r.Inner, 2)
	assert.Equal(t, Circle, r.Inner[0].Kind)
}

func TestParseRegionIntersectionOfThree(t *testing.T) {
	r, err := ParseRegion("INTERSECTION ICRS (CIRCLE ICRS 1 1 1 CIRCLE ICRS 2 2 1 CIRCLE ICRS 3 3 1)")
	require.NoError(t, err)
	assert.Equal(t, Intersection, r.Kind)
	assert.Len(t, r.Inner, 3)
}

func TestParseRegionNot(t *testing.T) {
	r, err := ParseRegion("NOT (CIRCLE ICRS 10 20 1)")
	require.NoError(t, err)
	assert.Equal(t, Not, r.Kind)
	assert.Len(t, r.Inner, 1)
	assert.Equal(t, Circle, r.Inner[0].Kind)
}

func TestParseRegionRejectsUnknownKeyword(t *testing.T) {
	_, err := ParseRegion("TRIANGLE ICRS 1 2 3")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParseRegionRejectsTrailingInput(t *testing.T) {
	_, err := ParseRegion("CIRCLE ICRS 10 20 1 extra")
	require.Error(t, err)
}

func TestParseRegionRejectsCartesianWithFrame(t *testing.T) {
	_, err := ParseRegion("POSITION ICRS CARTESIAN2 10 20")
	require.Error(t, err)
	assert.True(t, ErrCartesianRequiresUnknownFrame.Is(err))
}

func TestRegionRoundTrip(t *testing.T) {
	inputs := []string{
		"POSITION ICRS 10.5 -20.25",
		"CIRCLE UNKNOWNFRAME UNKNOWNREFPOS SPHERICAL2 10 20 1.5",
		"BOX ICRS 10 20 2 2",
		"POLYGON ICRS 0 0 1 0 1 1",
		"UNION ICRS (CIRCLE ICRS 10 20 1 CIRCLE ICRS 30 40 2)",
		"NOT (CIRCLE ICRS 10 20 1)",
	}
	for _, in := range inputs {
		r, err := ParseRegion(in)
		require.NoError(t, err, in)

		r2, err := ParseRegion(r.String())
		require.NoError(t, err, r.String())
		assert.Equal(t, r, r2, "round trip mismatch for %q", in)
	}
}

// A coordinate system can be syntactically valid yet outside the host's
// allowed set.
func TestScenarioDisallowedCoordSys(t *testing.T) {
	re, err := CompilePatterns([]string{"ICRS * SPHERICAL2"})
	require.NoError(t, err)

	r, err := ParseRegion("CIRCLE GALACTIC 10 20 1")
	require.NoError(t, err)

	assert.False(t, re.MatchString(r.CoordSys.String()))
}

// STC-S text with a frame token outside the grammar's recognized keyword
// set fails to parse with a syntax error rather than silently defaulting.
func TestScenarioUnrecognizedFrameIsSyntaxError(t *testing.T) {
	_, err := ParseRegion("CIRCLE MARSIAN 10 20 1")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}
