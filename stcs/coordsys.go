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

// Package stcs implements the STC-S mini-parser: coordinate systems and
// geometric regions embedded as string literals inside ADQL geometry
// function calls.
package stcs

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// Frame is a coordinate reference frame.
type Frame string

const (
	ECLIPTIC     Frame = "ECLIPTIC"
	FK4          Frame = "FK4"
	FK5          Frame = "FK5"
	GALACTIC     Frame = "GALACTIC"
	ICRS         Frame = "ICRS"
	UNKNOWNFRAME Frame = "UNKNOWNFRAME"
)

var frames = []Frame{ECLIPTIC, FK4, FK5, GALACTIC, ICRS, UNKNOWNFRAME}

// RefPos is a reference position.
type RefPos string

const (
	BARYCENTER     RefPos = "BARYCENTER"
	GEOCENTER      RefPos = "GEOCENTER"
	HELIOCENTER    RefPos = "HELIOCENTER"
	LSR            RefPos = "LSR"
	TOPOCENTER     RefPos = "TOPOCENTER"
	RELOCATABLE    RefPos = "RELOCATABLE"
	UNKNOWNREFPOS  RefPos = "UNKNOWNREFPOS"
)

var refPositions = []RefPos{BARYCENTER, GEOCENTER, HELIOCENTER, LSR, TOPOCENTER, RELOCATABLE, UNKNOWNREFPOS}

// Flavor is a coordinate representation flavor.
type Flavor string

const (
	CARTESIAN2 Flavor = "CARTESIAN2"
	CARTESIAN3 Flavor = "CARTESIAN3"
	SPHERICAL2 Flavor = "SPHERICAL2"
)

var flavors = []Flavor{CARTESIAN2, CARTESIAN3, SPHERICAL2}

// CoordSys is a fully-resolved coordinate system: frame, reference
// position, and flavor, each defaulted when absent from the input.
type CoordSys struct {
	Frame  Frame
	RefPos RefPos
	Flavor Flavor
}

// Default is the coordinate system every part elides to: UNKNOWNFRAME,
// UNKNOWNREFPOS, SPHERICAL2.
var Default = CoordSys{Frame: UNKNOWNFRAME, RefPos: UNKNOWNREFPOS, Flavor: SPHERICAL2}

// ErrCartesianRequiresUnknownFrame is raised when a Cartesian flavor is
// combined with a non-default frame or reference position.
var ErrCartesianRequiresUnknownFrame = errors.NewKind("Cartesian flavor %s requires UNKNOWNFRAME and UNKNOWNREFPOS, got %s %s")

// ParseCoordSys parses the "frame? refpos? flavor?" grammar: each part is
// optional, parsing is positional and greedy (attempt frame, then refpos,
// then flavor, each consuming a token only if it matches that part's
// keyword set), and a Cartesian flavor requires both frame and refpos to be
// left at their default.
func ParseCoordSys(text string) (CoordSys, error) {
	tokens := strings.Fields(text)

	cs := Default
	i := 0

	if i < len(tokens) {
		if f, ok := matchFrame(tokens[i]); ok {
			cs.Frame = f
			i++
		}
	}
	if i < len(tokens) {
		if rp, ok := matchRefPos(tokens[i]); ok {
			cs.RefPos = rp
			i++
		}
	}
	if i < len(tokens) {
		if fl, ok := matchFlavor(tokens[i]); ok {
			cs.Flavor = fl
			i++
		}
	}

	if i != len(tokens) {
		offset := 0
		for _, tok := range tokens[:i] {
			offset += strings.Index(text[offset:], tok) + len(tok)
		}
		offset += strings.Index(text[offset:], tokens[i])
		return CoordSys{}, newSyntaxError(offset, tokens[i], "unrecognized coordinate system token")
	}

	if (cs.Flavor == CARTESIAN2 || cs.Flavor == CARTESIAN3) && (cs.Frame != UNKNOWNFRAME || cs.RefPos != UNKNOWNREFPOS) {
		return CoordSys{}, ErrCartesianRequiresUnknownFrame.New(cs.Flavor, cs.Frame, cs.RefPos)
	}

	return cs, nil
}

func matchFrame(tok string) (Frame, bool) {
	upper := strings.ToUpper(tok)
	for _, f := range frames {
		if string(f) == upper {
			return f, true
		}
	}
	return "", false
}

func matchRefPos(tok string) (RefPos, bool) {
	upper := strings.ToUpper(tok)
	for _, rp := range refPositions {
		if string(rp) == upper {
			return rp, true
		}
	}
	return "", false
}

func matchFlavor(tok string) (Flavor, bool) {
	upper := strings.ToUpper(tok)
	for _, fl := range flavors {
		if string(fl) == upper {
			return fl, true
		}
	}
	return "", false
}

// String renders cs as its canonical three-token form, used both for
// diagnostics and as the text matched against a compiled allowed-pattern
// regex.
func (cs CoordSys) String() string {
	return string(cs.Frame) + " " + string(cs.RefPos) + " " + string(cs.Flavor)
}
