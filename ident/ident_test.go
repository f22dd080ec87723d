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

package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adql-go/semcheck/ident"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		wantText      string
		wantSensitive bool
		wantErr       bool
	}{
		{name: "plain", input: "Ra", wantText: "Ra", wantSensitive: false},
		{name: "surrounding whitespace", input: "  ra  ", wantText: "ra", wantSensitive: false},
		{name: "delimited", input: `"Ra"`, wantText: "Ra", wantSensitive: true},
		{name: "delimited escape", input: `"a""b"`, wantText: `a"b`, wantSensitive: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "delimited whitespace only", input: `"   "`, wantErr: true},
		{name: "empty delimited", input: `""`, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ident.Normalize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, ident.ErrEmptyIdentifier.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, id.Text())
			assert.Equal(t, tt.wantSensitive, id.CaseSensitive())
		})
	}
}

func TestEquals(t *testing.T) {
	ra := ident.MustNormalize("ra")
	raUpper := ident.MustNormalize("RA")
	raQuoted := ident.MustNormalize(`"ra"`)
	raQuotedUpper := ident.MustNormalize(`"RA"`)

	assert.True(t, ident.Equals(ra, raUpper), "case-insensitive vs case-insensitive folds")
	assert.True(t, ident.Equals(ra, raQuoted), "one side case-insensitive folds")
	assert.True(t, ident.Equals(raQuoted, ra), "fold is symmetric")
	assert.True(t, ident.Equals(raQuoted, raQuoted), "exact match for two delimited identifiers")
	assert.False(t, ident.Equals(raQuoted, raQuotedUpper), "both delimited requires exact match")
}

func TestDenormalizeRoundTrip(t *testing.T) {
	inputs := []string{"ra", "RA", `"Ra"`, `"a""b"`}
	for _, in := range inputs {
		id, err := ident.Normalize(in)
		require.NoError(t, err)

		rt, err := ident.Normalize(ident.Denormalize(id))
		require.NoError(t, err)

		assert.True(t, ident.Equals(id, rt) && id.CaseSensitive() == rt.CaseSensitive())
	}
}

func TestSplitQualified(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    ident.QualifiedName
		wantErr bool
	}{
		{name: "bare table", input: "t1", want: ident.QualifiedName{Table: "t1"}},
		{name: "schema.table", input: "public.t1", want: ident.QualifiedName{Schema: "public", Table: "t1"}},
		{name: "cat.schema.table", input: "cat.public.t1", want: ident.QualifiedName{Catalog: "cat", Schema: "public", Table: "t1"}},
		{name: "excess prefix joined as catalog", input: "a.b.c.t1", want: ident.QualifiedName{Catalog: "a.b", Schema: "c", Table: "t1"}},
		{name: "empty table segment", input: "public.", wantErr: true},
		{name: "dot inside quotes preserved", input: `public."a.b"`, want: ident.QualifiedName{Schema: "public", Table: `"a.b"`}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ident.SplitQualified(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
