package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCitation(t *testing.T) {
	tests := []struct {
		name     string
		kind     CitationKind
		input    string
		expected string
	}{
		{
			name:     "statute already canonical",
			kind:     KindStatute,
			input:    "42 U.S.C. § 7401",
			expected: "42 U.S.C. § 7401",
		},
		{
			name:     "statute double section symbol collapses",
			kind:     KindStatute,
			input:    "5 U.S.C. §§ 552",
			expected: "5 U.S.C. § 552",
		},
		{
			name:     "statute without periods or symbol",
			kind:     KindStatute,
			input:    "5 USC 552",
			expected: "5 USC 552",
		},
		{
			name:     "statute part designation dropped and rewritten",
			kind:     KindStatute,
			input:    "42 U.S.C. Parts 7401",
			expected: "42 U.S.C. 7401",
		},
		{
			name:     "rule part designation dropped and rewritten",
			kind:     KindRule,
			input:    "40 C.F.R. Part 1039",
			expected: "40 C.F.R. 1039",
		},
		{
			name:     "rule double symbol with parts",
			kind:     KindRule,
			input:    "18 C.F.R. §§ Parts 145",
			expected: "18 C.F.R. 145",
		},
		{
			name:     "rule with subsection",
			kind:     KindRule,
			input:    "40 C.F.R. § 263.21(a)",
			expected: "40 C.F.R. § 263.21(a)",
		},
		{
			name:     "rule en dash range normalizes to hyphen",
			kind:     KindRule,
			input:    "40 C.F.R. § 1065.1 – 1065.12",
			expected: "40 C.F.R. § 1065.1-1065.12",
		},
		{
			name:     "statute lowercase keyword",
			kind:     KindStatute,
			input:    "42 u.s.c. § 7521",
			expected: "42 u.s.c. § 7521",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCitation(tt.kind, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeCitationIdempotent(t *testing.T) {
	inputs := []struct {
		kind CitationKind
		raw  string
	}{
		{KindStatute, "5 U.S.C. §§ 552"},
		{KindRule, "40 C.F.R. Part 1039"},
		{KindRule, "18 C.F.R. §§ Parts 145"},
		{KindStatute, "42 U.S.C. § 7522(a)(1)"},
	}

	for _, in := range inputs {
		first, err := NormalizeCitation(in.kind, in.raw)
		require.NoError(t, err)
		second, err := NormalizeCitation(in.kind, first)
		require.NoError(t, err)
		assert.Equal(t, first, second, "normalizing %q twice changed the result", in.raw)
	}
}

func TestNormalizeCitationSubsectionRangePassesThroughVerbatim(t *testing.T) {
	// Subsection ranges fall within the primary rule grammar, so they are
	// returned unchanged rather than rewritten by the permissive pattern.
	got, err := NormalizeCitation(KindRule, "40 C.F.R. § 1068.101(a)-(c)")
	require.NoError(t, err)
	assert.Equal(t, "40 C.F.R. § 1068.101(a)-(c)", got)
}

func TestNormalizeCitationRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		kind  CitationKind
		input string
	}{
		{"law name instead of citation", KindStatute, "Clean Air Act"},
		{"missing title number", KindStatute, "U.S.C. § 7401"},
		{"rule title too long", KindRule, "401 C.F.R. § 10"},
		{"empty string", KindRule, ""},
		{"wrong code for kind", KindStatute, "40 X.Y.Z. § 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCitation(tt.kind, tt.input)
			require.Error(t, err)

			var formatErr *CitationFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.kind, formatErr.Kind)
			assert.Equal(t, tt.input, formatErr.Raw)
		})
	}
}

func TestNewCitation(t *testing.T) {
	c, err := NewCitation(KindRule, "40 C.F.R. §§ Part 1039")
	require.NoError(t, err)
	assert.Equal(t, Citation{Kind: KindRule, Text: "40 C.F.R. 1039"}, c)

	_, err = NewCitation(KindRule, "Clean Water Act")
	assert.Error(t, err)
}
