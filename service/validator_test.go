package service

import (
	"encoding/json"
	"errors"
	"testing"

	"lawwatch-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testValidator() *Validator {
	return NewValidator(NewTaxonomySnapshot([]string{"Boats", "Sewage"}))
}

func TestValidateAcceptsFullRecord(t *testing.T) {
	raw := &models.RawAnalysis{
		Citations: []models.RawCitation{
			{Kind: models.KindStatute, Text: "42 U.S.C. §§ 7401"},
			{Kind: models.KindRule, Text: "40 C.F.R. Part 1039"},
		},
		Summary: strPtr("<p>Emissions case.</p>"),
		Penalty: json.RawMessage("47500"),
		Topics:  []string{"Boats"},
	}

	analysis, err := testValidator().Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, "<p>Emissions case.</p>", analysis.Summary)
	assert.Equal(t, []models.Citation{
		{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"},
		{Kind: models.KindRule, Text: "40 C.F.R. 1039"},
	}, analysis.Citations)
	require.NotNil(t, analysis.Penalty)
	assert.Equal(t, 47500.0, *analysis.Penalty)
	assert.Equal(t, []string{"Boats"}, analysis.Topics)
}

func TestValidateMissingSummary(t *testing.T) {
	_, err := testValidator().Validate(&models.RawAnalysis{})
	assert.ErrorIs(t, err, ErrMissingSummary)

	_, err = testValidator().Validate(&models.RawAnalysis{Summary: strPtr("")})
	assert.ErrorIs(t, err, ErrMissingSummary)
}

func TestValidatePenalty(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    float64
		wantErr bool
	}{
		{name: "integer", literal: "47500", want: 47500},
		{name: "one decimal place", literal: "47500.5", want: 47500.5},
		{name: "two decimal places", literal: "47500.55", want: 47500.55},
		{name: "zero", literal: "0", want: 0},
		{name: "three decimal places", literal: "47500.555", wantErr: true},
		{name: "exponent form within precision", literal: "4.75e4", want: 47500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &models.RawAnalysis{
				Summary: strPtr("<p>ok</p>"),
				Penalty: json.RawMessage(tt.literal),
			}
			analysis, err := testValidator().Validate(raw)
			if tt.wantErr {
				var precErr *PenaltyPrecisionError
				require.True(t, errors.As(err, &precErr))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, analysis.Penalty)
			assert.Equal(t, tt.want, *analysis.Penalty)
		})
	}
}

func TestValidatePenaltyAbsent(t *testing.T) {
	for _, literal := range []string{"", "null"} {
		raw := &models.RawAnalysis{Summary: strPtr("<p>ok</p>")}
		if literal != "" {
			raw.Penalty = json.RawMessage(literal)
		}
		analysis, err := testValidator().Validate(raw)
		require.NoError(t, err)
		assert.Nil(t, analysis.Penalty)
	}
}

func TestValidatePenaltyNonNumeric(t *testing.T) {
	raw := &models.RawAnalysis{
		Summary: strPtr("<p>ok</p>"),
		Penalty: json.RawMessage(`"$47,500"`),
	}
	_, err := testValidator().Validate(raw)
	require.Error(t, err)

	var precErr *PenaltyPrecisionError
	assert.False(t, errors.As(err, &precErr), "non-numeric penalty is not a precision error")
}

func TestValidateTopicsAgainstSnapshot(t *testing.T) {
	raw := &models.RawAnalysis{
		Summary: strPtr("<p>ok</p>"),
		Topics:  []string{"Boats", "Oil and Gas"},
	}
	_, err := testValidator().Validate(raw)

	var topicErr *UnknownTopicError
	require.True(t, errors.As(err, &topicErr))
	assert.Equal(t, "Oil and Gas", topicErr.Topic)
}

func TestValidateEmptyListsNormalizeToAbsent(t *testing.T) {
	raw := &models.RawAnalysis{
		Citations: []models.RawCitation{},
		Summary:   strPtr("<p>ok</p>"),
		Topics:    []string{},
	}
	analysis, err := testValidator().Validate(raw)
	require.NoError(t, err)
	assert.Nil(t, analysis.Citations)
	assert.Nil(t, analysis.Topics)
}

func TestValidateBadCitationFailsWholeRecord(t *testing.T) {
	raw := &models.RawAnalysis{
		Citations: []models.RawCitation{
			{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"},
			{Kind: models.KindStatute, Text: "Clean Air Act"},
		},
		Summary: strPtr("<p>ok</p>"),
	}
	_, err := testValidator().Validate(raw)

	var formatErr *models.CitationFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "Clean Air Act", formatErr.Raw)
}

func TestTaxonomySnapshotIsCaseSensitive(t *testing.T) {
	snapshot := NewTaxonomySnapshot([]string{"Boats"})
	assert.True(t, snapshot.Contains("Boats"))
	assert.False(t, snapshot.Contains("boats"))
}
