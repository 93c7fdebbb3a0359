package service

import (
	"testing"

	"lawwatch-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateCitations(t *testing.T) {
	citations := []models.Citation{
		{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"},
		{Kind: models.KindRule, Text: "40 C.F.R. § 1068.101"},
		{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"},
	}

	deduplicated := DeduplicateCitations(citations)
	assert.Equal(t, []models.Citation{
		{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"},
		{Kind: models.KindRule, Text: "40 C.F.R. § 1068.101"},
	}, deduplicated)

	// The input list is derived from, never altered.
	assert.Len(t, citations, 3)
	assert.Equal(t, models.Citation{Kind: models.KindStatute, Text: "42 U.S.C. § 7401"}, citations[2])
}

func TestDeduplicateCitationsKindMatters(t *testing.T) {
	// Same text under different kinds stays distinct.
	citations := []models.Citation{
		{Kind: models.KindStatute, Text: "40 U.S.C. § 1"},
		{Kind: models.KindRule, Text: "40 U.S.C. § 1"},
	}
	assert.Len(t, DeduplicateCitations(citations), 2)
}

func TestDeduplicateCitationsEmpty(t *testing.T) {
	assert.Nil(t, DeduplicateCitations(nil))
	assert.Nil(t, DeduplicateCitations([]models.Citation{}))
}

func TestFlattenCitations(t *testing.T) {
	citations := []models.Citation{
		{Kind: models.KindRule, Text: "40 C.F.R. § 1"},
		{Kind: models.KindStatute, Text: "5 U.S.C. § 2"},
	}

	flattened := FlattenCitations(citations)
	assert.Equal(t, "Rule - 40 C.F.R. § 1,Statute - 5 U.S.C. § 2", flattened)
}

func TestFlattenCitationsSorted(t *testing.T) {
	citations := []models.Citation{
		{Kind: models.KindStatute, Text: "5 U.S.C. § 2"},
		{Kind: models.KindRule, Text: "40 C.F.R. § 1"},
	}

	// Alphabetical regardless of input order.
	assert.Equal(t, "Rule - 40 C.F.R. § 1,Statute - 5 U.S.C. § 2", FlattenCitations(citations))
}

func TestFlattenCitationsEmpty(t *testing.T) {
	assert.Equal(t, "", FlattenCitations(nil))
}
