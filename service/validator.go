package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"lawwatch-backend/models"
)

// TaxonomySnapshot is the point-in-time set of valid topic tags. It is
// fetched once per run and shared read-only across every record validated
// in that run.
type TaxonomySnapshot struct {
	topics  []string
	members map[string]struct{}
}

// NewTaxonomySnapshot builds a snapshot from an ordered topic list.
func NewTaxonomySnapshot(topics []string) *TaxonomySnapshot {
	s := &TaxonomySnapshot{
		topics:  make([]string, len(topics)),
		members: make(map[string]struct{}, len(topics)),
	}
	copy(s.topics, topics)
	for _, t := range topics {
		s.members[t] = struct{}{}
	}
	return s
}

// Contains reports whether topic is an exact member of the snapshot.
// Matching is case-sensitive.
func (s *TaxonomySnapshot) Contains(topic string) bool {
	_, ok := s.members[topic]
	return ok
}

// Topics returns the snapshot's topics in their original order.
func (s *TaxonomySnapshot) Topics() []string {
	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}

// PenaltyPrecisionError reports a penalty with more than two digits after
// the decimal point.
type PenaltyPrecisionError struct {
	Literal string
}

func (e *PenaltyPrecisionError) Error() string {
	return fmt.Sprintf("penalty %s has more than two decimal places", e.Literal)
}

// UnknownTopicError reports a topic tag that is not in the current
// taxonomy snapshot.
type UnknownTopicError struct {
	Topic string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic: %q", e.Topic)
}

// ErrMissingSummary is returned when a decoded reply has no summary field.
var ErrMissingSummary = fmt.Errorf("reply is missing required summary field")

// Validator applies the field-level contracts to a raw decoded reply,
// producing a validated LegalAnalysis or a record-fatal error. Validation
// failures are never retried against the provider; the caller logs, skips
// the record, and moves on.
type Validator struct {
	taxonomy *TaxonomySnapshot
}

// NewValidator creates a validator bound to one taxonomy snapshot.
func NewValidator(taxonomy *TaxonomySnapshot) *Validator {
	return &Validator{taxonomy: taxonomy}
}

// Validate checks a raw decoded reply and returns the validated record.
// An empty citation or topic list normalizes to absent. Any single bad
// citation or topic fails the whole record; partial lists are never kept.
func (v *Validator) Validate(raw *models.RawAnalysis) (*models.LegalAnalysis, error) {
	if raw.Summary == nil || *raw.Summary == "" {
		return nil, ErrMissingSummary
	}

	analysis := &models.LegalAnalysis{Summary: *raw.Summary}

	if len(raw.Citations) > 0 {
		citations := make([]models.Citation, 0, len(raw.Citations))
		for _, rc := range raw.Citations {
			citation, err := models.NewCitation(rc.Kind, rc.Text)
			if err != nil {
				return nil, err
			}
			citations = append(citations, citation)
		}
		analysis.Citations = citations
	}

	penalty, err := validatePenalty(raw.Penalty)
	if err != nil {
		return nil, err
	}
	analysis.Penalty = penalty

	if len(raw.Topics) > 0 {
		for _, topic := range raw.Topics {
			if !v.taxonomy.Contains(topic) {
				return nil, &UnknownTopicError{Topic: topic}
			}
		}
		analysis.Topics = raw.Topics
	}

	return analysis, nil
}

// validatePenalty checks the penalty literal the provider actually sent.
// Precision is judged on that decimal literal (exponent forms are first
// re-rendered in plain decimal notation), so float round-tripping cannot
// manufacture extra fractional digits.
func validatePenalty(raw json.RawMessage) (*float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return nil, fmt.Errorf("penalty must be a number, got %s", raw)
	}

	value, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("penalty must be a number, got %s", num)
	}

	literal := num.String()
	if strings.ContainsAny(literal, "eE") {
		literal = strconv.FormatFloat(value, 'f', -1, 64)
	}
	if dot := strings.IndexByte(literal, '.'); dot >= 0 && len(literal)-dot-1 > 2 {
		return nil, &PenaltyPrecisionError{Literal: literal}
	}

	return &value, nil
}
