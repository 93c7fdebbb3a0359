package models

import "encoding/json"

// LegalAnalysis is the validated output of one completion cycle: the
// structured facts extracted from a single enforcement document. It is not
// mutated after validation.
type LegalAnalysis struct {
	Citations []Citation `json:"citations,omitempty"`
	Summary   string     `json:"summary"`
	Penalty   *float64   `json:"penalty,omitempty"`
	Topics    []string   `json:"topics,omitempty"`
}

// RawAnalysis is the strict decode target for a provider reply, before
// validation. Citations and penalty are kept raw so the validator owns the
// grammar and precision checks; the penalty literal is preserved as sent.
type RawAnalysis struct {
	Citations []RawCitation   `json:"citations"`
	Summary   *string         `json:"summary"`
	Penalty   json.RawMessage `json:"penalty,omitempty"`
	Topics    []string        `json:"topics"`
}

// RawCitation is an unvalidated citation entry as decoded from a reply.
type RawCitation struct {
	Kind CitationKind `json:"type"`
	Text string       `json:"citation"`
}

// AudienceSummaries holds the three Federal Register summary styles
// generated per rule document.
type AudienceSummaries struct {
	HighSchoolSummary string `json:"high_school_summary"`
	LobbyistSummary   string `json:"lobbyist_summary"`
	ActivistSummary   string `json:"activist_summary"`
}
