package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportTimeFormat is the timestamp layout written into exported documents.
const ExportTimeFormat = "Mon, 02 Jan 2006 15:04:05"

// LawSet wraps the structured citation list in exported documents.
type LawSet struct {
	FederalLaw []Citation `json:"federal_law"`
}

// CaseDocument is one EPA enforcement case as exported: scraped fields plus
// the validated analysis results attached by the pipeline.
type CaseDocument struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	SourceURL string    `json:"source_url"`
	PDFLinks  string    `json:"pdf_links"`
	RawText   string    `json:"raw_text"`

	Summary            string   `json:"summary,omitempty"`
	Penalty            *float64 `json:"penalty,omitempty"`
	Topics             []string `json:"environmental_issues,omitempty"`
	Laws               *LawSet  `json:"laws,omitempty"`
	FlattenedCitations string   `json:"flattened_federal_laws"`

	AITags []string `json:"ai_tags,omitempty"`
	LLM    string   `json:"llm,omitempty"`
	Time   string   `json:"time,omitempty"`
}

// RuleDocument is one Federal Register rule document as exported, combining
// the FR API metadata with the generated audience summaries.
type RuleDocument struct {
	Title           string `json:"title"`
	Type            string `json:"type"`
	Abstract        string `json:"abstract"`
	Citation        string `json:"citation"`
	PublicationDate string `json:"publication_date"`
	EffectiveOn     string `json:"effective_on,omitempty"`
	DocumentNumber  string `json:"document_number"`
	PDFURL          string `json:"pdf_url,omitempty"`
	BodyHTMLURL     string `json:"body_html_url,omitempty"`
	AgencyNames     string `json:"agency_names"`
	ArticleText     string `json:"article_text,omitempty"`

	HighSchoolSummary string `json:"high_school_summary,omitempty"`
	LobbyistSummary   string `json:"lobbyist_summary,omitempty"`
	ActivistSummary   string `json:"activist_summary,omitempty"`

	AITags string `json:"ai_tags,omitempty"`
	LLM    string `json:"llm,omitempty"`
	Time   string `json:"time,omitempty"`
}

// OverviewDocument is the news-style review article written across one
// Federal Register batch.
type OverviewDocument struct {
	Title   string `json:"title"`
	AITags  string `json:"ai_tags"`
	Summary string `json:"summary"`
}

// ExportTimestamp renders t in the exported document timestamp layout.
func ExportTimestamp(t time.Time) string {
	return t.Format(ExportTimeFormat)
}
