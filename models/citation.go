package models

import (
	"fmt"
	"regexp"
	"strings"
)

// CitationKind distinguishes U.S. Code citations from C.F.R. citations
type CitationKind string

const (
	KindStatute CitationKind = "Statute" // United States Code (U.S.C.)
	KindRule    CitationKind = "Rule"    // Code of Federal Regulations (C.F.R.)
)

// Citation represents a single federal law citation in canonical form.
// Build one with NewCitation; a Citation is never constructed from raw,
// unnormalized text.
type Citation struct {
	Kind CitationKind `json:"type"`
	Text string       `json:"citation"`
}

// CitationFormatError reports a citation string that matches neither the
// statute nor the rule grammar after normalization.
type CitationFormatError struct {
	Kind CitationKind
	Raw  string
}

func (e *CitationFormatError) Error() string {
	return fmt.Sprintf("invalid %s citation format: %q", strings.ToLower(string(e.Kind)), e.Raw)
}

var (
	uscPartPattern = regexp.MustCompile(`(?i)^(\d{1,3})\sU\.?S\.?C\.?\s?§?\s?Parts?\s+([\d\w\.\(\)\-]+)$`)
	uscPattern     = regexp.MustCompile(`(?i)^(\d{1,3})\sU\.?S\.?C\.?\s?§?\s?([\d\w\.\(\)\-]+)$`)
	cfrPartPattern = regexp.MustCompile(`(?i)^(\d{1,2})\sC\.?F\.?R\.?\s?§?\s?Parts?\s+([\d\w\.\(\)\-]+)$`)
	cfrPattern     = regexp.MustCompile(`(?i)^(\d{1,2})\sC\.?F\.?R\.?\s?§?\s?([\d\w\.\(\)\-]+)$`)

	// More permissive CFR shape allowing a trailing parenthetical
	// subsection and a dash-joined subsection range, e.g. "(a)-(c)".
	// cfrPattern's section-id class subsumes everything this accepts, so
	// in practice such citations pass through cfrPattern verbatim and the
	// rewrite below never fires. Kept as the documented fallback; do not
	// reorder it ahead of cfrPattern.
	cfrComplexPattern = regexp.MustCompile(`^(\d{1,2})\sC\.?F\.?R\.?\s?§?\s?([\d\w\.\(\)\-]+(?:\([a-z]\))?(?:-\([a-z]\))?)$`)

	hyphenSpacing = regexp.MustCompile(`\s*-\s*`)
)

// NewCitation normalizes raw citation text for the given kind and returns
// the canonical Citation, or a CitationFormatError if the text matches
// neither grammar.
func NewCitation(kind CitationKind, raw string) (Citation, error) {
	text, err := NormalizeCitation(kind, raw)
	if err != nil {
		return Citation{}, err
	}
	return Citation{Kind: kind, Text: text}, nil
}

// NormalizeCitation validates and canonicalizes a federal law citation.
//
// Normalization applied before grammar matching:
//  1. doubled section symbols collapse to one ("§§" -> "§")
//  2. en and em dashes become plain hyphens
//  3. whitespace around hyphens is removed
//
// Statutes must match "N U.S.C. [§] section" with 1-3 leading digits;
// rules must match "N C.F.R. [§] section" with 1-2 leading digits.
// Periods in "U.S.C."/"C.F.R." are optional and keyword matching is
// case-insensitive. A "Part"/"Parts" designation is accepted and dropped,
// rewriting the citation to "N U.S.C. section" / "N C.F.R. section".
// Anything else fails with CitationFormatError; callers must not coerce
// or silently drop a failing citation.
func NormalizeCitation(kind CitationKind, raw string) (string, error) {
	value := strings.ReplaceAll(raw, "§§", "§")
	value = strings.ReplaceAll(value, "–", "-")
	value = strings.ReplaceAll(value, "—", "-")
	value = hyphenSpacing.ReplaceAllString(value, "-")

	switch kind {
	case KindStatute:
		if m := uscPartPattern.FindStringSubmatch(value); m != nil {
			return fmt.Sprintf("%s U.S.C. %s", m[1], m[2]), nil
		}
		if uscPattern.MatchString(value) {
			return value, nil
		}

	case KindRule:
		if m := cfrPartPattern.FindStringSubmatch(value); m != nil {
			return fmt.Sprintf("%s C.F.R. %s", m[1], m[2]), nil
		}
		if cfrPattern.MatchString(value) {
			return value, nil
		}
		if m := cfrComplexPattern.FindStringSubmatch(value); m != nil {
			return fmt.Sprintf("%s C.F.R. %s", m[1], m[2]), nil
		}
	}

	return "", &CitationFormatError{Kind: kind, Raw: raw}
}
