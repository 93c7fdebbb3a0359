package service

import "strings"

// Some providers emit structured replies where a single free-text field
// (the HTML summary) contains unescaped quotation marks, which breaks JSON
// decoding. RepairReply performs a bounded, best-effort fix for exactly
// that failure mode: it escapes every quote inside the one field's value,
// using the next known field key (or the closing brace) to bound where the
// value ends. It is not a general JSON repairer and fails closed whenever
// its positional assumptions do not hold.

// StripCodeFence removes a surrounding markdown code fence, including an
// optional language tag after the opening fence. Text without a fence is
// returned unchanged apart from trimming.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	start := 3
	rest := trimmed[start:]
	if tag := strings.TrimSpace(rest); strings.HasPrefix(tag, "json") {
		if idx := strings.Index(rest, "json"); idx >= 0 {
			start += idx + len("json")
		}
	}

	end := strings.Index(trimmed[start:], "```")
	if end < 0 {
		return strings.TrimSpace(trimmed[start:])
	}
	return strings.TrimSpace(trimmed[start : start+end])
}

// RepairQuotedField escapes unescaped quotes inside the named field's
// string value. boundaries are the tokens that can legitimately follow the
// value; the earliest occurrence after the value start bounds the search
// for the true closing quote. Returns the repaired text and whether the
// positional assumptions held.
func RepairQuotedField(raw, field string, boundaries []string) (string, bool) {
	keyToken := `"` + field + `":`
	keyPos := strings.Index(raw, keyToken)
	if keyPos < 0 {
		return "", false
	}

	colon := strings.Index(raw[keyPos:], ":")
	if colon < 0 {
		return "", false
	}
	openQuote := strings.Index(raw[keyPos+colon+1:], `"`)
	if openQuote < 0 {
		return "", false
	}
	valueStart := keyPos + colon + 1 + openQuote + 1

	// Earliest following field key or closing delimiter bounds the value.
	boundaryPos := -1
	for _, token := range boundaries {
		pos := strings.Index(raw[valueStart:], token)
		if pos < 0 {
			continue
		}
		pos += valueStart
		if boundaryPos == -1 || pos < boundaryPos {
			boundaryPos = pos
		}
	}
	if boundaryPos <= valueStart {
		return "", false
	}

	// The last quote before the boundary is the true closing delimiter;
	// everything before it is literal field content.
	closingQuote := strings.LastIndex(raw[valueStart:boundaryPos], `"`)
	if closingQuote < 0 {
		return "", false
	}
	closingQuote += valueStart

	content := raw[valueStart:closingQuote]
	escaped := strings.ReplaceAll(content, `"`, `\"`)

	return raw[:valueStart] + escaped + raw[closingQuote:], true
}

// analysisBoundaryTokens are the field keys that can follow the summary
// value in an analysis reply, plus the object's closing brace.
var analysisBoundaryTokens = []string{
	`"penalty":`,
	`"topics":`,
	`"citation":`,
	`"citations":`,
	`}`,
}

// RepairAnalysisReply applies RepairQuotedField to the summary field of an
// analysis reply.
func RepairAnalysisReply(raw string) (string, bool) {
	return RepairQuotedField(raw, "summary", analysisBoundaryTokens)
}
