package service

import (
	"fmt"
	"strings"
)

// Paragraph counts for the generated summary step up with the length of
// the text under analysis.
var (
	textLengthThresholds = []int{6000, 12000, 20000}
	paragraphCounts      = []int{2, 3, 4, 5}
)

// ParagraphCount returns the number of summary paragraphs to request for a
// text of the given length. Texts past the last threshold use the largest
// count.
func ParagraphCount(textLength int) int {
	for i, threshold := range textLengthThresholds {
		if textLength <= threshold {
			return paragraphCounts[i]
		}
	}
	return paragraphCounts[len(paragraphCounts)-1]
}

// AnalysisInstructions builds the system message for enforcement-case
// analysis. The valid topic list comes from the current taxonomy snapshot
// so the provider only ever sees tags the validator will accept.
func AnalysisInstructions(numParagraphs int, topics []string) string {
	bullets := make([]string, 0, len(topics))
	for _, topic := range topics {
		bullets = append(bullets, "       - "+topic)
	}

	return fmt.Sprintf(`You are a highly specialized legal assistant. You have 4 tasks:

1. Produce a detailed summary of the text
2. Extract an accurate penalty, if any
3. Extract *specific* citations of federal statutes and rules from legal text
4. Classify the document into appropriate environmental issue categories

Your response MUST be a single valid JSON object with this shape:

{
  "citations": [{"type": "Statute" or "Rule", "citation": "exact citation string"}, ...] or null,
  "summary": "HTML summary string",
  "penalty": number or null,
  "topics": ["issue", ...] or null
}

EXTREMELY IMPORTANT INSTRUCTIONS:

1. The summary field should be exactly %d paragraphs long, providing a
detailed legal analysis of the case. Focus on the most important
information and avoid unnecessary detail. Format the summary in HTML using
<p> tags. Do not include newlines; output the HTML as a single, long
one-line string. Use only inner HTML tags; do not include <html>, <head>,
or <body> tags. HTML bold any legal citations you find, such as
40 C.F.R. § 263.21(a), as well as proper names of people and companies,
and penalty information.

2. Penalty - Identify the total fine or penalty amount, if any. It must be
explicitly stated in the document. If no such order is explicitly made you
should not guess or infer a result and should output a 0 (zero). Sometimes
multiple matters are involved and there is a total penalty; if so use this
larger total. Report the dollar total as a number. If a number is reported
as, say, $3 million, convert the million to a number, e.g. 3,000,000.

3. Extract ONLY Specific Citations: Do NOT include the general name of a
law (e.g., "Clean Air Act"). You MUST extract the precise citation in the
following formats:

   a. Federal Statutes: XX U.S.C. § YYYY (e.g., 42 U.S.C. § 7521)
   b. Federal Rules: XX C.F.R. § YYYY (e.g., 40 C.F.R. § 1068.101)

4. For each citation, "type" MUST be either "Statute" or "Rule" and
"citation" MUST be the exact citation string.

5. Environmental Issues: Classify the document into appropriate categories
from this list:
%s

   A document can relate to no issues, one issue, or multiple issues.
   Only include issues that are clearly relevant to the case.
   Return an empty list [] or null if no issues apply.

6. No Laws Found: If you find NO specific citations, return {"citations": null}.

7. No Hallucinations: Do NOT include any law or rule unless you find a
specific citation in the provided text. Do NOT guess or invent citations.

8. JSON Only: Return ONLY the JSON. No introductory or explanatory text.`,
		numParagraphs, strings.Join(bullets, "\n"))
}

// SummaryInstructions builds the system message for the Federal Register
// audience summaries.
func SummaryInstructions(agencyName string) string {
	return fmt.Sprintf(`You are a helpful assistant knowledgeable about the %s. Summarize the following text in three different styles:

1. FOR HIGH SCHOOL STUDENTS (150-200 words): Create a concise summary
using simple, straightforward language. Avoid technical jargon, define any
necessary terms, and focus on explaining why this matters to everyday
people and the environment.
2. FOR CORPORATE LOBBYISTS (250-300 words): Create a detailed summary
emphasizing business implications and regulatory impact. Use blunt
language indicating actionables. Focus on compliance requirements,
timelines, costs, and potential business opportunities or challenges. Put
HTML bold tags <b> around keywords such as: Compliance, Regulation,
Requirements, Implementation, Standards, Tolerances, Exemption,
Permitting, Costs, Comment period, Compliance strategy.
3. FOR ENVIRONMENTAL ACTIVISTS (250-300 words): Create a detailed summary
emphasizing environmental concerns and advocacy points with regard to the
rule changes being discussed. Highlight potential impacts on ecosystems,
public health, and climate, as well as areas where the regulation could be
strengthened. Put HTML bold tags <b> around keywords such as:
Environmental contamination, Ecosystems, Public health, Climate change,
Air pollution, Emissions, Environmental justice, Transparency,
Accountability.

Each summary should be formatted as HTML using only <p> tags with no line
breaks within the HTML string. Do not use <html>, <head>, or <body> tags.
Focus on the most important information from the text. Do not mention
specific dates, e.g. Effective or Comment dates, that isn't useful info.
If the input text is highly technical, translate complex concepts into
accessible language appropriate for each audience. Prioritize explaining
the practical impact of the regulation over procedural details.

Your response MUST be a single valid JSON object with this shape:

{
  "high_school_summary": "...",
  "lobbyist_summary": "...",
  "activist_summary": "..."
}

Return ONLY the JSON. No introductory or explanatory text.`, agencyName)
}

// OverviewInstructions builds the system message for the news-style review
// written across one Federal Register batch.
func OverviewInstructions(articleCount int) string {
	return fmt.Sprintf(`Review the following %d articles from the federal register. You should write an engaging news-like summary with any highlights or trends. Provide specific details, cite individual federal registers and dates and discuss deeper implications. Output as 4 HTML paragraphs using only <p> tags with no line breaks within the HTML string. Do not use <html>, <head>, or <body> tags. Put bold <b> tags around this non-exclusive list of words of interest to activists: Environmental contamination, Ecosystems, Public health, Climate change, Air pollution, Hazardous air pollutants, Environmental protection, Advocate, Mobilize, Vulnerable populations, Environmental justice, Community involvement, Transparency, Accountability, Emissions, Acid rain, Smog, Monitoring, Soil health.

Your response MUST be a single valid JSON object of the shape {"summary": "one or more HTML paragraphs"}. Return ONLY the JSON.`, articleCount)
}
