package service

import (
	"fmt"
	"sort"
	"strings"

	"lawwatch-backend/models"
)

// DeduplicateCitations removes duplicate citations, keyed on the pair of
// kind and canonical text. The first occurrence wins and the order of
// distinct entries is preserved.
func DeduplicateCitations(citations []models.Citation) []models.Citation {
	if len(citations) == 0 {
		return nil
	}

	seen := make(map[models.Citation]struct{}, len(citations))
	deduplicated := make([]models.Citation, 0, len(citations))
	for _, c := range citations {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		deduplicated = append(deduplicated, c)
	}
	return deduplicated
}

// FlattenCitations renders a citation list as a single comma-separated
// string of "Kind - citation" entries, sorted alphabetically. An empty or
// absent list flattens to the empty string.
func FlattenCitations(citations []models.Citation) string {
	if len(citations) == 0 {
		return ""
	}

	flattened := make([]string, 0, len(citations))
	for _, c := range citations {
		flattened = append(flattened, fmt.Sprintf("%s - %s", c.Kind, c.Text))
	}
	sort.Strings(flattened)
	return strings.Join(flattened, ",")
}
