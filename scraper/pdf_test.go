package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPDFText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses whitespace runs",
			input:    "In  the \n matter\t of",
			expected: "In the matter of",
		},
		{
			name:     "dot leaders shortened",
			input:    "Findings.......... 12",
			expected: "Findings... 12",
		},
		{
			name:     "signature lines removed",
			input:    "Signed: ______ Date: ___",
			expected: "Signed:  Date: ",
		},
		{
			name:     "leading and trailing space trimmed",
			input:    "  penalty of $1,000  ",
			expected: "penalty of $1,000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanPDFText(tt.input))
		})
	}
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtractFromURLDownloadErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := NewPDFExtractor(server.Client(), "")
	_, err := extractor.ExtractFromURL(context.Background(), server.URL+"/missing.pdf")
	assert.Error(t, err)
}

func TestExtractFromURLUnparseableBodyFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("junk bytes"))
	}))
	defer server.Close()

	extractor := NewPDFExtractor(server.Client(), "")
	text, err := extractor.ExtractFromURL(context.Background(), server.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
