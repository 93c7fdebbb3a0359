package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dotLeaderRun  = regexp.MustCompile(`\.{4,}`)
	underscoreRun = regexp.MustCompile(`_{3,}`)
)

// PDFExtractor downloads enforcement PDFs and extracts their plain text.
type PDFExtractor struct {
	httpClient *http.Client
	userAgent  string
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(httpClient *http.Client, userAgent string) *PDFExtractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &PDFExtractor{httpClient: httpClient, userAgent: userAgent}
}

// ExtractFromURL downloads the PDF at url and returns its cleaned text.
// Download failures return an error; an unparseable PDF returns an empty
// string so one bad attachment does not sink the whole case.
func (e *PDFExtractor) ExtractFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download PDF %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error %d downloading PDF %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF body: %w", err)
	}

	text, err := ExtractPDFText(data)
	if err != nil {
		log.Printf("Warning: failed to parse PDF %s: %v", url, err)
		return "", nil
	}
	return text, nil
}

// ExtractPDFText parses raw PDF bytes and returns the cleaned plain text.
func ExtractPDFText(data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF parser panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	if reader.NumPage() == 0 {
		return "", nil
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	return CleanPDFText(buf.String()), nil
}

// CleanPDFText collapses whitespace and strips common extraction artifacts
// like dot leaders and signature-line underscores.
func CleanPDFText(text string) string {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	text = dotLeaderRun.ReplaceAllString(text, "...")
	text = underscoreRun.ReplaceAllString(text, "")
	return text
}
