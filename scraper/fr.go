package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var spaceRun3 = regexp.MustCompile(` {3,}`)

// FRDocument is one result from the Federal Register documents API.
type FRDocument struct {
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Abstract        string   `json:"abstract"`
	Citation        string   `json:"citation"`
	PublicationDate string   `json:"publication_date"`
	EffectiveOn     string   `json:"effective_on"`
	DocumentNumber  string   `json:"document_number"`
	PDFURL          string   `json:"pdf_url"`
	BodyHTMLURL     string   `json:"body_html_url"`
	AgencyNames     []string `json:"agency_names"`
}

// FRClient fetches rule documents and their article bodies from the
// Federal Register API.
type FRClient struct {
	httpClient *http.Client
	delay      time.Duration
}

// FRClientOption is a functional option for FRClient
type FRClientOption func(*FRClient)

// WithFRHTTPClient overrides the HTTP client used for API calls
func WithFRHTTPClient(c *http.Client) FRClientOption {
	return func(f *FRClient) {
		f.httpClient = c
	}
}

// WithFRFetchDelay sets the politeness delay before each article fetch
func WithFRFetchDelay(d time.Duration) FRClientOption {
	return func(f *FRClient) {
		f.delay = d
	}
}

// NewFRClient creates a new Federal Register client
func NewFRClient(opts ...FRClientOption) *FRClient {
	f := &FRClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		delay:      time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchDocuments queries the documents API and returns the result list.
func (f *FRClient) FetchDocuments(ctx context.Context, queryURL string) ([]FRDocument, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch FR data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d fetching FR data", resp.StatusCode)
	}

	var payload struct {
		Results []FRDocument `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode FR response: %w", err)
	}
	return payload.Results, nil
}

// FetchArticleText downloads a document's HTML body and returns the
// cleaned article text. A politeness delay runs before every fetch.
func (f *FRClient) FetchArticleText(ctx context.Context, articleURL string) (string, error) {
	time.Sleep(f.delay)

	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error %d fetching article %s", resp.StatusCode, articleURL)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse article %s: %w", articleURL, err)
	}
	return CleanArticleText(doc), nil
}

// CleanArticleText extracts article text from a parsed Federal Register
// body, dropping the document-headings block and the typographic spacing
// characters the site embeds.
func CleanArticleText(doc *html.Node) string {
	var parts []string
	collectText(doc, &parts, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "document-headings")
	}, nil)

	text := strings.Join(parts, " ")
	text = strings.NewReplacer(
		"\n", " ",
		"\u2003", " ",
		"\u2009", " ",
		"\u200b", "",
	).Replace(text)
	return spaceRun3.ReplaceAllString(text, " ")
}
