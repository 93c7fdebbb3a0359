package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultEPABaseURL  = "https://www.epa.gov"
	epaEnforcementPath = "/enforcement/civil-and-cleanup-enforcement-cases-and-settlements"

	// Browser user agent; the EPA site rejects default Go client strings.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// PDFTextSeparator joins the extracted texts of a case's attachments.
	PDFTextSeparator = " --- "
)

// CaseRow is one row of the enforcement cases table.
type CaseRow struct {
	Title     string
	Date      string
	SourceURL string
}

// CaseContent is the scraped body of one enforcement case page.
type CaseContent struct {
	ArticleText string
	PDFLinks    []string
	PDFTexts    []string
}

// EPAScraper fetches enforcement cases from the EPA civil enforcement
// listing and their per-case detail pages.
type EPAScraper struct {
	baseURL    string
	httpClient *http.Client
	pdf        *PDFExtractor
	delay      time.Duration
}

// EPAScraperOption is a functional option for EPAScraper
type EPAScraperOption func(*EPAScraper)

// WithBaseURL overrides the EPA site base URL
func WithBaseURL(base string) EPAScraperOption {
	return func(s *EPAScraper) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for page fetches
func WithHTTPClient(c *http.Client) EPAScraperOption {
	return func(s *EPAScraper) {
		s.httpClient = c
		s.pdf = NewPDFExtractor(c, defaultUserAgent)
	}
}

// WithFetchDelay sets the politeness delay between requests
func WithFetchDelay(d time.Duration) EPAScraperOption {
	return func(s *EPAScraper) {
		s.delay = d
	}
}

// NewEPAScraper creates a new EPA scraper
func NewEPAScraper(opts ...EPAScraperOption) *EPAScraper {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	s := &EPAScraper{
		baseURL:    defaultEPABaseURL,
		httpClient: httpClient,
		pdf:        NewPDFExtractor(httpClient, defaultUserAgent),
		delay:      time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCases scrapes up to numRecs rows from the enforcement cases table.
// Rows with fewer than four cells are skipped.
func (s *EPAScraper) FetchCases(ctx context.Context, numRecs int) ([]CaseRow, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL+epaEnforcementPath)
	if err != nil {
		return nil, err
	}

	table := findNode(doc, func(n *html.Node) bool {
		return isElement(n, "table") && attrValue(n, "id") == "datatable"
	})
	if table == nil {
		return nil, fmt.Errorf("no enforcement case table found")
	}

	rows := findAllNodes(table, func(n *html.Node) bool {
		return isElement(n, "tr") && findNode(n, func(td *html.Node) bool { return isElement(td, "td") }) != nil
	})

	cases := make([]CaseRow, 0, numRecs)
	for _, row := range rows {
		if len(cases) >= numRecs {
			break
		}
		caseRow, err := s.extractRow(row)
		if err != nil {
			log.Printf("Warning: skipping enforcement row: %v", err)
			continue
		}
		cases = append(cases, caseRow)
	}
	return cases, nil
}

// extractRow pulls the respondent, date, and detail link from one table
// row. The respondent sits in the first cell, the date in the fourth.
func (s *EPAScraper) extractRow(row *html.Node) (CaseRow, error) {
	cells := findAllNodes(row, func(n *html.Node) bool { return isElement(n, "td") })
	if len(cells) < 4 {
		return CaseRow{}, fmt.Errorf("row has %d cells, need 4", len(cells))
	}

	var respondentParts []string
	collectText(cells[0], &respondentParts, nil, nil)
	respondent := strings.Join(respondentParts, " ")

	var dateParts []string
	collectText(cells[3], &dateParts, nil, nil)

	href := ""
	if link := findNode(cells[0], func(n *html.Node) bool { return isElement(n, "a") }); link != nil {
		href = attrValue(link, "href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = s.baseURL + href
		}
	}

	return CaseRow{
		Title:     "EPA Enforcement - " + respondent,
		Date:      strings.Join(dateParts, " "),
		SourceURL: href,
	}, nil
}

// FetchCaseContent scrapes one case detail page: the article body with the
// comment and contact sections cut off, plus any PDF attachments linked
// from the document box.
func (s *EPAScraper) FetchCaseContent(ctx context.Context, pageURL string) (*CaseContent, error) {
	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	content := &CaseContent{}

	if article := findNode(doc, func(n *html.Node) bool { return isElement(n, "article") }); article != nil {
		// Everything from the comment (or contact) section onward is
		// boilerplate, not case content.
		var parts []string
		collectText(article, &parts, nil, func(n *html.Node) bool {
			return hasID(n, "comment") || hasID(n, "contact")
		})
		content.ArticleText = whitespaceRun.ReplaceAllString(strings.Join(parts, " "), " ")
	}

	box := findNode(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "box__content")
	})
	if box == nil {
		return content, nil
	}

	links := findAllNodes(box, func(n *html.Node) bool {
		return isElement(n, "a") && strings.HasSuffix(strings.ToLower(attrValue(n, "href")), ".pdf")
	})
	for _, link := range links {
		href := attrValue(link, "href")
		if !strings.HasPrefix(href, "http") {
			resolved, err := url.JoinPath(s.baseURL, href)
			if err != nil {
				log.Printf("Warning: skipping malformed PDF link %q: %v", href, err)
				continue
			}
			href = resolved
		}
		content.PDFLinks = append(content.PDFLinks, href)

		text, err := s.pdf.ExtractFromURL(ctx, href)
		if err != nil {
			log.Printf("Warning: failed to fetch PDF %s: %v", href, err)
		} else if text != "" {
			content.PDFTexts = append(content.PDFTexts, text)
		}
		// Be nice to the server
		time.Sleep(s.delay)
	}

	return content, nil
}

// RawText joins the article body and attachment texts into the single
// string handed to analysis and exported with the document.
func (c *CaseContent) RawText() string {
	return c.ArticleText + " " + strings.Join(c.PDFTexts, PDFTextSeparator)
}

func (s *EPAScraper) fetchDocument(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d fetching %s", resp.StatusCode, pageURL)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	return doc, nil
}
