package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enforcementTableHTML = `<html><body>
<table id="datatable">
<thead><tr><th>Respondent</th><th>Statute</th><th>Region</th><th>Date</th></tr></thead>
<tbody>
<tr>
  <td><a href="/enforcement/acme-corp-settlement">Acme Corp</a></td>
  <td>CAA</td>
  <td>5</td>
  <td>March 3, 2025</td>
</tr>
<tr>
  <td>No Link Industries</td>
  <td>CWA</td>
  <td>2</td>
  <td>March 1, 2025</td>
</tr>
<tr><td>short row</td></tr>
</tbody>
</table>
</body></html>`

const caseDetailHTML = `<html><body>
<article>
  <h1>Acme Corp Settlement</h1>
  <p>Acme Corp violated 42 U.S.C. § 7401 and paid a penalty.</p>
  <div id="contact"><p>Press contact: nobody@example.gov</p></div>
  <p>Trailing boilerplate after the contact block.</p>
</article>
<div class="box__content">
  <a href="/system/files/order.PDF">Consent order</a>
  <a href="/system/files/notes.txt">Notes</a>
</div>
</body></html>`

func newTestScraper(serverURL string) *EPAScraper {
	return NewEPAScraper(
		WithBaseURL(serverURL),
		WithFetchDelay(0),
	)
}

func TestFetchCases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, epaEnforcementPath, r.URL.Path)
		w.Write([]byte(enforcementTableHTML))
	}))
	defer server.Close()

	rows, err := newTestScraper(server.URL).FetchCases(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2, "short row is skipped")

	assert.Equal(t, "EPA Enforcement - Acme Corp", rows[0].Title)
	assert.Equal(t, "March 3, 2025", rows[0].Date)
	assert.Equal(t, server.URL+"/enforcement/acme-corp-settlement", rows[0].SourceURL)

	assert.Equal(t, "EPA Enforcement - No Link Industries", rows[1].Title)
	assert.Equal(t, "", rows[1].SourceURL)
}

func TestFetchCasesHonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(enforcementTableHTML))
	}))
	defer server.Close()

	rows, err := newTestScraper(server.URL).FetchCases(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFetchCasesNoTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>maintenance</p></body></html>"))
	}))
	defer server.Close()

	_, err := newTestScraper(server.URL).FetchCases(context.Background(), 5)
	assert.Error(t, err)
}

func TestFetchCaseContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/case":
			w.Write([]byte(caseDetailHTML))
		case "/system/files/order.PDF":
			// Not a real PDF; extraction fails soft and the link is kept.
			w.Write([]byte("not a pdf"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	content, err := newTestScraper(server.URL).FetchCaseContent(context.Background(), server.URL+"/case")
	require.NoError(t, err)

	assert.Contains(t, content.ArticleText, "Acme Corp violated 42 U.S.C. § 7401")
	assert.NotContains(t, content.ArticleText, "Press contact")
	assert.NotContains(t, content.ArticleText, "Trailing boilerplate")

	require.Len(t, content.PDFLinks, 1, "non-PDF links are ignored")
	assert.Equal(t, server.URL+"/system/files/order.PDF", content.PDFLinks[0])
	assert.Empty(t, content.PDFTexts)
}

func TestCaseContentRawText(t *testing.T) {
	content := &CaseContent{
		ArticleText: "article",
		PDFTexts:    []string{"first", "second"},
	}
	assert.Equal(t, "article first --- second", content.RawText())
}

func TestFetchCaseContentNoArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer server.Close()

	content, err := newTestScraper(server.URL).FetchCaseContent(context.Background(), server.URL+"/case")
	require.NoError(t, err)
	assert.Equal(t, "", content.ArticleText)
	assert.Empty(t, content.PDFLinks)
}
