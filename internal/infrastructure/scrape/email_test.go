package scrape_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"donation_finder/internal/infrastructure/scrape"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, html) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	return server
}

func TestExtractEmail(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "Mailto link preferred",
			html:     `<html><body>reach us at info@shelter.org or <a href="mailto:contact@shelter.org">email</a></body></html>`,
			expected: "contact@shelter.org",
		},
		{
			name:     "Mailto with query string",
			html:     `<a href="mailto:help@foodbank.org?subject=Donation">write</a>`,
			expected: "help@foodbank.org",
		},
		{
			name:     "Plain text address",
			html:     `<p>Questions? Write to Volunteers@Charity.org today.</p>`,
			expected: "volunteers@charity.org",
		},
		{
			name:     "Generic addresses filtered",
			html:     `<a href="mailto:noreply@shelter.org">x</a><p>admin@shelter.org webmaster@shelter.org donotreply@x.org</p>`,
			expected: "",
		},
		{
			name:     "Generic mailto skipped in favor of text address",
			html:     `<a href="mailto:no-reply@shelter.org">x</a><p>donate@shelter.org</p>`,
			expected: "donate@shelter.org",
		},
		{
			name:     "No address at all",
			html:     `<p>Call us instead.</p>`,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := serveHTML(t, tc.html)
			scraper := scrape.NewEmailScraper(0)

			rq.Equal(tc.expected, scraper.ExtractEmail(context.Background(), server.URL))
		})
	}
}

func TestExtractEmailBadInput(t *testing.T) {
	rq := require.New(t)

	scraper := scrape.NewEmailScraper(0)

	rq.Empty(scraper.ExtractEmail(context.Background(), ""))
	rq.Empty(scraper.ExtractEmail(context.Background(), "ftp://example.org"))
	rq.Empty(scraper.ExtractEmail(context.Background(), "not a url"))
	// Unreachable host is best-effort, not an error.
	rq.Empty(scraper.ExtractEmail(context.Background(), "http://127.0.0.1:1"))
}

func TestExtractEmailNon200(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "contact@hidden.org", http.StatusForbidden)
	}))
	defer server.Close()

	scraper := scrape.NewEmailScraper(0)

	rq.Empty(scraper.ExtractEmail(context.Background(), server.URL))
}
