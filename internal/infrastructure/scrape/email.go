package scrape

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"donation_finder/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	requestTimeout = 5 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`) //nolint:gochecknoglobals

// Addresses that are never a usable contact.
var genericAddressPrefixes = []string{ //nolint:gochecknoglobals
	"noreply@",
	"no-reply@",
	"donotreply@",
	"webmaster@",
	"admin@",
	"postmaster@",
	"support@google",
}

// EmailScraper fetches an organization's website and pulls out a contact
// email address. Everything it does is best-effort: failures yield "".
type EmailScraper struct {
	httpClient *http.Client
	delay      time.Duration
}

func NewEmailScraper(delay time.Duration) *EmailScraper {
	return &EmailScraper{
		httpClient: &http.Client{Timeout: requestTimeout},
		delay:      delay,
	}
}

// ExtractEmail returns the first non-generic email address found on the page,
// preferring mailto: links over addresses in the page text. A fixed delay
// follows each fetch out of politeness to the scraped site.
func (s *EmailScraper) ExtractEmail(ctx context.Context, websiteURL string) string {
	if !strings.HasPrefix(websiteURL, "http://") && !strings.HasPrefix(websiteURL, "https://") {
		return ""
	}

	defer s.sleep(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, http.NoBody)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger(ctx).Debug("website fetch failed", "url", websiteURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	if email := mailtoAddress(doc); email != "" {
		logger(ctx).Debug("email found via mailto", "url", websiteURL)
		return email
	}

	return textAddress(doc)
}

func (s *EmailScraper) sleep(ctx context.Context) {
	if s.delay <= 0 {
		return
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
}

func mailtoAddress(doc *goquery.Document) string {
	var found string

	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")

		address := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(address, '?'); i >= 0 {
			address = address[:i]
		}

		address = strings.ToLower(strings.TrimSpace(address))
		if emailPattern.MatchString(address) && !isGenericAddress(address) {
			found = address
			return false
		}

		return true
	})

	return found
}

func textAddress(doc *goquery.Document) string {
	for _, match := range emailPattern.FindAllString(doc.Text(), -1) {
		address := strings.ToLower(match)
		if !isGenericAddress(address) {
			return address
		}
	}

	return ""
}

func isGenericAddress(address string) bool {
	for _, prefix := range genericAddressPrefixes {
		if strings.Contains(address, prefix) {
			return true
		}
	}

	return false
}
