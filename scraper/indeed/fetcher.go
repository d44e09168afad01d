package indeed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"job-scraper/client"
	"job-scraper/scraper"
)

// Fetcher issues one GET per page. It never retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{client: httpClient, userAgent: userAgent}
}

// Fetch downloads and parses pageURL. Network failures and non-2xx
// responses come back as *scraper.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &scraper.FetchError{URL: pageURL, Err: err}
	}
	for key, values := range client.Headers(f.userAgent) {
		req.Header[key] = values
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &scraper.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &scraper.FetchError{URL: pageURL, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &scraper.FetchError{URL: pageURL, Err: fmt.Errorf("parse HTML: %w", err)}
	}
	return doc, nil
}
