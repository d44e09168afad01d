package indeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper"
)

const resultsPage = `<html><body>
<div id="mosaic-provider-jobcards">
  <a class="tapItem" href="/rc/clk?jk=aaa">
    <h2><span title="Python Developer">Python Developer</span></h2>
    <span class="companyName">Initech</span>
    <div class="companyLocation">Remote</div>
  </a>
  <a class="tapItem" href="/rc/clk?jk=bbb">
    <h2><span title="Senior Python Developer">Senior Python Developer</span></h2>
    <div class="companyLocation">Remote</div>
  </a>
  <a class="tapItem" href="/rc/clk?jk=ccc">
    <h2><span title="Python Engineer">Python Engineer</span></h2>
    <span class="companyName">Hooli</span>
    <div class="companyLocation">Remote in Denver, CO</div>
  </a>
</div>
</body></html>`

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.IndeedBaseURL = baseURL
	cfg.ItemDelay = 0
	return cfg
}

func mustQuery(t *testing.T, term, location string) models.SearchQuery {
	t.Helper()
	q, err := models.NewSearchQuery(term, location)
	require.NoError(t, err)
	return q
}

func TestSearchURL(t *testing.T) {
	q := mustQuery(t, "Cybersecurity Analyst", "Washington DC")
	assert.Equal(t,
		"https://www.indeed.com/jobs?q=Cybersecurity+Analyst&l=Washington+DC",
		SearchURL("https://www.indeed.com/", q))
}

func TestScrape(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	res, err := NewScraper(cfg, srv.Client()).Scrape(context.Background(), mustQuery(t, "Python Developer", "Remote"))
	require.NoError(t, err)

	assert.Equal(t, cfg.UserAgent, gotUA)
	assert.Equal(t, "q=Python+Developer&l=Remote", gotQuery)

	require.Len(t, res.Listings, 3)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, scraper.StopSinglePage, res.Stop)
	assert.Equal(t, srv.URL+"/rc/clk?jk=aaa", res.Listings[0].Link)
	assert.Equal(t, models.NotAvailable, res.Listings[1].Company)
	assert.Equal(t, "Senior Python Developer", res.Listings[1].Title)
	assert.Equal(t, "Hooli", res.Listings[2].Company)
	assert.Len(t, res.Warnings, 1)
}

func TestScrapeNonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewScraper(testConfig(srv.URL), srv.Client()).Scrape(context.Background(), mustQuery(t, "Go", "Remote"))

	var fetchErr *scraper.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.Status)
}

func TestScrapeNetworkErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewScraper(testConfig(base), nil).Scrape(context.Background(), mustQuery(t, "Go", "Remote"))

	var fetchErr *scraper.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.Status)
}

func TestScrapeDoesNotRetry(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewScraper(testConfig(srv.URL), srv.Client()).Scrape(context.Background(), mustQuery(t, "Go", "Remote"))
	assert.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestScrapeLayoutChangeIsStructureError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="jobcards-v2"></div></body></html>`))
	}))
	defer srv.Close()

	res, err := NewScraper(testConfig(srv.URL), srv.Client()).Scrape(context.Background(), mustQuery(t, "Go", "Remote"))

	var structErr *scraper.StructureError
	require.True(t, errors.As(err, &structErr))
	assert.Empty(t, res.Listings)
}

func TestScrapeZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="mosaic-provider-jobcards"></div></body></html>`))
	}))
	defer srv.Close()

	res, err := NewScraper(testConfig(srv.URL), srv.Client()).Scrape(context.Background(), mustQuery(t, "Go", "Nowhere"))
	require.NoError(t, err)
	assert.Empty(t, res.Listings)
	assert.Equal(t, 1, res.Pages)
}
