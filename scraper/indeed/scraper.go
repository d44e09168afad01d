package indeed

import (
	"context"
	"net/http"
	"strings"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper"
	"job-scraper/utils"
)

type Scraper struct {
	cfg       *config.Config
	fetcher   *Fetcher
	extractor *scraper.Extractor
}

func NewScraper(cfg *config.Config, httpClient *http.Client) *Scraper {
	return &Scraper{
		cfg:       cfg,
		fetcher:   NewFetcher(httpClient, cfg.UserAgent),
		extractor: scraper.NewExtractor(Selectors, cfg.ItemDelay),
	}
}

// SearchURL builds the Indeed search URL. Spaces become '+'.
func SearchURL(baseURL string, q models.SearchQuery) string {
	return strings.TrimRight(baseURL, "/") +
		"/jobs?q=" + models.Encode(q.Term(), "+") +
		"&l=" + models.Encode(q.Location(), "+")
}

// Scrape fetches and extracts the single search results page for q.
func (s *Scraper) Scrape(ctx context.Context, q models.SearchQuery) (scraper.Result, error) {
	utils.Info("Scraping jobs for %q in %q...", q.Term(), q.Location())

	pageURL := SearchURL(s.cfg.IndeedBaseURL, q)
	utils.Debug("GET %s", pageURL)

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return scraper.Result{}, err
	}

	page, err := s.extractor.Extract(ctx, doc, pageURL)
	if err != nil {
		return scraper.Result{}, err
	}

	result := scraper.Result{Stop: scraper.StopSinglePage}
	result.Add(page)
	utils.Success("Found %d jobs", len(result.Listings))
	return result, nil
}
