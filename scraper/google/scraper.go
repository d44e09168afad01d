package google

import (
	"context"
	"strings"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper"
)

type Scraper struct {
	cfg    *config.Config
	OnPage func(page, found int)
}

func NewScraper(cfg *config.Config) *Scraper {
	return &Scraper{cfg: cfg}
}

// SearchURL builds the Google Careers results URL. Spaces become %20.
func SearchURL(baseURL string, q models.SearchQuery) string {
	return strings.TrimRight(baseURL, "/") + "/jobs/results/?q=" + models.Encode(q.Term(), "%20")
}

// Scrape runs one browser session over up to q.Pages() result pages.
// The browser is closed before Scrape returns on every path.
func (s *Scraper) Scrape(ctx context.Context, q models.SearchQuery) (scraper.Result, error) {
	var result scraper.Result

	err := WithSession(ctx, s.cfg, func(sess *Session) error {
		p := NewPaginator(sess, s.cfg)
		p.OnPage = s.OnPage

		var err error
		result, err = p.Run(ctx, SearchURL(s.cfg.GoogleBaseURL, q), q.Pages())
		return err
	})

	return result, err
}
