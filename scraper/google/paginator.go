package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"job-scraper/config"
	"job-scraper/scraper"
	"job-scraper/utils"
)

// Paginator walks result pages one at a time: wait, extract, then click next.
type Paginator struct {
	Page        Page
	Extractor   *scraper.Extractor
	WaitTimeout time.Duration
	SettleDelay time.Duration
	Delay       utils.DelayFunc
	// OnPage is called after every page that was read.
	OnPage func(page, found int)
}

func NewPaginator(page Page, cfg *config.Config) *Paginator {
	return &Paginator{
		Page:        page,
		Extractor:   scraper.NewExtractor(Selectors, 0),
		WaitTimeout: cfg.WaitTimeout,
		SettleDelay: cfg.SettleDelay,
		Delay:       utils.Sleep,
	}
}

// Run reads at most limit pages starting at startURL.
// A failure before any listing was collected is returned as the error.
// A failure after that ends the loop and is kept in Result.PageErr.
func (p *Paginator) Run(ctx context.Context, startURL string, limit int) (scraper.Result, error) {
	var result scraper.Result
	sel := p.Extractor.Selectors

	utils.Info("Navigating to: %s", startURL)
	if err := p.Page.Navigate(startURL); err != nil {
		return result, err
	}

	for n := 1; n <= limit; n++ {
		utils.Section(fmt.Sprintf("Scraping page %d/%d", n, limit))

		page, err := p.readPage(ctx, startURL)
		if err != nil {
			return p.stopOnError(ctx, result, n, err)
		}

		result.Add(page)
		if p.OnPage != nil {
			p.OnPage(n, len(page.Listings))
		}

		if len(page.Listings) == 0 {
			result.Stop = scraper.StopEmptyPage
			return result, nil
		}
		utils.Info("Found %d jobs on page %d", len(page.Listings), n)

		if n == limit {
			result.Stop = scraper.StopLimit
			return result, nil
		}

		state, err := p.Page.NextControl(sel.NextPage)
		if err != nil {
			return p.stopOnError(ctx, result, n, err)
		}
		switch state {
		case NextMissing:
			utils.Info("No next-page control found, reached the last page")
			result.Stop = scraper.StopNoNext
			return result, nil
		case NextDisabled:
			utils.Info("Next-page control is disabled, reached the last page")
			result.Stop = scraper.StopNextDisabled
			return result, nil
		}

		utils.Info("Navigating to the next page...")
		if err := p.Page.ClickNext(sel.NextPage); err != nil {
			return p.stopOnError(ctx, result, n, err)
		}
		if err := p.Delay(ctx, p.SettleDelay); err != nil {
			return result, err
		}
	}

	result.Stop = scraper.StopLimit
	return result, nil
}

func (p *Paginator) readPage(ctx context.Context, startURL string) (scraper.Page, error) {
	sel := p.Extractor.Selectors

	if err := p.Page.WaitReady(sel.Container, p.WaitTimeout); err != nil {
		return scraper.Page{}, err
	}

	html, err := p.Page.HTML()
	if err != nil {
		return scraper.Page{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scraper.Page{}, fmt.Errorf("parse rendered page: %w", err)
	}

	pageURL := p.Page.URL()
	if pageURL == "" {
		pageURL = startURL
	}
	return p.Extractor.Extract(ctx, doc, pageURL)
}

func (p *Paginator) stopOnError(ctx context.Context, result scraper.Result, n int, err error) (scraper.Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	if len(result.Listings) == 0 {
		return result, err
	}

	utils.Warn("Page %d failed, keeping %d jobs from earlier pages: %v", n, len(result.Listings), err)
	result.Stop = scraper.StopPageFailed
	result.PageErr = err
	return result, nil
}
