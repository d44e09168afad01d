package google

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper"
	"job-scraper/utils"
)

type fakePage struct {
	pages   []string
	waitErr map[int]error
	next    map[int]NextState

	current int
	fetches int
	clicks  int
}

func (f *fakePage) Navigate(string) error {
	f.current = 1
	return nil
}

func (f *fakePage) WaitReady(selector string, timeout time.Duration) error {
	if err, ok := f.waitErr[f.current]; ok {
		return err
	}
	return nil
}

func (f *fakePage) HTML() (string, error) {
	f.fetches++
	return f.pages[f.current-1], nil
}

func (f *fakePage) NextControl(string) (NextState, error) {
	if state, ok := f.next[f.current]; ok {
		return state, nil
	}
	if f.current < len(f.pages) {
		return NextReady, nil
	}
	return NextMissing, nil
}

func (f *fakePage) ClickNext(string) error {
	f.clicks++
	f.current++
	return nil
}

func (f *fakePage) URL() string {
	return fmt.Sprintf("https://www.google.com/about/careers/applications/jobs/results/?q=go&page=%d", f.current)
}

func resultsHTML(page, items int) string {
	var b strings.Builder
	b.WriteString(`<html><head><base href="/about/careers/applications/"></head><body><ul class="sp2RC">`)
	for i := 0; i < items; i++ {
		fmt.Fprintf(&b, `<li class="sMn82b"><h3 class="hprKdb">Job %d-%d</h3>`+
			`<span class="r0wTof">Mountain View, CA, USA</span><span class="r0wTof">Remote</span>`+
			`<a href="jobs/results/%d%d-job">Learn more</a></li>`, page, i, page, i)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

func newTestPaginator(page Page) *Paginator {
	p := NewPaginator(page, config.DefaultConfig())
	p.Delay = utils.NoDelay
	return p
}

func TestRunStopsAtPageLimit(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 2), resultsHTML(2, 2), resultsHTML(3, 2), resultsHTML(4, 2)}}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, page.fetches)
	assert.Equal(t, 2, page.clicks)
	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Listings, 6)
	assert.Equal(t, scraper.StopLimit, res.Stop)
}

func TestRunStopsWithoutNextControl(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 3), resultsHTML(2, 1)}}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Pages)
	assert.Len(t, res.Listings, 4)
	assert.Equal(t, scraper.StopNoNext, res.Stop)
	assert.NoError(t, res.PageErr)
}

func TestRunStopsOnDisabledNextControl(t *testing.T) {
	page := &fakePage{
		pages: []string{resultsHTML(1, 1), resultsHTML(2, 1)},
		next:  map[int]NextState{1: NextDisabled},
	}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Zero(t, page.clicks)
	assert.Equal(t, scraper.StopNextDisabled, res.Stop)
}

func TestRunFirstPageTimeoutAborts(t *testing.T) {
	timeout := &scraper.TimeoutError{Selector: Selectors.Container, Wait: 20 * time.Second}
	page := &fakePage{
		pages:   []string{resultsHTML(1, 1)},
		waitErr: map[int]error{1: timeout},
	}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 3)

	var timeoutErr *scraper.TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Empty(t, res.Listings)
	assert.Zero(t, page.fetches)
}

func TestRunLaterStructureFailureKeepsEarlierPages(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 2), `<html><body><div class="redesigned"></div></body></html>`}}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 3)
	require.NoError(t, err)

	assert.Len(t, res.Listings, 2)
	assert.Equal(t, scraper.StopPageFailed, res.Stop)
	var structErr *scraper.StructureError
	assert.True(t, errors.As(res.PageErr, &structErr))
}

func TestRunEmptyFirstPage(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 0)}}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 3)
	require.NoError(t, err)

	assert.Empty(t, res.Listings)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, scraper.StopEmptyPage, res.Stop)
}

func TestRunExtractsGoogleFields(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 1)}}

	res, err := newTestPaginator(page).Run(context.Background(), "https://start", 1)
	require.NoError(t, err)
	require.Len(t, res.Listings, 1)

	assert.Equal(t, models.Listing{
		Title:    "Job 1-0",
		Company:  "Google",
		Location: "Mountain View, CA, USA, Remote",
		Link:     "https://www.google.com/about/careers/applications/jobs/results/10-job",
	}, res.Listings[0])
}

func TestRunCallsOnPage(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 2), resultsHTML(2, 1)}}

	var seen []int
	p := newTestPaginator(page)
	p.OnPage = func(n, found int) { seen = append(seen, n*10+found) }

	_, err := p.Run(context.Background(), "https://start", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 21}, seen)
}

func TestRunHonoursCancelledSettleDelay(t *testing.T) {
	page := &fakePage{pages: []string{resultsHTML(1, 1), resultsHTML(2, 1)}}
	ctx, cancel := context.WithCancel(context.Background())

	p := newTestPaginator(page)
	p.Delay = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := p.Run(ctx, "https://start", 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, page.fetches)
}

func TestSearchURL(t *testing.T) {
	q, err := models.NewPagedQuery("Site Reliability Engineer", 2)
	require.NoError(t, err)

	assert.Equal(t,
		"https://www.google.com/about/careers/applications/jobs/results/?q=Site%20Reliability%20Engineer",
		SearchURL("https://www.google.com/about/careers/applications/", q))
}

func TestNextStateString(t *testing.T) {
	assert.Equal(t, "ready", NextReady.String())
	assert.Equal(t, "disabled", NextDisabled.String())
	assert.Equal(t, "missing", NextMissing.String())
}
