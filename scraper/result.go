package scraper

import "job-scraper/models"

// StopReason says why a run stopped fetching pages.
type StopReason string

const (
	StopSinglePage   StopReason = "single page"
	StopLimit        StopReason = "page limit reached"
	StopNoNext       StopReason = "no next-page control"
	StopNextDisabled StopReason = "next-page control disabled"
	StopEmptyPage    StopReason = "page had no listings"
	StopPageFailed   StopReason = "later page failed"
)

// Page is what one extraction pass produced.
type Page struct {
	Listings []models.Listing
	Warnings []MissingFieldWarning
}

// Result accumulates pages over one run.
type Result struct {
	Listings []models.Listing
	Warnings []MissingFieldWarning
	Pages    int
	Stop     StopReason
	// PageErr is the error that ended a multi-page run after earlier pages had data.
	PageErr error
}

func (r *Result) Add(p Page) {
	r.Pages++
	r.Listings = append(r.Listings, p.Listings...)
	r.Warnings = append(r.Warnings, p.Warnings...)
}
