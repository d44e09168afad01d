package services

import (
	"context"
	"errors"

	"job-scraper/scraper"
)

// Outcome is how a run ended, as far as the user is concerned.
type Outcome int

const (
	OutcomeCollected Outcome = iota
	OutcomeNoResults
	OutcomeStructureChanged
	OutcomeTimedOut
	OutcomeFetchFailed
	OutcomeInterrupted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCollected:
		return "collected"
	case OutcomeNoResults:
		return "no results"
	case OutcomeStructureChanged:
		return "structure changed"
	case OutcomeTimedOut:
		return "timed out"
	case OutcomeFetchFailed:
		return "fetch failed"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "failed"
	}
}

// Classify maps a scrape result and its error to an Outcome. A missing
// container and a genuinely empty search both produce zero records but
// classify differently.
func Classify(res scraper.Result, err error) Outcome {
	var (
		structErr  *scraper.StructureError
		timeoutErr *scraper.TimeoutError
		fetchErr   *scraper.FetchError
	)

	switch {
	case err == nil && len(res.Listings) > 0:
		return OutcomeCollected
	case err == nil:
		return OutcomeNoResults
	case errors.Is(err, context.Canceled):
		return OutcomeInterrupted
	case errors.As(err, &structErr):
		return OutcomeStructureChanged
	case errors.As(err, &timeoutErr):
		return OutcomeTimedOut
	case errors.As(err, &fetchErr):
		return OutcomeFetchFailed
	default:
		return OutcomeFailed
	}
}
