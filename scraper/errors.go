package scraper

import (
	"fmt"
	"time"
)

// FetchError is a network or HTTP status failure. The static fetcher never retries it.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TimeoutError means the listing container never showed up within the wait bound,
// either because the page is slow or because the layout changed.
type TimeoutError struct {
	Selector string
	Wait     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for %q", e.Wait, e.Selector)
}

// StructureError means an element the site has always had is gone.
type StructureError struct {
	Selector string
	URL      string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("listing container %q not found on %s: the site layout may have changed", e.Selector, e.URL)
}

// MissingFieldWarning records one field that could not be read from one item.
// It is collected, never returned as an error.
type MissingFieldWarning struct {
	Item  int
	Field string
}

func (w MissingFieldWarning) Error() string {
	return fmt.Sprintf("item %d: %s not available", w.Item, w.Field)
}
