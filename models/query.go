package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTerm     = errors.New("job title must not be empty")
	ErrEmptyLocation = errors.New("location must not be empty")
	ErrInvalidPages  = errors.New("pages must be a positive integer")
)

// SearchQuery is fixed once built; scrapers only read it to derive request parameters.
type SearchQuery struct {
	term     string
	location string
	pages    int
}

// NewSearchQuery builds a term + location query for single-page sites.
func NewSearchQuery(term, location string) (SearchQuery, error) {
	term = strings.TrimSpace(term)
	location = strings.TrimSpace(location)
	if term == "" {
		return SearchQuery{}, ErrEmptyTerm
	}
	if location == "" {
		return SearchQuery{}, ErrEmptyLocation
	}
	return SearchQuery{term: term, location: location, pages: 1}, nil
}

// NewPagedQuery builds a term + page count query for paginated sites.
func NewPagedQuery(term string, pages int) (SearchQuery, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchQuery{}, ErrEmptyTerm
	}
	if pages < 1 {
		return SearchQuery{}, fmt.Errorf("%w: got %d", ErrInvalidPages, pages)
	}
	return SearchQuery{term: term, pages: pages}, nil
}

func (q SearchQuery) Term() string     { return q.term }
func (q SearchQuery) Location() string { return q.location }
func (q SearchQuery) Pages() int       { return q.pages }

// Encode replaces spaces in s with sep. Every other character is passed through
// untouched; a malformed query gets a 404 or zero results from the site.
func Encode(s, sep string) string {
	return strings.ReplaceAll(s, " ", sep)
}
