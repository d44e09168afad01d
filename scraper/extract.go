package scraper

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"job-scraper/models"
	"job-scraper/utils"
)

const (
	FieldTitle    = "title"
	FieldCompany  = "company"
	FieldLocation = "location"
	FieldLink     = "link"
)

// Extractor turns a parsed page into listings using one site's SelectorTable.
type Extractor struct {
	Selectors SelectorTable
	// Throttle, when set, is waited on before each item.
	Throttle *rate.Limiter
}

// NewExtractor returns an Extractor that paces items itemDelay apart.
// A zero delay disables throttling.
func NewExtractor(sel SelectorTable, itemDelay time.Duration) *Extractor {
	e := &Extractor{Selectors: sel}
	if itemDelay > 0 {
		e.Throttle = rate.NewLimiter(rate.Every(itemDelay), 1)
	}
	return e
}

// Extract reads every item inside the listing container of doc.
// A missing container is a *StructureError. A container with no items
// yields an empty Page and a nil error. Fields are read independently:
// a miss sets that field to models.NotAvailable and adds a warning.
func (e *Extractor) Extract(ctx context.Context, doc *goquery.Document, pageURL string) (Page, error) {
	container := doc.Find(e.Selectors.Container).First()
	if container.Length() == 0 {
		return Page{}, &StructureError{Selector: e.Selectors.Container, URL: pageURL}
	}

	items := container.Find(e.Selectors.Item)
	if items.Length() == 0 {
		utils.Warn("%s: listing container present but no %q items on %s", e.Selectors.Site, e.Selectors.Item, pageURL)
		return Page{}, nil
	}

	base := documentBase(doc, pageURL)
	page := Page{Listings: make([]models.Listing, 0, items.Length())}

	var waitErr error
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		if e.Throttle != nil {
			if waitErr = e.Throttle.Wait(ctx); waitErr != nil {
				return false
			}
		}

		listing, misses := e.extractItem(i, item, base)
		page.Listings = append(page.Listings, listing)
		page.Warnings = append(page.Warnings, misses...)
		for _, m := range misses {
			utils.Debug("%s: %v", e.Selectors.Site, m)
		}
		return true
	})
	if waitErr != nil {
		return page, waitErr
	}

	return page, nil
}

func (e *Extractor) extractItem(i int, item *goquery.Selection, base *url.URL) (models.Listing, []MissingFieldWarning) {
	sel := e.Selectors
	listing := models.NewListing()
	var misses []MissingFieldWarning

	miss := func(field string) {
		misses = append(misses, MissingFieldWarning{Item: i, Field: field})
	}

	if v, ok := readText(item, sel.Title, ""); ok {
		listing.Title = v
	} else {
		miss(FieldTitle)
	}

	if sel.FixedCompany != "" {
		listing.Company = sel.FixedCompany
	} else if v, ok := readText(item, sel.Company, ""); ok {
		listing.Company = v
	} else {
		miss(FieldCompany)
	}

	if v, ok := readText(item, sel.Location, sel.LocationSep); ok {
		listing.Location = v
	} else {
		miss(FieldLocation)
	}

	if v, ok := e.readLink(item, base); ok {
		listing.Link = v
	} else {
		miss(FieldLink)
	}

	return listing, misses
}

// readText returns the cleaned text of the first match, or of every match
// joined by sep when sep is set.
func readText(item *goquery.Selection, selector, sep string) (string, bool) {
	if selector == "" {
		return "", false
	}

	found := item.Find(selector)
	if sep == "" {
		found = found.First()
	}

	var parts []string
	found.Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, sep), true
}

func (e *Extractor) readLink(item *goquery.Selection, base *url.URL) (string, bool) {
	attr := e.Selectors.LinkAttr
	if attr == "" {
		attr = "href"
	}

	target := item
	if e.Selectors.Link != "" {
		target = item.Find(e.Selectors.Link).First()
	}

	raw, ok := target.Attr(attr)
	if !ok {
		return "", false
	}
	return ResolveLink(base, raw)
}

// ResolveLink resolves raw against base and accepts only absolute http(s) URLs.
func ResolveLink(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}

	if ref.Host == "" || (ref.Scheme != "http" && ref.Scheme != "https") {
		return "", false
	}
	return ref.String(), true
}

// documentBase is the URL relative links resolve against: the page URL,
// adjusted by a <base href> element when the document has one.
func documentBase(doc *goquery.Document, pageURL string) *url.URL {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		base = nil
	}

	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	if base != nil {
		return base.ResolveReference(ref)
	}
	if ref.IsAbs() {
		return ref
	}
	return nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
