package indeed

import "job-scraper/scraper"

// Selectors is the whole of the Indeed search page layout this scraper knows about.
var Selectors = scraper.SelectorTable{
	Site:      "indeed",
	Container: "div#mosaic-provider-jobcards",
	Item:      "a.tapItem",
	Title:     "span[title]",
	Company:   "span.companyName",
	Location:  "div.companyLocation",
	LinkAttr:  "href",
}
