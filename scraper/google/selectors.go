package google

import "job-scraper/scraper"

// Selectors is the Google Careers results layout. Class names are generated
// by Google's build, so this is the table to edit when the scraper breaks.
var Selectors = scraper.SelectorTable{
	Site:         "google",
	Container:    ".sp2RC",
	Item:         ".sMn82b",
	Title:        ".hprKdb",
	Location:     ".r0wTof",
	LocationSep:  ", ",
	Link:         "a",
	LinkAttr:     "href",
	FixedCompany: "Google",
	NextPage:     `a[aria-label='Go to next page']`,
}
