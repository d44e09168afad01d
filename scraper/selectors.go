package scraper

// SelectorTable holds every CSS selector a site scraper depends on,
// so a layout change means editing one table per site.
type SelectorTable struct {
	Site string

	Container string
	Item      string

	Title    string
	Company  string
	Location string
	Link     string // empty: read LinkAttr from the item itself
	LinkAttr string

	// FixedCompany is used instead of Company on single-employer sites.
	FixedCompany string
	// LocationSep joins several Location matches; empty keeps only the first.
	LocationSep string

	NextPage string
}
