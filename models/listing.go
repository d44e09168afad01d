package models

// NotAvailable fills any listing field the source page did not provide.
const NotAvailable = "N/A"

// CSVHeader is the fixed column order of every output file.
var CSVHeader = []string{"Job Title", "Company", "Location", "Link"}

type Listing struct {
	Title    string
	Company  string
	Location string
	Link     string
}

// NewListing returns a record with every field set to NotAvailable.
// Extractors overwrite only the fields they manage to read.
func NewListing() Listing {
	return Listing{
		Title:    NotAvailable,
		Company:  NotAvailable,
		Location: NotAvailable,
		Link:     NotAvailable,
	}
}

// HasLink reports whether the record carries a resolved link.
func (l Listing) HasLink() bool {
	return l.Link != "" && l.Link != NotAvailable
}

// Row returns the listing in CSVHeader order.
func (l Listing) Row() []string {
	return []string{l.Title, l.Company, l.Location, l.Link}
}
