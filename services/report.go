package services

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"job-scraper/models"
	"job-scraper/scraper"
	"job-scraper/utils"
)

const topCompanies = 5

type CompanyCount struct {
	Company string
	Count   int
}

// Report is the end-of-run summary shown to the user.
type Report struct {
	Source  string
	Query   string
	Outcome Outcome
	Err     error

	Pages   int
	Stop    scraper.StopReason
	PageErr error

	Scraped       int
	Duplicates    int
	Saved         int
	MissingFields map[string]int

	ListingsByLocation map[string]int
	TopCompanies       []CompanyCount

	File      string
	Exported  int
	ExportErr error
}

func NewReport(source, query string, res scraper.Result, err error) Report {
	report := Report{
		Source:        source,
		Query:         query,
		Outcome:       Classify(res, err),
		Err:           err,
		Pages:         res.Pages,
		Stop:          res.Stop,
		PageErr:       res.PageErr,
		Scraped:       len(res.Listings),
		MissingFields: make(map[string]int),
	}
	for _, w := range res.Warnings {
		report.MissingFields[w.Field]++
	}
	return report
}

func (r *Report) fill(listings []models.Listing) {
	r.ListingsByLocation = make(map[string]int)
	companies := make(map[string]int)

	for _, l := range listings {
		r.ListingsByLocation[l.Location]++
		if l.Company != models.NotAvailable {
			companies[l.Company]++
		}
	}

	for name, n := range companies {
		r.TopCompanies = append(r.TopCompanies, CompanyCount{Company: name, Count: n})
	}
	sort.Slice(r.TopCompanies, func(i, j int) bool {
		if r.TopCompanies[i].Count == r.TopCompanies[j].Count {
			return r.TopCompanies[i].Company < r.TopCompanies[j].Company
		}
		return r.TopCompanies[i].Count > r.TopCompanies[j].Count
	})
	if len(r.TopCompanies) > topCompanies {
		r.TopCompanies = r.TopCompanies[:topCompanies]
	}
}

// ExitCode is 0 when the run worked, including a search that matched nothing.
func (r Report) ExitCode() int {
	switch r.Outcome {
	case OutcomeCollected, OutcomeNoResults:
		return 0
	default:
		return 1
	}
}

// Diagnostic is the one-line explanation printed for the outcome.
func (r Report) Diagnostic() string {
	switch r.Outcome {
	case OutcomeCollected:
		return fmt.Sprintf("Saved %s jobs to %s", humanize.Comma(int64(r.Saved)), r.File)
	case OutcomeNoResults:
		return "No job listings matched this search. Try a different search term or location. No file written."
	case OutcomeStructureChanged:
		return fmt.Sprintf("Could not find the job listing container; the website structure may have changed. No file written. (%v)", r.Err)
	case OutcomeTimedOut:
		return fmt.Sprintf("Timed out waiting for page content to load. No file written. (%v)", r.Err)
	case OutcomeFetchFailed:
		return fmt.Sprintf("Error fetching the search page. No file written. (%v)", r.Err)
	case OutcomeInterrupted:
		return "Interrupted before the run finished. No file written."
	default:
		return fmt.Sprintf("An unexpected error occurred. No file written. (%v)", r.Err)
	}
}

func PrintReport(r Report) {
	utils.Section("Scrape summary")

	switch r.Outcome {
	case OutcomeCollected:
		utils.Success("%s", r.Diagnostic())
	case OutcomeNoResults:
		utils.Warn("%s", r.Diagnostic())
	default:
		utils.Error("%s", r.Diagnostic())
	}

	if r.PageErr != nil {
		utils.Warn("Stopped early after page %d: %v", r.Pages, r.PageErr)
	}

	rows := pterm.TableData{
		{"Metric", "Value"},
		{"Source", r.Source},
		{"Query", r.Query},
		{"Outcome", r.Outcome.String()},
		{"Pages read", humanize.Comma(int64(r.Pages))},
		{"Stopped because", stopText(r.Stop)},
		{"Listings scraped", humanize.Comma(int64(r.Scraped))},
		{"Duplicates dropped", humanize.Comma(int64(r.Duplicates))},
		{"Listings saved", humanize.Comma(int64(r.Saved))},
	}
	for _, field := range []string{scraper.FieldTitle, scraper.FieldCompany, scraper.FieldLocation, scraper.FieldLink} {
		if n := r.MissingFields[field]; n > 0 {
			rows = append(rows, []string{"Missing " + field, humanize.Comma(int64(n))})
		}
	}
	if r.File != "" {
		rows = append(rows, []string{"Output file", r.File})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		utils.Debug("render summary: %v", err)
	}

	if len(r.TopCompanies) > 0 {
		companies := pterm.TableData{{"#", "Company", "Listings"}}
		for i, c := range r.TopCompanies {
			companies = append(companies, []string{fmt.Sprint(i + 1), c.Company, humanize.Comma(int64(c.Count))})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(companies).Render(); err != nil {
			utils.Debug("render companies: %v", err)
		}
	}

	if len(r.ListingsByLocation) > 0 {
		locations := pterm.TableData{{"Location", "Listings"}}
		for _, loc := range sortedLocations(r.ListingsByLocation) {
			locations = append(locations, []string{loc, humanize.Comma(int64(r.ListingsByLocation[loc]))})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(locations).Render(); err != nil {
			utils.Debug("render locations: %v", err)
		}
	}
}

func stopText(s scraper.StopReason) string {
	if s == "" {
		return "-"
	}
	return string(s)
}

func sortedLocations(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
