package services

import (
	"context"
	"fmt"
	"strings"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper"
	"job-scraper/storage"
	"job-scraper/utils"
)

// Deliver classifies a finished scrape and, when records were collected,
// cleans them, writes the CSV file and exports to Postgres if configured.
// Nothing is written for any other outcome.
func Deliver(ctx context.Context, cfg *config.Config, source, query, filename string, res scraper.Result, scrapeErr error) Report {
	report := NewReport(source, query, res, scrapeErr)
	if report.Outcome != OutcomeCollected {
		return report
	}

	cleaned := CleanListings(res.Listings)
	report.Duplicates = len(res.Listings) - len(cleaned)
	report.fill(cleaned)

	path, err := storage.NewCSVWriter(cfg.OutputDir).Write(filename, cleaned)
	if err != nil {
		report.Outcome = OutcomeFailed
		report.Err = fmt.Errorf("save CSV: %w", err)
		return report
	}
	report.File = path
	report.Saved = len(cleaned)

	if cfg.PostgresDSN != "" {
		report.Exported, report.ExportErr = export(ctx, cfg, source, query, cleaned)
		if report.ExportErr != nil {
			utils.Warn("Postgres export failed, CSV kept: %v", report.ExportErr)
		} else {
			utils.Success("Exported %d new listings to PostgreSQL", report.Exported)
		}
	}

	return report
}

func export(ctx context.Context, cfg *config.Config, source, query string, listings []models.Listing) (int, error) {
	pg, err := storage.NewPostgresWriter(ctx, cfg.PostgresDSN, cfg.MaxRetries)
	if err != nil {
		return 0, err
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return pg.WriteBatch(ctx, source, query, listings)
}

// CleanListings trims every field, puts the sentinel back where trimming left
// nothing and drops repeated links within the run. Listings without a link are
// never treated as duplicates.
func CleanListings(listings []models.Listing) []models.Listing {
	seen := make(map[string]bool)
	cleaned := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		l.Title = orSentinel(l.Title)
		l.Company = orSentinel(l.Company)
		l.Location = orSentinel(l.Location)
		l.Link = orSentinel(l.Link)

		if l.HasLink() {
			if seen[l.Link] {
				continue
			}
			seen[l.Link] = true
		}
		cleaned = append(cleaned, l)
	}

	return cleaned
}

func orSentinel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NotAvailable
	}
	return s
}
