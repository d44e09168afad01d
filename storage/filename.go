package storage

import (
	"fmt"
	"time"

	"job-scraper/models"
	"job-scraper/utils"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02_15-04-05"
)

// IndeedFilename is <job>_<location>_jobs_<YYYY-MM-DD>.csv with both parts slugged.
func IndeedFilename(q models.SearchQuery, t time.Time) string {
	return fmt.Sprintf("%s_%s_jobs_%s.csv", utils.Slug(q.Term()), utils.Slug(q.Location()), t.Format(dateLayout))
}

// GoogleFilename is google-jobs_<job>_<YYYY-MM-DD_HH-MM-SS>.csv.
func GoogleFilename(q models.SearchQuery, t time.Time) string {
	return fmt.Sprintf("google-jobs_%s_%s.csv", utils.Slug(q.Term()), t.Format(dateTimeLayout))
}
