package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"job-scraper/models"
	"job-scraper/utils"
)

// ErrNoRecords is returned instead of creating an empty file.
var ErrNoRecords = errors.New("no records to write")

// CSVWriter saves listings as CSV files under one directory.
type CSVWriter struct {
	dir string
}

func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Write saves listings to dir/name and returns the path.
// Creates the output directory if it does not exist.
//
// CSV columns: Job Title, Company, Location, Link
func (w *CSVWriter) Write(name string, listings []models.Listing) (string, error) {
	if len(listings) == 0 {
		return "", ErrNoRecords
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(models.CSVHeader); err != nil {
		return "", fmt.Errorf("csv write error: %w", err)
	}
	for _, l := range listings {
		if err := writer.Write(l.Row()); err != nil {
			return "", fmt.Errorf("csv write error: %w", err)
		}
	}

	// Flush before checking, or buffered rows never reach the file.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("csv write error: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	utils.Success("Saved %d listings → %s", len(listings), path)
	return path, nil
}
