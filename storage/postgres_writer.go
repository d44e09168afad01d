package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-scraper/models"
	"job-scraper/utils"
)

// PostgresWriter exports a run's listings to the job_listings table.
// The scrapers never read the table back.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

// NewPostgresWriter connects to dsn, retrying the ping up to maxRetries times.
func NewPostgresWriter(ctx context.Context, dsn string, maxRetries int) (*PostgresWriter, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	err = utils.Retry(ctx, maxRetries, 2*time.Second, utils.Sleep, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS job_listings (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		query TEXT NOT NULL,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL,
		link TEXT,
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (source, link)
	);

	CREATE INDEX IF NOT EXISTS idx_job_listings_company ON job_listings(company);
	CREATE INDEX IF NOT EXISTS idx_job_listings_location ON job_listings(location);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// WriteBatch inserts listings in one batch. Listings without a link are
// stored with a NULL link, so they never collide on the unique key.
func (w *PostgresWriter) WriteBatch(ctx context.Context, source, query string, listings []models.Listing) (int, error) {
	if len(listings) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	insertSQL := `
	INSERT INTO job_listings (source, query, title, company, location, link)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (source, link) DO NOTHING;
	`

	for _, l := range listings {
		batch.Queue(insertSQL, strings.ToLower(source), query, l.Title, l.Company, l.Location, nullableLink(l))
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := range listings {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func nullableLink(l models.Listing) *string {
	if !l.HasLink() {
		return nil
	}
	link := l.Link
	return &link
}
