// Package store persists shortlists to Postgres and serializes batch
// runs with a Redis lock.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobradar/jobradar/internal/pipeline"
)

// Store wraps a pgx pool. The pipeline's contract ends at producing the
// ranked list; the store does one upsert per surviving posting and does
// not retry.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and verifies connectivity.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the jobs and applications tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			source     TEXT NOT NULL,
			id         TEXT NOT NULL,
			title      TEXT,
			company    TEXT,
			url        TEXT,
			created_at TEXT,
			last_seen  TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (source, id)
		)`)
	if err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS applications (
			source     TEXT NOT NULL,
			job_id     TEXT NOT NULL,
			track      TEXT,
			note       TEXT,
			applied_at TIMESTAMPTZ,
			PRIMARY KEY (source, job_id)
		)`)
	if err != nil {
		return fmt.Errorf("create applications table: %w", err)
	}
	return nil
}

// UpsertShortlist inserts every posting, advancing last_seen for ids
// this run re-observed. Returns how many rows were touched.
func (s *Store) UpsertShortlist(ctx context.Context, shortlist []*pipeline.Scored, seenAt time.Time) (upserted int, err error) {
	for _, item := range shortlist {
		j := item.Job
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO jobs (source, id, title, company, url, created_at, last_seen)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (source, id) DO UPDATE SET last_seen = EXCLUDED.last_seen`,
			string(j.Source), j.ID, j.Title, j.Company, j.URL, j.CreatedAt, seenAt,
		)
		if err != nil {
			return upserted, fmt.Errorf("upsert %s/%s: %w", j.Source, j.ID, err)
		}
		upserted += int(tag.RowsAffected())
	}
	return upserted, nil
}
