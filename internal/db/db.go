// Package db provides optional PostgreSQL persistence for finished analyses.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/board-panel/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveAnalysis writes a finished job record through to the analyses table.
// The in-memory store remains the source of truth for status reads; this is
// a write-through archive of terminal records.
func (db *DB) SaveAnalysis(ctx context.Context, job *types.Job) error {
	var resultJSON []byte
	if job.Result != nil {
		var err error
		resultJSON, err = json.Marshal(job.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis result: %w", err)
		}
	}

	profileJSON, err := json.Marshal(job.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal startup profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, status, submitted_at, completed_at, profile, result, error, error_kind)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET status = $2, completed_at = $4, result = $6, error = $7, error_kind = $8`,
		job.ID, string(job.Status), job.SubmittedAt, job.CompletedAt,
		profileJSON, resultJSON, job.Error, job.ErrorKind,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", job.ID, err)
	}
	return nil
}
