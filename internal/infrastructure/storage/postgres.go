package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"ArticleSummarizer/internal/domain"
	"ArticleSummarizer/internal/ports"
)

const summariesTable = "article_summaries"

const createSummariesTable = `CREATE TABLE IF NOT EXISTS article_summaries (
    id         BIGSERIAL PRIMARY KEY,
    run_id     TEXT        NOT NULL UNIQUE,
    url        TEXT        NOT NULL,
    model      TEXT        NOT NULL,
    chunks     INTEGER     NOT NULL,
    summary    TEXT        NOT NULL,
    file_path  TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
)`

// PostgresRepository keeps a history row for every saved summary.
type PostgresRepository struct {
	db  *sql.DB
	psq sq.StatementBuilderType
}

var _ ports.Publisher = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:  db,
		psq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Name identifies the publisher in logs.
func (r *PostgresRepository) Name() string {
	return "postgres"
}

// EnsureSchema creates the summaries table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, createSummariesTable); err != nil {
		return fmt.Errorf("create %s: %w", summariesTable, err)
	}
	return nil
}

// Publish inserts the summary row.
func (r *PostgresRepository) Publish(ctx context.Context, summary domain.SavedSummary) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.psq.
		Insert(summariesTable).
		Columns("run_id", "url", "model", "chunks", "summary", "file_path", "created_at").
		Values(summary.RunID, summary.URL, summary.Model, summary.Chunks, summary.Text, summary.Path, summary.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
