package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS analysis_reports (
		id            UUID PRIMARY KEY,
		product_name  TEXT NOT NULL,
		brand         TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		overall_score DOUBLE PRECISION,
		scored        BOOLEAN NOT NULL DEFAULT FALSE,
		analyzed_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS analysis_reports_analyzed_at_idx ON analysis_reports (analyzed_at DESC);
`

// ReportRepository handles PostgreSQL operations for analysis history
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EnsureSchema creates the reports table when it does not exist
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create analysis_reports schema: %w", err)
	}
	return nil
}

// Save inserts one analysis record
func (r *ReportRepository) Save(ctx context.Context, rec *domain.ReportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.AnalyzedAt.IsZero() {
		rec.AnalyzedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analysis_reports (
			id, product_name, brand, category, overall_score, scored, analyzed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var overall sql.NullFloat64
	if rec.OverallScore != nil {
		overall = sql.NullFloat64{Float64: *rec.OverallScore, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ProductName,
		rec.Brand,
		rec.Category,
		overall,
		rec.Scored,
		rec.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis report: %w", err)
	}
	return nil
}

// List returns the newest records first
func (r *ReportRepository) List(ctx context.Context, limit int) ([]domain.ReportRecord, error) {
	query := `
		SELECT id, product_name, brand, category, overall_score, scored, analyzed_at
		FROM analysis_reports
		ORDER BY analyzed_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis reports: %w", err)
	}
	defer rows.Close()

	records := []domain.ReportRecord{}
	for rows.Next() {
		var (
			rec     domain.ReportRecord
			overall sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.ProductName, &rec.Brand, &rec.Category, &overall, &rec.Scored, &rec.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis report: %w", err)
		}
		if overall.Valid {
			v := overall.Float64
			rec.OverallScore = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis reports: %w", err)
	}

	return records, nil
}

// DeleteOlderThan purges records analysed before cutoff
func (r *ReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analysis_reports WHERE analyzed_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge analysis reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged reports: %w", err)
	}
	return n, nil
}
