package repository

import (
	"context"
	"time"

	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

// Store keeps the history of completed analyses
type Store interface {
	Save(ctx context.Context, rec *domain.ReportRecord) error
	List(ctx context.Context, limit int) ([]domain.ReportRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
