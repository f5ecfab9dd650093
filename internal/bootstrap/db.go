package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hedamo/hedamo-backend/config"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/repository"
	"github.com/hedamo/hedamo-backend/internal/storage/postgres"
)

// OpenReportStore picks the analysis history backend. Without DB_HOST the
// history lives in memory and the returned *sql.DB is nil.
func OpenReportStore(ctx context.Context, cfg config.DatabaseConfig, lg *slog.Logger) (repository.Store, *sql.DB, error) {
	if !cfg.Enabled() {
		lg.Info("DB_HOST not set, keeping report history in memory")
		return repository.NewMemoryStore(repository.DefaultMemoryCapacity), nil, nil
	}

	db, err := postgres.NewConnection(ctx, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}

	repo := repository.NewReportRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	lg.Info("report history stored in postgres", slog.String("host", cfg.Host), slog.String("db", cfg.Name))
	return repo, db, nil
}
