package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/robfig/cron/v3"
)

const (
	SweepSpec = "@every 1m"
	PurgeSpec = "0 0 0 * * *" // nightly at 12:00 AM
)

// Sweeper drops expired rate-limit windows
type Sweeper interface {
	Sweep() int
}

// Purger deletes report history older than the cutoff
type Purger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	cron      *cron.Cron
	sweeper   Sweeper
	purger    Purger
	retention time.Duration
	lg        *slog.Logger
	now       func() time.Time
}

// NewScheduler wires the housekeeping jobs. A nil sweeper or purger, or a
// non-positive retention, leaves the matching job out.
func NewScheduler(sweeper Sweeper, purger Purger, retention time.Duration, lg *slog.Logger) *Scheduler {
	if lg == nil {
		lg = slog.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		sweeper:   sweeper,
		purger:    purger,
		retention: retention,
		lg:        lg.With(logging.Module("scheduler")),
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if s.sweeper != nil {
		if _, err := s.cron.AddFunc(SweepSpec, s.SweepRateLimits); err != nil {
			return fmt.Errorf("failed to create sweep job: %w", err)
		}
	}

	if s.purger != nil && s.retention > 0 {
		if _, err := s.cron.AddFunc(PurgeSpec, s.PurgeReports); err != nil {
			return fmt.Errorf("failed to create purge job: %w", err)
		}
	}

	s.cron.Start()
	s.lg.Info("cron scheduler started", slog.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop halts the loop and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.lg.Warn("cron jobs still running at shutdown")
	}
}

// Jobs reports the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) SweepRateLimits() {
	if n := s.sweeper.Sweep(); n > 0 {
		s.lg.Debug("swept expired rate-limit windows", slog.Int("removed", n))
	}
}

func (s *Scheduler) PurgeReports() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	n, err := s.purger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.lg.Error("report purge failed", logging.Err(err))
		return
	}
	s.lg.Info("report purge completed", slog.Int64("removed", n), slog.Time("cutoff", cutoff))
}
