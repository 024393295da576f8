// Package scheduler wires the cron trigger that periodically runs the
// notification dispatch and library cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"earnbot/internal/notify"
)

// Runner executes one notification batch.
type Runner interface {
	Run(ctx context.Context) (notify.RunSummary, error)
}

// Cleaner removes expired saved listings.
type Cleaner interface {
	DeleteExpiredSaved(ctx context.Context) (int64, error)
}

// Scheduler wraps robfig/cron and manages the periodic dispatch loop.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	cleaner Cleaner
	spec    string
	log     *slog.Logger
}

// New creates a Scheduler firing on the given cron spec (e.g. "0 * * * *").
func New(runner Runner, cleaner Cleaner, spec string, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		runner:  runner,
		cleaner: cleaner,
		spec:    spec,
		log:     log,
	}
}

// Start registers the job and starts the scheduler. It also runs one
// batch immediately so a restart doesn't wait for the next tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("register cron job: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "spec", s.spec)

	go s.runOnce(ctx)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error("dispatch run", "error", err)
		return
	}
	s.log.Info("dispatch run finished",
		"listings", summary.ListingsProcessed,
		"users", summary.UsersConsidered,
		"sent", summary.NotificationsSent,
	)

	count, err := s.cleaner.DeleteExpiredSaved(ctx)
	if err != nil {
		s.log.Error("cleanup expired saved", "error", err)
		return
	}
	if count > 0 {
		s.log.Info("cleaned up expired saved listings", "count", count)
	}
}
