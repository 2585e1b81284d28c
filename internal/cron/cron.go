// Package cron re-runs the collection fetches on a schedule while a user is
// logged in.
package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// refreshTimeout bounds one scheduled refresh
const refreshTimeout = 30 * time.Second

// Refresher is the part of the session store the scheduler drives
type Refresher interface {
	IsAuthenticated() bool
	RefreshAll(ctx context.Context) error
}

// Scheduler runs Refresher.RefreshAll on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	target Refresher
	logger zerolog.Logger
}

// NewScheduler parses schedule (standard cron fields or descriptors such as
// "@every 5m"). An empty schedule yields a scheduler that never fires.
func NewScheduler(schedule string, target Refresher, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		target: target,
		logger: logger.With().Str("component", "refresh_scheduler").Logger(),
	}
	if schedule == "" {
		return s, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, s.refresh); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.cron = c
	return s, nil
}

// Start begins firing on the schedule
func (s *Scheduler) Start() {
	if s.cron == nil {
		s.logger.Info().Msg("Scheduled refresh disabled")
		return
	}
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduled refresh started")
}

// Stop halts the schedule and waits for a running refresh or ctx
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Scheduled refresh still running at shutdown")
	}
}

func (s *Scheduler) refresh() {
	if !s.target.IsAuthenticated() {
		s.logger.Debug().Msg("Skipping scheduled refresh while logged out")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := s.target.RefreshAll(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled refresh failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Scheduled refresh finished")
}
