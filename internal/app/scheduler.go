package app

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/scoring"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

type SchedulerConfig struct {
	// Interval is the steady cadence between full update passes.
	Interval time.Duration
	// WindowLead schedules an extra pass this far ahead of every bonus
	// window boundary, so point values flip on fresh data.
	WindowLead time.Duration
	Windows    scoring.Schedule
	Now        func() time.Time
}

// Scheduler drives periodic leaderboard updates in-process: a fixed-interval
// loop plus one-shot passes just before each bonus window opens or closes.
type Scheduler struct {
	update   *usecase.LeaderboardUpdateService
	badges   *usecase.BadgeService
	interval time.Duration
	lead     time.Duration
	windows  scoring.Schedule
	now      func() time.Time
	logger   *logging.Logger
}

func NewScheduler(update *usecase.LeaderboardUpdateService, badges *usecase.BadgeService, cfg SchedulerConfig, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	lead := cfg.WindowLead
	if lead <= 0 {
		lead = 5 * time.Minute
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Scheduler{
		update:   update,
		badges:   badges,
		interval: interval,
		lead:     lead,
		windows:  cfg.Windows,
		now:      nowFn,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	var wg conc.WaitGroup
	wg.Go(func() { s.runInterval(ctx) })
	wg.Go(func() { s.runWindowEdges(ctx) })
	wg.Wait()
}

func (s *Scheduler) runInterval(ctx context.Context) {
	// First pass fires immediately so a fresh deploy is populated before
	// the first full interval elapses.
	s.runOnce(ctx, "startup")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, "interval")
		}
	}
}

func (s *Scheduler) runWindowEdges(ctx context.Context) {
	after := s.now()
	for {
		at, ok := nextWindowRun(s.windows, s.lead, after)
		if !ok {
			return
		}

		timer := time.NewTimer(at.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx, "window-edge")
		}
		after = at
	}
}

func (s *Scheduler) runOnce(ctx context.Context, trigger string) {
	summary, err := s.update.Run(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled update failed", "trigger", trigger, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled update finished",
		"trigger", trigger,
		"accounts", summary.AccountsTotal,
		"failed", summary.AccountsFailed,
		"applied", summary.MatchesApplied,
	)

	updated, err := s.badges.ReconcileAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled badge reconcile failed", "trigger", trigger, "error", err)
		return
	}
	if updated > 0 {
		s.logger.InfoContext(ctx, "scheduled badge reconcile finished", "trigger", trigger, "updated", updated)
	}
}

// nextWindowRun returns the earliest lead-adjusted window boundary strictly
// after the given time.
func nextWindowRun(windows scoring.Schedule, lead time.Duration, after time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	consider := func(at time.Time) {
		if !at.After(after) {
			return
		}
		if !found || at.Before(next) {
			next = at
			found = true
		}
	}

	for _, list := range windows {
		for _, w := range list {
			consider(w.Start.Add(-lead))
			consider(w.End.Add(-lead))
		}
	}

	return next, found
}
