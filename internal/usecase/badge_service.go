package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

const defaultReconcileWorkers = 8

// BadgeService derives hunter badges from win history. Badges are a cache:
// the win-record log is the source of truth and every update recomputes the
// full set from it.
type BadgeService struct {
	hunters    hunter.Repository
	winRecords badge.WinRecordRepository
	workers    int
	logger     *logging.Logger
}

func NewBadgeService(hunters hunter.Repository, winRecords badge.WinRecordRepository, workers int, logger *logging.Logger) *BadgeService {
	if workers < 1 {
		workers = defaultReconcileWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BadgeService{
		hunters:    hunters,
		winRecords: winRecords,
		workers:    workers,
		logger:     logger,
	}
}

// RecordEliteTakedown appends the win record for one hunter victory over an
// elite and refreshes the hunter's badge string. The append is keyed on the
// match ID, so replaying the same victory leaves both the log and the badge
// untouched.
func (s *BadgeService) RecordEliteTakedown(ctx context.Context, hunterName, defeatedEliteName, matchID string, at time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "BadgeService.RecordEliteTakedown")
	defer span.End()

	created, err := s.winRecords.Create(ctx, badge.WinRecord{
		MatchID:           matchID,
		HunterName:        hunterName,
		DefeatedEliteName: defeatedEliteName,
		RecordedAt:        at,
	})
	if err != nil {
		return fmt.Errorf("append win record: %w", err)
	}
	if !created {
		return nil
	}

	return s.refreshBadge(ctx, hunterName)
}

// ReconcileAll recomputes every hunter's badge string from the win-record
// log. Per-hunter recompute touches no shared account state, so the pass
// fans out across a bounded worker pool.
func (s *BadgeService) ReconcileAll(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "BadgeService.ReconcileAll")
	defer span.End()

	names, err := s.winRecords.ListHunterNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: list hunters with win records: %v", ErrDependencyUnavailable, err)
	}
	if len(names) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("start badge reconcile pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		updated  int
	)
	for _, name := range names {
		name := name
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			changed, err := s.refreshBadgeReport(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if changed {
				updated++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	return updated, firstErr
}

func (s *BadgeService) refreshBadge(ctx context.Context, hunterName string) error {
	_, err := s.refreshBadgeReport(ctx, hunterName)
	return err
}

// refreshBadgeReport recomputes one hunter's badge from scratch and writes
// it back only when it changed. Returns whether a write happened.
func (s *BadgeService) refreshBadgeReport(ctx context.Context, hunterName string) (bool, error) {
	records, err := s.winRecords.ListByHunter(ctx, hunterName)
	if err != nil {
		return false, fmt.Errorf("list win records for %s: %w", hunterName, err)
	}

	uniqueElites := make(map[string]struct{}, len(records))
	for _, record := range records {
		uniqueElites[record.DefeatedEliteName] = struct{}{}
	}
	computed := badge.Compute(len(records), len(uniqueElites))

	current, found, err := s.hunters.GetByName(ctx, hunterName)
	if err != nil {
		return false, fmt.Errorf("load hunter %s: %w", hunterName, err)
	}
	if !found {
		return false, fmt.Errorf("%w: hunter %s has win records but no account", ErrNotFound, hunterName)
	}
	if current.Badge == computed {
		return false, nil
	}

	if err := s.hunters.UpdateBadge(ctx, hunterName, computed); err != nil {
		return false, fmt.Errorf("update badge for %s: %w", hunterName, err)
	}
	s.logger.InfoContext(ctx, "hunter badge updated", "hunter", hunterName, "badge", computed)
	return true, nil
}
