package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/scoring"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

// epochDefault is the watermark for elites with no processed history yet.
var epochDefault = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// AccountSummary reports one elite's pass within a run.
type AccountSummary struct {
	EliteName        string `json:"eliteName"`
	MatchesApplied   int    `json:"matchesApplied"`
	Duplicates       int    `json:"duplicates"`
	CPUSkipped       int    `json:"cpuSkipped"`
	MalformedSkipped int    `json:"malformedSkipped"`
	Truncated        bool   `json:"truncated"`
	Error            string `json:"error,omitempty"`
}

// RunSummary is the externally observable result of one job invocation.
type RunSummary struct {
	StartedAt      time.Time        `json:"startedAt"`
	FinishedAt     time.Time        `json:"finishedAt"`
	AccountsTotal  int              `json:"accountsTotal"`
	AccountsFailed int              `json:"accountsFailed"`
	MatchesApplied int              `json:"matchesApplied"`
	Accounts       []AccountSummary `json:"accounts"`
}

type UpdateServiceConfig struct {
	// BonusWindows maps competitor names to their configured bonus
	// intervals. Injected so runs and tests share one lookup table.
	BonusWindows scoring.Schedule
	// Epoch overrides the default first-run watermark.
	Epoch time.Time
	Now   func() time.Time
}

// LeaderboardUpdateService drives the ingestion pass: for each tracked
// elite it fetches new matches past the watermark, claims each unseen match
// exactly once, applies the scoring rules, and maintains hunter accounts,
// win records, and badges.
type LeaderboardUpdateService struct {
	elites   elite.Repository
	hunters  hunter.Repository
	matches  match.Repository
	source   MatchSource
	profiles ProfileSource
	badges   *BadgeService
	windows  scoring.Schedule
	epoch    time.Time
	now      func() time.Time
	logger   *logging.Logger
}

func NewLeaderboardUpdateService(
	elites elite.Repository,
	hunters hunter.Repository,
	matches match.Repository,
	source MatchSource,
	profiles ProfileSource,
	badges *BadgeService,
	cfg UpdateServiceConfig,
	logger *logging.Logger,
) *LeaderboardUpdateService {
	if logger == nil {
		logger = logging.Default()
	}
	epoch := cfg.Epoch
	if epoch.IsZero() {
		epoch = epochDefault
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &LeaderboardUpdateService{
		elites:   elites,
		hunters:  hunters,
		matches:  matches,
		source:   source,
		profiles: profiles,
		badges:   badges,
		windows:  cfg.BonusWindows,
		epoch:    epoch,
		now:      nowFn,
		logger:   logger,
	}
}

// Run executes one full pass over all tracked elites. Accounts are
// processed sequentially: a cross-elite match moves points on two shared
// accounts, and ordered read-modify-write is what keeps a pair observed from
// both sides in the same run from double-applying. A failure in one
// account's pass is recorded in the summary and the run moves on.
func (s *LeaderboardUpdateService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardUpdateService.Run")
	defer span.End()

	summary := RunSummary{StartedAt: s.now().UTC()}

	elites, err := s.elites.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: list tracked elites: %v", ErrDependencyUnavailable, err)
	}
	summary.AccountsTotal = len(elites)

	for _, tracked := range elites {
		account := s.processElite(ctx, tracked)
		if account.Error != "" {
			summary.AccountsFailed++
		}
		summary.MatchesApplied += account.MatchesApplied
		summary.Accounts = append(summary.Accounts, account)
	}

	summary.FinishedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "leaderboard update finished",
		"accounts", summary.AccountsTotal,
		"failed", summary.AccountsFailed,
		"matches_applied", summary.MatchesApplied,
	)
	return summary, nil
}

func (s *LeaderboardUpdateService) processElite(ctx context.Context, tracked elite.Elite) AccountSummary {
	account := AccountSummary{EliteName: tracked.Name}

	watermark, found, err := s.matches.Watermark(ctx, tracked.Name)
	if err != nil {
		account.Error = fmt.Sprintf("load watermark: %v", err)
		s.logger.WarnContext(ctx, "elite pass failed", "elite", tracked.Name, "error", err)
		return account
	}
	if !found {
		watermark = s.epoch
	}

	it := s.source.Matches(tracked.Name, watermark)
	events := s.collectEvents(ctx, it)
	if err := it.Err(); err != nil {
		// Partial data is fine: the watermark has not moved past the
		// missing range, so the next run refetches it.
		account.Truncated = true
		s.logger.WarnContext(ctx, "match history truncated", "elite", tracked.Name, "error", err)
	}
	account.CPUSkipped, account.MalformedSkipped = it.Skipped()

	for _, event := range events {
		applied, err := s.applyEvent(ctx, tracked, event)
		if err != nil {
			account.Error = fmt.Sprintf("apply match at %s: %v", event.PlayedAt.Format(time.RFC3339), err)
			s.logger.WarnContext(ctx, "elite pass aborted", "elite", tracked.Name, "error", err)
			return account
		}
		if applied {
			account.MatchesApplied++
		} else {
			account.Duplicates++
		}
	}

	return account
}

// collectEvents drains the iterator and orders events oldest first, so the
// watermark advances through history in play order.
func (s *LeaderboardUpdateService) collectEvents(ctx context.Context, it MatchIterator) []MatchEvent {
	var events []MatchEvent
	for {
		event, ok := it.Next(ctx)
		if !ok {
			break
		}
		events = append(events, event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PlayedAt.Before(events[j].PlayedAt)
	})
	return events
}

// applyEvent settles one match. Reports false when the match was already
// processed, the normal duplicate path.
func (s *LeaderboardUpdateService) applyEvent(ctx context.Context, tracked elite.Elite, event MatchEvent) (bool, error) {
	canonical := match.Identity(tracked.Name, event.OpponentName, event.PlayedAt)
	knownIDs := []string{
		canonical,
		match.LegacyIdentity(tracked.Name, event.OpponentName, event.PlayedAt),
		match.LegacyIdentity(event.OpponentName, tracked.Name, event.PlayedAt),
	}
	if event.OpponentID != "" && event.OpponentID != event.OpponentName {
		knownIDs = append(knownIDs, match.LegacyIdentity(tracked.Name, event.OpponentID, event.PlayedAt))
	}

	processed, err := s.matches.IsProcessed(ctx, knownIDs...)
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if processed {
		return false, nil
	}

	opponent, opponentIsElite, err := s.elites.GetByName(ctx, event.OpponentName)
	if err != nil {
		return false, fmt.Errorf("classify opponent %s: %w", event.OpponentName, err)
	}

	winner, loser := tracked.Name, event.OpponentName
	if event.Result == match.ResultLoss {
		winner, loser = event.OpponentName, tracked.Name
	}

	// Claiming before applying points makes the uniqueness check and the
	// record insert one atomic step: of two concurrent observers of a fresh
	// match, exactly one proceeds to scoring.
	claimed, err := s.matches.Claim(ctx, match.Processed{
		MatchID:      canonical,
		EliteName:    tracked.Name,
		OpponentName: event.OpponentName,
		Result:       event.Result,
		WinnerName:   winner,
		LoserName:    loser,
		PlayedAt:     event.PlayedAt,
		ProcessedAt:  s.now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("claim match %s: %w", canonical, err)
	}
	if !claimed {
		return false, nil
	}

	deltas := scoring.Score(scoring.Input{
		EliteName:             tracked.Name,
		ElitePointsPerLoss:    tracked.PointsPerLoss,
		OpponentName:          event.OpponentName,
		OpponentPointsPerLoss: opponent.PointsPerLoss,
		OpponentIsElite:       opponentIsElite,
		Result:                event.Result,
		PlayedAt:              event.PlayedAt,
	}, s.windows)

	if deltas.Elite != 0 {
		if err := s.elites.AddPoints(ctx, tracked.Name, deltas.Elite); err != nil {
			return false, fmt.Errorf("credit elite %s: %w", tracked.Name, err)
		}
	}

	if opponentIsElite {
		if deltas.Opponent != 0 {
			if err := s.elites.AddPoints(ctx, event.OpponentName, deltas.Opponent); err != nil {
				return false, fmt.Errorf("credit opposing elite %s: %w", event.OpponentName, err)
			}
		}
		return true, nil
	}

	if event.Result == match.ResultWin {
		// Elite beat a hunter: the hunter is unaffected and no account is
		// created for it.
		return true, nil
	}

	if err := s.settleHunterVictory(ctx, tracked.Name, event, canonical, deltas.Opponent); err != nil {
		return false, err
	}
	return true, nil
}

func (s *LeaderboardUpdateService) settleHunterVictory(ctx context.Context, eliteName string, event MatchEvent, matchID string, points int64) error {
	_, found, err := s.hunters.GetByName(ctx, event.OpponentName)
	if err != nil {
		return fmt.Errorf("load hunter %s: %w", event.OpponentName, err)
	}
	if !found {
		created, err := s.hunters.Create(ctx, hunter.Hunter{
			Name:   event.OpponentName,
			Title:  event.OpponentID,
			Avatar: s.profiles.AvatarURL(ctx, event.OpponentID),
		})
		if err != nil {
			return fmt.Errorf("create hunter %s: %w", event.OpponentName, err)
		}
		if created {
			s.logger.InfoContext(ctx, "hunter account created", "hunter", event.OpponentName)
		}
	}

	// A zero loss value still records the victory: the account, the win
	// record, and the badge recompute all key on the defeat itself.
	if points != 0 {
		if err := s.hunters.AddPoints(ctx, event.OpponentName, points); err != nil {
			return fmt.Errorf("credit hunter %s: %w", event.OpponentName, err)
		}
	}

	if err := s.badges.RecordEliteTakedown(ctx, event.OpponentName, eliteName, matchID, event.PlayedAt); err != nil {
		return fmt.Errorf("record elite takedown by %s: %w", event.OpponentName, err)
	}
	return nil
}
