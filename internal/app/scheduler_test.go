package app

import (
	"context"
	"testing"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/scoring"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/infrastructure/repository/memory"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

type staticIterator struct {
	events []usecase.MatchEvent
	index  int
}

func (it *staticIterator) Next(_ context.Context) (usecase.MatchEvent, bool) {
	if it.index >= len(it.events) {
		return usecase.MatchEvent{}, false
	}
	event := it.events[it.index]
	it.index++
	return event, true
}

func (it *staticIterator) Err() error          { return nil }
func (it *staticIterator) Skipped() (int, int) { return 0, 0 }

type staticSource struct {
	feeds map[string][]usecase.MatchEvent
}

func (s *staticSource) Matches(competitor string, _ time.Time) usecase.MatchIterator {
	return &staticIterator{events: s.feeds[competitor]}
}

type staticProfiles struct{}

func (staticProfiles) AvatarURL(context.Context, string) string {
	return "https://cdn.example/avatar.png"
}

func TestSchedulerRunsStartupPass(t *testing.T) {
	elites := memory.NewEliteRepository()
	hunters := memory.NewHunterRepository()
	matches := memory.NewMatchRepository()
	wins := memory.NewWinRecordRepository()

	err := elites.Create(context.Background(), elite.Elite{
		Name:          "VIP862924621",
		PointsEarned:  25,
		PointsPerLoss: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	source := &staticSource{feeds: map[string][]usecase.MatchEvent{
		"VIP862924621": {{
			PlayedAt:     time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
			Result:       match.ResultLoss,
			OpponentID:   "p-7",
			OpponentName: "Sam",
		}},
	}}

	badges := usecase.NewBadgeService(hunters, wins, 2, logging.NewNop())
	update := usecase.NewLeaderboardUpdateService(
		elites, hunters, matches, source, staticProfiles{}, badges,
		usecase.UpdateServiceConfig{},
		logging.NewNop(),
	)

	// A long interval and no windows: only the startup pass can run before
	// the context expires.
	scheduler := NewScheduler(update, badges, SchedulerConfig{
		Interval: time.Hour,
	}, logging.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx)

	item, found, err := elites.GetByName(context.Background(), "VIP862924621")
	if err != nil || !found {
		t.Fatalf("elite lookup: found=%v err=%v", found, err)
	}
	if item.PointsEarned != 22 {
		t.Fatalf("elite points = %d, want 22 after startup pass", item.PointsEarned)
	}
	if _, found, _ := hunters.GetByName(context.Background(), "Sam"); !found {
		t.Fatal("hunter account not created by startup pass")
	}
}

func TestNextWindowRun(t *testing.T) {
	lead := 5 * time.Minute
	windows := scoring.Schedule{
		"VIP862924621": {
			{
				Start: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 1, 18, 0, 0, 0, time.UTC),
			},
		},
		"MontalesGOC": {
			{
				Start: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	t.Run("picks earliest upcoming boundary", func(t *testing.T) {
		after := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		at, ok := nextWindowRun(windows, lead, after)
		if !ok {
			t.Fatal("expected an upcoming run")
		}
		want := time.Date(2026, time.March, 1, 11, 55, 0, 0, time.UTC)
		if !at.Equal(want) {
			t.Fatalf("next run = %s, want %s", at, want)
		}
	})

	t.Run("skips past boundaries", func(t *testing.T) {
		after := time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC)
		at, ok := nextWindowRun(windows, lead, after)
		if !ok {
			t.Fatal("expected an upcoming run")
		}
		want := time.Date(2026, time.March, 1, 17, 55, 0, 0, time.UTC)
		if !at.Equal(want) {
			t.Fatalf("next run = %s, want %s", at, want)
		}
	})

	t.Run("exhausted schedule", func(t *testing.T) {
		after := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
		if _, ok := nextWindowRun(windows, lead, after); ok {
			t.Fatal("expected no upcoming run after all windows closed")
		}
	})

	t.Run("empty schedule", func(t *testing.T) {
		if _, ok := nextWindowRun(scoring.Schedule{}, lead, time.Now()); ok {
			t.Fatal("expected no run for empty schedule")
		}
	})
}
