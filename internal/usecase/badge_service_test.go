package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/infrastructure/repository/memory"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

func TestRecordEliteTakedownIsKeyedOnMatchID(t *testing.T) {
	hunters := memory.NewHunterRepository()
	wins := memory.NewWinRecordRepository()
	if _, err := hunters.Create(context.Background(), hunter.Hunter{Name: "Sam"}); err != nil {
		t.Fatal(err)
	}
	svc := NewBadgeService(hunters, wins, 2, logging.NewNop())

	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := svc.RecordEliteTakedown(context.Background(), "Sam", "EliteA", "m-1", at); err != nil {
			t.Fatalf("takedown %d: %v", i, err)
		}
	}

	records, err := wins.ListByHunter(context.Background(), "Sam")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("win records = %d, want 1 per match", len(records))
	}
}

func TestReconcileAllRecomputesBadges(t *testing.T) {
	hunters := memory.NewHunterRepository()
	wins := memory.NewWinRecordRepository()
	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	// Sam: 5 total wins over 3 unique elites. Rio: 1 win, stale badge.
	if _, err := hunters.Create(context.Background(), hunter.Hunter{Name: "Sam"}); err != nil {
		t.Fatal(err)
	}
	if _, err := hunters.Create(context.Background(), hunter.Hunter{Name: "Rio", Badge: badge.EliteKiller}); err != nil {
		t.Fatal(err)
	}
	samElites := []string{"EliteA", "EliteB", "EliteC", "EliteA", "EliteB"}
	for i, eliteName := range samElites {
		if _, err := wins.Create(context.Background(), badge.WinRecord{
			MatchID:           fmt.Sprintf("sam-%d", i),
			HunterName:        "Sam",
			DefeatedEliteName: eliteName,
			RecordedAt:        at,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := wins.Create(context.Background(), badge.WinRecord{
		MatchID: "rio-0", HunterName: "Rio", DefeatedEliteName: "EliteA", RecordedAt: at,
	}); err != nil {
		t.Fatal(err)
	}

	svc := NewBadgeService(hunters, wins, 4, logging.NewNop())
	updated, err := svc.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAll: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	sam, _, _ := hunters.GetByName(context.Background(), "Sam")
	want := badge.EliteKiller + "," + badge.EliteSlayer
	if sam.Badge != want {
		t.Errorf("Sam badge = %q, want %q", sam.Badge, want)
	}
	rio, _, _ := hunters.GetByName(context.Background(), "Rio")
	if rio.Badge != "" {
		t.Errorf("Rio badge = %q, want cleared", rio.Badge)
	}
}
