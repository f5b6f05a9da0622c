package badge

import (
	"context"
	"time"
)

// WinRecord is one hunter victory over an elite. Append-only; badges are
// always recomputed from the full set, never maintained incrementally.
type WinRecord struct {
	MatchID           string
	HunterName        string
	DefeatedEliteName string
	RecordedAt        time.Time
}

// WinRecordRepository describes win-record persistence needs.
type WinRecordRepository interface {
	// Create appends the record unless its MatchID is already present,
	// keeping at most one win record per (hunter, match).
	Create(ctx context.Context, item WinRecord) (bool, error)
	ListByHunter(ctx context.Context, hunterName string) ([]WinRecord, error)
	ListHunterNames(ctx context.Context) ([]string, error)
}
