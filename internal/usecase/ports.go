package usecase

import (
	"context"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
)

// MatchEvent is one upstream match observation from a competitor's
// perspective, already normalized by the fetching layer.
type MatchEvent struct {
	PlayedAt     time.Time
	Result       match.Result
	OpponentID   string
	OpponentName string
	EventTag     string
}

// MatchIterator is a finite lazy sequence of match events. Next returns
// false at exhaustion, after which Err reports whether the sequence was
// truncated by an upstream failure. Truncation is recoverable: the watermark
// has not advanced past the missing range, so the next run refetches it.
type MatchIterator interface {
	Next(ctx context.Context) (MatchEvent, bool)
	Err() error
	// Skipped reports events dropped during fetching (CPU opponents,
	// malformed payload entries), for run summaries.
	Skipped() (cpu int, malformed int)
}

// MatchSource pages through a competitor's match history, newest ranges
// first, yielding only events strictly newer than since.
type MatchSource interface {
	Matches(competitor string, since time.Time) MatchIterator
}

// ProfileSource resolves a player's avatar. Implementations fall back to a
// fixed default on any upstream failure, so callers treat the result as
// best-effort and never fail hunter creation on it.
type ProfileSource interface {
	AvatarURL(ctx context.Context, playerID string) string
}
