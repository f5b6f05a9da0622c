package match

import (
	"context"
	"time"
)

// Repository describes processed-match persistence needs from use cases.
type Repository interface {
	// Claim inserts the record if its MatchID is unseen and reports whether
	// the insert happened. A false return is the normal duplicate path: the
	// match was already applied by an earlier run or by the opposing side's
	// pass. The uniqueness check and the insert are one atomic step.
	Claim(ctx context.Context, item Processed) (bool, error)
	// IsProcessed reports whether any of the given IDs is already recorded.
	// Callers pass the canonical ID plus legacy-scheme equivalents.
	IsProcessed(ctx context.Context, matchIDs ...string) (bool, error)
	// Watermark returns the latest PlayedAt across processed matches that
	// involve the elite, from either perspective.
	Watermark(ctx context.Context, eliteName string) (time.Time, bool, error)
	CountByElite(ctx context.Context, eliteName string) (int64, error)
}
