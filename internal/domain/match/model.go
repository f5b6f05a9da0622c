package match

import (
	"fmt"
	"time"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

func ParseResult(raw string) (Result, error) {
	switch Result(raw) {
	case ResultWin:
		return ResultWin, nil
	case ResultLoss:
		return ResultLoss, nil
	default:
		return "", fmt.Errorf("unknown match result %q", raw)
	}
}

// Processed is the write-once record of a match the scoring job has already
// applied. Its existence is the idempotency witness: a second observation of
// the same real-world match, from either side, resolves to the same ID and
// is skipped.
type Processed struct {
	MatchID      string
	EliteName    string
	OpponentName string
	Result       Result
	WinnerName   string
	LoserName    string
	// PlayedAt is the upstream creation time of the match; the per-elite
	// fetch watermark is the max PlayedAt across processed matches.
	PlayedAt    time.Time
	ProcessedAt time.Time
}
