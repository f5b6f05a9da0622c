package scoring

import (
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
)

// Fixed scoring constants. Only the loss value handed to the victor is
// configurable per elite; the win bonus and loss penalty never are.
const (
	WinBonus        int64 = 1
	LossPenalty     int64 = 3
	WindowLossValue int64 = 5
)

// Window is one configured bonus interval for an elite. A loss inside the
// window grants WindowLossValue to the victor instead of the elite's own
// points-per-loss.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Contains(at time.Time) bool {
	return !at.Before(w.Start) && !at.After(w.End)
}

// Schedule maps competitor names to their bonus windows. It is passed into
// Score explicitly so tests can supply synthetic windows.
type Schedule map[string][]Window

func (s Schedule) Active(name string, at time.Time) bool {
	for _, w := range s[name] {
		if w.Contains(at) {
			return true
		}
	}
	return false
}

// Input captures one match from the tracked elite's perspective.
type Input struct {
	EliteName          string
	ElitePointsPerLoss int64
	OpponentName       string
	// OpponentPointsPerLoss is only meaningful when OpponentIsElite.
	OpponentPointsPerLoss int64
	OpponentIsElite       bool
	Result                match.Result
	PlayedAt              time.Time
}

// Deltas are the signed point adjustments for the two sides. Totals are not
// floored at zero, so either delta may drive an account negative.
type Deltas struct {
	Elite    int64
	Opponent int64
}

// Score applies the scoring rules to one match. Pure: no clock, no store.
//
// The loser's effective loss value is their configured points-per-loss,
// overridden by WindowLossValue while one of their bonus windows is active.
// The winner takes that value when the loser is an elite; a winning elite
// facing a hunter takes the flat WinBonus instead, and the losing side
// always pays the flat LossPenalty.
func Score(in Input, windows Schedule) Deltas {
	if in.Result == match.ResultWin {
		if in.OpponentIsElite {
			return Deltas{
				Elite:    effectiveLossValue(in.OpponentName, in.OpponentPointsPerLoss, in.PlayedAt, windows),
				Opponent: -LossPenalty,
			}
		}
		return Deltas{Elite: WinBonus}
	}

	return Deltas{
		Elite:    -LossPenalty,
		Opponent: effectiveLossValue(in.EliteName, in.ElitePointsPerLoss, in.PlayedAt, windows),
	}
}

func effectiveLossValue(name string, pointsPerLoss int64, at time.Time, windows Schedule) int64 {
	if windows.Active(name, at) {
		return WindowLossValue
	}
	return pointsPerLoss
}
