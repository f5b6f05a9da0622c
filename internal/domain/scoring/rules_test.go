package scoring

import (
	"testing"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
)

var matchTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestScoreEliteLosesToHunter(t *testing.T) {
	got := Score(Input{
		EliteName:          "EliteA",
		ElitePointsPerLoss: 1,
		OpponentName:       "Sam",
		Result:             match.ResultLoss,
		PlayedAt:           matchTime,
	}, nil)

	if got.Elite != -3 || got.Opponent != 1 {
		t.Fatalf("deltas = %+v, want elite -3 opponent +1", got)
	}
}

func TestScoreEliteBeatsHunter(t *testing.T) {
	got := Score(Input{
		EliteName:          "EliteA",
		ElitePointsPerLoss: 4,
		OpponentName:       "Sam",
		Result:             match.ResultWin,
		PlayedAt:           matchTime,
	}, nil)

	if got.Elite != 1 || got.Opponent != 0 {
		t.Fatalf("deltas = %+v, want elite +1 opponent untouched", got)
	}
}

func TestScoreBonusWindowOverridesLossValue(t *testing.T) {
	windows := Schedule{
		"EliteA": {{Start: matchTime.Add(-time.Hour), End: matchTime.Add(time.Hour)}},
	}

	got := Score(Input{
		EliteName:          "EliteA",
		ElitePointsPerLoss: 1,
		OpponentName:       "Sam",
		Result:             match.ResultLoss,
		PlayedAt:           matchTime,
	}, windows)

	if got.Elite != -3 || got.Opponent != WindowLossValue {
		t.Fatalf("deltas = %+v, want elite -3 opponent +%d", got, WindowLossValue)
	}

	outside := Score(Input{
		EliteName:          "EliteA",
		ElitePointsPerLoss: 1,
		OpponentName:       "Sam",
		Result:             match.ResultLoss,
		PlayedAt:           matchTime.Add(2 * time.Hour),
	}, windows)
	if outside.Opponent != 1 {
		t.Fatalf("outside-window opponent delta = %d, want 1", outside.Opponent)
	}
}

func TestScoreEliteVsElite(t *testing.T) {
	loss := Score(Input{
		EliteName:             "EliteA",
		ElitePointsPerLoss:    2,
		OpponentName:          "EliteB",
		OpponentPointsPerLoss: 1,
		OpponentIsElite:       true,
		Result:                match.ResultLoss,
		PlayedAt:              matchTime,
	}, nil)
	if loss.Elite != -3 || loss.Opponent != 2 {
		t.Fatalf("loss deltas = %+v, want elite -3 opponent +2", loss)
	}

	win := Score(Input{
		EliteName:             "EliteA",
		ElitePointsPerLoss:    2,
		OpponentName:          "EliteB",
		OpponentPointsPerLoss: 1,
		OpponentIsElite:       true,
		Result:                match.ResultWin,
		PlayedAt:              matchTime,
	}, nil)
	if win.Elite != 1 || win.Opponent != -3 {
		t.Fatalf("win deltas = %+v, want elite +1 opponent -3", win)
	}

	// The winner's window never matters, only the loser's.
	windows := Schedule{"EliteB": {{Start: matchTime.Add(-time.Hour), End: matchTime.Add(time.Hour)}}}
	winWindowed := Score(Input{
		EliteName:             "EliteA",
		ElitePointsPerLoss:    2,
		OpponentName:          "EliteB",
		OpponentPointsPerLoss: 1,
		OpponentIsElite:       true,
		Result:                match.ResultWin,
		PlayedAt:              matchTime,
	}, windows)
	if winWindowed.Elite != WindowLossValue {
		t.Fatalf("windowed win elite delta = %d, want %d", winWindowed.Elite, WindowLossValue)
	}
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w := Window{Start: matchTime, End: matchTime.Add(time.Hour)}
	if !w.Contains(matchTime) || !w.Contains(matchTime.Add(time.Hour)) {
		t.Error("window boundaries should be inclusive")
	}
	if w.Contains(matchTime.Add(-time.Nanosecond)) {
		t.Error("instant before start should be outside")
	}
}
