package aurory

import (
	"strings"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

type matchPageEnvelope struct {
	Data          []matchEventPayload `json:"data"`
	CurrentPage   int                 `json:"currentPage"`
	TotalPages    int                 `json:"totalPages"`
	TotalElements int                 `json:"totalElements"`
}

type matchEventPayload struct {
	CreatedAt string          `json:"createdAt"`
	Result    string          `json:"result"`
	Opponent  opponentPayload `json:"opponent"`
	EventTag  string          `json:"eventTag"`
}

type opponentPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type profileEnvelope struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// isCPUOpponent reports whether the event was played against a
// system-controlled opponent.
func (p matchEventPayload) isCPUOpponent() bool {
	return strings.EqualFold(p.Opponent.ID, cpuOpponent) ||
		strings.EqualFold(strings.TrimSpace(p.Opponent.Name), cpuOpponent)
}

// toEvent normalizes one payload entry. It returns false when the entry is
// malformed: unparsable timestamp, unknown result, or missing opponent.
func (p matchEventPayload) toEvent() (usecase.MatchEvent, bool) {
	playedAt, err := parseEventTime(p.CreatedAt)
	if err != nil {
		return usecase.MatchEvent{}, false
	}

	result, err := match.ParseResult(p.Result)
	if err != nil {
		return usecase.MatchEvent{}, false
	}

	opponentID := strings.TrimSpace(p.Opponent.ID)
	opponentName := strings.TrimSpace(p.Opponent.Name)
	if opponentID == "" && opponentName == "" {
		return usecase.MatchEvent{}, false
	}
	if opponentName == "" {
		opponentName = opponentID
	}

	return usecase.MatchEvent{
		PlayedAt:     playedAt.UTC(),
		Result:       result,
		OpponentID:   opponentID,
		OpponentName: opponentName,
		EventTag:     strings.TrimSpace(p.EventTag),
	}, true
}

func parseEventTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
