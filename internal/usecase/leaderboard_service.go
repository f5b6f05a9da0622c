package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
)

const leaderboardLimit = 20

// BoardEntry is one ranked row on either leaderboard.
type BoardEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	PointsEarned int64  `json:"pointsEarned"`
	Badge        string `json:"badge,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
}

// Leaderboard is the combined top-20 view of both boards.
type Leaderboard struct {
	Elites  []BoardEntry `json:"elites"`
	Hunters []BoardEntry `json:"hunters"`
}

type LeaderboardService struct {
	elites  elite.Repository
	hunters hunter.Repository
}

func NewLeaderboardService(elites elite.Repository, hunters hunter.Repository) *LeaderboardService {
	return &LeaderboardService{elites: elites, hunters: hunters}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Leaderboard")
	defer span.End()

	elites, err := s.elites.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: list elites: %v", ErrDependencyUnavailable, err)
	}
	hunters, err := s.hunters.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: list hunters: %v", ErrDependencyUnavailable, err)
	}

	board := Leaderboard{
		Elites:  make([]BoardEntry, 0, minInt(len(elites), leaderboardLimit)),
		Hunters: make([]BoardEntry, 0, minInt(len(hunters), leaderboardLimit)),
	}
	for _, entry := range rankEliteEntries(elites) {
		board.Elites = append(board.Elites, entry)
	}
	for _, entry := range rankHunterEntries(hunters) {
		board.Hunters = append(board.Hunters, entry)
	}
	return board, nil
}

func rankEliteEntries(items []elite.Elite) []BoardEntry {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PointsEarned != items[j].PointsEarned {
			return items[i].PointsEarned > items[j].PointsEarned
		}
		return items[i].Name < items[j].Name
	})
	entries := make([]BoardEntry, 0, minInt(len(items), leaderboardLimit))
	for i, item := range items {
		if i == leaderboardLimit {
			break
		}
		entries = append(entries, BoardEntry{
			Rank:         i + 1,
			Name:         item.Name,
			Title:        item.Title,
			PointsEarned: item.PointsEarned,
			Badge:        item.Badge,
			Avatar:       item.Avatar,
		})
	}
	return entries
}

func rankHunterEntries(items []hunter.Hunter) []BoardEntry {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PointsEarned != items[j].PointsEarned {
			return items[i].PointsEarned > items[j].PointsEarned
		}
		return items[i].Name < items[j].Name
	})
	entries := make([]BoardEntry, 0, minInt(len(items), leaderboardLimit))
	for i, item := range items {
		if i == leaderboardLimit {
			break
		}
		entries = append(entries, BoardEntry{
			Rank:         i + 1,
			Name:         item.Name,
			Title:        item.Title,
			PointsEarned: item.PointsEarned,
			Badge:        item.Badge,
			Avatar:       item.Avatar,
		})
	}
	return entries
}

func minInt(left, right int) int {
	if left < right {
		return left
	}
	return right
}
