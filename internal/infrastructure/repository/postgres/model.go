package postgres

import (
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
)

// Timestamps are stored as unix seconds.

type eliteTableModel struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Title         string `db:"title"`
	PointsEarned  int64  `db:"points_earned"`
	PointsPerLoss int64  `db:"points_per_loss"`
	Badge         string `db:"badge"`
	Avatar        string `db:"avatar"`
	CreatedAt     int64  `db:"created_at"`
	UpdatedAt     int64  `db:"updated_at"`
}

func (m eliteTableModel) toDomain() elite.Elite {
	return elite.Elite{
		Name:          m.Name,
		Title:         m.Title,
		PointsEarned:  m.PointsEarned,
		PointsPerLoss: m.PointsPerLoss,
		Badge:         m.Badge,
		Avatar:        m.Avatar,
	}
}

type eliteInsertModel struct {
	Name          string `db:"name"`
	Title         string `db:"title"`
	PointsEarned  int64  `db:"points_earned"`
	PointsPerLoss int64  `db:"points_per_loss"`
	Badge         string `db:"badge"`
	Avatar        string `db:"avatar"`
	CreatedAt     int64  `db:"created_at"`
	UpdatedAt     int64  `db:"updated_at"`
}

type hunterTableModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Title        string `db:"title"`
	PointsEarned int64  `db:"points_earned"`
	Badge        string `db:"badge"`
	Avatar       string `db:"avatar"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

func (m hunterTableModel) toDomain() hunter.Hunter {
	return hunter.Hunter{
		Name:         m.Name,
		Title:        m.Title,
		PointsEarned: m.PointsEarned,
		Badge:        m.Badge,
		Avatar:       m.Avatar,
	}
}

type hunterInsertModel struct {
	Name         string `db:"name"`
	Title        string `db:"title"`
	PointsEarned int64  `db:"points_earned"`
	Badge        string `db:"badge"`
	Avatar       string `db:"avatar"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

type computedMatchInsertModel struct {
	MatchID        string `db:"match_id"`
	EliteName      string `db:"elite_name"`
	OpponentName   string `db:"opponent_name"`
	Result         string `db:"result"`
	WinnerName     string `db:"winner_name"`
	LoserName      string `db:"loser_name"`
	MatchCreatedAt int64  `db:"match_created_at"`
	ProcessedAt    int64  `db:"processed_at"`
}

func newComputedMatchInsertModel(item match.Processed) computedMatchInsertModel {
	return computedMatchInsertModel{
		MatchID:        item.MatchID,
		EliteName:      item.EliteName,
		OpponentName:   item.OpponentName,
		Result:         string(item.Result),
		WinnerName:     item.WinnerName,
		LoserName:      item.LoserName,
		MatchCreatedAt: item.PlayedAt.UTC().Unix(),
		ProcessedAt:    item.ProcessedAt.UTC().Unix(),
	}
}

type winRecordTableModel struct {
	ID                int64  `db:"id"`
	MatchID           string `db:"match_id"`
	HunterName        string `db:"hunter_name"`
	DefeatedEliteName string `db:"defeated_elite_name"`
	RecordedAt        int64  `db:"recorded_at"`
}

func (m winRecordTableModel) toDomain() badge.WinRecord {
	return badge.WinRecord{
		MatchID:           m.MatchID,
		HunterName:        m.HunterName,
		DefeatedEliteName: m.DefeatedEliteName,
		RecordedAt:        time.Unix(m.RecordedAt, 0).UTC(),
	}
}

type winRecordInsertModel struct {
	MatchID           string `db:"match_id"`
	HunterName        string `db:"hunter_name"`
	DefeatedEliteName string `db:"defeated_elite_name"`
	RecordedAt        int64  `db:"recorded_at"`
}
