package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
	qb "github.com/ChocooDEV/aurory-elite-hunter/internal/platform/querybuilder"
)

type WinRecordRepository struct {
	db *sqlx.DB
}

func NewWinRecordRepository(db *sqlx.DB) *WinRecordRepository {
	return &WinRecordRepository{db: db}
}

func (r *WinRecordRepository) Create(ctx context.Context, item badge.WinRecord) (bool, error) {
	query, args, err := qb.InsertModel("win_records", winRecordInsertModel{
		MatchID:           item.MatchID,
		HunterName:        item.HunterName,
		DefeatedEliteName: item.DefeatedEliteName,
		RecordedAt:        item.RecordedAt.UTC().Unix(),
	}, "ON CONFLICT (match_id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build create win record query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create win record %s: %w", item.MatchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create win record %s: %w", item.MatchID, err)
	}
	return affected > 0, nil
}

func (r *WinRecordRepository) ListByHunter(ctx context.Context, hunterName string) ([]badge.WinRecord, error) {
	query, args, err := qb.Select("id, match_id, hunter_name, defeated_elite_name, recorded_at").
		From("win_records").
		Where(qb.Eq("hunter_name", hunterName)).
		OrderBy("recorded_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list win records query: %w", err)
	}

	var rows []winRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list win records for %s: %w", hunterName, err)
	}

	out := make([]badge.WinRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *WinRecordRepository) ListHunterNames(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("hunter_name").
		From("win_records").
		GroupBy("hunter_name").
		OrderBy("hunter_name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hunter names query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list hunters with win records: %w", err)
	}
	return names, nil
}
