package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	qb "github.com/ChocooDEV/aurory-elite-hunter/internal/platform/querybuilder"
)

const hunterColumns = "id, name, title, points_earned, badge, avatar, created_at, updated_at"

type HunterRepository struct {
	db *sqlx.DB
}

func NewHunterRepository(db *sqlx.DB) *HunterRepository {
	return &HunterRepository{db: db}
}

func (r *HunterRepository) List(ctx context.Context) ([]hunter.Hunter, error) {
	query, args, err := qb.Select(hunterColumns).
		From("leaderboard_hunters").
		OrderBy("points_earned DESC", "name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hunters query: %w", err)
	}

	var rows []hunterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list hunters: %w", err)
	}

	out := make([]hunter.Hunter, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *HunterRepository) GetByName(ctx context.Context, name string) (hunter.Hunter, bool, error) {
	query, args, err := qb.Select(hunterColumns).
		From("leaderboard_hunters").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return hunter.Hunter{}, false, fmt.Errorf("build get hunter query: %w", err)
	}

	var row hunterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return hunter.Hunter{}, false, nil
		}
		return hunter.Hunter{}, false, fmt.Errorf("get hunter %s: %w", name, err)
	}
	return row.toDomain(), true, nil
}

// Create relies on the unique name constraint: a second create of the same
// hunter is a conflict no-op, which reports created=false.
func (r *HunterRepository) Create(ctx context.Context, item hunter.Hunter) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC().Unix()
	query, args, err := qb.InsertModel("leaderboard_hunters", hunterInsertModel{
		Name:         item.Name,
		Title:        item.Title,
		PointsEarned: item.PointsEarned,
		Badge:        item.Badge,
		Avatar:       item.Avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build create hunter query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("create hunter %s: %w", item.Name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create hunter %s: %w", item.Name, err)
	}
	return affected > 0, nil
}

func (r *HunterRepository) AddPoints(ctx context.Context, name string, delta int64) error {
	query, args, err := qb.Update("leaderboard_hunters").
		SetExpr("points_earned", "points_earned + ?", delta).
		Set("updated_at", time.Now().UTC().Unix()).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add hunter points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add points to hunter %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add points to hunter %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("hunter %s not found", name)
	}
	return nil
}

func (r *HunterRepository) UpdateBadge(ctx context.Context, name string, badge string) error {
	query, args, err := qb.Update("leaderboard_hunters").
		Set("badge", badge).
		Set("updated_at", time.Now().UTC().Unix()).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update hunter badge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update badge for hunter %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update badge for hunter %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("hunter %s not found", name)
	}
	return nil
}
