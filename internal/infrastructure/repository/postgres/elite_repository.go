package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	qb "github.com/ChocooDEV/aurory-elite-hunter/internal/platform/querybuilder"
)

const eliteColumns = "id, name, title, points_earned, points_per_loss, badge, avatar, created_at, updated_at"

type EliteRepository struct {
	db *sqlx.DB
}

func NewEliteRepository(db *sqlx.DB) *EliteRepository {
	return &EliteRepository{db: db}
}

func (r *EliteRepository) List(ctx context.Context) ([]elite.Elite, error) {
	query, args, err := qb.Select(eliteColumns).
		From("leaderboard_elites").
		OrderBy("points_earned DESC", "name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list elites query: %w", err)
	}

	var rows []eliteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list elites: %w", err)
	}

	out := make([]elite.Elite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EliteRepository) GetByName(ctx context.Context, name string) (elite.Elite, bool, error) {
	query, args, err := qb.Select(eliteColumns).
		From("leaderboard_elites").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return elite.Elite{}, false, fmt.Errorf("build get elite query: %w", err)
	}

	var row eliteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return elite.Elite{}, false, nil
		}
		return elite.Elite{}, false, fmt.Errorf("get elite %s: %w", name, err)
	}
	return row.toDomain(), true, nil
}

func (r *EliteRepository) AddPoints(ctx context.Context, name string, delta int64) error {
	query, args, err := qb.Update("leaderboard_elites").
		SetExpr("points_earned", "points_earned + ?", delta).
		Set("updated_at", time.Now().UTC().Unix()).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add elite points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add points to elite %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add points to elite %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("elite %s not found", name)
	}
	return nil
}

func (r *EliteRepository) UpdateTuning(ctx context.Context, name string, pointsPerLoss int64, badge string) error {
	query, args, err := qb.Update("leaderboard_elites").
		Set("points_per_loss", pointsPerLoss).
		Set("badge", badge).
		Set("updated_at", time.Now().UTC().Unix()).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update elite tuning query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tuning for elite %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tuning for elite %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("elite %s not found", name)
	}
	return nil
}

func (r *EliteRepository) Create(ctx context.Context, item elite.Elite) error {
	if err := item.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Unix()
	query, args, err := qb.InsertModel("leaderboard_elites", eliteInsertModel{
		Name:          item.Name,
		Title:         item.Title,
		PointsEarned:  item.PointsEarned,
		PointsPerLoss: item.PointsPerLoss,
		Badge:         item.Badge,
		Avatar:        item.Avatar,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, "")
	if err != nil {
		return fmt.Errorf("build create elite query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create elite %s: %w", item.Name, err)
	}
	return nil
}
