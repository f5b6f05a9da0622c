package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the starter accounts into an empty database. A
// populated elites table means the environment is already provisioned and
// the seed is skipped.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leaderboard_elites`); err != nil {
		return fmt.Errorf("count elites for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().Unix()
	for _, e := range memory.SeedElites() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leaderboard_elites (name, title, points_earned, points_per_loss, badge, avatar, created_at, updated_at)
VALUES (:name, :title, :points_earned, :points_per_loss, :badge, :avatar, :created_at, :updated_at)
ON CONFLICT (name) DO NOTHING`, map[string]any{
			"name":            e.Name,
			"title":           e.Title,
			"points_earned":   e.PointsEarned,
			"points_per_loss": e.PointsPerLoss,
			"badge":           e.Badge,
			"avatar":          e.Avatar,
			"created_at":      now,
			"updated_at":      now,
		})
		if err != nil {
			return fmt.Errorf("bind seed elite %s query: %w", e.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed elite %s: %w", e.Name, err)
		}
	}

	for _, h := range memory.SeedHunters() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leaderboard_hunters (name, title, points_earned, badge, avatar, created_at, updated_at)
VALUES (:name, :title, :points_earned, :badge, :avatar, :created_at, :updated_at)
ON CONFLICT (name) DO NOTHING`, map[string]any{
			"name":          h.Name,
			"title":         h.Title,
			"points_earned": h.PointsEarned,
			"badge":         h.Badge,
			"avatar":        h.Avatar,
			"created_at":    now,
			"updated_at":    now,
		})
		if err != nil {
			return fmt.Errorf("bind seed hunter %s query: %w", h.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed hunter %s: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
