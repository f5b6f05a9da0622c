package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	qb "github.com/ChocooDEV/aurory-elite-hunter/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Claim inserts the processed-match record keyed on its unique match_id.
// The conflict no-op makes the uniqueness check and the insert one atomic
// statement: of two concurrent claims of a fresh ID, exactly one inserts.
func (r *MatchRepository) Claim(ctx context.Context, item match.Processed) (bool, error) {
	query, args, err := qb.InsertModel("computed_matches",
		newComputedMatchInsertModel(item),
		"ON CONFLICT (match_id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build claim match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim match %s: %w", item.MatchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim match %s: %w", item.MatchID, err)
	}
	return affected > 0, nil
}

func (r *MatchRepository) IsProcessed(ctx context.Context, matchIDs ...string) (bool, error) {
	if len(matchIDs) == 0 {
		return false, nil
	}

	ids := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("COUNT(1)").
		From("computed_matches").
		Where(qb.In("match_id", ids)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build is-processed query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check processed matches: %w", err)
	}
	return count > 0, nil
}

// Watermark is the latest upstream creation time across processed matches
// involving the elite from either side.
func (r *MatchRepository) Watermark(ctx context.Context, eliteName string) (time.Time, bool, error) {
	query, args, err := qb.Select("COALESCE(MAX(match_created_at), 0)").
		From("computed_matches").
		Where(qb.Expr("(elite_name = ? OR opponent_name = ?)", eliteName, eliteName)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build watermark query: %w", err)
	}

	var latest int64
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		return time.Time{}, false, fmt.Errorf("load watermark for %s: %w", eliteName, err)
	}
	if latest == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(latest, 0).UTC(), true, nil
}

func (r *MatchRepository) CountByElite(ctx context.Context, eliteName string) (int64, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("computed_matches").
		Where(qb.Expr("(elite_name = ? OR opponent_name = ?)", eliteName, eliteName)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches for %s: %w", eliteName, err)
	}
	return count, nil
}
