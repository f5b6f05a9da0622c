package elite

import "context"

// Repository describes elite persistence needs from use cases.
// Point totals may go negative; no floor is applied anywhere.
type Repository interface {
	List(ctx context.Context) ([]Elite, error)
	GetByName(ctx context.Context, name string) (Elite, bool, error)
	// AddPoints applies a signed delta to points_earned as a single increment.
	AddPoints(ctx context.Context, name string, delta int64) error
	// UpdateTuning sets the admin-editable fields only; points_earned is
	// never touched by this operation.
	UpdateTuning(ctx context.Context, name string, pointsPerLoss int64, badge string) error
	Create(ctx context.Context, item Elite) error
}
