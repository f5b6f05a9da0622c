package hunter

import "context"

// Repository describes hunter persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Hunter, error)
	GetByName(ctx context.Context, name string) (Hunter, bool, error)
	// Create inserts the hunter if the name is not taken yet and reports
	// whether a row was actually created. A concurrent create of the same
	// name is a no-op, which keeps hunter creation at-most-once per name.
	Create(ctx context.Context, item Hunter) (bool, error)
	AddPoints(ctx context.Context, name string, delta int64) error
	UpdateBadge(ctx context.Context, name string, badge string) error
}
