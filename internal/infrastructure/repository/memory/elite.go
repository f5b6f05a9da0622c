// Package memory holds mutex-guarded in-memory repository implementations,
// used by tests and by the DB-less dev mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
)

type EliteRepository struct {
	mu    sync.RWMutex
	items map[string]elite.Elite
}

func NewEliteRepository() *EliteRepository {
	return &EliteRepository{items: make(map[string]elite.Elite)}
}

func (r *EliteRepository) List(_ context.Context) ([]elite.Elite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]elite.Elite, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *EliteRepository) GetByName(_ context.Context, name string) (elite.Elite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok, nil
}

func (r *EliteRepository) AddPoints(_ context.Context, name string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return fmt.Errorf("elite %s not found", name)
	}
	item.PointsEarned += delta
	r.items[name] = item
	return nil
}

func (r *EliteRepository) UpdateTuning(_ context.Context, name string, pointsPerLoss int64, badge string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return fmt.Errorf("elite %s not found", name)
	}
	item.PointsPerLoss = pointsPerLoss
	item.Badge = badge
	r.items[name] = item
	return nil
}

func (r *EliteRepository) Create(_ context.Context, item elite.Elite) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.Name]; ok {
		return fmt.Errorf("elite %s already exists", item.Name)
	}
	r.items[item.Name] = item
	return nil
}
