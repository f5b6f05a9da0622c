package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
)

type HunterRepository struct {
	mu    sync.RWMutex
	items map[string]hunter.Hunter
}

func NewHunterRepository() *HunterRepository {
	return &HunterRepository{items: make(map[string]hunter.Hunter)}
}

func (r *HunterRepository) List(_ context.Context) ([]hunter.Hunter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]hunter.Hunter, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *HunterRepository) GetByName(_ context.Context, name string) (hunter.Hunter, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok, nil
}

func (r *HunterRepository) Create(_ context.Context, item hunter.Hunter) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.Name]; ok {
		return false, nil
	}
	r.items[item.Name] = item
	return true, nil
}

func (r *HunterRepository) AddPoints(_ context.Context, name string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return fmt.Errorf("hunter %s not found", name)
	}
	item.PointsEarned += delta
	r.items[name] = item
	return nil
}

func (r *HunterRepository) UpdateBadge(_ context.Context, name string, badge string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return fmt.Errorf("hunter %s not found", name)
	}
	item.Badge = badge
	r.items[name] = item
	return nil
}
