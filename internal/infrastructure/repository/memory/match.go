package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Processed
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Processed)}
}

func (r *MatchRepository) Claim(_ context.Context, item match.Processed) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.MatchID]; ok {
		return false, nil
	}
	r.items[item.MatchID] = item
	return true, nil
}

func (r *MatchRepository) IsProcessed(_ context.Context, matchIDs ...string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range matchIDs {
		if _, ok := r.items[id]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (r *MatchRepository) Watermark(_ context.Context, eliteName string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest time.Time
	var found bool
	for _, item := range r.items {
		if item.EliteName != eliteName && item.OpponentName != eliteName {
			continue
		}
		if !found || item.PlayedAt.After(latest) {
			latest = item.PlayedAt
			found = true
		}
	}
	return latest, found, nil
}

func (r *MatchRepository) CountByElite(_ context.Context, eliteName string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, item := range r.items {
		if item.EliteName == eliteName || item.OpponentName == eliteName {
			count++
		}
	}
	return count, nil
}
