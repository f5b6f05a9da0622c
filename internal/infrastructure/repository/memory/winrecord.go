package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
)

type WinRecordRepository struct {
	mu      sync.RWMutex
	byID    map[string]badge.WinRecord
	ordered []string
}

func NewWinRecordRepository() *WinRecordRepository {
	return &WinRecordRepository{byID: make(map[string]badge.WinRecord)}
}

func (r *WinRecordRepository) Create(_ context.Context, item badge.WinRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[item.MatchID]; ok {
		return false, nil
	}
	r.byID[item.MatchID] = item
	r.ordered = append(r.ordered, item.MatchID)
	return true, nil
}

func (r *WinRecordRepository) ListByHunter(_ context.Context, hunterName string) ([]badge.WinRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []badge.WinRecord
	for _, id := range r.ordered {
		if item := r.byID[id]; item.HunterName == hunterName {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *WinRecordRepository) ListHunterNames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, item := range r.byID {
		if _, ok := seen[item.HunterName]; ok {
			continue
		}
		seen[item.HunterName] = struct{}{}
		names = append(names, item.HunterName)
	}
	sort.Strings(names)
	return names, nil
}
