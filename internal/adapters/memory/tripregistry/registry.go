package tripregistry

import (
	"context"
	"sync"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

// Registry is an in-memory implementation of tripregistry.Registry.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	records []domain.TripRecord
	ids     map[domain.TripID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[domain.TripID]struct{}),
	}
}

func (r *Registry) Append(ctx context.Context, rec domain.TripRecord) error {
	_ = ctx
	if rec.ID == "" {
		return tripregistry.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[rec.ID]; ok {
		return tripregistry.ErrAlreadyExists
	}
	r.ids[rec.ID] = struct{}{}
	r.records = append(r.records, rec)
	return nil
}

func (r *Registry) All(ctx context.Context) ([]domain.TripRecord, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	// TripRecord holds only value fields, so a slice copy is a deep copy.
	return append(make([]domain.TripRecord, 0, len(r.records)), r.records...), nil
}

// Len reports how many records have been appended.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
