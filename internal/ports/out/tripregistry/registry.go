package tripregistry

import (
	"context"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

// Registry is the append-only collection of trip records submitted during
// one session.
//
// Ordering expectations:
// - All returns records in insertion order.
// - Records are never mutated or removed once appended.
type Registry interface {
	// Append adds r to the end of the registry. Only the system-assigned id
	// is checked: an empty id yields ErrInvalidID and a duplicate id yields
	// ErrAlreadyExists. Business fields are never checked.
	Append(ctx context.Context, r domain.TripRecord) error

	// All returns a snapshot of every record. Mutating the returned slice
	// must not affect the registry.
	All(ctx context.Context) ([]domain.TripRecord, error)
}
