package idempotency

import (
	"context"
	"time"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

// Key is the caller-provided idempotency key (Idempotency-Key header).
type Key string

// Fingerprint identifies a request uniquely for idempotency purposes:
// key + route + session + request body hash.
// Route is the path template (e.g. "/api/trips").
type Fingerprint struct {
	Key      Key
	Session  domain.SessionID
	Method   string
	Route    string
	BodyHash string
}

// Record is the stored response we can replay for a duplicate request.
type Record struct {
	StatusCode  int
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}

// Store persists idempotency records for replaying responses on retries.
type Store interface {
	Get(ctx context.Context, fp Fingerprint) (Record, bool, error)
	Put(ctx context.Context, fp Fingerprint, rec Record) error

	// Prune drops records created before cutoff and reports how many were dropped.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}
