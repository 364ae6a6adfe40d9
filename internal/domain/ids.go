package domain

// TripID is an internal identifier for a submitted trip record.
// It is opaque: callers must only compare it for equality.
type TripID string

// SessionID identifies one browser session and the state it owns.
type SessionID string
