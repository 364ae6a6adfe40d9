package session

import "github.com/Overland-East-Bay/fellow-passengers/internal/domain"

// SubmitResult is returned when the trip form is submitted.
type SubmitResult struct {
	Trip       domain.TripRecord
	Companions []domain.TripRecord
}

// Results is the last published match result set.
// HasSearched distinguishes "searched, nobody found" from "not searched yet".
type Results struct {
	Companions  []domain.TripRecord
	HasSearched bool
}

// State is everything a screen needs, read at one instant.
type State struct {
	ID   domain.SessionID
	View domain.View
	Form domain.TripForm

	Companions  []domain.TripRecord
	HasSearched bool

	// Trips is the registry in submission order.
	Trips []domain.TripRecord
}
