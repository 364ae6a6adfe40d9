// Package matching decides which trip records belong to fellow passengers.
package matching

import "github.com/Overland-East-Bay/fellow-passengers/internal/domain"

// IsFellowPassenger reports whether c travels in the same car of the same
// train on the same dates as q. Fields are compared byte for byte: no
// trimming, no case folding. A record never matches itself.
func IsFellowPassenger(q, c domain.TripRecord) bool {
	return c.ID != q.ID &&
		c.TrainNumber == q.TrainNumber &&
		c.DepartureDate == q.DepartureDate &&
		c.ArrivalDate == q.ArrivalDate &&
		c.CarNumber == q.CarNumber
}

// FellowPassengers returns the candidates matching q, in candidate order.
// The result is never nil; no matches yields an empty slice.
func FellowPassengers(q domain.TripRecord, candidates []domain.TripRecord) []domain.TripRecord {
	out := make([]domain.TripRecord, 0)
	for _, c := range candidates {
		if IsFellowPassenger(q, c) {
			out = append(out, c)
		}
	}
	return out
}
