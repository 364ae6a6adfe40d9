package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

type sessionHandlerFunc func(w http.ResponseWriter, r *http.Request, s *session.Session)

// withSession adapts a handler that needs the caller's session. The session
// middleware must run first; a missing session is a wiring bug and is
// reported as a 500.
func withSession(logger zerolog.Logger, h sessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		if !ok {
			logger.Error().Str("path", r.URL.Path).Msg("no session in request context")
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "session unavailable", nil)
			return
		}
		h(w, r, s)
	}
}

func tripFormToJSON(f domain.TripForm) TripForm {
	return TripForm{
		FullName:       f.FullName,
		TrainNumber:    f.TrainNumber,
		DepartureDate:  f.DepartureDate,
		ArrivalDate:    f.ArrivalDate,
		CarNumber:      f.CarNumber,
		SeatNumber:     f.SeatNumber,
		AdditionalInfo: f.AdditionalInfo,
		ContactInfo:    f.ContactInfo,
	}
}

func tripFormFromJSON(f TripForm) domain.TripForm {
	return domain.TripForm{
		FullName:       f.FullName,
		TrainNumber:    f.TrainNumber,
		DepartureDate:  f.DepartureDate,
		ArrivalDate:    f.ArrivalDate,
		CarNumber:      f.CarNumber,
		SeatNumber:     f.SeatNumber,
		AdditionalInfo: f.AdditionalInfo,
		ContactInfo:    f.ContactInfo,
	}
}

// tripFormFromRequest reads the trip form fields from a parsed HTML form.
// Missing fields become empty strings.
func tripFormFromRequest(r *http.Request) domain.TripForm {
	var f domain.TripForm
	for _, field := range domain.TripFields() {
		f.Set(field, r.PostFormValue(string(field)))
	}
	return f
}

func tripsToJSON(ts []domain.TripRecord) []Trip {
	out := make([]Trip, 0, len(ts))
	for _, t := range ts {
		out = append(out, Trip{
			ID:             string(t.ID),
			FullName:       t.FullName,
			TrainNumber:    t.TrainNumber,
			DepartureDate:  t.DepartureDate,
			ArrivalDate:    t.ArrivalDate,
			CarNumber:      t.CarNumber,
			SeatNumber:     t.SeatNumber,
			AdditionalInfo: t.AdditionalInfo,
			ContactInfo:    t.ContactInfo,
			SubmittedAt:    t.SubmittedAt,
		})
	}
	return out
}
