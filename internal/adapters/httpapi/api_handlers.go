package httpapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/idempotency"
)

// TripForm is the JSON shape of the trip form.
type TripForm struct {
	FullName       string `json:"fullName"`
	TrainNumber    string `json:"trainNumber"`
	DepartureDate  string `json:"departureDate"`
	ArrivalDate    string `json:"arrivalDate"`
	CarNumber      string `json:"carNumber"`
	SeatNumber     string `json:"seatNumber"`
	AdditionalInfo string `json:"additionalInfo"`
	ContactInfo    string `json:"contactInfo"`
}

// Trip is the JSON shape of a submitted trip record.
type Trip struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	TrainNumber    string    `json:"trainNumber"`
	DepartureDate  string    `json:"departureDate"`
	ArrivalDate    string    `json:"arrivalDate"`
	CarNumber      string    `json:"carNumber"`
	SeatNumber     string    `json:"seatNumber"`
	AdditionalInfo string    `json:"additionalInfo"`
	ContactInfo    string    `json:"contactInfo"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

type SessionResponse struct {
	View        string   `json:"view"`
	Form        TripForm `json:"form"`
	HasSearched bool     `json:"hasSearched"`
	Companions  []Trip   `json:"companions"`
	TripCount   int      `json:"tripCount"`
}

type SubmitResponse struct {
	TripID     string `json:"tripId"`
	Companions []Trip `json:"companions"`
}

type TripsResponse struct {
	Trips []Trip `json:"trips"`
}

type CompanionsResponse struct {
	HasSearched bool   `json:"hasSearched"`
	Companions  []Trip `json:"companions"`
}

type ViewRequest struct {
	View string `json:"view"`
}

type apiHandlers struct {
	log  zerolog.Logger
	idem idempotency.Store
}

func (h apiHandlers) getSession(w http.ResponseWriter, r *http.Request, s *session.Session) {
	st, err := s.Snapshot(r.Context())
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		View:        string(st.View),
		Form:        tripFormToJSON(st.Form),
		HasSearched: st.HasSearched,
		Companions:  tripsToJSON(st.Companions),
		TripCount:   len(st.Trips),
	})
}

func (h apiHandlers) patchForm(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var body map[string]string
	if !decodeBody(w, r, &body) {
		return
	}
	values := make(map[domain.TripField]string, len(body))
	for k, v := range body {
		values[domain.TripField(k)] = v
	}
	if err := s.SetFields(values); err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tripFormToJSON(s.Form()))
}

func (h apiHandlers) putForm(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var body TripForm
	if !decodeBody(w, r, &body) {
		return
	}
	s.ReplaceForm(tripFormFromJSON(body))
	writeJSON(w, http.StatusOK, tripFormToJSON(s.Form()))
}

func (h apiHandlers) putView(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var body ViewRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.Navigate(domain.View(body.View)); err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewRequest{View: string(s.View())})
}

// createTrip submits the session's form. A JSON body, when present, replaces
// the form first.
//
// Idempotency handling:
// - Replay if same session+key+route+bodyHash
// - Reject if same session+key+route with different bodyHash (409)
func (h apiHandlers) createTrip(w http.ResponseWriter, r *http.Request, s *session.Session) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "unreadable body", nil)
		return
	}
	var body TripForm
	hasBody := len(bytes.TrimSpace(raw)) > 0
	if hasBody {
		if err := json.Unmarshal(raw, &body); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", map[string]any{"reason": err.Error()})
			return
		}
	}

	ctx := r.Context()
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	useIdem := h.idem != nil && key != ""
	metaFP := idempotency.Fingerprint{
		Key:     idempotency.Key(key),
		Session: s.ID(),
		Method:  http.MethodPost,
		Route:   "/api/trips",
	}
	respFP := metaFP
	respFP.BodyHash = hashBody(raw)

	if useIdem {
		if meta, ok, err := h.idem.Get(ctx, metaFP); err != nil {
			writeAppError(w, r, h.log, err)
			return
		} else if ok {
			if string(meta.Body) != respFP.BodyHash {
				writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
				return
			}
		} else {
			_ = h.idem.Put(ctx, metaFP, idempotency.Record{
				StatusCode:  0,
				ContentType: "text/plain",
				Body:        []byte(respFP.BodyHash),
				CreatedAt:   time.Now().UTC(),
			})
		}

		if rec, ok, err := h.idem.Get(ctx, respFP); err != nil {
			writeAppError(w, r, h.log, err)
			return
		} else if ok && rec.StatusCode == http.StatusCreated {
			w.Header().Set("Content-Type", rec.ContentType)
			w.Header().Set("Idempotent-Replayed", "true")
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.Body)
			return
		}
	}

	var res session.SubmitResult
	if hasBody {
		res, err = s.SubmitForm(ctx, tripFormFromJSON(body))
	} else {
		res, err = s.Submit(ctx)
	}
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	h.log.Debug().
		Str("session", string(s.ID())).
		Str("trip", string(res.Trip.ID)).
		Int("companions", len(res.Companions)).
		Str("request_id", middleware.GetReqID(ctx)).
		Msg("trip submitted")

	resp := SubmitResponse{
		TripID:     string(res.Trip.ID),
		Companions: tripsToJSON(res.Companions),
	}
	if useIdem {
		if b, err := json.Marshal(resp); err == nil {
			_ = h.idem.Put(ctx, respFP, idempotency.Record{
				StatusCode:  http.StatusCreated,
				ContentType: "application/json",
				Body:        append(b, '\n'),
				CreatedAt:   time.Now().UTC(),
			})
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h apiHandlers) listTrips(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var (
		ts  []domain.TripRecord
		err error
	)
	if r.URL.Query().Has("fullName") {
		ts, err = s.TripsByFullName(r.Context(), r.URL.Query().Get("fullName"))
	} else {
		ts, err = s.MyTrips(r.Context())
	}
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, TripsResponse{Trips: tripsToJSON(ts)})
}

func (h apiHandlers) listCompanions(w http.ResponseWriter, r *http.Request, s *session.Session) {
	res := s.Results()
	writeJSON(w, http.StatusOK, CompanionsResponse{
		HasSearched: res.HasSearched,
		Companions:  tripsToJSON(res.Companions),
	})
}

// decodeBody decodes a JSON request body into v. On failure it writes a 400
// and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", map[string]any{"reason": err.Error()})
		return false
	}
	return true
}

func hashBody(raw []byte) string {
	sum := sha256.Sum256(bytes.TrimSpace(raw))
	return hex.EncodeToString(sum[:])
}
