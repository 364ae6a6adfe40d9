package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/matching"
	"github.com/Overland-East-Bay/fellow-passengers/internal/app/navigation"
	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/clock"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

// maxTripIDAttempts bounds id regeneration when the registry reports a collision.
const maxTripIDAttempts = 3

// Session is the application state of one browser session: the trip form,
// the trip registry, the last match results and the active screen.
//
// Operations run one at a time to completion; Session is safe for
// concurrent use.
type Session struct {
	id       domain.SessionID
	registry tripregistry.Registry
	clock    clock.Clock

	mu          sync.Mutex
	nav         *navigation.Controller
	form        domain.TripForm
	companions  []domain.TripRecord
	hasSearched bool

	newTripID func() domain.TripID
}

func New(id domain.SessionID, registry tripregistry.Registry, clk clock.Clock) *Session {
	return &Session{
		id:       id,
		registry: registry,
		clock:    clk,
		nav:      navigation.NewController(),
		newTripID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
	}
}

// SetNewTripIDForTest overrides trip ID generation for deterministic tests.
// It should not be used in production code.
func (s *Session) SetNewTripIDForTest(fn func() domain.TripID) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newTripID = fn
}

func (s *Session) ID() domain.SessionID { return s.id }

func (s *Session) Form() domain.TripForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetField stores one form value. Values are never validated; only the field
// name must be known.
func (s *Session) SetField(field domain.TripField, value string) error {
	return s.SetFields(map[domain.TripField]string{field: value})
}

// SetFields stores several form values at once. If any field name is
// unknown, nothing is stored.
func (s *Session) SetFields(values map[domain.TripField]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.form
	for field, value := range values {
		if !next.Set(field, value) {
			return &Error{
				Status:  422,
				Code:    "UNKNOWN_FIELD",
				Message: "unknown trip form field",
				Details: map[string]any{"field": string(field)},
			}
		}
	}
	s.form = next
	return nil
}

func (s *Session) ReplaceForm(f domain.TripForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Submit turns the current form into a trip record, matches it against every
// previously submitted record, appends it to the registry and publishes the
// matches. It is not idempotent: each call appends a new record.
//
// If the registry fails, the session is left unchanged.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(ctx)
}

// SubmitForm replaces the form with f and submits it in one step.
func (s *Session) SubmitForm(ctx context.Context, f domain.TripForm) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
	return s.submitLocked(ctx)
}

func (s *Session) submitLocked(ctx context.Context) (SubmitResult, error) {
	before, err := s.registry.All(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("read trip registry: %w", err)
	}

	now := s.clock.Now()
	var rec domain.TripRecord
	for attempt := 1; ; attempt++ {
		rec = s.form.Record(s.newTripID(), now)
		err = s.registry.Append(ctx, rec)
		if err == nil {
			break
		}
		if errors.Is(err, tripregistry.ErrAlreadyExists) && attempt < maxTripIDAttempts {
			continue
		}
		return SubmitResult{}, fmt.Errorf("append trip %s: %w", rec.ID, err)
	}

	s.companions = matching.FellowPassengers(rec, before)
	s.hasSearched = true

	return SubmitResult{
		Trip:       rec,
		Companions: cloneRecords(s.companions),
	}, nil
}

func (s *Session) Results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Results{
		Companions:  cloneRecords(s.companions),
		HasSearched: s.hasSearched,
	}
}

// MyTrips returns every submitted record in submission order.
func (s *Session) MyTrips(ctx context.Context) ([]domain.TripRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, err := s.registry.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read trip registry: %w", err)
	}
	return ts, nil
}

// TripsByFullName returns the records declared under exactly fullName,
// latest departure date first. Records with equal departure dates keep
// submission order.
func (s *Session) TripsByFullName(ctx context.Context, fullName string) ([]domain.TripRecord, error) {
	all, err := s.MyTrips(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TripRecord, 0)
	for _, t := range all {
		if t.FullName == fullName {
			out = append(out, t)
		}
	}
	// ISO-8601 dates sort chronologically as strings.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepartureDate > out[j].DepartureDate
	})
	return out, nil
}

func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Navigate switches the visible screen. Form values and results are kept.
func (s *Session) Navigate(v domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Navigate(v)
}

func (s *Session) Snapshot(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, err := s.registry.All(ctx)
	if err != nil {
		return State{}, fmt.Errorf("read trip registry: %w", err)
	}
	return State{
		ID:          s.id,
		View:        s.nav.Current(),
		Form:        s.form,
		Companions:  cloneRecords(s.companions),
		HasSearched: s.hasSearched,
		Trips:       ts,
	}, nil
}

func cloneRecords(rs []domain.TripRecord) []domain.TripRecord {
	return append(make([]domain.TripRecord, 0, len(rs)), rs...)
}
