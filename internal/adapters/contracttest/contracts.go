package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
	idempotencyport "github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/idempotency"
	tripregistryport "github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

type CleanupFunc = func()

type TripRegistryFactory func(t *testing.T) (tripregistryport.Registry, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Session:  domain.SessionID("s-1"),
		Method:   "POST",
		Route:    "/api/trips",
		BodyHash: "",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	rec := idempotencyport.Record{
		StatusCode:  0,
		ContentType: "text/plain",
		Body:        []byte("hash-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "hash-abc" || got.ContentType != "text/plain" || got.StatusCode != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Same key in another session is a different request.
	other := fp
	other.Session = "s-2"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("record leaked across sessions: ok=%v err=%v", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("hash-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}

	if n, err := store.Prune(ctx, time.Unix(124, 0).UTC()); err != nil || n != 1 {
		t.Fatalf("Prune: n=%d err=%v", n, err)
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("record survived prune: ok=%v err=%v", ok, err)
	}
}

// RunTripRegistry exercises the behaviors every tripregistry.Registry must share.
func RunTripRegistry(t *testing.T, newRegistry TripRegistryFactory) {
	t.Helper()
	ctx := context.Background()

	reg, cleanup := newRegistry(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	empty, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All on empty registry: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty registry returned %d records", len(empty))
	}

	now := time.Unix(3000, 0).UTC()
	ids := []domain.TripID{
		domain.TripID(uuid.NewString()),
		domain.TripID(uuid.NewString()),
		domain.TripID(uuid.NewString()),
	}
	for i, id := range ids {
		// Identical business fields are allowed; only ids must differ.
		if err := reg.Append(ctx, domain.TripRecord{
			ID:            id,
			FullName:      "Same Person",
			TrainNumber:   "123A",
			DepartureDate: "2024-06-01",
			ArrivalDate:   "2024-06-02",
			CarNumber:     "5",
			SeatNumber:    "12",
			SubmittedAt:   now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != len(ids) {
		t.Fatalf("len=%d, want %d", len(got), len(ids))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("order: got[%d].ID=%s, want %s", i, got[i].ID, id)
		}
	}

	// Mutating the snapshot must not leak into the registry.
	got[0].FullName = "Mutated"
	_ = append(got[:1], got[2:]...)
	again, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All again: %v", err)
	}
	if len(again) != len(ids) || again[0].FullName != "Same Person" || again[1].ID != ids[1] {
		t.Fatalf("registry changed through snapshot: %#v", again)
	}

	if err := reg.Append(ctx, domain.TripRecord{ID: ids[1]}); !errors.Is(err, tripregistryport.ErrAlreadyExists) {
		t.Fatalf("duplicate id: err=%v, want ErrAlreadyExists", err)
	}
	if err := reg.Append(ctx, domain.TripRecord{}); !errors.Is(err, tripregistryport.ErrInvalidID) {
		t.Fatalf("empty id: err=%v, want ErrInvalidID", err)
	}
	after, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All after rejected appends: %v", err)
	}
	if len(after) != len(ids) {
		t.Fatalf("rejected appends changed registry: len=%d, want %d", len(after), len(ids))
	}
}
