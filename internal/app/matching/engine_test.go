package matching

import (
	"testing"

	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

func trip(id domain.TripID, train, dep, arr, car string) domain.TripRecord {
	return domain.TripRecord{
		ID:            id,
		FullName:      "Passenger " + string(id),
		TrainNumber:   train,
		DepartureDate: dep,
		ArrivalDate:   arr,
		CarNumber:     car,
	}
}

func TestFellowPassengers_MatchesOnTrainDatesAndCar(t *testing.T) {
	t.Parallel()

	q := trip("q", "123A", "2024-06-01", "2024-06-02", "5")
	candidates := []domain.TripRecord{
		trip("a", "123A", "2024-06-01", "2024-06-02", "5"),
		trip("b", "123A", "2024-06-01", "2024-06-02", "6"), // other car
		trip("c", "124A", "2024-06-01", "2024-06-02", "5"), // other train
		trip("d", "123A", "2024-06-03", "2024-06-02", "5"), // other departure
		trip("e", "123A", "2024-06-01", "2024-06-04", "5"), // other arrival
		trip("f", "123A", "2024-06-01", "2024-06-02", "5"),
	}

	got := FellowPassengers(q, candidates)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "f" {
		t.Fatalf("got=%v, want [a f]", ids(got))
	}
}

func TestFellowPassengers_NeverIncludesQuery(t *testing.T) {
	t.Parallel()

	q := trip("q", "", "", "", "")
	got := FellowPassengers(q, []domain.TripRecord{q, q})
	if len(got) != 0 {
		t.Fatalf("got=%v, want []", ids(got))
	}
}

func TestFellowPassengers_ExactComparison(t *testing.T) {
	t.Parallel()

	q := trip("q", "123A", "2024-06-01", "2024-06-02", "5")
	candidates := []domain.TripRecord{
		trip("lower", "123a", "2024-06-01", "2024-06-02", "5"),
		trip("space", "123A ", "2024-06-01", "2024-06-02", "5"),
		trip("zero", "123A", "2024-06-01", "2024-06-02", "05"),
	}
	if got := FellowPassengers(q, candidates); len(got) != 0 {
		t.Fatalf("got=%v, want []", ids(got))
	}
}

func TestFellowPassengers_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	got := FellowPassengers(trip("q", "1", "", "", ""), nil)
	if got == nil {
		t.Fatalf("got=nil, want empty slice")
	}
}

func TestIsFellowPassenger_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]domain.TripRecord{
		{trip("a", "123A", "2024-06-01", "2024-06-02", "5"), trip("b", "123A", "2024-06-01", "2024-06-02", "5")},
		{trip("a", "123A", "2024-06-01", "2024-06-02", "5"), trip("b", "123A", "2024-06-01", "2024-06-02", "6")},
		{trip("a", "", "", "", ""), trip("b", "", "", "", "")},
		{trip("a", "X", "d", "d", "1"), trip("a", "X", "d", "d", "1")},
	}
	for _, p := range pairs {
		if IsFellowPassenger(p[0], p[1]) != IsFellowPassenger(p[1], p[0]) {
			t.Fatalf("asymmetric for %+v / %+v", p[0], p[1])
		}
	}
}

func ids(rs []domain.TripRecord) []domain.TripID {
	out := make([]domain.TripID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
