package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func searchValues(name, seat, car string) url.Values {
	return url.Values{
		"fullName":       {name},
		"trainNumber":    {"123A"},
		"carNumber":      {car},
		"departureDate":  {"2024-06-01"},
		"arrivalDate":    {"2024-06-02"},
		"seatNumber":     {seat},
		"additionalInfo": {""},
	}
}

func TestPages_HomeIsInitialScreen(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, raw := ts.do(ts.client, http.MethodGet, "/", nil)
	body := string(raw)
	if status != http.StatusOK || !strings.Contains(body, `id="screen-home"`) {
		t.Fatalf("status=%d body=%s", status, body)
	}
}

func TestPages_SearchFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, body := ts.postForm(ts.client, "/navigate", url.Values{"view": {"search"}})
	if status != http.StatusOK || !strings.Contains(body, `id="screen-search"`) {
		t.Fatalf("navigate: status=%d", status)
	}
	if strings.Contains(body, `id="search-results"`) {
		t.Fatalf("results shown before any search")
	}

	status, body = ts.postForm(ts.client, "/search", searchValues("Анна", "12", "5"))
	if status != http.StatusOK {
		t.Fatalf("search: status=%d", status)
	}
	if !strings.Contains(body, `id="no-companions"`) {
		t.Fatalf("expected empty-result notice, body=%s", body)
	}
	if !strings.Contains(body, `value="Анна"`) {
		t.Fatalf("form not kept after submit")
	}

	status, body = ts.postForm(ts.client, "/search", searchValues("Борис", "7", "5"))
	if status != http.StatusOK {
		t.Fatalf("search: status=%d", status)
	}
	if strings.Contains(body, `id="no-companions"`) || !strings.Contains(body, "<td class=\"strong\">Анна</td>") {
		t.Fatalf("expected Анна in results, body=%s", body)
	}
	// Empty additional info is shown as a dash.
	if !strings.Contains(body, "<td>—</td>") {
		t.Fatalf("expected dash placeholder")
	}
}

func TestPages_CabinetTabs(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, body := ts.postForm(ts.client, "/navigate", url.Values{"view": {"cabinet"}})
	if status != http.StatusOK || !strings.Contains(body, `id="no-trips"`) {
		t.Fatalf("empty cabinet: status=%d body=%s", status, body)
	}

	ts.postForm(ts.client, "/search", searchValues("Анна", "12", "5"))
	ts.postForm(ts.client, "/search", searchValues("Борис", "7", "5"))

	status, body = ts.postForm(ts.client, "/navigate", url.Values{"view": {"cabinet"}})
	if status != http.StatusOK || !strings.Contains(body, `id="trip-history"`) {
		t.Fatalf("cabinet: status=%d body=%s", status, body)
	}
	if !strings.Contains(body, "01.06.2024") || !strings.Contains(body, "02.06.2024") {
		t.Fatalf("dates not formatted, body=%s", body)
	}

	status, raw := ts.do(ts.client, http.MethodGet, "/?tab=contacts", nil)
	body = string(raw)
	if status != http.StatusOK || !strings.Contains(body, `id="contacts"`) || !strings.Contains(body, "Поезд 123A, вагон 5, место 12") {
		t.Fatalf("contacts: status=%d body=%s", status, body)
	}
}

func TestPages_NavigationKeepsForm(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.postForm(ts.client, "/search", searchValues("Анна", "12", "5"))
	ts.postForm(ts.client, "/navigate", url.Values{"view": {"home"}})
	_, body := ts.postForm(ts.client, "/navigate", url.Values{"view": {"search"}})

	if !strings.Contains(body, `value="Анна"`) || !strings.Contains(body, `id="search-results"`) {
		t.Fatalf("form or results lost after navigation, body=%s", body)
	}
}

func TestPages_UnknownViewIs422(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, _ := ts.postForm(ts.client, "/navigate", url.Values{"view": {"admin"}})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", status)
	}
}

func TestPages_HealthAndStaticSkipSessions(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, raw := ts.do(ts.client, http.MethodGet, "/healthz", nil)
	if status != http.StatusOK || string(raw) != "ok" {
		t.Fatalf("healthz status=%d body=%q", status, string(raw))
	}
	status, _ = ts.do(ts.client, http.MethodGet, "/static/styles.css", nil)
	if status != http.StatusOK {
		t.Fatalf("static status=%d", status)
	}
	if ts.mgr.Len() != 0 {
		t.Fatalf("sessions=%d, want 0", ts.mgr.Len())
	}
}

func TestDisplayDate(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2024-06-01": "01.06.2024",
		"":           "",
		"tomorrow":   "tomorrow",
		"01.06.2024": "01.06.2024",
	}
	for in, want := range cases {
		if got := displayDate(in); got != want {
			t.Fatalf("displayDate(%q)=%q, want %q", in, got, want)
		}
	}
}
