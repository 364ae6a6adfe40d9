package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	memclock "github.com/Overland-East-Bay/fellow-passengers/internal/adapters/memory/clock"
	memidempotency "github.com/Overland-East-Bay/fellow-passengers/internal/adapters/memory/idempotency"
	memtripregistry "github.com/Overland-East-Bay/fellow-passengers/internal/adapters/memory/tripregistry"
	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/tripregistry"
)

type testServer struct {
	t       *testing.T
	baseURL string
	client  *http.Client
	mgr     *session.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	mgr := session.NewManager(func() tripregistry.Registry { return memtripregistry.NewRegistry() }, clk, time.Hour)
	h := NewRouter(mgr, RouterOptions{
		Logger:      zerolog.Nop(),
		Cookie:      CookieOptions{Name: "sid"},
		Idempotency: memidempotency.NewStore(),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testServer{t: t, baseURL: srv.URL, client: newClient(t), mgr: mgr}
}

// newClient returns a client with its own cookie jar, i.e. its own session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func (s *testServer) do(c *http.Client, method, path string, body any) (int, []byte) {
	s.t.Helper()
	return s.doWithHeaders(c, method, path, body, nil)
}

func (s *testServer) doWithHeaders(c *http.Client, method, path string, body any, headers map[string]string) (int, []byte) {
	s.t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				s.t.Fatalf("marshal: %v", err)
			}
			rdr = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, s.baseURL+path, rdr)
	if err != nil {
		s.t.Fatalf("NewRequest: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func (s *testServer) postForm(c *http.Client, path string, values url.Values) (int, string) {
	s.t.Helper()
	resp, err := c.PostForm(s.baseURL+path, values)
	if err != nil {
		s.t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %T: %v (body=%s)", v, err, string(raw))
	}
	return v
}
