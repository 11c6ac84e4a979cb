package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/tally/internal/config"
	"github.com/rzbill/tally/internal/runtime"
	logpkg "github.com/rzbill/tally/pkg/log"
)

func newTestServer(t *testing.T, mutate func(*cfgpkg.Config)) *Server {
	t.Helper()
	cfg := cfgpkg.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: logpkg.NewLogger(logpkg.WithLevel(logpkg.ErrorLevel))})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt, rt.Logger())
}

func do(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/v1/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestIndexHandler(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["service"] != "tally" {
		t.Fatalf("unexpected index payload: %v", resp)
	}
}

func TestUnknownPathReturnsJSON404(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/v1/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("404 body must be json: %v", err)
	}
	if _, ok := resp["available_endpoints"]; !ok {
		t.Fatalf("404 body must list endpoints: %v", resp)
	}
}

func TestTrackEvent(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodPost, "/v1/events",
		`{"kind":"purchase","subject_id":"u-1","product_id":"p-9","promotion_id":"promo-1","quantity":3}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Accepted bool   `json:"accepted"`
		ID       string `json:"id"`
		Total    int64  `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Accepted || resp.Total != 3 || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Quantity defaults to 1 when omitted.
	w = do(t, s, http.MethodPost, "/v1/events", `{"kind":"visit","subject_id":"u-2","page":"/pricing"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 4 {
		t.Fatalf("want running total 4, got %d", resp.Total)
	}
}

func TestTrackValidation(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"kind":"purchase","quantity":0}`},
		{"negative quantity", `{"kind":"purchase","quantity":-2}`},
		{"unknown kind", `{"kind":"refund","quantity":1}`},
		{"missing kind", `{"quantity":1}`},
		{"bad json", `{"kind":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/events", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status: %d body: %s", w.Code, w.Body.String())
			}
		})
	}
	// Rejected appends never touch the total.
	w := do(t, s, http.MethodGet, "/v1/stats", "", nil)
	var stats struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("rejected events must not change the total, got %d", stats.Total)
	}
}

func TestTrackMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/v1/events", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestStatsWindow(t *testing.T) {
	s := newTestServer(t, nil)

	// One event three hours old (client-supplied timestamp), one fresh.
	old := time.Now().Add(-3 * time.Hour)
	w := do(t, s, http.MethodPost, "/v1/events", `{"kind":"visit","subject_id":"u-1"}`,
		map[string]string{"X-Timestamp": fmt.Sprintf("%d", old.Unix())})
	if w.Code != http.StatusCreated {
		t.Fatalf("track old: %d", w.Code)
	}
	w = do(t, s, http.MethodPost, "/v1/events", `{"kind":"purchase","subject_id":"u-2","quantity":5}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("track fresh: %d", w.Code)
	}

	var stats struct {
		Status      string  `json:"status"`
		Total       int64   `json:"total"`
		RecentCount int64   `json:"recent_count"`
		WindowHours float64 `json:"window_hours"`
		Uptime      string  `json:"uptime"`
	}

	// Default one-hour window sees only the fresh record.
	w = do(t, s, http.MethodGet, "/v1/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 6 {
		t.Fatalf("want total 6, got %d", stats.Total)
	}
	if stats.RecentCount != 1 {
		t.Fatalf("want 1 recent record, got %d", stats.RecentCount)
	}
	if stats.WindowHours != 1.0 || stats.Status != "healthy" || stats.Uptime == "" {
		t.Fatalf("unexpected stats payload: %+v", stats)
	}

	// A six-hour window sees both.
	w = do(t, s, http.MethodGet, "/v1/stats?hours=6", "", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.RecentCount != 2 {
		t.Fatalf("want 2 recent records, got %d", stats.RecentCount)
	}
}

func TestStatsRejectsOutOfRangeHours(t *testing.T) {
	s := newTestServer(t, nil)
	for _, q := range []string{"0.01", "500", "-4", "abc"} {
		w := do(t, s, http.MethodGet, "/v1/stats?hours="+q, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("hours=%s: status %d", q, w.Code)
		}
	}
}

func TestEventOriginRecorded(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodPost, "/v1/events", `{"kind":"visit"}`,
		map[string]string{"X-Forwarded-For": "203.0.113.50"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status: %d", w.Code)
	}
	recs, err := s.rt.Ledger().Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(recs) != 1 || recs[0].Origin != "203.0.113.50" {
		t.Fatalf("origin not recorded: %+v", recs)
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	s := newTestServer(t, func(c *cfgpkg.Config) {
		c.RateLimit = cfgpkg.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	})
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := do(t, s, http.MethodPost, "/v1/events", `{"kind":"visit"}`, nil)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated {
		t.Fatalf("burst should pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited: %v", codes)
	}
}
