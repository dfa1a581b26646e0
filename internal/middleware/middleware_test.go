package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/metrics"
)

func echoAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := AccountIDFromContext(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(strconv.FormatInt(id, 10)))
}

func TestBearerAuth(t *testing.T) {
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	valid, err := tokens.Issue(9)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "required missing", required: true, wantStatus: http.StatusUnauthorized},
		{name: "required valid", required: true, header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "9"},
		{name: "required bad scheme", required: true, header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "optional missing", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "optional valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "9"},
		{name: "optional invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "optional empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := OptionalJWTAuth(tokens)
			if tt.required {
				mw = JWTAuth(tokens)
			}
			h := mw(http.HandlerFunc(echoAccount))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := RateLimit(ctx, 0.5, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:1234"); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusNoContent)
		}
	}

	rec := do("10.0.0.1:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("Retry-After = %q, want %q", rec.Header().Get("Retry-After"), "2")
	}

	if rec := do("10.0.0.2:1234"); rec.Code != http.StatusNoContent {
		t.Errorf("other client should not be limited, got %d", rec.Code)
	}
}

func TestRateLimiterEvict(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	now := time.Now()

	rl.getLimiter("a", now.Add(-2*visitorTTL))
	rl.getLimiter("b", now)
	rl.evict(now)

	if _, ok := rl.visitors["a"]; ok {
		t.Error("idle visitor should have been evicted")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("active visitor should be kept")
	}
}

func seriesCount(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	n := 0
	for range ch {
		n++
	}
	return n
}

func TestLoggerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Logger)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if !metrics.RequestDuration.DeleteLabelValues(http.MethodGet, "/things/{id}", "418") {
		t.Error("expected a latency series labelled with the route pattern")
	}
	if metrics.RequestDuration.DeleteLabelValues(http.MethodGet, "/things/42", "418") {
		t.Error("raw request path must not be used as a route label")
	}
}

func TestLoggerBoundsUnmatchedRoutes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Logger)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	before := seriesCount(metrics.RequestDuration)
	for i := range 200 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scan/"+strconv.Itoa(i), nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	}

	if got := seriesCount(metrics.RequestDuration) - before; got != 1 {
		t.Errorf("unmatched requests created %d series, want 1", got)
	}
	if !metrics.RequestDuration.DeleteLabelValues(http.MethodGet, unmatchedRoute, "404") {
		t.Errorf("expected unmatched requests under the %q route label", unmatchedRoute)
	}
}
