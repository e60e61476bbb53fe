package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/trades/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/trades/{userID}", "200")
	before := testutil.ToFloat64(counter)

	// Two different user ids must land on the same series.
	for _, path := range []string{
		"/api/trades/64f1c2a9e3b8d4f5a6b7c8d9",
		"/api/trades/aaaaaaaaaaaaaaaaaaaaaaaa",
	} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, w.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 requests on the pattern series, got %v", got)
	}
}

func TestMiddleware_CapturesStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/missing/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues("GET", "/missing/{id}", "404")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest("GET", "/missing/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected 1 request on the 404 series, got %v", got)
	}
}
