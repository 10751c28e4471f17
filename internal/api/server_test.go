package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

type fakeMarket struct{}

func (f *fakeMarket) Name() string { return "fake" }

func (f *fakeMarket) Coins(ctx context.Context) ([]core.Coin, error) {
	return []core.Coin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}, nil
}

func (f *fakeMarket) MarketRange(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error) {
	return core.PriceSeries{
		{Date: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Price: 42000},
	}, nil
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	svc := tracker.New(&fakeMarket{}, tracker.Options{
		CatalogTTL: time.Minute,
		HistoryTTL: time.Minute,
	})

	srv, err := NewServer(cfg, Dependencies{Tracker: svc}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}
}

func TestServerDashboard(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected HTML response, got %q", ct)
	}
}

func TestServerCoinsRoute(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/api/v1/coins", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bitcoin") {
		t.Errorf("expected catalog in body: %s", w.Body.String())
	}
}

func TestServerHistoryRoute(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/api/v1/coins/bitcoin/history", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2023-11-14") {
		t.Errorf("expected series in body: %s", w.Body.String())
	}
}

func TestServerAPIKeyAuth(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080, APIKey: "secret"})

	// Missing key
	req := httptest.NewRequest("GET", "/api/v1/coins", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	// Wrong key
	req = httptest.NewRequest("GET", "/api/v1/coins", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", w.Code)
	}

	// Correct key
	req = httptest.NewRequest("GET", "/api/v1/coins", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with valid key, got %d", w.Code)
	}

	// Health and dashboard stay open
	req = httptest.NewRequest("GET", "/api/health", nil)
	w = httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected health to bypass auth, got %d", w.Code)
	}
}

func TestServerInsightDisabled(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/api/v1/coins/bitcoin/insight", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("expected 501 without a provider, got %d", w.Code)
	}
}

func TestServerArchiveWithoutStorage(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("POST", "/api/v1/coins/bitcoin/archive", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("expected 501 without storage, got %d", w.Code)
	}
}

func TestServerUnknownRoute(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestServerRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on responses")
	}
}
