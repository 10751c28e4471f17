package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

type stubTracker struct {
	coins  []core.Coin
	series core.PriceSeries
	err    error
}

func (s *stubTracker) Catalog(ctx context.Context) ([]core.Coin, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.coins, nil
}

func (s *stubTracker) History(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func newTestHandler(t *testing.T, tr Tracker) *Handler {
	t.Helper()
	h, err := NewHandler(tr, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

func TestDashboard_RendersChart(t *testing.T) {
	tr := &stubTracker{
		coins: []core.Coin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}},
		series: core.PriceSeries{
			{Date: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Price: 100},
			{Date: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), Price: 105},
		},
	}
	h := newTestHandler(t, tr)

	req := httptest.NewRequest("GET", "/?coin=bitcoin&from=2023-11-14&to=2023-11-15", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Price of Bitcoin from 2023-11-14 to 2023-11-15",
		"105.000000000000",
		"100.000000000000",
		"price-chart",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestDashboard_CatalogErrorIsFailSoft(t *testing.T) {
	tr := &stubTracker{err: errors.New("upstream down")}
	h := newTestHandler(t, tr)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)

	// The page still renders, with an error banner instead of a chart
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error fetching the coins list.") {
		t.Error("expected catalog error notice")
	}
}

func TestDashboard_EmptySeriesNotice(t *testing.T) {
	tr := &stubTracker{
		coins:  []core.Coin{{ID: "bitcoin", Name: "Bitcoin"}},
		series: core.PriceSeries{},
	}
	h := newTestHandler(t, tr)

	req := httptest.NewRequest("GET", "/?coin=bitcoin", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)

	if !strings.Contains(w.Body.String(), "No data available") {
		t.Error("expected no-data notice")
	}
}

func TestDashboard_InvalidRangeNotice(t *testing.T) {
	tr := &stubTracker{
		coins: []core.Coin{{ID: "bitcoin", Name: "Bitcoin"}},
	}
	h := newTestHandler(t, tr)

	req := httptest.NewRequest("GET", "/?coin=bitcoin&from=2023-12-01&to=2023-11-01", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)

	if !strings.Contains(w.Body.String(), "valid date range") {
		t.Error("expected invalid-range notice")
	}
}

func TestDashboard_DefaultsToFirstCoin(t *testing.T) {
	tr := &stubTracker{
		coins: []core.Coin{
			{ID: "bitcoin", Name: "Bitcoin"},
			{ID: "ethereum", Name: "Ethereum"},
		},
		series: core.PriceSeries{
			{Date: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Price: 100},
		},
	}
	h := newTestHandler(t, tr)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)

	if !strings.Contains(w.Body.String(), `value="bitcoin" selected`) {
		t.Error("expected first catalog coin to be selected by default")
	}
}
