package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/storage/archive"
)

func archiveRequest(coinID, query string) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/coins/"+coinID+"/archive"+query, nil)
	req.SetPathValue("id", coinID)
	return req
}

func TestArchiveHandler_Archive(t *testing.T) {
	fs, err := archive.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	tr := &stubTracker{series: core.PriceSeries{
		{Date: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Price: 100},
	}}
	h := NewArchiveHandler(tr, fs, "localfs", nil, nil)

	w := httptest.NewRecorder()
	h.Archive(w, archiveRequest("bitcoin", "?from=1699900000&to=1700100000"))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Path   string `json:"path"`
			Points int    `json:"points"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if resp.Data.Points != 1 {
		t.Errorf("expected 1 point, got %d", resp.Data.Points)
	}

	data, err := fs.Read(context.Background(), resp.Data.Path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), "2023-11-14,100.000000000000") {
		t.Errorf("snapshot missing row: %q", data)
	}
}

func TestArchiveHandler_NoData(t *testing.T) {
	fs, _ := archive.NewLocalFS(t.TempDir())
	h := NewArchiveHandler(&stubTracker{series: core.PriceSeries{}}, fs, "localfs", nil, nil)

	w := httptest.NewRecorder()
	h.Archive(w, archiveRequest("nocoin", ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty series, got %d", w.Code)
	}
}

func TestArchiveHandler_InvalidRange(t *testing.T) {
	fs, _ := archive.NewLocalFS(t.TempDir())
	h := NewArchiveHandler(&stubTracker{}, fs, "localfs", nil, nil)

	w := httptest.NewRecorder()
	h.Archive(w, archiveRequest("bitcoin", "?from=2&to=1"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
