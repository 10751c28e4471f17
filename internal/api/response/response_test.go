// internal/api/response/response_test.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]int{"coins": 3})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %s", ct)
	}

	var resp SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected meta timestamp")
	}
}

func TestError_CoreError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadGateway, core.WrapError(core.ErrUpstreamStatus, errors.New("status 500")))

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if resp.Error.Code != "UPSTREAM_STATUS" {
		t.Errorf("expected UPSTREAM_STATUS, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "status 500" {
		t.Errorf("expected cause, got %q", resp.Error.Cause)
	}
}

func TestError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	// Plain errors are not leaked to clients
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrInvalidRange, http.StatusBadRequest},
		{core.ErrCoinNotFound, http.StatusNotFound},
		{core.ErrNoData, http.StatusNotFound},
		{core.ErrInsightDisabled, http.StatusNotImplemented},
		{core.ErrUpstreamStatus, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
