package api

import (
	"net/http"

	"github.com/cryptotrack/cryptotracker/internal/api/response"
	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

// History handles GET /api/v1/coins/{id}/history?from=&to=
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	coinID := r.PathValue("id")

	from, to, err := parseRange(r)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	series, err := h.tracker.History(r.Context(), coinID, from, to)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	// An empty series is a valid response; clients render the
	// "no data" state from count == 0.
	response.JSON(w, http.StatusOK, newSeriesView(coinID, from, to, series))
}

// Summary handles GET /api/v1/coins/{id}/summary?from=&to=
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	coinID := r.PathValue("id")

	from, to, err := parseRange(r)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	series, err := h.tracker.History(r.Context(), coinID, from, to)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	sum, ok := tracker.Summarize(series)
	if !ok {
		response.Error(w, http.StatusNotFound, core.ErrNoData)
		return
	}

	response.JSON(w, http.StatusOK, newSummaryView(sum))
}
