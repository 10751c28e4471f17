package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/api/response"
	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/insight"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

// InsightHandler serves LLM commentary for a price range.
type InsightHandler struct {
	tracker  Tracker
	provider insight.Provider // nil when no provider configured
	log      *zap.Logger
}

// NewInsightHandler creates the insight handler. provider may be nil.
func NewInsightHandler(tracker Tracker, provider insight.Provider, log *zap.Logger) *InsightHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightHandler{tracker: tracker, provider: provider, log: log}
}

// Insight handles GET /api/v1/coins/{id}/insight?from=&to=
func (h *InsightHandler) Insight(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		response.Error(w, http.StatusNotImplemented, core.ErrInsightDisabled)
		return
	}

	coinID := r.PathValue("id")
	from, to, err := parseRange(r)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	name, err := h.tracker.CoinName(r.Context(), coinID)
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

	text, err := insight.Commentary(r.Context(), h.provider, insight.Request{
		CoinName: name,
		From:     core.FormatDate(from),
		To:       core.FormatDate(to),
		Points:   len(series),
		Summary:  sum,
	})
	if err != nil {
		h.log.Warn("insight request failed",
			zap.String("coin", coinID),
			zap.Error(err))
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"coin_id":  coinID,
		"provider": h.provider.Name(),
		"insight":  text,
		"summary":  newSummaryView(sum),
	})
}
