package api

import (
	"net/http"

	"github.com/cryptotrack/cryptotracker/internal/api/response"
)

// Coins handles GET /api/v1/coins
func (h *Handler) Coins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.tracker.Catalog(r.Context())
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"coins": coins,
		"count": len(coins),
	})
}
