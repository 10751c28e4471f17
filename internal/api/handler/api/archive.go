package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/api/response"
	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/metrics"
	"github.com/cryptotrack/cryptotracker/internal/storage/archive"
)

// ArchiveHandler writes series snapshots to archive storage.
type ArchiveHandler struct {
	tracker Tracker
	storage archive.Storage
	backend string
	metrics *metrics.Registry
	log     *zap.Logger
}

// NewArchiveHandler creates the archive handler.
func NewArchiveHandler(tracker Tracker, storage archive.Storage, backend string, reg *metrics.Registry, log *zap.Logger) *ArchiveHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ArchiveHandler{
		tracker: tracker,
		storage: storage,
		backend: backend,
		metrics: reg,
		log:     log,
	}
}

// Archive handles POST /api/v1/coins/{id}/archive?from=&to=
func (h *ArchiveHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		response.Error(w, http.StatusNotImplemented, core.ErrArchiveFailed)
		return
	}

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
	if len(series) == 0 {
		response.Error(w, http.StatusNotFound, core.ErrNoData)
		return
	}

	path, err := archive.WriteSnapshot(r.Context(), h.storage, coinID, from, to, series)
	if err != nil {
		h.recordArchive("error")
		h.log.Error("snapshot write failed",
			zap.String("coin", coinID),
			zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	h.recordArchive("ok")

	response.JSON(w, http.StatusCreated, map[string]any{
		"coin_id": coinID,
		"path":    path,
		"points":  len(series),
		"backend": h.backend,
	})
}

func (h *ArchiveHandler) recordArchive(status string) {
	if h.metrics != nil {
		h.metrics.RecordArchive(h.backend, status)
	}
}
