package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// DashboardHandler serves channel aggregates.
type DashboardHandler struct {
	svc usecase.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc usecase.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /v1/dashboard/channels/{channelID}/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	stats, err := h.svc.ChannelStats(r.Context(), channelID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toChannelStatsResponse(stats))
}

// Videos handles GET /v1/dashboard/channels/{channelID}/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.ChannelVideos(r.Context(), channelID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toVideoResponse))
}
