package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// WatchlistRefreshRequest for POST /api/watchlist/refresh
type WatchlistRefreshRequest struct {
	Entries []models.WatchlistEntry `json:"entries"`
}

// WatchlistRefreshResponse reports how many entries were appended.
type WatchlistRefreshResponse struct {
	Added int `json:"added"`
}

// WatchlistHandler handles watchlist refresh requests. External scrapers push
// regulator blacklists and suspension lists through this endpoint.
type WatchlistHandler struct {
	watchlistService services.WatchlistService
	logger           *zap.Logger
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlistService services.WatchlistService, logger *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist handler's routes on the given mux.
func (h *WatchlistHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/watchlist/refresh", h.Refresh)
}

// Refresh handles POST /api/watchlist/refresh
func (h *WatchlistHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req WatchlistRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	added, err := h.watchlistService.Refresh(r.Context(), req.Entries)
	if err != nil {
		h.logger.Error("Failed to refresh watchlist", zap.Error(err))
		if err := ServiceErrorResponse(w, err, "refresh_watchlist_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: WatchlistRefreshResponse{Added: added}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
