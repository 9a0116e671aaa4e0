package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// ScoreHistoryResponse for GET /api/smes/{sid}/score/history
type ScoreHistoryResponse struct {
	Entries []*models.AuditLogEntry `json:"entries"`
	Total   int                     `json:"total"`
}

// ScoringHandler handles scoring HTTP requests.
type ScoringHandler struct {
	scoringService services.ScoringService
	logger         *zap.Logger
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(scoringService services.ScoringService, logger *zap.Logger) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService, logger: logger}
}

// RegisterRoutes registers the scoring handler's routes on the given mux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/smes/{sid}/score", h.Score)
	mux.HandleFunc("GET /api/smes/{sid}/score/history", h.History)
}

// Score handles POST /api/smes/{sid}/score. Scoring is a POST because it can
// append to the audit history.
func (h *ScoringHandler) Score(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.scoringService.Score(r.Context(), smeID)
	if err != nil {
		h.logger.Error("Failed to score SME",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "score_sme_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// History handles GET /api/smes/{sid}/score/history. An optional ?limit=
// query caps the number of entries returned.
func (h *ScoringHandler) History(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		limit = parsed
	}

	entries, err := h.scoringService.History(r.Context(), smeID, limit)
	if err != nil {
		h.logger.Error("Failed to get score history",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "score_history_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ScoreHistoryResponse{Entries: entries, Total: len(entries)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
