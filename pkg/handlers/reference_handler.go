package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
)

// SectorListResponse for GET /api/reference/sectors
type SectorListResponse struct {
	Sectors []*models.SectorRiskEntry `json:"sectors"`
	Total   int                       `json:"total"`
}

// RegionListResponse for GET /api/reference/regions
type RegionListResponse struct {
	Regions []*models.RegionRiskEntry `json:"regions"`
	Total   int                       `json:"total"`
}

// ReferenceHandler serves the static sector and region reference tables, so
// intake clients can populate their dropdowns from the same data the scorer
// uses.
type ReferenceHandler struct {
	refs   repositories.ReferenceRepository
	logger *zap.Logger
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(refs repositories.ReferenceRepository, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{refs: refs, logger: logger}
}

// RegisterRoutes registers the reference handler's routes on the given mux.
func (h *ReferenceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reference/sectors", h.Sectors)
	mux.HandleFunc("GET /api/reference/regions", h.Regions)
}

// Sectors handles GET /api/reference/sectors
func (h *ReferenceHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.refs.ListSectors(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sectors", zap.Error(err))
		if err := ServiceErrorResponse(w, err, "list_sectors_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := SectorListResponse{Sectors: sectors, Total: len(sectors)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Regions handles GET /api/reference/regions
func (h *ReferenceHandler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.refs.ListRegions(r.Context())
	if err != nil {
		h.logger.Error("Failed to list regions", zap.Error(err))
		if err := ServiceErrorResponse(w, err, "list_regions_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := RegionListResponse{Regions: regions, Total: len(regions)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
