package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// SupplierRequest for POST and PUT under /api/smes/{sid}/suppliers.
type SupplierRequest struct {
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Region    string `json:"region"`
	HasPermit bool   `json:"has_permit"`
}

// SupplierListResponse for GET /api/smes/{sid}/suppliers
type SupplierListResponse struct {
	Suppliers []*models.SupplierRecord `json:"suppliers"`
	Total     int                      `json:"total"`
}

// SupplierHandler handles supplier HTTP requests.
type SupplierHandler struct {
	supplierService services.SupplierService
	logger          *zap.Logger
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(supplierService services.SupplierService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService, logger: logger}
}

// RegisterRoutes registers the supplier handler's routes on the given mux.
func (h *SupplierHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/smes/{sid}/suppliers"

	mux.HandleFunc("POST "+base, h.Add)
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("PUT "+base+"/{supid}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{supid}", h.Remove)
}

// Add handles POST /api/smes/{sid}/suppliers
func (h *SupplierHandler) Add(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	supplier := &models.SupplierRecord{
		SMEID:     smeID,
		Name:      req.Name,
		Sector:    req.Sector,
		Region:    req.Region,
		HasPermit: req.HasPermit,
	}

	if err := h.supplierService.Add(r.Context(), supplier); err != nil {
		h.logger.Error("Failed to add supplier",
			zap.String("sme_id", smeID.String()),
			zap.String("name", req.Name),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "add_supplier_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: supplier}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/smes/{sid}/suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	suppliers, err := h.supplierService.ListBySME(r.Context(), smeID)
	if err != nil {
		h.logger.Error("Failed to list suppliers",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "list_suppliers_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := SupplierListResponse{Suppliers: suppliers, Total: len(suppliers)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/smes/{sid}/suppliers/{supid}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}
	supplierID, ok := ParseSupplierID(w, r, h.logger)
	if !ok {
		return
	}

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	supplier := &models.SupplierRecord{
		ID:        supplierID,
		SMEID:     smeID,
		Name:      req.Name,
		Sector:    req.Sector,
		Region:    req.Region,
		HasPermit: req.HasPermit,
	}

	if err := h.supplierService.Update(r.Context(), supplier); err != nil {
		h.logger.Error("Failed to update supplier",
			zap.String("supplier_id", supplierID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "update_supplier_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: supplier}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Remove handles DELETE /api/smes/{sid}/suppliers/{supid}
func (h *SupplierHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseSMEID(w, r, h.logger); !ok {
		return
	}
	supplierID, ok := ParseSupplierID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.supplierService.Remove(r.Context(), supplierID); err != nil {
		h.logger.Error("Failed to remove supplier",
			zap.String("supplier_id", supplierID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "remove_supplier_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Supplier removed"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
