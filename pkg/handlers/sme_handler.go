package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// CreateSMERequest for POST /api/smes. The payload mirrors the intake form;
// measurement fields keep their raw unit-suffixed strings.
type CreateSMERequest struct {
	BusinessName     string  `json:"business_name"`
	Sector           string  `json:"sector"`
	Region           string  `json:"region"`
	NumEmployees     int     `json:"num_employees"`
	AvgAnnualRevenue float64 `json:"avg_annual_revenue"`
	YearsInOperation int     `json:"years_in_operation"`

	IsProfitable      bool `json:"is_profitable"`
	MarketCompetition int  `json:"market_competition"`

	HasBCP                 bool    `json:"has_bcp"`
	EnergyUsage            *string `json:"energy_usage,omitempty"`
	WaterUsage             *string `json:"water_usage,omitempty"`
	WasteManagement        string  `json:"waste_management"`
	HasEnvironmentalPermit bool    `json:"has_environmental_permit"`
	GHGEmissions           *string `json:"ghg_emissions,omitempty"`

	PctEmployeesHealth    float64  `json:"pct_emp_health"`
	PctEmployeesSSS       float64  `json:"pct_emp_sss"`
	EmployeeTurnoverRate  float64  `json:"emp_turnover_rate"`
	CSRSpending           *float64 `json:"csr_spending,omitempty"`
	WorkplaceSafety       float64  `json:"workplace_safety"`
	EmergencyPreparedness float64  `json:"emergency_preparedness"`

	FinReportingFreq string  `json:"fin_reporting_freq"`
	HasPolicies      bool    `json:"has_policies"`
	InspectionScore  float64 `json:"inspection_score"`
}

// SMEListResponse for GET /api/smes
type SMEListResponse struct {
	SMEs  []*models.SMESummary `json:"smes"`
	Total int                  `json:"total"`
}

// AttachFilesRequest for PUT /api/smes/{sid}/files
type AttachFilesRequest struct {
	BusinessPermitFile *string `json:"business_permit_file,omitempty"`
	PayrollFile        *string `json:"payroll_file,omitempty"`
	IncomeTaxFile      *string `json:"income_tax_file,omitempty"`
}

// ============================================================================
// Handler
// ============================================================================

// SMEHandler handles SME profile HTTP requests.
type SMEHandler struct {
	smeService services.SMEService
	logger     *zap.Logger
}

// NewSMEHandler creates a new SME handler.
func NewSMEHandler(smeService services.SMEService, logger *zap.Logger) *SMEHandler {
	return &SMEHandler{smeService: smeService, logger: logger}
}

// RegisterRoutes registers the SME handler's routes on the given mux.
func (h *SMEHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/smes", h.Create)
	mux.HandleFunc("GET /api/smes", h.List)
	mux.HandleFunc("GET /api/smes/{sid}", h.Get)
	mux.HandleFunc("PUT /api/smes/{sid}/files", h.AttachFiles)
	mux.HandleFunc("DELETE /api/smes/{sid}", h.Delete)
}

// Create handles POST /api/smes
func (h *SMEHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSMERequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile := &models.SMEProfile{
		BusinessName:           req.BusinessName,
		Sector:                 req.Sector,
		Region:                 req.Region,
		NumEmployees:           req.NumEmployees,
		AvgAnnualRevenue:       req.AvgAnnualRevenue,
		YearsInOperation:       req.YearsInOperation,
		IsProfitable:           req.IsProfitable,
		MarketCompetition:      req.MarketCompetition,
		HasBCP:                 req.HasBCP,
		EnergyUsage:            req.EnergyUsage,
		WaterUsage:             req.WaterUsage,
		WasteManagement:        req.WasteManagement,
		HasEnvironmentalPermit: req.HasEnvironmentalPermit,
		GHGEmissions:           req.GHGEmissions,
		PctEmployeesHealth:     req.PctEmployeesHealth,
		PctEmployeesSSS:        req.PctEmployeesSSS,
		EmployeeTurnoverRate:   req.EmployeeTurnoverRate,
		CSRSpending:            req.CSRSpending,
		WorkplaceSafety:        req.WorkplaceSafety,
		EmergencyPreparedness:  req.EmergencyPreparedness,
		FinReportingFreq:       req.FinReportingFreq,
		HasPolicies:            req.HasPolicies,
		InspectionScore:        req.InspectionScore,
	}

	if err := h.smeService.Create(r.Context(), profile); err != nil {
		h.logger.Error("Failed to create SME profile",
			zap.String("business_name", req.BusinessName),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "create_sme_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: profile}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/smes. An optional ?q= query filters by business name.
func (h *SMEHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.smeService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("Failed to list SME profiles", zap.Error(err))
		if err := ServiceErrorResponse(w, err, "list_smes_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := SMEListResponse{SMEs: summaries, Total: len(summaries)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/smes/{sid}
func (h *SMEHandler) Get(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.smeService.Get(r.Context(), smeID)
	if err != nil {
		h.logger.Error("Failed to get SME profile",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "get_sme_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AttachFiles handles PUT /api/smes/{sid}/files
func (h *SMEHandler) AttachFiles(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	var req AttachFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	refs := models.FileReferences{
		BusinessPermitFile: req.BusinessPermitFile,
		PayrollFile:        req.PayrollFile,
		IncomeTaxFile:      req.IncomeTaxFile,
	}

	if err := h.smeService.AttachFiles(r.Context(), smeID, refs); err != nil {
		h.logger.Error("Failed to attach SME files",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "attach_files_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "File references updated"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/smes/{sid}
func (h *SMEHandler) Delete(w http.ResponseWriter, r *http.Request) {
	smeID, ok := ParseSMEID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.smeService.Delete(r.Context(), smeID); err != nil {
		h.logger.Error("Failed to delete SME profile",
			zap.String("sme_id", smeID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "delete_sme_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "SME profile deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
