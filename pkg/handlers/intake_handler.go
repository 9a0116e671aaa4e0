package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// IntakeHandler handles the step-by-step intake wizard over HTTP. Each step
// endpoint only succeeds when the session is in the matching state.
type IntakeHandler struct {
	intakeService services.IntakeService
	logger        *zap.Logger
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(intakeService services.IntakeService, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService, logger: logger}
}

// RegisterRoutes registers the intake handler's routes on the given mux.
func (h *IntakeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/intake", h.Start)
	mux.HandleFunc("GET /api/intake/{iid}", h.Get)
	mux.HandleFunc("POST /api/intake/{iid}/basics", h.SubmitBasics)
	mux.HandleFunc("POST /api/intake/{iid}/environment", h.SubmitEnvironment)
	mux.HandleFunc("POST /api/intake/{iid}/social", h.SubmitSocial)
	mux.HandleFunc("POST /api/intake/{iid}/governance", h.SubmitGovernance)
	mux.HandleFunc("DELETE /api/intake/{iid}", h.Abandon)
}

// Start handles POST /api/intake
func (h *IntakeHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.intakeService.Start(r.Context())
	if err != nil {
		h.logger.Error("Failed to start intake session", zap.Error(err))
		if err := ServiceErrorResponse(w, err, "start_intake_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: session}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/intake/{iid}
func (h *IntakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	session, err := h.intakeService.Get(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to get intake session",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "get_intake_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: session}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SubmitBasics handles POST /api/intake/{iid}/basics
func (h *IntakeHandler) SubmitBasics(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	var step models.BasicsStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	session, err := h.intakeService.SubmitBasics(r.Context(), sessionID, step)
	h.writeStepResult(w, sessionID, "basics", session, err)
}

// SubmitEnvironment handles POST /api/intake/{iid}/environment
func (h *IntakeHandler) SubmitEnvironment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	var step models.EnvironmentStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	session, err := h.intakeService.SubmitEnvironment(r.Context(), sessionID, step)
	h.writeStepResult(w, sessionID, "environment", session, err)
}

// SubmitSocial handles POST /api/intake/{iid}/social
func (h *IntakeHandler) SubmitSocial(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	var step models.SocialStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	session, err := h.intakeService.SubmitSocial(r.Context(), sessionID, step)
	h.writeStepResult(w, sessionID, "social", session, err)
}

// SubmitGovernance handles POST /api/intake/{iid}/governance. The final step
// promotes the draft to a real SME profile.
func (h *IntakeHandler) SubmitGovernance(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	var step models.GovernanceStep
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile, err := h.intakeService.SubmitGovernance(r.Context(), sessionID, step)
	if err != nil {
		h.logger.Error("Failed to complete intake session",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "complete_intake_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: profile}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Abandon handles DELETE /api/intake/{iid}
func (h *IntakeHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ParseSessionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.intakeService.Abandon(r.Context(), sessionID); err != nil {
		h.logger.Error("Failed to abandon intake session",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "abandon_intake_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Intake session abandoned"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *IntakeHandler) writeStepResult(w http.ResponseWriter, sessionID uuid.UUID, step string, session *models.IntakeSession, err error) {
	if err != nil {
		h.logger.Error("Failed to submit intake step",
			zap.String("session_id", sessionID.String()),
			zap.String("step", step),
			zap.Error(err))
		if err := ServiceErrorResponse(w, err, "submit_"+step+"_failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: session}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
