package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

func newIntakeMux(svc services.IntakeService) *http.ServeMux {
	mux := http.NewServeMux()
	NewIntakeHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestStartIntakeEndpoint(t *testing.T) {
	session := &models.IntakeSession{ID: uuid.New(), State: models.IntakeBasics}
	mux := newIntakeMux(&mockIntakeService{session: session})

	req := httptest.NewRequest(http.MethodPost, "/api/intake", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data models.IntakeSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.IntakeBasics, resp.Data.State)
}

func TestSubmitBasicsEndpoint(t *testing.T) {
	session := &models.IntakeSession{ID: uuid.New(), State: models.IntakeEnvironment}
	mux := newIntakeMux(&mockIntakeService{session: session})

	body := `{"business_name": "Wizard Manufacturing", "sector": "Manufacturing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/intake/"+session.ID.String()+"/basics", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.IntakeSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.IntakeEnvironment, resp.Data.State)
}

func TestSubmitStepOutOfOrder(t *testing.T) {
	mux := newIntakeMux(&mockIntakeService{submitErr: apperrors.ErrInvalidState})

	req := httptest.NewRequest(http.MethodPost, "/api/intake/"+uuid.NewString()+"/social", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitGovernancePromotesProfile(t *testing.T) {
	profile := &models.SMEProfile{ID: uuid.New(), BusinessName: "Wizard Manufacturing"}
	mux := newIntakeMux(&mockIntakeService{profile: profile})

	req := httptest.NewRequest(http.MethodPost, "/api/intake/"+uuid.NewString()+"/governance",
		strings.NewReader(`{"fin_reporting_freq": "Monthly", "has_policies": true}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data models.SMEProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, profile.ID, resp.Data.ID)
}

func TestIntakeUnknownSessionEndpoint(t *testing.T) {
	mux := newIntakeMux(&mockIntakeService{getErr: apperrors.NewNotFound("intake session", uuid.NewString())})

	req := httptest.NewRequest(http.MethodGet, "/api/intake/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAbandonIntakeEndpoint(t *testing.T) {
	mux := newIntakeMux(&mockIntakeService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/intake/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
