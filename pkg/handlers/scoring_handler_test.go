package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

func newScoringMux(svc services.ScoringService) *http.ServeMux {
	mux := http.NewServeMux()
	NewScoringHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestScoreEndpoint(t *testing.T) {
	svc := &mockScoringService{
		result: &services.ScoreResult{
			FinalScore:    89.6198,
			Financial:     67.7777778,
			Environmental: 83.86,
			Social:        78,
			Governance:    92.5,
		},
	}
	mux := newScoringMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/smes/"+uuid.NewString()+"/score", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    services.ScoreResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 89.6198, resp.Data.FinalScore, 1e-6)
}

func TestScoreEndpointUnknownSME(t *testing.T) {
	svc := &mockScoringService{scoreErr: apperrors.NewNotFound("SME", uuid.NewString())}
	mux := newScoringMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/smes/"+uuid.NewString()+"/score", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoreEndpointMalformedMeasurement(t *testing.T) {
	svc := &mockScoringService{scoreErr: apperrors.NewParse("energy_usage", "a lot")}
	mux := newScoringMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/smes/"+uuid.NewString()+"/score", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestScoreEndpointInvalidID(t *testing.T) {
	mux := newScoringMux(&mockScoringService{})

	req := httptest.NewRequest(http.MethodPost, "/api/smes/not-a-uuid/score", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	svc := &mockScoringService{
		history: []*models.AuditLogEntry{
			{ID: uuid.New(), Explanation: models.ScoreExplanation{FinalScore: 89.6198}},
		},
	}
	mux := newScoringMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/smes/"+uuid.NewString()+"/score/history?limit=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastLimit)

	var resp struct {
		Data ScoreHistoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Total)
}

func TestHistoryEndpointRejectsBadLimit(t *testing.T) {
	mux := newScoringMux(&mockScoringService{})

	for _, limit := range []string{"zero", "-3", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/smes/"+uuid.NewString()+"/score/history?limit="+limit, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}
