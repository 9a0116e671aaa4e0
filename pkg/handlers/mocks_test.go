package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/services"
)

// ============================================================================
// Mock Services for Handler Tests
// ============================================================================

type mockScoringService struct {
	result     *services.ScoreResult
	scoreErr   error
	history    []*models.AuditLogEntry
	historyErr error
	lastLimit  int
}

func (m *mockScoringService) Score(ctx context.Context, smeID uuid.UUID) (*services.ScoreResult, error) {
	if m.scoreErr != nil {
		return nil, m.scoreErr
	}
	return m.result, nil
}

func (m *mockScoringService) History(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error) {
	m.lastLimit = limit
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history, nil
}

var _ services.ScoringService = (*mockScoringService)(nil)

type mockSMEService struct {
	createErr  error
	detail     *services.SMEWithSuppliers
	getErr     error
	summaries  []*models.SMESummary
	searchErr  error
	attachErr  error
	deleteErr  error
	lastQuery  string
	lastDelete uuid.UUID
}

func (m *mockSMEService) Create(ctx context.Context, profile *models.SMEProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	profile.ID = uuid.New()
	return nil
}

func (m *mockSMEService) Get(ctx context.Context, id uuid.UUID) (*services.SMEWithSuppliers, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.detail, nil
}

func (m *mockSMEService) List(ctx context.Context) ([]*models.SMESummary, error) {
	return m.summaries, nil
}

func (m *mockSMEService) Search(ctx context.Context, query string) ([]*models.SMESummary, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.summaries, nil
}

func (m *mockSMEService) AttachFiles(ctx context.Context, id uuid.UUID, refs models.FileReferences) error {
	return m.attachErr
}

func (m *mockSMEService) Delete(ctx context.Context, id uuid.UUID) error {
	m.lastDelete = id
	return m.deleteErr
}

var _ services.SMEService = (*mockSMEService)(nil)

type mockSupplierService struct {
	addErr    error
	updateErr error
	removeErr error
	listed    []*models.SupplierRecord
	listErr   error
}

func (m *mockSupplierService) Add(ctx context.Context, supplier *models.SupplierRecord) error {
	if m.addErr != nil {
		return m.addErr
	}
	supplier.ID = uuid.New()
	return nil
}

func (m *mockSupplierService) Update(ctx context.Context, supplier *models.SupplierRecord) error {
	return m.updateErr
}

func (m *mockSupplierService) Remove(ctx context.Context, id uuid.UUID) error {
	return m.removeErr
}

func (m *mockSupplierService) ListBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listed, nil
}

var _ services.SupplierService = (*mockSupplierService)(nil)

type mockIntakeService struct {
	session    *models.IntakeSession
	profile    *models.SMEProfile
	startErr   error
	getErr     error
	submitErr  error
	abandonErr error
}

func (m *mockIntakeService) Start(ctx context.Context) (*models.IntakeSession, error) {
	if m.startErr != nil {
		return nil, m.startErr
	}
	return m.session, nil
}

func (m *mockIntakeService) Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.session, nil
}

func (m *mockIntakeService) SubmitBasics(ctx context.Context, id uuid.UUID, step models.BasicsStep) (*models.IntakeSession, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.session, nil
}

func (m *mockIntakeService) SubmitEnvironment(ctx context.Context, id uuid.UUID, step models.EnvironmentStep) (*models.IntakeSession, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.session, nil
}

func (m *mockIntakeService) SubmitSocial(ctx context.Context, id uuid.UUID, step models.SocialStep) (*models.IntakeSession, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.session, nil
}

func (m *mockIntakeService) SubmitGovernance(ctx context.Context, id uuid.UUID, step models.GovernanceStep) (*models.SMEProfile, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.profile, nil
}

func (m *mockIntakeService) Abandon(ctx context.Context, id uuid.UUID) error {
	return m.abandonErr
}

var _ services.IntakeService = (*mockIntakeService)(nil)

type mockWatchlistService struct {
	added int
	err   error
	got   []models.WatchlistEntry
}

func (m *mockWatchlistService) Refresh(ctx context.Context, entries []models.WatchlistEntry) (int, error) {
	m.got = entries
	if m.err != nil {
		return 0, m.err
	}
	return m.added, nil
}

var _ services.WatchlistService = (*mockWatchlistService)(nil)
