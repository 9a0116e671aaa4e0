package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
)

// ============================================================================
// Mock Implementations for Service Tests
// ============================================================================

type mockSMERepo struct {
	profiles  map[uuid.UUID]*models.SMEProfile
	createErr error
	getErr    error
	listErr   error
	deleteErr error
	updateErr error
}

func newMockSMERepo() *mockSMERepo {
	return &mockSMERepo{profiles: make(map[uuid.UUID]*models.SMEProfile)}
}

func (m *mockSMERepo) Create(ctx context.Context, profile *models.SMEProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockSMERepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SMEProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperrors.NewNotFound("SME", id.String())
	}
	return p, nil
}

func (m *mockSMERepo) List(ctx context.Context) ([]*models.SMESummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*models.SMESummary
	for _, p := range m.profiles {
		out = append(out, &models.SMESummary{
			ID: p.ID, BusinessName: p.BusinessName, Sector: p.Sector, Region: p.Region,
		})
	}
	return out, nil
}

func (m *mockSMERepo) SearchByName(ctx context.Context, query string) ([]*models.SMESummary, error) {
	var out []*models.SMESummary
	for _, p := range m.profiles {
		if strings.Contains(strings.ToLower(p.BusinessName), strings.ToLower(query)) {
			out = append(out, &models.SMESummary{
				ID: p.ID, BusinessName: p.BusinessName, Sector: p.Sector, Region: p.Region,
			})
		}
	}
	return out, nil
}

func (m *mockSMERepo) UpdateFileRefs(ctx context.Context, id uuid.UUID, refs models.FileReferences) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return apperrors.NewNotFound("SME", id.String())
	}
	if refs.BusinessPermitFile != nil {
		p.BusinessPermitFile = refs.BusinessPermitFile
	}
	if refs.PayrollFile != nil {
		p.PayrollFile = refs.PayrollFile
	}
	if refs.IncomeTaxFile != nil {
		p.IncomeTaxFile = refs.IncomeTaxFile
	}
	return nil
}

func (m *mockSMERepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.profiles[id]; !ok {
		return apperrors.NewNotFound("SME", id.String())
	}
	delete(m.profiles, id)
	return nil
}

type mockSupplierRepo struct {
	suppliers map[uuid.UUID]*models.SupplierRecord
	createErr error
	getErr    error
}

func newMockSupplierRepo() *mockSupplierRepo {
	return &mockSupplierRepo{suppliers: make(map[uuid.UUID]*models.SupplierRecord)}
}

func (m *mockSupplierRepo) Create(ctx context.Context, supplier *models.SupplierRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepo) Update(ctx context.Context, supplier *models.SupplierRecord) error {
	existing, ok := m.suppliers[supplier.ID]
	if !ok || existing.SMEID != supplier.SMEID {
		return apperrors.NewNotFound("supplier", supplier.ID.String())
	}
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.suppliers[id]; !ok {
		return apperrors.NewNotFound("supplier", id.String())
	}
	delete(m.suppliers, id)
	return nil
}

func (m *mockSupplierRepo) GetBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*models.SupplierRecord
	for _, s := range m.suppliers {
		if s.SMEID == smeID {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockReferenceRepo struct {
	sectors map[string]*models.SectorRiskEntry
	regions map[string]*models.RegionRiskEntry
}

func newMockReferenceRepo() *mockReferenceRepo {
	return &mockReferenceRepo{
		sectors: map[string]*models.SectorRiskEntry{
			"Manufacturing": {Sector: "Manufacturing", EnvironmentalRisk: 6, SocialRisk: 4, GovernanceRisk: 4},
		},
		regions: map[string]*models.RegionRiskEntry{
			"National Capital Region (NCR)": {Region: "National Capital Region (NCR)", Score: 69.3},
		},
	}
}

func (m *mockReferenceRepo) GetSectorRisk(ctx context.Context, sector string) (*models.SectorRiskEntry, error) {
	e, ok := m.sectors[sector]
	if !ok {
		return nil, apperrors.NewNotFound("sector", sector)
	}
	return e, nil
}

func (m *mockReferenceRepo) GetRegionRisk(ctx context.Context, region string) (*models.RegionRiskEntry, error) {
	e, ok := m.regions[region]
	if !ok {
		return nil, apperrors.NewNotFound("region", region)
	}
	return e, nil
}

func (m *mockReferenceRepo) ListSectors(ctx context.Context) ([]*models.SectorRiskEntry, error) {
	var out []*models.SectorRiskEntry
	for _, e := range m.sectors {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockReferenceRepo) ListRegions(ctx context.Context) ([]*models.RegionRiskEntry, error) {
	var out []*models.RegionRiskEntry
	for _, e := range m.regions {
		out = append(out, e)
	}
	return out, nil
}

type mockAuditRepo struct {
	entries   []*models.AuditLogEntry
	createErr error
	latestErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) GetLatest(ctx context.Context, smeID uuid.UUID) (*models.AuditLogEntry, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].SMEID == smeID {
			return m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *mockAuditRepo) GetHistory(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error) {
	var out []*models.AuditLogEntry
	for _, e := range m.entries {
		if e.SMEID == smeID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *mockAuditRepo) WithTx(tx pgx.Tx) repositories.AuditRepository {
	return m
}

type mockWatchlistRepo struct {
	entries []models.WatchlistEntry
	addErr  error
}

func (m *mockWatchlistRepo) ListAll(ctx context.Context) ([]models.WatchlistEntry, error) {
	return m.entries, nil
}

func (m *mockWatchlistRepo) Add(ctx context.Context, entries []models.WatchlistEntry) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.entries = append(m.entries, entries...)
	return nil
}

type mockIntakeRepo struct {
	sessions  map[uuid.UUID]*models.IntakeSession
	createErr error
	updateErr error
}

func newMockIntakeRepo() *mockIntakeRepo {
	return &mockIntakeRepo{sessions: make(map[uuid.UUID]*models.IntakeSession)}
}

func (m *mockIntakeRepo) Create(ctx context.Context, session *models.IntakeSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockIntakeRepo) Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFound("intake session", id.String())
	}
	copied := *s
	return &copied, nil
}

func (m *mockIntakeRepo) Update(ctx context.Context, session *models.IntakeSession) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.sessions[session.ID]; !ok {
		return apperrors.NewNotFound("intake session", session.ID.String())
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockIntakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return apperrors.NewNotFound("intake session", id.String())
	}
	delete(m.sessions, id)
	return nil
}

// mockDB satisfies txBeginner, handing out no-op transactions.
type mockDB struct {
	beginErr error
	tx       *mockTx
}

func newMockDB() *mockDB {
	return &mockDB{tx: &mockTx{}}
}

func (m *mockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

// mockTx is a no-op pgx.Tx that records commits and rollbacks.
type mockTx struct {
	commits   int
	rollbacks int
	execErr   error
}

func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *mockTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

func (t *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *mockTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, t.execErr
}

func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *mockTx) Conn() *pgx.Conn { return nil }
