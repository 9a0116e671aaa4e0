package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// smeColumns is the full column list for scans, kept in one place so Create
// and the readers cannot drift apart.
const smeColumns = `
	id, business_name, sector, region, num_employees, avg_annual_revenue,
	years_in_operation, created_at, is_profitable, market_competition,
	has_bcp, energy_usage, water_usage, waste_management,
	has_environmental_permit, ghg_emissions, pct_emp_health, pct_emp_sss,
	emp_turnover_rate, csr_spending, workplace_safety, emergency_preparedness,
	fin_reporting_freq, has_policies, inspection_score,
	business_permit_file, payroll_file, income_tax_file`

// SMERepository provides data access for SME profiles.
type SMERepository interface {
	// Create inserts a new profile. The ID and CreatedAt are assigned here.
	Create(ctx context.Context, profile *models.SMEProfile) error

	// GetByID returns the full profile, or a NotFoundError for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*models.SMEProfile, error)

	// List returns summaries of all profiles, ordered by creation time.
	List(ctx context.Context) ([]*models.SMESummary, error)

	// SearchByName returns summaries whose business name contains the query,
	// case-insensitively, ordered by name.
	SearchByName(ctx context.Context, query string) ([]*models.SMESummary, error)

	// UpdateFileRefs attaches uploaded document references. Nil fields in
	// refs leave the stored value untouched. This is the only permitted
	// mutation of a profile after intake.
	UpdateFileRefs(ctx context.Context, id uuid.UUID, refs models.FileReferences) error

	// Delete removes the profile. Linked suppliers go with it via the
	// schema's cascade; audit history is retained.
	Delete(ctx context.Context, id uuid.UUID) error
}

type smeRepository struct {
	db *database.DB
}

// NewSMERepository creates a new SMERepository.
func NewSMERepository(db *database.DB) SMERepository {
	return &smeRepository{db: db}
}

var _ SMERepository = (*smeRepository)(nil)

func (r *smeRepository) Create(ctx context.Context, profile *models.SMEProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO smes (` + smeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.BusinessName,
		profile.Sector,
		profile.Region,
		profile.NumEmployees,
		profile.AvgAnnualRevenue,
		profile.YearsInOperation,
		profile.CreatedAt,
		profile.IsProfitable,
		profile.MarketCompetition,
		profile.HasBCP,
		profile.EnergyUsage,
		profile.WaterUsage,
		profile.WasteManagement,
		profile.HasEnvironmentalPermit,
		profile.GHGEmissions,
		profile.PctEmployeesHealth,
		profile.PctEmployeesSSS,
		profile.EmployeeTurnoverRate,
		profile.CSRSpending,
		profile.WorkplaceSafety,
		profile.EmergencyPreparedness,
		profile.FinReportingFreq,
		profile.HasPolicies,
		profile.InspectionScore,
		profile.BusinessPermitFile,
		profile.PayrollFile,
		profile.IncomeTaxFile,
	)
	if err != nil {
		return fmt.Errorf("failed to create SME profile: %w", err)
	}

	return nil
}

func (r *smeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SMEProfile, error) {
	query := `SELECT ` + smeColumns + ` FROM smes WHERE id = $1`

	profile, err := scanSMEProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SME", id.String())
		}
		return nil, fmt.Errorf("failed to get SME profile: %w", err)
	}

	return profile, nil
}

func (r *smeRepository) List(ctx context.Context) ([]*models.SMESummary, error) {
	query := `
		SELECT id, business_name, sector, region, created_at
		FROM smes
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list SME profiles: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

func (r *smeRepository) SearchByName(ctx context.Context, query string) ([]*models.SMESummary, error) {
	sql := `
		SELECT id, business_name, sector, region, created_at
		FROM smes
		WHERE business_name ILIKE '%' || $1 || '%'
		ORDER BY business_name ASC`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search SME profiles: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

func (r *smeRepository) UpdateFileRefs(ctx context.Context, id uuid.UUID, refs models.FileReferences) error {
	query := `
		UPDATE smes
		SET business_permit_file = COALESCE($2, business_permit_file),
		    payroll_file = COALESCE($3, payroll_file),
		    income_tax_file = COALESCE($4, income_tax_file)
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, refs.BusinessPermitFile, refs.PayrollFile, refs.IncomeTaxFile)
	if err != nil {
		return fmt.Errorf("failed to update SME file references: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("SME", id.String())
	}

	return nil
}

func (r *smeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM smes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete SME profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("SME", id.String())
	}

	return nil
}

func scanSMEProfile(row pgx.Row) (*models.SMEProfile, error) {
	var p models.SMEProfile
	err := row.Scan(
		&p.ID,
		&p.BusinessName,
		&p.Sector,
		&p.Region,
		&p.NumEmployees,
		&p.AvgAnnualRevenue,
		&p.YearsInOperation,
		&p.CreatedAt,
		&p.IsProfitable,
		&p.MarketCompetition,
		&p.HasBCP,
		&p.EnergyUsage,
		&p.WaterUsage,
		&p.WasteManagement,
		&p.HasEnvironmentalPermit,
		&p.GHGEmissions,
		&p.PctEmployeesHealth,
		&p.PctEmployeesSSS,
		&p.EmployeeTurnoverRate,
		&p.CSRSpending,
		&p.WorkplaceSafety,
		&p.EmergencyPreparedness,
		&p.FinReportingFreq,
		&p.HasPolicies,
		&p.InspectionScore,
		&p.BusinessPermitFile,
		&p.PayrollFile,
		&p.IncomeTaxFile,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectSummaries(rows pgx.Rows) ([]*models.SMESummary, error) {
	var summaries []*models.SMESummary
	for rows.Next() {
		var s models.SMESummary
		if err := rows.Scan(&s.ID, &s.BusinessName, &s.Sector, &s.Region, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan SME summary: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating SME summaries: %w", err)
	}

	return summaries, nil
}
