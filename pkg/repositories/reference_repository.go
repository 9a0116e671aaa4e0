package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// ReferenceRepository provides read access to the static sector-risk and
// region-risk reference tables. The engine never writes these; they are
// maintained by seed migrations.
type ReferenceRepository interface {
	// GetSectorRisk returns the sub-risk entry for a sector, or a
	// NotFoundError for sectors absent from the table.
	GetSectorRisk(ctx context.Context, sector string) (*models.SectorRiskEntry, error)

	// GetRegionRisk returns the risk entry for a region, or a NotFoundError
	// for regions absent from the table.
	GetRegionRisk(ctx context.Context, region string) (*models.RegionRiskEntry, error)

	// ListSectors returns all sector entries, ordered by name.
	ListSectors(ctx context.Context) ([]*models.SectorRiskEntry, error)

	// ListRegions returns all region entries, ordered by name.
	ListRegions(ctx context.Context) ([]*models.RegionRiskEntry, error)
}

type referenceRepository struct {
	db *database.DB
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(db *database.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

var _ ReferenceRepository = (*referenceRepository)(nil)

func (r *referenceRepository) GetSectorRisk(ctx context.Context, sector string) (*models.SectorRiskEntry, error) {
	query := `
		SELECT sector, env_risk, soc_risk, gov_risk, notes
		FROM sector_risks
		WHERE sector = $1`

	var entry models.SectorRiskEntry
	err := r.db.QueryRow(ctx, query, sector).Scan(
		&entry.Sector,
		&entry.EnvironmentalRisk,
		&entry.SocialRisk,
		&entry.GovernanceRisk,
		&entry.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", sector)
		}
		return nil, fmt.Errorf("failed to get sector risk: %w", err)
	}

	return &entry, nil
}

func (r *referenceRepository) GetRegionRisk(ctx context.Context, region string) (*models.RegionRiskEntry, error) {
	query := `SELECT region, score FROM region_risks WHERE region = $1`

	var entry models.RegionRiskEntry
	err := r.db.QueryRow(ctx, query, region).Scan(&entry.Region, &entry.Score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("region", region)
		}
		return nil, fmt.Errorf("failed to get region risk: %w", err)
	}

	return &entry, nil
}

func (r *referenceRepository) ListSectors(ctx context.Context) ([]*models.SectorRiskEntry, error) {
	query := `
		SELECT sector, env_risk, soc_risk, gov_risk, notes
		FROM sector_risks
		ORDER BY sector ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sector risks: %w", err)
	}
	defer rows.Close()

	var entries []*models.SectorRiskEntry
	for rows.Next() {
		var e models.SectorRiskEntry
		if err := rows.Scan(&e.Sector, &e.EnvironmentalRisk, &e.SocialRisk, &e.GovernanceRisk, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan sector risk: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sector risks: %w", err)
	}

	return entries, nil
}

func (r *referenceRepository) ListRegions(ctx context.Context) ([]*models.RegionRiskEntry, error) {
	query := `SELECT region, score FROM region_risks ORDER BY region ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list region risks: %w", err)
	}
	defer rows.Close()

	var entries []*models.RegionRiskEntry
	for rows.Next() {
		var e models.RegionRiskEntry
		if err := rows.Scan(&e.Region, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan region risk: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating region risks: %w", err)
	}

	return entries, nil
}
