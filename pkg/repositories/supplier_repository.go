package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// SupplierRepository provides data access for supplier records.
type SupplierRepository interface {
	// Create inserts a new supplier for an SME. The ID is assigned here.
	Create(ctx context.Context, supplier *models.SupplierRecord) error

	// Update rewrites a supplier's name, sector, region and permit flag.
	// The update is scoped to the owning SME.
	Update(ctx context.Context, supplier *models.SupplierRecord) error

	// Delete removes a supplier record.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBySME returns all suppliers linked to an SME.
	GetBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error)
}

type supplierRepository struct {
	db *database.DB
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(db *database.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

var _ SupplierRepository = (*supplierRepository)(nil)

func (r *supplierRepository) Create(ctx context.Context, supplier *models.SupplierRecord) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}

	query := `
		INSERT INTO suppliers (id, sme_id, name, sector, region, has_permit)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		supplier.ID,
		supplier.SMEID,
		supplier.Name,
		supplier.Sector,
		supplier.Region,
		supplier.HasPermit,
	)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *models.SupplierRecord) error {
	query := `
		UPDATE suppliers
		SET name = $3, sector = $4, region = $5, has_permit = $6
		WHERE id = $1 AND sme_id = $2`

	tag, err := r.db.Exec(ctx, query,
		supplier.ID,
		supplier.SMEID,
		supplier.Name,
		supplier.Sector,
		supplier.Region,
		supplier.HasPermit,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("supplier", supplier.ID.String())
	}

	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("supplier", id.String())
	}

	return nil
}

func (r *supplierRepository) GetBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error) {
	query := `
		SELECT id, sme_id, name, sector, region, has_permit
		FROM suppliers
		WHERE sme_id = $1
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, smeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*models.SupplierRecord
	for rows.Next() {
		var s models.SupplierRecord
		if err := rows.Scan(&s.ID, &s.SMEID, &s.Name, &s.Sector, &s.Region, &s.HasPermit); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}

	return suppliers, nil
}
