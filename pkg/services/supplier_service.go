package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
)

// SupplierService manages the suppliers linked to an SME. Supplier sector and
// region are validated against the reference tables the same way SME profiles
// are, so scoring never hits an unknown key at read time.
type SupplierService interface {
	// Add links a new supplier to an existing SME.
	Add(ctx context.Context, supplier *models.SupplierRecord) error

	// Update rewrites a supplier's details, scoped to its owning SME.
	Update(ctx context.Context, supplier *models.SupplierRecord) error

	// Remove unlinks and deletes a supplier.
	Remove(ctx context.Context, id uuid.UUID) error

	// ListBySME returns all suppliers of an SME, ordered by name.
	ListBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error)
}

type supplierService struct {
	suppliers repositories.SupplierRepository
	smes      repositories.SMERepository
	refs      repositories.ReferenceRepository
	logger    *zap.Logger
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(
	suppliers repositories.SupplierRepository,
	smes repositories.SMERepository,
	refs repositories.ReferenceRepository,
	logger *zap.Logger,
) SupplierService {
	return &supplierService{
		suppliers: suppliers,
		smes:      smes,
		refs:      refs,
		logger:    logger.Named("supplier-service"),
	}
}

var _ SupplierService = (*supplierService)(nil)

func (s *supplierService) Add(ctx context.Context, supplier *models.SupplierRecord) error {
	if err := s.validate(ctx, supplier); err != nil {
		return err
	}

	// Confirm the owning SME exists before linking.
	if _, err := s.smes.GetByID(ctx, supplier.SMEID); err != nil {
		return err
	}

	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return err
	}

	s.logger.Info("Supplier added",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("sme_id", supplier.SMEID.String()),
		zap.String("name", supplier.Name))

	return nil
}

func (s *supplierService) Update(ctx context.Context, supplier *models.SupplierRecord) error {
	if err := s.validate(ctx, supplier); err != nil {
		return err
	}

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return err
	}

	s.logger.Info("Supplier updated", zap.String("supplier_id", supplier.ID.String()))
	return nil
}

func (s *supplierService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Supplier removed", zap.String("supplier_id", id.String()))
	return nil
}

func (s *supplierService) ListBySME(ctx context.Context, smeID uuid.UUID) ([]*models.SupplierRecord, error) {
	if _, err := s.smes.GetByID(ctx, smeID); err != nil {
		return nil, err
	}
	return s.suppliers.GetBySME(ctx, smeID)
}

func (s *supplierService) validate(ctx context.Context, supplier *models.SupplierRecord) error {
	if supplier.Name == "" {
		return apperrors.NewValidation("name", "must not be empty")
	}
	if _, err := s.refs.GetSectorRisk(ctx, supplier.Sector); err != nil {
		return err
	}
	if _, err := s.refs.GetRegionRisk(ctx, supplier.Region); err != nil {
		return err
	}
	return nil
}
