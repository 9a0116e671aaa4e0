package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
)

// SMEWithSuppliers is the detail view of a profile: the full intake answers
// plus every linked supplier.
type SMEWithSuppliers struct {
	Profile   *models.SMEProfile       `json:"profile"`
	Suppliers []*models.SupplierRecord `json:"suppliers"`
}

// SMEService manages SME profiles. Profiles are immutable after intake except
// for uploaded document references.
type SMEService interface {
	// Create validates and persists a new profile. Sector and region must
	// exist in the reference tables; an unknown key is rejected up front so
	// the profile can never reach the scorer in an unscorable state.
	Create(ctx context.Context, profile *models.SMEProfile) error

	// Get returns the full profile with its suppliers.
	Get(ctx context.Context, id uuid.UUID) (*SMEWithSuppliers, error)

	// List returns summaries of every profile.
	List(ctx context.Context) ([]*models.SMESummary, error)

	// Search returns summaries matching the name query. A blank query lists
	// everything.
	Search(ctx context.Context, query string) ([]*models.SMESummary, error)

	// AttachFiles records uploaded document references on a profile.
	AttachFiles(ctx context.Context, id uuid.UUID, refs models.FileReferences) error

	// Delete removes a profile and its suppliers. Audit history survives.
	Delete(ctx context.Context, id uuid.UUID) error
}

type smeService struct {
	smes      repositories.SMERepository
	suppliers repositories.SupplierRepository
	refs      repositories.ReferenceRepository
	logger    *zap.Logger
}

// NewSMEService creates a new SMEService.
func NewSMEService(
	smes repositories.SMERepository,
	suppliers repositories.SupplierRepository,
	refs repositories.ReferenceRepository,
	logger *zap.Logger,
) SMEService {
	return &smeService{
		smes:      smes,
		suppliers: suppliers,
		refs:      refs,
		logger:    logger.Named("sme-service"),
	}
}

var _ SMEService = (*smeService)(nil)

func (s *smeService) Create(ctx context.Context, profile *models.SMEProfile) error {
	if profile.BusinessName == "" {
		return apperrors.NewValidation("business_name", "must not be empty")
	}
	if profile.NumEmployees < 0 {
		return apperrors.NewValidation("num_employees", "must not be negative")
	}
	if profile.MarketCompetition < 0 || profile.MarketCompetition > 10 {
		return apperrors.NewValidation("market_competition", "must be between 0 and 10")
	}

	if err := s.validateReferenceKeys(ctx, profile.Sector, profile.Region); err != nil {
		return err
	}

	if err := s.smes.Create(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("SME profile created",
		zap.String("sme_id", profile.ID.String()),
		zap.String("business_name", profile.BusinessName),
		zap.String("sector", profile.Sector),
		zap.String("region", profile.Region))

	return nil
}

func (s *smeService) Get(ctx context.Context, id uuid.UUID) (*SMEWithSuppliers, error) {
	profile, err := s.smes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	suppliers, err := s.suppliers.GetBySME(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suppliers for SME: %w", err)
	}

	return &SMEWithSuppliers{Profile: profile, Suppliers: suppliers}, nil
}

func (s *smeService) List(ctx context.Context) ([]*models.SMESummary, error) {
	return s.smes.List(ctx)
}

func (s *smeService) Search(ctx context.Context, query string) ([]*models.SMESummary, error) {
	if query == "" {
		return s.smes.List(ctx)
	}
	return s.smes.SearchByName(ctx, query)
}

func (s *smeService) AttachFiles(ctx context.Context, id uuid.UUID, refs models.FileReferences) error {
	if err := s.smes.UpdateFileRefs(ctx, id, refs); err != nil {
		return err
	}

	s.logger.Info("SME file references updated", zap.String("sme_id", id.String()))
	return nil
}

func (s *smeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.smes.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("SME profile deleted", zap.String("sme_id", id.String()))
	return nil
}

// validateReferenceKeys confirms sector and region exist in the reference
// tables.
func (s *smeService) validateReferenceKeys(ctx context.Context, sector, region string) error {
	if _, err := s.refs.GetSectorRisk(ctx, sector); err != nil {
		return err
	}
	if _, err := s.refs.GetRegionRisk(ctx, region); err != nil {
		return err
	}
	return nil
}
