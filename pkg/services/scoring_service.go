package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
	"github.com/bayanihan-labs/esg-engine/pkg/scoring"
)

// scoreChangeEpsilon is the threshold below which two final scores count as
// unchanged: a repeat scoring of untouched data appends nothing to history.
const scoreChangeEpsilon = 1e-6

// defaultHistoryLimit caps trend queries that don't ask for a count.
const defaultHistoryLimit = 50

// ScoreResult is everything a scoring call produces: the final blended
// score, the four plain pillar means, and the persisted explanation.
type ScoreResult struct {
	FinalScore    float64                 `json:"final_score"`
	Financial     float64                 `json:"financial_score"`
	Environmental float64                 `json:"environmental_score"`
	Social        float64                 `json:"social_score"`
	Governance    float64                 `json:"governance_score"`
	Explanation   models.ScoreExplanation `json:"explanation"`
}

// ScoringService computes composite ESG scores and maintains the audit
// history. Scoring is deterministic: identical inputs always produce the
// identical result, and an unchanged score is not re-appended to history.
type ScoringService interface {
	// Score computes the composite score for an SME and conditionally
	// appends the explanation to the audit history. Reference-table misses
	// and malformed measurements abort the call; nothing partial is
	// persisted on failure.
	Score(ctx context.Context, smeID uuid.UUID) (*ScoreResult, error)

	// History returns the last limit audit entries for an SME, oldest
	// first, for trend reporting.
	History(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error)
}

// txBeginner starts the transaction that serializes the audit
// compare-then-insert. Satisfied by *database.DB.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type scoringService struct {
	db        txBeginner
	smes      repositories.SMERepository
	suppliers repositories.SupplierRepository
	refs      repositories.ReferenceRepository
	audit     repositories.AuditRepository
	matcher   *scoring.Matcher
	weights   scoring.Weights
	logger    *zap.Logger
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	db *database.DB,
	smes repositories.SMERepository,
	suppliers repositories.SupplierRepository,
	refs repositories.ReferenceRepository,
	audit repositories.AuditRepository,
	matcher *scoring.Matcher,
	weights scoring.Weights,
	logger *zap.Logger,
) ScoringService {
	return &scoringService{
		db:        db,
		smes:      smes,
		suppliers: suppliers,
		refs:      refs,
		audit:     audit,
		matcher:   matcher,
		weights:   weights,
		logger:    logger.Named("scoring-service"),
	}
}

var _ ScoringService = (*scoringService)(nil)

func (s *scoringService) Score(ctx context.Context, smeID uuid.UUID) (*ScoreResult, error) {
	profile, err := s.smes.GetByID(ctx, smeID)
	if err != nil {
		return nil, err
	}

	pillars, err := s.scorePillars(ctx, profile)
	if err != nil {
		return nil, err
	}

	details, err := s.scoreSuppliers(ctx, smeID)
	if err != nil {
		return nil, err
	}

	supplierAggregate := scoring.AggregateSupplierScore(details)
	base := s.weights.Base(pillars)
	final := scoring.Final(base, supplierAggregate)

	explanation := models.ScoreExplanation{
		FinancialScore:     pillars.Financial,
		EnvironmentalScore: pillars.Environmental,
		SocialScore:        pillars.Social,
		GovernanceScore:    pillars.GovernanceBonus,
		BaseScore:          base,
		SuppliersScore:     supplierAggregate,
		SuppliersDetail:    details,
		FinalScore:         final,
	}

	if err := s.recordIfChanged(ctx, smeID, explanation); err != nil {
		return nil, err
	}

	s.logger.Debug("Scored SME",
		zap.String("sme_id", smeID.String()),
		zap.Float64("final_score", final),
		zap.Int("suppliers", len(details)))

	return &ScoreResult{
		FinalScore:    final,
		Financial:     pillars.Financial,
		Environmental: pillars.Environmental,
		Social:        pillars.Social,
		Governance:    pillars.Governance,
		Explanation:   explanation,
	}, nil
}

func (s *scoringService) History(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error) {
	// Surface unknown SMEs as NotFound instead of an empty history.
	if _, err := s.smes.GetByID(ctx, smeID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.audit.GetHistory(ctx, smeID, limit)
	if err != nil {
		return nil, fmt.Errorf("get audit history: %w", err)
	}

	return entries, nil
}

// scorePillars resolves the profile's reference lookups and reduces the four
// pillars.
func (s *scoringService) scorePillars(ctx context.Context, profile *models.SMEProfile) (scoring.PillarScores, error) {
	sector, err := s.refs.GetSectorRisk(ctx, profile.Sector)
	if err != nil {
		return scoring.PillarScores{}, err
	}

	region, err := s.refs.GetRegionRisk(ctx, profile.Region)
	if err != nil {
		return scoring.PillarScores{}, err
	}

	financial, err := scoring.FinancialScore(profile, sector.Average())
	if err != nil {
		return scoring.PillarScores{}, err
	}

	envScore, envBonus, err := scoring.EnvironmentalScore(profile, region.Score)
	if err != nil {
		return scoring.PillarScores{}, err
	}

	social := scoring.SocialScore(profile)
	govScore, govBonus := scoring.GovernanceScore(profile)

	return scoring.PillarScores{
		Financial:          financial,
		Environmental:      envScore,
		EnvironmentalBonus: envBonus,
		Social:             social,
		Governance:         govScore,
		GovernanceBonus:    govBonus,
	}, nil
}

// scoreSuppliers resolves every linked supplier's signals and reduces them
// to breakdown rows. Supplier order follows the repository's name ordering,
// keeping the explanation deterministic.
func (s *scoringService) scoreSuppliers(ctx context.Context, smeID uuid.UUID) ([]models.SupplierScoreDetail, error) {
	suppliers, err := s.suppliers.GetBySME(ctx, smeID)
	if err != nil {
		return nil, err
	}

	details := make([]models.SupplierScoreDetail, 0, len(suppliers))
	for _, supplier := range suppliers {
		matchScore, err := s.matcher.MatchScore(ctx, supplier.Name)
		if err != nil {
			return nil, fmt.Errorf("match supplier %q: %w", supplier.Name, err)
		}

		sector, err := s.refs.GetSectorRisk(ctx, supplier.Sector)
		if err != nil {
			return nil, err
		}

		region, err := s.refs.GetRegionRisk(ctx, supplier.Region)
		if err != nil {
			return nil, err
		}

		detail, err := scoring.ScoreSupplier(scoring.SupplierInputs{
			Name:       supplier.Name,
			MatchScore: matchScore,
			SectorAvg:  sector.Average(),
			RegionRisk: region.Score,
			HasPermit:  supplier.HasPermit,
		})
		if err != nil {
			return nil, err
		}

		details = append(details, detail)
	}

	return details, nil
}

// recordIfChanged appends the explanation to the audit history unless the
// final score matches the most recent entry within epsilon. The read-last
// and insert run in one transaction under a per-SME advisory lock, so two
// concurrent scoring calls cannot both observe "no change needed" stale
// state and double-insert.
func (s *scoringService) recordIfChanged(ctx context.Context, smeID uuid.UUID, explanation models.ScoreExplanation) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin audit transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock released automatically at commit/rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, smeID.String()); err != nil {
		return fmt.Errorf("acquire scoring lock: %w", err)
	}

	auditTx := s.audit.WithTx(tx)

	last, err := auditTx.GetLatest(ctx, smeID)
	if err != nil {
		return fmt.Errorf("get latest audit entry: %w", err)
	}

	if last != nil && math.Abs(last.Explanation.FinalScore-explanation.FinalScore) < scoreChangeEpsilon {
		return nil
	}

	entry := &models.AuditLogEntry{
		SMEID:       smeID,
		Explanation: explanation,
	}
	if err := auditTx.Create(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit audit transaction: %w", err)
	}

	return nil
}
