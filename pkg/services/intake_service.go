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

// IntakeService runs the four-step intake wizard. Each session walks the
// strict state machine basics -> environment -> social -> governance ->
// submitted; a step payload is only accepted for the state the session is
// currently in, and the accumulated draft is promoted to a real profile on
// completion.
type IntakeService interface {
	// Start opens a new session in the basics state.
	Start(ctx context.Context) (*models.IntakeSession, error)

	// Get returns a session's current state and draft.
	Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error)

	// SubmitBasics applies the basics payload and advances the session.
	SubmitBasics(ctx context.Context, id uuid.UUID, step models.BasicsStep) (*models.IntakeSession, error)

	// SubmitEnvironment applies the environment payload and advances.
	SubmitEnvironment(ctx context.Context, id uuid.UUID, step models.EnvironmentStep) (*models.IntakeSession, error)

	// SubmitSocial applies the social payload and advances.
	SubmitSocial(ctx context.Context, id uuid.UUID, step models.SocialStep) (*models.IntakeSession, error)

	// SubmitGovernance applies the final payload, promotes the draft to an
	// SME profile and discards the session. Returns the created profile.
	SubmitGovernance(ctx context.Context, id uuid.UUID, step models.GovernanceStep) (*models.SMEProfile, error)

	// Abandon discards a session without creating a profile.
	Abandon(ctx context.Context, id uuid.UUID) error
}

type intakeService struct {
	sessions repositories.IntakeRepository
	smes     SMEService
	logger   *zap.Logger
}

// NewIntakeService creates a new IntakeService. Profile creation goes through
// SMEService so promoted drafts get the same validation as direct creation.
func NewIntakeService(sessions repositories.IntakeRepository, smes SMEService, logger *zap.Logger) IntakeService {
	return &intakeService{
		sessions: sessions,
		smes:     smes,
		logger:   logger.Named("intake-service"),
	}
}

var _ IntakeService = (*intakeService)(nil)

func (s *intakeService) Start(ctx context.Context) (*models.IntakeSession, error) {
	session := &models.IntakeSession{State: models.IntakeBasics}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Intake session started", zap.String("session_id", session.ID.String()))
	return session, nil
}

func (s *intakeService) Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error) {
	return s.sessions.Get(ctx, id)
}

func (s *intakeService) SubmitBasics(ctx context.Context, id uuid.UUID, step models.BasicsStep) (*models.IntakeSession, error) {
	return s.advance(ctx, id, models.IntakeBasics, func(session *models.IntakeSession) {
		session.ApplyBasics(step)
	})
}

func (s *intakeService) SubmitEnvironment(ctx context.Context, id uuid.UUID, step models.EnvironmentStep) (*models.IntakeSession, error) {
	return s.advance(ctx, id, models.IntakeEnvironment, func(session *models.IntakeSession) {
		session.ApplyEnvironment(step)
	})
}

func (s *intakeService) SubmitSocial(ctx context.Context, id uuid.UUID, step models.SocialStep) (*models.IntakeSession, error) {
	return s.advance(ctx, id, models.IntakeSocial, func(session *models.IntakeSession) {
		session.ApplySocial(step)
	})
}

func (s *intakeService) SubmitGovernance(ctx context.Context, id uuid.UUID, step models.GovernanceStep) (*models.SMEProfile, error) {
	session, err := s.advance(ctx, id, models.IntakeGovernance, func(session *models.IntakeSession) {
		session.ApplyGovernance(step)
	})
	if err != nil {
		return nil, err
	}

	profile := session.Draft
	if err := s.smes.Create(ctx, &profile); err != nil {
		// The session stays in submitted state so the caller can fix the
		// draft's reference keys and retry via direct creation.
		return nil, fmt.Errorf("promote intake draft: %w", err)
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to discard completed intake session",
			zap.String("session_id", id.String()), zap.Error(err))
	}

	s.logger.Info("Intake session completed",
		zap.String("session_id", id.String()),
		zap.String("sme_id", profile.ID.String()))

	return &profile, nil
}

func (s *intakeService) Abandon(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Intake session abandoned", zap.String("session_id", id.String()))
	return nil
}

// advance loads the session, rejects out-of-order submissions, applies the
// payload and moves the state machine one step forward.
func (s *intakeService) advance(ctx context.Context, id uuid.UUID, expected models.IntakeState, apply func(*models.IntakeSession)) (*models.IntakeSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.State != expected {
		return nil, fmt.Errorf("session %s is in state %q, expected %q: %w",
			id, session.State, expected, apperrors.ErrInvalidState)
	}

	apply(session)

	next, err := session.State.Next()
	if err != nil {
		return nil, err
	}
	session.State = next

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
