package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// IntakeRepository stores in-progress intake wizard sessions. The draft
// profile is persisted as JSON alongside the explicit wizard state.
type IntakeRepository interface {
	// Create inserts a new session. The ID and timestamps are assigned here.
	Create(ctx context.Context, session *models.IntakeSession) error

	// Get returns a session, or a NotFoundError for unknown ids.
	Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error)

	// Update rewrites a session's state and draft.
	Update(ctx context.Context, session *models.IntakeSession) error

	// Delete removes a session, normally after it is promoted to a profile.
	Delete(ctx context.Context, id uuid.UUID) error
}

type intakeRepository struct {
	db *database.DB
}

// NewIntakeRepository creates a new IntakeRepository.
func NewIntakeRepository(db *database.DB) IntakeRepository {
	return &intakeRepository{db: db}
}

var _ IntakeRepository = (*intakeRepository)(nil)

func (r *intakeRepository) Create(ctx context.Context, session *models.IntakeSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	draftJSON, err := json.Marshal(session.Draft)
	if err != nil {
		return fmt.Errorf("failed to marshal intake draft: %w", err)
	}

	query := `
		INSERT INTO intake_sessions (id, state, draft, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(ctx, query, session.ID, string(session.State), draftJSON, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create intake session: %w", err)
	}

	return nil
}

func (r *intakeRepository) Get(ctx context.Context, id uuid.UUID) (*models.IntakeSession, error) {
	query := `
		SELECT id, state, draft, created_at, updated_at
		FROM intake_sessions
		WHERE id = $1`

	var session models.IntakeSession
	var state string
	var draftJSON []byte

	err := r.db.QueryRow(ctx, query, id).Scan(&session.ID, &state, &draftJSON, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("intake session", id.String())
		}
		return nil, fmt.Errorf("failed to get intake session: %w", err)
	}

	session.State = models.IntakeState(state)
	if err := json.Unmarshal(draftJSON, &session.Draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intake draft: %w", err)
	}

	return &session, nil
}

func (r *intakeRepository) Update(ctx context.Context, session *models.IntakeSession) error {
	session.UpdatedAt = time.Now().UTC()

	draftJSON, err := json.Marshal(session.Draft)
	if err != nil {
		return fmt.Errorf("failed to marshal intake draft: %w", err)
	}

	query := `
		UPDATE intake_sessions
		SET state = $2, draft = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, session.ID, string(session.State), draftJSON, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update intake session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("intake session", session.ID.String())
	}

	return nil
}

func (r *intakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM intake_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intake session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("intake session", id.String())
	}

	return nil
}
