package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// AuditRepository provides access to the append-only scoring history.
// Entries are immutable once written; there is no update or delete.
type AuditRepository interface {
	// Create appends a new history entry. The ID and CreatedAt are assigned
	// here; the explanation is persisted verbatim as JSON.
	Create(ctx context.Context, entry *models.AuditLogEntry) error

	// GetLatest returns the most recently created entry for an SME, or nil
	// when the SME has never been scored.
	GetLatest(ctx context.Context, smeID uuid.UUID) (*models.AuditLogEntry, error)

	// GetHistory returns the last limit entries for an SME, oldest first,
	// for trend reporting.
	GetHistory(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error)

	// WithTx returns a copy of the repository bound to the given
	// transaction, so GetLatest and Create can run under the same advisory
	// lock as the score computation's compare-then-insert.
	WithTx(tx pgx.Tx) AuditRepository
}

type auditRepository struct {
	q database.Querier
}

// NewAuditRepository creates a new AuditRepository on the connection pool.
func NewAuditRepository(db *database.DB) AuditRepository {
	return &auditRepository{q: db.Pool}
}

var _ AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) WithTx(tx pgx.Tx) AuditRepository {
	return &auditRepository{q: tx}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()

	explanationJSON, err := json.Marshal(entry.Explanation)
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}

	query := `
		INSERT INTO audit_log (id, sme_id, explanation, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err = r.q.Exec(ctx, query, entry.ID, entry.SMEID, explanationJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

func (r *auditRepository) GetLatest(ctx context.Context, smeID uuid.UUID) (*models.AuditLogEntry, error) {
	query := `
		SELECT id, sme_id, explanation, created_at
		FROM audit_log
		WHERE sme_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	entry, err := scanAuditLogEntry(r.q.QueryRow(ctx, query, smeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest audit log entry: %w", err)
	}

	return entry, nil
}

func (r *auditRepository) GetHistory(ctx context.Context, smeID uuid.UUID, limit int) ([]*models.AuditLogEntry, error) {
	// The newest limit rows, re-ordered oldest first.
	query := `
		SELECT id, sme_id, explanation, created_at FROM (
			SELECT id, sme_id, explanation, created_at
			FROM audit_log
			WHERE sme_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, smeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit history: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit history: %w", err)
	}

	return entries, nil
}

func scanAuditLogEntry(row pgx.Row) (*models.AuditLogEntry, error) {
	var entry models.AuditLogEntry
	var explanationJSON []byte

	err := row.Scan(&entry.ID, &entry.SMEID, &explanationJSON, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
	}

	if err := json.Unmarshal(explanationJSON, &entry.Explanation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explanation: %w", err)
	}

	return &entry, nil
}
