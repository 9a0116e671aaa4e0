package repositories

import (
	"context"
	"fmt"

	"github.com/bayanihan-labs/esg-engine/pkg/database"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// WatchlistRepository provides access to the supplier watchlist table. The
// table is externally refreshed (regulator blacklists, suspension lists) and
// unbounded; names are not unique across sources.
type WatchlistRepository interface {
	// ListAll returns every watchlist entry.
	ListAll(ctx context.Context) ([]models.WatchlistEntry, error)

	// Add appends entries. Duplicates are allowed; the matcher works on
	// similarity, not identity.
	Add(ctx context.Context, entries []models.WatchlistEntry) error
}

type watchlistRepository struct {
	db *database.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *database.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

var _ WatchlistRepository = (*watchlistRepository)(nil)

func (r *watchlistRepository) ListAll(ctx context.Context) ([]models.WatchlistEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT business_name, risk_tag FROM supplier_watchlist`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.BusinessName, &e.RiskTag); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist entries: %w", err)
	}

	return entries, nil
}

func (r *watchlistRepository) Add(ctx context.Context, entries []models.WatchlistEntry) error {
	for _, e := range entries {
		_, err := r.db.Exec(ctx,
			`INSERT INTO supplier_watchlist (business_name, risk_tag) VALUES ($1, $2)`,
			e.BusinessName, e.RiskTag,
		)
		if err != nil {
			return fmt.Errorf("failed to add watchlist entry %q: %w", e.BusinessName, err)
		}
	}

	return nil
}
