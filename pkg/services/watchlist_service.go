package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
	"github.com/bayanihan-labs/esg-engine/pkg/repositories"
	"github.com/bayanihan-labs/esg-engine/pkg/scoring"
)

// NewTableWatchlistSource returns a WatchlistSource backed by the
// supplier_watchlist table.
func NewTableWatchlistSource(repo repositories.WatchlistRepository) scoring.WatchlistSource {
	return &tableWatchlistSource{repo: repo}
}

type tableWatchlistSource struct {
	repo repositories.WatchlistRepository
}

func (s *tableWatchlistSource) LookupCandidates(ctx context.Context, name string) ([]models.WatchlistEntry, error) {
	return s.repo.ListAll(ctx)
}

// NewFileWatchlistSource returns a WatchlistSource backed by a YAML snapshot
// file, the drop-off format for externally scraped blacklists. The file is
// re-read on every lookup so an external refresh takes effect without a
// restart.
func NewFileWatchlistSource(path string) scoring.WatchlistSource {
	return &fileWatchlistSource{path: path}
}

type fileWatchlistSource struct {
	path string
}

func (s *fileWatchlistSource) LookupCandidates(ctx context.Context, name string) ([]models.WatchlistEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist file %s: %w", s.path, err)
	}

	var entries []models.WatchlistEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist file %s: %w", s.path, err)
	}

	return entries, nil
}

// WatchlistService handles the external-refresh path for the watchlist
// table: regulator blacklists and suspension lists are appended as they are
// published.
type WatchlistService interface {
	// Refresh appends entries to the watchlist. Entries with an empty
	// business name are skipped.
	Refresh(ctx context.Context, entries []models.WatchlistEntry) (int, error)
}

type watchlistService struct {
	repo   repositories.WatchlistRepository
	logger *zap.Logger
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(repo repositories.WatchlistRepository, logger *zap.Logger) WatchlistService {
	return &watchlistService{
		repo:   repo,
		logger: logger.Named("watchlist-service"),
	}
}

var _ WatchlistService = (*watchlistService)(nil)

func (s *watchlistService) Refresh(ctx context.Context, entries []models.WatchlistEntry) (int, error) {
	valid := make([]models.WatchlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.BusinessName == "" {
			continue
		}
		valid = append(valid, e)
	}

	if len(valid) == 0 {
		return 0, nil
	}

	if err := s.repo.Add(ctx, valid); err != nil {
		s.logger.Error("Failed to refresh watchlist", zap.Int("entries", len(valid)), zap.Error(err))
		return 0, fmt.Errorf("refresh watchlist: %w", err)
	}

	s.logger.Info("Watchlist refreshed", zap.Int("added", len(valid)))
	return len(valid), nil
}
