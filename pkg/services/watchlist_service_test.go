package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

func TestWatchlistRefresh(t *testing.T) {
	repo := &mockWatchlistRepo{}
	svc := NewWatchlistService(repo, zap.NewNop())

	added, err := svc.Refresh(context.Background(), []models.WatchlistEntry{
		{BusinessName: "ACME TRADING INCORPORATED", RiskTag: "suspended"},
		{BusinessName: "", RiskTag: "ignored"},
		{BusinessName: "GOLDEN HARVEST CORPORATION", RiskTag: "blacklisted"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Len(t, repo.entries, 2)
}

func TestWatchlistRefreshNothingValid(t *testing.T) {
	repo := &mockWatchlistRepo{}
	svc := NewWatchlistService(repo, zap.NewNop())

	added, err := svc.Refresh(context.Background(), []models.WatchlistEntry{{BusinessName: ""}})
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Empty(t, repo.entries)
}

func TestFileWatchlistSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	content := `
- business_name: ACME TRADING INCORPORATED
  risk_tag: suspended
- business_name: GOLDEN HARVEST CORPORATION
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source := NewFileWatchlistSource(path)
	entries, err := source.LookupCandidates(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "suspended", entries[0].RiskTag)
	assert.Empty(t, entries[1].RiskTag)
}

func TestFileWatchlistSourceMissingFile(t *testing.T) {
	source := NewFileWatchlistSource(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := source.LookupCandidates(context.Background(), "anything")
	assert.Error(t, err)
}

func TestFileWatchlistSourcePicksUpRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- business_name: FIRST\n"), 0o644))

	source := NewFileWatchlistSource(path)
	entries, err := source.LookupCandidates(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, os.WriteFile(path, []byte("- business_name: FIRST\n- business_name: SECOND\n"), 0o644))
	entries, err = source.LookupCandidates(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
