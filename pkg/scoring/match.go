package scoring

import (
	"context"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// DefaultMatchThreshold is the minimum similarity ratio for a watchlist
// entry to count as a match.
const DefaultMatchThreshold = 0.8

// corporateSuffixes are stripped during canonicalization so that
// "ABC Inc." and "ABC Incorporated" compare equal. Longer tokens first so
// INCORPORATED is removed before INC can eat its prefix.
var corporateSuffixes = []string{
	"INCORPORATED",
	"CORPORATION",
	"RESPONDENT",
	"COMPANY",
	"INC",
}

// WatchlistSource yields watchlist candidates for a business name. The
// origin (static table, external feed snapshot, cache) is interchangeable;
// the matcher only sees names and tags.
type WatchlistSource interface {
	LookupCandidates(ctx context.Context, name string) ([]models.WatchlistEntry, error)
}

// Canonicalize uppercases a business name, strips the fixed corporate-suffix
// tokens and punctuation, and collapses runs of whitespace.
func Canonicalize(name string) string {
	s := strings.ToUpper(name)
	for _, suffix := range corporateSuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// similarityRatio is the character-level, order-sensitive sequence
// similarity of two canonicalized names: twice the matched character count
// over the combined length.
func similarityRatio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Matcher fuzzy-matches business names against a watchlist.
type Matcher struct {
	source    WatchlistSource
	threshold float64
}

// NewMatcher creates a Matcher over the given source. A non-positive
// threshold falls back to DefaultMatchThreshold.
func NewMatcher(source WatchlistSource, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{source: source, threshold: threshold}
}

// MatchScore returns the highest similarity ratio at or above the threshold
// between the canonicalized name and any canonicalized watchlist entry, or 0
// when nothing clears the threshold. The matched entry's risk tag stays
// internal; only the numeric affinity is surfaced downstream.
func (m *Matcher) MatchScore(ctx context.Context, name string) (float64, error) {
	candidates, err := m.source.LookupCandidates(ctx, name)
	if err != nil {
		return 0, err
	}

	canonical := Canonicalize(name)

	best := 0.0
	matched := false
	for _, entry := range candidates {
		ratio := similarityRatio(canonical, Canonicalize(entry.BusinessName))
		if ratio >= m.threshold && ratio > best {
			best = ratio
			matched = true
		}
	}

	if !matched {
		return 0, nil
	}
	return best, nil
}
