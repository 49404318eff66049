// package services defines interface Catalog for resolving songs against
// external music providers
//
// YouTube Data API, Spotify (metadata enrichment)
package services

import (
	"context"
	"sync"

	"github.com/desertthunder/mixtape/internal/shared"
)

// Catalog is the interface for music catalog providers that resolve free-text
// track queries into concrete songs.
type Catalog interface {
	// Search resolves a normalized track query to the single best-matching
	// song. Returns shared.ErrSongNotFound when the provider has no match.
	Search(ctx context.Context, query shared.TrackQuery) (*SongResult, error)

	// Trending returns up to n popular songs for the given genre. An empty
	// genre requests globally popular songs.
	Trending(ctx context.Context, genre string, n int) ([]SongResult, error)

	// QuotaExhausted reports whether the provider's daily request budget has
	// been spent. Callers should skip provider calls while it returns true.
	QuotaExhausted() bool

	// Name returns the provider name (e.g. "YouTube").
	Name() string
}

// SongResult is a provider-resolved song.
type SongResult struct {
	VideoID string
	Title   string
	Artist  string
}

// quotaTracker counts request units spent against a fixed daily budget.
//
// The tracker never resets on its own; the process is expected to restart (or
// the tracker to be replaced) on the provider's quota boundary. Exhaustion is
// advisory: a racing caller may spend one extra unit past the budget.
type quotaTracker struct {
	mu     sync.Mutex
	budget int
	spent  int
}

func newQuotaTracker(budget int) *quotaTracker {
	return &quotaTracker{budget: budget}
}

// Spend records cost units against the budget.
func (q *quotaTracker) Spend(cost int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.spent += cost
}

// Exhausted reports whether the budget has been spent. A non-positive budget
// disables tracking.
func (q *quotaTracker) Exhausted() bool {
	if q.budget <= 0 {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.spent >= q.budget
}
