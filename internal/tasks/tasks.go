// package tasks implements the background write-behind refresh for the
// distributed likes cache.
//
// The suggestion path enqueues a refresh after recording likes; workers read
// the authoritative liked-song list and overwrite the cache entry. Enqueueing
// never blocks a request: a full queue drops the job with a warning and the
// cache entry simply stays stale until its TTL or the next refresh.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultWorkers is the refresh pool size when none is configured.
	DefaultWorkers = 4
	// DefaultQueueSize bounds pending refresh jobs before drops begin.
	DefaultQueueSize = 64

	// refreshTimeout bounds one refresh job's store read plus cache write.
	refreshTimeout = 5 * time.Second
)

// LikedSource reads a user's authoritative liked video IDs.
// *repositories.SongRepository satisfies it.
type LikedSource interface {
	LikedVideoIDs(userID string) ([]string, error)
}

// LikesStore writes a user's liked video IDs to the distributed cache.
// *cache.LikesCache satisfies it.
type LikesStore interface {
	StoreLikedIDs(ctx context.Context, userID string, videoIDs []string) error
}

// RefreshPool is a fixed-size worker pool that refreshes distributed cache
// entries from the persistent store.
//
// Jobs are fire-and-forget. Two refreshes for the same user may interleave;
// whichever cache write lands last wins, and since both read the
// append-only store the later snapshot is never worse than the earlier one.
type RefreshPool struct {
	source LikedSource
	store  LikesStore
	logger *log.Logger

	jobs chan string
	wg   sync.WaitGroup
	once sync.Once
}

// NewRefreshPool starts workers consuming refresh jobs. Non-positive workers
// or queueSize fall back to the defaults.
func NewRefreshPool(source LikedSource, store LikesStore, workers, queueSize int, logger *log.Logger) *RefreshPool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}

	p := &RefreshPool{
		source: source,
		store:  store,
		logger: logger,
		jobs:   make(chan string, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Enqueue submits a refresh job for the user without blocking.
// Reports false when the queue is full and the job was dropped.
func (p *RefreshPool) Enqueue(userID string) bool {
	select {
	case p.jobs <- userID:
		return true
	default:
		p.logger.Warn("refresh queue full, dropping job", "user_id", userID)
		return false
	}
}

// Close stops accepting jobs, drains the queue, and waits for workers to
// finish. Safe to call more than once.
func (p *RefreshPool) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}

func (p *RefreshPool) worker() {
	defer p.wg.Done()

	for userID := range p.jobs {
		p.refresh(userID)
	}
}

// refresh snapshots the user's likes and overwrites the cache entry.
// Failures are logged and swallowed; the cache is advisory.
func (p *RefreshPool) refresh(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	videoIDs, err := p.source.LikedVideoIDs(userID)
	if err != nil {
		p.logger.Warn("failed to read likes for cache refresh", "user_id", userID, "error", err)
		return
	}

	if err := p.store.StoreLikedIDs(ctx, userID, videoIDs); err != nil {
		p.logger.Warn("failed to write likes cache entry", "user_id", userID, "error", err)
	}
}
