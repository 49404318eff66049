package tasks

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/desertthunder/mixtape/internal/shared"
)

type fakeSource struct {
	mu    sync.Mutex
	likes map[string][]string
	err   error
}

func (f *fakeSource) LikedVideoIDs(userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.likes[userID], nil
}

type fakeStore struct {
	mu      sync.Mutex
	written map[string][]string
	block   chan struct{}
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{written: map[string][]string{}}
}

func (f *fakeStore) StoreLikedIDs(ctx context.Context, userID string, videoIDs []string) error {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.written[userID] = videoIDs
	return nil
}

func (f *fakeStore) get(userID string) ([]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.written[userID]
	return ids, ok
}

func TestRefreshPool(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("refreshes cache entries from the store", func(t *testing.T) {
		source := &fakeSource{likes: map[string][]string{"u1": {"vidA", "vidB"}}}
		store := newFakeStore()

		pool := NewRefreshPool(source, store, 2, 8, logger)
		if !pool.Enqueue("u1") {
			t.Fatal("expected job to be accepted")
		}
		pool.Close()

		ids, ok := store.get("u1")
		if !ok {
			t.Fatal("expected cache entry written")
		}
		if len(ids) != 2 || ids[0] != "vidA" {
			t.Errorf("unexpected IDs %v", ids)
		}
	})

	t.Run("drops jobs when the queue is full", func(t *testing.T) {
		source := &fakeSource{likes: map[string][]string{}}
		store := newFakeStore()
		store.block = make(chan struct{})

		pool := NewRefreshPool(source, store, 1, 1, logger)

		// The blocked worker holds at most one job and the queue one more,
		// so repeated enqueues must hit a drop.
		dropped := false
		for i := 0; i < 50; i++ {
			if !pool.Enqueue("u1") {
				dropped = true
				break
			}
		}
		if !dropped {
			t.Error("expected a drop once worker and queue were saturated")
		}

		close(store.block)
		pool.Close()
	})

	t.Run("source failure is swallowed", func(t *testing.T) {
		source := &fakeSource{err: errors.New("database locked")}
		store := newFakeStore()

		pool := NewRefreshPool(source, store, 1, 4, logger)
		pool.Enqueue("u1")
		pool.Close()

		if _, ok := store.get("u1"); ok {
			t.Error("expected no cache write after source failure")
		}
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		source := &fakeSource{likes: map[string][]string{"u1": {"vidA"}}}
		store := newFakeStore()
		store.err = errors.New("connection refused")

		pool := NewRefreshPool(source, store, 1, 4, logger)
		pool.Enqueue("u1")
		pool.Close()
	})

	t.Run("close drains pending jobs and is idempotent", func(t *testing.T) {
		source := &fakeSource{likes: map[string][]string{
			"u1": {"vidA"},
			"u2": {"vidB"},
			"u3": {"vidC"},
		}}
		store := newFakeStore()

		pool := NewRefreshPool(source, store, 1, 8, logger)
		pool.Enqueue("u1")
		pool.Enqueue("u2")
		pool.Enqueue("u3")
		pool.Close()
		pool.Close()

		for _, user := range []string{"u1", "u2", "u3"} {
			if _, ok := store.get(user); !ok {
				t.Errorf("expected %s refreshed before shutdown", user)
			}
		}
	})

	t.Run("invalid sizes fall back to defaults", func(t *testing.T) {
		source := &fakeSource{likes: map[string][]string{}}
		pool := NewRefreshPool(source, newFakeStore(), 0, 0, logger)
		defer pool.Close()

		if cap(pool.jobs) != DefaultQueueSize {
			t.Errorf("expected queue size %d, got %d", DefaultQueueSize, cap(pool.jobs))
		}
	})
}
