package suggest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// seedLikes creates the user if needed and records likes for the given songs,
// seeding song metadata rows as required. Songs are (videoID, title, artist).
func seedLikes(t *testing.T, users *repositories.UserRepository, songs *repositories.SongRepository, identifier string, tracks [][3]string) *models.User {
	t.Helper()

	user, err := users.GetOrCreate(identifier)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", identifier, err)
	}

	songIDs := make([]string, len(tracks))
	for i, track := range tracks {
		song, err := songs.GetOrCreate(models.NewSongMetadata(0, track[0], track[1], track[2]))
		if err != nil {
			t.Fatalf("failed to seed song %s: %v", track[0], err)
		}
		songIDs[i] = song.ID()
	}

	if err := users.RecordLikes(user.ID(), songIDs); err != nil {
		t.Fatalf("failed to record likes for %s: %v", identifier, err)
	}

	return user
}

// fakeCatalog is an in-memory [services.Catalog] keyed by normalized query.
// A non-zero exhaustAfter spends the quota after that many searches.
type fakeCatalog struct {
	results      map[string]services.SongResult
	errs         map[string]error
	trending     []services.SongResult
	trendingErr  error
	exhausted    bool
	exhaustAfter int
	searches     []string
	genres       []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		results: make(map[string]services.SongResult),
		errs:    make(map[string]error),
	}
}

func (f *fakeCatalog) add(query, videoID, title, artist string) {
	f.results[shared.NormalizeQuery(query)] = services.SongResult{VideoID: videoID, Title: title, Artist: artist}
}

func (f *fakeCatalog) Search(ctx context.Context, query shared.TrackQuery) (*services.SongResult, error) {
	key := query.Normalized()
	f.searches = append(f.searches, key)
	if f.exhaustAfter > 0 && len(f.searches) >= f.exhaustAfter {
		f.exhausted = true
	}

	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if result, ok := f.results[key]; ok {
		return &result, nil
	}
	return nil, fmt.Errorf("%w: no results for %q", shared.ErrSongNotFound, key)
}

func (f *fakeCatalog) Trending(ctx context.Context, genre string, n int) ([]services.SongResult, error) {
	f.genres = append(f.genres, genre)
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	if len(f.trending) > n {
		return f.trending[:n], nil
	}
	return f.trending, nil
}

func (f *fakeCatalog) QuotaExhausted() bool { return f.exhausted }

func (f *fakeCatalog) Name() string { return "fake" }

// fakeRefresher records enqueued user IDs.
type fakeRefresher struct {
	enqueued []string
	full     bool
}

func (f *fakeRefresher) Enqueue(userID string) bool {
	if f.full {
		return false
	}
	f.enqueued = append(f.enqueued, userID)
	return true
}
