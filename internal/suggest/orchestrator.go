package suggest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixtape/internal/cache"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
)

const (
	// MaxSeedTitles caps how many seed titles one request may carry.
	MaxSeedTitles = 50
	// DefaultSuggestionLimit is the result cap when none is configured.
	DefaultSuggestionLimit = 10
)

// Refresher accepts fire-and-forget cache refresh jobs for a user's likes.
// Enqueue reports whether the job was accepted; a full queue drops the job.
type Refresher interface {
	Enqueue(userID string) bool
}

// EngineParams carries the dependencies for [NewEngine].
type EngineParams struct {
	Users     *repositories.UserRepository
	Songs     *repositories.SongRepository
	Catalog   services.Catalog
	Results   *cache.LRU[services.SongResult]
	Likes     *cache.LikesCache
	Refresher Refresher
	Limit     int
	Logger    *log.Logger
}

// Engine orchestrates the suggestion pipeline: resolve seed titles through
// the result cache and catalog, persist the likes, then recommend via the
// collaborative path with the content path as fallback.
type Engine struct {
	users         *repositories.UserRepository
	songs         *repositories.SongRepository
	catalog       services.Catalog
	results       *cache.LRU[services.SongResult]
	likes         *cache.LikesCache
	refresher     Refresher
	collaborative *CollaborativeRecommender
	content       *ContentRecommender
	limit         int
	logger        *log.Logger
}

// NewEngine wires an [Engine] from its dependencies. Likes and Refresher may
// be nil when no distributed cache is configured; a non-positive Limit falls
// back to [DefaultSuggestionLimit].
func NewEngine(p EngineParams) *Engine {
	limit := p.Limit
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	return &Engine{
		users:         p.Users,
		songs:         p.Songs,
		catalog:       p.Catalog,
		results:       p.Results,
		likes:         p.Likes,
		refresher:     p.Refresher,
		collaborative: NewCollaborativeRecommender(p.Users, p.Songs, DefaultMinOverlap),
		content:       NewContentRecommender(p.Songs, p.Catalog, p.Logger),
		limit:         limit,
		logger:        p.Logger,
	}
}

// Suggest runs the full pipeline for one request.
//
// Seed titles resolve individually; a title that fails to parse or resolve is
// logged and skipped without failing the request. Resolved songs are recorded
// as likes before recommending, so this request's seeds inform this request's
// suggestions. When nothing resolves and the user has no prior history there
// is nothing to recommend from and the request fails with
// [shared.ErrServiceUnavailable]. A successful response also enqueues an
// asynchronous likes-cache refresh, which never blocks or fails the response.
func (e *Engine) Suggest(ctx context.Context, identifier string, titles []string, genre string) ([]models.Suggestion, error) {
	if identifier == "" || len(identifier) > models.MaxIdentifierLength {
		return nil, fmt.Errorf("%w: user identifier must be 1-%d characters", shared.ErrInvalidInput, models.MaxIdentifierLength)
	}
	if len(titles) < 1 || len(titles) > MaxSeedTitles {
		return nil, fmt.Errorf("%w: between 1 and %d seed titles required", shared.ErrInvalidInput, MaxSeedTitles)
	}

	user, err := e.users.GetOrCreate(identifier)
	if err != nil {
		return nil, err
	}

	resolved := e.resolveSeeds(ctx, titles)

	songIDs := make([]string, 0, len(resolved))
	for _, result := range resolved {
		song, err := e.songs.GetOrCreate(models.NewSongMetadata(0, result.VideoID, result.Title, result.Artist))
		if err != nil {
			return nil, err
		}
		songIDs = append(songIDs, song.ID())
	}

	if err := e.users.RecordLikes(user.ID(), songIDs); err != nil {
		return nil, err
	}

	if len(resolved) == 0 {
		liked, err := e.users.LikedSongIDs(user.ID())
		if err != nil {
			return nil, err
		}
		if len(liked) == 0 {
			return nil, fmt.Errorf("%w: no seed titles resolved and user has no history", shared.ErrServiceUnavailable)
		}
	}

	suggestions, err := e.collaborative.Recommend(user.ID(), e.limit)
	if err != nil {
		return nil, err
	}

	if len(suggestions) == 0 {
		fallback, err := e.content.Recommend(ctx, user.ID(), genre, e.limit)
		if err != nil {
			return nil, err
		}
		suggestions = mergeSuggestions(suggestions, fallback, e.limit)
	}

	if e.refresher != nil && !e.refresher.Enqueue(user.ID()) {
		e.logger.Warn("likes cache refresh dropped", "user", user.Identifier())
	}

	return suggestions, nil
}

// GetLikedSongs returns the user's liked songs, most recent first. Unknown
// users get an empty list, not an error.
//
// A distributed cache hit serves a narrow metadata fetch by video ID; cached
// reads carry no like timestamps. Any cache miss or failure falls back to the
// authoritative join query. The cache is never populated synchronously here.
func (e *Engine) GetLikedSongs(ctx context.Context, identifier string) ([]models.LikedSongRecord, error) {
	user, err := e.users.GetByIdentifier(identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.LikedSongRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	if e.likes != nil {
		if records, ok := e.cachedLikes(ctx, user.ID()); ok {
			return records, nil
		}
	}

	records, err := e.songs.LikedJoinedMetadata(user.ID())
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.LikedSongRecord{}
	}

	return records, nil
}

// cachedLikes attempts the distributed-cache read path. Any failure reads as
// a miss so the caller falls back to the persistent store.
func (e *Engine) cachedLikes(ctx context.Context, userID string) ([]models.LikedSongRecord, bool) {
	ids, hit, err := e.likes.FetchLikedIDs(ctx, userID)
	if err != nil {
		e.logger.Warn("likes cache read failed, falling back to store", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	songs, err := e.songs.GetMetadata(ids)
	if err != nil {
		e.logger.Warn("metadata fetch for cached likes failed, falling back to store", "error", err)
		return nil, false
	}

	byVideoID := make(map[string]*models.SongMetadata, len(songs))
	for _, song := range songs {
		byVideoID[song.VideoID()] = song
	}

	records := make([]models.LikedSongRecord, 0, len(ids))
	for _, id := range ids {
		song, ok := byVideoID[id]
		if !ok {
			continue
		}
		records = append(records, models.LikedSongRecord{
			VideoID: song.VideoID(),
			Title:   song.Title(),
			Artist:  song.Artist(),
		})
	}

	return records, true
}

// ResultCacheStats reports the in-process result cache's fill and capacity.
func (e *Engine) ResultCacheStats() (length, capacity int) {
	if e.results == nil {
		return 0, 0
	}
	return e.results.Len(), e.results.Capacity()
}

// resolveSeeds maps raw seed titles to catalog songs through the result
// cache. Unparseable titles, provider failures, and a spent quota each skip
// the item with a warning. Duplicate resolutions collapse to one song.
func (e *Engine) resolveSeeds(ctx context.Context, titles []string) []services.SongResult {
	var resolved []services.SongResult
	seen := make(map[string]bool, len(titles))

	for _, raw := range titles {
		query, err := shared.ParseTrackQuery(raw)
		if err != nil {
			e.logger.Warn("skipping unparseable seed title", "title", raw, "error", err)
			continue
		}

		key := query.Normalized()
		if result, ok := e.results.Get(key); ok {
			if !seen[result.VideoID] {
				seen[result.VideoID] = true
				resolved = append(resolved, result)
			}
			continue
		}

		if e.catalog.QuotaExhausted() {
			e.logger.Warn("catalog quota spent, skipping seed title", "query", key)
			continue
		}

		result, err := e.catalog.Search(ctx, query)
		if err != nil {
			e.logger.Warn("failed to resolve seed title", "query", key, "error", err)
			continue
		}

		e.results.Put(key, *result)
		if !seen[result.VideoID] {
			seen[result.VideoID] = true
			resolved = append(resolved, *result)
		}
	}

	return resolved
}

// mergeSuggestions combines primary and fallback suggestions, deduplicating
// by video ID with primary taking precedence, capped at limit.
func mergeSuggestions(primary, fallback []models.Suggestion, limit int) []models.Suggestion {
	merged := make([]models.Suggestion, 0, limit)
	seen := make(map[string]bool, limit)

	for _, lists := range [][]models.Suggestion{primary, fallback} {
		for _, s := range lists {
			if seen[s.VideoID] {
				continue
			}
			seen[s.VideoID] = true
			merged = append(merged, s)
			if len(merged) == limit {
				return merged
			}
		}
	}

	return merged
}
