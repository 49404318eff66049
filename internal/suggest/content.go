package suggest

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/services"
)

// DefaultCandidatePool caps how many catalog songs the vector ranking considers.
const DefaultCandidatePool = 200

// ContentRecommender is the fallback when collaborative filtering produces
// nothing. With liked-song history it ranks unseen catalog songs by TF-IDF
// cosine similarity against the user's taste profile; without history it
// degrades to a catalog popularity search.
type ContentRecommender struct {
	songs    *repositories.SongRepository
	catalog  services.Catalog
	poolSize int
	logger   *log.Logger
}

// NewContentRecommender creates a fallback recommender. The catalog may be nil,
// which disables popularity mode.
func NewContentRecommender(songs *repositories.SongRepository, catalog services.Catalog, logger *log.Logger) *ContentRecommender {
	return &ContentRecommender{
		songs:    songs,
		catalog:  catalog,
		poolSize: DefaultCandidatePool,
		logger:   logger,
	}
}

// Recommend returns up to limit fallback suggestions for the user.
//
// Vector mode runs when the user has liked songs and any candidate scores
// above zero; otherwise popularity mode queries the catalog for trending
// songs in the optional genre. Popularity mode is skipped entirely when the
// catalog quota is spent or the trending call fails, yielding an empty result.
func (c *ContentRecommender) Recommend(ctx context.Context, userID, genre string, limit int) ([]models.Suggestion, error) {
	if limit < 1 {
		limit = 1
	}

	liked, err := c.songs.LikedMetadata(userID)
	if err != nil {
		return nil, err
	}

	if len(liked) > 0 {
		suggestions, err := c.vectorRank(userID, liked, limit)
		if err != nil {
			return nil, err
		}
		if len(suggestions) > 0 {
			return suggestions, nil
		}
	}

	return c.popularityRank(ctx, liked, genre, limit), nil
}

// vectorRank scores the candidate pool against the mean vector of the user's
// liked songs. Zero-similarity candidates are dropped; ties break on video ID.
func (c *ContentRecommender) vectorRank(userID string, liked []*models.SongMetadata, limit int) ([]models.Suggestion, error) {
	candidates, err := c.songs.CandidateSongs(userID, c.poolSize)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	docs := make([][]string, 0, len(candidates)+len(liked))
	for _, song := range candidates {
		docs = append(docs, featureTerms(song))
	}
	for _, song := range liked {
		docs = append(docs, featureTerms(song))
	}

	v := fitVectorizer(docs)

	likedVectors := make([]termVector, len(liked))
	for i, song := range liked {
		likedVectors[i] = v.vectorize(featureTerms(song))
	}
	profile := meanVector(likedVectors)

	type scored struct {
		song  *models.SongMetadata
		score float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, song := range candidates {
		score := cosine(profile, v.vectorize(featureTerms(song)))
		if score <= 0 {
			continue
		}
		ranked = append(ranked, scored{song: song, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].song.VideoID() < ranked[j].song.VideoID()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]models.Suggestion, len(ranked))
	for i, s := range ranked {
		suggestions[i] = models.Suggestion{
			Title:      s.song.Title(),
			Artist:     s.song.Artist(),
			VideoID:    s.song.VideoID(),
			Score:      s.score,
			Provenance: models.ProvenanceContentFallback,
		}
	}

	return suggestions, nil
}

// popularityRank asks the catalog for trending songs, filtering out anything
// the user already likes. Catalog failures degrade to an empty result.
func (c *ContentRecommender) popularityRank(ctx context.Context, liked []*models.SongMetadata, genre string, limit int) []models.Suggestion {
	if c.catalog == nil || c.catalog.QuotaExhausted() {
		return nil
	}

	results, err := c.catalog.Trending(ctx, genre, limit)
	if err != nil {
		c.logger.Warn("trending lookup failed, skipping popularity fallback", "genre", genre, "error", err)
		return nil
	}

	likedIDs := make(map[string]bool, len(liked))
	for _, song := range liked {
		likedIDs[song.VideoID()] = true
	}

	var suggestions []models.Suggestion
	for i, result := range results {
		if likedIDs[result.VideoID] {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			Title:      result.Title,
			Artist:     result.Artist,
			VideoID:    result.VideoID,
			Score:      float64(len(results)-i) / float64(len(results)),
			Provenance: models.ProvenancePopularityFallback,
		})
		if len(suggestions) == limit {
			break
		}
	}

	return suggestions
}
