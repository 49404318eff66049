package suggest

import (
	"sort"
	"time"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/repositories"
)

// DefaultMinOverlap is the distinct-song overlap two users need before one
// counts as the other's neighbor.
const DefaultMinOverlap = 2

// CollaborativeRecommender suggests songs liked by users with overlapping
// taste. A candidate's score is the number of distinct neighbors who like it.
type CollaborativeRecommender struct {
	users      *repositories.UserRepository
	songs      *repositories.SongRepository
	minOverlap int
}

// NewCollaborativeRecommender creates a recommender over the given
// repositories. Overlap thresholds below 1 fall back to [DefaultMinOverlap].
func NewCollaborativeRecommender(users *repositories.UserRepository, songs *repositories.SongRepository, minOverlap int) *CollaborativeRecommender {
	if minOverlap < 1 {
		minOverlap = DefaultMinOverlap
	}
	return &CollaborativeRecommender{users: users, songs: songs, minOverlap: minOverlap}
}

type collaborativeCandidate struct {
	song      *models.SongMetadata
	neighbors map[string]bool
	latest    time.Time
}

// Recommend returns up to limit suggestions for the user, ranked by distinct
// neighbor count. Ties break on the most recent contributing like, then on
// video ID ascending. A user with no qualifying neighbors gets an empty
// result, not an error; candidates never include the user's own likes.
func (c *CollaborativeRecommender) Recommend(userID string, limit int) ([]models.Suggestion, error) {
	neighbors, err := c.users.FindNeighbors(userID, c.minOverlap)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	neighborIDs := make([]string, len(neighbors))
	for i, n := range neighbors {
		neighborIDs[i] = n.UserID
	}

	likes, err := c.songs.NeighborLikes(neighborIDs, userID)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string]*collaborativeCandidate)
	for _, like := range likes {
		videoID := like.Song.VideoID()
		cand, ok := candidates[videoID]
		if !ok {
			cand = &collaborativeCandidate{song: like.Song, neighbors: make(map[string]bool)}
			candidates[videoID] = cand
		}
		cand.neighbors[like.NeighborID] = true
		if like.LikedAt.After(cand.latest) {
			cand.latest = like.LikedAt
		}
	}

	ranked := make([]*collaborativeCandidate, 0, len(candidates))
	for _, cand := range candidates {
		ranked = append(ranked, cand)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if len(ranked[i].neighbors) != len(ranked[j].neighbors) {
			return len(ranked[i].neighbors) > len(ranked[j].neighbors)
		}
		if !ranked[i].latest.Equal(ranked[j].latest) {
			return ranked[i].latest.After(ranked[j].latest)
		}
		return ranked[i].song.VideoID() < ranked[j].song.VideoID()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]models.Suggestion, len(ranked))
	for i, cand := range ranked {
		suggestions[i] = models.Suggestion{
			Title:      cand.song.Title(),
			Artist:     cand.song.Artist(),
			VideoID:    cand.song.VideoID(),
			Score:      float64(len(cand.neighbors)),
			Provenance: models.ProvenanceCollaborative,
		}
	}

	return suggestions, nil
}
