// package models defines the data model for the music suggestion service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the suggestion service.
// Implementations include User, SongMetadata, and LikedSong.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Provenance identifies which algorithm produced a [Suggestion].
type Provenance string

const (
	ProvenanceCollaborative      Provenance = "collaborative"
	ProvenanceContentFallback    Provenance = "content-fallback"
	ProvenancePopularityFallback Provenance = "popularity-fallback"
)

// Suggestion is a single ranked recommendation returned to a caller.
// Suggestions are transient; they are never persisted.
type Suggestion struct {
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	VideoID    string     `json:"youtube_video_id"`
	Score      float64    `json:"score"`
	Provenance Provenance `json:"provenance"`
}

// LikedSongRecord is a liked song joined with its catalog metadata,
// ordered most-recent-first by the read endpoints.
type LikedSongRecord struct {
	VideoID string    `json:"video_id"`
	Title   string    `json:"title"`
	Artist  string    `json:"artist"`
	LikedAt time.Time `json:"created_at"`
}

// Neighbor pairs a user with the number of liked songs they share with a target user.
type Neighbor struct {
	UserID  string
	Overlap int
}
