package models

import (
	"fmt"
	"strings"
	"time"
)

// SongMetadata stores definitive catalog data for a song, identified by its
// external video ID. Rows are shared across users and treated as
// append-mostly reference data.
type SongMetadata struct {
	id        string
	sequence  int
	videoID   string
	title     string
	artist    string
	genre     string
	tags      []string
	createdAt time.Time
	updatedAt time.Time
}

// NewSongMetadata creates a new SongMetadata with the given sequence and catalog fields.
func NewSongMetadata(sequence int, videoID, title, artist string) *SongMetadata {
	now := time.Now()
	return &SongMetadata{
		sequence:  sequence,
		videoID:   videoID,
		title:     title,
		artist:    artist,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *SongMetadata) ID() string            { return s.id }
func (s *SongMetadata) Sequence() int         { return s.sequence }
func (s *SongMetadata) VideoID() string       { return s.videoID }
func (s *SongMetadata) Title() string         { return s.title }
func (s *SongMetadata) Artist() string        { return s.artist }
func (s *SongMetadata) Genre() string         { return s.genre }
func (s *SongMetadata) Tags() []string        { return s.tags }
func (s *SongMetadata) CreatedAt() time.Time  { return s.createdAt }
func (s *SongMetadata) UpdatedAt() time.Time  { return s.updatedAt }
func (s *SongMetadata) SetID(id string)       { s.id = id }
func (s *SongMetadata) SetGenre(g string)     { s.genre = g }
func (s *SongMetadata) SetTags(tags []string) { s.tags = tags }
func (s *SongMetadata) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *SongMetadata) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// TagString returns the tags joined for storage as a single column.
func (s *SongMetadata) TagString() string {
	return strings.Join(s.tags, ",")
}

// SetTagString splits a stored tag column back into the tag list.
func (s *SongMetadata) SetTagString(tags string) {
	if tags == "" {
		s.tags = nil
		return
	}
	s.tags = strings.Split(tags, ",")
}

// Validate checks that the song has a video ID and title.
func (s *SongMetadata) Validate() error {
	if s.videoID == "" {
		return fmt.Errorf("video ID is required")
	}
	if s.title == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// LikedSong is the association between a [User] and a [SongMetadata] they liked.
// At most one row exists per (user, song) pair; rows are never mutated.
type LikedSong struct {
	id        string
	userID    string
	songID    string
	createdAt time.Time
}

// NewLikedSong creates a new LikedSong pairing the given user and song IDs.
func NewLikedSong(userID, songID string) *LikedSong {
	return &LikedSong{
		userID:    userID,
		songID:    songID,
		createdAt: time.Now(),
	}
}

func (l *LikedSong) ID() string            { return l.id }
func (l *LikedSong) UserID() string        { return l.userID }
func (l *LikedSong) SongID() string        { return l.songID }
func (l *LikedSong) CreatedAt() time.Time  { return l.createdAt }
func (l *LikedSong) SetID(id string)       { l.id = id }
func (l *LikedSong) SetCreatedAt(t time.Time) { l.createdAt = t }

// Validate checks that both sides of the association are present.
func (l *LikedSong) Validate() error {
	if l.userID == "" || l.songID == "" {
		return fmt.Errorf("liked song requires user and song IDs")
	}
	return nil
}
