package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// SongRepository implements persistence for [models.SongMetadata] and the
// liked-song read paths the engine consumes.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song metadata row with generated ID and sequence.
func (r *SongRepository) Create(song *models.SongMetadata) error {
	sequence, err := NextSequence(r.db, "song_metadata")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	song.SetID(shared.GenerateID())

	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO song_metadata (id, sequence, video_id, title, artist, genre, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var genre any
	if song.Genre() != "" {
		genre = song.Genre()
	}

	_, err = r.db.Exec(query, song.ID(), sequence, song.VideoID(), song.Title(), song.Artist(),
		genre, song.TagString(), song.CreatedAt(), song.UpdatedAt())
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return nil
}

// GetOrCreate retrieves the song with the given video ID, creating it when
// absent. Concurrent creation races resolve by re-reading the winner's row.
func (r *SongRepository) GetOrCreate(song *models.SongMetadata) (*models.SongMetadata, error) {
	existing, err := r.GetByVideoID(song.VideoID())
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	if err := r.Create(song); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return r.GetByVideoID(song.VideoID())
		}
		return nil, err
	}

	return song, nil
}

// GetByVideoID retrieves song metadata by its external video ID.
// Returns [sql.ErrNoRows] when the song is not cached locally.
func (r *SongRepository) GetByVideoID(videoID string) (*models.SongMetadata, error) {
	query := `
		SELECT id, sequence, video_id, title, artist, genre, tags, created_at, updated_at
		FROM song_metadata
		WHERE video_id = ?
	`

	return r.scanOne(r.db.QueryRow(query, videoID))
}

// UpdateEnrichment backfills genre and tags for a song after catalog enrichment.
func (r *SongRepository) UpdateEnrichment(videoID, genre string, tags []string) error {
	query := `
		UPDATE song_metadata
		SET genre = ?, tags = ?, updated_at = ?
		WHERE video_id = ?
	`

	var genreVal any
	if genre != "" {
		genreVal = genre
	}

	_, err := r.db.Exec(query, genreVal, strings.Join(tags, ","), time.Now(), videoID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return nil
}

// GetMetadata retrieves song metadata rows for the given video IDs.
// Missing IDs are silently absent from the result.
func (r *SongRepository) GetMetadata(videoIDs []string) ([]*models.SongMetadata, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, sequence, video_id, title, artist, genre, tags, created_at, updated_at
		FROM song_metadata
		WHERE video_id IN (%s)
		ORDER BY sequence ASC
	`, placeholders(len(videoIDs)))

	args := make([]any, len(videoIDs))
	for i, id := range videoIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// LikedJoinedMetadata returns the user's liked songs joined with metadata,
// ordered most-recent-first. Unknown users yield an empty slice, not an error.
func (r *SongRepository) LikedJoinedMetadata(userID string) ([]models.LikedSongRecord, error) {
	query := `
		SELECT s.video_id, s.title, s.artist, l.created_at
		FROM user_liked_songs l
		JOIN song_metadata s ON s.id = l.song_id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC, s.video_id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	var records []models.LikedSongRecord
	for rows.Next() {
		var rec models.LikedSongRecord
		if err := rows.Scan(&rec.VideoID, &rec.Title, &rec.Artist, &rec.LikedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return records, nil
}

// LikedVideoIDs returns the external video IDs of the user's liked songs,
// ordered most-recent-first. Used by the write-behind cache refresh task.
func (r *SongRepository) LikedVideoIDs(userID string) ([]string, error) {
	query := `
		SELECT s.video_id
		FROM user_liked_songs l
		JOIN song_metadata s ON s.id = l.song_id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC, s.video_id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return ids, nil
}

// NeighborLike is one neighbor's liked song, used by the collaborative
// recommender to score candidates.
type NeighborLike struct {
	Song       *models.SongMetadata
	NeighborID string
	LikedAt    time.Time
}

// NeighborLikes returns the songs liked by the given neighbor users,
// excluding songs the target user already likes. One row per
// (neighbor, song) pair.
func (r *SongRepository) NeighborLikes(neighborIDs []string, excludeUserID string) ([]NeighborLike, error) {
	if len(neighborIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.sequence, s.video_id, s.title, s.artist, s.genre, s.tags,
		       s.created_at, s.updated_at, l.user_id, l.created_at
		FROM user_liked_songs l
		JOIN song_metadata s ON s.id = l.song_id
		WHERE l.user_id IN (%s)
		  AND l.song_id NOT IN (SELECT song_id FROM user_liked_songs WHERE user_id = ?)
		ORDER BY s.video_id ASC, l.user_id ASC
	`, placeholders(len(neighborIDs)))

	args := make([]any, 0, len(neighborIDs)+1)
	for _, id := range neighborIDs {
		args = append(args, id)
	}
	args = append(args, excludeUserID)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	var likes []NeighborLike
	for rows.Next() {
		var (
			id, videoID, title, artist string
			sequence                   int
			genre                      sql.NullString
			tags                       sql.NullString
			createdAt, updatedAt       time.Time
			neighborID                 string
			likedAt                    time.Time
		)

		err := rows.Scan(&id, &sequence, &videoID, &title, &artist, &genre, &tags,
			&createdAt, &updatedAt, &neighborID, &likedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}

		song := models.NewSongMetadata(sequence, videoID, title, artist)
		song.SetID(id)
		song.SetGenre(genre.String)
		song.SetTagString(tags.String)
		song.SetCreatedAt(createdAt)
		song.SetUpdatedAt(updatedAt)

		likes = append(likes, NeighborLike{Song: song, NeighborID: neighborID, LikedAt: likedAt})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return likes, nil
}

// CandidateSongs returns recently updated catalog songs not liked by the
// user, for the content-based recommender's candidate pool.
func (r *SongRepository) CandidateSongs(excludeUserID string, limit int) ([]*models.SongMetadata, error) {
	query := `
		SELECT id, sequence, video_id, title, artist, genre, tags, created_at, updated_at
		FROM song_metadata
		WHERE id NOT IN (SELECT song_id FROM user_liked_songs WHERE user_id = ?)
		ORDER BY updated_at DESC, video_id ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// LikedMetadata returns full metadata rows for the user's liked songs,
// used to build the content recommender's taste profile.
func (r *SongRepository) LikedMetadata(userID string) ([]*models.SongMetadata, error) {
	query := `
		SELECT s.id, s.sequence, s.video_id, s.title, s.artist, s.genre, s.tags, s.created_at, s.updated_at
		FROM user_liked_songs l
		JOIN song_metadata s ON s.id = l.song_id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC, s.video_id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *SongRepository) scanOne(row *sql.Row) (*models.SongMetadata, error) {
	var (
		id, videoID, title, artist string
		sequence                   int
		genre, tags                sql.NullString
		createdAt, updatedAt       time.Time
	)

	err := row.Scan(&id, &sequence, &videoID, &title, &artist, &genre, &tags, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	song := models.NewSongMetadata(sequence, videoID, title, artist)
	song.SetID(id)
	song.SetGenre(genre.String)
	song.SetTagString(tags.String)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)

	return song, nil
}

func (r *SongRepository) scanAll(rows *sql.Rows) ([]*models.SongMetadata, error) {
	var songs []*models.SongMetadata
	for rows.Next() {
		var (
			id, videoID, title, artist string
			sequence                   int
			genre, tags                sql.NullString
			createdAt, updatedAt       time.Time
		)

		err := rows.Scan(&id, &sequence, &videoID, &title, &artist, &genre, &tags, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}

		song := models.NewSongMetadata(sequence, videoID, title, artist)
		song.SetID(id)
		song.SetGenre(genre.String)
		song.SetTagString(tags.String)
		song.SetCreatedAt(createdAt)
		song.SetUpdatedAt(updatedAt)

		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return songs, nil
}
