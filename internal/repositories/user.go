package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// UserRepository implements persistence for [models.User] and like recording.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate retrieves a user by their opaque external identifier or creates
// a new one if not found. A user row is always returned with a valid ID.
//
// Concurrent first references to the same identifier may race; the loser of
// the insert re-reads the winner's row.
func (r *UserRepository) GetOrCreate(identifier string) (*models.User, error) {
	user, err := r.GetByIdentifier(identifier)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	sequence, err := NextSequence(r.db, "users")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	user = models.NewUser(sequence, identifier, "")
	user.SetID(shared.GenerateID())

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO users (id, sequence, identifier, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, user.ID(), sequence, user.Identifier(), user.DisplayName(), user.CreatedAt(), user.UpdatedAt())
	if err != nil {
		// Lost a concurrent insert race; the row exists now.
		if existing, getErr := r.GetByIdentifier(identifier); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return user, nil
}

// GetByIdentifier retrieves a user by their external identifier.
// Returns [sql.ErrNoRows] when no such user exists.
func (r *UserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	query := `
		SELECT id, sequence, identifier, display_name, created_at, updated_at
		FROM users
		WHERE identifier = ?
	`

	var (
		id          string
		sequence    int
		ident       string
		displayName sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := r.db.QueryRow(query, identifier).Scan(&id, &sequence, &ident, &displayName, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(sequence, ident, displayName.String)
	user.SetID(id)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(updatedAt)

	return user, nil
}

// RecordLikes persists liked-song rows for the user, one per song ID.
//
// Idempotent: duplicate (user, song) pairs are ignored, existing rows keep
// their original timestamps, and likes absent from songIDs are never removed.
func (r *UserRepository) RecordLikes(userID string, songIDs []string) error {
	if len(songIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR IGNORE INTO user_liked_songs (id, user_id, song_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	for _, songID := range songIDs {
		like := models.NewLikedSong(userID, songID)
		like.SetID(shared.GenerateID())
		if err := like.Validate(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		if _, err := tx.Exec(query, like.ID(), like.UserID(), like.SongID(), like.CreatedAt()); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return nil
}

// LikedSongIDs returns the set of song row IDs the user has liked.
func (r *UserRepository) LikedSongIDs(userID string) (map[string]bool, error) {
	rows, err := r.db.Query("SELECT song_id FROM user_liked_songs WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	liked := make(map[string]bool)
	for rows.Next() {
		var songID string
		if err := rows.Scan(&songID); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}
		liked[songID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return liked, nil
}

// FindNeighbors returns users whose liked-song sets intersect the target
// user's in at least minOverlap distinct songs, with their overlap counts.
func (r *UserRepository) FindNeighbors(userID string, minOverlap int) ([]models.Neighbor, error) {
	query := `
		SELECT theirs.user_id, COUNT(DISTINCT theirs.song_id) AS overlap
		FROM user_liked_songs theirs
		JOIN user_liked_songs mine
		  ON mine.song_id = theirs.song_id AND mine.user_id = ?
		WHERE theirs.user_id != ?
		GROUP BY theirs.user_id
		HAVING COUNT(DISTINCT theirs.song_id) >= ?
		ORDER BY overlap DESC, theirs.user_id ASC
	`

	rows, err := r.db.Query(query, userID, userID, minOverlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}
	defer rows.Close()

	var neighbors []models.Neighbor
	for rows.Next() {
		var n models.Neighbor
		if err := rows.Scan(&n.UserID, &n.Overlap); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
		}
		neighbors = append(neighbors, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRepositoryFailure, err)
	}

	return neighbors, nil
}
