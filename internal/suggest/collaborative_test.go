package suggest

import (
	"testing"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/repositories"
)

func TestCollaborativeRecommender(t *testing.T) {
	t.Run("suggests a neighbor's extra song", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		target := seedLikes(t, users, songs, "u1", [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
		})
		seedLikes(t, users, songs, "u2", [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
			{"vidC", "Song C", "Artist C"},
		})

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(suggestions) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
		}
		if suggestions[0].VideoID != "vidC" {
			t.Errorf("expected vidC, got %s", suggestions[0].VideoID)
		}
		if suggestions[0].Provenance != models.ProvenanceCollaborative {
			t.Errorf("expected collaborative provenance, got %s", suggestions[0].Provenance)
		}
		if suggestions[0].Score != 1 {
			t.Errorf("expected score 1 (one neighbor), got %f", suggestions[0].Score)
		}
	})

	t.Run("single shared song is below the overlap threshold", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		target := seedLikes(t, users, songs, "u1", [][3]string{
			{"vidA", "Song A", "Artist A"},
		})
		seedLikes(t, users, songs, "u2", [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidC", "Song C", "Artist C"},
		})

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(suggestions) != 0 {
			t.Errorf("expected no suggestions below threshold, got %v", suggestions)
		}
	})

	t.Run("ranks by distinct neighbor count", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		shared := [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
		}

		target := seedLikes(t, users, songs, "u1", shared)
		// Both neighbors like vidX; only one likes vidY.
		seedLikes(t, users, songs, "u2", append(shared, [3]string{"vidX", "Song X", "Artist X"}))
		seedLikes(t, users, songs, "u3", append(shared,
			[3]string{"vidX", "Song X", "Artist X"},
			[3]string{"vidY", "Song Y", "Artist Y"},
		))

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(suggestions) != 2 {
			t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
		}
		if suggestions[0].VideoID != "vidX" || suggestions[0].Score != 2 {
			t.Errorf("expected vidX first with score 2, got %s score %f", suggestions[0].VideoID, suggestions[0].Score)
		}
		if suggestions[1].VideoID != "vidY" || suggestions[1].Score != 1 {
			t.Errorf("expected vidY second with score 1, got %s score %f", suggestions[1].VideoID, suggestions[1].Score)
		}
	})

	t.Run("never suggests the target's own likes", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		target := seedLikes(t, users, songs, "u1", [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
			{"vidC", "Song C", "Artist C"},
		})
		seedLikes(t, users, songs, "u2", [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
			{"vidC", "Song C", "Artist C"},
		})

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(suggestions) != 0 {
			t.Errorf("expected no suggestions when neighbor adds nothing new, got %v", suggestions)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		shared := [][3]string{
			{"vidA", "Song A", "Artist A"},
			{"vidB", "Song B", "Artist B"},
		}
		extra := append(shared,
			[3]string{"vid1", "Song 1", "Artist 1"},
			[3]string{"vid2", "Song 2", "Artist 2"},
			[3]string{"vid3", "Song 3", "Artist 3"},
		)

		target := seedLikes(t, users, songs, "u1", shared)
		seedLikes(t, users, songs, "u2", extra)

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(suggestions) != 2 {
			t.Errorf("expected 2 suggestions, got %d", len(suggestions))
		}
	})

	t.Run("no neighbors yields empty result without error", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		users := repositories.NewUserRepository(db)
		songs := repositories.NewSongRepository(db)

		target := seedLikes(t, users, songs, "loner", [][3]string{
			{"vidA", "Song A", "Artist A"},
		})

		rec := NewCollaborativeRecommender(users, songs, DefaultMinOverlap)
		suggestions, err := rec.Recommend(target.ID(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(suggestions) != 0 {
			t.Errorf("expected empty result, got %v", suggestions)
		}
	})
}
