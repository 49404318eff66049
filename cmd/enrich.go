package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mixtape/internal/repositories"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Enrich backfills genre and tag metadata for stored songs using the Spotify
// artist search. Songs that already carry a genre are skipped, and per-song
// lookup failures are logged without aborting the pass.
func (r *Runner) Enrich(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	limit := int(cmd.Int("limit"))

	enricher, err := services.NewSpotifyEnricher(ctx, config.Spotify)
	if err != nil {
		return fmt.Errorf("failed to create enricher: %w", err)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	songs := repositories.NewSongRepository(db)

	candidates, err := songs.CandidateSongs("", limit)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	enriched := 0
	for _, song := range candidates {
		if song.Genre() != "" {
			continue
		}

		genre, tags, err := enricher.ArtistGenres(ctx, song.Artist())
		if err != nil {
			r.logger.Warn("artist lookup failed", "artist", song.Artist(), "error", err)
			continue
		}
		if genre == "" {
			continue
		}

		if err := songs.UpdateEnrichment(song.VideoID(), genre, tags); err != nil {
			r.logger.Warn("failed to store enrichment", "video_id", song.VideoID(), "error", err)
			continue
		}

		r.logger.Info("enriched song", "title", song.Title(), "genre", genre)
		enriched++
	}

	r.writePlainln("✓ Enriched %d of %d songs", enriched, len(candidates))
	return nil
}
