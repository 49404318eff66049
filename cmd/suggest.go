package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mixtape/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Suggest resolves seed songs and prints ranked suggestions for a user.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	identifier := cmd.String("user")
	seeds := cmd.StringSlice("song")
	genre := cmd.String("genre")
	format := cmd.String("format")

	res, err := r.buildResources(ctx, config)
	if err != nil {
		return err
	}
	defer res.close()

	r.logger.Info("requesting suggestions", "user", identifier, "seeds", len(seeds))

	suggestions, err := res.engine.Suggest(ctx, identifier, seeds, genre)
	if err != nil {
		return fmt.Errorf("suggestion request failed: %w", err)
	}

	rendered, err := formatter.RenderSuggestions(suggestions, format)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", rendered)
}

// Liked prints a user's liked songs.
func (r *Runner) Liked(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	identifier := cmd.String("user")
	format := cmd.String("format")

	res, err := r.buildResources(ctx, config)
	if err != nil {
		return err
	}
	defer res.close()

	records, err := res.engine.GetLikedSongs(ctx, identifier)
	if err != nil {
		return fmt.Errorf("failed to fetch liked songs: %w", err)
	}

	rendered, err := formatter.RenderLikedSongs(records, format)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", rendered)
}
