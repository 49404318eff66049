// Package services contains the external provider adapters.
//
// [Catalog] abstracts song resolution so the suggestion engine never depends
// on a concrete provider; [YouTubeCatalog] is the production implementation
// over the YouTube Data API v3 with rate limiting and a daily quota budget.
// [SpotifyEnricher] backfills genre and tag metadata from the Spotify Web API
// on a best-effort basis.
package services
