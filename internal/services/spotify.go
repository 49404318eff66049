// Spotify metadata enricher
//
// Uses the client-credentials flow (no user login) to look up artist genres
// and backfill genre/tag metadata on resolved songs. Enrichment is strictly
// best-effort: callers log failures and move on.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/desertthunder/mixtape/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyArtist represents an artist in Spotify search responses.
type SpotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type spotifySearchResponse struct {
	Artists struct {
		Items []SpotifyArtist `json:"items"`
	} `json:"artists"`
}

// SpotifyEnricher looks up artist genre metadata from the Spotify Web API.
type SpotifyEnricher struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyEnricher creates an enricher authenticated via the
// client-credentials flow. Returns [shared.ErrMissingCredentials] when either
// credential is absent.
func NewSpotifyEnricher(ctx context.Context, conf shared.SpotifyConfig) (*SpotifyEnricher, error) {
	if conf.ClientID == "" || conf.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret required", shared.ErrMissingCredentials)
	}

	cc := clientcredentials.Config{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyEnricher{
		baseURL:    spotifyBaseURL,
		httpClient: cc.Client(ctx),
	}, nil
}

// ArtistGenres searches Spotify for the named artist and returns the genre
// labels attached to the best match.
//
// The first label is the primary genre, the remainder are tags. An artist
// with no match or no labels returns empty values without error.
func (s *SpotifyEnricher) ArtistGenres(ctx context.Context, artist string) (string, []string, error) {
	if artist == "" {
		return "", nil, nil
	}

	params := url.Values{}
	params.Set("q", artist)
	params.Set("type", "artist")
	params.Set("limit", "1")

	apiURL := s.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("%w: spotify search status %d", shared.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(payload.Artists.Items) == 0 || len(payload.Artists.Items[0].Genres) == 0 {
		return "", nil, nil
	}

	genres := payload.Artists.Items[0].Genres
	return genres[0], genres[1:], nil
}
