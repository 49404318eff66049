package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/mixtape/internal/shared"
)

func TestSpotifyEnricher(t *testing.T) {
	ctx := context.Background()

	t.Run("NewSpotifyEnricher", func(t *testing.T) {
		t.Run("requires both credentials", func(t *testing.T) {
			_, err := NewSpotifyEnricher(ctx, shared.SpotifyConfig{ClientID: "id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("creates enricher with credentials", func(t *testing.T) {
			e, err := NewSpotifyEnricher(ctx, shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if e.baseURL != spotifyBaseURL {
				t.Errorf("expected baseURL %s, got %s", spotifyBaseURL, e.baseURL)
			}
		})
	})

	t.Run("ArtistGenres", func(t *testing.T) {
		t.Run("splits labels into genre and tags", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected path /search, got %s", r.URL.Path)
				}

				q := r.URL.Query()
				if q.Get("type") != "artist" {
					t.Errorf("expected artist search, got %s", q.Get("type"))
				}
				if q.Get("q") != "Queen" {
					t.Errorf("expected artist name query, got %q", q.Get("q"))
				}

				json.NewEncoder(w).Encode(map[string]any{
					"artists": map[string]any{
						"items": []map[string]any{
							{"id": "a1", "name": "Queen", "genres": []string{"rock", "glam rock", "classic rock"}},
						},
					},
				})
			}))
			defer server.Close()

			e := &SpotifyEnricher{baseURL: server.URL, httpClient: server.Client()}

			genre, tags, err := e.ArtistGenres(ctx, "Queen")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if genre != "rock" {
				t.Errorf("expected primary genre rock, got %s", genre)
			}
			if len(tags) != 2 || tags[0] != "glam rock" {
				t.Errorf("unexpected tags %v", tags)
			}
		})

		t.Run("no match yields empty values without error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"artists": map[string]any{"items": []map[string]any{}},
				})
			}))
			defer server.Close()

			e := &SpotifyEnricher{baseURL: server.URL, httpClient: server.Client()}

			genre, tags, err := e.ArtistGenres(ctx, "Unknown Artist")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if genre != "" || tags != nil {
				t.Errorf("expected empty values, got %q %v", genre, tags)
			}
		})

		t.Run("empty artist skips the lookup", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("expected no HTTP request for empty artist")
			}))
			defer server.Close()

			e := &SpotifyEnricher{baseURL: server.URL, httpClient: server.Client()}

			if _, _, err := e.ArtistGenres(ctx, ""); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("non-2xx maps to provider unavailable", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			e := &SpotifyEnricher{baseURL: server.URL, httpClient: server.Client()}

			_, _, err := e.ArtistGenres(ctx, "Queen")
			if !errors.Is(err, shared.ErrProviderUnavailable) {
				t.Errorf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	})
}
