// YouTube Data API v3 [Catalog] implementation
//
// Resolves track queries with the search endpoint restricted to the Music
// video category. Every search costs 100 quota units against the daily
// budget; the adapter stops issuing requests once the budget is spent.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/mixtape/internal/shared"
)

const (
	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// musicCategoryID is YouTube's video category for music content.
	musicCategoryID = "10"

	// searchQuotaCost is what the Data API charges for one search call.
	searchQuotaCost = 100

	// MaxGenreLength caps the genre string used to build trending queries.
	MaxGenreLength = 128
)

// youtubeSearchResponse mirrors the subset of the search endpoint's payload
// the catalog reads.
type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// YouTubeCatalog implements [Catalog] against the YouTube Data API v3.
type YouTubeCatalog struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	quota      *quotaTracker
}

// NewYouTubeCatalog creates a catalog adapter from the given configuration.
// An empty BaseURL falls back to the public Data API endpoint.
func NewYouTubeCatalog(conf shared.CatalogConfig) *YouTubeCatalog {
	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}

	limit := rate.Limit(conf.RateLimit)
	if conf.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &YouTubeCatalog{
		baseURL:    baseURL,
		apiKey:     conf.APIKey,
		timeout:    conf.Timeout(),
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(limit, 1),
		quota:      newQuotaTracker(conf.DailyQuota),
	}
}

// Name returns the provider name.
func (y *YouTubeCatalog) Name() string {
	return "YouTube"
}

// QuotaExhausted reports whether the daily request budget has been spent.
func (y *YouTubeCatalog) QuotaExhausted() bool {
	return y.quota.Exhausted()
}

// Search resolves a track query to the single best match in the Music category.
//
// Failure modes map to the shared sentinels: no results or an under-length
// query is [shared.ErrSongNotFound], HTTP 403/429 is
// [shared.ErrProviderRateLimited], timeouts and 5xx responses are
// [shared.ErrProviderUnavailable], and a spent budget is
// [shared.ErrQuotaExhausted]. Searches are never retried.
func (y *YouTubeCatalog) Search(ctx context.Context, query shared.TrackQuery) (*SongResult, error) {
	normalized := query.Normalized()
	if len(normalized) < shared.MinQueryLength {
		return nil, fmt.Errorf("%w: query %q too short", shared.ErrSongNotFound, normalized)
	}

	results, err := y.search(ctx, normalized, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", shared.ErrSongNotFound, normalized)
	}

	return &results[0], nil
}

// Trending returns up to n popular songs for a genre by searching for the
// genre's top-songs query. An empty genre searches for global hits.
func (y *YouTubeCatalog) Trending(ctx context.Context, genre string, n int) ([]SongResult, error) {
	if n < 1 {
		n = 1
	}

	query := "Top Global Hits"
	if genre != "" {
		if len(genre) > MaxGenreLength {
			genre = genre[:MaxGenreLength]
		}
		query = fmt.Sprintf("Top %s songs", genre)
	}

	return y.search(ctx, shared.NormalizeQuery(query), n)
}

func (y *YouTubeCatalog) search(ctx context.Context, query string, maxResults int) ([]SongResult, error) {
	if y.quota.Exhausted() {
		return nil, fmt.Errorf("%w: daily search budget spent", shared.ErrQuotaExhausted)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("q", query)
	params.Set("key", y.apiKey)

	apiURL := y.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	y.quota.Spend(searchQuotaCost)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", shared.ErrProviderRateLimited, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", shared.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", shared.ErrSongNotFound, resp.StatusCode)
	}

	var payload youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrProviderUnavailable, err)
	}

	results := make([]SongResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, SongResult{
			VideoID: item.ID.VideoID,
			Title:   item.Snippet.Title,
			Artist:  item.Snippet.ChannelTitle,
		})
	}

	return results, nil
}
