package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/suggest"
)

// Suggester is the engine surface the API handlers consume.
type Suggester interface {
	Suggest(ctx context.Context, identifier string, titles []string, genre string) ([]models.Suggestion, error)
	GetLikedSongs(ctx context.Context, identifier string) ([]models.LikedSongRecord, error)
}

// API implements [Handler] for the suggestion service endpoints.
type API struct {
	engine Suggester
	db     *sql.DB
	logger *log.Logger
	mux    *http.ServeMux
}

// NewAPI creates the API handler over the given engine. The database handle
// is only used for health pings and may be nil in tests.
func NewAPI(engine Suggester, db *sql.DB, logger *log.Logger) *API {
	a := &API{engine: engine, db: db, logger: logger, mux: http.NewServeMux()}

	a.mux.HandleFunc("POST /suggestions", a.handleSuggestions)
	a.mux.HandleFunc("GET /users/{id}/liked-songs", a.handleLikedSongs)
	a.mux.HandleFunc("GET /health", a.handleHealth)

	return a
}

// Routes returns the patterns this handler serves, for [Router.Handler].
// Patterns are method-agnostic so middleware sees preflight requests; the
// internal mux enforces methods.
func (a *API) Routes() []string {
	return []string{
		"/suggestions",
		"/users/{id}/liked-songs",
		"/health",
	}
}

// ServeHTTP dispatches to the endpoint handlers.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// suggestionRequest is the POST /suggestions payload.
type suggestionRequest struct {
	UserID string   `json:"user_id"`
	Songs  []string `json:"songs"`
	Genre  string   `json:"genre,omitempty"`
}

// validate enforces the request bounds before any engine work happens.
func (req *suggestionRequest) validate() error {
	if req.UserID == "" || len(req.UserID) > models.MaxIdentifierLength {
		return fmt.Errorf("%w: user_id must be 1-%d characters", shared.ErrInvalidInput, models.MaxIdentifierLength)
	}
	if len(req.Songs) < 1 || len(req.Songs) > suggest.MaxSeedTitles {
		return fmt.Errorf("%w: songs must contain 1-%d titles", shared.ErrInvalidInput, suggest.MaxSeedTitles)
	}
	for _, title := range req.Songs {
		if len(title) > shared.MaxQueryLength {
			return fmt.Errorf("%w: song title exceeds %d characters", shared.ErrInvalidInput, shared.MaxQueryLength)
		}
	}
	if len(req.Genre) > services.MaxGenreLength {
		return fmt.Errorf("%w: genre exceeds %d characters", shared.ErrInvalidInput, services.MaxGenreLength)
	}
	return nil
}

func (a *API) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := a.engine.Suggest(r.Context(), req.UserID, req.Songs, req.Genre)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (a *API) handleLikedSongs(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")
	if identifier == "" || len(identifier) > models.MaxIdentifierLength {
		writeError(w, http.StatusBadRequest, "invalid user identifier")
		return
	}

	records, err := a.engine.GetLikedSongs(r.Context(), identifier)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"liked_songs": records})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := a.db.PingContext(r.Context()); err != nil {
			a.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeEngineError maps engine failures to sanitized HTTP responses. Internal
// detail is logged, never surfaced to the caller.
func (a *API) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unable to produce suggestions right now")
	default:
		a.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
