package shared

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// MinQueryLength is the shortest normalized query the catalog accepts.
	MinQueryLength = 2
	// MaxQueryLength caps normalized queries before they reach the catalog.
	MaxQueryLength = 200
)

// TrackQuery is a parsed seed-song title ready for catalog resolution.
//
// Raw titles arrive as free text, commonly "Title - Artist". Parsing splits the
// two parts and produces a normalized search string so the result cache keys
// stay stable across formatting differences.
type TrackQuery struct {
	Title  string
	Artist string
}

// Normalized returns the sanitized, lowercased search string for this query.
func (q TrackQuery) Normalized() string {
	s := q.Title
	if q.Artist != "" {
		s = q.Title + " " + q.Artist
	}
	return NormalizeQuery(s)
}

// ParseTrackQuery parses a raw song title into a [TrackQuery].
//
// Rules: the input is trimmed and sanitized to letters, digits, spaces,
// hyphens, and apostrophes; the first " - " separator splits title from
// artist; the normalized result must be between [MinQueryLength] and
// [MaxQueryLength] characters. Inputs that normalize to fewer than
// [MinQueryLength] characters fail with [ErrParseFailure].
func ParseTrackQuery(raw string) (TrackQuery, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TrackQuery{}, fmt.Errorf("%w: empty title", ErrParseFailure)
	}

	var query TrackQuery
	if title, artist, found := strings.Cut(trimmed, " - "); found {
		query.Title = strings.TrimSpace(title)
		query.Artist = strings.TrimSpace(artist)
	} else {
		query.Title = trimmed
	}

	if len(NormalizeQuery(query.Title)) < MinQueryLength {
		return TrackQuery{}, fmt.Errorf("%w: title %q shorter than %d characters", ErrParseFailure, raw, MinQueryLength)
	}

	return query, nil
}

// NormalizeQuery sanitizes a search string for catalog lookup and cache keying.
//
// Keeps letters, digits, spaces, hyphens, and apostrophes; lowercases;
// collapses runs of whitespace; truncates to [MaxQueryLength].
func NormalizeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '\'':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	normalized := strings.Join(strings.Fields(b.String()), " ")
	if len(normalized) > MaxQueryLength {
		normalized = strings.TrimSpace(normalized[:MaxQueryLength])
	}
	return normalized
}
