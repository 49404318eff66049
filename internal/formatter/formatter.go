// package formatter provides functions to export suggestions and liked songs to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// Supported output formats for the CLI rendering helpers.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// SuggestionsToCSV converts suggestions to CSV with columns: Rank, Title, Artist, VideoID, Score, Provenance
func SuggestionsToCSV(suggestions []models.Suggestion) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Title", "Artist", "VideoID", "Score", "Provenance"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, s := range suggestions {
		record := []string{
			strconv.Itoa(i + 1),
			s.Title,
			s.Artist,
			s.VideoID,
			strconv.FormatFloat(s.Score, 'g', -1, 64),
			string(s.Provenance),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SuggestionsToMarkdown converts suggestions to a Markdown listing grouped under a heading.
func SuggestionsToMarkdown(suggestions []models.Suggestion) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Suggestions\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(suggestions)))

	for i, s := range suggestions {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s, score %s](https://youtube.com/watch?v=%s)\n",
			i+1, s.Artist, s.Title, s.Provenance, strconv.FormatFloat(s.Score, 'g', -1, 64), s.VideoID))
	}

	return buf.Bytes(), nil
}

// SuggestionsToText converts suggestions to plain text, one per line.
func SuggestionsToText(suggestions []models.Suggestion) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Suggestions: %d\n\n", len(suggestions)))
	for i, s := range suggestions {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, s.Artist, s.Title, s.Provenance))
	}

	return buf.Bytes(), nil
}

// LikedSongsToCSV converts liked-song records to CSV with columns: Title, Artist, VideoID, LikedAt
func LikedSongsToCSV(records []models.LikedSongRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "VideoID", "LikedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		likedAt := ""
		if !rec.LikedAt.IsZero() {
			likedAt = rec.LikedAt.Format("2006-01-02 15:04:05")
		}
		if err := writer.Write([]string{rec.Title, rec.Artist, rec.VideoID, likedAt}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// LikedSongsToText converts liked-song records to plain text, one per line.
func LikedSongsToText(records []models.LikedSongRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Liked songs: %d\n\n", len(records)))
	for i, rec := range records {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, rec.Artist, rec.Title))
	}

	return buf.Bytes(), nil
}

// ToJSON generates an indented JSON representation of any export payload.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailure, err)
	}
	return data, nil
}

// RenderSuggestions renders suggestions in the named format, defaulting to JSON.
func RenderSuggestions(suggestions []models.Suggestion, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return SuggestionsToCSV(suggestions)
	case FormatMarkdown:
		return SuggestionsToMarkdown(suggestions)
	case FormatText:
		return SuggestionsToText(suggestions)
	case FormatJSON, "":
		return ToJSON(suggestions)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// RenderLikedSongs renders liked-song records in the named format, defaulting to JSON.
func RenderLikedSongs(records []models.LikedSongRecord, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return LikedSongsToCSV(records)
	case FormatText:
		return LikedSongsToText(records)
	case FormatJSON, "":
		return ToJSON(records)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}
