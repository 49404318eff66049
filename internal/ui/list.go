package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mixtape/internal/models"
)

var (
	_ list.Item = likedItem{}
	_ list.Item = suggestionItem{}
)

// likedItem wraps [models.LikedSongRecord] to implement [list.Item].
// The marked flag marks the record as a seed for the next suggestion request.
type likedItem struct {
	record models.LikedSongRecord
	marked bool
}

func (i likedItem) FilterValue() string { return i.record.Title }
func (i likedItem) Title() string {
	if i.marked {
		return fmt.Sprintf("● %s", i.record.Title)
	}
	return i.record.Title
}
func (i likedItem) Description() string {
	desc := i.record.Artist
	if !i.record.LikedAt.IsZero() {
		desc = fmt.Sprintf("%s • liked %s", desc, i.record.LikedAt.Format("2006-01-02"))
	}
	return desc
}

// seedQuery returns the record as a "Title - Artist" seed string.
func (i likedItem) seedQuery() string {
	return fmt.Sprintf("%s - %s", i.record.Title, i.record.Artist)
}

// suggestionItem wraps [models.Suggestion] to implement [list.Item].
type suggestionItem struct {
	suggestion models.Suggestion
	rank       int
}

func (i suggestionItem) FilterValue() string { return i.suggestion.Title }
func (i suggestionItem) Title() string {
	return fmt.Sprintf("%d. %s - %s", i.rank, i.suggestion.Artist, i.suggestion.Title)
}
func (i suggestionItem) Description() string {
	return fmt.Sprintf("%s • score %s • youtube.com/watch?v=%s",
		i.suggestion.Provenance,
		strconv.FormatFloat(i.suggestion.Score, 'g', 3, 64),
		i.suggestion.VideoID)
}
