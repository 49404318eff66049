package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mixtape/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LikedListView ViewState = iota
	ConfirmView
	FetchingView
	SuggestionsView
)

// SuggestionEngine is the engine surface the TUI consumes.
type SuggestionEngine interface {
	Suggest(ctx context.Context, identifier string, titles []string, genre string) ([]models.Suggestion, error)
	GetLikedSongs(ctx context.Context, identifier string) ([]models.LikedSongRecord, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	engine         SuggestionEngine
	identifier     string
	genre          string
	width          int
	height         int
	likedList      list.Model
	liked          []models.LikedSongRecord
	suggestionList list.Model
	suggestions    []models.Suggestion
	err            error
	help           help.Model
	keys           keyMap
}

type likedFetchedMsg struct {
	records []models.LikedSongRecord
	err     error
}

type suggestionsMsg struct {
	suggestions []models.Suggestion
	err         error
}

// NewModel creates a new TUI model for the given user identifier. The genre
// steers the popularity fallback when the user has no overlap with neighbors.
func NewModel(ctx context.Context, engine SuggestionEngine, identifier, genre string) *Model {
	return &Model{
		ctx:        ctx,
		view:       LikedListView,
		engine:     engine,
		identifier: identifier,
		genre:      genre,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by fetching the user's liked songs.
func (m *Model) Init() tea.Cmd {
	return m.fetchLiked()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.likedList.Width() == 0 {
			m.likedList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.suggestionList.Width() == 0 {
			m.suggestionList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LikedListView:
			return m.handleLikedListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case FetchingView:
			return m.handleFetchingKeys(msg)
		case SuggestionsView:
			return m.handleSuggestionsKeys(msg)
		}

	case likedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.liked = msg.records
		items := make([]list.Item, len(msg.records))
		for i, rec := range msg.records {
			items[i] = likedItem{record: rec}
		}
		m.likedList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.likedList.Title = fmt.Sprintf("Liked Songs — %s", m.identifier)
		m.likedList.SetSize(m.width-4, m.height-8)
		return m, nil

	case suggestionsMsg:
		m.err = msg.err
		m.suggestions = msg.suggestions
		items := make([]list.Item, len(msg.suggestions))
		for i, s := range msg.suggestions {
			items[i] = suggestionItem{suggestion: s, rank: i + 1}
		}
		m.suggestionList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.suggestionList.Title = "Suggestions"
		m.suggestionList.SetSize(m.width-4, m.height-8)
		m.view = SuggestionsView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != SuggestionsView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LikedListView:
		return m.renderLikedList()
	case ConfirmView:
		return m.renderConfirm()
	case FetchingView:
		return m.renderFetching()
	case SuggestionsView:
		return m.renderSuggestions()
	default:
		return ""
	}
}

func (m *Model) handleLikedListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		idx := m.likedList.Index()
		if selected, ok := m.likedList.SelectedItem().(likedItem); ok {
			selected.marked = !selected.marked
			return m, m.likedList.SetItem(idx, selected)
		}
	case "enter":
		if len(m.seeds()) == 0 {
			// Nothing marked yet, treat the highlighted song as the seed.
			idx := m.likedList.Index()
			if selected, ok := m.likedList.SelectedItem().(likedItem); ok {
				selected.marked = true
				m.view = ConfirmView
				return m, m.likedList.SetItem(idx, selected)
			}
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.likedList, cmd = m.likedList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = LikedListView
		return m, nil
	case "y":
		m.view = FetchingView
		return m, m.fetchSuggestions()
	}
	return m, nil
}

func (m *Model) handleFetchingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleSuggestionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r", "esc":
		m.view = LikedListView
		m.suggestions = nil
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.suggestionList, cmd = m.suggestionList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LikedListView:
		m.likedList, cmd = m.likedList.Update(msg)
	case SuggestionsView:
		m.suggestionList, cmd = m.suggestionList.Update(msg)
	}
	return m, cmd
}

// seeds collects the marked liked songs as "Title - Artist" queries.
func (m *Model) seeds() []string {
	var queries []string
	for _, item := range m.likedList.Items() {
		if li, ok := item.(likedItem); ok && li.marked {
			queries = append(queries, li.seedQuery())
		}
	}
	return queries
}

func (m *Model) fetchLiked() tea.Cmd {
	return func() tea.Msg {
		records, err := m.engine.GetLikedSongs(m.ctx, m.identifier)
		return likedFetchedMsg{records: records, err: err}
	}
}

func (m *Model) fetchSuggestions() tea.Cmd {
	seeds := m.seeds()
	return func() tea.Msg {
		suggestions, err := m.engine.Suggest(m.ctx, m.identifier, seeds, m.genre)
		return suggestionsMsg{suggestions: suggestions, err: err}
	}
}

func (m *Model) renderLikedList() string {
	if len(m.liked) == 0 {
		title := styles.title.Render(fmt.Sprintf("No liked songs for %s yet", m.identifier))
		hint := "Seed some likes with the suggest command first.\n"
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
		return fmt.Sprintf("%s\n%s\n%s", title, hint, helpView)
	}

	helpKeys := []key.Binding{m.keys.mark, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.likedList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	seeds := m.seeds()
	title := styles.title.Render(fmt.Sprintf("Request suggestions from %d seed songs?", len(seeds)))

	var info string
	for _, seed := range seeds {
		info += fmt.Sprintf("  • %s\n", seed)
	}
	if m.genre != "" {
		info += fmt.Sprintf("\nFallback genre: %s\n", m.genre)
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderFetching() string {
	title := styles.title.Render("Fetching Suggestions")
	return fmt.Sprintf("%s\n\nResolving seeds and ranking suggestions...\n", title)
}

func (m *Model) renderSuggestions() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Suggestion request failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if len(m.suggestions) == 0 {
		title := styles.warn.Render("No suggestions available")
		hint := "Try marking different seeds or a broader genre.\n"
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s\n%s", title, hint, helpView)
	}

	summary := styles.ok.Render(fmt.Sprintf("✓ %d suggestions", len(m.suggestions)))
	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", summary, m.suggestionList.View(), helpView)
}
