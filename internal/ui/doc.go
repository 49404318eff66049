// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing suggestions:
//  1. [LikedListView] : Browse liked songs and mark seeds
//  2. [ConfirmView] : Confirm the suggestion request
//  3. [FetchingView] : Wait for the engine to resolve and rank
//  4. [SuggestionsView] : Display ranked suggestions with provenance
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Engine calls run inside [tea.Cmd] closures so the event loop never blocks on the
// database or the catalog provider.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
