// Package ui implements an interactive terminal console using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog:
//  1. [MenuView] : Pick a catalog section (songs, albums, podcasts, ...)
//  2. [BrowseView] : Page through the section's items
//  3. [DetailView] : Inspect a single item
//
// A persistent player bar at the bottom shows the active channel, track
// position and volume. Songs and episodes start playback straight from the
// browser; music and podcast playback are mutually exclusive, so starting one
// silences the other.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern,
// receiving messages via the Msg union type. Player changes, toast
// notifications and live stream events each flow through their own channel
// and are re-armed as bubbletea commands after every delivery.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// transport keys (space, n, p, +/-) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
