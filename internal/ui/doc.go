// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the photo library:
//  1. [BrowseView] : Walk the album folder tree
//  2. [PhotoListView] : List the photos of a selected album
//  3. [PhotoInfoView] : Inspect one photo's metadata
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The library export is loaded asynchronously on startup and can be reloaded
// in place with the r key, rebuilding the folder tree from the fresh snapshot.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
