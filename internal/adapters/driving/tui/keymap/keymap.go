// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Cancel backs out of the current mode or clears the active filter.
	Cancel key.Binding

	// Search enters query mode.
	Search key.Binding

	// Up navigates up in the list.
	Up key.Binding

	// Down navigates down in the list.
	Down key.Binding

	// Select writes the selection to the clipboard.
	Select key.Binding

	// Pin toggles the pinned flag on the selection.
	Pin key.Binding

	// Delete removes the selection.
	Delete key.Binding

	// Clear requests removal of all unpinned clips.
	Clear key.Binding

	// Mark starts register assignment for the selection.
	Mark key.Binding

	// TemporaryRegisters toggles the temporary register listing.
	TemporaryRegisters key.Binding

	// PermanentRegisters toggles the permanent register listing.
	PermanentRegisters key.Binding

	// PinnedFilter toggles the pinned-only listing.
	PinnedFilter key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/F1", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "copy"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear unpinned"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark register"),
		),
		TemporaryRegisters: key.NewBinding(
			key.WithKeys("'"),
			key.WithHelp("'", "temp registers"),
		),
		PermanentRegisters: key.NewBinding(
			key.WithKeys("\""),
			key.WithHelp("\"", "perm registers"),
		),
		PinnedFilter: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "pinned only"),
		),
	}
}

// ShortHelp returns the hint-line keybindings for browse mode.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.Pin, k.Mark, k.Delete, k.Help, k.Quit}
}

// FullHelp returns all keybindings grouped for the help overlay.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Search},
		{k.Pin, k.Delete, k.Clear, k.Mark},
		{k.TemporaryRegisters, k.PermanentRegisters, k.PinnedFilter},
		{k.Cancel, k.Help, k.Quit},
	}
}
