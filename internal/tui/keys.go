package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Sections
	Library  key.Binding
	Store    key.Binding
	Settings key.Binding

	// Catalog
	ToggleView      key.Binding
	FilterAll       key.Binding
	FilterInstalled key.Binding
	FilterNot       key.Binding
	Search          key.Binding
	Refresh         key.Binding
	AddGame         key.Binding
	Open            key.Binding
	ToggleInstall   key.Binding
	UpdateMetadata  key.Binding
	AddFromStore    key.Binding
	Jump            key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Library: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "library"),
		),
		Store: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "store"),
		),
		Settings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),

		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "grid/list"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all games"),
		),
		FilterInstalled: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "installed"),
		),
		FilterNot: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "not installed"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AddGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add game"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ToggleInstall: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "install/uninstall"),
		),
		UpdateMetadata: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "update metadata"),
		),
		AddFromStore: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "add to library"),
		),
		Jump: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "jump to game"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
