// Package screen defines the contract between the router and the views
// it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/ui/layout"
)

// Screen is one full-page view of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen that should stay
	// on the stack, which is usually the receiver.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header. Empty hides the header title.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that reload their data when they
// become the active screen again after the one above them is popped.
type Refresher interface {
	Refresh() tea.Cmd
}

// StatusProvider lets a screen put a short status, such as the current
// difficulty, at the right of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}
