package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // No history, or middling accuracy
	MascotCelebrating                      // Strong overall accuracy
	MascotAlert                            // Weak overall accuracy
)

const mascotIdle = `┌─────┐
│ o o │
│  ‿  │
│ ABC │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ABC │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ o o │ ?
│  ~  │
│ ABC │
└─────┘`

// mascotFor picks the variant from overall accuracy in percent.
func mascotFor(total int, accuracy float64) MascotVariant {
	switch {
	case total == 0:
		return MascotIdle
	case accuracy >= 80:
		return MascotCelebrating
	case accuracy < 50:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Highlight
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
