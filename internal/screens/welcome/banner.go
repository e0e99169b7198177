package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

const bannerArt = `
 ████████╗██╗   ██╗████████╗ ██████╗ ██████╗
 ╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
    ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
    ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
    ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "T U T O R"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 48

// RenderBanner returns the block-letter banner, or a one-line fallback
// on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
