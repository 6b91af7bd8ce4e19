package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗ ██████╗ ██╗  ██╗ █████╗ ██████╗ ███████╗██╗
 ██║   ██║██╔═══██╗██║ ██╔╝██╔══██╗██╔══██╗██╔════╝██║
 ██║   ██║██║   ██║█████╔╝ ███████║██████╔╝█████╗  ██║
 ╚██╗ ██╔╝██║   ██║██╔═██╗ ██╔══██║██╔══██╗██╔══╝  ██║
  ╚████╔╝ ╚██████╔╝██║  ██╗██║  ██║██████╔╝███████╗███████╗
   ╚═══╝   ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚══════╝`

const bannerCompact = "V O K A B E L"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 60

// RenderBanner returns the VOKABEL banner, or a one-line version when the
// terminal is narrower than bannerMinWidth.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
