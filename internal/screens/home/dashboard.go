package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

const titleCompact = "V · O · K · A · B · E · L"

// counts tallies the vocabulary by category.
type counts struct {
	total     int
	fresh     int
	correct   int
	incorrect int
}

func countEntries(entries []vocab.Entry) counts {
	c := counts{total: len(entries)}
	for _, e := range entries {
		switch e.Category {
		case vocab.CategoryCorrect:
			c.correct++
		case vocab.CategoryIncorrect:
			c.incorrect++
		default:
			c.fresh++
		}
	}
	return c
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCompact))
}

// renderStatsBar renders the vocabulary counts in a bordered box.
func renderStatsBar(c counts, cw int, compact bool) string {
	total := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if c.total == 0 {
		stats = dim.Render("NO WORDS YET")
	} else if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			total.Render(fmt.Sprintf("Σ%d", c.total)),
			theme.Fresh.Render(fmt.Sprintf("●%d", c.fresh)),
			theme.Correct.Render(fmt.Sprintf("✓%d", c.correct)),
			theme.Incorrect.Render(fmt.Sprintf("✗%d", c.incorrect)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			total.Render(fmt.Sprintf("%d WORDS", c.total)),
			theme.Fresh.Render(fmt.Sprintf("● %d NEW", c.fresh)),
			theme.Correct.Render(fmt.Sprintf("✓ %d KNOWN", c.correct)),
			theme.Incorrect.Render(fmt.Sprintf("✗ %d TO REVIEW", c.incorrect)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLLMBanner warns that answers fall back to self-checking.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No LLM API key set; answers cannot be graded (see vokabel --help)")
}

// renderFrame wraps content in a double border centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
