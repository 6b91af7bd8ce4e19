package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/session"
	"github.com/abhisek/vokabel/internal/ui/components"
	"github.com/abhisek/vokabel/internal/ui/layout"
	"github.com/abhisek/vokabel/internal/ui/theme"
)

// maxResultRows caps the per-word list so the summary fits the screen.
const maxResultRows = 10

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(layout.Center(width, theme.Title, "Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Words: %d        Answered: %d        Correct: %d",
		sum.TotalAsked, sum.TotalGraded, sum.TotalCorrect)
	b.WriteString(layout.Center(width, theme.Body, statsLine))
	b.WriteString("\n\n")

	if sum.TotalGraded > 0 {
		bar := components.NewProgressBar("Accuracy", sum.Accuracy, true, min(width-8, 60))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	if len(sum.Results) == 0 {
		return b.String()
	}

	b.WriteString(layout.Center(width, theme.Hint, "Words"))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	results := sum.Results
	if len(results) > maxResultRows {
		results = results[len(results)-maxResultRows:]
	}
	for _, r := range results {
		line := fmt.Sprintf("%-20s %s", r.Word, theme.CategoryStyle(r.Category).Render(string(r.Category)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if hidden := len(sum.Results) - len(results); hidden > 0 {
		b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("(%d earlier words not shown)", hidden)))
	}

	return b.String()
}
