package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/grading"
	"github.com/abhisek/vokabel/internal/ui/layout"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.empty:
		return renderMessage(width, theme.Hint, "Your vocabulary is empty. Add some words first.\n\nPress any key to go back.")
	case s.errMsg != "":
		return renderMessage(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("Error: %s\n\nPress any key to go back.", s.errMsg))
	case s.confirming:
		return renderQuitConfirm(width)
	case !s.hasWord:
		return renderMessage(width, theme.Hint, "Choosing a word...")
	}
	return s.renderWord(width)
}

// renderWord renders the current word, its example and the answer area.
func (s *PracticeScreen) renderWord(width int) string {
	state := s.practice.State()
	e := s.entry

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  Word %d   %s %d correct   streak %d",
			state.TotalAsked,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.TotalCorrect,
			state.Streak))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), e.Word))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, string(e.PartOfSpeech)))
	b.WriteString("\n\n")

	exampleWidth := min(width-8, 70)
	b.WriteString(centerBlock(width, lipgloss.NewStyle().Width(exampleWidth).Foreground(theme.Text).
		Render("Example: "+e.Example)))
	b.WriteString("\n")
	if prev := e.PreviousExampleValue(); prev != "" {
		b.WriteString(centerBlock(width, lipgloss.NewStyle().Width(exampleWidth).Foreground(theme.TextDim).
			Render("Previous: "+prev)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if state.ShowAnswer {
		b.WriteString(centerBlock(width, renderAnswer(e, exampleWidth)))
		b.WriteString("\n\n")
	}

	if state.AnswerSubmitted {
		b.WriteString(s.renderVerdict(width, exampleWidth))
		return b.String()
	}

	var inputs []string
	if e.IsNoun() {
		inputs = append(inputs, s.gender.View())
	}
	inputs = append(inputs, s.definition.View())
	b.WriteString(centerBlock(width, strings.Join(inputs, "\n\n")))
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(layout.Center(width, theme.Hint, "Grading..."))
	case s.warning != "":
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Accent), s.warning))
	}
	return b.String()
}

// renderAnswer renders the stored answer for a revealed word.
func renderAnswer(e vocab.Entry, width int) string {
	var lines []string
	if g := e.GenderValue(); g != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.GenderColor(g)).Bold(true).
			Render("Gender: "+string(g)))
	}
	lines = append(lines, "Definition: "+e.Definition)
	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}

// renderVerdict renders the grader's feedback.
func (s *PracticeScreen) renderVerdict(width, textWidth int) string {
	state := s.practice.State()

	var b strings.Builder
	switch state.LastCategory {
	case vocab.CategoryCorrect:
		b.WriteString(layout.Center(width, theme.Correct, "Correct!"))
	default:
		b.WriteString(layout.Center(width, theme.Incorrect, "Not quite"))
	}
	b.WriteString("\n\n")

	verdictStyle := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text)
	if state.Verdict == grading.Fallback {
		verdictStyle = verdictStyle.Foreground(theme.Accent)
	}
	b.WriteString(centerBlock(width, verdictStyle.Render(state.Verdict)))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Hint, "Press Enter for the next word..."))
	return b.String()
}

// renderQuitConfirm renders the end-session confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End practice?"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, "Your progress is already saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, show summary"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderMessage(width int, style lipgloss.Style, msg string) string {
	return "\n\n\n" + layout.Center(width, style, msg)
}

func centerBlock(width int, block string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
