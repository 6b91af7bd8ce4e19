// Package review lists the vocabulary with per-word statistics and lets the
// learner edit or delete entries.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/screens/entryform"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/ui/layout"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

type loadedMsg struct {
	Entries []vocab.Entry
	Err     error
}

type deletedMsg struct {
	Entry vocab.Entry
	Err   error
}

// ReviewScreen displays the vocabulary one line per entry.
type ReviewScreen struct {
	repo       store.Repository
	entries    []vocab.Entry
	selected   int
	expanded   bool
	confirming bool
	loaded     bool
	errMsg     string
	status     string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.Resumer = (*ReviewScreen)(nil)
var _ screen.Capturer = (*ReviewScreen)(nil)

// New creates a new ReviewScreen.
func New(repo store.Repository) *ReviewScreen {
	return &ReviewScreen{repo: repo}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads the list after an edit.
func (s *ReviewScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *ReviewScreen) load() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		entries, err := repo.Load(context.Background())
		return loadedMsg{Entries: entries, Err: err}
	}
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

// CapturesEsc is true while a delete awaits confirmation.
func (s *ReviewScreen) CapturesEsc() bool {
	return s.confirming
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "E", Description: "Edit"},
		{Key: "D", Description: "Delete"},
		{Key: "A", Description: "Add"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.entries = msg.Entries
		s.selected = min(s.selected, max(len(s.entries)-1, 0))
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.status = "Could not delete: " + msg.Err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Deleted %q.", msg.Entry.Word)
		s.expanded = false
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *ReviewScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.deleteSelected()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "a":
		return s, push(entryform.NewAdd(s.repo))
	}

	if len(s.entries) == 0 {
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
			s.expanded = false
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
			s.expanded = false
		}
	case "enter":
		s.expanded = !s.expanded
	case "e":
		s.status = ""
		return s, push(entryform.NewEdit(s.repo, s.selected, s.entries[s.selected]))
	case "d":
		s.status = ""
		s.confirming = true
	}
	return s, nil
}

func push(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ReviewScreen) deleteSelected() tea.Cmd {
	repo, i := s.repo, s.selected
	return func() tea.Msg {
		e, err := repo.Delete(context.Background(), i)
		return deletedMsg{Entry: e, Err: err}
	}
}

func (s *ReviewScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading vocabulary...")
	}
	if len(s.entries) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No words yet. Press A to add one.")
	}

	var b strings.Builder
	b.WriteString("\n")

	first, last := window(len(s.entries), s.selected, max(height-12, 3))
	if first > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("↑ %d more", first)))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i)))
		b.WriteString("\n")
		if i == s.selected && s.expanded {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				renderDetails(s.entries[i], min(width-8, 70))))
			b.WriteString("\n")
		}
	}
	if last < len(s.entries) {
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("↓ %d more", len(s.entries)-last)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.confirming:
		b.WriteString(center.Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Delete %q? (y/n)", s.entries[s.selected].Word)))
	case s.status != "":
		b.WriteString(center.Foreground(theme.TextDim).Render(s.status))
	}
	return b.String()
}

// window returns the [first, last) range of n rows to show so that
// selected stays visible.
func window(n, selected, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	first := max(selected-rows/2, 0)
	first = min(first, n-rows)
	return first, first + rows
}

func (s *ReviewScreen) renderRow(i int) string {
	e := s.entries[i]
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	word := e.Word
	if g := e.GenderValue(); g != "" {
		word = g.Article() + " " + word
	}
	line := style.Render(fmt.Sprintf("%s%-24s %-10s %3d×  ", prefix, word, e.PartOfSpeech, e.TimesAsked))
	return line + theme.CategoryStyle(e.Category).Render(fmt.Sprintf("%-9s", e.Category))
}

// renderDetails shows the full entry with its statistics.
func renderDetails(e vocab.Entry, width int) string {
	stats := vocab.Stats(e)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	if g := e.GenderValue(); g != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.GenderColor(g)).Render("Gender: "+string(g)))
	}
	lines = append(lines,
		"Definition: "+e.Definition,
		"Example: "+e.Example,
	)
	if prev := e.PreviousExampleValue(); prev != "" {
		lines = append(lines, dim.Render("Previous: "+prev))
	}

	last := "never"
	if !stats.LastAsked.IsZero() {
		last = stats.LastAsked.Format(time.DateTime)
	}
	lines = append(lines,
		"",
		dim.Render(fmt.Sprintf("Asked %d times, last %s", stats.TimesAsked, last)),
		dim.Render(fmt.Sprintf("%d examples seen, refreshed at ask %d", stats.ExampleCount, stats.RefreshedAtAsk)),
	)

	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}
