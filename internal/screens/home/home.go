// Package home implements the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/screens/entryform"
	"github.com/abhisek/vokabel/internal/screens/practice"
	"github.com/abhisek/vokabel/internal/screens/review"
	"github.com/abhisek/vokabel/internal/screens/welcome"
	"github.com/abhisek/vokabel/internal/session"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/ui/components"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Deps are the collaborators the home menu hands to the screens it opens.
type Deps struct {
	Repo store.Repository

	// NewPractice starts a fresh practice session.
	NewPractice func() *session.Practice

	// LLMReady is false when no provider is configured.
	LLMReady bool
}

type statsLoadedMsg struct {
	Entries []vocab.Entry
	Err     error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	counts counts
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "PRACTICE",
			Action: push(func() screen.Screen {
				return practice.New(deps.NewPractice())
			}),
			Disabled: deps.NewPractice == nil,
		},
		{Label: "ADD WORD", Action: push(func() screen.Screen { return entryform.NewAdd(deps.Repo) })},
		{Label: "REVIEW", Action: push(func() screen.Screen { return review.New(deps.Repo) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the counts after practice or editing.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := repo.Load(context.Background())
		return statsLoadedMsg{Entries: entries, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.counts = countEntries(msg.Entries)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height+8 < 30 || width < 80
	cw := contentWidth(width)

	var sections []string
	if compact {
		sections = append(sections, renderTitle(cw))
	} else {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(welcome.RenderBanner(cw)))
	}

	sections = append(sections, renderStatsBar(h.counts, cw, compact))
	if !h.deps.LLMReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).
			Align(lipgloss.Center).Render("Error: "+h.errMsg))
	}
	sections = append(sections, h.menu.View(cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
