// Package welcome shows the splash screen before the home menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond

	// flipEvery is how many ticks each card stays up.
	flipEvery = 6
)

const tagline = "Ein Wort nach dem anderen."

// cards cycle on the splash flashcard, one per gender.
var cards = []struct {
	word   string
	gender vocab.Gender
}{
	{"Hund", vocab.Masculine},
	{"Katze", vocab.Feminine},
	{"Haus", vocab.Neutral},
}

type tickMsg time.Time

// WelcomeScreen shows a short splash and hands over to the home screen on
// the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's screen.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// renderCard draws the flashcard for the current tick.
func (w *WelcomeScreen) renderCard() string {
	c := cards[(w.tickCount/flipEvery)%len(cards)]
	word := lipgloss.NewStyle().Foreground(theme.GenderColor(c.gender)).Bold(true).
		Render(c.gender.Article() + " " + c.word)
	return theme.Card.
		Width(24).
		Align(lipgloss.Center).
		BorderForeground(theme.GenderColor(c.gender)).
		Render(word)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderCard()}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
