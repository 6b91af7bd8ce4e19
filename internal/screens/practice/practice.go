// Package practice implements the practice screen: one word at a time,
// free-text answers graded by the language model.
package practice

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/screens/summary"
	sess "github.com/abhisek/vokabel/internal/session"
	"github.com/abhisek/vokabel/internal/ui/components"
	"github.com/abhisek/vokabel/internal/ui/layout"
	"github.com/abhisek/vokabel/internal/vocab"
)

// PracticeScreen implements screen.Screen for a practice session.
type PracticeScreen struct {
	practice *sess.Practice

	entry      vocab.Entry
	hasWord    bool
	busy       bool
	confirming bool
	empty      bool
	errMsg     string
	warning    string

	gender      components.Choice
	definition  components.TextInput
	genderFocus bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Capturer = (*PracticeScreen)(nil)

// New creates a practice screen driving p.
func New(p *sess.Practice) *PracticeScreen {
	genderOptions := make([]string, len(vocab.Genders))
	for i, g := range vocab.Genders {
		genderOptions[i] = string(g)
	}
	return &PracticeScreen{
		practice:   p,
		gender:     components.NewChoice("Gender", genderOptions),
		definition: components.NewTextInput("Definition", "What does it mean?", 200),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.nextWord()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

// CapturesEsc reports true so that Esc asks before ending the session.
func (s *PracticeScreen) CapturesEsc() bool {
	return !s.empty && s.errMsg == ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.busy:
		return nil
	case s.practice.State().AnswerSubmitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next word"},
			{Key: "Esc", Description: "End"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Show answer"},
		{Key: "Ctrl+N", Description: "Skip"},
	}
	if s.entry.IsNoun() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Gender/Definition"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordReadyMsg:
		return s.handleWordReady(msg)
	case gradedMsg:
		return s.handleGraded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.hasWord && !s.busy && !s.genderFocus {
		var cmd tea.Cmd
		s.definition, cmd = s.definition.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleWordReady(msg wordReadyMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		if errors.Is(msg.Err, sess.ErrEmptyVocabulary) {
			s.empty = true
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.entry = s.practice.Begin(msg.Pick)
	s.hasWord = true
	s.warning = ""
	s.gender.Selected = 0
	s.definition = components.NewTextInput("Definition", "What does it mean?", 200)
	return s, s.focusDefinition()
}

func (s *PracticeScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.warning = msg.Err.Error()
		return s, nil
	}
	s.practice.Apply(msg.Outcome)
	s.entry = msg.Outcome.Entry
	s.definition.Blur()
	s.gender.Blur()
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.empty || s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.end()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.busy {
			return s, nil
		}
		if s.practice.State().TotalGraded == 0 && !s.hasWord {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirming = true
		return s, nil
	}

	if s.busy || !s.hasWord {
		return s, nil
	}

	if s.practice.State().AnswerSubmitted {
		switch key {
		case "enter", "ctrl+n", "n":
			return s, s.nextWord()
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s, s.submit()
	case "ctrl+r":
		if err := s.practice.Reveal(); err != nil {
			s.warning = err.Error()
		}
		return s, nil
	case "ctrl+n":
		return s, s.nextWord()
	case "tab", "shift+tab":
		if s.entry.IsNoun() {
			if s.genderFocus {
				return s, s.focusDefinition()
			}
			s.focusGender()
		}
		return s, nil
	}

	var cmd tea.Cmd
	if s.genderFocus {
		s.gender, cmd = s.gender.Update(msg)
	} else {
		s.definition, cmd = s.definition.Update(msg)
	}
	return s, cmd
}

func (s *PracticeScreen) focusDefinition() tea.Cmd {
	s.genderFocus = false
	s.gender.Blur()
	return s.definition.Focus()
}

func (s *PracticeScreen) focusGender() {
	s.genderFocus = true
	s.definition.Blur()
	s.gender.Focus()
}

// nextWord fetches the next word asynchronously. The session state is
// only changed here and in handleWordReady.
func (s *PracticeScreen) nextWord() tea.Cmd {
	s.busy = true
	s.hasWord = false
	s.practice.Advance()
	p := s.practice
	streak := p.State().Streak
	return func() tea.Msg {
		pk, err := p.Fetch(context.Background(), streak)
		return wordReadyMsg{Pick: pk, Err: err}
	}
}

// submit grades the current answer asynchronously.
func (s *PracticeScreen) submit() tea.Cmd {
	answer := sess.Answer{Definition: s.definition.Value()}
	if s.entry.IsNoun() {
		answer.Gender = s.gender.Value()
	}
	if strings.TrimSpace(answer.Definition) == "" {
		s.warning = "Please enter an answer."
		return nil
	}

	sub, err := s.practice.Prepare(answer)
	if err != nil {
		s.warning = err.Error()
		return nil
	}

	s.busy = true
	s.warning = ""
	p := s.practice
	return func() tea.Msg {
		out, err := p.Grade(context.Background(), sub)
		return gradedMsg{Outcome: out, Err: err}
	}
}

// end replaces the practice screen with the session summary.
func (s *PracticeScreen) end() tea.Cmd {
	sum := s.practice.Summary()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}
