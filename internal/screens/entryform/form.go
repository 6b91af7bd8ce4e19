// Package entryform implements the add and edit word screens.
package entryform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vokabel/internal/router"
	"github.com/abhisek/vokabel/internal/screen"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/ui/components"
	"github.com/abhisek/vokabel/internal/ui/layout"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

type field int

const (
	fieldWord field = iota
	fieldPartOfSpeech
	fieldGender
	fieldDefinition
	fieldExample
	fieldSave
	fieldCount
)

// savedMsg reports the outcome of persisting the form.
type savedMsg struct {
	Entry vocab.Entry
	Err   error
}

// FormScreen adds a new entry or edits an existing one.
type FormScreen struct {
	repo     store.Repository
	editing  bool
	index    int
	original vocab.Entry

	word       components.TextInput
	pos        components.Choice
	gender     components.Choice
	definition components.TextInput
	example    components.TextInput
	save       components.Button

	focus  field
	saving bool
	status string
	errMsg string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// NewAdd creates the screen for adding a word.
func NewAdd(repo store.Repository) *FormScreen {
	return newForm(repo)
}

// NewEdit creates the screen for editing the entry at index.
func NewEdit(repo store.Repository, index int, e vocab.Entry) *FormScreen {
	f := newForm(repo)
	f.editing = true
	f.index = index
	f.original = e.Clone()
	f.fill(vocab.FieldsOf(e))
	return f
}

func newForm(repo store.Repository) *FormScreen {
	posOptions := make([]string, len(vocab.PartsOfSpeech))
	for i, p := range vocab.PartsOfSpeech {
		posOptions[i] = string(p)
	}
	genderOptions := make([]string, len(vocab.Genders))
	for i, g := range vocab.Genders {
		genderOptions[i] = string(g)
	}

	f := &FormScreen{
		repo:       repo,
		word:       components.NewTextInput("Word", "e.g. Hund", 64),
		pos:        components.NewChoice("Type", posOptions),
		gender:     components.NewChoice("Gender", genderOptions),
		definition: components.NewTextInput("Definition", "e.g. dog", 200),
		example:    components.NewTextInput("Example", "e.g. Der Hund bellt.", 300),
	}
	f.save = components.NewButton("Save", f.submit)
	return f
}

func (f *FormScreen) fill(fields vocab.Fields) {
	f.word.SetValue(fields.Word)
	f.pos.Select(string(fields.PartOfSpeech))
	if g, err := vocab.ParseGender(fields.Gender); err == nil {
		f.gender.Select(string(g))
	}
	f.definition.SetValue(fields.Definition)
	f.example.SetValue(fields.Example)
}

func (f *FormScreen) Init() tea.Cmd {
	return f.setFocus(fieldWord)
}

func (f *FormScreen) Title() string {
	if f.editing {
		return "Edit Word"
	}
	return "Add Word"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change choice"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// Fields returns the current form contents.
func (f *FormScreen) Fields() vocab.Fields {
	fields := vocab.Fields{
		Word:         f.word.Value(),
		PartOfSpeech: vocab.PartOfSpeech(f.pos.Value()),
		Definition:   f.definition.Value(),
		Example:      f.example.Value(),
	}
	if fields.PartOfSpeech == vocab.Noun {
		fields.Gender = f.gender.Value()
	}
	return fields
}

func (f *FormScreen) isNoun() bool {
	return f.pos.Value() == string(vocab.Noun)
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		return f.handleSaved(msg)
	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return f.forward(msg)
}

func (f *FormScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if f.saving {
		return f, nil
	}

	switch msg.String() {
	case "tab", "down":
		return f, f.setFocus(f.step(1))
	case "shift+tab", "up":
		return f, f.setFocus(f.step(-1))
	case "ctrl+s":
		return f, f.submit()
	case "enter":
		if f.focus == fieldSave {
			var cmd tea.Cmd
			f.save, cmd = f.save.Update(msg)
			return f, cmd
		}
		return f, f.setFocus(f.step(1))
	}
	return f.forward(msg)
}

// forward passes msg to the focused control.
func (f *FormScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldWord:
		f.word, cmd = f.word.Update(msg)
	case fieldPartOfSpeech:
		f.pos, cmd = f.pos.Update(msg)
	case fieldGender:
		f.gender, cmd = f.gender.Update(msg)
	case fieldDefinition:
		f.definition, cmd = f.definition.Update(msg)
	case fieldExample:
		f.example, cmd = f.example.Update(msg)
	}
	return f, cmd
}

// step returns the next focusable field in direction dir, skipping the
// gender for anything but nouns.
func (f *FormScreen) step(dir int) field {
	next := f.focus
	for {
		next = (next + field(dir) + fieldCount) % fieldCount
		if next != fieldGender || f.isNoun() {
			return next
		}
	}
}

func (f *FormScreen) setFocus(target field) tea.Cmd {
	f.focus = target
	f.word.Blur()
	f.pos.Blur()
	f.gender.Blur()
	f.definition.Blur()
	f.example.Blur()
	f.save.Active = false

	switch target {
	case fieldWord:
		return f.word.Focus()
	case fieldPartOfSpeech:
		f.pos.Focus()
	case fieldGender:
		f.gender.Focus()
	case fieldDefinition:
		return f.definition.Focus()
	case fieldExample:
		return f.example.Focus()
	case fieldSave:
		f.save.Active = true
	}
	return nil
}

// submit validates the form and persists it asynchronously.
func (f *FormScreen) submit() tea.Cmd {
	fields := f.Fields()
	if err := fields.Validate(); err != nil {
		f.errMsg = "Please fill in all required fields."
		f.status = ""
		return nil
	}

	var (
		e   vocab.Entry
		err error
	)
	if f.editing {
		e, err = vocab.Update(f.original, fields)
	} else {
		e, err = vocab.NewEntry(fields)
	}
	if err != nil {
		f.errMsg = err.Error()
		return nil
	}

	f.saving = true
	f.errMsg = ""
	repo, editing, index := f.repo, f.editing, f.index
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if editing {
			_, err = repo.Replace(ctx, index, e)
		} else {
			_, err = repo.Add(ctx, e)
		}
		return savedMsg{Entry: e, Err: err}
	}
}

func (f *FormScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	f.saving = false
	if msg.Err != nil {
		if errors.Is(msg.Err, store.ErrIndexOutOfRange) {
			f.errMsg = "This word no longer exists in the vocabulary."
		} else {
			f.errMsg = fmt.Sprintf("Could not save: %v", msg.Err)
		}
		return f, nil
	}

	if f.editing {
		return f, func() tea.Msg { return router.PopScreenMsg{} }
	}

	f.status = fmt.Sprintf("Added %q.", msg.Entry.Word)
	f.fill(vocab.Fields{PartOfSpeech: vocab.Noun})
	f.gender.Selected = 0
	return f, f.setFocus(fieldWord)
}

func (f *FormScreen) View(width, height int) string {
	var rows []string
	rows = append(rows, f.word.View(), f.pos.View())
	if f.isNoun() {
		rows = append(rows, f.gender.View())
	}
	rows = append(rows, f.definition.View(), f.example.View(), "", f.save.View())

	card := theme.Card.Width(min(width-4, 76)).Render(strings.Join(rows, "\n\n"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	switch {
	case f.saving:
		b.WriteString(layout.Center(width, theme.Hint, "Saving..."))
	case f.errMsg != "":
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error), f.errMsg))
	case f.status != "":
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Success), f.status))
	}
	return b.String()
}
