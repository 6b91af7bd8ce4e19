// Package session runs a practice session: choosing words, presenting
// them, grading answers and persisting the results.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/vokabel/internal/grading"
	"github.com/abhisek/vokabel/internal/selector"
	"github.com/abhisek/vokabel/internal/vocab"
)

var (
	// ErrEmptyVocabulary is returned by Next when there is nothing to practice.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")

	// ErrNoCurrentWord is returned when an operation needs a selected word.
	ErrNoCurrentWord = errors.New("no word selected")

	// ErrEmptyAnswer is returned when the definition was left blank.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrAlreadySubmitted is returned on a second submission for one word.
	ErrAlreadySubmitted = errors.New("answer already submitted")
)

// Store loads and saves the vocabulary.
type Store interface {
	Load(ctx context.Context) ([]vocab.Entry, error)
	Save(ctx context.Context, entries []vocab.Entry) error
}

// Picker chooses the next entry index given the non-correct streak.
type Picker interface {
	SelectNext(vocabulary []vocab.Entry, streak int) int
}

// Grader returns a free-text verdict for an answer.
type Grader interface {
	Grade(ctx context.Context, e vocab.Entry, answer string) string
}

// Presenter records a presentation and refreshes the example when due.
type Presenter interface {
	Present(ctx context.Context, e *vocab.Entry, now time.Time) bool
}

// Deps wires a Practice to its collaborators.
type Deps struct {
	Store     Store
	Picker    Picker
	Grader    Grader
	Presenter Presenter
	Clock     func() time.Time
	Log       logrus.FieldLogger
}

// Answer is what the learner typed. Gender is only used for nouns.
type Answer struct {
	Gender     string
	Definition string
}

// Outcome is the result of grading one answer.
type Outcome struct {
	Verdict  string
	Category vocab.Category
	Entry    vocab.Entry
	Answer   string
	Index    int
}

// Practice drives one practice session. The state is owned by one
// goroutine: Fetch and Grade do the I/O and may run elsewhere, while
// Advance, Begin, Prepare and Apply change the state and must be called
// from the owner.
type Practice struct {
	deps       Deps
	state      *State
	vocabulary []vocab.Entry
}

// New starts a practice session.
func New(deps Deps) *Practice {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	state := NewState(deps.Clock())
	deps.Log = deps.Log.WithField("session_id", state.SessionID)
	return &Practice{deps: deps, state: state}
}

// State returns the live session state.
func (p *Practice) State() *State {
	return p.state
}

// Pick is a word chosen and presented by Fetch, ready to be applied with
// Begin.
type Pick struct {
	Index      int
	Entry      vocab.Entry
	Vocabulary []vocab.Entry
	Refreshed  bool
}

// Submission is a validated answer captured by Prepare. It owns a copy of
// the vocabulary so that Grade can run off the caller's goroutine.
type Submission struct {
	Index      int
	Entry      vocab.Entry
	Answer     string
	vocabulary []vocab.Entry
}

// Next clears the per-word state, picks the next word, records the
// presentation (which may refresh its example) and persists the vocabulary.
func (p *Practice) Next(ctx context.Context) (vocab.Entry, error) {
	p.Advance()
	pk, err := p.Fetch(ctx, p.state.Streak)
	if err != nil {
		if errors.Is(err, ErrEmptyVocabulary) {
			p.vocabulary = pk.Vocabulary
		}
		return vocab.Entry{}, err
	}
	return p.Begin(pk), nil
}

// Advance clears the per-word state ahead of the next word.
func (p *Practice) Advance() {
	p.state.clearWord()
}

// Fetch loads the vocabulary, picks a word for the given streak, records
// the presentation and saves. It does not touch the session state and may
// run on any goroutine.
func (p *Practice) Fetch(ctx context.Context, streak int) (Pick, error) {
	entries, err := p.deps.Store.Load(ctx)
	if err != nil {
		return Pick{}, fmt.Errorf("load vocabulary: %w", err)
	}

	idx := p.deps.Picker.SelectNext(entries, streak)
	if idx == selector.NoSelection {
		return Pick{Index: selector.NoSelection, Vocabulary: entries}, ErrEmptyVocabulary
	}

	refreshed := p.deps.Presenter.Present(ctx, &entries[idx], p.deps.Clock())
	if err := p.deps.Store.Save(ctx, entries); err != nil {
		return Pick{}, fmt.Errorf("save vocabulary: %w", err)
	}

	return Pick{
		Index:      idx,
		Entry:      entries[idx].Clone(),
		Vocabulary: entries,
		Refreshed:  refreshed,
	}, nil
}

// Begin makes a fetched word the current one.
func (p *Practice) Begin(pk Pick) vocab.Entry {
	p.state.clearWord()
	p.vocabulary = pk.Vocabulary
	p.state.CurrentIndex = pk.Index
	p.state.Phase = PhaseAsking
	p.state.TotalAsked++

	p.deps.Log.WithFields(logrus.Fields{
		"word":        pk.Entry.Word,
		"times_asked": pk.Entry.TimesAsked,
		"refreshed":   pk.Refreshed,
		"streak":      p.state.Streak,
	}).Debug("word presented")

	return pk.Entry
}

// Current returns the word being practiced.
func (p *Practice) Current() (vocab.Entry, bool) {
	i := p.state.CurrentIndex
	if i < 0 || i >= len(p.vocabulary) {
		return vocab.Entry{}, false
	}
	return p.vocabulary[i].Clone(), true
}

// Reveal marks the answer of the current word as shown.
func (p *Practice) Reveal() error {
	if _, ok := p.Current(); !ok {
		return ErrNoCurrentWord
	}
	p.state.ShowAnswer = true
	return nil
}

// Submit grades the answer for the current word, stores the resulting
// category and persists the vocabulary.
func (p *Practice) Submit(ctx context.Context, a Answer) (Outcome, error) {
	sub, err := p.Prepare(a)
	if err != nil {
		return Outcome{}, err
	}
	out, err := p.Grade(ctx, sub)
	if err != nil {
		return Outcome{}, err
	}
	p.Apply(out)
	return out, nil
}

// Prepare validates an answer for the current word and composes it.
func (p *Practice) Prepare(a Answer) (Submission, error) {
	current, ok := p.Current()
	if !ok {
		return Submission{}, ErrNoCurrentWord
	}
	if p.state.AnswerSubmitted {
		return Submission{}, ErrAlreadySubmitted
	}
	if strings.TrimSpace(a.Definition) == "" {
		return Submission{}, ErrEmptyAnswer
	}
	return Submission{
		Index:      p.state.CurrentIndex,
		Entry:      current,
		Answer:     grading.ComposeAnswer(current, a.Gender, a.Definition),
		vocabulary: slices.Clone(p.vocabulary),
	}, nil
}

// Grade asks the grader about a prepared submission and saves the new
// category. Like Fetch it leaves the session state alone.
func (p *Practice) Grade(ctx context.Context, sub Submission) (Outcome, error) {
	if sub.Index < 0 || sub.Index >= len(sub.vocabulary) {
		return Outcome{}, ErrNoCurrentWord
	}

	verdict := p.deps.Grader.Grade(ctx, sub.Entry, sub.Answer)
	cat := grading.Categorize(verdict)

	sub.vocabulary[sub.Index].Category = cat
	if err := p.deps.Store.Save(ctx, sub.vocabulary); err != nil {
		return Outcome{}, fmt.Errorf("save vocabulary: %w", err)
	}

	return Outcome{
		Verdict:  verdict,
		Category: cat,
		Entry:    sub.vocabulary[sub.Index].Clone(),
		Answer:   sub.Answer,
		Index:    sub.Index,
	}, nil
}

// Apply records a graded outcome in the session state.
func (p *Practice) Apply(out Outcome) {
	if out.Index >= 0 && out.Index < len(p.vocabulary) {
		p.vocabulary[out.Index].Category = out.Category
	}

	p.state.UserAnswer = out.Answer
	p.state.AnswerSubmitted = true
	p.state.Verdict = out.Verdict
	p.state.LastCategory = out.Category
	p.state.Phase = PhaseFeedback
	p.state.record(out.Entry.Word, out.Answer, out.Category)

	p.deps.Log.WithFields(logrus.Fields{
		"word":     out.Entry.Word,
		"category": out.Category,
		"streak":   p.state.Streak,
	}).Info("answer graded")
}

// Summary summarizes the session so far.
func (p *Practice) Summary() *Summary {
	return BuildSummary(p.state, p.deps.Clock())
}
