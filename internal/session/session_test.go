package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vokabel/internal/examplegen"
	"github.com/abhisek/vokabel/internal/grading"
	"github.com/abhisek/vokabel/internal/refresh"
	"github.com/abhisek/vokabel/internal/selector"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

var t0 = time.Unix(1_760_000_000, 0)

type memStore struct {
	entries []vocab.Entry
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) ([]vocab.Entry, error) {
	out := make([]vocab.Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Clone()
	}
	return out, nil
}

func (m *memStore) Save(_ context.Context, entries []vocab.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.entries = make([]vocab.Entry, len(entries))
	for i, e := range entries {
		m.entries[i] = e.Clone()
	}
	return nil
}

type fixedPicker struct {
	idx     int
	streaks []int
}

func (f *fixedPicker) SelectNext(v []vocab.Entry, streak int) int {
	f.streaks = append(f.streaks, streak)
	if len(v) == 0 {
		return selector.NoSelection
	}
	return f.idx
}

type scriptedGrader struct {
	verdicts []string
	answers  []string
}

func (g *scriptedGrader) Grade(_ context.Context, _ vocab.Entry, answer string) string {
	g.answers = append(g.answers, answer)
	v := g.verdicts[0]
	g.verdicts = g.verdicts[1:]
	return v
}

func vocabulary() []vocab.Entry {
	g := vocab.Neutral
	return vocab.NormalizeAll([]vocab.Entry{
		{Word: "Haus", PartOfSpeech: vocab.Noun, Gender: &g, Definition: "house", Example: "Das Haus ist alt."},
		{Word: "schnell", PartOfSpeech: vocab.Adjective, Definition: "fast", Example: "Das Auto ist schnell."},
	})
}

func newTestPractice(st Store, picker Picker, grader Grader) *Practice {
	logger, _ := test.NewNullLogger()
	return New(Deps{
		Store:     st,
		Picker:    picker,
		Grader:    grader,
		Presenter: refresh.New(nil, logger),
		Clock:     func() time.Time { return t0 },
		Log:       logger,
	})
}

func TestNewState(t *testing.T) {
	s := NewState(t0)
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, -1, s.CurrentIndex)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.NotEqual(t, s.SessionID, NewState(t0).SessionID)
}

func TestNext_PresentsAndPersists(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	p := newTestPractice(st, &fixedPicker{idx: 1}, &scriptedGrader{})

	e, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "schnell", e.Word)
	assert.Equal(t, 1, e.TimesAsked)
	assert.Equal(t, t0.Unix(), e.LastAsked)

	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 1, st.entries[1].TimesAsked, "presentation must be persisted")
	assert.Equal(t, 0, st.entries[0].TimesAsked)

	s := p.State()
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, PhaseAsking, s.Phase)
	assert.Equal(t, 1, s.TotalAsked)

	cur, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "schnell", cur.Word)
}

func TestNext_EmptyVocabulary(t *testing.T) {
	p := newTestPractice(&memStore{}, &fixedPicker{}, &scriptedGrader{})
	_, err := p.Next(context.Background())
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	_, ok := p.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, p.Reveal(), ErrNoCurrentWord)
}

func TestSubmit_CorrectAndIncorrect(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	grader := &scriptedGrader{verdicts: []string{
		"Your answer is incorrect! The gender is das.",
		"Your answer is correct!",
	}}
	p := newTestPractice(st, &fixedPicker{idx: 0}, grader)
	ctx := context.Background()

	_, err := p.Next(ctx)
	require.NoError(t, err)
	out, err := p.Submit(ctx, Answer{Gender: "der (masculine)", Definition: "house"})
	require.NoError(t, err)
	assert.Equal(t, vocab.CategoryIncorrect, out.Category)
	assert.Equal(t, vocab.CategoryIncorrect, st.entries[0].Category)
	assert.Equal(t, "Gender: der (masculine)\nDefinition: house", grader.answers[0])
	assert.Equal(t, 1, p.State().Streak)
	assert.Equal(t, PhaseFeedback, p.State().Phase)

	_, err = p.Next(ctx)
	require.NoError(t, err)
	assert.False(t, p.State().AnswerSubmitted, "per-word state cleared on next")
	assert.Empty(t, p.State().Verdict)

	out, err = p.Submit(ctx, Answer{Gender: "das (neutral)", Definition: "a house"})
	require.NoError(t, err)
	assert.Equal(t, vocab.CategoryCorrect, out.Category)
	assert.Equal(t, 0, p.State().Streak, "correct resets the streak")
	assert.Equal(t, 2, st.entries[0].TimesAsked)

	sum := p.Summary()
	assert.Equal(t, 2, sum.TotalAsked)
	assert.Equal(t, 2, sum.TotalGraded)
	assert.Equal(t, 1, sum.TotalCorrect)
	assert.InDelta(t, 0.5, sum.Accuracy, 1e-9)
	require.Len(t, sum.Results, 2)
	assert.Equal(t, vocab.CategoryIncorrect, sum.Results[0].Category)
}

func TestSubmit_Guards(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	p := newTestPractice(st, &fixedPicker{idx: 1}, &scriptedGrader{verdicts: []string{"Your answer is correct!"}})
	ctx := context.Background()

	_, err := p.Submit(ctx, Answer{Definition: "fast"})
	assert.ErrorIs(t, err, ErrNoCurrentWord)

	_, err = p.Next(ctx)
	require.NoError(t, err)

	_, err = p.Submit(ctx, Answer{Definition: "   "})
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = p.Submit(ctx, Answer{Definition: "fast"})
	require.NoError(t, err)

	_, err = p.Submit(ctx, Answer{Definition: "quick"})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmit_SaveFailureRollsBack(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	p := newTestPractice(st, &fixedPicker{idx: 1}, &scriptedGrader{verdicts: []string{"Your answer is correct!"}})
	ctx := context.Background()

	_, err := p.Next(ctx)
	require.NoError(t, err)

	st.saveErr = errors.New("disk full")
	_, err = p.Submit(ctx, Answer{Definition: "fast"})
	require.Error(t, err)

	cur, _ := p.Current()
	assert.Equal(t, vocab.CategoryNew, cur.Category)
	assert.False(t, p.State().AnswerSubmitted)
}

func TestStreakFeedsPicker(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	picker := &fixedPicker{idx: 0}
	grader := &scriptedGrader{verdicts: []string{
		"Your answer is incorrect!",
		"Your answer is incorrect!",
		grading.Fallback,
		"Your answer is correct!",
	}}
	p := newTestPractice(st, picker, grader)
	ctx := context.Background()

	for range 4 {
		_, err := p.Next(ctx)
		require.NoError(t, err)
		_, err = p.Submit(ctx, Answer{Gender: "das", Definition: "house"})
		require.NoError(t, err)
	}
	_, err := p.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 0}, picker.streaks)
}

func TestReveal(t *testing.T) {
	p := newTestPractice(&memStore{entries: vocabulary()}, &fixedPicker{idx: 0}, &scriptedGrader{})
	_, err := p.Next(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Reveal())
	assert.True(t, p.State().ShowAnswer)
}

type sentenceGen struct{}

func (sentenceGen) Generate(_ context.Context, in examplegen.Input) (string, error) {
	return "Neu: " + in.Word + ".", nil
}

func TestPractice_EndToEndWithFileStore(t *testing.T) {
	logger, _ := test.NewNullLogger()
	st, err := store.Open("/vocab/words.json", store.WithFs(afero.NewMemMapFs()), store.WithLogger(logger))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, vocabulary()[:1]))

	p := New(Deps{
		Store:     st,
		Picker:    selector.New(selector.WithRand(rand.New(rand.NewPCG(1, 2))), selector.WithClock(func() time.Time { return t0 })),
		Grader:    &scriptedGrader{verdicts: []string{"Your answer is correct!", "Your answer is correct!", "Your answer is correct!"}},
		Presenter: refresh.New(sentenceGen{}, logger),
		Clock:     func() time.Time { return t0 },
		Log:       logger,
	})

	for range 3 {
		_, err := p.Next(ctx)
		require.NoError(t, err)
		_, err = p.Submit(ctx, Answer{Gender: "das", Definition: "house"})
		require.NoError(t, err)
	}

	saved, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	e := saved[0]
	assert.Equal(t, 3, e.TimesAsked)
	assert.Equal(t, vocab.CategoryCorrect, e.Category)
	assert.True(t, strings.HasPrefix(e.Example, "Neu: Haus"), "example refreshed on the third presentation")
	assert.Equal(t, []string{"Das Haus ist alt."}, e.ExampleHistory)
	assert.Equal(t, 3, e.LastExampleRefresh)
}

func TestFetchAndGrade_LeaveStateAlone(t *testing.T) {
	st := &memStore{entries: vocabulary()}
	p := newTestPractice(st, &fixedPicker{idx: 0}, &scriptedGrader{verdicts: []string{"Your answer is correct!"}})
	ctx := context.Background()

	pk, err := p.Fetch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.State().TotalAsked)
	assert.Equal(t, -1, p.State().CurrentIndex)
	assert.Equal(t, 1, st.entries[0].TimesAsked, "presentation saved by Fetch")

	e := p.Begin(pk)
	assert.Equal(t, "Haus", e.Word)
	assert.Equal(t, 1, p.State().TotalAsked)

	sub, err := p.Prepare(Answer{Gender: "das", Definition: "house"})
	require.NoError(t, err)
	out, err := p.Grade(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, vocab.CategoryCorrect, st.entries[0].Category)
	assert.False(t, p.State().AnswerSubmitted)
	assert.Zero(t, p.State().TotalGraded)

	p.Apply(out)
	assert.True(t, p.State().AnswerSubmitted)
	assert.Equal(t, 1, p.State().TotalCorrect)
	cur, _ := p.Current()
	assert.Equal(t, vocab.CategoryCorrect, cur.Category)
}
