package selector

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vokabel/internal/vocab"
)

var fixedNow = time.Unix(1_750_000_000, 0)

func newTestSelector(seed uint64) *Selector {
	return New(
		WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func entry(word string, cat vocab.Category, asked int, lastAsked time.Time) vocab.Entry {
	var ts int64
	if !lastAsked.IsZero() {
		ts = lastAsked.Unix()
	}
	return vocab.Entry{
		Word:         word,
		PartOfSpeech: vocab.Other,
		Category:     cat,
		TimesAsked:   asked,
		LastAsked:    ts,
	}
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name string
		e    vocab.Entry
		want float64
	}{
		{"new just asked", entry("a", vocab.CategoryNew, 0, fixedNow), 100},
		{"incorrect just asked", entry("a", vocab.CategoryIncorrect, 0, fixedNow), 80},
		{"correct just asked", entry("a", vocab.CategoryCorrect, 0, fixedNow), 60},
		{"ask penalty", entry("a", vocab.CategoryCorrect, 3, fixedNow), 45},
		{"two hours ago", entry("a", vocab.CategoryNew, 0, fixedNow.Add(-2*time.Hour)), 102},
		{"exactly one day is not stale", entry("a", vocab.CategoryNew, 0, fixedNow.Add(-24*time.Hour)), 124},
		{"over one day gets bonus", entry("a", vocab.CategoryNew, 0, fixedNow.Add(-48*time.Hour)), 100 + 48 + 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Priority(tt.e, fixedNow), 1e-9)
		})
	}
}

func TestPriority_NeverAskedNewEntry(t *testing.T) {
	fresh := entry("neu", vocab.CategoryNew, 0, time.Time{})
	want := 100 + float64(fixedNow.Unix())/3600 + 20
	assert.InDelta(t, want, Priority(fresh, fixedNow), 1e-6)

	vocabulary := []vocab.Entry{
		entry("a", vocab.CategoryIncorrect, 2, fixedNow.Add(-72*time.Hour)),
		entry("b", vocab.CategoryCorrect, 10, fixedNow.Add(-time.Hour)),
		entry("c", vocab.CategoryNew, 1, fixedNow.Add(-10*24*time.Hour)),
		fresh,
	}
	ranked := Rank(vocabulary, fixedNow)
	assert.Equal(t, 3, ranked[0].Index, "a never-asked entry ranks first")
}

func TestRank_StableTies(t *testing.T) {
	vocabulary := []vocab.Entry{
		entry("a", vocab.CategoryCorrect, 0, fixedNow),
		entry("b", vocab.CategoryCorrect, 0, fixedNow),
		entry("c", vocab.CategoryNew, 0, fixedNow),
		entry("d", vocab.CategoryCorrect, 0, fixedNow),
	}
	ranked := Rank(vocabulary, fixedNow)
	var order []int
	for _, c := range ranked {
		order = append(order, c.Index)
	}
	assert.Equal(t, []int{2, 0, 1, 3}, order)
}

func TestSelectNext_Empty(t *testing.T) {
	s := newTestSelector(1)
	assert.Equal(t, NoSelection, s.SelectNext(nil, 0))
	assert.Equal(t, NoSelection, s.SelectNext([]vocab.Entry{}, 10))
}

func TestSelectNext_Single(t *testing.T) {
	s := newTestSelector(1)
	v := []vocab.Entry{entry("a", vocab.CategoryIncorrect, 4, fixedNow)}
	for range 20 {
		assert.Equal(t, 0, s.SelectNext(v, 5))
	}
}

func TestSelectNext_OnlyTopFive(t *testing.T) {
	// Entries 0..4 are urgent, 5..9 were just answered correctly many times.
	var v []vocab.Entry
	for i := range 5 {
		v = append(v, entry(string(rune('a'+i)), vocab.CategoryNew, 0, fixedNow.Add(-48*time.Hour)))
	}
	for i := range 5 {
		v = append(v, entry(string(rune('k'+i)), vocab.CategoryCorrect, 10, fixedNow))
	}

	s := newTestSelector(42)
	seen := map[int]bool{}
	for range 500 {
		idx := s.SelectNext(v, 0)
		require.Less(t, idx, 5, "picked an entry outside the top five")
		seen[idx] = true
	}
	assert.Len(t, seen, 5, "every top-five candidate should be reachable")
}

func TestSelectNext_BreatherPicksCorrect(t *testing.T) {
	v := []vocab.Entry{
		entry("a", vocab.CategoryIncorrect, 0, fixedNow.Add(-5*time.Hour)),
		entry("b", vocab.CategoryNew, 0, fixedNow.Add(-5*time.Hour)),
		entry("c", vocab.CategoryCorrect, 0, fixedNow.Add(-48*time.Hour)),
		entry("d", vocab.CategoryIncorrect, 1, fixedNow.Add(-5*time.Hour)),
		entry("e", vocab.CategoryCorrect, 0, fixedNow.Add(-5*time.Hour)),
	}

	s := newTestSelector(7)
	for streak := BreatherStreak; streak < BreatherStreak+3; streak++ {
		for range 200 {
			idx := s.SelectNext(v, streak)
			assert.Equal(t, vocab.CategoryCorrect, v[idx].Category, "streak %d picked %q", streak, v[idx].Word)
		}
	}
}

func TestSelectNext_BreatherNeedsCorrectInTopFive(t *testing.T) {
	v := []vocab.Entry{
		entry("a", vocab.CategoryIncorrect, 0, fixedNow),
		entry("b", vocab.CategoryNew, 0, fixedNow),
		entry("c", vocab.CategoryIncorrect, 0, fixedNow),
		entry("d", vocab.CategoryNew, 0, fixedNow),
		entry("e", vocab.CategoryIncorrect, 0, fixedNow),
		// Correct but ranked sixth, so it is out of the pool.
		entry("f", vocab.CategoryCorrect, 8, fixedNow),
	}

	s := newTestSelector(3)
	for range 200 {
		idx := s.SelectNext(v, 6)
		assert.NotEqual(t, 5, idx)
	}
}

func TestSelectNext_BelowBreatherStreakUsesWholePool(t *testing.T) {
	v := []vocab.Entry{
		entry("a", vocab.CategoryIncorrect, 0, fixedNow),
		entry("b", vocab.CategoryCorrect, 0, fixedNow),
	}

	s := newTestSelector(11)
	seen := map[int]bool{}
	for range 200 {
		seen[s.SelectNext(v, BreatherStreak-1)] = true
	}
	assert.True(t, seen[0] && seen[1])
}

func TestSelectNext_Deterministic(t *testing.T) {
	var v []vocab.Entry
	for i := range 8 {
		v = append(v, entry(string(rune('a'+i)), vocab.CategoryNew, i%3, fixedNow.Add(-time.Duration(i)*time.Hour)))
	}

	a, b := newTestSelector(99), newTestSelector(99)
	for range 50 {
		assert.Equal(t, a.SelectNext(v, 0), b.SelectNext(v, 0))
	}
}
