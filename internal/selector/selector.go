// Package selector picks the next vocabulary entry to practice.
package selector

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/vokabel/internal/vocab"
)

// NoSelection is returned by SelectNext when the vocabulary is empty.
const NoSelection = -1

const (
	// CandidatePool is how many top-ranked entries are considered.
	CandidatePool = 5

	// BreatherStreak is the run of non-correct answers after which a
	// previously-correct word is preferred.
	BreatherStreak = 4

	askPenalty    = 5.0
	staleAfter    = 24 * time.Hour
	staleBonus    = 20.0
	secondsPerPt  = 3600.0
	baseNew       = 100.0
	baseIncorrect = 80.0
	baseCorrect   = 60.0
)

// Selector ranks entries by priority and picks randomly among the best.
type Selector struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source. Use a seeded source for reproducible picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// New creates a Selector seeded from the runtime's random source.
func New(opts ...Option) *Selector {
	s := &Selector{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Candidate is an entry index with its computed priority.
type Candidate struct {
	Index    int
	Priority float64
}

// Priority scores an entry at the given time. Higher means more urgent.
func Priority(e vocab.Entry, now time.Time) float64 {
	var base float64
	switch e.Category {
	case vocab.CategoryIncorrect:
		base = baseIncorrect
	case vocab.CategoryCorrect:
		base = baseCorrect
	default:
		base = baseNew
	}

	since := float64(now.Unix() - e.LastAsked)
	p := base - askPenalty*float64(e.TimesAsked) + since/secondsPerPt
	if since > staleAfter.Seconds() {
		p += staleBonus
	}
	return p
}

// Rank returns every entry ordered by descending priority. Ties keep the
// original order.
func Rank(vocabulary []vocab.Entry, now time.Time) []Candidate {
	ranked := make([]Candidate, len(vocabulary))
	for i, e := range vocabulary {
		ranked[i] = Candidate{Index: i, Priority: Priority(e, now)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Priority > ranked[b].Priority
	})
	return ranked
}

// SelectNext returns the index of the entry to practice next, or
// NoSelection for an empty vocabulary.
//
// The pick is uniform among the top CandidatePool entries. When streak
// (consecutive non-correct answers) reaches BreatherStreak and any of those
// candidates was last answered correctly, the pick is restricted to them.
func (s *Selector) SelectNext(vocabulary []vocab.Entry, streak int) int {
	if len(vocabulary) == 0 {
		return NoSelection
	}

	top := Rank(vocabulary, s.now())
	if len(top) > CandidatePool {
		top = top[:CandidatePool]
	}

	if streak >= BreatherStreak {
		var easy []Candidate
		for _, c := range top {
			if vocabulary[c.Index].Category == vocab.CategoryCorrect {
				easy = append(easy, c)
			}
		}
		if len(easy) > 0 {
			return easy[s.rng.IntN(len(easy))].Index
		}
	}

	return top[s.rng.IntN(len(top))].Index
}
