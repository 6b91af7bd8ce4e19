package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vokabel/internal/vocab"
)

// Phase represents where the learner is within the current word.
type Phase int

const (
	PhaseIdle     Phase = iota // No word selected yet
	PhaseAsking                // Word shown, waiting for an answer
	PhaseFeedback              // Answer graded, verdict shown
)

// State is the explicit per-session context of a practice run. A new State
// is created for each practice session; the per-word fields are cleared
// whenever the next word is chosen.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// StartTime is when the session began.
	StartTime time.Time

	// Phase is the current phase.
	Phase Phase

	// CurrentIndex is the vocabulary index of the word being practiced,
	// or -1 when none is selected.
	CurrentIndex int

	// UserAnswer is the composed answer that was submitted.
	UserAnswer string

	// AnswerSubmitted is true once the current word has been graded.
	AnswerSubmitted bool

	// ShowAnswer is true when the learner asked to see the answer.
	ShowAnswer bool

	// Verdict is the grader's text for the current word.
	Verdict string

	// LastCategory is the category assigned by the latest grading.
	LastCategory vocab.Category

	// Streak counts consecutive answers that were not correct.
	Streak int

	// TotalAsked is the number of words presented in this session.
	TotalAsked int

	// TotalGraded and TotalCorrect count graded answers.
	TotalGraded  int
	TotalCorrect int

	// Results records each graded word in order.
	Results []WordResult
}

// WordResult is one graded answer.
type WordResult struct {
	Word     string
	Answer   string
	Category vocab.Category
}

// NewState creates a fresh session state.
func NewState(now time.Time) *State {
	return &State{
		SessionID:    uuid.NewString(),
		StartTime:    now,
		Phase:        PhaseIdle,
		CurrentIndex: -1,
	}
}

// clearWord resets the fields that belong to a single word.
func (s *State) clearWord() {
	s.CurrentIndex = -1
	s.UserAnswer = ""
	s.AnswerSubmitted = false
	s.ShowAnswer = false
	s.Verdict = ""
	s.LastCategory = ""
	s.Phase = PhaseIdle
}

// record applies a graded answer to the counters and the streak.
func (s *State) record(word, answer string, cat vocab.Category) {
	s.TotalGraded++
	if cat == vocab.CategoryCorrect {
		s.TotalCorrect++
		s.Streak = 0
	} else {
		s.Streak++
	}
	s.Results = append(s.Results, WordResult{Word: word, Answer: answer, Category: cat})
}
