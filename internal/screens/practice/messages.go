package practice

import (
	sess "github.com/abhisek/vokabel/internal/session"
)

// wordReadyMsg is sent when the next word has been selected and presented.
type wordReadyMsg struct {
	Pick sess.Pick
	Err  error
}

// gradedMsg is sent when the grader has judged an answer.
type gradedMsg struct {
	Outcome sess.Outcome
	Err     error
}
