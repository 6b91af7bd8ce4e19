package session

import "time"

// Summary holds the data displayed when a practice session ends.
type Summary struct {
	SessionID    string
	Duration     time.Duration
	TotalAsked   int
	TotalGraded  int
	TotalCorrect int
	Accuracy     float64
	Results      []WordResult
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(state *State, now time.Time) *Summary {
	var accuracy float64
	if state.TotalGraded > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalGraded)
	}

	return &Summary{
		SessionID:    state.SessionID,
		Duration:     now.Sub(state.StartTime),
		TotalAsked:   state.TotalAsked,
		TotalGraded:  state.TotalGraded,
		TotalCorrect: state.TotalCorrect,
		Accuracy:     accuracy,
		Results:      append([]WordResult(nil), state.Results...),
	}
}
