package vocab

import "time"

// Statistics summarizes the learning history of one entry.
type Statistics struct {
	TimesAsked int
	LastAsked  time.Time // zero when never asked
	Category   Category

	// ExampleCount counts the current example plus every kept prior one.
	ExampleCount int

	// RefreshedAtAsk is the ask count at which the example was last replaced.
	RefreshedAtAsk int
}

// Stats computes the statistics for an entry.
func Stats(e Entry) Statistics {
	e = Normalize(e)
	s := Statistics{
		TimesAsked:     e.TimesAsked,
		Category:       e.Category,
		ExampleCount:   len(e.ExampleHistory) + 1,
		RefreshedAtAsk: e.LastExampleRefresh,
	}
	if e.LastAsked > 0 {
		s.LastAsked = time.Unix(e.LastAsked, 0)
	}
	return s
}
