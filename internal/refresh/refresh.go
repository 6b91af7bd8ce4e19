// Package refresh decides when a vocabulary entry gets a new example
// sentence and applies the replacement.
package refresh

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/vokabel/internal/examplegen"
	"github.com/abhisek/vokabel/internal/vocab"
)

// DefaultThreshold is the number of presentations between refreshes.
const DefaultThreshold = 3

// ShouldRefresh reports whether at least threshold presentations happened
// since the example was last replaced.
func ShouldRefresh(e vocab.Entry, threshold int) bool {
	return e.TimesAsked-e.LastExampleRefresh >= threshold
}

// Policy refreshes examples through a generator. A nil Generator disables
// refreshing; entries are still counted as presented.
type Policy struct {
	Generator examplegen.Generator
	Threshold int
	Log       logrus.FieldLogger
}

// New creates a Policy with the default threshold.
func New(gen examplegen.Generator, log logrus.FieldLogger) *Policy {
	return &Policy{Generator: gen, Threshold: DefaultThreshold, Log: log}
}

func (p *Policy) threshold() int {
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

func (p *Policy) log() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// ShouldRefresh applies the policy threshold.
func (p *Policy) ShouldRefresh(e vocab.Entry) bool {
	return ShouldRefresh(e, p.threshold())
}

// Refresh asks the generator for a new example and installs it. It reports
// whether the entry changed. Generator failures are logged and leave the
// entry untouched.
func (p *Policy) Refresh(ctx context.Context, e *vocab.Entry) bool {
	if p.Generator == nil {
		return false
	}

	log := p.log().WithField("word", e.Word)
	sentence, err := p.Generator.Generate(ctx, examplegen.InputFor(*e))
	if err != nil {
		log.WithError(err).Warn("example refresh failed")
		return false
	}

	if !Apply(e, sentence) {
		log.Debug("generator repeated the current example")
		return false
	}
	log.WithField("example", e.Example).Info("example refreshed")
	return true
}

// Apply installs sentence as the entry's example. The current example moves
// to PreviousExample and into the history (once, keeping the newest
// vocab.MaxExampleHistory), and LastExampleRefresh snapshots TimesAsked.
// Empty or unchanged sentences are ignored.
func Apply(e *vocab.Entry, sentence string) bool {
	if sentence == "" || sentence == e.Example {
		return false
	}

	history := append([]string(nil), e.ExampleHistory...)
	if !slices.Contains(history, e.Example) {
		history = append(history, e.Example)
	}
	if len(history) > vocab.MaxExampleHistory {
		history = history[len(history)-vocab.MaxExampleHistory:]
	}

	prev := e.Example
	e.ExampleHistory = history
	e.PreviousExample = &prev
	e.Example = sentence
	e.LastExampleRefresh = e.TimesAsked
	return true
}

// Present records that the entry is being shown now and refreshes its
// example when due. It reports whether the example changed.
func (p *Policy) Present(ctx context.Context, e *vocab.Entry, now time.Time) bool {
	if e.ExampleHistory == nil {
		e.ExampleHistory = []string{}
	}
	e.TimesAsked++
	e.LastAsked = now.Unix()

	if !p.ShouldRefresh(*e) {
		return false
	}
	return p.Refresh(ctx, e)
}
