package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// Scorer implements scoring.Scorer for testing.
type Scorer struct {
	// ScoreFn allows test cases to mock the Score behavior.
	ScoreFn func(ctx context.Context, profileA, profileB json.RawMessage) (float32, error)

	// Default response values used when ScoreFn is nil.
	ScoreValue float32
	Err        error

	// mu protects the call tracking state for concurrent test cases.
	mu    sync.Mutex
	calls int
	pairs [][2]json.RawMessage
}

// Score implements the scoring.Scorer interface.
func (m *Scorer) Score(ctx context.Context, profileA, profileB json.RawMessage) (float32, error) {
	m.mu.Lock()
	m.calls++
	m.pairs = append(m.pairs, [2]json.RawMessage{profileA, profileB})
	m.mu.Unlock()

	if m.ScoreFn != nil {
		return m.ScoreFn(ctx, profileA, profileB)
	}
	return m.ScoreValue, m.Err
}

// Calls reports how many times Score was invoked.
func (m *Scorer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPair returns the records passed to the most recent Score call.
func (m *Scorer) LastPair() (json.RawMessage, json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pairs) == 0 {
		return nil, nil
	}
	last := m.pairs[len(m.pairs)-1]
	return last[0], last[1]
}

// NewScorerWithScore creates a Scorer that always returns the given score.
func NewScorerWithScore(score float32) *Scorer {
	return &Scorer{ScoreValue: score}
}

// NewScorerWithError creates a Scorer that always fails with err.
func NewScorerWithError(err error) *Scorer {
	return &Scorer{Err: err}
}
