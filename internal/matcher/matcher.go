// Package matcher implements the match orchestrator: it serializes a pair
// of profiles, invokes the scoring engine through the dispatch boundary,
// and validates the returned score against the business range before
// handing it back to the caller.
package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/scoring"
)

// Service produces a compatibility score for an ordered pair of profiles.
// The engine is a black box: nothing here assumes Match(a, b) and
// Match(b, a) agree, and the profiles are always passed in the exact order
// received.
type Service struct {
	scorer scoring.Scorer
	logger *slog.Logger
}

// NewService creates a match orchestrator around the given scorer, which
// is normally the task.Dispatcher so engine calls stay off the caller's
// goroutine.
func NewService(scorer scoring.Scorer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{scorer: scorer, logger: logger}
}

// Match scores profileA against profileB. The steps run strictly in
// sequence: serialization, engine invocation, range check. A failure at
// any step short-circuits the rest. Every error belongs to the scoring
// package's taxonomy; no foreign error crosses this boundary.
func (s *Service) Match(ctx context.Context, profileA, profileB domain.Profile) (float32, error) {
	rawA, err := json.Marshal(profileA)
	if err != nil {
		return 0, fmt.Errorf("%w: profile_a: %v", scoring.ErrSerialization, err)
	}
	rawB, err := json.Marshal(profileB)
	if err != nil {
		return 0, fmt.Errorf("%w: profile_b: %v", scoring.ErrSerialization, err)
	}

	score, err := s.scorer.Score(ctx, rawA, rawB)
	if err != nil {
		err = classify(err)
		s.logger.Debug("match failed",
			"profile_a_id", profileA.ID,
			"profile_b_id", profileB.ID,
			"error", err)
		return 0, err
	}

	// Hard business rule: reject, never clamp. The boundaries themselves
	// are acceptable.
	if !scoring.InRange(score) {
		return 0, fmt.Errorf("%w: engine returned %g", scoring.ErrOutOfRange, score)
	}

	s.logger.Debug("match scored",
		"profile_a_id", profileA.ID,
		"profile_b_id", profileB.ID,
		"score", score)

	// The raw score, unrounded and unclamped.
	return score, nil
}

// classify maps an engine failure onto the scoring taxonomy. Errors that
// already carry a taxonomy kind pass through; anything else is a runtime
// fault of the engine.
func classify(err error) error {
	switch {
	case errors.Is(err, scoring.ErrUnavailable),
		errors.Is(err, scoring.ErrSerialization),
		errors.Is(err, scoring.ErrOutOfRange),
		errors.Is(err, scoring.ErrRuntime):
		return err
	default:
		return fmt.Errorf("%w: %v", scoring.ErrRuntime, err)
	}
}
