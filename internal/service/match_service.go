package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/ledger"
	"github.com/phrazzld/amora-api/internal/matcher"
)

// Pipeline stage labels attached to failures of the combined operation.
const (
	StageScoring = "AI matching failed"
	StageLedger  = "Blockchain transaction failed"
)

// StageError wraps a pipeline failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// MatchService runs the scoring pipeline and, for the combined operation,
// the ledger recording step.
type MatchService struct {
	matcher  *matcher.Service
	recorder ledger.Recorder
	logger   *slog.Logger
}

// NewMatchService creates a MatchService. The recorder may be nil when
// ledger integration is disabled; only MatchAndRecord needs it.
func NewMatchService(m *matcher.Service, recorder ledger.Recorder, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchService{
		matcher:  m,
		recorder: recorder,
		logger:   logger,
	}
}

// Match scores the pair without touching the ledger.
func (s *MatchService) Match(ctx context.Context, profileA, profileB domain.Profile) (float32, error) {
	return s.matcher.Match(ctx, profileA, profileB)
}

// MatchAndRecord scores the pair and records the outcome on the ledger.
// The steps run strictly in order: a scoring failure short-circuits before
// any ledger call, so no partial record of a failed match can exist. The
// ledger attempt is at-most-once; its failure is surfaced, never retried.
func (s *MatchService) MatchAndRecord(
	ctx context.Context,
	profileA, profileB domain.Profile,
	addressA, addressB string,
) (float32, error) {
	score, err := s.matcher.Match(ctx, profileA, profileB)
	if err != nil {
		return 0, &StageError{Stage: StageScoring, Err: err}
	}

	if s.recorder == nil {
		return 0, &StageError{Stage: StageLedger, Err: ledger.ErrUnavailable}
	}

	scaled := ledger.ScaledScore(score)
	if err := s.recorder.RecordMatch(ctx, addressA, addressB, scaled); err != nil {
		return 0, &StageError{Stage: StageLedger, Err: err}
	}

	s.logger.Info("match recorded",
		"profile_a_id", profileA.ID,
		"profile_b_id", profileB.ID,
		"score", score,
		"scaled_score", scaled)

	return score, nil
}
