package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/ledger"
	"github.com/phrazzld/amora-api/internal/matcher"
	"github.com/phrazzld/amora-api/internal/mocks"
	"github.com/phrazzld/amora-api/internal/scoring"
)

const (
	addrA = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	addrB = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

func profile(id uint64) domain.Profile {
	return domain.Profile{
		ID:     id,
		Name:   "someone",
		Age:    27,
		Gender: domain.NewGender(domain.GenderFemale),
		Preferences: domain.Preferences{
			PreferredAgeRange: domain.AgeRange{Min: 20, Max: 40},
			RelationshipGoal:  domain.NewRelationshipGoal(domain.GoalSerious),
		},
	}
}

func TestMatchAndRecordSuccess(t *testing.T) {
	t.Parallel()

	rec := &mocks.Ledger{}
	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithScore(8.25), nil), rec, nil)

	score, err := svc.MatchAndRecord(context.Background(), profile(1), profile(2), addrA, addrB)
	require.NoError(t, err)
	assert.InDelta(t, 8.25, score, 1e-6)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, addrA, calls[0].AddressA)
	assert.Equal(t, addrB, calls[0].AddressB)
	assert.Equal(t, uint64(825), calls[0].ScaledScore)
}

func TestMatchAndRecordScoringFailureSkipsLedger(t *testing.T) {
	t.Parallel()

	rec := &mocks.Ledger{}
	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithError(scoring.ErrUnavailable), nil), rec, nil)

	_, err := svc.MatchAndRecord(context.Background(), profile(1), profile(2), addrA, addrB)
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageScoring, stageErr.Stage)
	assert.ErrorIs(t, err, scoring.ErrUnavailable)

	assert.Empty(t, rec.Calls(), "ledger must never see a failed match")
}

func TestMatchAndRecordOutOfRangeSkipsLedger(t *testing.T) {
	t.Parallel()

	rec := &mocks.Ledger{}
	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithScore(10.01), nil), rec, nil)

	_, err := svc.MatchAndRecord(context.Background(), profile(1), profile(2), addrA, addrB)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageScoring, stageErr.Stage)
	assert.ErrorIs(t, err, scoring.ErrOutOfRange)
	assert.Empty(t, rec.Calls())
}

func TestMatchAndRecordLedgerFailure(t *testing.T) {
	t.Parallel()

	rec := mocks.NewLedgerWithError(ledger.ErrUnavailable)
	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithScore(6), nil), rec, nil)

	_, err := svc.MatchAndRecord(context.Background(), profile(1), profile(2), addrA, addrB)
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageLedger, stageErr.Stage)
	assert.ErrorIs(t, err, ledger.ErrUnavailable)

	// at-most-once: exactly one attempt, no retry
	assert.Len(t, rec.Calls(), 1)
}

func TestMatchAndRecordWithoutRecorder(t *testing.T) {
	t.Parallel()

	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithScore(6), nil), nil, nil)

	_, err := svc.MatchAndRecord(context.Background(), profile(1), profile(2), addrA, addrB)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageLedger, stageErr.Stage)
}

func TestMatchPassThrough(t *testing.T) {
	t.Parallel()

	svc := NewMatchService(matcher.NewService(mocks.NewScorerWithScore(9.9), nil), nil, nil)
	score, err := svc.Match(context.Background(), profile(1), profile(2))
	require.NoError(t, err)
	assert.InDelta(t, 9.9, score, 1e-6)

	var stageErr *StageError
	assert.False(t, errors.As(err, &stageErr))
}
