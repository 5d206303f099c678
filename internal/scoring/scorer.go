package scoring

import (
	"context"
	"encoding/json"
)

// Score bounds enforced by the orchestrator. Engines may return values
// outside this range; the orchestrator rejects them.
const (
	MinScore float32 = 1.0
	MaxScore float32 = 10.0
)

// Scorer computes a compatibility score for an ordered pair of serialized
// profiles. Implementations receive the two records exactly as the caller
// serialized them, under the fixed roles profile_a and profile_b, and must
// not reorder or merge them.
//
// The call is blocking and potentially foreign (it may hold an internal
// interpreter lock); callers are expected to dispatch it off their own
// scheduling substrate. Implementations must return errors from this
// package's taxonomy, never a raw foreign error.
type Scorer interface {
	Score(ctx context.Context, profileA, profileB json.RawMessage) (float32, error)
}

// InRange reports whether the score is inside the closed [MinScore,
// MaxScore] interval.
func InRange(score float32) bool {
	return score >= MinScore && score <= MaxScore
}
