// Package ledger defines the boundary to the distributed ledger used to
// record match outcomes. The core treats recording as at-most-once: a
// single failed attempt is surfaced to the caller as-is, and callers
// needing retries must wrap the Recorder externally.
package ledger

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a recording transaction cannot be
// submitted or confirmed.
var ErrUnavailable = errors.New("ledger unavailable")

// Recorder submits a scored match to the ledger. The scaled score is the
// validated [1.0, 10.0] score multiplied by 100 and truncated (see
// ScaledScore); addresses are the two stable account identifiers.
type Recorder interface {
	RecordMatch(ctx context.Context, addressA, addressB string, scaledScore uint64) error
}

// ScaledScore converts a validated score into the ledger's integer
// representation: score x 100, rounded toward zero.
func ScaledScore(score float32) uint64 {
	return uint64(score * 100.0)
}
