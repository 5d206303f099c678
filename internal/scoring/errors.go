package scoring

import "errors"

// Common errors returned across the scoring boundary. Every foreign or
// engine-specific failure is converted to one of these kinds before it
// crosses into the core.
var (
	// ErrUnavailable is returned when the engine cannot be reached or
	// loaded (missing script directory, unreachable API, closed dispatcher).
	ErrUnavailable = errors.New("scoring engine unavailable")

	// ErrSerialization is returned when a profile cannot be serialized for
	// the engine or the engine's raw output cannot be decoded into a
	// numeric score.
	ErrSerialization = errors.New("profile serialization failed")

	// ErrOutOfRange is returned when the engine produced a decodable score
	// outside the closed [1.0, 10.0] interval. This is a hard business
	// rule: the call is rejected, the value is never clamped.
	ErrOutOfRange = errors.New("score must be between 1 and 10")

	// ErrRuntime is returned for any other failure inside the engine.
	ErrRuntime = errors.New("scoring engine runtime error")

	// ErrInvalidConfig is returned when an engine cannot be constructed
	// from its configuration.
	ErrInvalidConfig = errors.New("invalid scoring engine configuration")
)
