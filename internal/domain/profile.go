package domain

import (
	"errors"
	"fmt"
)

// Profile-specific validation errors.
var (
	// ErrProfileNameEmpty is returned when a profile's name is empty.
	ErrProfileNameEmpty = errors.New("profile name cannot be empty")

	// ErrProfileAgeNegative is returned when a profile's age is negative.
	ErrProfileAgeNegative = errors.New("profile age cannot be negative")
)

// Location is a free-form city/country pair. Both fields may be empty.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Profile represents a registered user's attributes and preferences used
// for matching. The ID is caller-assigned and immutable after creation.
// Once inserted, the registry owns the stored value; callers always pass
// and receive copies.
type Profile struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Gender      Gender      `json:"gender"`
	Location    Location    `json:"location"`
	Interests   []string    `json:"interests"`
	Preferences Preferences `json:"preferences"`
}

// Validate checks the Profile invariants, including the embedded
// Preferences. Returns the first violation found.
func (p Profile) Validate() error {
	if p.Name == "" {
		return ErrProfileNameEmpty
	}
	if p.Age < 0 {
		return ErrProfileAgeNegative
	}
	if err := p.Gender.Validate(); err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	return p.Preferences.Validate()
}

// MatchResult holds the outcome of a single match attempt: a compatibility
// score in [1.0, 10.0] or an error reason. It is ephemeral and never stored.
type MatchResult struct {
	Score float32
	Err   error
}
