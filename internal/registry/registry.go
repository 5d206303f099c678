// Package registry provides the shared profile store: a concurrent mapping
// from profile id to Profile with create-if-absent semantics. The store is
// an explicitly owned, injected object rather than ambient global state, so
// tests can construct isolated instances.
package registry

import (
	"errors"
	"fmt"

	"github.com/phrazzld/amora-api/internal/domain"
)

// Common registry errors.
var (
	// ErrProfileExists is returned by Create when a profile with the same
	// id is already present. The existing entry is left untouched.
	ErrProfileExists = errors.New("profile already exists")

	// ErrProfileNotFound is returned by Get when no profile has the
	// requested id.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfile is returned by Create when the profile fails
	// domain validation. Check the wrapped error for the specific rule.
	ErrInvalidProfile = errors.New("invalid profile")
)

// ProfileRegistry defines the store for registered profiles. All
// implementations must be safe for concurrent use; in particular the
// membership test and insert of Create must happen atomically.
type ProfileRegistry interface {
	// Create validates and inserts the profile. It fails with
	// ErrProfileExists if the id is already present and with
	// ErrInvalidProfile if validation fails. On success it returns a copy
	// of the stored profile.
	Create(profile domain.Profile) (domain.Profile, error)

	// Get returns a copy of the profile with the given id, or
	// ErrProfileNotFound.
	Get(id uint64) (domain.Profile, error)

	// Len reports the number of stored profiles.
	Len() int
}

// wrapInvalid attaches the validation cause to ErrInvalidProfile.
func wrapInvalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
}
