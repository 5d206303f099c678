package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/ledger"
	"github.com/phrazzld/amora-api/internal/registry"
	"github.com/phrazzld/amora-api/internal/scoring"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Conflict errors
	case errors.Is(err, registry.ErrProfileExists):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, registry.ErrProfileNotFound):
		return http.StatusNotFound

	// Caller-input faults
	case errors.Is(err, registry.ErrInvalidProfile),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrAgeFloor),
		errors.Is(err, domain.ErrAgeRangeInvalid):
		return http.StatusBadRequest

	// Engine and ledger failures are server-side faults
	case errors.Is(err, scoring.ErrUnavailable),
		errors.Is(err, scoring.ErrSerialization),
		errors.Is(err, scoring.ErrOutOfRange),
		errors.Is(err, scoring.ErrRuntime),
		errors.Is(err, ledger.ErrUnavailable):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error.
// Caller-input faults keep their human-readable reason; the conflict case
// uses the fixed wording clients match on.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, registry.ErrProfileExists):
		return "Profile already exists"
	default:
		// Match and ledger failures surface the underlying message for
		// diagnostics; validation failures carry their reason.
		return err.Error()
	}
}
