// Package binding exposes a small embeddable facade over the matching
// engine. It works entirely in JSON strings so host environments that
// cannot share Go types (plugin loaders, FFI shims, script runtimes) can
// drive matching with nothing but serialized profiles.
package binding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/matcher"
	"github.com/phrazzld/amora-api/internal/scoring"
)

// MatchOutcome is the resolved result of an asynchronous match. Err is a
// plain string rather than an error value so the outcome survives any
// serialization boundary; it is empty on success.
type MatchOutcome struct {
	Score float32
	Err   string
}

// ProfileMatcher binds one user's profile to the scoring engine. It is
// safe for concurrent use.
type ProfileMatcher struct {
	userProfile domain.Profile
	matcher     *matcher.Service
}

// NewProfileMatcher parses the user's profile and binds it to the given
// scorer. The profile is validated up front so later MatchWith calls can
// only fail on the other side of the pair.
func NewProfileMatcher(profileJSON string, scorer scoring.Scorer) (*ProfileMatcher, error) {
	var profile domain.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return nil, fmt.Errorf("invalid profile format: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &ProfileMatcher{
		userProfile: profile,
		matcher:     matcher.NewService(scorer, nil),
	}, nil
}

// MatchWith scores the bound profile against another serialized profile.
// The work runs in its own goroutine; the returned channel is buffered
// and delivers exactly one outcome, so the caller may abandon it without
// leaking the sender.
func (pm *ProfileMatcher) MatchWith(ctx context.Context, otherProfileJSON string) <-chan MatchOutcome {
	out := make(chan MatchOutcome, 1)

	go func() {
		var other domain.Profile
		if err := json.Unmarshal([]byte(otherProfileJSON), &other); err != nil {
			out <- MatchOutcome{Err: fmt.Sprintf("invalid profile format: %v", err)}
			return
		}

		score, err := pm.matcher.Match(ctx, pm.userProfile, other)
		if err != nil {
			out <- MatchOutcome{Err: err.Error()}
			return
		}
		out <- MatchOutcome{Score: score}
	}()

	return out
}

// ValidateProfile parses a serialized profile and checks its matching
// preferences. It returns true when the preferences are usable, and an
// error describing the first problem otherwise.
func ValidateProfile(profileJSON string) (bool, error) {
	var profile domain.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return false, fmt.Errorf("invalid profile format: %w", err)
	}
	if err := profile.Preferences.Validate(); err != nil {
		return false, err
	}
	return true, nil
}
