package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Preferences-specific validation errors.
var (
	// ErrAgeFloor is returned when the minimum preferred age is below 18.
	ErrAgeFloor = errors.New("minimum age must be at least 18")

	// ErrAgeRangeInvalid is returned when the minimum preferred age is not
	// strictly less than the maximum.
	ErrAgeRangeInvalid = errors.New("minimum age must be less than maximum age")
)

// MinPreferredAge is the lower bound every preferred age range must respect.
const MinPreferredAge = 18

// AgeRange is an inclusive preferred age interval. The wire format is a
// two-element array [min, max], matching the upstream tuple encoding.
type AgeRange struct {
	Min int `json:"-"`
	Max int `json:"-"`
}

// MarshalJSON encodes the range as [min, max].
func (r AgeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Min, r.Max})
}

// UnmarshalJSON decodes a [min, max] array.
func (r *AgeRange) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: preferred_age_range must be a [min, max] pair", ErrInvalidFormat)
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Preferences captures what a user is looking for in a match.
// An empty PreferredGenders list means no gender restriction.
type Preferences struct {
	PreferredAgeRange AgeRange         `json:"preferred_age_range"`
	PreferredGenders  []Gender         `json:"preferred_genders"`
	RelationshipGoal  RelationshipGoal `json:"relationship_goal"`
}

// DefaultPreferences returns the open defaults: ages 18-99, no gender
// restriction, looking for friendship.
func DefaultPreferences() Preferences {
	return Preferences{
		PreferredAgeRange: AgeRange{Min: MinPreferredAge, Max: 99},
		PreferredGenders:  nil,
		RelationshipGoal:  NewRelationshipGoal(GoalFriendship),
	}
}

// Validate checks the Preferences invariants. It is pure and deterministic:
// the same Preferences value always yields the same result.
//
// Returns ErrAgeRangeInvalid when min >= max, ErrAgeFloor when min < 18.
func (p Preferences) Validate() error {
	if p.PreferredAgeRange.Min >= p.PreferredAgeRange.Max {
		return ErrAgeRangeInvalid
	}
	if p.PreferredAgeRange.Min < MinPreferredAge {
		return ErrAgeFloor
	}
	for _, g := range p.PreferredGenders {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return p.RelationshipGoal.Validate()
}
