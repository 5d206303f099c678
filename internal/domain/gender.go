package domain

import (
	"encoding/json"
	"fmt"
)

// GenderKind identifies one of the known gender variants.
type GenderKind string

// Known gender variants. GenderOther carries a free-text payload.
const (
	GenderMale      GenderKind = "Male"
	GenderFemale    GenderKind = "Female"
	GenderNonBinary GenderKind = "NonBinary"
	GenderOther     GenderKind = "Other"
)

// Gender is an open-world enumeration: one of the known variants, or an
// Other variant carrying free text. It is modeled as a tagged union rather
// than a plain string so that switching on Kind stays exhaustive while
// arbitrary self-descriptions remain representable.
//
// The wire format follows the upstream encoding: known variants serialize
// as a bare string ("Male"), the open variant as {"Other": "<text>"}.
type Gender struct {
	Kind  GenderKind `json:"-"`
	Other string     `json:"-"`
}

// NewGender returns a Gender for one of the closed variants.
func NewGender(kind GenderKind) Gender {
	return Gender{Kind: kind}
}

// NewGenderOther returns a Gender with the open variant and the given text.
func NewGenderOther(text string) Gender {
	return Gender{Kind: GenderOther, Other: text}
}

// Validate checks that the Kind is one of the known variants.
func (g Gender) Validate() error {
	switch g.Kind {
	case GenderMale, GenderFemale, GenderNonBinary, GenderOther:
		return nil
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, string(g.Kind))
	}
}

// String returns the variant name, or the payload text for the open variant.
func (g Gender) String() string {
	if g.Kind == GenderOther {
		return g.Other
	}
	return string(g.Kind)
}

// MarshalJSON implements json.Marshaler using the externally-tagged encoding.
func (g Gender) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Kind == GenderOther {
		return json.Marshal(map[string]string{"Other": g.Other})
	}
	return json.Marshal(string(g.Kind))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts either a bare
// variant string or an {"Other": "<text>"} object.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed := Gender{Kind: GenderKind(s)}
		if parsed.Kind == GenderOther {
			return fmt.Errorf("%w: gender Other requires a payload", ErrInvalidFormat)
		}
		if err := parsed.Validate(); err != nil {
			return err
		}
		*g = parsed
		return nil
	}

	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: gender must be a string or tagged object", ErrInvalidFormat)
	}
	text, ok := tagged[string(GenderOther)]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("%w: unknown gender encoding", ErrInvalidFormat)
	}
	*g = NewGenderOther(text)
	return nil
}

// RelationshipGoalKind identifies one of the known relationship goal variants.
type RelationshipGoalKind string

// Known relationship goal variants. GoalOther carries a free-text payload.
const (
	GoalCasual     RelationshipGoalKind = "Casual"
	GoalSerious    RelationshipGoalKind = "Serious"
	GoalFriendship RelationshipGoalKind = "Friendship"
	GoalOther      RelationshipGoalKind = "Other"
)

// RelationshipGoal is the open-world enumeration of what a user is looking
// for. Encoded on the wire exactly like Gender.
type RelationshipGoal struct {
	Kind  RelationshipGoalKind `json:"-"`
	Other string               `json:"-"`
}

// NewRelationshipGoal returns a RelationshipGoal for one of the closed variants.
func NewRelationshipGoal(kind RelationshipGoalKind) RelationshipGoal {
	return RelationshipGoal{Kind: kind}
}

// NewRelationshipGoalOther returns a RelationshipGoal with the open variant.
func NewRelationshipGoalOther(text string) RelationshipGoal {
	return RelationshipGoal{Kind: GoalOther, Other: text}
}

// Validate checks that the Kind is one of the known variants.
func (r RelationshipGoal) Validate() error {
	switch r.Kind {
	case GoalCasual, GoalSerious, GoalFriendship, GoalOther:
		return nil
	default:
		return fmt.Errorf("%w: unknown relationship goal %q", ErrValidation, string(r.Kind))
	}
}

// String returns the variant name, or the payload text for the open variant.
func (r RelationshipGoal) String() string {
	if r.Kind == GoalOther {
		return r.Other
	}
	return string(r.Kind)
}

// MarshalJSON implements json.Marshaler using the externally-tagged encoding.
func (r RelationshipGoal) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Kind == GoalOther {
		return json.Marshal(map[string]string{"Other": r.Other})
	}
	return json.Marshal(string(r.Kind))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts either a bare
// variant string or an {"Other": "<text>"} object.
func (r *RelationshipGoal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed := RelationshipGoal{Kind: RelationshipGoalKind(s)}
		if parsed.Kind == GoalOther {
			return fmt.Errorf("%w: relationship goal Other requires a payload", ErrInvalidFormat)
		}
		if err := parsed.Validate(); err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: relationship goal must be a string or tagged object", ErrInvalidFormat)
	}
	text, ok := tagged[string(GoalOther)]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("%w: unknown relationship goal encoding", ErrInvalidFormat)
	}
	*r = NewRelationshipGoalOther(text)
	return nil
}
