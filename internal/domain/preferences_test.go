package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPreferencesValidate(t *testing.T) {
	t.Parallel()

	valid := Preferences{
		PreferredAgeRange: AgeRange{Min: 25, Max: 35},
		PreferredGenders:  []Gender{NewGender(GenderFemale)},
		RelationshipGoal:  NewRelationshipGoal(GoalSerious),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// min == max violates the range invariant
	p := valid
	p.PreferredAgeRange = AgeRange{Min: 30, Max: 30}
	if err := p.Validate(); !errors.Is(err, ErrAgeRangeInvalid) {
		t.Errorf("Expected ErrAgeRangeInvalid, got %v", err)
	}

	// min > max violates the range invariant
	p.PreferredAgeRange = AgeRange{Min: 40, Max: 30}
	if err := p.Validate(); !errors.Is(err, ErrAgeRangeInvalid) {
		t.Errorf("Expected ErrAgeRangeInvalid, got %v", err)
	}

	// min below the floor
	p.PreferredAgeRange = AgeRange{Min: 17, Max: 30}
	if err := p.Validate(); !errors.Is(err, ErrAgeFloor) {
		t.Errorf("Expected ErrAgeFloor, got %v", err)
	}

	// the range check takes precedence when both invariants are violated
	p.PreferredAgeRange = AgeRange{Min: 17, Max: 16}
	if err := p.Validate(); !errors.Is(err, ErrAgeRangeInvalid) {
		t.Errorf("Expected ErrAgeRangeInvalid, got %v", err)
	}

	// exactly at the floor is fine
	p.PreferredAgeRange = AgeRange{Min: 18, Max: 19}
	if err := p.Validate(); err != nil {
		t.Errorf("Expected no error at the floor boundary, got %v", err)
	}
}

func TestPreferencesValidateSweep(t *testing.T) {
	t.Parallel()

	for min := 0; min <= 60; min++ {
		for max := 0; max <= 60; max += 3 {
			p := DefaultPreferences()
			p.PreferredAgeRange = AgeRange{Min: min, Max: max}
			err := p.Validate()
			switch {
			case min >= max:
				if !errors.Is(err, ErrAgeRangeInvalid) {
					t.Fatalf("(%d,%d): expected ErrAgeRangeInvalid, got %v", min, max, err)
				}
			case min < MinPreferredAge:
				if !errors.Is(err, ErrAgeFloor) {
					t.Fatalf("(%d,%d): expected ErrAgeFloor, got %v", min, max, err)
				}
			default:
				if err != nil {
					t.Fatalf("(%d,%d): expected no error, got %v", min, max, err)
				}
			}
		}
	}
}

func TestDefaultPreferences(t *testing.T) {
	t.Parallel()

	p := DefaultPreferences()
	if err := p.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if p.PreferredAgeRange.Min != 18 || p.PreferredAgeRange.Max != 99 {
		t.Errorf("Expected default range (18, 99), got (%d, %d)",
			p.PreferredAgeRange.Min, p.PreferredAgeRange.Max)
	}
	if len(p.PreferredGenders) != 0 {
		t.Errorf("Expected no default gender restriction, got %v", p.PreferredGenders)
	}
	if p.RelationshipGoal.Kind != GoalFriendship {
		t.Errorf("Expected default goal Friendship, got %v", p.RelationshipGoal.Kind)
	}
}

func TestAgeRangeJSON(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(AgeRange{Min: 21, Max: 34})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(out) != "[21,34]" {
		t.Errorf("Expected [21,34], got %s", out)
	}

	var r AgeRange
	if err := json.Unmarshal([]byte("[18,99]"), &r); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if r.Min != 18 || r.Max != 99 {
		t.Errorf("Expected (18, 99), got (%d, %d)", r.Min, r.Max)
	}

	if err := json.Unmarshal([]byte(`{"min":18}`), &r); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat for object encoding, got %v", err)
	}
}
