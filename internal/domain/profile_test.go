package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func testProfile(id uint64) Profile {
	return Profile{
		ID:     id,
		Name:   "Alice",
		Age:    29,
		Gender: NewGender(GenderFemale),
		Location: Location{
			City:    "Lisbon",
			Country: "Portugal",
		},
		Interests: []string{"hiking", "jazz"},
		Preferences: Preferences{
			PreferredAgeRange: AgeRange{Min: 25, Max: 40},
			PreferredGenders:  []Gender{NewGender(GenderMale), NewGender(GenderNonBinary)},
			RelationshipGoal:  NewRelationshipGoal(GoalSerious),
		},
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	if err := testProfile(1).Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	p := testProfile(1)
	p.Name = ""
	if err := p.Validate(); !errors.Is(err, ErrProfileNameEmpty) {
		t.Errorf("Expected ErrProfileNameEmpty, got %v", err)
	}

	p = testProfile(1)
	p.Age = -1
	if err := p.Validate(); !errors.Is(err, ErrProfileAgeNegative) {
		t.Errorf("Expected ErrProfileAgeNegative, got %v", err)
	}

	p = testProfile(1)
	p.Gender = Gender{Kind: "Unknown"}
	if err := p.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}

	// embedded preferences participate in validation
	p = testProfile(1)
	p.Preferences.PreferredAgeRange = AgeRange{Min: 16, Max: 30}
	if err := p.Validate(); !errors.Is(err, ErrAgeFloor) {
		t.Errorf("Expected ErrAgeFloor, got %v", err)
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	t.Parallel()

	p := testProfile(7)
	p.Gender = NewGenderOther("questioning")

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var back Profile
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if back.ID != p.ID || back.Name != p.Name || back.Age != p.Age {
		t.Errorf("Round trip changed identity fields: %+v vs %+v", back, p)
	}
	if back.Gender != p.Gender {
		t.Errorf("Round trip changed gender: %v vs %v", back.Gender, p.Gender)
	}
	if back.Preferences.PreferredAgeRange != p.Preferences.PreferredAgeRange {
		t.Errorf("Round trip changed age range: %v vs %v",
			back.Preferences.PreferredAgeRange, p.Preferences.PreferredAgeRange)
	}
	if back.Location != p.Location {
		t.Errorf("Round trip changed location: %v vs %v", back.Location, p.Location)
	}
}
