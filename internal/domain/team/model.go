package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a (gender, age group) pairing; the pair is unique across the
// club.
type Team struct {
	ID        string
	Gender    string
	AgeGroup  string
	CreatedAt time.Time
}

// ErrDuplicate marks a create that collides with an existing
// (gender, age group) pair.
var ErrDuplicate = fmt.Errorf("team already exists for gender and age group")

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Gender == "" {
		return fmt.Errorf("team gender is required")
	}
	if t.AgeGroup == "" {
		return fmt.Errorf("team age group is required")
	}

	return nil
}

// Label is the display string the public site renders, e.g. "U13 Boys".
func (t Team) Label() string {
	gender := strings.TrimSpace(t.Gender)
	if gender != "" {
		gender = strings.ToUpper(gender[:1]) + strings.ToLower(gender[1:])
	}
	return strings.TrimSpace(strings.ToUpper(strings.TrimSpace(t.AgeGroup)) + " " + gender)
}
