package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Decision is one side's opinion about a (profile, project) pair.
// Undecided is the zero value and is distinct from Pass.
type Decision int16

const (
	Undecided Decision = iota
	Like
	Pass
)

func (d Decision) String() string {
	switch d {
	case Like:
		return "LIKE"
	case Pass:
		return "PASS"
	default:
		return "UNDECIDED"
	}
}

// ParseDecision accepts the wire names LIKE and PASS (case-insensitive).
// UNDECIDED cannot be recorded, so it is rejected here too.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIKE":
		return Like, nil
	case "PASS":
		return Pass, nil
	default:
		return Undecided, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Decision) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.EqualFold(s, "UNDECIDED") {
		*d = Undecided
		return nil
	}
	v, err := ParseDecision(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Recordable reports whether a side may set this decision.
func (d Decision) Recordable() bool {
	return d == Like || d == Pass
}

// Side says which party of a swipe is writing.
type Side int

const (
	PersonSide Side = iota + 1
	ProjectSide
)

func (s Side) String() string {
	if s == ProjectSide {
		return "project"
	}
	return "person"
}

type SwipeKey struct {
	ProfileID int64
	ProjectID int64
}

// Swipe holds both sides' decisions for one pair. Version is bumped on
// every write and used for compare-and-set.
type Swipe struct {
	SwipeKey
	PersonDecision  Decision
	ProjectDecision Decision
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsMatch is derived on read, never stored.
func (s Swipe) IsMatch() bool {
	return s.PersonDecision == Like && s.ProjectDecision == Like
}

// Decision returns the decision held by the given side.
func (s Swipe) Decision(side Side) Decision {
	if side == ProjectSide {
		return s.ProjectDecision
	}
	return s.PersonDecision
}

// With returns a copy with side's decision replaced.
func (s Swipe) With(side Side, d Decision) Swipe {
	if side == ProjectSide {
		s.ProjectDecision = d
	} else {
		s.PersonDecision = d
	}
	return s
}

func (s Swipe) State() SwipeState {
	return SwipeState{
		ProfileID:       s.ProfileID,
		ProjectID:       s.ProjectID,
		PersonDecision:  s.PersonDecision,
		ProjectDecision: s.ProjectDecision,
		IsMatch:         s.IsMatch(),
	}
}

type SwipeState struct {
	ProfileID       int64    `json:"profile_id"`
	ProjectID       int64    `json:"project_id"`
	PersonDecision  Decision `json:"person_decision"`
	ProjectDecision Decision `json:"project_decision"`
	IsMatch         bool     `json:"is_match"`
}
