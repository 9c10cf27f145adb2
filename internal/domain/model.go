package domain

import "time"

// Profile is the matching-side view of a person: what they offer (skills)
// and what kind of projects they want (categories).
type Profile struct {
	ID          int64    `json:"id"`
	FirebaseUID string   `json:"-"`
	DisplayName string   `json:"name"`
	Summary     string   `json:"summary"`
	Location    string   `json:"location"`
	ImagePath   string   `json:"image_path,omitempty"`
	Skills      []string `json:"skills"`
	Categories  []string `json:"categories"`
}

// Project is owned by exactly one profile; OwnerID never changes after creation.
type Project struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner"`
	Name       string    `json:"name"`
	Summary    string    `json:"summary"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedOn  time.Time `json:"date_created"`
	Skills     []string  `json:"skills"`
	Categories []string  `json:"categories"`
}

// ProjectInput carries the writable fields of a project. Skills and
// Categories are tag names, reconciled before the write.
type ProjectInput struct {
	Name       string
	Summary    string
	ImagePath  string
	Skills     []string
	Categories []string
}

// ProfileInput carries the writable fields of a profile.
type ProfileInput struct {
	Summary    string
	Location   string
	ImagePath  string
	Skills     []string
	Categories []string
}

// UpsertProfile identifies the caller when a profile is ensured at login.
type UpsertProfile struct {
	FirebaseUID string
	DisplayName string
}
