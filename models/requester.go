package models

import "time"

// RequesterProfile carries the attributes of a requester used for matching.
type RequesterProfile struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email,omitempty"`
	Country  string `bson:"country" json:"country,omitempty"`
	Timezone string `bson:"timezone" json:"timezone,omitempty"`
}

// Requester is the booking side of a session.
type Requester struct {
	ID           string           `bson:"id" json:"id"`
	Profile      RequesterProfile `bson:"profile" json:"profile"`
	Category     string           `bson:"category" json:"category"` // e.g. "adult", "child".
	Level        string           `bson:"level" json:"level"`       // Proficiency level, "beginner" is the lowest.
	SpecialNeeds bool             `bson:"specialNeeds" json:"specialNeeds"`
	Languages    []string         `bson:"languages" json:"languages"`

	// Denormalized counters maintained by the stats collaborator.
	BookedSessions    int `bson:"bookedSessions" json:"bookedSessions"`
	CompletedSessions int `bson:"completedSessions" json:"completedSessions"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// LevelBeginner is the lowest proficiency level.
const LevelBeginner = "beginner"
