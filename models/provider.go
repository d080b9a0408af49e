package models

import (
	"time"
)

// Provider statuses used by eligibility checks.
const (
	ProviderStatusPending   = "pending"
	ProviderStatusApproved  = "approved"
	ProviderStatusSuspended = "suspended"
)

// ProviderProfile carries the public-facing attributes of a provider.
type ProviderProfile struct {
	Name        string  `bson:"name" json:"name"`
	Email       string  `bson:"email" json:"email,omitempty"`
	Headline    string  `bson:"headline" json:"headline,omitempty"`
	Country     string  `bson:"country" json:"country,omitempty"`
	Timezone    string  `bson:"timezone" json:"timezone,omitempty"`
	Rating      float64 `bson:"rating" json:"rating"`           // Average rating between 1 and 5.
	ReviewCount int     `bson:"reviewCount" json:"reviewCount"` // Number of reviews backing the rating.
}

// Provider is one side of a session: the party that declares availability
// and accepts bookings.
type Provider struct {
	ID                string          `bson:"id" json:"id"`
	Profile           ProviderProfile `bson:"profile" json:"profile"`
	Status            string          `bson:"status" json:"status"` // pending | approved | suspended
	Active            bool            `bson:"active" json:"active"`
	AcceptingBookings bool            `bson:"acceptingBookings" json:"acceptingBookings"`

	// Matching attributes.
	Categories       []string `bson:"categories" json:"categories"`             // Requester categories served, e.g. "adult", "child".
	AcceptedLevels   []string `bson:"acceptedLevels" json:"acceptedLevels"`     // Proficiency levels the provider works with.
	Languages        []string `bson:"languages" json:"languages"`               // ISO language codes.
	SpecialNeedsExp  bool     `bson:"specialNeedsExp" json:"specialNeedsExp"`   // Declared special-needs experience.
	BeginnerFriendly bool     `bson:"beginnerFriendly" json:"beginnerFriendly"` // Comfortable with absolute beginners.

	// Pricing.
	FreeOfCharge bool    `bson:"freeOfCharge" json:"freeOfCharge"`
	HourlyRate   float64 `bson:"hourlyRate" json:"hourlyRate"`

	// Booking constraints.
	MinSessionMinutes int `bson:"minSessionMinutes" json:"minSessionMinutes"`
	MaxSessionMinutes int `bson:"maxSessionMinutes" json:"maxSessionMinutes"`

	// Denormalized counters maintained by the stats collaborator.
	BookedSessions    int `bson:"bookedSessions" json:"bookedSessions"`
	CompletedSessions int `bson:"completedSessions" json:"completedSessions"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Bookable reports whether the provider may receive new sessions.
func (p *Provider) Bookable() bool {
	return p.Status == ProviderStatusApproved && p.Active && p.AcceptingBookings
}
