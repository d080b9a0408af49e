package models

import "time"

// AvailabilityWindow is a recurring or date-specific interval during which a
// provider accepts bookings. Start and End are minutes from midnight; windows
// never span midnight.
type AvailabilityWindow struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"provider_id" json:"providerId"`
	DayOfWeek    int       `bson:"day_of_week" json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday.
	StartMinute  int       `bson:"start_minute" json:"startMinute"`
	EndMinute    int       `bson:"end_minute" json:"endMinute"`
	Recurring    bool      `bson:"recurring" json:"recurring"`
	SpecificDate string    `bson:"specific_date,omitempty" json:"specificDate,omitempty"` // "2006-01-02" when not recurring.
	Enabled      bool      `bson:"enabled" json:"enabled"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt,omitzero"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt,omitzero"`
}

// CoversDay reports whether the window applies to the given weekday/date.
// A recurring window matches its weekday; a one-off window matches only its
// specific date.
func (w *AvailabilityWindow) CoversDay(weekday int, date string) bool {
	if !w.Enabled {
		return false
	}
	if w.Recurring {
		return w.DayOfWeek == weekday
	}
	return w.SpecificDate == date
}

// Contains reports whether [startMinute, endMinute) falls fully inside the window.
func (w *AvailabilityWindow) Contains(startMinute, endMinute int) bool {
	return startMinute >= w.StartMinute && endMinute <= w.EndMinute
}

// AvailabilityCheckResult is the outcome of a conflict check. A negative
// result is a normal value, not an error.
type AvailabilityCheckResult struct {
	Available            bool   `json:"available"`
	Reason               string `json:"reason,omitempty"`
	ConflictingSessionID string `json:"conflictingSessionId,omitempty"`
}

// SlotRange is one bookable (start, end) pair returned by slot generation.
type SlotRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
