package models

import "time"

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionScheduled            SessionStatus = "SCHEDULED"
	SessionInProgress           SessionStatus = "IN_PROGRESS"
	SessionCompleted            SessionStatus = "COMPLETED"
	SessionCancelledByProvider  SessionStatus = "CANCELLED_BY_PROVIDER"
	SessionCancelledByRequester SessionStatus = "CANCELLED_BY_REQUESTER"
	SessionNoShowProvider       SessionStatus = "NO_SHOW_PROVIDER"
	SessionNoShowRequester      SessionStatus = "NO_SHOW_REQUESTER"
)

// Terminal reports whether the status is final; terminal sessions never
// transition again.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionCompleted,
		SessionCancelledByProvider,
		SessionCancelledByRequester,
		SessionNoShowProvider,
		SessionNoShowRequester:
		return true
	}
	return false
}

// Session is a confirmed time-boxed booking between a provider and a requester.
type Session struct {
	ID              string        `bson:"id" json:"id"`
	ProviderID      string        `bson:"provider_id" json:"providerId"`
	RequesterID     string        `bson:"requester_id" json:"requesterId"`
	ScheduledStart  time.Time     `bson:"scheduled_start" json:"scheduledStart"`
	ScheduledEnd    time.Time     `bson:"scheduled_end" json:"scheduledEnd"` // Always ScheduledStart + duration.
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	Status          SessionStatus `bson:"status" json:"status"`
	Topic           string        `bson:"topic,omitempty" json:"topic,omitempty"`
	PaymentIntentID string        `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"` // Outcome notes set on completion.

	StartedAt    *time.Time `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt  *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy  string     `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CancelReason string     `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Overlaps reports whether the session's scheduled window intersects the
// half-open interval [start, end).
func (s *Session) Overlaps(start, end time.Time) bool {
	return start.Before(s.ScheduledEnd) && end.After(s.ScheduledStart)
}
