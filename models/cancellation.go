package models

import "time"

// Refund tiers produced by the cancellation policy.
const (
	RefundFull    = 100
	RefundPartial = 50
	RefundNone    = 0
)

// CancellationOutcome is the computed result of cancelling a session. The
// refund percentage is handed to the payment collaborator by the caller;
// no money moves in this core.
type CancellationOutcome struct {
	SessionID        string        `json:"sessionId"`
	Status           SessionStatus `json:"status"`
	RefundPercentage int           `json:"refundPercentage"`
	Message          string        `json:"message"`
	CancelledAt      time.Time     `json:"cancelledAt"`
	CancelledBy      string        `json:"cancelledBy"`
	Reason           string        `json:"reason"`
}
