package session

import (
	"time"

	"timebridge/models"
)

// Cancellation tier boundaries, inclusive of the higher tier.
const (
	fullRefundHours    = 24.0
	partialRefundHours = 2.0
)

// earlyStartGrace is how far before the scheduled start a provider may start
// a session.
const earlyStartGrace = 15 * time.Minute

// RefundPercentage maps hours-until-start to a refund tier. Exactly 24h
// yields the full tier, exactly 2h the partial tier.
func RefundPercentage(hoursUntilStart float64) int {
	switch {
	case hoursUntilStart >= fullRefundHours:
		return models.RefundFull
	case hoursUntilStart >= partialRefundHours:
		return models.RefundPartial
	default:
		return models.RefundNone
	}
}

func refundMessage(percentage int) string {
	switch percentage {
	case models.RefundFull:
		return "Cancelled more than 24 hours before the session; full refund."
	case models.RefundPartial:
		return "Cancelled between 2 and 24 hours before the session; 50% refund."
	default:
		return "Cancelled less than 2 hours before the session; no refund."
	}
}

// EvaluateCancellation computes the cancellation outcome for a session
// cancelled by actorID at the given instant. Pure; persistence is the
// caller's concern.
func EvaluateCancellation(s *models.Session, actorID, reason string, now time.Time) models.CancellationOutcome {
	status := models.SessionCancelledByRequester
	if actorID == s.ProviderID {
		status = models.SessionCancelledByProvider
	}
	percentage := RefundPercentage(s.ScheduledStart.Sub(now).Hours())
	return models.CancellationOutcome{
		SessionID:        s.ID,
		Status:           status,
		RefundPercentage: percentage,
		Message:          refundMessage(percentage),
		CancelledAt:      now,
		CancelledBy:      actorID,
		Reason:           reason,
	}
}
