package session

import (
	"context"
	"time"

	providerRepo "timebridge/database/repository/provider"
	requesterRepo "timebridge/database/repository/requester"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
	"timebridge/services/scheduling"
	"timebridge/services/stats"
	"timebridge/services/tasks"
	"timebridge/utils"
)

// CreateSessionInput is the validated booking request.
type CreateSessionInput struct {
	RequesterID     string    `json:"requesterId"`
	ProviderID      string    `json:"providerId"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
	Topic           string    `json:"topic,omitempty"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
}

// SessionService is the lifecycle state machine for sessions. Every
// transition is guarded; terminal states never transition again.
type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	ListForParticipant(ctx context.Context, participantID string) ([]models.Session, error)
	Start(ctx context.Context, sessionID, actorID string) (*models.Session, error)
	Complete(ctx context.Context, sessionID, actorID, notes string) (*models.Session, error)
	Cancel(ctx context.Context, sessionID, actorID, reason string) (*models.CancellationOutcome, error)
	MarkNoShow(ctx context.Context, sessionID, absentParticipantID string) (*models.Session, error)
}

// DefaultSessionService is the concrete implementation.
type DefaultSessionService struct {
	SessionRepo   sessionRepo.SessionRepository
	ProviderRepo  providerRepo.ProviderRepository
	RequesterRepo requesterRepo.RequesterRepository
	Scheduler     scheduling.SchedulingService
	Stats         stats.ProfileStats
	Reminders     tasks.ReminderScheduler // Optional; nil disables reminders.
	Clock         utils.Clock
}
