package sessionRepo

import (
	"context"
	"time"

	"timebridge/models"
)

// OverlapError is returned by CreateIfFree when a concurrent writer won the
// slot. It carries the session that holds the interval.
type OverlapError struct {
	ConflictingSessionID string
}

func (e *OverlapError) Error() string {
	return "session overlaps existing session " + e.ConflictingSessionID
}

// SessionRepository defines methods for session data access. CreateIfFree
// supplies the exclusion guarantee: the conflict recheck and the insert
// commit atomically, so one of two racing writers always fails.
type SessionRepository interface {
	// GetByID retrieves a session by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// ListActiveByProvider returns the provider's SCHEDULED and IN_PROGRESS
	// sessions ordered by scheduled start, optionally excluding one session.
	ListActiveByProvider(ctx context.Context, providerID, excludeID string) ([]models.Session, error)
	// ListActiveInRange returns active sessions whose scheduled window
	// intersects [from, to).
	ListActiveInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Session, error)
	// ListByParticipant returns sessions where the given ID is either side.
	ListByParticipant(ctx context.Context, participantID string) ([]models.Session, error)
	// CreateIfFree inserts the session inside a transaction that rechecks for
	// overlapping active sessions; returns *OverlapError when the interval is
	// already held.
	CreateIfFree(ctx context.Context, session *models.Session) error
	// Update replaces an existing session record.
	Update(ctx context.Context, session *models.Session) error
}
