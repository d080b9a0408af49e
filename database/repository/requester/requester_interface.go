package requesterRepo

import (
	"context"

	"timebridge/models"
)

// RequesterRepository defines methods for requester data access.
type RequesterRepository interface {
	// GetByID retrieves a requester by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Requester, error)
	// Create inserts a new requester record.
	Create(ctx context.Context, requester *models.Requester) error
	// Update replaces an existing requester record.
	Update(ctx context.Context, requester *models.Requester) error
	// IncrementSessionCounters adds the given deltas to the denormalized
	// booked/completed counters.
	IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error
}
