package availabilityRepo

import (
	"context"

	"timebridge/models"
)

// AvailabilityRepository defines methods for availability window data access.
// Windows are owned and mutated only by their provider.
type AvailabilityRepository interface {
	// GetByID retrieves a window by its unique ID.
	GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error)
	// ListByProvider returns all windows declared by a provider.
	ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	// ListForDay returns the enabled windows applying to a weekday/date pair,
	// i.e. recurring windows on that weekday plus one-off windows on that date.
	ListForDay(ctx context.Context, providerID string, weekday int, date string) ([]models.AvailabilityWindow, error)
	// Create inserts a new window.
	Create(ctx context.Context, window *models.AvailabilityWindow) error
	// Update replaces an existing window.
	Update(ctx context.Context, window *models.AvailabilityWindow) error
	// Delete removes a window by ID, scoped to its owning provider.
	Delete(ctx context.Context, providerID, id string) error
}
