package providerRepo

import (
	"context"

	"timebridge/models"
)

// ProviderSearchCriteria is the closed filter set for eligible-pool queries.
// Zero values are ignored.
type ProviderSearchCriteria struct {
	Category  string
	FreeOnly  bool
	MinRating float64
	MaxRate   *float64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByIDs retrieves the providers whose IDs appear in ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.Provider, error)
	// FindEligible returns approved, active providers that accept bookings
	// and satisfy the criteria.
	FindEligible(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// Update replaces an existing provider record.
	Update(ctx context.Context, provider *models.Provider) error
	// IncrementSessionCounters adds the given deltas to the denormalized
	// booked/completed counters.
	IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error
}
