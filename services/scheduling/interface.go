package scheduling

import (
	"context"
	"time"

	availabilityRepo "timebridge/database/repository/availability"
	providerRepo "timebridge/database/repository/provider"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
	"timebridge/utils"
)

// SchedulingService resolves booking conflicts against declared availability
// and existing sessions, and manages the provider's availability windows.
type SchedulingService interface {
	// CheckAvailability decides whether [start, start+duration) is bookable
	// for the provider. A negative result is a normal return value; an error
	// is returned only for absent providers or repository failures.
	CheckAvailability(ctx context.Context, providerID string, start time.Time, durationMinutes int, excludeSessionID string) (models.AvailabilityCheckResult, error)
	// GetAvailableSlots generates the bookable (start, end) pairs for a
	// provider on a date that can hold the requested duration.
	GetAvailableSlots(ctx context.Context, providerID string, date time.Time, durationMinutes int) ([]models.SlotRange, error)

	// Availability window CRUD, provider-owned.
	ListWindows(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	CreateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, providerID, windowID string) error
}

// DefaultSchedulingService is the concrete implementation.
type DefaultSchedulingService struct {
	ProviderRepo providerRepo.ProviderRepository
	SessionRepo  sessionRepo.SessionRepository
	WindowRepo   availabilityRepo.AvailabilityRepository
	Clock        utils.Clock
}
