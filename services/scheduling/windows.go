package scheduling

import (
	"context"
	"fmt"
	"time"

	"timebridge/models"
	"timebridge/utils"

	"github.com/google/uuid"
)

// ListWindows returns every window declared by the provider.
func (s *DefaultSchedulingService) ListWindows(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
	}
	return s.WindowRepo.ListByProvider(ctx, providerID)
}

// CreateWindow validates and persists a new availability window. Enabled
// windows for the same provider and weekday must not overlap; the invariant
// is enforced here, at write time.
func (s *DefaultSchedulingService) CreateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	if err := s.validateWindow(ctx, &window, ""); err != nil {
		return nil, err
	}
	window.ID = uuid.New().String()
	if err := s.WindowRepo.Create(ctx, &window); err != nil {
		return nil, fmt.Errorf("failed to create availability window: %w", err)
	}
	return &window, nil
}

// UpdateWindow validates and replaces an existing window.
func (s *DefaultSchedulingService) UpdateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	existing, err := s.WindowRepo.GetByID(ctx, window.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability window: %w", err)
	}
	if existing == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("availability window %s not found", window.ID))
	}
	if existing.ProviderID != window.ProviderID {
		return nil, utils.NewForbiddenError("availability windows may only be modified by their provider")
	}
	if err := s.validateWindow(ctx, &window, window.ID); err != nil {
		return nil, err
	}
	if err := s.WindowRepo.Update(ctx, &window); err != nil {
		return nil, fmt.Errorf("failed to update availability window: %w", err)
	}
	return &window, nil
}

// DeleteWindow removes a window owned by the provider.
func (s *DefaultSchedulingService) DeleteWindow(ctx context.Context, providerID, windowID string) error {
	existing, err := s.WindowRepo.GetByID(ctx, windowID)
	if err != nil {
		return fmt.Errorf("failed to fetch availability window: %w", err)
	}
	if existing == nil {
		return utils.NewNotFoundError(fmt.Sprintf("availability window %s not found", windowID))
	}
	if existing.ProviderID != providerID {
		return utils.NewForbiddenError("availability windows may only be deleted by their provider")
	}
	return s.WindowRepo.Delete(ctx, providerID, windowID)
}

// validateWindow checks shape and the write-time no-overlap invariant.
// excludeID skips the window itself on updates.
func (s *DefaultSchedulingService) validateWindow(ctx context.Context, window *models.AvailabilityWindow, excludeID string) error {
	provider, err := s.ProviderRepo.GetByID(ctx, window.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return utils.NewNotFoundError(fmt.Sprintf("provider %s not found", window.ProviderID))
	}

	if window.StartMinute < 0 || window.EndMinute > 24*60 {
		return utils.NewBadRequestError("window must fall within a single day")
	}
	if window.StartMinute >= window.EndMinute {
		return utils.NewBadRequestError("window start must be before its end")
	}
	if window.Recurring {
		if window.DayOfWeek < 0 || window.DayOfWeek > 6 {
			return utils.NewBadRequestError("dayOfWeek must be between 0 and 6")
		}
		window.SpecificDate = ""
	} else {
		date, err := time.Parse(dateLayout, window.SpecificDate)
		if err != nil {
			return utils.NewBadRequestError("one-off windows require a specificDate in YYYY-MM-DD form")
		}
		window.DayOfWeek = int(date.Weekday())
	}

	if !window.Enabled {
		return nil
	}

	existing, err := s.WindowRepo.ListByProvider(ctx, window.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	for i := range existing {
		other := &existing[i]
		if other.ID == excludeID || !other.Enabled || other.DayOfWeek != window.DayOfWeek {
			continue
		}
		// One-off windows only clash on the same date.
		if !window.Recurring && !other.Recurring && other.SpecificDate != window.SpecificDate {
			continue
		}
		if window.StartMinute < other.EndMinute && window.EndMinute > other.StartMinute {
			return utils.NewConflictError(
				fmt.Sprintf("window overlaps existing window %s on the same day", other.ID), "")
		}
	}
	return nil
}
