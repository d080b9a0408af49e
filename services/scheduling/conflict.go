package scheduling

import (
	"context"
	"fmt"
	"time"

	"timebridge/models"
	"timebridge/utils"
)

const dateLayout = "2006-01-02"

// Reasons reported by negative availability checks.
const (
	ReasonSessionConflict = "conflicts with an existing session"
	ReasonNoWindow        = "provider is not available on this day"
	ReasonOutsideWindow   = "requested time falls outside the provider's availability window"
	ReasonCrossMidnight   = "sessions may not span midnight"
)

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CheckAvailability decides bookable/not for the candidate interval. Session
// conflicts are checked before window containment so the caller learns about
// the concrete collision first.
func (s *DefaultSchedulingService) CheckAvailability(ctx context.Context, providerID string, start time.Time, durationMinutes int, excludeSessionID string) (models.AvailabilityCheckResult, error) {
	if durationMinutes <= 0 {
		return models.AvailabilityCheckResult{}, utils.NewBadRequestError("duration must be positive")
	}

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return models.AvailabilityCheckResult{}, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return models.AvailabilityCheckResult{}, utils.NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	startMinute := minuteOfDay(start)
	endMinute := startMinute + durationMinutes
	if endMinute > 24*60 {
		return models.AvailabilityCheckResult{Available: false, Reason: ReasonCrossMidnight}, nil
	}

	// Existing sessions first. The repository returns them ordered by
	// scheduled start, so the first hit is the earliest conflict.
	active, err := s.SessionRepo.ListActiveByProvider(ctx, providerID, excludeSessionID)
	if err != nil {
		return models.AvailabilityCheckResult{}, fmt.Errorf("failed to fetch active sessions: %w", err)
	}
	for i := range active {
		if active[i].Overlaps(start, end) {
			return models.AvailabilityCheckResult{
				Available:            false,
				Reason:               ReasonSessionConflict,
				ConflictingSessionID: active[i].ID,
			}, nil
		}
	}

	// Then declared availability.
	windows, err := s.WindowRepo.ListForDay(ctx, providerID, int(start.Weekday()), start.Format(dateLayout))
	if err != nil {
		return models.AvailabilityCheckResult{}, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	if len(windows) == 0 {
		return models.AvailabilityCheckResult{Available: false, Reason: ReasonNoWindow}, nil
	}
	for i := range windows {
		if windows[i].Contains(startMinute, endMinute) {
			return models.AvailabilityCheckResult{Available: true}, nil
		}
	}
	return models.AvailabilityCheckResult{Available: false, Reason: ReasonOutsideWindow}, nil
}
