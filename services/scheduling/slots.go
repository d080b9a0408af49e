package scheduling

import (
	"context"
	"fmt"
	"time"

	"timebridge/models"
	"timebridge/utils"
)

// slotStepMinutes caps the stride between generated candidate starts.
const slotStepMinutes = 30

// GetAvailableSlots computes the bookable slots for a provider on a date.
// Candidates step through each enabled window by min(duration, 30) minutes;
// any candidate colliding with a booked session is dropped.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, providerID string, date time.Time, durationMinutes int) ([]models.SlotRange, error) {
	if durationMinutes <= 0 {
		return nil, utils.NewBadRequestError("duration must be positive")
	}

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
	}

	windows, err := s.WindowRepo.ListForDay(ctx, providerID, int(date.Weekday()), date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	if len(windows) == 0 {
		return nil, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	booked, err := s.SessionRepo.ListActiveInRange(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked sessions: %w", err)
	}

	step := durationMinutes
	if step > slotStepMinutes {
		step = slotStepMinutes
	}

	now := s.Clock.Now()
	var slots []models.SlotRange
	for _, w := range windows {
		for m := w.StartMinute; m+durationMinutes <= w.EndMinute; m += step {
			start := dayStart.Add(time.Duration(m) * time.Minute)
			end := start.Add(time.Duration(durationMinutes) * time.Minute)

			// Skip candidates that already started.
			if !start.After(now) {
				continue
			}

			collides := false
			for i := range booked {
				if booked[i].Overlaps(start, end) {
					collides = true
					break
				}
			}
			if collides {
				continue
			}
			slots = append(slots, models.SlotRange{Start: start, End: end})
		}
	}
	return slots, nil
}
