package stats

import (
	"context"
	"fmt"

	providerRepo "timebridge/database/repository/provider"
	requesterRepo "timebridge/database/repository/requester"
)

// ProfileStats increments the denormalized session counters on both
// participants. Called exactly once per create and per complete.
type ProfileStats interface {
	RecordBooked(ctx context.Context, providerID, requesterID string) error
	RecordCompleted(ctx context.Context, providerID, requesterID string) error
}

// DefaultProfileStats writes counters through the profile repositories.
type DefaultProfileStats struct {
	ProviderRepo  providerRepo.ProviderRepository
	RequesterRepo requesterRepo.RequesterRepository
}

func (s *DefaultProfileStats) RecordBooked(ctx context.Context, providerID, requesterID string) error {
	if err := s.ProviderRepo.IncrementSessionCounters(ctx, providerID, 1, 0); err != nil {
		return fmt.Errorf("failed to record provider booking: %w", err)
	}
	if err := s.RequesterRepo.IncrementSessionCounters(ctx, requesterID, 1, 0); err != nil {
		return fmt.Errorf("failed to record requester booking: %w", err)
	}
	return nil
}

func (s *DefaultProfileStats) RecordCompleted(ctx context.Context, providerID, requesterID string) error {
	if err := s.ProviderRepo.IncrementSessionCounters(ctx, providerID, 0, 1); err != nil {
		return fmt.Errorf("failed to record provider completion: %w", err)
	}
	if err := s.RequesterRepo.IncrementSessionCounters(ctx, requesterID, 0, 1); err != nil {
		return fmt.Errorf("failed to record requester completion: %w", err)
	}
	return nil
}
