package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
	"timebridge/services/scheduling"
	"timebridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a new session. The conflict check and the insert are not a
// single read-modify-write here; the repository's transactional insert
// rechecks the interval, so a losing concurrent writer surfaces as Conflict.
func (s *DefaultSessionService) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	requester, err := s.RequesterRepo.GetByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requester: %w", err)
	}
	if requester == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("requester %s not found", input.RequesterID))
	}

	provider, err := s.ProviderRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("provider %s not found", input.ProviderID))
	}
	if !provider.Bookable() {
		return nil, utils.NewForbiddenError("provider is not accepting bookings")
	}

	if input.DurationMinutes <= 0 {
		return nil, utils.NewBadRequestError("duration must be positive")
	}
	if provider.MinSessionMinutes > 0 && input.DurationMinutes < provider.MinSessionMinutes {
		return nil, utils.NewBadRequestError(
			fmt.Sprintf("duration below the provider's minimum of %d minutes", provider.MinSessionMinutes))
	}
	if provider.MaxSessionMinutes > 0 && input.DurationMinutes > provider.MaxSessionMinutes {
		return nil, utils.NewBadRequestError(
			fmt.Sprintf("duration above the provider's maximum of %d minutes", provider.MaxSessionMinutes))
	}

	now := s.Clock.Now()
	if !input.Start.After(now) {
		return nil, utils.NewBadRequestError("session start must be in the future")
	}

	check, err := s.Scheduler.CheckAvailability(ctx, input.ProviderID, input.Start, input.DurationMinutes, "")
	if err != nil {
		return nil, err
	}
	if !check.Available {
		if check.ConflictingSessionID != "" {
			return nil, utils.NewConflictError(check.Reason, check.ConflictingSessionID)
		}
		// Availability-window misses are temporal validity failures, like a
		// past start time.
		return nil, utils.NewBadRequestError(check.Reason)
	}

	sess := &models.Session{
		ID:              uuid.New().String(),
		ProviderID:      input.ProviderID,
		RequesterID:     input.RequesterID,
		ScheduledStart:  input.Start,
		ScheduledEnd:    input.Start.Add(time.Duration(input.DurationMinutes) * time.Minute),
		DurationMinutes: input.DurationMinutes,
		Status:          models.SessionScheduled,
		Topic:           input.Topic,
		PaymentIntentID: input.PaymentIntentID,
	}

	if err := s.SessionRepo.CreateIfFree(ctx, sess); err != nil {
		var overlap *sessionRepo.OverlapError
		if errors.As(err, &overlap) {
			return nil, utils.NewConflictError(scheduling.ReasonSessionConflict, overlap.ConflictingSessionID)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.Stats.RecordBooked(ctx, sess.ProviderID, sess.RequesterID); err != nil {
		utils.GetLogger().Error("failed to record booking counters",
			zap.String("sessionID", sess.ID), zap.Error(err))
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(sess); err != nil {
			utils.GetLogger().Warn("failed to schedule session reminder",
				zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}
	return sess, nil
}

// Get fetches a session by ID.
func (s *DefaultSessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.SessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if sess == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
	}
	return sess, nil
}

// ListForParticipant lists sessions where the ID is either side.
func (s *DefaultSessionService) ListForParticipant(ctx context.Context, participantID string) ([]models.Session, error) {
	return s.SessionRepo.ListByParticipant(ctx, participantID)
}

// Start moves a SCHEDULED session to IN_PROGRESS. Provider-only, and at most
// 15 minutes before the scheduled start.
func (s *DefaultSessionService) Start(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actorID != sess.ProviderID {
		return nil, utils.NewForbiddenError("only the provider may start a session")
	}
	if sess.Status != models.SessionScheduled {
		return nil, utils.NewForbiddenError(
			fmt.Sprintf("cannot start a session in state %s", sess.Status))
	}
	now := s.Clock.Now()
	if now.Before(sess.ScheduledStart.Add(-earlyStartGrace)) {
		return nil, utils.NewForbiddenError(
			"sessions may be started no more than 15 minutes before their scheduled start")
	}

	sess.Status = models.SessionInProgress
	sess.StartedAt = &now
	if err := s.SessionRepo.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return sess, nil
}

// Complete finishes a session. Provider-only; an explicit Start is optional,
// so both SCHEDULED and IN_PROGRESS complete.
func (s *DefaultSessionService) Complete(ctx context.Context, sessionID, actorID, notes string) (*models.Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actorID != sess.ProviderID {
		return nil, utils.NewForbiddenError("only the provider may complete a session")
	}
	if sess.Status != models.SessionScheduled && sess.Status != models.SessionInProgress {
		return nil, utils.NewForbiddenError(
			fmt.Sprintf("cannot complete a session in state %s", sess.Status))
	}

	now := s.Clock.Now()
	sess.Status = models.SessionCompleted
	sess.CompletedAt = &now
	sess.Notes = notes
	if err := s.SessionRepo.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	if err := s.Stats.RecordCompleted(ctx, sess.ProviderID, sess.RequesterID); err != nil {
		utils.GetLogger().Error("failed to record completion counters",
			zap.String("sessionID", sess.ID), zap.Error(err))
	}
	return sess, nil
}

// Cancel cancels a SCHEDULED session for either participant and computes the
// refund tier. The percentage is handed to the payment collaborator by the
// caller; no money moves here.
func (s *DefaultSessionService) Cancel(ctx context.Context, sessionID, actorID, reason string) (*models.CancellationOutcome, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actorID != sess.ProviderID && actorID != sess.RequesterID {
		return nil, utils.NewForbiddenError("only a session participant may cancel it")
	}
	if sess.Status != models.SessionScheduled {
		return nil, utils.NewForbiddenError(
			fmt.Sprintf("cannot cancel a session in state %s", sess.Status))
	}
	if reason == "" {
		return nil, utils.NewBadRequestError("a cancellation reason is required")
	}

	outcome := EvaluateCancellation(sess, actorID, reason, s.Clock.Now())
	sess.Status = outcome.Status
	sess.CancelledAt = &outcome.CancelledAt
	sess.CancelledBy = outcome.CancelledBy
	sess.CancelReason = outcome.Reason
	if err := s.SessionRepo.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}
	return &outcome, nil
}

// MarkNoShow records an absent participant. The detection trigger lives
// outside this core; the transition guard lives here.
func (s *DefaultSessionService) MarkNoShow(ctx context.Context, sessionID, absentParticipantID string) (*models.Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if absentParticipantID != sess.ProviderID && absentParticipantID != sess.RequesterID {
		return nil, utils.NewBadRequestError("absent party must be a session participant")
	}
	if sess.Status != models.SessionScheduled && sess.Status != models.SessionInProgress {
		return nil, utils.NewForbiddenError(
			fmt.Sprintf("cannot mark a no-show on a session in state %s", sess.Status))
	}

	if absentParticipantID == sess.ProviderID {
		sess.Status = models.SessionNoShowProvider
	} else {
		sess.Status = models.SessionNoShowRequester
	}
	if err := s.SessionRepo.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to mark no-show: %w", err)
	}
	return sess, nil
}
