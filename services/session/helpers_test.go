package session

import (
	"context"
	"sort"
	"time"

	providerRepo "timebridge/database/repository/provider"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
)

type fakeSessionRepo struct {
	sessions []models.Session
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) ListActiveByProvider(ctx context.Context, providerID, excludeID string) ([]models.Session, error) {
	var out []models.Session
	for i := range f.sessions {
		s := f.sessions[i]
		if s.ProviderID != providerID || s.ID == excludeID {
			continue
		}
		if s.Status != models.SessionScheduled && s.Status != models.SessionInProgress {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.Before(out[j].ScheduledStart) })
	return out, nil
}

func (f *fakeSessionRepo) ListActiveInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Session, error) {
	active, _ := f.ListActiveByProvider(ctx, providerID, "")
	var out []models.Session
	for i := range active {
		if active[i].Overlaps(from, to) {
			out = append(out, active[i])
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByParticipant(ctx context.Context, participantID string) ([]models.Session, error) {
	var out []models.Session
	for i := range f.sessions {
		s := f.sessions[i]
		if s.ProviderID == participantID || s.RequesterID == participantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) CreateIfFree(ctx context.Context, session *models.Session) error {
	active, _ := f.ListActiveByProvider(ctx, session.ProviderID, session.ID)
	for i := range active {
		if active[i].Overlaps(session.ScheduledStart, session.ScheduledEnd) {
			return &sessionRepo.OverlapError{ConflictingSessionID: active[i].ID}
		}
	}
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *models.Session) error {
	for i := range f.sessions {
		if f.sessions[i].ID == session.ID {
			f.sessions[i] = *session
			return nil
		}
	}
	return nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return f.providers[id], nil
}

func (f *fakeProviderRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	var out []models.Provider
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) FindEligible(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) Update(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error {
	return nil
}

type fakeRequesterRepo struct {
	requesters map[string]*models.Requester
}

func (f *fakeRequesterRepo) GetByID(ctx context.Context, id string) (*models.Requester, error) {
	return f.requesters[id], nil
}

func (f *fakeRequesterRepo) Create(ctx context.Context, r *models.Requester) error { return nil }
func (f *fakeRequesterRepo) Update(ctx context.Context, r *models.Requester) error { return nil }
func (f *fakeRequesterRepo) IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error {
	return nil
}

// fakeScheduler returns a canned availability decision.
type fakeScheduler struct {
	result models.AvailabilityCheckResult
	err    error
}

func (f *fakeScheduler) CheckAvailability(ctx context.Context, providerID string, start time.Time, durationMinutes int, excludeSessionID string) (models.AvailabilityCheckResult, error) {
	return f.result, f.err
}

func (f *fakeScheduler) GetAvailableSlots(ctx context.Context, providerID string, date time.Time, durationMinutes int) ([]models.SlotRange, error) {
	return nil, nil
}

func (f *fakeScheduler) ListWindows(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	return nil, nil
}

func (f *fakeScheduler) CreateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	return &window, nil
}

func (f *fakeScheduler) UpdateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	return &window, nil
}

func (f *fakeScheduler) DeleteWindow(ctx context.Context, providerID, windowID string) error {
	return nil
}

type fakeStats struct {
	booked    int
	completed int
}

func (f *fakeStats) RecordBooked(ctx context.Context, providerID, requesterID string) error {
	f.booked++
	return nil
}

func (f *fakeStats) RecordCompleted(ctx context.Context, providerID, requesterID string) error {
	f.completed++
	return nil
}

type fakeReminders struct {
	scheduled []string
}

func (f *fakeReminders) ScheduleSessionReminder(session *models.Session) error {
	f.scheduled = append(f.scheduled, session.ID)
	return nil
}
