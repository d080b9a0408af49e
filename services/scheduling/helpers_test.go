package scheduling

import (
	"context"
	"sort"
	"time"

	providerRepo "timebridge/database/repository/provider"
	sessionRepo "timebridge/database/repository/session"
	"timebridge/models"
	"timebridge/utils"
)

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

type fakeWindowRepo struct {
	windows []models.AvailabilityWindow
}

func (f *fakeWindowRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	for i := range f.windows {
		if f.windows[i].ID == id {
			w := f.windows[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeWindowRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for i := range f.windows {
		if f.windows[i].ProviderID == providerID {
			out = append(out, f.windows[i])
		}
	}
	return out, nil
}

func (f *fakeWindowRepo) ListForDay(ctx context.Context, providerID string, weekday int, date string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for i := range f.windows {
		w := f.windows[i]
		if w.ProviderID == providerID && w.CoversDay(weekday, date) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	f.windows = append(f.windows, *window)
	return nil
}

func (f *fakeWindowRepo) Update(ctx context.Context, window *models.AvailabilityWindow) error {
	for i := range f.windows {
		if f.windows[i].ID == window.ID {
			f.windows[i] = *window
			return nil
		}
	}
	return nil
}

func (f *fakeWindowRepo) Delete(ctx context.Context, providerID, id string) error {
	for i := range f.windows {
		if f.windows[i].ID == id && f.windows[i].ProviderID == providerID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return nil
}

func approvedProvider(id string) *models.Provider {
	return &models.Provider{
		ID:                id,
		Status:            models.ProviderStatusApproved,
		Active:            true,
		AcceptingBookings: true,
	}
}

func newTestService(now time.Time, providers ...*models.Provider) (*DefaultSchedulingService, *fakeSessionRepo, *fakeWindowRepo) {
	pr := &fakeProviderRepo{providers: map[string]*models.Provider{}}
	for _, p := range providers {
		pr.providers[p.ID] = p
	}
	sr := &fakeSessionRepo{}
	wr := &fakeWindowRepo{}
	svc := &DefaultSchedulingService{
		ProviderRepo: pr,
		SessionRepo:  sr,
		WindowRepo:   wr,
		Clock:        &utils.FrozenClock{Current: now},
	}
	return svc, sr, wr
}
