package matching

import (
	"context"

	providerRepo "timebridge/database/repository/provider"
	"timebridge/models"
)

type fakeProviderRepo struct {
	providers []models.Provider
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].ID == id {
			p := f.providers[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	var out []models.Provider
	for _, id := range ids {
		if p, _ := f.GetByID(ctx, id); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) FindEligible(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	var out []models.Provider
	for i := range f.providers {
		p := f.providers[i]
		if !p.Bookable() {
			continue
		}
		if criteria.Category != "" && !containsFold(p.Categories, criteria.Category) {
			continue
		}
		if criteria.FreeOnly && !p.FreeOfCharge {
			continue
		}
		if criteria.MinRating > 0 && p.Profile.Rating < criteria.MinRating {
			continue
		}
		if criteria.MaxRate != nil && !p.FreeOfCharge && p.HourlyRate > *criteria.MaxRate {
			continue
		}
		out = append(out, p)
	}
	return out, nil
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

// idealProvider matches testRequester on every factor.
func idealProvider(id string) models.Provider {
	return models.Provider{
		ID: id,
		Profile: models.ProviderProfile{
			Name:        "Provider " + id,
			Country:     "FR",
			Timezone:    "Europe/Paris",
			Rating:      4.8,
			ReviewCount: 40,
		},
		Status:            models.ProviderStatusApproved,
		Active:            true,
		AcceptingBookings: true,
		Categories:        []string{"adult"},
		AcceptedLevels:    []string{"beginner", "intermediate"},
		Languages:         []string{"fr", "ar", "en"},
		SpecialNeedsExp:   true,
		BeginnerFriendly:  true,
		FreeOfCharge:      true,
	}
}

func testRequester() *models.Requester {
	return &models.Requester{
		ID: "req-1",
		Profile: models.RequesterProfile{
			Country:  "FR",
			Timezone: "Europe/Paris",
		},
		Category:  "adult",
		Level:     "beginner",
		Languages: []string{"fr", "ar"},
	}
}

func newMatchingService(requester *models.Requester, providers ...models.Provider) *DefaultMatchingService {
	return &DefaultMatchingService{
		ProviderRepo:  &fakeProviderRepo{providers: providers},
		RequesterRepo: &fakeRequesterRepo{requesters: map[string]*models.Requester{requester.ID: requester}},
	}
}
