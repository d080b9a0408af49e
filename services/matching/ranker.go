package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	providerRepo "timebridge/database/repository/provider"
	requesterRepo "timebridge/database/repository/requester"
	"timebridge/models"
	"timebridge/utils"

	"github.com/go-redis/redis/v8"
)

// Candidates below this score are never returned.
const minMatchScore = 20

// Result list limits.
const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50
)

// matchCacheTTL bounds staleness of cached rankings.
const matchCacheTTL = 5 * time.Minute

// MatchingService scores and ranks providers against a requester.
type MatchingService interface {
	// ScoreCompatibility scores a single provider/requester pair.
	ScoreCompatibility(ctx context.Context, providerID, requesterID string, prefs models.MatchPreferences) (*models.CompatibilityResult, error)
	// RankMatches scores the eligible pool and returns the ranked survivors.
	RankMatches(ctx context.Context, requesterID string, prefs models.MatchPreferences) ([]models.RankedMatch, error)
	// RankSpecific ranks an explicit candidate list without the eligibility
	// pre-filter.
	RankSpecific(ctx context.Context, requesterID string, candidateIDs []string, prefs models.MatchPreferences) ([]models.RankedMatch, error)
}

// DefaultMatchingService is the concrete implementation.
type DefaultMatchingService struct {
	ProviderRepo  providerRepo.ProviderRepository
	RequesterRepo requesterRepo.RequesterRepository
	CacheClient   *redis.Client // Optional; nil disables result caching.
}

// ScoreCompatibility fetches both profiles and runs the pure scorer.
func (s *DefaultMatchingService) ScoreCompatibility(ctx context.Context, providerID, requesterID string, prefs models.MatchPreferences) (*models.CompatibilityResult, error) {
	requester, err := s.getRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("provider %s not found", providerID))
	}
	result := Score(provider, requester, prefs)
	return &result, nil
}

// RankMatches retrieves the eligible pool, ranks it, and caches the result.
// It first attempts to serve from cache; a miss computes and stores.
func (s *DefaultMatchingService) RankMatches(ctx context.Context, requesterID string, prefs models.MatchPreferences) ([]models.RankedMatch, error) {
	requester, err := s.getRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(requesterID, prefs)
	if s.CacheClient != nil {
		cached, err := s.CacheClient.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var matches []models.RankedMatch
			if err := json.Unmarshal([]byte(cached), &matches); err == nil {
				return matches, nil
			}
			// If unmarshal fails, fall through to re-computation.
		}
	}

	category := prefs.Category
	if category == "" {
		category = requester.Category
	}
	criteria := providerRepo.ProviderSearchCriteria{
		Category:  category,
		FreeOnly:  prefs.FreeOnly,
		MinRating: prefs.MinRating,
		MaxRate:   prefs.MaxBudget,
	}
	pool, err := s.ProviderRepo.FindEligible(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve eligible providers: %w", err)
	}

	matches := rankPool(pool, requester, prefs)

	if s.CacheClient != nil {
		if b, err := json.Marshal(matches); err == nil {
			s.CacheClient.Set(ctx, cacheKey, b, matchCacheTTL)
		}
	}
	return matches, nil
}

// RankSpecific ranks an explicit candidate list. Candidates skip the
// eligibility pre-filter but still pass the caller's hard pre-filters.
func (s *DefaultMatchingService) RankSpecific(ctx context.Context, requesterID string, candidateIDs []string, prefs models.MatchPreferences) ([]models.RankedMatch, error) {
	requester, err := s.getRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(candidateIDs) == 0 {
		return []models.RankedMatch{}, nil
	}
	pool, err := s.ProviderRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve candidates: %w", err)
	}
	return rankPool(pool, requester, prefs), nil
}

func (s *DefaultMatchingService) getRequester(ctx context.Context, requesterID string) (*models.Requester, error) {
	requester, err := s.RequesterRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requester: %w", err)
	}
	if requester == nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("requester %s not found", requesterID))
	}
	return requester, nil
}

// cacheKey derives a cache key from the requester and preferences, following
// the JSON-representation scheme used for match caching.
func (s *DefaultMatchingService) cacheKey(requesterID string, prefs models.MatchPreferences) string {
	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Sprintf("match:%s", requesterID)
	}
	return fmt.Sprintf("match:%s:%x", requesterID, b)
}

// rankPool applies the hard pre-filters, scores the survivors, discards
// low scores, and sorts descending. Ties keep pool order (stable sort).
func rankPool(pool []models.Provider, requester *models.Requester, prefs models.MatchPreferences) []models.RankedMatch {
	limit := prefs.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}

	matches := make([]models.RankedMatch, 0, len(pool))
	for i := range pool {
		p := &pool[i]
		if prefs.FreeOnly && !p.FreeOfCharge {
			continue
		}
		if prefs.MinRating > 0 && p.Profile.Rating < prefs.MinRating {
			continue
		}
		if prefs.MaxBudget != nil && !p.FreeOfCharge && p.HourlyRate > *prefs.MaxBudget {
			continue
		}

		result := Score(p, requester, prefs)
		if result.Score < minMatchScore {
			continue
		}
		matches = append(matches, models.RankedMatch{Provider: p.Summary(), Result: result})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Score > matches[j].Result.Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
