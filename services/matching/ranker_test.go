package matching

import (
	"context"
	"fmt"
	"testing"

	"timebridge/models"
	"timebridge/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankMatchesOrdersByScore(t *testing.T) {
	strong := idealProvider("prov-strong")

	middling := idealProvider("prov-middling")
	middling.Languages = []string{"fr"}
	middling.Profile.Rating = 3.6
	middling.SpecialNeedsExp = false

	weak := idealProvider("prov-weak")
	weak.Languages = nil
	weak.Profile.Country = "JP"
	weak.Profile.Timezone = "Asia/Tokyo"
	weak.Profile.Rating = 2.1

	svc := newMatchingService(testRequester(), weak, strong, middling)
	matches, err := svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{
		Languages:    []string{"fr", "ar"},
		SpecialNeeds: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "prov-strong", matches[0].Provider.ID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Result.Score, matches[i].Result.Score)
	}
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Result.Score, minMatchScore)
	}
}

func TestRankMatchesDropsScoresBelowFloor(t *testing.T) {
	requester := testRequester()
	requester.Category = "" // no category signal for anyone

	good := idealProvider("prov-good")
	good.Languages = []string{"de"}

	bad := models.Provider{
		ID:                "prov-bad",
		Profile:           models.ProviderProfile{Rating: 2.0, ReviewCount: 5},
		Status:            models.ProviderStatusApproved,
		Active:            true,
		AcceptingBookings: true,
		AcceptedLevels:    []string{"advanced"},
		Languages:         []string{"en"},
		HourlyRate:        50,
		FreeOfCharge:      false,
	}

	svc := newMatchingService(requester, good, bad)
	matches, err := svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{
		Languages:    []string{"de"},
		SpecialNeeds: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "prov-good", matches[0].Provider.ID)
}

func TestRankMatchesLimits(t *testing.T) {
	var pool []models.Provider
	for i := 0; i < 60; i++ {
		pool = append(pool, idealProvider(fmt.Sprintf("prov-%02d", i)))
	}
	svc := newMatchingService(testRequester(), pool...)

	matches, err := svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{})
	require.NoError(t, err)
	assert.Len(t, matches, defaultMatchLimit)

	matches, err = svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	matches, err = svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, matches, maxMatchLimit)
}

func TestRankMatchesHardFilters(t *testing.T) {
	free := idealProvider("prov-free")

	cheap := idealProvider("prov-cheap")
	cheap.FreeOfCharge = false
	cheap.HourlyRate = 15

	pricey := idealProvider("prov-pricey")
	pricey.FreeOfCharge = false
	pricey.HourlyRate = 90

	lowRated := idealProvider("prov-low-rated")
	lowRated.Profile.Rating = 3.0

	svc := newMatchingService(testRequester(), free, cheap, pricey, lowRated)

	matches, err := svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{FreeOnly: true})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "prov-free", matches[0].Provider.ID)

	budget := 20.0
	matches, err = svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{MaxBudget: &budget})
	require.NoError(t, err)
	ids := matchIDs(matches)
	assert.Contains(t, ids, "prov-free") // free providers bypass the budget filter
	assert.Contains(t, ids, "prov-cheap")
	assert.NotContains(t, ids, "prov-pricey")

	matches, err = svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{MinRating: 4.0})
	require.NoError(t, err)
	assert.NotContains(t, matchIDs(matches), "prov-low-rated")
}

func TestRankMatchesExcludesUnbookableProviders(t *testing.T) {
	suspended := idealProvider("prov-suspended")
	suspended.Status = models.ProviderStatusSuspended

	svc := newMatchingService(testRequester(), suspended, idealProvider("prov-ok"))
	matches, err := svc.RankMatches(context.Background(), "req-1", models.MatchPreferences{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "prov-ok", matches[0].Provider.ID)
}

func TestRankMatchesRequesterNotFound(t *testing.T) {
	svc := newMatchingService(testRequester(), idealProvider("prov-1"))
	_, err := svc.RankMatches(context.Background(), "ghost", models.MatchPreferences{})
	assert.Equal(t, utils.CodeNotFound, utils.CodeOf(err))
}

func TestRankSpecificSkipsEligibilityFilter(t *testing.T) {
	paused := idealProvider("prov-paused")
	paused.AcceptingBookings = false

	svc := newMatchingService(testRequester(), paused, idealProvider("prov-ok"), idealProvider("prov-extra"))

	matches, err := svc.RankSpecific(context.Background(), "req-1", []string{"prov-paused", "prov-ok", "ghost"}, models.MatchPreferences{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"prov-paused", "prov-ok"}, matchIDs(matches))

	matches, err = svc.RankSpecific(context.Background(), "req-1", nil, models.MatchPreferences{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestScoreCompatibilityService(t *testing.T) {
	svc := newMatchingService(testRequester(), idealProvider("prov-1"))

	result, err := svc.ScoreCompatibility(context.Background(), "prov-1", "req-1", models.MatchPreferences{})
	require.NoError(t, err)
	assert.Equal(t, "prov-1", result.ProviderID)
	assert.Equal(t, "req-1", result.RequesterID)

	_, err = svc.ScoreCompatibility(context.Background(), "ghost", "req-1", models.MatchPreferences{})
	assert.Equal(t, utils.CodeNotFound, utils.CodeOf(err))
}

func matchIDs(matches []models.RankedMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Provider.ID)
	}
	return ids
}
