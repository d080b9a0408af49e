package matching

import (
	"testing"

	"timebridge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factorByCategory(t *testing.T, result models.CompatibilityResult, category string) models.CompatibilityFactor {
	t.Helper()
	for _, f := range result.Factors {
		if f.Category == category {
			return f
		}
	}
	t.Fatalf("factor %s not found", category)
	return models.CompatibilityFactor{}
}

func TestScorePerfectMatch(t *testing.T) {
	provider := idealProvider("prov-1")
	requester := testRequester()
	requester.SpecialNeeds = true

	result := Score(&provider, requester, models.MatchPreferences{Languages: []string{"fr", "ar"}})
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, models.CompatibilityExcellent, result.Level)
	assert.True(t, result.Recommended)
	assert.Len(t, result.Factors, 7)
}

func TestScoreCategoryMismatch(t *testing.T) {
	provider := idealProvider("prov-1") // serves adults only
	requester := testRequester()
	requester.Category = "child"

	result := Score(&provider, requester, models.MatchPreferences{})
	factor := factorByCategory(t, result, models.FactorCategory)
	assert.Zero(t, factor.Score)
	assert.False(t, factor.IsMatch)
}

func TestScorePreferenceOverridesProfileCategory(t *testing.T) {
	provider := idealProvider("prov-1")
	requester := testRequester()
	requester.Category = "child"

	result := Score(&provider, requester, models.MatchPreferences{Category: "adult"})
	factor := factorByCategory(t, result, models.FactorCategory)
	assert.Equal(t, WeightCategory, factor.Score)
	assert.True(t, factor.IsMatch)
}

func TestScoreLanguages(t *testing.T) {
	provider := idealProvider("prov-1") // speaks fr, ar, en
	requester := testRequester()

	cases := []struct {
		name      string
		requested []string
		wantScore int
		wantMatch bool
	}{
		{"all requested spoken", []string{"fr", "ar"}, WeightLanguages, true},
		{"subset spoken", []string{"fr", "de"}, WeightLanguages / 2, true},
		{"none spoken", []string{"de", "ja"}, 0, false},
		{"none requested", nil, 0, false},
		{"case insensitive", []string{"FR", "AR"}, WeightLanguages, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(&provider, requester, models.MatchPreferences{Languages: tc.requested})
			factor := factorByCategory(t, result, models.FactorLanguages)
			assert.Equal(t, tc.wantScore, factor.Score)
			assert.Equal(t, tc.wantMatch, factor.IsMatch)
		})
	}
}

func TestScoreContextSpecialNeeds(t *testing.T) {
	requester := testRequester()
	requester.SpecialNeeds = true
	requester.Level = "advanced" // keep the beginner bonus out

	experienced := idealProvider("prov-1")
	experienced.AcceptedLevels = append(experienced.AcceptedLevels, "advanced")
	result := Score(&experienced, requester, models.MatchPreferences{})
	factor := factorByCategory(t, result, models.FactorContext)
	assert.Equal(t, WeightContext, factor.Score)
	assert.True(t, factor.IsMatch)

	inexperienced := experienced
	inexperienced.SpecialNeedsExp = false
	result = Score(&inexperienced, requester, models.MatchPreferences{})
	factor = factorByCategory(t, result, models.FactorContext)
	assert.Equal(t, 15, factor.Score)
	assert.False(t, factor.IsMatch)
}

func TestScoreBudget(t *testing.T) {
	requester := testRequester()
	budget := 30.0

	paid := idealProvider("prov-1")
	paid.FreeOfCharge = false
	paid.HourlyRate = 25

	result := Score(&paid, requester, models.MatchPreferences{MaxBudget: &budget})
	factor := factorByCategory(t, result, models.FactorBudget)
	assert.Equal(t, WeightBudget, factor.Score)
	assert.True(t, factor.IsMatch)

	paid.HourlyRate = 45
	result = Score(&paid, requester, models.MatchPreferences{MaxBudget: &budget})
	factor = factorByCategory(t, result, models.FactorBudget)
	assert.Zero(t, factor.Score)
	assert.False(t, factor.IsMatch)

	result = Score(&paid, requester, models.MatchPreferences{})
	factor = factorByCategory(t, result, models.FactorBudget)
	assert.Equal(t, WeightBudget/2, factor.Score)

	free := idealProvider("prov-2")
	result = Score(&free, requester, models.MatchPreferences{MaxBudget: &budget})
	factor = factorByCategory(t, result, models.FactorBudget)
	assert.Equal(t, WeightBudget, factor.Score)
	assert.True(t, factor.IsMatch)
}

func TestScoreReputationBands(t *testing.T) {
	requester := testRequester()

	cases := []struct {
		name        string
		rating      float64
		reviewCount int
		wantScore   int
	}{
		{"no reviews yet", 0, 0, WeightReputation / 2},
		{"highly rated", 4.7, 20, WeightReputation},
		{"well rated", 4.2, 20, 16},
		{"moderate", 3.7, 20, WeightReputation / 2},
		{"low", 2.5, 20, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := idealProvider("prov-1")
			p.Profile.Rating = tc.rating
			p.Profile.ReviewCount = tc.reviewCount
			result := Score(&p, requester, models.MatchPreferences{})
			factor := factorByCategory(t, result, models.FactorReputation)
			assert.Equal(t, tc.wantScore, factor.Score)
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	provider := idealProvider("prov-1")
	requester := testRequester()
	prefs := models.MatchPreferences{Languages: []string{"fr", "ar"}, SpecialNeeds: true}

	first := Score(&provider, requester, prefs)
	second := Score(&provider, requester, prefs)
	assert.Equal(t, first, second)
}

func TestScoreBounds(t *testing.T) {
	requester := testRequester()
	budget := 20.0
	prefs := models.MatchPreferences{Languages: []string{"fr", "de", "ja"}, SpecialNeeds: true, MaxBudget: &budget}

	providers := []models.Provider{
		idealProvider("prov-1"),
		{ID: "prov-empty"},
		{
			ID:         "prov-partial",
			Profile:    models.ProviderProfile{Country: "DE", Timezone: "Europe/Berlin", Rating: 3.2, ReviewCount: 3},
			Categories: []string{"child"},
			Languages:  []string{"de"},
			HourlyRate: 80,
		},
	}
	for i := range providers {
		result := Score(&providers[i], requester, prefs)
		require.GreaterOrEqual(t, result.Score, 0)
		require.LessOrEqual(t, result.Score, 100)
		sum := 0
		for _, f := range result.Factors {
			require.GreaterOrEqual(t, f.Score, 0, "%s factor %s", providers[i].ID, f.Category)
			require.LessOrEqual(t, f.Score, f.Weight, "%s factor %s", providers[i].ID, f.Category)
			sum += f.Score
		}
	}
}

func TestCompatibilityLevelBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, models.CompatibilityExcellent},
		{80, models.CompatibilityExcellent},
		{79, models.CompatibilityHigh},
		{60, models.CompatibilityHigh},
		{59, models.CompatibilityMedium},
		{40, models.CompatibilityMedium},
		{39, models.CompatibilityLow},
		{20, models.CompatibilityLow},
		{19, models.CompatibilityPoor},
		{0, models.CompatibilityPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, compatibilityLevel(tc.score), "score %d", tc.score)
	}
}
