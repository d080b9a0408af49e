package matching

import (
	"fmt"
	"math"
	"strings"

	"timebridge/models"
)

// Factor weights. The seven weights total 400; the final score is the
// weighted sum normalized to 0-100.
const (
	WeightCategory   = 100
	WeightLevel      = 80
	WeightLanguages  = 80
	WeightContext    = 50
	WeightBudget     = 40
	WeightLocality   = 30
	WeightReputation = 20

	totalWeight = WeightCategory + WeightLevel + WeightLanguages +
		WeightContext + WeightBudget + WeightLocality + WeightReputation
)

// minRecommendedScore is the floor for the recommended flag and the HIGH band.
const minRecommendedScore = 60

// Score computes the compatibility of one provider/requester pair. Pure and
// deterministic; no I/O.
func Score(provider *models.Provider, requester *models.Requester, prefs models.MatchPreferences) models.CompatibilityResult {
	factors := []models.CompatibilityFactor{
		scoreCategory(provider, requester, prefs),
		scoreLevel(provider, requester, prefs),
		scoreLanguages(provider, prefs),
		scoreContext(provider, requester, prefs),
		scoreBudget(provider, prefs),
		scoreLocality(provider, requester),
		scoreReputation(provider),
	}

	sum := 0
	for _, f := range factors {
		sum += f.Score
	}
	score := int(math.Round(float64(sum) / float64(totalWeight) * 100))

	return models.CompatibilityResult{
		ProviderID:  provider.ID,
		RequesterID: requester.ID,
		Score:       score,
		Level:       compatibilityLevel(score),
		Factors:     factors,
		Recommended: score >= minRecommendedScore,
	}
}

func compatibilityLevel(score int) string {
	switch {
	case score >= 80:
		return models.CompatibilityExcellent
	case score >= 60:
		return models.CompatibilityHigh
	case score >= 40:
		return models.CompatibilityMedium
	case score >= 20:
		return models.CompatibilityLow
	default:
		return models.CompatibilityPoor
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// scoreCategory is binary: the provider either serves the requester's
// category or it does not.
func scoreCategory(provider *models.Provider, requester *models.Requester, prefs models.MatchPreferences) models.CompatibilityFactor {
	category := prefs.Category
	if category == "" {
		category = requester.Category
	}
	f := models.CompatibilityFactor{Category: models.FactorCategory, Weight: WeightCategory}
	if category != "" && containsFold(provider.Categories, category) {
		f.Score = WeightCategory
		f.IsMatch = true
		f.Reason = fmt.Sprintf("provider works with %s requesters", category)
		return f
	}
	f.Reason = fmt.Sprintf("provider does not work with %s requesters", category)
	return f
}

// scoreLevel is binary on the requester's proficiency level.
func scoreLevel(provider *models.Provider, requester *models.Requester, prefs models.MatchPreferences) models.CompatibilityFactor {
	level := prefs.Level
	if level == "" {
		level = requester.Level
	}
	f := models.CompatibilityFactor{Category: models.FactorLevel, Weight: WeightLevel}
	if level != "" && containsFold(provider.AcceptedLevels, level) {
		f.Score = WeightLevel
		f.IsMatch = true
		f.Reason = fmt.Sprintf("provider accepts %s level", level)
		return f
	}
	f.Reason = fmt.Sprintf("provider does not accept %s level", level)
	return f
}

// scoreLanguages is proportional to the share of requested languages the
// provider speaks.
func scoreLanguages(provider *models.Provider, prefs models.MatchPreferences) models.CompatibilityFactor {
	f := models.CompatibilityFactor{Category: models.FactorLanguages, Weight: WeightLanguages}
	if len(prefs.Languages) == 0 {
		f.Reason = "no languages requested"
		return f
	}
	matched := 0
	for _, lang := range prefs.Languages {
		if containsFold(provider.Languages, lang) {
			matched++
		}
	}
	f.Score = int(math.Round(float64(WeightLanguages) * float64(matched) / float64(len(prefs.Languages))))
	f.IsMatch = f.Score >= WeightLanguages/2
	f.Reason = fmt.Sprintf("provider speaks %d of %d requested languages", matched, len(prefs.Languages))
	return f
}

// scoreContext blends special-needs experience with beginner friendliness.
func scoreContext(provider *models.Provider, requester *models.Requester, prefs models.MatchPreferences) models.CompatibilityFactor {
	f := models.CompatibilityFactor{Category: models.FactorContext, Weight: WeightContext}

	needsSpecial := prefs.SpecialNeeds || requester.SpecialNeeds
	switch {
	case needsSpecial && provider.SpecialNeedsExp:
		f.Score = WeightContext
		f.Reason = "provider has the special-needs experience requested"
	case needsSpecial:
		f.Score = int(0.3 * WeightContext)
		f.Reason = "special-needs experience requested but not declared"
	default:
		f.Score = WeightContext / 2
		f.Reason = "no special context required"
	}

	if provider.BeginnerFriendly && strings.EqualFold(requester.Level, models.LevelBeginner) {
		f.Score += 10
		if f.Score > WeightContext {
			f.Score = WeightContext
		}
		f.Reason += "; beginner friendly"
	}
	f.IsMatch = f.Score >= WeightContext/2
	return f
}

// scoreBudget checks affordability against the stated budget.
func scoreBudget(provider *models.Provider, prefs models.MatchPreferences) models.CompatibilityFactor {
	f := models.CompatibilityFactor{Category: models.FactorBudget, Weight: WeightBudget}
	switch {
	case provider.FreeOfCharge:
		f.Score = WeightBudget
		f.IsMatch = true
		f.Reason = "provider offers sessions free of charge"
	case prefs.MaxBudget == nil:
		f.Score = WeightBudget / 2
		f.Reason = "no budget stated"
	case provider.HourlyRate <= *prefs.MaxBudget:
		f.Score = WeightBudget
		f.IsMatch = true
		f.Reason = fmt.Sprintf("rate %.2f within budget %.2f", provider.HourlyRate, *prefs.MaxBudget)
	default:
		f.Reason = fmt.Sprintf("rate %.2f exceeds budget %.2f", provider.HourlyRate, *prefs.MaxBudget)
	}
	return f
}

// scoreLocality rewards shared country and timezone, capped at the weight.
func scoreLocality(provider *models.Provider, requester *models.Requester) models.CompatibilityFactor {
	f := models.CompatibilityFactor{Category: models.FactorLocality, Weight: WeightLocality}

	pc, rc := provider.Profile.Country, requester.Profile.Country
	pt, rt := provider.Profile.Timezone, requester.Profile.Timezone

	sameCountry := pc != "" && strings.EqualFold(pc, rc)
	if sameCountry {
		f.Score += int(0.6 * WeightLocality)
	}
	switch {
	case pt != "" && strings.EqualFold(pt, rt):
		f.Score += int(0.4 * WeightLocality)
	case pt != "" && rt != "":
		f.Score += int(0.2 * WeightLocality)
	}
	if f.Score > WeightLocality {
		f.Score = WeightLocality
	}
	f.IsMatch = sameCountry
	switch {
	case sameCountry:
		f.Reason = "same country"
	case f.Score > 0:
		f.Reason = "different country or timezone"
	default:
		f.Reason = "no locality information"
	}
	return f
}

// scoreReputation maps the provider's rating into banded scores; providers
// with no reviews yet land mid-band rather than at the bottom.
func scoreReputation(provider *models.Provider) models.CompatibilityFactor {
	f := models.CompatibilityFactor{Category: models.FactorReputation, Weight: WeightReputation}
	rating := provider.Profile.Rating
	switch {
	case provider.Profile.ReviewCount == 0:
		f.Score = WeightReputation / 2
		f.Reason = "no reviews yet"
	case rating >= 4.5:
		f.Score = WeightReputation
		f.IsMatch = true
		f.Reason = fmt.Sprintf("highly rated (%.1f)", rating)
	case rating >= 4.0:
		f.Score = int(0.8 * WeightReputation)
		f.IsMatch = true
		f.Reason = fmt.Sprintf("well rated (%.1f)", rating)
	case rating >= 3.5:
		f.Score = WeightReputation / 2
		f.Reason = fmt.Sprintf("moderately rated (%.1f)", rating)
	default:
		f.Score = int(0.2 * WeightReputation)
		f.Reason = fmt.Sprintf("low rating (%.1f)", rating)
	}
	return f
}
