package models

// Compatibility levels derived from the final score.
const (
	CompatibilityExcellent = "EXCELLENT"
	CompatibilityHigh      = "HIGH"
	CompatibilityMedium    = "MEDIUM"
	CompatibilityLow       = "LOW"
	CompatibilityPoor      = "POOR"
)

// Factor categories, one per weighted dimension of the match score.
const (
	FactorCategory   = "category"
	FactorLevel      = "level"
	FactorLanguages  = "languages"
	FactorContext    = "context"
	FactorBudget     = "budget"
	FactorLocality   = "locality"
	FactorReputation = "reputation"
)

// CompatibilityFactor is one weighted dimension of a compatibility score.
// Score is always within [0, Weight].
type CompatibilityFactor struct {
	Category string `json:"category"`
	Weight   int    `json:"weight"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
	IsMatch  bool   `json:"isMatch"`
}

// CompatibilityResult is the outcome of scoring one provider against a
// requester. It is computed on demand and never persisted.
type CompatibilityResult struct {
	ProviderID  string                `json:"providerId"`
	RequesterID string                `json:"requesterId"`
	Score       int                   `json:"score"` // 0-100.
	Level       string                `json:"level"`
	Factors     []CompatibilityFactor `json:"factors"`
	Recommended bool                  `json:"recommended"`
}

// MatchPreferences is the closed filter-criteria type accepted at the
// matching boundary. Zero values mean "no preference".
type MatchPreferences struct {
	Category     string   `json:"category,omitempty"`
	Level        string   `json:"level,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	SpecialNeeds bool     `json:"specialNeeds,omitempty"`

	// Hard pre-filters applied before scoring.
	FreeOnly  bool     `json:"freeOnly,omitempty"`
	MinRating float64  `json:"minRating,omitempty"`
	MaxBudget *float64 `json:"maxBudget,omitempty"` // nil when the requester states no budget.

	Limit int `json:"limit,omitempty"` // Defaults to 10, capped at 50.
}

// RankedMatch pairs a candidate with its computed compatibility.
type RankedMatch struct {
	Provider ProviderSummary     `json:"provider"`
	Result   CompatibilityResult `json:"result"`
}

// ProviderSummary is the trimmed provider view returned by ranking.
type ProviderSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Headline     string   `json:"headline,omitempty"`
	Country      string   `json:"country,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	FreeOfCharge bool     `json:"freeOfCharge"`
	HourlyRate   float64  `json:"hourlyRate"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
}

// Summary converts a provider to its ranked-match view.
func (p *Provider) Summary() ProviderSummary {
	return ProviderSummary{
		ID:           p.ID,
		Name:         p.Profile.Name,
		Headline:     p.Profile.Headline,
		Country:      p.Profile.Country,
		Languages:    p.Languages,
		FreeOfCharge: p.FreeOfCharge,
		HourlyRate:   p.HourlyRate,
		Rating:       p.Profile.Rating,
		ReviewCount:  p.Profile.ReviewCount,
	}
}
