package recommend

import "time"

// Weights are the caps for each composite sub-score. They are calibrated so a
// perfect candidate lands at 100.
type Weights struct {
	BaseQuality     float64
	Weather         float64
	Distance        float64
	Personalization float64
	Budget          float64
	Duration        float64
	Accessibility   float64
}

// GroupWeights is the linear combination of category attributes applied for
// one group type. Keeping this as data instead of branching code makes every
// group independently tunable and testable.
type GroupWeights struct {
	Romance            float64
	FamilyFriendliness float64
	Adventure          float64
	Cultural           float64
	Safety             float64
	Popularity         float64
	// RatingNorm applies to overall rating normalized to 0-1.
	RatingNorm float64
	// CrowdTolerance rewards busy places, CalmPreference rewards quiet ones.
	CrowdTolerance float64
	CalmPreference float64
	// LowPhysicalDemand applies to (10 - physical_demand_level).
	LowPhysicalDemand float64
	ElderAccessBonus  float64
	Flat              float64
}

// AgeWeights is the secondary additive adjustment for one age bracket.
type AgeWeights struct {
	MinAge             int
	MaxAge             int
	Adventure          float64
	Cultural           float64
	Safety             float64
	Popularity         float64
	RatingNorm         float64
	LowPhysicalDemand  float64
	ElderAccessBonus   float64
	ElderAccessPenalty float64
}

// DistanceBand scores any distance up to MaxKm.
type DistanceBand struct {
	MaxKm Kilometers
	Score float64
}

// Kilometers exists to keep band tables readable.
type Kilometers = float64

// BudgetBand scores any budget utilization up to MaxUtilization.
type BudgetBand struct {
	MaxUtilization float64
	Score          float64
}

// TransportRate is the per-km rate applied up to MaxKm of travel.
type TransportRate struct {
	MaxKm   Kilometers
	PerKm   float64
	CostCap float64 // 0 means uncapped
}

// CostDefaults substitute for absent catalog cost data.
type CostDefaults struct {
	NightlyHotel        float64
	DailyFood           float64
	DailyLocalTransport float64
	DailyActivities     float64
	// WeatherScore (0-10) is used when no seasonal row exists for the month.
	WeatherScore float64
}

// ConfidenceBand labels composite scores at or above MinScore.
type ConfidenceBand struct {
	MinScore float64
	Label    string
}

// Config gathers every weight, band and threshold the pipeline uses. The
// numbers are a reasonable default calibration, not a contract; construct via
// DefaultConfig and override as needed.
type Config struct {
	MaxCandidates      int
	MaxRecommendations int

	MinRating       float64
	MinSafety       float64
	BudgetTolerance float64

	SeniorAge               int
	SeniorMaxPhysicalDemand float64

	Weights Weights

	Groups             map[GroupType]GroupWeights
	UnknownGroupScore  float64
	AgeBrackets        []AgeWeights
	FemaleSafetyWeight float64

	DistanceBands      []DistanceBand
	DistanceFloorScore float64

	BudgetBands []BudgetBand

	TransportRates []TransportRate

	Defaults CostDefaults

	// Weather sub-score shaping.
	WeatherBaseMax   float64
	PeakSeasonBonus  float64
	FestivalBonus    float64
	TempComfortBonus float64
	ComfortTempMinC  float64
	ComfortTempMaxC  float64

	// Duration sub-score shaping.
	DurationCloseScore   float64
	DurationNearScore    float64
	DurationFarScore     float64
	ExtendedStayMinDays  int
	ExtendedStayMaxBonus float64

	// Accessibility sub-score shaping.
	ElderAccessibleBonus     float64
	ElderInaccessiblePenalty float64
	LowDemandBonus           float64
	LowDemandThreshold       float64

	// Enrichment.
	NearbyRadiusKm           Kilometers
	NearbyLimit              int
	EnrichTopK               int
	MultiCityMinDays         int
	ExtendedItineraryMinDays int
	ActivityLimit            int
	ActivityBudgetShare      float64
	AccommodationBudgetShare float64
	LookupTimeout            time.Duration

	Confidence []ConfidenceBand
}

// DefaultConfig returns the calibration the service ships with.
func DefaultConfig() Config {
	return Config{
		MaxCandidates:      250,
		MaxRecommendations: 30,

		MinRating:       3.0,
		MinSafety:       6.0,
		BudgetTolerance: 1.2,

		SeniorAge:               60,
		SeniorMaxPhysicalDemand: 3,

		Weights: Weights{
			BaseQuality:     20,
			Weather:         18,
			Distance:        15,
			Personalization: 20,
			Budget:          12,
			Duration:        10,
			Accessibility:   5,
		},

		Groups: map[GroupType]GroupWeights{
			GroupSolo: {
				Adventure: 1.5,
				Cultural:  1.2,
				Safety:    0.8,
			},
			GroupCouple: {
				Romance:        2.0,
				RatingNorm:     3.0,
				CalmPreference: 0.5,
			},
			GroupFamily: {
				FamilyFriendliness: 1.8,
				Safety:             1.2,
				ElderAccessBonus:   2,
				LowPhysicalDemand:  0.8,
			},
			GroupFriends: {
				Adventure:      1.2,
				Popularity:     0.8,
				CrowdTolerance: 0.6,
				Flat:           3,
			},
		},
		UnknownGroupScore: 12,

		AgeBrackets: []AgeWeights{
			{MinAge: 18, MaxAge: 25, Adventure: 0.5, Popularity: 0.4},
			{MinAge: 26, MaxAge: 35, Cultural: 0.6, RatingNorm: 2},
			{MinAge: 36, MaxAge: 50, Cultural: 0.8, Safety: 0.5, LowPhysicalDemand: 0.4},
			{MinAge: 51, MaxAge: 200, Cultural: 1.0, Safety: 0.8, LowPhysicalDemand: 0.8, ElderAccessBonus: 3, ElderAccessPenalty: 2},
		},
		FemaleSafetyWeight: 0.4,

		DistanceBands: []DistanceBand{
			{MaxKm: 200, Score: 15},
			{MaxKm: 500, Score: 12},
			{MaxKm: 1000, Score: 9},
			{MaxKm: 2000, Score: 6},
			{MaxKm: 3000, Score: 3},
		},
		DistanceFloorScore: 1,

		BudgetBands: []BudgetBand{
			{MaxUtilization: 0.6, Score: 12},
			{MaxUtilization: 0.8, Score: 10},
			{MaxUtilization: 1.0, Score: 8},
			{MaxUtilization: 1.15, Score: 5},
			{MaxUtilization: 1.3, Score: 2},
		},

		TransportRates: []TransportRate{
			{MaxKm: 300, PerKm: 8},
			{MaxKm: 1000, PerKm: 12},
			{MaxKm: 0, PerKm: 15, CostCap: 25000}, // long haul, MaxKm 0 means unbounded
		},

		Defaults: CostDefaults{
			NightlyHotel:        2000,
			DailyFood:           1000,
			DailyLocalTransport: 500,
			DailyActivities:     1200,
			WeatherScore:        7,
		},

		WeatherBaseMax:   10,
		PeakSeasonBonus:  4,
		FestivalBonus:    2,
		TempComfortBonus: 2,
		ComfortTempMinC:  18,
		ComfortTempMaxC:  32,

		DurationCloseScore:   6,
		DurationNearScore:    4,
		DurationFarScore:     2,
		ExtendedStayMinDays:  5,
		ExtendedStayMaxBonus: 4,

		ElderAccessibleBonus:     3,
		ElderInaccessiblePenalty: 2,
		LowDemandBonus:           2,
		LowDemandThreshold:       3,

		NearbyRadiusKm:           100,
		NearbyLimit:              3,
		EnrichTopK:               10,
		MultiCityMinDays:         5,
		ExtendedItineraryMinDays: 7,
		ActivityLimit:            5,
		ActivityBudgetShare:      0.2,
		AccommodationBudgetShare: 0.4,
		LookupTimeout:            2 * time.Second,

		Confidence: []ConfidenceBand{
			{MinScore: 80, Label: "High"},
			{MinScore: 65, Label: "Medium-High"},
			{MinScore: 50, Label: "Medium"},
			{MinScore: 35, Label: "Medium-Low"},
		},
	}
}

// ConfidenceLabel maps a composite score onto its categorical band.
func (c Config) ConfidenceLabel(score float64) string {
	for _, band := range c.Confidence {
		if score >= band.MinScore {
			return band.Label
		}
	}
	return "Low"
}
