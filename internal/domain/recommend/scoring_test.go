package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()
	candidates := []Destination{jaipurLike(1), jaipurLike(2)}

	first := engine.Score(candidates, req)
	second := engine.Score(candidates, req)

	require.Len(t, first, 2)
	for i := range first {
		require.Equal(t, first[i].FinalScore, second[i].FinalScore)
		require.Equal(t, first[i].Breakdown, second[i].Breakdown)
		require.Equal(t, first[i].EstimatedTotalCost, second[i].EstimatedTotalCost)
	}
}

func TestScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()

	best := jaipurLike(1)
	best.Quality.OverallRating = 5
	best.Quality.TotalReviews = 100000
	best.Quality.PopularityScore = 10
	best.Season.IsPeakSeason = true
	best.Season.FestivalSeason = true
	best.Season.WeatherScore = 10

	worst := jaipurLike(2)
	worst.Latitude = -40
	worst.Longitude = -170
	worst.Quality.OverallRating = 0
	worst.Quality.TotalReviews = 0
	worst.Quality.PopularityScore = 0
	worst.Quality.SafetyScore = 0
	worst.Season = nil
	worst.Costs.MinHotelPrice = 100000

	for _, sc := range engine.Score([]Destination{best, worst}, req) {
		require.GreaterOrEqual(t, sc.FinalScore, 0.0)
		require.LessOrEqual(t, sc.FinalScore, 100.0)
	}
}

func TestDistanceScoreMonotonic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()

	near := jaipurLike(1)
	far := jaipurLike(2)
	far.Latitude = 8.5241 // Kerala, far south
	far.Longitude = 76.9366

	scored := engine.Score([]Destination{near, far}, req)
	require.Greater(t, scored[0].Breakdown.Distance, scored[1].Breakdown.Distance)
	require.Greater(t, scored[1].Breakdown.Distance, 0.0)
}

func TestBudgetScoreMonotonic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()

	cheap := jaipurLike(1)
	costly := jaipurLike(2)
	costly.Costs.MinHotelPrice = 12000
	costly.Costs.AvgDailyFoodCost = 4000

	scored := engine.Score([]Destination{cheap, costly}, req)
	require.GreaterOrEqual(t, scored[0].Breakdown.BudgetFit, scored[1].Breakdown.BudgetFit)
	require.Greater(t, scored[1].EstimatedTotalCost, scored[0].EstimatedTotalCost)
}

func TestWeatherScoreDefaultsWhenSeasonMissing(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	noSeason := jaipurLike(1)
	noSeason.Season = nil

	scored := engine.Score([]Destination{noSeason}, delhiRequest())
	require.Len(t, scored, 1)
	// Default weather base is 7 of 10, scaled to the 10-point base.
	require.InDelta(t, 7.0, scored[0].Breakdown.WeatherSeasonal, 1e-9)
	require.Greater(t, scored[0].FinalScore, 0.0)
}

func TestWeatherScoreCappedAtWeight(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	d := jaipurLike(1)
	d.Season.WeatherScore = 10
	d.Season.IsPeakSeason = true
	d.Season.FestivalSeason = true
	d.Season.AvgTemperature = 25

	scored := engine.Score([]Destination{d}, delhiRequest())
	require.Equal(t, cfg.Weights.Weather, scored[0].Breakdown.WeatherSeasonal)
}

func TestPersonalizationCoupleWeightsRomance(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	romantic := jaipurLike(1)
	plain := jaipurLike(2)
	plain.Category.RomanceScore = 1

	req := delhiRequest()
	req.GroupType = GroupCouple

	scored := engine.Score([]Destination{romantic, plain}, req)
	require.Greater(t, scored[0].Breakdown.Personalization, scored[1].Breakdown.Personalization)
	require.LessOrEqual(t, scored[0].Breakdown.Personalization, cfg.Weights.Personalization)
}

func TestPersonalizationUnknownGroupUsesFlatScore(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	d := jaipurLike(1)
	req := delhiRequest()
	req.GroupType = GroupType("Backpackers")
	req.Age = 4 // outside every bracket so only the flat score applies

	score := engine.personalizationScore(d, req)
	require.Equal(t, cfg.UnknownGroupScore, score)
}

func TestPersonalizationFemaleSafetyNudge(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	d := jaipurLike(1)
	d.Category.RomanceScore = 0 // keep the couple vector below the cap
	d.Quality.CrowdLevel = 10

	base := delhiRequest()
	base.Gender = "male"
	nudged := base
	nudged.Gender = "female"

	require.Greater(t, engine.personalizationScore(d, nudged), engine.personalizationScore(d, base))
}

func TestAccessibilityScoreSeniorPenaltyFloorsAtZero(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	d := jaipurLike(1)
	d.Quality.IsAccessibleElderly = false
	d.Category.PhysicalDemandLevel = 8

	score := engine.accessibilityScore(d, 65)
	require.Equal(t, 0.0, score)

	accessible := jaipurLike(2)
	require.Greater(t, engine.accessibilityScore(accessible, 65), 0.0)
}

func TestEstimateTripCostItemized(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()

	breakdown := engine.EstimateTripCost(jaipurLike(1), req, 250)
	require.Equal(t, 2000, breakdown.Transport)      // 250 km at the short-haul rate
	require.Equal(t, 6000, breakdown.Accommodation)  // 2000 x 3 nights
	require.Equal(t, 3000, breakdown.Food)           // 1000 x 3 days
	require.Equal(t, 1500, breakdown.LocalTransport) // 500 x 3 days
	require.Equal(t, 3600, breakdown.Activities)     // 1200 x 3 days
	require.Equal(t, 16100, breakdown.Total)
}

func TestScoreBudgetFitDerivedFromEstimatedCost(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()

	scored := engine.Score([]Destination{jaipurLike(1)}, req)
	require.Len(t, scored, 1)

	sc := scored[0]
	require.Equal(t, engine.budgetScore(sc.EstimatedTotalCost, req.Budget), sc.Breakdown.BudgetFit)
}

func TestEstimateTripCostLongHaulCapped(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	req := delhiRequest()
	req.DurationDays = 1

	breakdown := engine.EstimateTripCost(jaipurLike(1), req, 5000)
	require.Equal(t, 25000, breakdown.Transport)
}

func TestEstimateTripCostUsesDefaultsWhenRatesMissing(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	d := jaipurLike(1)
	d.Costs = CostAttributes{}

	breakdown := engine.EstimateTripCost(d, delhiRequest(), 100)
	require.Equal(t, int(cfg.Defaults.NightlyHotel)*3, breakdown.Accommodation)
	require.Equal(t, int(cfg.Defaults.DailyFood)*3, breakdown.Food)
	require.Equal(t, int(cfg.Defaults.DailyLocalTransport)*3, breakdown.LocalTransport)
}

func TestDurationScoreRewardsCloseMatchAndNearbyBonus(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(cfg)

	d := jaipurLike(1) // recommends 3 days, 4 nearby attractions
	require.Equal(t, cfg.DurationCloseScore, engine.durationScore(d, 3))
	require.Equal(t, cfg.DurationNearScore, engine.durationScore(d, 5)-4) // near match plus nearby bonus
	require.LessOrEqual(t, engine.durationScore(d, 30), cfg.Weights.Duration)
}
