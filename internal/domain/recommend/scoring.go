package recommend

import (
	"math"

	"github.com/tripnexus/tripnexus/pkg/geo"
)

// Engine computes the deterministic composite score for each candidate. It is
// a pure function of its inputs: the same candidates and request always yield
// bit-identical scores.
type Engine struct {
	cfg Config
}

// NewEngine builds a scoring engine from a calibration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score derives a ScoredCandidate for every destination. Sub-scores stay at
// full precision; only the composite is rounded, to two decimals, so rounding
// error never compounds.
func (e *Engine) Score(candidates []Destination, req TravelRequest) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, d := range candidates {
		distance := geo.DistanceKm(req.DepartureLat, req.DepartureLng, d.Latitude, d.Longitude)
		cost := e.EstimateTripCost(d, req, distance)
		breakdown := e.breakdownFor(d, req, distance, cost)

		total := breakdown.BaseQuality +
			breakdown.WeatherSeasonal +
			breakdown.Distance +
			breakdown.Personalization +
			breakdown.BudgetFit +
			breakdown.DurationMatch +
			breakdown.Accessibility

		scored = append(scored, ScoredCandidate{
			Destination:        d,
			DistanceKm:         round2(distance),
			EstimatedTotalCost: cost.Total,
			FinalScore:         round2(total),
			Breakdown:          breakdown,
		})
	}
	return scored
}

// breakdownFor takes the already-estimated cost so each candidate is costed
// exactly once per scoring pass.
func (e *Engine) breakdownFor(d Destination, req TravelRequest, distanceKm float64, cost CostBreakdown) ScoreBreakdown {
	return ScoreBreakdown{
		BaseQuality:     e.baseQualityScore(d),
		WeatherSeasonal: e.weatherScore(d),
		Distance:        e.distanceScore(distanceKm),
		Personalization: e.personalizationScore(d, req),
		BudgetFit:       e.budgetScore(cost.Total, req.Budget),
		DurationMatch:   e.durationScore(d, req.DurationDays),
		Accessibility:   e.accessibilityScore(d, req.Age),
	}
}

// baseQualityScore blends rating, a log-scaled review curve and popularity.
// Rating dominates; review volume has diminishing returns and a hard cap.
func (e *Engine) baseQualityScore(d Destination) float64 {
	ratingScore := (d.Quality.OverallRating / 5.0) * 12
	reviewScore := math.Min(4, math.Log10(float64(d.Quality.TotalReviews)+1))
	popularityScore := (d.Quality.PopularityScore / 10.0) * 4
	return ratingScore + reviewScore + popularityScore
}

// weatherScore uses the month's seasonal row when present and the documented
// default otherwise. Missing data never fails a candidate.
func (e *Engine) weatherScore(d Destination) float64 {
	score := (e.cfg.Defaults.WeatherScore / e.cfg.WeatherBaseMax) * 10

	if s := d.Season; s != nil {
		if s.WeatherScore > 0 {
			score = (s.WeatherScore / e.cfg.WeatherBaseMax) * 10
		}
		if s.IsPeakSeason {
			score += e.cfg.PeakSeasonBonus
		}
		if s.FestivalSeason {
			score += e.cfg.FestivalBonus
		}
		if s.AvgTemperature >= e.cfg.ComfortTempMinC && s.AvgTemperature <= e.cfg.ComfortTempMaxC {
			score += e.cfg.TempComfortBonus
		}
	}

	return math.Min(e.cfg.Weights.Weather, score)
}

// distanceScore is a step function over configured bands; closer bands score
// strictly higher.
func (e *Engine) distanceScore(distanceKm float64) float64 {
	for _, band := range e.cfg.DistanceBands {
		if distanceKm <= band.MaxKm {
			return band.Score
		}
	}
	return e.cfg.DistanceFloorScore
}

// personalizationScore applies the group-type weight vector, then the age
// bracket adjustment and the gender safety nudge, clamped to [0, cap].
func (e *Engine) personalizationScore(d Destination, req TravelRequest) float64 {
	var score float64

	if weights, ok := e.cfg.Groups[req.GroupType]; ok {
		score = applyGroupWeights(weights, d)
	} else {
		score = e.cfg.UnknownGroupScore
	}

	for _, bracket := range e.cfg.AgeBrackets {
		if req.Age < bracket.MinAge || req.Age > bracket.MaxAge {
			continue
		}
		score += d.Category.AdventureLevel * bracket.Adventure
		score += d.Category.CulturalRichness * bracket.Cultural
		score += d.Quality.SafetyScore * bracket.Safety
		score += d.Quality.PopularityScore * bracket.Popularity
		score += (d.Quality.OverallRating / 5.0) * bracket.RatingNorm
		score += (10 - d.Category.PhysicalDemandLevel) * bracket.LowPhysicalDemand
		if d.Quality.IsAccessibleElderly {
			score += bracket.ElderAccessBonus
		} else {
			score -= bracket.ElderAccessPenalty
		}
		break
	}

	if req.Gender == "female" {
		score += d.Quality.SafetyScore * e.cfg.FemaleSafetyWeight
	}

	return math.Min(e.cfg.Weights.Personalization, math.Max(0, score))
}

func applyGroupWeights(w GroupWeights, d Destination) float64 {
	score := d.Category.RomanceScore * w.Romance
	score += d.Category.FamilyFriendliness * w.FamilyFriendliness
	score += d.Category.AdventureLevel * w.Adventure
	score += d.Category.CulturalRichness * w.Cultural
	score += d.Quality.SafetyScore * w.Safety
	score += d.Quality.PopularityScore * w.Popularity
	score += (d.Quality.OverallRating / 5.0) * w.RatingNorm
	score += d.Quality.CrowdLevel * w.CrowdTolerance
	score += (10 - d.Quality.CrowdLevel) * w.CalmPreference
	score += (10 - d.Category.PhysicalDemandLevel) * w.LowPhysicalDemand
	if d.Quality.IsAccessibleElderly {
		score += w.ElderAccessBonus
	}
	return score + w.Flat
}

// budgetScore is piecewise over budget utilization bands; cheaper trips never
// score below costlier ones.
func (e *Engine) budgetScore(totalCost, budget int) float64 {
	if budget <= 0 {
		return 0
	}
	utilization := float64(totalCost) / float64(budget)
	for _, band := range e.cfg.BudgetBands {
		if utilization <= band.MaxUtilization {
			return band.Score
		}
	}
	return 0
}

// durationScore rewards a close match to the destination's recommended visit
// length, plus a capped nearby-attraction bonus for longer trips.
func (e *Engine) durationScore(d Destination, durationDays int) float64 {
	recommended := d.BestVisitDurationDays
	if recommended <= 0 {
		recommended = 3
	}

	var score float64
	switch gap := abs(durationDays - recommended); {
	case gap <= 1:
		score = e.cfg.DurationCloseScore
	case gap <= 2:
		score = e.cfg.DurationNearScore
	default:
		score = e.cfg.DurationFarScore
	}

	if durationDays >= e.cfg.ExtendedStayMinDays {
		score += math.Min(e.cfg.ExtendedStayMaxBonus, float64(d.NearbyAttractionsCount))
	}

	return math.Min(e.cfg.Weights.Duration, score)
}

// accessibilityScore is a small adjustment for senior travellers and
// low-demand destinations, clamped non-negative.
func (e *Engine) accessibilityScore(d Destination, age int) float64 {
	var score float64
	if age >= e.cfg.SeniorAge {
		if d.Quality.IsAccessibleElderly {
			score += e.cfg.ElderAccessibleBonus
		} else {
			score -= e.cfg.ElderInaccessiblePenalty
		}
	}
	if d.Category.PhysicalDemandLevel <= e.cfg.LowDemandThreshold {
		score += e.cfg.LowDemandBonus
	}
	return math.Max(0, math.Min(e.cfg.Weights.Accessibility, score))
}

// EstimateTripCost itemizes transport, accommodation, food, local transport
// and a flat activities allowance. Absent catalog rates fall back to the
// configured defaults.
func (e *Engine) EstimateTripCost(d Destination, req TravelRequest, distanceKm float64) CostBreakdown {
	days := float64(req.DurationDays)

	var transport float64
	for _, rate := range e.cfg.TransportRates {
		if rate.MaxKm > 0 && distanceKm > rate.MaxKm {
			continue
		}
		transport = distanceKm * rate.PerKm
		if rate.CostCap > 0 {
			transport = math.Min(transport, rate.CostCap)
		}
		break
	}

	nightly := d.Costs.MinHotelPrice
	if nightly <= 0 {
		nightly = e.cfg.Defaults.NightlyHotel
	}
	food := d.Costs.AvgDailyFoodCost
	if food <= 0 {
		food = e.cfg.Defaults.DailyFood
	}
	local := d.Costs.AvgDailyTransportCost
	if local <= 0 {
		local = e.cfg.Defaults.DailyLocalTransport
	}

	breakdown := CostBreakdown{
		Transport:      int(math.Round(transport)),
		Accommodation:  int(math.Round(nightly * days)),
		Food:           int(math.Round(food * days)),
		LocalTransport: int(math.Round(local * days)),
		Activities:     int(math.Round(e.cfg.Defaults.DailyActivities * days)),
	}
	breakdown.Total = breakdown.Transport + breakdown.Accommodation +
		breakdown.Food + breakdown.LocalTransport + breakdown.Activities
	return breakdown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
