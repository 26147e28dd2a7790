package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Enricher attaches derived facts to the ranked list: position, confidence,
// suggested duration, weather/transport summaries and multi-city options.
// Every external lookup degrades to an empty value on failure; a partial
// recommendation always beats no recommendation.
type Enricher struct {
	cfg     Config
	catalog CatalogGateway
	logger  *slog.Logger
}

// NewEnricher builds the enrichment stage.
func NewEnricher(cfg Config, catalog CatalogGateway, logger *slog.Logger) *Enricher {
	return &Enricher{cfg: cfg, catalog: catalog, logger: logger.With("component", "recommend.enricher")}
}

// Enrich runs per-candidate enrichment concurrently. The lookups are
// independent reads with no shared mutation, so a plain fan-out/fan-in over
// the result slice is enough; each goroutine writes only its own index.
func (e *Enricher) Enrich(ctx context.Context, ranked []ScoredCandidate, req TravelRequest) []FinalRecommendation {
	out := make([]FinalRecommendation, len(ranked))

	var wg sync.WaitGroup
	for i, candidate := range ranked {
		wg.Add(1)
		go func(pos int, c ScoredCandidate) {
			defer wg.Done()
			out[pos] = e.enrichOne(ctx, pos, c, req)
		}(i, candidate)
	}
	wg.Wait()

	return out
}

func (e *Enricher) enrichOne(ctx context.Context, index int, c ScoredCandidate, req TravelRequest) FinalRecommendation {
	rec := FinalRecommendation{
		ScoredCandidate:        c,
		RankingPosition:        index + 1,
		Confidence:             e.cfg.ConfidenceLabel(c.FinalScore),
		SuggestedDuration:      e.suggestedDuration(c.Destination, req.DurationDays),
		PersonalizationFactors: e.personalizationFactors(c.Destination, req),
		WeatherInsights:        weatherInsights(c.Destination),
		TransportOptions:       transportOptions(c.Destination),
	}

	rec.BestActivities = e.lookupActivities(ctx, c.ID, req)
	rec.Accommodation = e.lookupAccommodation(ctx, c.ID, req)

	if req.DurationDays >= e.cfg.MultiCityMinDays && index < e.cfg.EnrichTopK {
		rec.MultiCity = e.multiCityOptions(ctx, c.ID, req.DurationDays)
	}

	return rec
}

func (e *Enricher) suggestedDuration(d Destination, requestedDays int) SuggestedDuration {
	base := d.BestVisitDurationDays
	if base <= 0 {
		base = 3
	}
	nearby := d.NearbyAttractionsCount

	minDays := base
	maxDays := base + nearby/2
	optimal := requestedDays
	if optimal < minDays {
		optimal = minDays
	}
	if optimal > maxDays {
		optimal = maxDays
	}

	suggestion := SuggestedDuration{
		MinimumRecommended: minDays,
		MaximumRecommended: maxDays,
		OptimalForRequest:  optimal,
		CanExtend:          nearby >= 3,
	}
	if suggestion.CanExtend {
		suggestion.ExtensionReason = fmt.Sprintf("%d nearby attractions available", nearby)
	}
	return suggestion
}

func (e *Enricher) personalizationFactors(d Destination, req TravelRequest) []string {
	var factors []string
	if d.Category.RomanceScore >= 8 && req.GroupType == GroupCouple {
		factors = append(factors, "Perfect for couples")
	}
	if d.Category.FamilyFriendliness >= 8 && req.GroupType == GroupFamily {
		factors = append(factors, "Excellent for families")
	}
	if d.Category.AdventureLevel >= 8 && req.Age <= 35 {
		factors = append(factors, "Great for adventure seekers")
	}
	if d.Category.CulturalRichness >= 8 {
		factors = append(factors, "Rich cultural experience")
	}
	if d.NearbyAttractionsCount >= 5 && req.DurationDays >= e.cfg.MultiCityMinDays {
		factors = append(factors, "Perfect for extended exploration")
	}
	if d.Quality.SafetyScore >= 9 {
		factors = append(factors, "Excellent safety rating")
	}
	return factors
}

func weatherInsights(d Destination) *WeatherInsights {
	if d.Season == nil {
		return nil
	}
	return &WeatherInsights{
		Temperature:     d.Season.AvgTemperature,
		RainfallMm:      d.Season.AvgRainfallMm,
		HumidityPercent: d.Season.HumidityPercent,
		WeatherScore:    d.Season.WeatherScore,
		IsPeakSeason:    d.Season.IsPeakSeason,
		HasFestivals:    d.Season.FestivalSeason,
		SpecialNotes:    d.Season.SpecialNotes,
		Recommendation:  weatherRecommendation(d.Season.WeatherScore),
	}
}

func weatherRecommendation(score float64) string {
	switch {
	case score >= 9:
		return "Excellent weather expected"
	case score >= 7:
		return "Good weather conditions"
	case score >= 5:
		return "Moderate weather, pack accordingly"
	default:
		return "Check weather forecast before travel"
	}
}

func transportOptions(d Destination) TransportOptions {
	connectivity := d.TransportConnectivityScore
	if connectivity <= 0 {
		connectivity = 5
	}
	return TransportOptions{
		ConnectivityScore: connectivity,
		NearestAirportKm:  d.NearbyAirportDistanceKm,
		FlightAvailable:   d.NearbyAirportDistanceKm > 0 && d.NearbyAirportDistanceKm <= 100,
		TrainAvailable:    connectivity >= 6,
		BusAvailable:      connectivity >= 4,
	}
}

func (e *Enricher) lookupActivities(ctx context.Context, id int64, req TravelRequest) []Activity {
	lookupCtx, cancel := context.WithTimeout(ctx, e.cfg.LookupTimeout)
	defer cancel()

	filter := ActivityFilter{
		Age:      req.Age,
		MaxPrice: int(float64(req.Budget) * e.cfg.ActivityBudgetShare),
		Limit:    e.cfg.ActivityLimit,
	}
	activities, err := e.catalog.FetchActivities(lookupCtx, id, filter)
	if err != nil {
		e.logger.Warn("activity lookup degraded", "destination_id", id, "error", err)
		return nil
	}
	return activities
}

func (e *Enricher) lookupAccommodation(ctx context.Context, id int64, req TravelRequest) *HotelSummary {
	lookupCtx, cancel := context.WithTimeout(ctx, e.cfg.LookupTimeout)
	defer cancel()

	dailyBudget := 0
	if req.DurationDays > 0 {
		dailyBudget = int(float64(req.Budget) / float64(req.DurationDays) * e.cfg.AccommodationBudgetShare)
	}
	summary, found, err := e.catalog.FetchHotelSummary(lookupCtx, id, dailyBudget)
	if err != nil {
		e.logger.Warn("accommodation lookup degraded", "destination_id", id, "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return &summary
}

func (e *Enricher) multiCityOptions(ctx context.Context, id int64, durationDays int) *MultiCityOptions {
	lookupCtx, cancel := context.WithTimeout(ctx, e.cfg.LookupTimeout)
	defer cancel()

	nearby, err := e.catalog.FetchNearby(lookupCtx, id, e.cfg.NearbyRadiusKm, e.cfg.NearbyLimit)
	if err != nil {
		e.logger.Warn("nearby lookup degraded", "destination_id", id, "error", err)
		nearby = nil
	}
	if nearby == nil {
		nearby = []NearbyDestination{}
	}
	return &MultiCityOptions{
		NearbyDestinations:        nearby,
		IsMultiCityRecommended:    len(nearby) >= 2,
		ExtendedItineraryPossible: durationDays >= e.cfg.ExtendedItineraryMinDays && len(nearby) >= 1,
	}
}
