package recommend

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/tripnexus/tripnexus/pkg/metrics"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubCatalog lets each test script the gateway responses.
type stubCatalog struct {
	fetchCandidatesFn  func(ctx context.Context, f CandidateFilter) ([]Destination, error)
	fetchDestinationFn func(ctx context.Context, id int64, month int) (Destination, bool, error)
	fetchNearbyFn      func(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error)
	fetchActivitiesFn  func(ctx context.Context, id int64, f ActivityFilter) ([]Activity, error)
	fetchHotelsFn      func(ctx context.Context, id int64, maxNightly int) (HotelSummary, bool, error)
}

func (s *stubCatalog) FetchCandidates(ctx context.Context, f CandidateFilter) ([]Destination, error) {
	if s.fetchCandidatesFn == nil {
		return nil, nil
	}
	return s.fetchCandidatesFn(ctx, f)
}

func (s *stubCatalog) FetchDestination(ctx context.Context, id int64, month int) (Destination, bool, error) {
	if s.fetchDestinationFn == nil {
		return Destination{}, false, nil
	}
	return s.fetchDestinationFn(ctx, id, month)
}

func (s *stubCatalog) FetchNearby(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error) {
	if s.fetchNearbyFn == nil {
		return nil, nil
	}
	return s.fetchNearbyFn(ctx, id, radiusKm, limit)
}

func (s *stubCatalog) FetchActivities(ctx context.Context, id int64, f ActivityFilter) ([]Activity, error) {
	if s.fetchActivitiesFn == nil {
		return nil, nil
	}
	return s.fetchActivitiesFn(ctx, id, f)
}

func (s *stubCatalog) FetchHotelSummary(ctx context.Context, id int64, maxNightly int) (HotelSummary, bool, error) {
	if s.fetchHotelsFn == nil {
		return HotelSummary{}, false, nil
	}
	return s.fetchHotelsFn(ctx, id, maxNightly)
}

// stubStore scripts cache behavior.
type stubStore struct {
	getFn   func(ctx context.Context, key string) ([]FinalRecommendation, bool, error)
	saveFn  func(ctx context.Context, key string, recs []FinalRecommendation, ttl time.Duration) error
	saves   int
	lastKey string
}

func (s *stubStore) Get(ctx context.Context, key string) ([]FinalRecommendation, bool, error) {
	s.lastKey = key
	if s.getFn == nil {
		return nil, false, nil
	}
	return s.getFn(ctx, key)
}

func (s *stubStore) Save(ctx context.Context, key string, recs []FinalRecommendation, ttl time.Duration) error {
	s.saves++
	s.lastKey = key
	if s.saveFn == nil {
		return nil
	}
	return s.saveFn(ctx, key, recs, ttl)
}

// jaipurLike is roughly 237 km from the Delhi departure point used in tests.
func jaipurLike(id int64) Destination {
	return Destination{
		ID:        id,
		Name:      "Pink City",
		Country:   "India",
		City:      "Jaipur",
		Latitude:  26.9124,
		Longitude: 75.7873,
		Quality: QualityAttributes{
			OverallRating:       4.5,
			TotalReviews:        1200,
			PopularityScore:     8,
			SafetyScore:         8,
			CrowdLevel:          5,
			IsActive:            true,
			IsAccessibleElderly: true,
		},
		Category: CategoryAttributes{
			Name:                "Heritage",
			PhysicalDemandLevel: 3,
			RomanceScore:        9,
			FamilyFriendliness:  7,
			AdventureLevel:      5,
			CulturalRichness:    9,
		},
		Season: &SeasonalWeather{
			Month:          6,
			AvgTemperature: 28,
			WeatherScore:   8,
			IsPeakSeason:   false,
			FestivalSeason: false,
		},
		Costs: CostAttributes{
			MinHotelPrice:         2000,
			AvgDailyFoodCost:      1000,
			AvgDailyTransportCost: 500,
		},
		BestVisitDurationDays:      3,
		NearbyAttractionsCount:     4,
		TransportConnectivityScore: 7,
		NearbyAirportDistanceKm:    15,
	}
}

func delhiRequest() TravelRequest {
	return TravelRequest{
		DepartureLat: 28.6139,
		DepartureLng: 77.2090,
		Age:          30,
		Gender:       "male",
		Budget:       50000,
		DurationDays: 3,
		TravelMonth:  6,
		GroupType:    GroupCouple,
	}
}

func newTestService(catalog CatalogGateway, cache Store) *service {
	cfg := DefaultConfig()
	svc := NewService(cfg, catalog, cache, time.Hour, metrics.New(), newTestLogger()).(*service)
	return svc
}
