package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func scoredFixture(id int64, score float64) ScoredCandidate {
	return ScoredCandidate{Destination: jaipurLike(id), FinalScore: score, DistanceKm: 237, EstimatedTotalCost: 16000}
}

func TestEnrichAssignsPositionsAndConfidence(t *testing.T) {
	enricher := NewEnricher(DefaultConfig(), &stubCatalog{}, newTestLogger())

	ranked := []ScoredCandidate{
		scoredFixture(1, 86),
		scoredFixture(2, 66),
		scoredFixture(3, 52),
		scoredFixture(4, 40),
		scoredFixture(5, 12),
	}

	recs := enricher.Enrich(context.Background(), ranked, delhiRequest())
	require.Len(t, recs, 5)

	labels := make([]string, 0, len(recs))
	for i, rec := range recs {
		require.Equal(t, i+1, rec.RankingPosition)
		labels = append(labels, rec.Confidence)
	}
	require.Equal(t, []string{"High", "Medium-High", "Medium", "Medium-Low", "Low"}, labels)
}

func TestEnrichSuggestedDurationClampsToRange(t *testing.T) {
	enricher := NewEnricher(DefaultConfig(), &stubCatalog{}, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 1

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, req)
	duration := recs[0].SuggestedDuration
	// Base hint 3 days, 4 nearby attractions extend the maximum to 5.
	require.Equal(t, 3, duration.MinimumRecommended)
	require.Equal(t, 5, duration.MaximumRecommended)
	require.Equal(t, 3, duration.OptimalForRequest)
	require.True(t, duration.CanExtend)
	require.NotEmpty(t, duration.ExtensionReason)
}

func TestEnrichMultiCityForLongTrips(t *testing.T) {
	neighbors := []NearbyDestination{
		{ID: 11, Name: "Amber Town", DistanceKm: 40, OverallRating: 4.2},
		{ID: 12, Name: "Lake Retreat", DistanceKm: 78, OverallRating: 4.0},
	}
	catalog := &stubCatalog{
		fetchNearbyFn: func(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error) {
			require.Equal(t, 100.0, radiusKm)
			require.Equal(t, 3, limit)
			return neighbors, nil
		},
	}
	enricher := NewEnricher(DefaultConfig(), catalog, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 7

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, req)
	require.NotNil(t, recs[0].MultiCity)
	require.Len(t, recs[0].MultiCity.NearbyDestinations, 2)
	require.True(t, recs[0].MultiCity.IsMultiCityRecommended)
	require.True(t, recs[0].MultiCity.ExtendedItineraryPossible)
}

func TestEnrichMultiCitySkippedForShortTrips(t *testing.T) {
	enricher := NewEnricher(DefaultConfig(), &stubCatalog{}, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 3

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, req)
	require.Nil(t, recs[0].MultiCity)
}

func TestEnrichMultiCityOnlyForTopRanked(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnrichTopK = 1

	catalog := &stubCatalog{
		fetchNearbyFn: func(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error) {
			return []NearbyDestination{{ID: 99, Name: "Somewhere"}}, nil
		},
	}
	enricher := NewEnricher(cfg, catalog, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 7

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80), scoredFixture(2, 70)}, req)
	require.NotNil(t, recs[0].MultiCity)
	require.Nil(t, recs[1].MultiCity)
}

func TestEnrichSingleNeighborMeansExtendedButNotMultiCity(t *testing.T) {
	catalog := &stubCatalog{
		fetchNearbyFn: func(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error) {
			return []NearbyDestination{{ID: 11, Name: "Amber Town", DistanceKm: 40}}, nil
		},
	}
	enricher := NewEnricher(DefaultConfig(), catalog, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 7

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, req)
	require.False(t, recs[0].MultiCity.IsMultiCityRecommended)
	require.True(t, recs[0].MultiCity.ExtendedItineraryPossible)
}

func TestEnrichDegradesGracefullyOnLookupFailures(t *testing.T) {
	boom := errors.New("catalog down")
	catalog := &stubCatalog{
		fetchNearbyFn: func(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error) {
			return nil, boom
		},
		fetchActivitiesFn: func(ctx context.Context, id int64, f ActivityFilter) ([]Activity, error) {
			return nil, boom
		},
		fetchHotelsFn: func(ctx context.Context, id int64, maxNightly int) (HotelSummary, bool, error) {
			return HotelSummary{}, false, boom
		},
	}
	enricher := NewEnricher(DefaultConfig(), catalog, newTestLogger())

	req := delhiRequest()
	req.DurationDays = 7

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, req)
	require.Len(t, recs, 1)
	require.Empty(t, recs[0].BestActivities)
	require.Nil(t, recs[0].Accommodation)
	require.NotNil(t, recs[0].MultiCity)
	require.Empty(t, recs[0].MultiCity.NearbyDestinations)
	require.False(t, recs[0].MultiCity.IsMultiCityRecommended)
	require.Equal(t, 1, recs[0].RankingPosition)
}

func TestEnrichActivityAndHotelFilters(t *testing.T) {
	catalog := &stubCatalog{
		fetchActivitiesFn: func(ctx context.Context, id int64, f ActivityFilter) ([]Activity, error) {
			require.Equal(t, 30, f.Age)
			require.Equal(t, 10000, f.MaxPrice) // 20% of the 50000 budget
			require.Equal(t, 5, f.Limit)
			return []Activity{{ID: 1, Name: "Fort walk"}}, nil
		},
		fetchHotelsFn: func(ctx context.Context, id int64, maxNightly int) (HotelSummary, bool, error) {
			require.Equal(t, 6666, maxNightly) // 40% of the daily budget
			return HotelSummary{TotalHotels: 12}, true, nil
		},
	}
	enricher := NewEnricher(DefaultConfig(), catalog, newTestLogger())

	recs := enricher.Enrich(context.Background(), []ScoredCandidate{scoredFixture(1, 80)}, delhiRequest())
	require.Len(t, recs[0].BestActivities, 1)
	require.Equal(t, 12, recs[0].Accommodation.TotalHotels)
}

func TestWeatherRecommendationBands(t *testing.T) {
	require.Equal(t, "Excellent weather expected", weatherRecommendation(9.5))
	require.Equal(t, "Good weather conditions", weatherRecommendation(7))
	require.Equal(t, "Moderate weather, pack accordingly", weatherRecommendation(5.5))
	require.Equal(t, "Check weather forecast before travel", weatherRecommendation(2))
}
