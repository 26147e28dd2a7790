package recommend

import (
	"context"
	"sync"

	apperrors "github.com/tripnexus/tripnexus/pkg/errors"
	"github.com/tripnexus/tripnexus/pkg/geo"
)

// DetailRequest scopes a single-destination details lookup.
type DetailRequest struct {
	Month        int       `json:"month"`
	Age          int       `json:"age"`
	Budget       int       `json:"budget"`
	DurationDays int       `json:"duration_days"`
	GroupType    GroupType `json:"group_type"`
	DepartureLat float64   `json:"departure_lat"`
	DepartureLng float64   `json:"departure_lng"`
}

// GetDestinationDetails assembles the comprehensive single-destination view.
// The destination fetch is mandatory; activities, accommodation and nearby
// lookups are independent and degrade to empty values individually.
func (s *service) GetDestinationDetails(ctx context.Context, id int64, req DetailRequest) (DestinationDetails, error) {
	if req.Month < 1 || req.Month > 12 {
		return DestinationDetails{}, apperrors.Wrap("invalid_input", "month must be between 1 and 12", nil)
	}

	destination, found, err := s.catalog.FetchDestination(ctx, id, req.Month)
	if err != nil {
		return DestinationDetails{}, apperrors.Wrap("catalog_error", "destination fetch failed", err)
	}
	if !found {
		return DestinationDetails{}, apperrors.Wrap("not_found", "destination not found", nil)
	}

	details := DestinationDetails{
		Destination:     destination,
		Activities:      []Activity{},
		WeatherInsights: weatherInsights(destination),
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if activities := s.detailActivities(ctx, id, req); activities != nil {
			details.Activities = activities
		}
	}()
	go func() {
		defer wg.Done()
		details.Accommodation = s.detailAccommodation(ctx, id, req)
	}()
	go func() {
		defer wg.Done()
		details.NearbyDestinations = s.detailNearby(ctx, id)
	}()
	wg.Wait()

	if details.NearbyDestinations == nil {
		details.NearbyDestinations = []NearbyDestination{}
	}

	if req.Budget > 0 && req.DurationDays > 0 && geo.ValidLatLng(req.DepartureLat, req.DepartureLng) {
		distance := geo.DistanceKm(req.DepartureLat, req.DepartureLng, destination.Latitude, destination.Longitude)
		breakdown := s.engine.EstimateTripCost(destination, TravelRequest{
			Budget:       req.Budget,
			DurationDays: req.DurationDays,
		}, distance)
		details.CostBreakdown = &breakdown
	}

	return details, nil
}

func (s *service) detailActivities(ctx context.Context, id int64, req DetailRequest) []Activity {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	filter := ActivityFilter{
		Age:      req.Age,
		MaxPrice: int(float64(req.Budget) * s.cfg.ActivityBudgetShare),
		Limit:    20,
	}
	activities, err := s.catalog.FetchActivities(lookupCtx, id, filter)
	if err != nil {
		s.logger.Warn("detail activities degraded", "destination_id", id, "error", err)
		return nil
	}
	return activities
}

func (s *service) detailAccommodation(ctx context.Context, id int64, req DetailRequest) *HotelSummary {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	dailyBudget := 0
	if req.DurationDays > 0 {
		dailyBudget = int(float64(req.Budget) / float64(req.DurationDays) * s.cfg.AccommodationBudgetShare)
	}
	summary, found, err := s.catalog.FetchHotelSummary(lookupCtx, id, dailyBudget)
	if err != nil {
		s.logger.Warn("detail accommodation degraded", "destination_id", id, "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return &summary
}

func (s *service) detailNearby(ctx context.Context, id int64) []NearbyDestination {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	nearby, err := s.catalog.FetchNearby(lookupCtx, id, s.cfg.NearbyRadiusKm, 5)
	if err != nil {
		s.logger.Warn("detail nearby degraded", "destination_id", id, "error", err)
		return nil
	}
	return nearby
}
