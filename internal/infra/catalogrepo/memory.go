package catalogrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
	"github.com/tripnexus/tripnexus/pkg/geo"
)

// MemoryRepository is an in-memory CatalogGateway used for tests/dev. It
// applies the same coarse filters the Postgres queries push down so both
// backends hand the domain layer equivalent candidate pools.
type MemoryRepository struct {
	mu           sync.RWMutex
	destinations map[int64]recommend.Destination
	seasons      map[int64]map[int]recommend.SeasonalWeather
	activities   map[int64][]recommend.Activity
	hotels       map[int64]recommend.HotelSummary
}

// NewMemoryRepository constructs a catalog backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		destinations: make(map[int64]recommend.Destination),
		seasons:      make(map[int64]map[int]recommend.SeasonalWeather),
		activities:   make(map[int64][]recommend.Activity),
		hotels:       make(map[int64]recommend.HotelSummary),
	}
}

// AddDestination registers a destination. Any Season already set on it is
// stored as that month's row; lookups for other months come back nil.
func (r *MemoryRepository) AddDestination(d recommend.Destination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Season != nil {
		if r.seasons[d.ID] == nil {
			r.seasons[d.ID] = make(map[int]recommend.SeasonalWeather)
		}
		r.seasons[d.ID][d.Season.Month] = *d.Season
		d.Season = nil
	}
	r.destinations[d.ID] = d
}

// AddSeason registers one month's weather row for a destination.
func (r *MemoryRepository) AddSeason(destinationID int64, season recommend.SeasonalWeather) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seasons[destinationID] == nil {
		r.seasons[destinationID] = make(map[int]recommend.SeasonalWeather)
	}
	r.seasons[destinationID][season.Month] = season
}

// AddActivities registers activities for a destination.
func (r *MemoryRepository) AddActivities(destinationID int64, activities ...recommend.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[destinationID] = append(r.activities[destinationID], activities...)
}

// SetHotelSummary registers the hotel aggregate for a destination.
func (r *MemoryRepository) SetHotelSummary(destinationID int64, summary recommend.HotelSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hotels[destinationID] = summary
}

// FetchCandidates implements recommend.CatalogGateway.
func (r *MemoryRepository) FetchCandidates(_ context.Context, f recommend.CandidateFilter) ([]recommend.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []recommend.Destination
	for _, d := range r.destinations {
		if !d.Quality.IsActive {
			continue
		}
		if d.Quality.OverallRating < f.MinRating {
			continue
		}
		if d.Quality.SafetyScore < f.MinSafety {
			continue
		}
		if f.Category != "" && d.Category.Name != f.Category {
			continue
		}
		if f.SeniorTraveler &&
			!d.Quality.IsAccessibleElderly &&
			d.Category.PhysicalDemandLevel > f.SeniorMaxPhysicalDemand {
			continue
		}
		// Unknown hotel prices pass; the selector applies default costs.
		if f.BudgetCeiling > 0 && f.DurationDays > 0 &&
			d.Costs.MinHotelPrice > 0 &&
			d.Costs.MinHotelPrice*float64(f.DurationDays) > f.BudgetCeiling {
			continue
		}
		out = append(out, r.withSeason(d, f.Month))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Quality, out[j].Quality
		if a.PopularityScore != b.PopularityScore {
			return a.PopularityScore > b.PopularityScore
		}
		return a.OverallRating > b.OverallRating
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// FetchDestination implements recommend.CatalogGateway.
func (r *MemoryRepository) FetchDestination(_ context.Context, id int64, month int) (recommend.Destination, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.destinations[id]
	if !ok {
		return recommend.Destination{}, false, nil
	}
	return r.withSeason(d, month), true, nil
}

// FetchNearby implements recommend.CatalogGateway using haversine distance
// over the registered destinations.
func (r *MemoryRepository) FetchNearby(_ context.Context, id int64, radiusKm float64, limit int) ([]recommend.NearbyDestination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	origin, ok := r.destinations[id]
	if !ok {
		return nil, nil
	}

	var out []recommend.NearbyDestination
	for _, d := range r.destinations {
		if d.ID == id || !d.Quality.IsActive {
			continue
		}
		distance := geo.DistanceKm(origin.Latitude, origin.Longitude, d.Latitude, d.Longitude)
		if distance > radiusKm {
			continue
		}
		out = append(out, recommend.NearbyDestination{
			ID:                    d.ID,
			Name:                  d.Name,
			City:                  d.City,
			OverallRating:         d.Quality.OverallRating,
			ImageURL:              d.ImageURL,
			BestVisitDurationDays: d.BestVisitDurationDays,
			DistanceKm:            distance,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FetchActivities implements recommend.CatalogGateway.
func (r *MemoryRepository) FetchActivities(_ context.Context, id int64, f recommend.ActivityFilter) ([]recommend.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []recommend.Activity
	for _, a := range r.activities[id] {
		if f.MaxPrice > 0 && a.PriceMin > f.MaxPrice {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PopularityScore > out[j].PopularityScore })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// FetchHotelSummary implements recommend.CatalogGateway.
func (r *MemoryRepository) FetchHotelSummary(_ context.Context, id int64, _ int) (recommend.HotelSummary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.hotels[id]
	if !ok || summary.TotalHotels == 0 {
		return recommend.HotelSummary{}, false, nil
	}
	return summary, true, nil
}

func (r *MemoryRepository) withSeason(d recommend.Destination, month int) recommend.Destination {
	if months, ok := r.seasons[d.ID]; ok {
		if season, ok := months[month]; ok {
			clone := season
			d.Season = &clone
		}
	}
	return d
}

var _ recommend.CatalogGateway = (*MemoryRepository)(nil)
