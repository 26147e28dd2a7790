package catalogrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
)

// PostgresRepository implements recommend.CatalogGateway using pgx.
type PostgresRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresRepository {
	if queryTimeout <= 0 {
		queryTimeout = 3 * time.Second
	}
	return &PostgresRepository{pool: pool, queryTimeout: queryTimeout}
}

const destinationColumns = `
	d.id, d.name, d.country, d.state, d.city, d.latitude, d.longitude, d.image_url,
	d.overall_rating, d.total_reviews, d.popularity_score, d.safety_score, d.crowd_level,
	d.is_active, d.is_accessible_elderly, d.is_accessible_disabled,
	d.best_visit_duration_days, d.nearby_attractions_count,
	d.transport_connectivity_score, d.nearby_airport_distance_km,
	d.entry_fee, d.avg_daily_food_cost, d.avg_daily_transport_cost,
	dc.name, dc.physical_demand_level, dc.romance_score, dc.family_friendliness,
	dc.adventure_level, dc.cultural_richness,
	sw.month, sw.avg_temperature, sw.avg_rainfall_mm, sw.humidity_percent,
	sw.weather_score, sw.is_peak_season, sw.festival_season, sw.crowd_multiplier, sw.special_notes,
	h.min_price, h.max_price, h.avg_rating, h.hotel_count`

const destinationJoins = `
	FROM destinations d
	JOIN destination_categories dc ON dc.id = d.category_id
	LEFT JOIN seasonal_weather sw ON sw.destination_id = d.id AND sw.month = $1
	LEFT JOIN LATERAL (
		SELECT MIN(price_per_night) AS min_price,
		       MAX(price_per_night) AS max_price,
		       AVG(rating) AS avg_rating,
		       COUNT(*) AS hotel_count
		FROM hotels
		WHERE destination_id = d.id AND is_active = TRUE
	) h ON TRUE`

// FetchCandidates returns active destinations passing the coarse filter,
// joined with category, the requested month's seasonal row and hotel
// aggregates. Destinations with no hotel rows pass the budget predicate; the
// selector re-checks them with default costs filled in.
func (r *PostgresRepository) FetchCandidates(ctx context.Context, f recommend.CandidateFilter) ([]recommend.Destination, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(queryCtx, `
		SELECT `+destinationColumns+destinationJoins+`
		WHERE d.is_active = TRUE
		  AND d.overall_rating >= $2
		  AND d.safety_score >= $3
		  AND ($4 = '' OR dc.name = $4)
		  AND (NOT $5 OR d.is_accessible_elderly = TRUE OR dc.physical_demand_level <= $6)
		  AND ($7 <= 0 OR $8 <= 0 OR COALESCE(h.min_price, 0) * $8 <= $7)
		ORDER BY d.popularity_score DESC, d.overall_rating DESC
		LIMIT $9
	`, f.Month, f.MinRating, f.MinSafety, f.Category,
		f.SeniorTraveler, f.SeniorMaxPhysicalDemand,
		f.BudgetCeiling, f.DurationDays, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recommend.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FetchDestination returns a single destination with the month's seasonal row.
func (r *PostgresRepository) FetchDestination(ctx context.Context, id int64, month int) (recommend.Destination, bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(queryCtx, `
		SELECT `+destinationColumns+destinationJoins+`
		WHERE d.id = $2
		LIMIT 1
	`, month, id)
	if err != nil {
		return recommend.Destination{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return recommend.Destination{}, false, rows.Err()
	}
	d, err := scanDestination(rows)
	if err != nil {
		return recommend.Destination{}, false, err
	}
	return d, true, rows.Err()
}

// FetchNearby returns proximity-graph neighbors within radiusKm, closest first.
func (r *PostgresRepository) FetchNearby(ctx context.Context, id int64, radiusKm float64, limit int) ([]recommend.NearbyDestination, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(queryCtx, `
		SELECT n.id, n.name, n.city, n.overall_rating, n.image_url,
		       n.best_visit_duration_days, p.distance_km,
		       p.travel_time_hours, p.transportation_type, p.cost_estimate
		FROM destination_proximity p
		JOIN destinations n ON n.id = p.nearby_destination_id
		WHERE p.destination_id = $1
		  AND p.distance_km <= $2
		  AND n.is_active = TRUE
		ORDER BY p.distance_km ASC
		LIMIT $3
	`, id, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recommend.NearbyDestination
	for rows.Next() {
		var (
			n         recommend.NearbyDestination
			city      sql.NullString
			imageURL  sql.NullString
			travel    sql.NullFloat64
			transport sql.NullString
			cost      sql.NullFloat64
		)
		if err := rows.Scan(&n.ID, &n.Name, &city, &n.OverallRating, &imageURL,
			&n.BestVisitDurationDays, &n.DistanceKm, &travel, &transport, &cost); err != nil {
			return nil, err
		}
		n.City = city.String
		n.ImageURL = imageURL.String
		n.TravelTimeHours = travel.Float64
		n.TransportationType = transport.String
		n.CostEstimate = cost.Float64
		out = append(out, n)
	}
	return out, rows.Err()
}

// FetchActivities returns the most popular active activities under the filter.
func (r *PostgresRepository) FetchActivities(ctx context.Context, id int64, f recommend.ActivityFilter) ([]recommend.Activity, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(queryCtx, `
		SELECT id, name, description, category, duration_hours,
		       price_min, price_max, difficulty_level, popularity_score, safety_rating
		FROM activities
		WHERE destination_id = $1
		  AND is_active = TRUE
		  AND ($2 <= 0 OR min_age <= $2)
		  AND ($3 <= 0 OR price_min <= $3)
		ORDER BY popularity_score DESC
		LIMIT $4
	`, id, f.Age, f.MaxPrice, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []recommend.Activity
	for rows.Next() {
		var (
			a           recommend.Activity
			description sql.NullString
			category    sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &description, &category, &a.DurationHours,
			&a.PriceMin, &a.PriceMax, &a.DifficultyLevel, &a.PopularityScore, &a.SafetyRating); err != nil {
			return nil, err
		}
		a.Description = description.String
		a.Category = category.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// FetchHotelSummary aggregates hotel pricing for one destination.
func (r *PostgresRepository) FetchHotelSummary(ctx context.Context, id int64, maxNightly int) (recommend.HotelSummary, bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var (
		summary  recommend.HotelSummary
		cheapest sql.NullInt64
		priciest sql.NullInt64
		avg      sql.NullFloat64
	)
	err := r.pool.QueryRow(queryCtx, `
		SELECT COUNT(*),
		       MIN(price_per_night),
		       MAX(price_per_night),
		       AVG(rating),
		       COUNT(*) FILTER (WHERE couple_friendly),
		       COUNT(*) FILTER (WHERE family_friendly),
		       COUNT(*) FILTER (WHERE price_per_night <= $2)
		FROM hotels
		WHERE destination_id = $1 AND is_active = TRUE
	`, id, maxNightly).Scan(&summary.TotalHotels, &cheapest, &priciest, &avg,
		&summary.CoupleFriendlyCount, &summary.FamilyFriendlyCount, &summary.BudgetFriendlyCount)
	if err != nil {
		return recommend.HotelSummary{}, false, err
	}
	if summary.TotalHotels == 0 {
		return recommend.HotelSummary{}, false, nil
	}
	summary.CheapestOption = int(cheapest.Int64)
	summary.MostExpensive = int(priciest.Int64)
	summary.AvgHotelRating = avg.Float64
	return summary, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (recommend.Destination, error) {
	var (
		d recommend.Destination

		country  sql.NullString
		state    sql.NullString
		city     sql.NullString
		imageURL sql.NullString

		seasonMonth      sql.NullInt64
		seasonTemp       sql.NullFloat64
		seasonRainfall   sql.NullFloat64
		seasonHumidity   sql.NullFloat64
		seasonScore      sql.NullFloat64
		seasonPeak       sql.NullBool
		seasonFestival   sql.NullBool
		seasonMultiplier sql.NullFloat64
		seasonNotes      sql.NullString

		minHotel   sql.NullFloat64
		maxHotel   sql.NullFloat64
		avgRating  sql.NullFloat64
		hotelCount sql.NullInt64
	)

	err := row.Scan(
		&d.ID, &d.Name, &country, &state, &city, &d.Latitude, &d.Longitude, &imageURL,
		&d.Quality.OverallRating, &d.Quality.TotalReviews, &d.Quality.PopularityScore,
		&d.Quality.SafetyScore, &d.Quality.CrowdLevel,
		&d.Quality.IsActive, &d.Quality.IsAccessibleElderly, &d.Quality.IsAccessibleDisabled,
		&d.BestVisitDurationDays, &d.NearbyAttractionsCount,
		&d.TransportConnectivityScore, &d.NearbyAirportDistanceKm,
		&d.Costs.EntryFee, &d.Costs.AvgDailyFoodCost, &d.Costs.AvgDailyTransportCost,
		&d.Category.Name, &d.Category.PhysicalDemandLevel, &d.Category.RomanceScore,
		&d.Category.FamilyFriendliness, &d.Category.AdventureLevel, &d.Category.CulturalRichness,
		&seasonMonth, &seasonTemp, &seasonRainfall, &seasonHumidity,
		&seasonScore, &seasonPeak, &seasonFestival, &seasonMultiplier, &seasonNotes,
		&minHotel, &maxHotel, &avgRating, &hotelCount,
	)
	if err != nil {
		return recommend.Destination{}, err
	}

	d.Country = country.String
	d.State = state.String
	d.City = city.String
	d.ImageURL = imageURL.String

	if seasonMonth.Valid {
		d.Season = &recommend.SeasonalWeather{
			Month:           int(seasonMonth.Int64),
			AvgTemperature:  seasonTemp.Float64,
			AvgRainfallMm:   seasonRainfall.Float64,
			HumidityPercent: seasonHumidity.Float64,
			WeatherScore:    seasonScore.Float64,
			IsPeakSeason:    seasonPeak.Bool,
			FestivalSeason:  seasonFestival.Bool,
			CrowdMultiplier: seasonMultiplier.Float64,
			SpecialNotes:    seasonNotes.String,
		}
	}

	d.Costs.MinHotelPrice = minHotel.Float64
	d.Costs.MaxHotelPrice = maxHotel.Float64
	d.Costs.AvgHotelRating = avgRating.Float64
	d.Costs.HotelCount = int(hotelCount.Int64)

	return d, nil
}

var _ recommend.CatalogGateway = (*PostgresRepository)(nil)
