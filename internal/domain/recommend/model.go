package recommend

// GroupType identifies who is travelling together.
type GroupType string

const (
	GroupSolo    GroupType = "Solo"
	GroupCouple  GroupType = "Couple"
	GroupFamily  GroupType = "Family"
	GroupFriends GroupType = "Friends"
)

// ParseGroupType maps free text onto a known group type.
func ParseGroupType(s string) (GroupType, bool) {
	switch GroupType(s) {
	case GroupSolo, GroupCouple, GroupFamily, GroupFriends:
		return GroupType(s), true
	}
	return "", false
}

// TravelRequest carries the demographic and trip constraints for one
// recommendation call. It is owned by the caller and never retained.
type TravelRequest struct {
	DepartureLat      float64   `json:"departure_lat"`
	DepartureLng      float64   `json:"departure_lng"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	Budget            int       `json:"budget"`
	DurationDays      int       `json:"duration_days"`
	TravelMonth       int       `json:"travel_month"`
	GroupType         GroupType `json:"group_type"`
	PreferredCategory string    `json:"preferred_category,omitempty"`
}

// Destination is a catalog row enriched with its category, seasonal and cost
// attributes. The core treats it as read-only.
type Destination struct {
	ID        int64   `json:"destination_id"`
	Name      string  `json:"destination_name"`
	Country   string  `json:"country,omitempty"`
	State     string  `json:"state,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ImageURL  string  `json:"image_url,omitempty"`

	Quality  QualityAttributes  `json:"quality"`
	Category CategoryAttributes `json:"category"`
	// Season is nil when the catalog has no row for the requested month;
	// scoring substitutes documented defaults instead.
	Season *SeasonalWeather `json:"season,omitempty"`
	Costs  CostAttributes   `json:"costs"`

	BestVisitDurationDays      int     `json:"best_visit_duration_days"`
	NearbyAttractionsCount     int     `json:"nearby_attractions_count"`
	TransportConnectivityScore float64 `json:"transport_connectivity_score"`
	NearbyAirportDistanceKm    float64 `json:"nearby_airport_distance_km"`
}

// QualityAttributes describe overall destination quality.
type QualityAttributes struct {
	OverallRating        float64 `json:"overall_rating"`
	TotalReviews         int     `json:"total_reviews"`
	PopularityScore      float64 `json:"popularity_score"`
	SafetyScore          float64 `json:"safety_score"`
	CrowdLevel           float64 `json:"crowd_level"`
	IsActive             bool    `json:"is_active"`
	IsAccessibleElderly  bool    `json:"is_accessible_elderly"`
	IsAccessibleDisabled bool    `json:"is_accessible_disabled"`
}

// CategoryAttributes describe the destination category, scores roughly 0-10.
type CategoryAttributes struct {
	Name                string  `json:"category_name"`
	PhysicalDemandLevel float64 `json:"physical_demand_level"`
	RomanceScore        float64 `json:"romance_score"`
	FamilyFriendliness  float64 `json:"family_friendliness"`
	AdventureLevel      float64 `json:"adventure_level"`
	CulturalRichness    float64 `json:"cultural_richness"`
}

// SeasonalWeather is the per-month weather row for a destination.
type SeasonalWeather struct {
	Month           int     `json:"month"`
	AvgTemperature  float64 `json:"avg_temperature"`
	AvgRainfallMm   float64 `json:"avg_rainfall_mm"`
	HumidityPercent float64 `json:"humidity_percent"`
	WeatherScore    float64 `json:"weather_score"`
	IsPeakSeason    bool    `json:"is_peak_season"`
	FestivalSeason  bool    `json:"festival_season"`
	CrowdMultiplier float64 `json:"crowd_multiplier,omitempty"`
	SpecialNotes    string  `json:"special_notes,omitempty"`
}

// CostAttributes aggregate entry, daily and hotel pricing for a destination.
// Zero values mean the catalog had no data; cost estimation substitutes the
// configured defaults.
type CostAttributes struct {
	EntryFee              float64 `json:"entry_fee"`
	AvgDailyFoodCost      float64 `json:"avg_daily_food_cost"`
	AvgDailyTransportCost float64 `json:"avg_daily_transport_cost"`
	MinHotelPrice         float64 `json:"min_hotel_price"`
	MaxHotelPrice         float64 `json:"max_hotel_price"`
	AvgHotelRating        float64 `json:"avg_hotel_rating"`
	HotelCount            int     `json:"available_hotels_count"`
}

// ScoreBreakdown maps each sub-score to its contribution.
type ScoreBreakdown struct {
	BaseQuality     float64 `json:"base_quality"`
	WeatherSeasonal float64 `json:"weather_seasonal"`
	Distance        float64 `json:"distance"`
	Personalization float64 `json:"personalization"`
	BudgetFit       float64 `json:"budget_fit"`
	DurationMatch   float64 `json:"duration_match"`
	Accessibility   float64 `json:"accessibility"`
}

// ScoredCandidate is a destination with its computed score facts. Created
// once by the scoring engine and immutable afterwards.
type ScoredCandidate struct {
	Destination
	DistanceKm         float64        `json:"distance_km"`
	EstimatedTotalCost int            `json:"estimated_total_cost"`
	FinalScore         float64        `json:"final_score"`
	Breakdown          ScoreBreakdown `json:"score_breakdown"`
}

// SuggestedDuration is the derived visit-length advice for a recommendation.
type SuggestedDuration struct {
	MinimumRecommended int    `json:"minimum_recommended"`
	MaximumRecommended int    `json:"maximum_recommended"`
	OptimalForRequest  int    `json:"optimal_for_request"`
	CanExtend          bool   `json:"can_extend"`
	ExtensionReason    string `json:"extension_reason,omitempty"`
}

// WeatherInsights summarizes the month's conditions for the traveller.
type WeatherInsights struct {
	Temperature     float64 `json:"temperature"`
	RainfallMm      float64 `json:"rainfall_mm"`
	HumidityPercent float64 `json:"humidity_percent"`
	WeatherScore    float64 `json:"weather_rating"`
	IsPeakSeason    bool    `json:"is_peak_season"`
	HasFestivals    bool    `json:"has_festivals"`
	SpecialNotes    string  `json:"special_notes,omitempty"`
	Recommendation  string  `json:"weather_recommendation"`
}

// TransportOptions is a coarse connectivity summary.
type TransportOptions struct {
	ConnectivityScore float64 `json:"connectivity_score"`
	NearestAirportKm  float64 `json:"nearest_airport_km"`
	FlightAvailable   bool    `json:"estimated_flight_available"`
	TrainAvailable    bool    `json:"estimated_train_available"`
	BusAvailable      bool    `json:"estimated_bus_available"`
}

// Activity is a bookable activity at a destination.
type Activity struct {
	ID              int64   `json:"activity_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	DurationHours   float64 `json:"duration_hours"`
	PriceMin        int     `json:"price_min"`
	PriceMax        int     `json:"price_max"`
	DifficultyLevel int     `json:"difficulty_level"`
	PopularityScore float64 `json:"popularity_score"`
	SafetyRating    float64 `json:"safety_rating"`
}

// HotelSummary aggregates accommodation availability at a destination.
type HotelSummary struct {
	TotalHotels         int     `json:"total_hotels"`
	CheapestOption      int     `json:"cheapest_option"`
	MostExpensive       int     `json:"most_expensive"`
	AvgHotelRating      float64 `json:"avg_hotel_rating"`
	CoupleFriendlyCount int     `json:"couple_friendly_count"`
	FamilyFriendlyCount int     `json:"family_friendly_count"`
	BudgetFriendlyCount int     `json:"budget_friendly_count"`
}

// NearbyDestination is a proximity-graph neighbor used for multi-city advice.
type NearbyDestination struct {
	ID                    int64   `json:"destination_id"`
	Name                  string  `json:"name"`
	City                  string  `json:"city,omitempty"`
	OverallRating         float64 `json:"overall_rating"`
	ImageURL              string  `json:"image_url,omitempty"`
	BestVisitDurationDays int     `json:"best_visit_duration_days"`
	DistanceKm            float64 `json:"distance_km"`
	TravelTimeHours       float64 `json:"travel_time_hours,omitempty"`
	TransportationType    string  `json:"transportation_type,omitempty"`
	CostEstimate          float64 `json:"cost_estimate,omitempty"`
}

// MultiCityOptions flags whether a trip can cover more than one destination.
type MultiCityOptions struct {
	NearbyDestinations        []NearbyDestination `json:"nearby_destinations"`
	IsMultiCityRecommended    bool                `json:"is_multi_city_recommended"`
	ExtendedItineraryPossible bool                `json:"extended_itinerary_possible"`
}

// FinalRecommendation is a ranked candidate plus the enrichment fields.
type FinalRecommendation struct {
	ScoredCandidate
	RankingPosition        int               `json:"ranking_position"`
	Confidence             string            `json:"confidence_score"`
	SuggestedDuration      SuggestedDuration `json:"suggested_duration"`
	PersonalizationFactors []string          `json:"personalization_factors,omitempty"`
	WeatherInsights        *WeatherInsights  `json:"weather_forecast,omitempty"`
	TransportOptions       TransportOptions  `json:"transport_options"`
	BestActivities         []Activity        `json:"best_activities,omitempty"`
	Accommodation          *HotelSummary     `json:"accommodation_options,omitempty"`
	MultiCity              *MultiCityOptions `json:"multi_city_options,omitempty"`
}

// Metadata describes one pipeline execution.
type Metadata struct {
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	ResultsCount     int    `json:"results_count"`
	Reason           string `json:"reason,omitempty"`
	CacheHit         bool   `json:"cache_hit,omitempty"`
}

// Result is the full recommendation response.
type Result struct {
	Recommendations []FinalRecommendation `json:"recommendations"`
	Metadata        Metadata              `json:"metadata"`
}

// CostBreakdown itemizes the estimated trip cost for the details view.
type CostBreakdown struct {
	Transport      int `json:"transport"`
	Accommodation  int `json:"accommodation"`
	Food           int `json:"food"`
	LocalTransport int `json:"local_transport"`
	Activities     int `json:"activities"`
	Total          int `json:"total"`
}

// DestinationDetails is the comprehensive single-destination view.
type DestinationDetails struct {
	Destination        Destination         `json:"destination_info"`
	Activities         []Activity          `json:"activities"`
	Accommodation      *HotelSummary       `json:"accommodation_options,omitempty"`
	NearbyDestinations []NearbyDestination `json:"nearby_destinations"`
	WeatherInsights    *WeatherInsights    `json:"travel_insights,omitempty"`
	CostBreakdown      *CostBreakdown      `json:"cost_breakdown,omitempty"`
}
