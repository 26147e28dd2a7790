package recommend

import (
	"context"
	"time"
)

// CandidateFilter is the coarse pre-filter pushed down to the catalog.
// Gateways apply every predicate but may treat absent data as passing (a
// destination without hotel prices survives the budget cut); the selector
// re-checks the mandatory rules with domain defaults filled in.
type CandidateFilter struct {
	Month     int
	MinRating float64
	MinSafety float64
	Category  string

	// Budget ceiling in currency units; a destination whose cheapest known
	// nightly rate times DurationDays exceeds it is cut. Zero disables the cut.
	DurationDays  int
	BudgetCeiling float64

	// Senior travelers only get destinations that are elder-accessible or
	// whose category demand is at or under SeniorMaxPhysicalDemand.
	SeniorTraveler          bool
	SeniorMaxPhysicalDemand float64

	Limit int
}

// ActivityFilter narrows activity lookups during enrichment.
type ActivityFilter struct {
	Age      int
	MaxPrice int
	Limit    int
}

// CatalogGateway is the read-only view of the destination catalog. Concrete
// backends (Postgres, in-memory) live in internal/infra/catalogrepo.
type CatalogGateway interface {
	// FetchCandidates returns active destinations passing the coarse filter,
	// joined with their category, the month's seasonal row when present, and
	// hotel price aggregates.
	FetchCandidates(ctx context.Context, f CandidateFilter) ([]Destination, error)

	// FetchDestination returns a single destination with the given month's
	// seasonal data joined in.
	FetchDestination(ctx context.Context, id int64, month int) (Destination, bool, error)

	// FetchNearby returns proximity-graph neighbors within radiusKm, closest
	// first, at most limit entries.
	FetchNearby(ctx context.Context, id int64, radiusKm float64, limit int) ([]NearbyDestination, error)

	// FetchActivities returns the most popular activities matching the filter.
	FetchActivities(ctx context.Context, id int64, f ActivityFilter) ([]Activity, error)

	// FetchHotelSummary aggregates hotel pricing, counting options at or
	// under maxNightly as budget friendly.
	FetchHotelSummary(ctx context.Context, id int64, maxNightly int) (HotelSummary, bool, error)
}

// Store caches finished recommendation lists. Purely an optimization; the
// pipeline is always correct without it.
type Store interface {
	Get(ctx context.Context, key string) ([]FinalRecommendation, bool, error)
	Save(ctx context.Context, key string, recs []FinalRecommendation, ttl time.Duration) error
}
