package recommend

import (
	"context"
	"log/slog"
	"sort"

	apperrors "github.com/tripnexus/tripnexus/pkg/errors"
)

// Selector narrows the catalog to a bounded candidate pool using cheap,
// coarse filters. The ordering here only decides what survives truncation;
// final ranking always re-sorts by composite score.
type Selector struct {
	cfg     Config
	catalog CatalogGateway
	logger  *slog.Logger
}

// NewSelector builds the candidate selection stage.
func NewSelector(cfg Config, catalog CatalogGateway, logger *slog.Logger) *Selector {
	return &Selector{cfg: cfg, catalog: catalog, logger: logger.With("component", "recommend.selector")}
}

// Select fetches coarse-filtered candidates and applies the in-core guards
// the gateway contract leaves to the caller. An empty result is a valid
// outcome, not an error.
func (s *Selector) Select(ctx context.Context, req TravelRequest) ([]Destination, error) {
	filter := CandidateFilter{
		Month:                   req.TravelMonth,
		MinRating:               s.cfg.MinRating,
		MinSafety:               s.cfg.MinSafety,
		Category:                req.PreferredCategory,
		DurationDays:            req.DurationDays,
		BudgetCeiling:           float64(req.Budget) * s.cfg.BudgetTolerance,
		SeniorTraveler:          req.Age >= s.cfg.SeniorAge,
		SeniorMaxPhysicalDemand: s.cfg.SeniorMaxPhysicalDemand,
		Limit:                   s.cfg.MaxCandidates,
	}

	fetched, err := s.catalog.FetchCandidates(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap("catalog_error", "candidate fetch failed", err)
	}

	candidates := fetched[:0:len(fetched)]
	for _, d := range fetched {
		if !s.passes(d, req) {
			continue
		}
		candidates = append(candidates, d)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Quality, candidates[j].Quality
		if a.PopularityScore != b.PopularityScore {
			return a.PopularityScore > b.PopularityScore
		}
		if a.OverallRating != b.OverallRating {
			return a.OverallRating > b.OverallRating
		}
		return a.TotalReviews > b.TotalReviews
	})

	if len(candidates) > s.cfg.MaxCandidates {
		candidates = candidates[:s.cfg.MaxCandidates]
	}

	s.logger.Info("candidate selection complete", "fetched", len(fetched), "selected", len(candidates))
	return candidates, nil
}

// passes re-checks the mandatory filters so correctness never depends on how
// much filtering a gateway implementation pushed into its query.
func (s *Selector) passes(d Destination, req TravelRequest) bool {
	if !d.Quality.IsActive {
		return false
	}
	if d.Quality.OverallRating < s.cfg.MinRating {
		return false
	}
	if d.Quality.SafetyScore < s.cfg.MinSafety {
		return false
	}
	if req.PreferredCategory != "" && d.Category.Name != req.PreferredCategory {
		return false
	}
	// Seniors need an elder-accessible destination or a low-demand category.
	if req.Age >= s.cfg.SeniorAge &&
		!d.Quality.IsAccessibleElderly &&
		d.Category.PhysicalDemandLevel > s.cfg.SeniorMaxPhysicalDemand {
		return false
	}

	nightly := d.Costs.MinHotelPrice
	if nightly <= 0 {
		nightly = s.cfg.Defaults.NightlyHotel
	}
	if nightly*float64(req.DurationDays) > float64(req.Budget)*s.cfg.BudgetTolerance {
		return false
	}
	return true
}
