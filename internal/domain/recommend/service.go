package recommend

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/tripnexus/tripnexus/pkg/errors"
	"github.com/tripnexus/tripnexus/pkg/geo"
	"github.com/tripnexus/tripnexus/pkg/metrics"
)

// ReasonNoCandidates marks a successful response that matched nothing.
const ReasonNoCandidates = "no_candidates_found"

// Service is the recommendation orchestrator, the only entry point the
// delivery layer calls.
type Service interface {
	GetRecommendations(ctx context.Context, req TravelRequest) (Result, error)
	GetDestinationDetails(ctx context.Context, id int64, req DetailRequest) (DestinationDetails, error)
}

type service struct {
	cfg      Config
	selector *Selector
	engine   *Engine
	ranker   Ranker
	enricher *Enricher
	catalog  CatalogGateway
	cache    Store
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the pipeline stages. A nil cache disables caching; the
// pipeline never depends on it for correctness.
func NewService(cfg Config, catalog CatalogGateway, cache Store, cacheTTL time.Duration, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		selector: NewSelector(cfg, catalog, logger),
		engine:   NewEngine(cfg),
		ranker:   NewRanker(cfg.MaxRecommendations),
		enricher: NewEnricher(cfg, catalog, logger),
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		logger:   logger.With("component", "recommend.service"),
		now:      time.Now,
	}
}

// GetRecommendations runs the full pipeline: validate, select, score, rank,
// enrich. Selection and scoring failures fail the request; enrichment
// degradations never do.
func (s *service) GetRecommendations(ctx context.Context, req TravelRequest) (Result, error) {
	start := s.now()

	validated, err := validateRequest(req)
	if err != nil {
		return Result{}, err
	}

	if cached, ok := s.cachedResult(ctx, validated); ok {
		cached.Metadata.ProcessingTimeMs = s.now().Sub(start).Milliseconds()
		return cached, nil
	}

	candidates, err := s.timedSelect(ctx, validated)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		s.logger.Warn("no candidates found for preferences", "month", validated.TravelMonth, "category", validated.PreferredCategory)
		return Result{
			Recommendations: []FinalRecommendation{},
			Metadata: Metadata{
				ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
				ResultsCount:     0,
				Reason:           ReasonNoCandidates,
			},
		}, nil
	}

	scored := s.timedScore(candidates, validated)
	ranked := s.ranker.Rank(scored)
	recommendations := s.timedEnrich(ctx, ranked, validated)

	s.saveToCache(ctx, validated, recommendations)
	s.metrics.Recommendations.Add(float64(len(recommendations)))

	elapsed := s.now().Sub(start)
	s.logger.Info("recommendation generation complete",
		"candidates", len(candidates),
		"results", len(recommendations),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return Result{
		Recommendations: recommendations,
		Metadata: Metadata{
			ProcessingTimeMs: elapsed.Milliseconds(),
			ResultsCount:     len(recommendations),
		},
	}, nil
}

func (s *service) timedSelect(ctx context.Context, req TravelRequest) ([]Destination, error) {
	start := s.now()
	candidates, err := s.selector.Select(ctx, req)
	s.metrics.StageDuration.WithLabelValues("selection").Observe(s.now().Sub(start).Seconds())
	return candidates, err
}

func (s *service) timedScore(candidates []Destination, req TravelRequest) []ScoredCandidate {
	start := s.now()
	scored := s.engine.Score(candidates, req)
	s.metrics.StageDuration.WithLabelValues("scoring").Observe(s.now().Sub(start).Seconds())
	return scored
}

func (s *service) timedEnrich(ctx context.Context, ranked []ScoredCandidate, req TravelRequest) []FinalRecommendation {
	start := s.now()
	recommendations := s.enricher.Enrich(ctx, ranked, req)
	s.metrics.StageDuration.WithLabelValues("enrichment").Observe(s.now().Sub(start).Seconds())
	return recommendations
}

func (s *service) cachedResult(ctx context.Context, req TravelRequest) (Result, bool) {
	if s.cache == nil {
		return Result{}, false
	}
	recs, found, err := s.cache.Get(ctx, CacheKey(req))
	if err != nil {
		s.metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("cache lookup failed", "error", err)
		return Result{}, false
	}
	if !found {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return Result{}, false
	}
	s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return Result{
		Recommendations: recs,
		Metadata: Metadata{
			ResultsCount: len(recs),
			CacheHit:     true,
		},
	}, true
}

func (s *service) saveToCache(ctx context.Context, req TravelRequest, recs []FinalRecommendation) {
	if s.cache == nil || len(recs) == 0 {
		return
	}
	if err := s.cache.Save(ctx, CacheKey(req), recs, s.cacheTTL); err != nil {
		s.logger.Warn("cache save failed", "error", err)
	}
}

// validateRequest coerces and bounds-checks every field before the pipeline
// starts. A violation fails the whole request with an invalid_input code.
func validateRequest(req TravelRequest) (TravelRequest, error) {
	if !geo.ValidLatLng(req.DepartureLat, req.DepartureLng) {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "departure coordinates out of range", nil)
	}
	if req.Age < 5 || req.Age > 100 {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "age must be between 5 and 100", nil)
	}
	if req.Budget < 5000 || req.Budget > 10000000 {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "budget must be between 5000 and 10000000", nil)
	}
	if req.DurationDays < 1 || req.DurationDays > 30 {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "trip duration must be between 1 and 30 days", nil)
	}
	if req.TravelMonth < 1 || req.TravelMonth > 12 {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "travel month must be between 1 and 12", nil)
	}
	if req.GroupType == "" {
		req.GroupType = GroupSolo
	} else if _, ok := ParseGroupType(string(req.GroupType)); !ok {
		return TravelRequest{}, apperrors.Wrap("invalid_input", "group type must be Solo, Couple, Family or Friends", nil)
	}
	return req, nil
}
