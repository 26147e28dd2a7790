package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
	"github.com/tripnexus/tripnexus/internal/infra/catalogrepo"
	"github.com/tripnexus/tripnexus/internal/infra/config"
	"github.com/tripnexus/tripnexus/internal/infra/reccache"
)

func provideRecommendConfig(cfg *config.Config) recommend.Config {
	rc := recommend.DefaultConfig()
	if cfg.Recommend.MaxCandidates > 0 {
		rc.MaxCandidates = cfg.Recommend.MaxCandidates
	}
	if cfg.Recommend.MaxRecommendations > 0 {
		rc.MaxRecommendations = cfg.Recommend.MaxRecommendations
	}
	if cfg.Recommend.MinRating > 0 {
		rc.MinRating = cfg.Recommend.MinRating
	}
	if cfg.Recommend.MinSafety > 0 {
		rc.MinSafety = cfg.Recommend.MinSafety
	}
	if cfg.Recommend.EnrichTopK > 0 {
		rc.EnrichTopK = cfg.Recommend.EnrichTopK
	}
	return rc
}

func provideCatalogGateway(cfg *config.Config, logger *slog.Logger) recommend.CatalogGateway {
	fallback := catalogrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Catalog.DSN)
	if dsn == "" {
		logger.Info("catalog postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Catalog.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.MaxConns
	}
	if cfg.Catalog.MinConns > 0 {
		poolConfig.MinConns = cfg.Catalog.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("catalog postgres repository enabled")
	return catalogrepo.NewPostgresRepository(pool, cfg.Catalog.QueryTimeout)
}

// provideCacheStore returns nil when caching is disabled; the service treats
// a nil store as cache-off. The memory fallback applies only when an enabled
// valkey cache cannot be reached.
func provideCacheStore(cfg *config.Config, logger *slog.Logger) recommend.Store {
	if !cfg.Cache.Enabled {
		logger.Info("recommendation cache disabled")
		return nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return reccache.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return reccache.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		return reccache.NewMemoryStore()
	}
	logger.Info("recommendation valkey cache enabled", "addr", cfg.Cache.Addr)
	return reccache.NewValkeyStore(client)
}

func provideCacheTTL(cfg *config.Config) time.Duration {
	return cfg.Cache.TTL
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
