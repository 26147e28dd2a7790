//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tripnexus/tripnexus/internal/bootstrap"
	"github.com/tripnexus/tripnexus/internal/domain/recommend"
	"github.com/tripnexus/tripnexus/internal/infra/config"
	httpiface "github.com/tripnexus/tripnexus/internal/interface/http"
	"github.com/tripnexus/tripnexus/pkg/logger"
	"github.com/tripnexus/tripnexus/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideRecommendConfig,
		provideCatalogGateway,
		provideCacheStore,
		provideCacheTTL,
		recommend.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
