// Package aggregate implements the orchestrating bounded context: it
// fans out to pricing and security, runs the arbitrage analytics, and
// assembles the unified response served over HTTP.
package aggregate

import (
	"context"

	"github.com/tokenlens/tokenlens/business/aggregate/app"
	aggregateDI "github.com/tokenlens/tokenlens/business/aggregate/di"
	"github.com/tokenlens/tokenlens/business/aggregate/infra/rest"
	arbitrageDI "github.com/tokenlens/tokenlens/business/arbitrage/di"
	pricingDI "github.com/tokenlens/tokenlens/business/pricing/di"
	securityDI "github.com/tokenlens/tokenlens/business/security/di"
	"github.com/tokenlens/tokenlens/internal/cache"
	"github.com/tokenlens/tokenlens/internal/di"
	"github.com/tokenlens/tokenlens/internal/logger"
	"github.com/tokenlens/tokenlens/internal/monolith"
)

// Module implements the aggregate bounded context.
type Module struct{}

// RegisterServices registers all aggregate services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, aggregateDI.Service, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get("logger").(logger.LoggerInterface)
		priceCache := sr.Get("priceCache").(cache.Store)
		searchCache := sr.Get("searchCache").(cache.Store)

		return app.NewService(
			pricingDI.GetMetadataProvider(sr),
			pricingDI.GetCexService(sr),
			pricingDI.GetPoolService(sr),
			securityDI.GetAssessor(sr),
			arbitrageDI.GetEngine(sr),
			arbitrageDI.GetEstimator(sr),
			pricingDI.GetDexScreener(sr),
			priceCache,
			searchCache,
			log,
		)
	})

	di.RegisterToken(c, aggregateDI.API, func(sr di.ServiceRegistry) *rest.API {
		log := sr.Get("logger").(logger.LoggerInterface)
		return rest.NewAPI(aggregateDI.GetService(sr), log)
	})

	return nil
}

// Startup initializes the aggregate module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "aggregate module started")
	return nil
}
