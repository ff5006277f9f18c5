// Package pricing implements the pricing bounded context: direct CEX
// ticker adapters, DEX pool aggregation, and token metadata resolution.
package pricing

import (
	"context"

	"github.com/tokenlens/tokenlens/business/pricing/app"
	pricingDI "github.com/tokenlens/tokenlens/business/pricing/di"
	"github.com/tokenlens/tokenlens/business/pricing/infra/cex"
	"github.com/tokenlens/tokenlens/business/pricing/infra/coingecko"
	"github.com/tokenlens/tokenlens/business/pricing/infra/dexscreener"
	"github.com/tokenlens/tokenlens/internal/config"
	"github.com/tokenlens/tokenlens/internal/di"
	"github.com/tokenlens/tokenlens/internal/logger"
	"github.com/tokenlens/tokenlens/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register the direct exchange adapter set - private dependency
	di.RegisterToken(c, pricingDI.CEXProviders, func(sr di.ServiceRegistry) []app.CEXProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		adapterCfg := cex.AdapterConfig{
			Timeout:             cfg.Providers.Timeout,
			BreakerMaxFailures:  uint32(cfg.Providers.Cex.BreakerMaxFailures),
			BreakerOpenInterval: cfg.Providers.Cex.BreakerOpenInterval,
		}

		adapters, err := cex.NewAdapters(adapterCfg, cfg.Providers.Cex.BaseURLs, log)
		if err != nil {
			panic("failed to create cex adapters: " + err.Error())
		}

		providers := make([]app.CEXProvider, len(adapters))
		for i, a := range adapters {
			providers[i] = a
		}
		return providers
	})

	// Register DexScreener - public for search, also the pool provider
	di.RegisterToken(c, pricingDI.DexScreener, func(sr di.ServiceRegistry) *dexscreener.Provider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := dexscreener.NewProvider(dexscreener.Config{
			Timeout: cfg.Providers.Timeout,
		}, log)
		if err != nil {
			panic("failed to create dexscreener provider: " + err.Error())
		}
		return provider
	})

	di.RegisterToken(c, pricingDI.PoolProvider, func(sr di.ServiceRegistry) app.PoolProvider {
		return pricingDI.GetDexScreener(sr)
	})

	// Register MetadataProvider (CoinGecko) - public
	di.RegisterToken(c, pricingDI.MetadataProvider, func(sr di.ServiceRegistry) app.MetadataProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := coingecko.NewProvider(coingecko.Config{
			BaseURL:           cfg.Providers.CoinGecko.BaseURL,
			APIKey:            cfg.Providers.CoinGecko.APIKey,
			RequestsPerMinute: cfg.Providers.CoinGecko.RequestsPerMinute,
			Timeout:           cfg.Providers.Timeout,
		}, log)
		if err != nil {
			panic("failed to create coingecko provider: " + err.Error())
		}
		return provider
	})

	// Register CexService (public - exposed to other modules)
	di.RegisterToken(c, pricingDI.CexService, func(sr di.ServiceRegistry) *app.CexService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewCexService(pricingDI.GetCEXProviders(sr), cfg.Providers.Timeout, log)
	})

	// Register PoolService (public - exposed to other modules)
	di.RegisterToken(c, pricingDI.PoolService, func(sr di.ServiceRegistry) *app.PoolService {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewPoolService(pricingDI.GetPoolProvider(sr), log)
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "pricing module started")
	return nil
}
