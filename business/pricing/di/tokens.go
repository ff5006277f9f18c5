// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/tokenlens/tokenlens/business/pricing/app"
	"github.com/tokenlens/tokenlens/business/pricing/infra/dexscreener"
	"github.com/tokenlens/tokenlens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	CexService  = di.NewToken[*app.CexService]("pricing.CexService")
	PoolService = di.NewToken[*app.PoolService]("pricing.PoolService")

	// MetadataProvider is public: the aggregate module reads token
	// metadata directly.
	MetadataProvider = di.NewToken[app.MetadataProvider]("pricing.MetadataProvider")

	// DexScreener is public for its search endpoint.
	DexScreener = di.NewToken[*dexscreener.Provider]("pricing.DexScreener")
)

// Private dependency tokens - internal to pricing module
var (
	CEXProviders = di.NewToken[[]app.CEXProvider]("pricing:cexProviders")
	PoolProvider = di.NewToken[app.PoolProvider]("pricing:poolProvider")
)

// Helper functions for type-safe access
func GetCexService(c di.ServiceRegistry) *app.CexService {
	return di.GetToken(c, CexService)
}

func GetPoolService(c di.ServiceRegistry) *app.PoolService {
	return di.GetToken(c, PoolService)
}

func GetMetadataProvider(c di.ServiceRegistry) app.MetadataProvider {
	return di.GetToken(c, MetadataProvider)
}

func GetDexScreener(c di.ServiceRegistry) *dexscreener.Provider {
	return di.GetToken(c, DexScreener)
}

func GetCEXProviders(c di.ServiceRegistry) []app.CEXProvider {
	return di.GetToken(c, CEXProviders)
}

func GetPoolProvider(c di.ServiceRegistry) app.PoolProvider {
	return di.GetToken(c, PoolProvider)
}
