// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/tokenlens/tokenlens/business/arbitrage/domain"
	"github.com/tokenlens/tokenlens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Engine    = di.NewToken[*domain.Engine]("arbitrage.Engine")
	Estimator = di.NewToken[*domain.Estimator]("arbitrage.Estimator")
)

// Helper functions for type-safe access
func GetEngine(c di.ServiceRegistry) *domain.Engine {
	return di.GetToken(c, Engine)
}

func GetEstimator(c di.ServiceRegistry) *domain.Estimator {
	return di.GetToken(c, Estimator)
}
