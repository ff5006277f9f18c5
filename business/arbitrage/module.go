// Package arbitrage implements the arbitrage bounded context: spread
// detection across venues and price-impact estimation.
package arbitrage

import (
	"context"

	arbitrageDI "github.com/tokenlens/tokenlens/business/arbitrage/di"
	"github.com/tokenlens/tokenlens/business/arbitrage/domain"
	"github.com/tokenlens/tokenlens/internal/di"
	"github.com/tokenlens/tokenlens/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Both services are pure computation with no external dependencies.
	di.RegisterToken(c, arbitrageDI.Engine, func(sr di.ServiceRegistry) *domain.Engine {
		return domain.NewEngine()
	})

	di.RegisterToken(c, arbitrageDI.Estimator, func(sr di.ServiceRegistry) *domain.Estimator {
		return domain.NewEstimator()
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "arbitrage module started")
	return nil
}
