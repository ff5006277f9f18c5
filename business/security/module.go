// Package security implements the contract risk assessment bounded
// context.
package security

import (
	"context"

	"github.com/tokenlens/tokenlens/business/security/app"
	securityDI "github.com/tokenlens/tokenlens/business/security/di"
	"github.com/tokenlens/tokenlens/business/security/infra/goplus"
	"github.com/tokenlens/tokenlens/internal/config"
	"github.com/tokenlens/tokenlens/internal/di"
	"github.com/tokenlens/tokenlens/internal/logger"
	"github.com/tokenlens/tokenlens/internal/monolith"
)

// Module implements the security bounded context.
type Module struct{}

// RegisterServices registers all security services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register SecurityProvider (GoPlus) - private dependency
	di.RegisterToken(c, securityDI.SecurityProvider, func(sr di.ServiceRegistry) app.SecurityProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := goplus.NewProvider(goplus.Config{
			BaseURL:           cfg.Providers.GoPlus.BaseURL,
			RequestsPerMinute: cfg.Providers.GoPlus.RequestsPerMinute,
			Timeout:           cfg.Providers.Timeout,
		}, log)
		if err != nil {
			panic("failed to create goplus provider: " + err.Error())
		}
		return provider
	})

	// Register Assessor (public - exposed to other modules)
	di.RegisterToken(c, securityDI.Assessor, func(sr di.ServiceRegistry) *app.Assessor {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewAssessor(securityDI.GetSecurityProvider(sr), log)
	})

	return nil
}

// Startup initializes the security module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "security module started")
	return nil
}
