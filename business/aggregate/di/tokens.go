// Package di contains dependency injection tokens for the aggregate context.
package di

import (
	"github.com/tokenlens/tokenlens/business/aggregate/app"
	"github.com/tokenlens/tokenlens/business/aggregate/infra/rest"
	"github.com/tokenlens/tokenlens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Service = di.NewToken[*app.Service]("aggregate.Service")
	API     = di.NewToken[*rest.API]("aggregate.API")
)

// Helper functions for type-safe access
func GetService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, Service)
}

func GetAPI(c di.ServiceRegistry) *rest.API {
	return di.GetToken(c, API)
}
