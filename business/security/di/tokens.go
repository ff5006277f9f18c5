// Package di contains dependency injection tokens for the security context.
package di

import (
	"github.com/tokenlens/tokenlens/business/security/app"
	"github.com/tokenlens/tokenlens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Assessor = di.NewToken[*app.Assessor]("security.Assessor")
)

// Private dependency tokens - internal to security module
var (
	SecurityProvider = di.NewToken[app.SecurityProvider]("security:provider")
)

// Helper functions for type-safe access
func GetAssessor(c di.ServiceRegistry) *app.Assessor {
	return di.GetToken(c, Assessor)
}

func GetSecurityProvider(c di.ServiceRegistry) app.SecurityProvider {
	return di.GetToken(c, SecurityProvider)
}
