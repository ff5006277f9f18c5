// Package app contains the security assessment service and port
// definitions.
package app

import (
	"context"

	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/business/security/domain"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// SecurityProvider fetches a raw contract scan. A nil report means the
// provider does not cover the chain or does not know the contract.
type SecurityProvider interface {
	FetchReport(ctx context.Context, chain pricingDomain.Chain, address string) *domain.RawReport
}

// Assessor turns raw contract scans into assessed reports.
type Assessor struct {
	provider SecurityProvider
	logger   logger.LoggerInterface
}

// NewAssessor creates an Assessor over the given scan provider.
func NewAssessor(provider SecurityProvider, log logger.LoggerInterface) *Assessor {
	return &Assessor{provider: provider, logger: log}
}

// Assess fetches and scores the token's contract scan. Chains the
// provider does not cover yield nil, never a zeroed report.
func (a *Assessor) Assess(ctx context.Context, chain pricingDomain.Chain, address string) *domain.Report {
	raw := a.provider.FetchReport(ctx, chain, address)
	if raw == nil {
		a.logger.Debug(ctx, "no security data",
			"chain", chain, "address", address)
		return nil
	}

	report := domain.Assess(*raw)
	a.logger.Debug(ctx, "security assessed",
		"chain", chain,
		"address", address,
		"score", report.RiskScore,
		"level", report.RiskLevel)
	return report
}
