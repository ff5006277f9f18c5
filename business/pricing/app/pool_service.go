package app

import (
	"context"
	"time"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// PoolService fetches DEX pools for a token and enriches each with the
// derived fields the rest of the pipeline depends on.
type PoolService struct {
	provider PoolProvider
	logger   logger.LoggerInterface
	now      func() time.Time
}

// NewPoolService creates a PoolService over the given pool provider.
func NewPoolService(provider PoolProvider, log logger.LoggerInterface) *PoolService {
	return &PoolService{
		provider: provider,
		logger:   log,
		now:      time.Now,
	}
}

// FetchPools returns the token's pools filtered to chain (when given),
// each enriched with pool age, DEX tier, and composite score, sorted
// best-first. Pools without a price stay in the list; the price-based
// computations downstream skip them individually.
func (s *PoolService) FetchPools(ctx context.Context, address string, filter *domain.Chain) []domain.DexPoolQuote {
	raw := s.provider.FetchPools(ctx, address, filter)

	pools := make([]domain.DexPoolQuote, 0, len(raw))
	for _, p := range raw {
		if filter != nil && p.Chain != *filter {
			continue
		}
		p.PoolAgeHours = domain.PoolAgeHours(p.CreatedAt, s.now())
		p.Tier = domain.DexTier(p.DexID)
		p.Score = domain.DexScore(p.LiquidityUSD, p.Volume24hUSD, p.Tier, p.PoolAgeHours, p.Txns24h.Total)
		pools = append(pools, p)
	}

	domain.SortPoolsByScore(pools)

	s.logger.Debug(ctx, "pools fetched",
		"address", address,
		"raw", len(raw),
		"kept", len(pools))
	return pools
}
