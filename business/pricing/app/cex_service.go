package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// CexService fans out a ticker request to every configured centralized
// exchange and aggregates the usable quotes.
type CexService struct {
	providers []CEXProvider
	timeout   time.Duration
	logger    logger.LoggerInterface
}

// NewCexService creates a CexService over the given exchange adapters.
func NewCexService(providers []CEXProvider, timeout time.Duration, log logger.LoggerInterface) *CexService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CexService{
		providers: providers,
		timeout:   timeout,
		logger:    log,
	}
}

// FetchAll queries every exchange concurrently and returns the quotes
// that carry a positive price, sorted by tier then trust score. A slow
// or failing exchange never blocks the rest: each call runs under its
// own timeout and resolves to nil on failure.
func (s *CexService) FetchAll(ctx context.Context, symbol string) []domain.CexQuote {
	results := make([]*domain.CexQuote, len(s.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.providers {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()
			results[i] = p.FetchQuote(callCtx, symbol)
			return nil
		})
	}
	// Workers never return errors, so Wait only observes ctx cancellation.
	_ = g.Wait()

	quotes := make([]domain.CexQuote, 0, len(results))
	for i, q := range results {
		if q == nil {
			s.logger.Debug(ctx, "cex quote unavailable",
				"exchange", s.providers[i].ExchangeID(),
				"symbol", symbol)
			continue
		}
		if !q.HasPrice() {
			continue
		}
		q.TrustScore = domain.CexTrustScore(q.Volume24hUSD, q.Tier, q.SpreadPercent)
		quotes = append(quotes, *q)
	}

	domain.SortCexQuotes(quotes)

	s.logger.Info(ctx, "cex fan-out complete",
		"symbol", symbol,
		"queried", len(s.providers),
		"quoted", len(quotes))
	return quotes
}
