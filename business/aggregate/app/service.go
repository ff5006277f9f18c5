// Package app contains the aggregation orchestrator.
package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	arbitrageDomain "github.com/tokenlens/tokenlens/business/arbitrage/domain"
	pricingApp "github.com/tokenlens/tokenlens/business/pricing/app"
	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	securityApp "github.com/tokenlens/tokenlens/business/security/app"
	securityDomain "github.com/tokenlens/tokenlens/business/security/domain"
	"github.com/tokenlens/tokenlens/internal/apperror"
	"github.com/tokenlens/tokenlens/internal/cache"
	"github.com/tokenlens/tokenlens/internal/logger"
)

const (
	// Pools below this liquidity are dropped at final assembly. The
	// arbitrage and best-price passes apply their own stricter floors.
	assemblyLiquidityFloorUSD = 100

	// Score and tier assigned to quotes derived from metadata-provider
	// tickers, which carry less detail than direct adapter quotes.
	metadataCexScore  = 50
	metadataPoolScore = 40

	searchResultLimit = 20
)

// Service orchestrates the full aggregation: parallel provider
// fan-out, CEX merge/dedup, pool filtering, analytics, and assembly.
type Service struct {
	metadata  pricingApp.MetadataProvider
	cex       *pricingApp.CexService
	pools     *pricingApp.PoolService
	assessor  *securityApp.Assessor
	engine    *arbitrageDomain.Engine
	estimator *arbitrageDomain.Estimator
	searcher  TokenSearcher

	priceCache  cache.Store
	searchCache cache.Store
	log         logger.LoggerInterface
	now         func() time.Time
}

// NewService creates the aggregation Service.
func NewService(
	metadata pricingApp.MetadataProvider,
	cex *pricingApp.CexService,
	pools *pricingApp.PoolService,
	assessor *securityApp.Assessor,
	engine *arbitrageDomain.Engine,
	estimator *arbitrageDomain.Estimator,
	searcher TokenSearcher,
	priceCache cache.Store,
	searchCache cache.Store,
	log logger.LoggerInterface,
) *Service {
	return &Service{
		metadata:    metadata,
		cex:         cex,
		pools:       pools,
		assessor:    assessor,
		engine:      engine,
		estimator:   estimator,
		searcher:    searcher,
		priceCache:  priceCache,
		searchCache: searchCache,
		log:         log,
		now:         time.Now,
	}
}

// parseRequest validates chain and address before any provider call is
// made, so bad input costs zero network round trips.
func parseRequest(chain, address string) (pricingDomain.TokenIdentity, error) {
	if !pricingDomain.ValidAddress(address) {
		return pricingDomain.TokenIdentity{}, apperror.Validation(apperror.CodeInvalidAddress, address)
	}
	parsed, err := pricingDomain.ParseChain(chain)
	if err != nil {
		return pricingDomain.TokenIdentity{}, apperror.Validation(apperror.CodeUnsupportedChain, chain)
	}
	return pricingDomain.NewTokenIdentity(parsed, address), nil
}

// AggregatePrice assembles the unified multi-venue view for a token.
// Provider failures degrade to absent data; the request fails only on
// invalid input or when no provider returned anything at all.
func (s *Service) AggregatePrice(ctx context.Context, chain, address string) (*AggregatedPriceView, error) {
	token, err := parseRequest(chain, address)
	if err != nil {
		return nil, err
	}

	cacheKey := "price:" + string(token.Chain) + ":" + token.Address
	if cached, ok := s.priceCache.Get(cacheKey); ok {
		if view, ok := cached.(*AggregatedPriceView); ok {
			s.log.Debug(ctx, "price cache hit", "key", cacheKey)
			return view, nil
		}
	}

	var (
		meta     *pricingDomain.TokenMetadata
		dexPools []pricingDomain.DexPoolQuote
		security *securityDomain.Report
	)

	// Fan out to the independent providers; every worker absorbs its
	// own failures and settles with absent data.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meta = s.metadata.FetchToken(gctx, token.Chain, token.Address)
		return nil
	})
	g.Go(func() error {
		chainFilter := token.Chain
		dexPools = s.pools.FetchPools(gctx, token.Address, &chainFilter)
		return nil
	})
	g.Go(func() error {
		security = s.assessor.Assess(gctx, token.Chain, token.Address)
		return nil
	})
	_ = g.Wait()

	// CEX adapters need a resolved trading symbol.
	var directQuotes []pricingDomain.CexQuote
	symbol := ""
	if meta != nil {
		symbol = meta.Symbol
	}
	if symbol != "" {
		directQuotes = s.cex.FetchAll(ctx, symbol)
	}

	cexQuotes := mergeCexQuotes(meta, symbol, directQuotes)
	allPools := s.assemblePools(token.Chain, dexPools, meta)

	if meta == nil && len(allPools) == 0 && len(cexQuotes) == 0 {
		return nil, apperror.NotFound(apperror.CodeNoPriceData, token.Address)
	}

	best := s.engine.BestPrices(allPools, cexQuotes)

	view := &AggregatedPriceView{
		Token:         tokenSummary(token, meta, allPools),
		DexPools:      allPools,
		CexQuotes:     cexQuotes,
		Security:      security,
		TopPoolRisk:   topPoolRisk(allPools),
		Arbitrage:     s.engine.FindOpportunities(allPools, cexQuotes),
		BestBuy:       best.BestBuy,
		BestSell:      best.BestSell,
		SpreadPercent: best.SpreadPercent,
		UpdatedAt:     s.now().UTC(),
	}
	if meta != nil {
		view.ReferencePriceUSD = meta.PriceUSD
	}

	s.priceCache.Set(cacheKey, view)
	s.log.Info(ctx, "aggregated token",
		"chain", token.Chain,
		"address", token.Address,
		"pools", len(allPools),
		"cex", len(cexQuotes),
		"opportunities", len(view.Arbitrage))
	return view, nil
}

// mergeCexQuotes deduplicates metadata-derived tickers against direct
// adapter quotes by normalized exchange name. Among metadata
// duplicates the higher 24h volume wins; a direct quote always
// replaces a metadata one for the same exchange. The merged list
// sorts by trust score descending.
func mergeCexQuotes(meta *pricingDomain.TokenMetadata, symbol string, direct []pricingDomain.CexQuote) []pricingDomain.CexQuote {
	merged := make(map[string]pricingDomain.CexQuote)
	var order []string

	upsert := func(key string, q pricingDomain.CexQuote) {
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] = q
	}

	if meta != nil {
		for _, t := range meta.Tickers {
			if !t.IsCex || !t.PriceUSD.Valid {
				continue
			}
			key := pricingDomain.NormalizeExchangeName(t.MarketName)
			if existing, seen := merged[key]; seen && !volumeGreater(t.VolumeUSD, existing.Volume24hUSD) {
				continue
			}
			upsert(key, pricingDomain.CexQuote{
				Exchange:     t.MarketName,
				ExchangeID:   key,
				PriceUSD:     t.PriceUSD,
				Volume24hUSD: t.VolumeUSD,
				Tier:         pricingDomain.Tier2,
				TrustScore:   metadataCexScore,
				TradeURL:     pricingDomain.TradeURL(key, symbol),
			})
		}
	}

	for _, q := range direct {
		upsert(pricingDomain.NormalizeExchangeName(q.Exchange), q)
	}

	quotes := make([]pricingDomain.CexQuote, 0, len(order))
	for _, key := range order {
		quotes = append(quotes, merged[key])
	}
	sortByTrustScore(quotes)
	return quotes
}

// volumeGreater treats unknown volume as zero.
func volumeGreater(a, b decimal.NullDecimal) bool {
	av, bv := decimal.Zero, decimal.Zero
	if a.Valid {
		av = a.Decimal
	}
	if b.Valid {
		bv = b.Decimal
	}
	return av.GreaterThan(bv)
}

func sortByTrustScore(quotes []pricingDomain.CexQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].TrustScore > quotes[j].TrustScore
	})
}

// assemblePools combines provider pools with pseudo-pools synthesized
// from the metadata provider's non-CEX tickers, then applies the
// assembly liquidity floor and sorts by score.
func (s *Service) assemblePools(chain pricingDomain.Chain, pools []pricingDomain.DexPoolQuote, meta *pricingDomain.TokenMetadata) []pricingDomain.DexPoolQuote {
	combined := make([]pricingDomain.DexPoolQuote, 0, len(pools))
	combined = append(combined, pools...)

	if meta != nil {
		for _, t := range meta.Tickers {
			if t.IsCex || !t.PriceUSD.Valid {
				continue
			}
			combined = append(combined, pricingDomain.DexPoolQuote{
				Chain:        chain,
				DexID:        "coingecko",
				DexName:      t.MarketName + " (CG)",
				PairAddress:  t.TargetPairID,
				PriceUSD:     t.PriceUSD,
				LiquidityUSD: t.VolumeUSD,
				Volume24hUSD: t.VolumeUSD,
				Tier:         pricingDomain.Tier2,
				Score:        metadataPoolScore,
			})
		}
	}

	filtered := combined[:0]
	for _, p := range combined {
		if p.LiquidityAtLeast(assemblyLiquidityFloorUSD) {
			filtered = append(filtered, p)
		}
	}
	pricingDomain.SortPoolsByScore(filtered)
	return filtered
}

func tokenSummary(token pricingDomain.TokenIdentity, meta *pricingDomain.TokenMetadata, pools []pricingDomain.DexPoolQuote) TokenSummary {
	summary := TokenSummary{
		Name:    "Unknown token",
		Chain:   token.Chain,
		Address: token.Address,
	}
	switch {
	case meta != nil:
		summary.Name = meta.Name
		summary.Symbol = meta.Symbol
		summary.ImageURL = meta.ImageURL
	case len(pools) > 0:
		if pools[0].BaseToken.Name != "" {
			summary.Name = pools[0].BaseToken.Name
		}
		summary.Symbol = pools[0].BaseToken.Symbol
	}
	return summary
}

// topPoolRisk assesses the best-ranked pool after assembly.
func topPoolRisk(pools []pricingDomain.DexPoolQuote) *securityDomain.PoolRisk {
	if len(pools) == 0 {
		return nil
	}
	top := pools[0]

	var liquidity *float64
	if top.LiquidityUSD.Valid {
		v := top.LiquidityUSD.Decimal.InexactFloat64()
		liquidity = &v
	}
	risk := securityDomain.AssessPoolRisk(liquidity, top.PoolAgeHours, top.Txns24h.Total)
	return &risk
}

// EstimateImpact computes per-venue price impact for a hypothetical
// trade against the token's current aggregated view.
func (s *Service) EstimateImpact(ctx context.Context, chain, address string, amountUSD float64, direction arbitrageDomain.TradeDirection) (*arbitrageDomain.ImpactEstimate, error) {
	if amountUSD <= 0 {
		return nil, apperror.Validation(apperror.CodeInvalidTradeSize, "amount must be positive")
	}
	if direction != arbitrageDomain.DirectionBuy && direction != arbitrageDomain.DirectionSell {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "direction must be buy or sell")
	}

	view, err := s.AggregatePrice(ctx, chain, address)
	if err != nil {
		return nil, err
	}

	estimate := s.estimator.Estimate(view.DexPools, view.CexQuotes, amountUSD, direction)
	return &estimate, nil
}

// SearchToken resolves a token identity: metadata provider first, DEX
// pools as fallback. Results cache under a longer TTL than prices.
func (s *Service) SearchToken(ctx context.Context, chain, address string) (*SearchView, error) {
	token, err := parseRequest(chain, address)
	if err != nil {
		return nil, err
	}

	cacheKey := "search:" + string(token.Chain) + ":" + token.Address
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		if view, ok := cached.(*SearchView); ok {
			return view, nil
		}
	}

	if meta := s.metadata.FetchToken(ctx, token.Chain, token.Address); meta != nil {
		view := &SearchView{
			ID:       meta.ID,
			Name:     meta.Name,
			Symbol:   meta.Symbol,
			Chain:    token.Chain,
			Address:  token.Address,
			ImageURL: meta.ImageURL,
			PriceUSD: meta.PriceUSD,
		}
		s.searchCache.Set(cacheKey, view)
		return view, nil
	}

	chainFilter := token.Chain
	if pools := s.pools.FetchPools(ctx, token.Address, &chainFilter); len(pools) > 0 {
		first := pools[0]
		view := &SearchView{
			ID:       "dex-" + first.BaseToken.Address,
			Name:     valueOr(first.BaseToken.Name, "Unknown"),
			Symbol:   valueOr(first.BaseToken.Symbol, "???"),
			Chain:    token.Chain,
			Address:  token.Address,
			PriceUSD: first.PriceUSD,
		}
		s.searchCache.Set(cacheKey, view)
		return view, nil
	}

	return nil, apperror.NotFound(apperror.CodeTokenNotFound, token.Address)
}

// SearchByQuery serves type-ahead lookups against the pool provider's
// token search.
func (s *Service) SearchByQuery(ctx context.Context, query string) ([]pricingDomain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "query")
	}

	cacheKey := "search:q:" + strings.ToLower(query)
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		if results, ok := cached.([]pricingDomain.SearchResult); ok {
			return results, nil
		}
	}

	results := s.searcher.SearchTokens(ctx, query, searchResultLimit)
	s.searchCache.Set(cacheKey, results)
	return results, nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
