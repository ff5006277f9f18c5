package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	arbitrageDomain "github.com/tokenlens/tokenlens/business/arbitrage/domain"
	pricingApp "github.com/tokenlens/tokenlens/business/pricing/app"
	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	securityApp "github.com/tokenlens/tokenlens/business/security/app"
	securityDomain "github.com/tokenlens/tokenlens/business/security/domain"
	"github.com/tokenlens/tokenlens/internal/apperror"
	"github.com/tokenlens/tokenlens/internal/cache"
	"github.com/tokenlens/tokenlens/internal/logger"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = mockLogger{}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

type fakeMetadata struct {
	meta  *pricingDomain.TokenMetadata
	calls int
}

func (f *fakeMetadata) FetchToken(ctx context.Context, chain pricingDomain.Chain, address string) *pricingDomain.TokenMetadata {
	f.calls++
	return f.meta
}

type fakePoolProvider struct {
	pools []pricingDomain.DexPoolQuote
	calls int
}

func (f *fakePoolProvider) FetchPools(ctx context.Context, address string, filter *pricingDomain.Chain) []pricingDomain.DexPoolQuote {
	f.calls++
	return f.pools
}

type fakeCEX struct {
	id    string
	quote *pricingDomain.CexQuote
	calls int
}

func (f *fakeCEX) ExchangeID() string { return f.id }

func (f *fakeCEX) FetchQuote(ctx context.Context, symbol string) *pricingDomain.CexQuote {
	f.calls++
	if f.quote == nil {
		return nil
	}
	q := *f.quote
	return &q
}

type fakeSecurity struct {
	raw   *securityDomain.RawReport
	calls int
}

func (f *fakeSecurity) FetchReport(ctx context.Context, chain pricingDomain.Chain, address string) *securityDomain.RawReport {
	f.calls++
	return f.raw
}

type fakeSearcher struct {
	results []pricingDomain.SearchResult
	calls   int
}

func (f *fakeSearcher) SearchTokens(ctx context.Context, query string, limit int) []pricingDomain.SearchResult {
	f.calls++
	return f.results
}

type fixture struct {
	svc      *Service
	metadata *fakeMetadata
	pools    *fakePoolProvider
	cex      []*fakeCEX
	security *fakeSecurity
	searcher *fakeSearcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		metadata: &fakeMetadata{},
		pools:    &fakePoolProvider{},
		security: &fakeSecurity{},
		searcher: &fakeSearcher{},
	}

	log := mockLogger{}
	f.svc = NewService(
		f.metadata,
		pricingApp.NewCexService(nil, time.Second, log),
		pricingApp.NewPoolService(f.pools, log),
		securityApp.NewAssessor(f.security, log),
		arbitrageDomain.NewEngine(),
		arbitrageDomain.NewEstimator(),
		f.searcher,
		cache.New(16, time.Minute),
		cache.New(16, time.Minute),
		log,
	)
	return f
}

func (f *fixture) withCEX(log logger.LoggerInterface, adapters ...*fakeCEX) {
	f.cex = adapters
	providers := make([]pricingApp.CEXProvider, len(adapters))
	for i, a := range adapters {
		providers[i] = a
	}
	f.svc.cex = pricingApp.NewCexService(providers, time.Second, log)
}

func (f *fixture) providerCalls() int {
	calls := f.metadata.calls + f.pools.calls + f.security.calls
	for _, c := range f.cex {
		calls += c.calls
	}
	return calls
}

const (
	evmAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	bscAddress = "0x1234567890abcdef1234567890abcdef12345678"
)

func rawPool(chain pricingDomain.Chain, dexID, price, liquidity string) pricingDomain.DexPoolQuote {
	return pricingDomain.DexPoolQuote{
		Chain:        chain,
		DexID:        dexID,
		DexName:      strings.ReplaceAll(dexID, "_", " "),
		PairAddress:  "0xpair-" + dexID,
		PairURL:      "https://dexscreener.com/" + string(chain) + "/0xpair-" + dexID,
		PriceUSD:     nd(price),
		LiquidityUSD: nd(liquidity),
		BaseToken:    pricingDomain.TokenInfo{Address: "0xbase", Symbol: "TKN", Name: "Test Token"},
	}
}

func wantCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("code = %s, want %s", appErr.Code, code)
	}
}

func TestAggregatePriceRejectsBadInputBeforeFanOut(t *testing.T) {
	tests := []struct {
		name     string
		chain    string
		address  string
		wantCode apperror.Code
	}{
		{"short_evm_address", "ethereum", "0x1234567", apperror.CodeInvalidAddress},
		{"empty_address", "ethereum", "", apperror.CodeInvalidAddress},
		{"unknown_chain", "tron", evmAddress, apperror.CodeUnsupportedChain},
		{"empty_chain", "", evmAddress, apperror.CodeUnsupportedChain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.AggregatePrice(context.Background(), tt.chain, tt.address)
			wantCode(t, err, tt.wantCode)
			if calls := f.providerCalls(); calls != 0 {
				t.Errorf("made %d provider calls, want 0", calls)
			}
		})
	}
}

func TestAggregatePriceNoDataAnywhere(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AggregatePrice(context.Background(), "ethereum", evmAddress)
	wantCode(t, err, apperror.CodeNoPriceData)
}

func TestAggregatePriceDexOnly(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "1.00", "50000"),
		rawPool(pricingDomain.ChainBSC, "biswap", "1.02", "30000"),
	}

	view, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if len(view.CexQuotes) != 0 {
		t.Errorf("got %d cex quotes without a resolved symbol, want 0", len(view.CexQuotes))
	}
	if view.Token.Name != "Test Token" || view.Token.Symbol != "TKN" {
		t.Errorf("token identity = %+v, want base token fallback", view.Token)
	}
	if view.BestBuy == nil || view.BestBuy.Type != arbitrageDomain.VenueDEX {
		t.Fatalf("best buy = %+v, want a DEX venue", view.BestBuy)
	}
	if view.BestBuy.SourceName != "pancakeswap (bsc)" {
		t.Errorf("best buy = %s", view.BestBuy.SourceName)
	}
	if len(view.Arbitrage) == 0 {
		t.Fatal("expected a same-chain opportunity")
	}
	for _, opp := range view.Arbitrage {
		if opp.BuyFrom.Type != arbitrageDomain.VenueDEX || opp.SellTo.Type != arbitrageDomain.VenueDEX {
			t.Errorf("DEX-only token produced a CEX leg: %+v", opp)
		}
	}
}

func TestAggregatePriceMergesCexSources(t *testing.T) {
	f := newFixture(t)
	f.metadata.meta = &pricingDomain.TokenMetadata{
		ID:       "test-token",
		Name:     "Test Token",
		Symbol:   "TKN",
		PriceUSD: nd("1.00"),
		Tickers: []pricingDomain.MarketTicker{
			{MarketName: "Binance Exchange", PriceUSD: nd("1.00"), VolumeUSD: nd("500"), IsCex: true},
			{MarketName: "Binance", PriceUSD: nd("1.01"), VolumeUSD: nd("800"), IsCex: true},
			{MarketName: "KuCoin", PriceUSD: nd("0.99"), VolumeUSD: nd("100"), IsCex: true},
			{MarketName: "Uniswap V3 (Ethereum)", PriceUSD: nd("1.00"), VolumeUSD: nd("20000"), IsCex: false},
		},
	}
	f.withCEX(mockLogger{}, &fakeCEX{id: "binance", quote: &pricingDomain.CexQuote{
		Exchange:     "Binance",
		ExchangeID:   "binance",
		PriceUSD:     nd("1.02"),
		Volume24hUSD: nd("1000000"),
		Tier:         pricingDomain.Tier1,
	}})

	view, err := f.svc.AggregatePrice(context.Background(), "ethereum", evmAddress)
	if err != nil {
		t.Fatal(err)
	}

	// Both Binance tickers and the direct adapter quote collapse to
	// one entry, with the direct quote winning.
	if len(view.CexQuotes) != 2 {
		t.Fatalf("got %d cex quotes, want 2", len(view.CexQuotes))
	}
	binance := view.CexQuotes[0]
	if binance.ExchangeID != "binance" || !binance.PriceUSD.Decimal.Equal(decimal.RequireFromString("1.02")) {
		t.Errorf("binance entry = %+v, want the direct adapter quote", binance)
	}
	kucoin := view.CexQuotes[1]
	if kucoin.Exchange != "KuCoin" || kucoin.TrustScore != 50 || kucoin.Tier != pricingDomain.Tier2 {
		t.Errorf("kucoin entry = %+v, want metadata-derived defaults", kucoin)
	}

	// The non-CEX ticker becomes a pseudo-pool.
	var pseudo *pricingDomain.DexPoolQuote
	for i := range view.DexPools {
		if view.DexPools[i].DexID == "coingecko" {
			pseudo = &view.DexPools[i]
		}
	}
	if pseudo == nil {
		t.Fatal("pseudo-pool missing")
	}
	if pseudo.DexName != "Uniswap V3 (Ethereum) (CG)" || pseudo.Score != 40 || pseudo.Tier != pricingDomain.Tier2 {
		t.Errorf("pseudo-pool = %+v", pseudo)
	}
	if !pseudo.LiquidityUSD.Decimal.Equal(decimal.RequireFromString("20000")) {
		t.Errorf("pseudo-pool liquidity = %s, want ticker volume", pseudo.LiquidityUSD.Decimal)
	}
}

func TestAggregatePriceFlatMarket(t *testing.T) {
	f := newFixture(t)
	f.metadata.meta = &pricingDomain.TokenMetadata{
		ID: "flat", Name: "Flat", Symbol: "FLT", PriceUSD: nd("1.00"),
	}
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainEthereum, "uniswap", "1.00", "100000"),
		rawPool(pricingDomain.ChainEthereum, "sushiswap", "1.00", "80000"),
	}
	f.withCEX(mockLogger{}, &fakeCEX{id: "binance", quote: &pricingDomain.CexQuote{
		Exchange: "Binance", ExchangeID: "binance", PriceUSD: nd("1.00"), Tier: pricingDomain.Tier1,
	}})

	view, err := f.svc.AggregatePrice(context.Background(), "ethereum", evmAddress)
	if err != nil {
		t.Fatal(err)
	}

	if view.SpreadPercent == nil || !view.SpreadPercent.IsZero() {
		t.Errorf("spread = %v, want exactly 0", view.SpreadPercent)
	}
	if len(view.Arbitrage) != 0 {
		t.Errorf("flat market produced %d opportunities", len(view.Arbitrage))
	}
}

func TestAggregatePriceCachesWholesale(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "1.00", "50000"),
	}

	first, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("second call should return the cached snapshot")
	}
	if f.pools.calls != 1 {
		t.Errorf("pool provider called %d times, want 1", f.pools.calls)
	}
}

func TestAggregatePriceHoneypotReport(t *testing.T) {
	flagged := true
	f := newFixture(t)
	f.metadata.meta = &pricingDomain.TokenMetadata{ID: "hp", Name: "Honeypot", Symbol: "HPT"}
	// Honeypot contracts also block selling, so the scan reports both
	// flags; together they score past the critical threshold.
	f.security.raw = &securityDomain.RawReport{
		IsHoneypot:    &flagged,
		CannotSellAll: &flagged,
	}

	view, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if view.Security == nil {
		t.Fatal("security report missing")
	}
	if view.Security.RiskLevel != securityDomain.RiskCritical {
		t.Errorf("risk level = %s, want critical", view.Security.RiskLevel)
	}
	if len(view.Security.Warnings) == 0 || !strings.Contains(view.Security.Warnings[0], "HONEYPOT") {
		t.Errorf("warnings = %v, want honeypot first", view.Security.Warnings)
	}
}

func TestAggregatePriceTopPoolRisk(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "1.00", "500"),
	}

	view, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if view.TopPoolRisk == nil {
		t.Fatal("top pool risk missing")
	}
	// Liquidity under 1000 boosts 30, no 24h transactions boosts 10.
	if view.TopPoolRisk.RiskBoost != 40 {
		t.Errorf("risk boost = %v, want 40", view.TopPoolRisk.RiskBoost)
	}
}

func TestAggregatePriceDropsDustPoolsAtAssembly(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "1.00", "50000"),
		rawPool(pricingDomain.ChainBSC, "dustswap", "1.00", "99"),
	}

	view, err := f.svc.AggregatePrice(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if len(view.DexPools) != 1 {
		t.Fatalf("got %d pools, want 1 after the floor", len(view.DexPools))
	}
	if view.DexPools[0].DexID != "pancakeswap" {
		t.Errorf("surviving pool = %s", view.DexPools[0].DexID)
	}
}

func TestEstimateImpact(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "2.00", "1000000"),
	}

	estimate, err := f.svc.EstimateImpact(context.Background(), "bsc", bscAddress, 1000, arbitrageDomain.DirectionBuy)
	if err != nil {
		t.Fatal(err)
	}
	if len(estimate.Venues) != 1 {
		t.Fatalf("got %d venues, want 1", len(estimate.Venues))
	}
	if estimate.Venues[0].ImpactPercent != 0.2 {
		t.Errorf("impact = %v, want 0.2", estimate.Venues[0].ImpactPercent)
	}
}

func TestEstimateImpactRejectsBadTrade(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EstimateImpact(context.Background(), "bsc", bscAddress, 0, arbitrageDomain.DirectionBuy)
	wantCode(t, err, apperror.CodeInvalidTradeSize)

	_, err = f.svc.EstimateImpact(context.Background(), "bsc", bscAddress, 100, "short")
	wantCode(t, err, apperror.CodeInvalidInput)

	if calls := f.providerCalls(); calls != 0 {
		t.Errorf("made %d provider calls, want 0", calls)
	}
}

func TestSearchTokenMetadataFirst(t *testing.T) {
	f := newFixture(t)
	f.metadata.meta = &pricingDomain.TokenMetadata{
		ID: "test-token", Name: "Test Token", Symbol: "TKN",
		ImageURL: "https://img.example/tkn.png", PriceUSD: nd("1.23"),
	}

	view, err := f.svc.SearchToken(context.Background(), "ethereum", evmAddress)
	if err != nil {
		t.Fatal(err)
	}

	if view.ID != "test-token" || view.Symbol != "TKN" {
		t.Errorf("view = %+v", view)
	}
	if view.Address != strings.ToLower(evmAddress) {
		t.Errorf("address = %s, want lowercased", view.Address)
	}
	if f.pools.calls != 0 {
		t.Error("pool fallback should not run on a metadata hit")
	}
}

func TestSearchTokenPoolFallback(t *testing.T) {
	f := newFixture(t)
	f.pools.pools = []pricingDomain.DexPoolQuote{
		rawPool(pricingDomain.ChainBSC, "pancakeswap", "0.50", "50000"),
	}

	view, err := f.svc.SearchToken(context.Background(), "bsc", bscAddress)
	if err != nil {
		t.Fatal(err)
	}

	if view.ID != "dex-0xbase" || view.Name != "Test Token" || view.Symbol != "TKN" {
		t.Errorf("view = %+v", view)
	}
	if !view.PriceUSD.Valid || !view.PriceUSD.Decimal.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("price = %+v, want the pool price", view.PriceUSD)
	}
}

func TestSearchTokenNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SearchToken(context.Background(), "bsc", bscAddress)
	wantCode(t, err, apperror.CodeTokenNotFound)
}

func TestSearchByQuery(t *testing.T) {
	f := newFixture(t)
	f.searcher.results = []pricingDomain.SearchResult{
		{Address: "0xabc", Chain: pricingDomain.ChainEthereum, Name: "Test", Symbol: "TST", PriceUSD: nd("1")},
	}

	_, err := f.svc.SearchByQuery(context.Background(), "  ")
	wantCode(t, err, apperror.CodeRequiredField)

	results, err := f.svc.SearchByQuery(context.Background(), "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	// Second lookup for the same query hits the cache.
	if _, err := f.svc.SearchByQuery(context.Background(), "test"); err != nil {
		t.Fatal(err)
	}
	if f.searcher.calls != 1 {
		t.Errorf("searcher called %d times, want 1", f.searcher.calls)
	}
}
