package app

import (
	"context"
	"testing"
	"time"

	"github.com/tokenlens/tokenlens/business/pricing/domain"
)

type fakePoolProvider struct {
	pools []domain.DexPoolQuote
}

func (f *fakePoolProvider) FetchPools(ctx context.Context, address string, filter *domain.Chain) []domain.DexPoolQuote {
	return f.pools
}

func TestPoolServiceFetchPools(t *testing.T) {
	created := time.Now().Add(-48 * time.Hour)
	provider := &fakePoolProvider{pools: []domain.DexPoolQuote{
		{
			Chain: domain.ChainEthereum, DexID: "uniswap_v3", PairAddress: "0xaaa",
			PriceUSD: nd("1.0"), LiquidityUSD: nd("2000000"), Volume24hUSD: nd("900000"),
			Txns24h: domain.TxnCounts{Total: 500}, CreatedAt: &created,
		},
		{
			Chain: domain.ChainEthereum, DexID: "obscureswap", PairAddress: "0xbbb",
			PriceUSD: nd("1.0"), LiquidityUSD: nd("5000"),
		},
		{
			// No price; stays listed, excluded from pricing downstream.
			Chain: domain.ChainEthereum, DexID: "newdex", PairAddress: "0xccc",
		},
		{
			// Wrong chain, dropped by filter.
			Chain: domain.ChainBSC, DexID: "pancakeswap", PairAddress: "0xddd",
			PriceUSD: nd("1.0"),
		},
	}}

	svc := NewPoolService(provider, mockLogger{})
	chain := domain.ChainEthereum
	pools := svc.FetchPools(context.Background(), "0xtoken", &chain)

	if len(pools) != 3 {
		t.Fatalf("got %d pools, want 3", len(pools))
	}
	if pools[0].PairAddress != "0xaaa" {
		t.Errorf("best pool = %q, want 0xaaa", pools[0].PairAddress)
	}
	if last := pools[2]; last.PairAddress != "0xccc" || last.PriceUSD.Valid {
		t.Errorf("priceless pool = %+v, want 0xccc listed without a price", last)
	}
	if pools[0].Tier != domain.Tier1 {
		t.Errorf("uniswap tier = %v, want tier 1", pools[0].Tier)
	}
	if pools[0].PoolAgeHours == nil || *pools[0].PoolAgeHours < 47 {
		t.Errorf("pool age not derived: %v", pools[0].PoolAgeHours)
	}
	if pools[1].Tier != domain.Tier3 {
		t.Errorf("unknown dex tier = %v, want tier 3", pools[1].Tier)
	}
	if pools[0].Score <= pools[1].Score {
		t.Errorf("scores not ordered: %v <= %v", pools[0].Score, pools[1].Score)
	}
}

func TestPoolServiceFetchPoolsNoFilter(t *testing.T) {
	provider := &fakePoolProvider{pools: []domain.DexPoolQuote{
		{Chain: domain.ChainEthereum, DexID: "uniswap_v3", PriceUSD: nd("1")},
		{Chain: domain.ChainBSC, DexID: "pancakeswap", PriceUSD: nd("1")},
	}}

	svc := NewPoolService(provider, mockLogger{})
	pools := svc.FetchPools(context.Background(), "0xtoken", nil)

	if len(pools) != 2 {
		t.Errorf("got %d pools, want 2 (no chain filter)", len(pools))
	}
}
