package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenlens/tokenlens/business/aggregate/app"
	arbitrageDomain "github.com/tokenlens/tokenlens/business/arbitrage/domain"
	pricingDomain "github.com/tokenlens/tokenlens/business/pricing/domain"
	securityDomain "github.com/tokenlens/tokenlens/business/security/domain"
)

// Response DTOs. The wire shape is decoupled from the domain types so
// domain refactors never silently change the API contract.

type tokenDTO struct {
	Name     string              `json:"name"`
	Symbol   string              `json:"symbol"`
	Chain    pricingDomain.Chain `json:"chain"`
	Address  string              `json:"address"`
	ImageURL string              `json:"imageUrl,omitempty"`
}

type priceChangeDTO struct {
	H1  decimal.NullDecimal `json:"h1"`
	H6  decimal.NullDecimal `json:"h6"`
	H24 decimal.NullDecimal `json:"h24"`
}

type txnsDTO struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
	Total int `json:"total"`
}

type pairTokenDTO struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
}

type dexPoolDTO struct {
	Chain        pricingDomain.Chain `json:"chain"`
	DexID        string              `json:"dexId"`
	DexName      string              `json:"dexName"`
	PairAddress  string              `json:"pairAddress"`
	PairURL      string              `json:"pairUrl,omitempty"`
	PriceUSD     decimal.NullDecimal `json:"priceUsd"`
	LiquidityUSD decimal.NullDecimal `json:"liquidityUsd"`
	Volume24h    decimal.NullDecimal `json:"volume24h"`
	PriceChange  priceChangeDTO      `json:"priceChange"`
	Txns24h      txnsDTO             `json:"txns24h"`
	CreatedAt    *time.Time          `json:"createdAt"`
	PoolAgeHours *float64            `json:"poolAgeHours"`
	FDV          decimal.NullDecimal `json:"fdv"`
	BaseToken    pairTokenDTO        `json:"baseToken"`
	QuoteToken   pairTokenDTO        `json:"quoteToken"`
	Score        float64             `json:"score"`
	Tier         int                 `json:"tier"`
}

type cexPriceDTO struct {
	Exchange      string              `json:"exchange"`
	ExchangeID    string              `json:"exchangeId"`
	PriceUSD      decimal.NullDecimal `json:"priceUsd"`
	Volume24hUSD  decimal.NullDecimal `json:"volume24hUsd"`
	Bid           decimal.NullDecimal `json:"bid"`
	Ask           decimal.NullDecimal `json:"ask"`
	Spread        decimal.NullDecimal `json:"spread"`
	PriceChange24 decimal.NullDecimal `json:"priceChange24h"`
	Score         float64             `json:"score"`
	Tier          int                 `json:"tier"`
	TradeURL      string              `json:"tradeUrl,omitempty"`
}

type securityDTO struct {
	IsHoneypot           *bool    `json:"isHoneypot"`
	HoneypotReason       string   `json:"honeypotReason,omitempty"`
	BuyTax               *float64 `json:"buyTax"`
	SellTax              *float64 `json:"sellTax"`
	IsOpenSource         *bool    `json:"isOpenSource"`
	IsProxy              *bool    `json:"isProxy"`
	IsMintable           *bool    `json:"isMintable"`
	CanTakeBackOwnership *bool    `json:"canTakeBackOwnership"`
	OwnerAddress         string   `json:"ownerAddress,omitempty"`
	CreatorAddress       string   `json:"creatorAddress,omitempty"`
	HolderCount          *int     `json:"holderCount"`
	LPHolderCount        *int     `json:"lpHolderCount"`
	RiskLevel            string   `json:"riskLevel"`
	RiskScore            float64  `json:"riskScore"`
	Warnings             []string `json:"warnings"`
}

type poolRiskDTO struct {
	Warnings  []string `json:"warnings"`
	RiskBoost float64  `json:"riskBoost"`
}

type venueDTO struct {
	Source string              `json:"source"`
	Type   string              `json:"type"`
	Price  decimal.Decimal     `json:"price"`
	Chain  pricingDomain.Chain `json:"chain,omitempty"`
	URL    string              `json:"url,omitempty"`
}

type opportunityDTO struct {
	BuyFrom          venueDTO        `json:"buyFrom"`
	SellTo           venueDTO        `json:"sellTo"`
	SpreadPercent    decimal.Decimal `json:"spreadPercent"`
	EstimatedFeeUSD  decimal.Decimal `json:"estimatedFeeUsd"`
	NetProfitPercent decimal.Decimal `json:"netProfitPercent"`
	IsViable         bool            `json:"isViable"`
}

type priceResponse struct {
	Token              tokenDTO            `json:"token"`
	ReferencePriceUSD  decimal.NullDecimal `json:"referencePriceUsd"`
	DexPools           []dexPoolDTO        `json:"dexPools"`
	CexPrices          []cexPriceDTO       `json:"cexPrices"`
	Security           *securityDTO        `json:"security"`
	TopPoolRisk        *poolRiskDTO        `json:"topPoolRisk"`
	Arbitrage          []opportunityDTO    `json:"arbitrage"`
	BestBuy            *venueDTO           `json:"bestBuy"`
	BestSell           *venueDTO           `json:"bestSell"`
	PriceSpreadPercent *decimal.Decimal    `json:"priceSpreadPercent"`
	UpdatedAt          string              `json:"updatedAt"`
}

type searchResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Symbol   string              `json:"symbol"`
	Chain    pricingDomain.Chain `json:"chain"`
	Address  string              `json:"address"`
	ImageURL string              `json:"imageUrl,omitempty"`
	PriceUSD decimal.NullDecimal `json:"priceUsd"`
}

type searchCandidateDTO struct {
	Address  string              `json:"address"`
	Chain    pricingDomain.Chain `json:"chain"`
	Name     string              `json:"name"`
	Symbol   string              `json:"symbol"`
	PriceUSD decimal.NullDecimal `json:"priceUsd"`
}

type venueImpactDTO struct {
	Source         string              `json:"source"`
	Type           string              `json:"type"`
	Tier           int                 `json:"tier"`
	Price          decimal.Decimal     `json:"price"`
	LiquidityUSD   decimal.NullDecimal `json:"liquidityUsd"`
	ImpactPercent  float64             `json:"impactPercent"`
	EffectivePrice decimal.Decimal     `json:"effectivePrice"`
	TokensReceived decimal.Decimal     `json:"tokensReceived"`
	URL            string              `json:"url,omitempty"`
}

type impactResponse struct {
	Venues               []venueImpactDTO `json:"venues"`
	Best                 *venueImpactDTO  `json:"best"`
	Worst                *venueImpactDTO  `json:"worst"`
	EfficiencyGapPercent *decimal.Decimal `json:"efficiencyGapPercent"`
}

func toPriceResponse(view *app.AggregatedPriceView) priceResponse {
	resp := priceResponse{
		Token: tokenDTO{
			Name:     view.Token.Name,
			Symbol:   view.Token.Symbol,
			Chain:    view.Token.Chain,
			Address:  view.Token.Address,
			ImageURL: view.Token.ImageURL,
		},
		ReferencePriceUSD:  view.ReferencePriceUSD,
		DexPools:           make([]dexPoolDTO, 0, len(view.DexPools)),
		CexPrices:          make([]cexPriceDTO, 0, len(view.CexQuotes)),
		Arbitrage:          make([]opportunityDTO, 0, len(view.Arbitrage)),
		PriceSpreadPercent: view.SpreadPercent,
		UpdatedAt:          view.UpdatedAt.Format(time.RFC3339),
	}

	for _, p := range view.DexPools {
		resp.DexPools = append(resp.DexPools, toDexPoolDTO(p))
	}
	for _, q := range view.CexQuotes {
		resp.CexPrices = append(resp.CexPrices, toCexPriceDTO(q))
	}
	for _, o := range view.Arbitrage {
		resp.Arbitrage = append(resp.Arbitrage, opportunityDTO{
			BuyFrom:          toVenueDTO(o.BuyFrom),
			SellTo:           toVenueDTO(o.SellTo),
			SpreadPercent:    o.SpreadPercent,
			EstimatedFeeUSD:  o.EstimatedFeeUSD,
			NetProfitPercent: o.NetProfitPercent,
			IsViable:         o.IsViable,
		})
	}
	if view.Security != nil {
		dto := toSecurityDTO(*view.Security)
		resp.Security = &dto
	}
	if view.TopPoolRisk != nil {
		resp.TopPoolRisk = &poolRiskDTO{
			Warnings:  view.TopPoolRisk.Warnings,
			RiskBoost: view.TopPoolRisk.RiskBoost,
		}
	}
	if view.BestBuy != nil {
		dto := toVenueDTO(*view.BestBuy)
		resp.BestBuy = &dto
	}
	if view.BestSell != nil {
		dto := toVenueDTO(*view.BestSell)
		resp.BestSell = &dto
	}
	return resp
}

func toDexPoolDTO(p pricingDomain.DexPoolQuote) dexPoolDTO {
	return dexPoolDTO{
		Chain:        p.Chain,
		DexID:        p.DexID,
		DexName:      p.DexName,
		PairAddress:  p.PairAddress,
		PairURL:      p.PairURL,
		PriceUSD:     p.PriceUSD,
		LiquidityUSD: p.LiquidityUSD,
		Volume24h:    p.Volume24hUSD,
		PriceChange: priceChangeDTO{
			H1:  p.PriceChange.H1,
			H6:  p.PriceChange.H6,
			H24: p.PriceChange.H24,
		},
		Txns24h: txnsDTO{
			Buys:  p.Txns24h.Buys,
			Sells: p.Txns24h.Sells,
			Total: p.Txns24h.Total,
		},
		CreatedAt:    p.CreatedAt,
		PoolAgeHours: p.PoolAgeHours,
		FDV:          p.FDVUSD,
		BaseToken:    pairTokenDTO(p.BaseToken),
		QuoteToken:   pairTokenDTO(p.QuoteToken),
		Score:        p.Score,
		Tier:         int(p.Tier),
	}
}

func toCexPriceDTO(q pricingDomain.CexQuote) cexPriceDTO {
	return cexPriceDTO{
		Exchange:      q.Exchange,
		ExchangeID:    q.ExchangeID,
		PriceUSD:      q.PriceUSD,
		Volume24hUSD:  q.Volume24hUSD,
		Bid:           q.Bid,
		Ask:           q.Ask,
		Spread:        q.SpreadPercent,
		PriceChange24: q.Change24hPct,
		Score:         q.TrustScore,
		Tier:          int(q.Tier),
		TradeURL:      q.TradeURL,
	}
}

func toSecurityDTO(r securityDomain.Report) securityDTO {
	return securityDTO{
		IsHoneypot:           r.IsHoneypot,
		HoneypotReason:       r.HoneypotReason,
		BuyTax:               r.BuyTaxPercent,
		SellTax:              r.SellTaxPercent,
		IsOpenSource:         r.IsOpenSource,
		IsProxy:              r.IsProxy,
		IsMintable:           r.IsMintable,
		CanTakeBackOwnership: r.CanTakeBackOwnership,
		OwnerAddress:         r.OwnerAddress,
		CreatorAddress:       r.CreatorAddress,
		HolderCount:          r.HolderCount,
		LPHolderCount:        r.LPHolderCount,
		RiskLevel:            string(r.RiskLevel),
		RiskScore:            r.RiskScore,
		Warnings:             r.Warnings,
	}
}

func toVenueDTO(v arbitrageDomain.VenueRef) venueDTO {
	return venueDTO{
		Source: v.SourceName,
		Type:   string(v.Type),
		Price:  v.Price,
		Chain:  v.Chain,
		URL:    v.URL,
	}
}

func toSearchResponse(view *app.SearchView) searchResponse {
	return searchResponse{
		ID:       view.ID,
		Name:     view.Name,
		Symbol:   view.Symbol,
		Chain:    view.Chain,
		Address:  view.Address,
		ImageURL: view.ImageURL,
		PriceUSD: view.PriceUSD,
	}
}

func toImpactResponse(estimate *arbitrageDomain.ImpactEstimate) impactResponse {
	resp := impactResponse{
		Venues:               make([]venueImpactDTO, 0, len(estimate.Venues)),
		EfficiencyGapPercent: estimate.EfficiencyGapPercent,
	}
	for _, v := range estimate.Venues {
		resp.Venues = append(resp.Venues, toVenueImpactDTO(v))
	}
	if estimate.Best != nil {
		dto := toVenueImpactDTO(*estimate.Best)
		resp.Best = &dto
	}
	if estimate.Worst != nil {
		dto := toVenueImpactDTO(*estimate.Worst)
		resp.Worst = &dto
	}
	return resp
}

func toVenueImpactDTO(v arbitrageDomain.VenueImpact) venueImpactDTO {
	return venueImpactDTO{
		Source:         v.SourceName,
		Type:           string(v.Type),
		Tier:           int(v.Tier),
		Price:          v.Price,
		LiquidityUSD:   v.LiquidityUSD,
		ImpactPercent:  v.ImpactPercent,
		EffectivePrice: v.EffectivePrice,
		TokensReceived: v.TokensReceived,
		URL:            v.URL,
	}
}
