// Package domain contains the core domain types for the pricing context.
package domain

import "fmt"

// Chain identifies one of the supported networks.
type Chain string

const (
	ChainEthereum  Chain = "ethereum"
	ChainBSC       Chain = "bsc"
	ChainPolygon   Chain = "polygon"
	ChainArbitrum  Chain = "arbitrum"
	ChainOptimism  Chain = "optimism"
	ChainBase      Chain = "base"
	ChainSolana    Chain = "solana"
	ChainAvalanche Chain = "avalanche"
	ChainFantom    Chain = "fantom"
	ChainZkSync    Chain = "zksync"
)

// SupportedChains is the fixed set of networks the aggregator covers.
var SupportedChains = []Chain{
	ChainEthereum,
	ChainBSC,
	ChainPolygon,
	ChainArbitrum,
	ChainOptimism,
	ChainBase,
	ChainSolana,
	ChainAvalanche,
	ChainFantom,
	ChainZkSync,
}

var supportedChainSet = func() map[Chain]struct{} {
	m := make(map[Chain]struct{}, len(SupportedChains))
	for _, c := range SupportedChains {
		m[c] = struct{}{}
	}
	return m
}()

// ParseChain validates a chain string against the supported set.
func ParseChain(s string) (Chain, error) {
	c := Chain(s)
	if _, ok := supportedChainSet[c]; !ok {
		return "", fmt.Errorf("unsupported chain %q", s)
	}
	return c, nil
}

// IsSupportedChain reports whether c belongs to the fixed chain set.
func IsSupportedChain(c Chain) bool {
	_, ok := supportedChainSet[c]
	return ok
}
