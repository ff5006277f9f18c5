package domain

import "strings"

// TokenIdentity is the aggregation key: a chain plus a contract
// address, case-normalized at the boundary.
type TokenIdentity struct {
	Chain   Chain
	Address string
}

// NewTokenIdentity lowercases and trims the address; it is immutable
// from then on.
func NewTokenIdentity(chain Chain, address string) TokenIdentity {
	return TokenIdentity{
		Chain:   chain,
		Address: strings.ToLower(strings.TrimSpace(address)),
	}
}

// ValidAddress reports whether address looks like an EVM or Solana
// contract address. EVM addresses are 0x-prefixed and at least 10
// characters; Solana addresses are base58 strings of 32-44 characters.
func ValidAddress(address string) bool {
	address = strings.TrimSpace(address)
	if address == "" {
		return false
	}
	if strings.HasPrefix(address, "0x") {
		return len(address) >= 10
	}
	return len(address) >= 32 && len(address) <= 44
}

// TokenInfo names one side of a trading pair.
type TokenInfo struct {
	Address string
	Symbol  string
	Name    string
}
