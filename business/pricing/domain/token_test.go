package domain

import "testing"

func TestValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"evm_full_length", "0x6982508145454ce325ddbe47a25d4ec3d2311933", true},
		{"evm_below_minimum", "0x1234567", false},
		{"evm_minimum_length", "0x12345678", true},
		{"solana_mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"solana_too_short", "abc123", false},
		{"solana_too_long", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1vXXXXX", false},
		{"empty", "", false},
		{"whitespace_only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAddress(tt.address); got != tt.want {
				t.Errorf("ValidAddress(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

func TestNewTokenIdentity(t *testing.T) {
	id := NewTokenIdentity(ChainEthereum, "  0xABCDEF0123456789 ")
	if id.Address != "0xabcdef0123456789" {
		t.Errorf("address not normalized: %q", id.Address)
	}
	if id.Chain != ChainEthereum {
		t.Errorf("chain = %q", id.Chain)
	}
}

func TestParseChain(t *testing.T) {
	if _, err := ParseChain("ethereum"); err != nil {
		t.Errorf("ethereum should parse: %v", err)
	}
	if _, err := ParseChain("tron"); err == nil {
		t.Error("tron should be rejected")
	}
	if len(SupportedChains) != 10 {
		t.Errorf("supported chain count = %d, want 10", len(SupportedChains))
	}
}
