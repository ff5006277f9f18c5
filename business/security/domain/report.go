// Package domain contains the security assessment types and scoring
// rules.
package domain

import "fmt"

// RiskLevel buckets the composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// LevelForScore maps a 0-100 risk score to its level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 40:
		return RiskHigh
	case score >= 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RawReport is the provider's contract scan, already parsed into typed
// optionals. Nil means the scanner did not report the field.
type RawReport struct {
	IsHoneypot           *bool
	HoneypotSameCreator  *bool
	CannotSellAll        *bool
	CannotBuy            *bool
	TransferPausable     *bool
	TradingCooldown      *bool
	IsProxy              *bool
	IsMintable           *bool
	CanTakeBackOwnership *bool
	OwnerChangeBalance   *bool
	HiddenOwner          *bool
	SelfDestruct         *bool
	ExternalCall         *bool
	IsOpenSource         *bool
	IsInDex              *bool
	BuyTaxPercent        *float64
	SellTaxPercent       *float64
	OwnerAddress         string
	CreatorAddress       string
	HolderCount          *int
	LPHolderCount        *int
}

// Report is the assessed security view of a token contract.
type Report struct {
	IsHoneypot           *bool
	HoneypotReason       string
	BuyTaxPercent        *float64
	SellTaxPercent       *float64
	IsOpenSource         *bool
	IsProxy              *bool
	IsMintable           *bool
	CanTakeBackOwnership *bool
	OwnerAddress         string
	CreatorAddress       string
	HolderCount          *int
	LPHolderCount        *int
	RiskLevel            RiskLevel
	RiskScore            float64
	Warnings             []string
}

func flagged(b *bool) bool {
	return b != nil && *b
}

// RiskScore folds the raw flags and taxes into a 0-100 composite.
// Every tripped flag adds its fixed weight; verification and DEX
// presence subtract; the result clamps to [0,100].
func RiskScore(raw RawReport) float64 {
	score := 0.0

	// Honeypot-class flags.
	if flagged(raw.IsHoneypot) {
		score += 40
	}
	if flagged(raw.CannotSellAll) {
		score += 35
	}
	if flagged(raw.CannotBuy) {
		score += 35
	}
	if flagged(raw.TransferPausable) {
		score += 20
	}
	if flagged(raw.TradingCooldown) {
		score += 15
	}

	// Structural risk flags.
	if flagged(raw.IsProxy) {
		score += 15
	}
	if flagged(raw.IsMintable) {
		score += 15
	}
	if flagged(raw.CanTakeBackOwnership) {
		score += 20
	}
	if flagged(raw.OwnerChangeBalance) {
		score += 25
	}
	if flagged(raw.HiddenOwner) {
		score += 20
	}
	if flagged(raw.SelfDestruct) {
		score += 25
	}
	if flagged(raw.ExternalCall) {
		score += 10
	}

	// Taxes above 10% scale in, capped at 30 each.
	if raw.BuyTaxPercent != nil && *raw.BuyTaxPercent > 10 {
		score += min((*raw.BuyTaxPercent-10)*2, 30)
	}
	if raw.SellTaxPercent != nil && *raw.SellTaxPercent > 10 {
		score += min((*raw.SellTaxPercent-10)*2, 30)
	}

	// Positive indicators.
	if flagged(raw.IsOpenSource) {
		score -= 10
	}
	if flagged(raw.IsInDex) {
		score -= 5
	}

	return max(0, min(100, score))
}

// Warnings produces the ordered warning list: honeypot-class flags
// first, then structural flags, then tax thresholds, then
// informational notes. Callers rely on this order.
func Warnings(raw RawReport) []string {
	var warnings []string

	if flagged(raw.IsHoneypot) {
		warnings = append(warnings, "HONEYPOT DETECTED - cannot sell tokens")
	}
	if flagged(raw.CannotSellAll) {
		warnings = append(warnings, "Cannot sell all tokens - potential honeypot")
	}
	if flagged(raw.CannotBuy) {
		warnings = append(warnings, "Cannot buy - token is not tradeable")
	}

	if flagged(raw.IsProxy) {
		warnings = append(warnings, "Proxy contract - code can be changed")
	}
	if flagged(raw.IsMintable) {
		warnings = append(warnings, "Mintable - new tokens can be created")
	}
	if flagged(raw.CanTakeBackOwnership) {
		warnings = append(warnings, "Ownership can be reclaimed")
	}
	if flagged(raw.OwnerChangeBalance) {
		warnings = append(warnings, "Owner can modify balances")
	}
	if flagged(raw.HiddenOwner) {
		warnings = append(warnings, "Hidden owner detected")
	}
	if flagged(raw.SelfDestruct) {
		warnings = append(warnings, "Contract can self-destruct")
	}
	if flagged(raw.TransferPausable) {
		warnings = append(warnings, "Transfers can be paused")
	}
	if flagged(raw.TradingCooldown) {
		warnings = append(warnings, "Trading cooldown enabled")
	}

	if raw.BuyTaxPercent != nil && *raw.BuyTaxPercent > 5 {
		warnings = append(warnings, fmt.Sprintf("Buy tax: %.1f%%", *raw.BuyTaxPercent))
	}
	if raw.SellTaxPercent != nil && *raw.SellTaxPercent > 5 {
		warnings = append(warnings, fmt.Sprintf("Sell tax: %.1f%%", *raw.SellTaxPercent))
	}

	if !flagged(raw.IsOpenSource) {
		warnings = append(warnings, "Contract is not verified/open source")
	}
	if raw.HolderCount != nil && *raw.HolderCount < 100 {
		warnings = append(warnings, fmt.Sprintf("Low holder count: %d", *raw.HolderCount))
	}
	if raw.LPHolderCount != nil && *raw.LPHolderCount < 5 {
		warnings = append(warnings, fmt.Sprintf("Very few LP holders: %d", *raw.LPHolderCount))
	}

	return warnings
}

// Assess builds the full report from a raw scan.
func Assess(raw RawReport) *Report {
	score := RiskScore(raw)

	report := &Report{
		IsHoneypot:           raw.IsHoneypot,
		BuyTaxPercent:        raw.BuyTaxPercent,
		SellTaxPercent:       raw.SellTaxPercent,
		IsOpenSource:         raw.IsOpenSource,
		IsProxy:              raw.IsProxy,
		IsMintable:           raw.IsMintable,
		CanTakeBackOwnership: raw.CanTakeBackOwnership,
		OwnerAddress:         raw.OwnerAddress,
		CreatorAddress:       raw.CreatorAddress,
		HolderCount:          raw.HolderCount,
		LPHolderCount:        raw.LPHolderCount,
		RiskScore:            score,
		RiskLevel:            LevelForScore(score),
		Warnings:             Warnings(raw),
	}
	if flagged(raw.HoneypotSameCreator) {
		report.HoneypotReason = "Creator has made honeypot tokens before"
	}
	return report
}
