package domain

// PoolRisk is the market-structure risk view of a single pool,
// independent of the contract scan.
type PoolRisk struct {
	Warnings  []string
	RiskBoost float64
}

// AssessPoolRisk flags thin liquidity, young pools, and dead activity.
// The boost is additive guidance on top of the contract risk score.
func AssessPoolRisk(liquidityUSD, poolAgeHours *float64, txns24hTotal int) PoolRisk {
	var risk PoolRisk

	if liquidityUSD != nil {
		switch {
		case *liquidityUSD < 1_000:
			risk.Warnings = append(risk.Warnings, "Extremely low liquidity (<$1K) - high slippage risk")
			risk.RiskBoost += 30
		case *liquidityUSD < 10_000:
			risk.Warnings = append(risk.Warnings, "Low liquidity (<$10K) - significant slippage expected")
			risk.RiskBoost += 15
		case *liquidityUSD < 50_000:
			risk.Warnings = append(risk.Warnings, "Moderate liquidity (<$50K)")
			risk.RiskBoost += 5
		}
	}

	if poolAgeHours != nil {
		switch {
		case *poolAgeHours < 1:
			risk.Warnings = append(risk.Warnings, "Pool created less than 1 hour ago - extreme caution")
			risk.RiskBoost += 25
		case *poolAgeHours < 24:
			risk.Warnings = append(risk.Warnings, "Pool is less than 24 hours old")
			risk.RiskBoost += 15
		case *poolAgeHours < 72:
			risk.Warnings = append(risk.Warnings, "Pool is less than 3 days old")
			risk.RiskBoost += 5
		}
	}

	if txns24hTotal < 10 {
		risk.Warnings = append(risk.Warnings, "Very low trading activity (<10 txns/day)")
		risk.RiskBoost += 10
	}

	return risk
}
