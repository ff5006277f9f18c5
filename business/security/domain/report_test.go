package domain

import (
	"strings"
	"testing"
)

func bp(b bool) *bool       { return &b }
func fp(f float64) *float64 { return &f }
func ip(i int) *int         { return &i }

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name string
		raw  RawReport
		want float64
	}{
		{
			name: "clean_verified_token",
			raw:  RawReport{IsOpenSource: bp(true), IsInDex: bp(true)},
			want: 0, // -15 clamps to 0
		},
		{
			name: "honeypot_only",
			raw:  RawReport{IsHoneypot: bp(true)},
			want: 40,
		},
		{
			name: "stacked_flags_clamp_at_100",
			raw: RawReport{
				IsHoneypot:    bp(true),
				CannotSellAll: bp(true),
				CannotBuy:     bp(true),
			},
			want: 100, // 110 clamps
		},
		{
			name: "high_sell_tax_scales",
			raw:  RawReport{SellTaxPercent: fp(20)},
			want: 20, // (20-10)*2
		},
		{
			name: "extreme_tax_caps_at_30",
			raw:  RawReport{BuyTaxPercent: fp(99)},
			want: 30,
		},
		{
			name: "discounts_offset_flags",
			raw: RawReport{
				IsProxy:      bp(true), // +15
				IsOpenSource: bp(true), // -10
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskScore(tt.raw); got != tt.want {
				t.Errorf("RiskScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{19.9, RiskLow},
		{20, RiskMedium},
		{39.9, RiskMedium},
		{40, RiskHigh},
		{69.9, RiskHigh},
		{70, RiskCritical},
		{100, RiskCritical},
	}

	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestWarningsOrdering(t *testing.T) {
	raw := RawReport{
		IsHoneypot:     bp(true),
		IsProxy:        bp(true),
		SellTaxPercent: fp(8),
		IsOpenSource:   bp(false),
		HolderCount:    ip(42),
	}

	warnings := Warnings(raw)
	if len(warnings) != 5 {
		t.Fatalf("got %d warnings: %v", len(warnings), warnings)
	}
	// Honeypot-class first, then structural, then tax, then info.
	if !strings.Contains(warnings[0], "HONEYPOT") {
		t.Errorf("first warning = %q, want the honeypot flag", warnings[0])
	}
	if !strings.Contains(warnings[1], "Proxy") {
		t.Errorf("second warning = %q, want proxy", warnings[1])
	}
	if !strings.Contains(warnings[2], "Sell tax") {
		t.Errorf("third warning = %q, want sell tax", warnings[2])
	}
	if !strings.Contains(warnings[3], "not verified") {
		t.Errorf("fourth warning = %q, want unverified note", warnings[3])
	}
	if !strings.Contains(warnings[4], "holder count") {
		t.Errorf("fifth warning = %q, want holder count", warnings[4])
	}
}

func TestAssessHoneypotIsCritical(t *testing.T) {
	report := Assess(RawReport{
		IsHoneypot:          bp(true),
		CannotSellAll:       bp(true),
		HoneypotSameCreator: bp(true),
	})

	if report.RiskLevel != RiskCritical {
		t.Errorf("level = %v, want critical", report.RiskLevel)
	}
	if len(report.Warnings) == 0 || !strings.Contains(report.Warnings[0], "HONEYPOT") {
		t.Errorf("warnings = %v, want honeypot first", report.Warnings)
	}
	if report.HoneypotReason == "" {
		t.Error("creator history should set the honeypot reason")
	}
}

func TestAssessPoolRisk(t *testing.T) {
	tests := []struct {
		name         string
		liquidity    *float64
		ageHours     *float64
		txns         int
		wantBoost    float64
		wantWarnings int
	}{
		{
			name:         "healthy_pool",
			liquidity:    fp(500_000),
			ageHours:     fp(2000),
			txns:         500,
			wantBoost:    0,
			wantWarnings: 0,
		},
		{
			name:         "brand_new_dust_pool",
			liquidity:    fp(500),
			ageHours:     fp(0.5),
			txns:         2,
			wantBoost:    65, // 30 + 25 + 10
			wantWarnings: 3,
		},
		{
			name:         "unknown_liquidity_and_age",
			liquidity:    nil,
			ageHours:     nil,
			txns:         50,
			wantBoost:    0,
			wantWarnings: 0,
		},
		{
			name:         "moderate_liquidity_young_pool",
			liquidity:    fp(30_000),
			ageHours:     fp(48),
			txns:         200,
			wantBoost:    10, // 5 + 5
			wantWarnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := AssessPoolRisk(tt.liquidity, tt.ageHours, tt.txns)
			if risk.RiskBoost != tt.wantBoost {
				t.Errorf("boost = %v, want %v", risk.RiskBoost, tt.wantBoost)
			}
			if len(risk.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d entries", risk.Warnings, tt.wantWarnings)
			}
		})
	}
}
