package domain

// Tier is a coarse trust classification: 1 is most trusted, 3 least.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
)

// TierScore maps a tier to its 0-100 score contribution.
func TierScore(t Tier) float64 {
	switch t {
	case Tier1:
		return 100
	case Tier2:
		return 60
	default:
		return 30
	}
}
