package model

// DifficultyTier orders generated problem ranges. Tiers only move forward during a
// session; a full reset returns to TierEasy.
type DifficultyTier int

const (
	TierEasy DifficultyTier = iota
	TierMedium
	TierHard
)

func (t DifficultyTier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// RiskTier labels how aggressive a wager was.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)
