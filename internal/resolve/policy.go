package resolve

import (
	"errors"

	"WagerArena/internal/model"
	"WagerArena/internal/outcome"

	"github.com/shopspring/decimal"
)

var ErrWrongOutcome = errors.New("policy does not apply to this outcome kind")

// Policy computes the payout of a winning wager for one game mode.
type Policy interface {
	Name() string
	// WinPayout is the amount credited for a winning wager.
	WinPayout(o model.Outcome, w model.Wager, mods model.ModifierSet) (int64, error)
	// Honors reports whether the policy applies a deferred effect.
	Honors(k model.EffectKind) bool
	Risk(o model.Outcome, w model.Wager) model.RiskTier
}

// Confidence pays stake × confidence, doubled by DoubleMultiplier.
type Confidence struct{}

func (Confidence) Name() string { return "confidence" }

func (Confidence) WinPayout(_ model.Outcome, w model.Wager, mods model.ModifierSet) (int64, error) {
	payout := w.Stake * int64(w.Confidence)
	if mods.Has(model.EffectDoubleMultiplier) {
		payout *= 2
	}
	return payout, nil
}

func (Confidence) Honors(k model.EffectKind) bool {
	return k == model.EffectNullifyLoss || k == model.EffectDoubleMultiplier
}

// ConfidenceRisk maps confidence levels to risk tiers, highest first.
var ConfidenceRisk = []struct {
	MinConfidence int
	Risk          model.RiskTier
}{
	{4, model.RiskHigh},
	{2, model.RiskMedium},
	{1, model.RiskLow},
}

func (Confidence) Risk(_ model.Outcome, w model.Wager) model.RiskTier {
	for _, r := range ConfidenceRisk {
		if w.Confidence >= r.MinConfidence {
			return r.Risk
		}
	}
	return model.RiskLow
}

// InverseOdds pays floor(stake / p) where p is the normalized probability of
// the selected candidate. The quotient is taken as stake × total / weight so a
// repeating p never costs a token to rounding.
type InverseOdds struct{}

func (InverseOdds) Name() string { return "inverse_odds" }

func (InverseOdds) WinPayout(o model.Outcome, w model.Wager, _ model.ModifierSet) (int64, error) {
	if o.Kind != model.OutcomeWeighted {
		return 0, ErrWrongOutcome
	}
	weight, total, err := outcome.Share(o.Choice.Candidates, w.Selection.Candidate)
	if err != nil {
		return 0, err
	}
	return decimal.NewFromInt(w.Stake).Mul(total).Div(weight).Floor().IntPart(), nil
}

func (InverseOdds) Honors(k model.EffectKind) bool {
	return k == model.EffectNullifyLoss
}

// OddsRisk maps selection probability to risk tiers, safest first.
var OddsRisk = []struct {
	MinProbability decimal.Decimal
	Risk           model.RiskTier
}{
	{decimal.RequireFromString("0.5"), model.RiskLow},
	{decimal.RequireFromString("0.25"), model.RiskMedium},
}

func (InverseOdds) Risk(o model.Outcome, w model.Wager) model.RiskTier {
	p, err := selectionProbability(o, w)
	if err != nil {
		return model.RiskHigh
	}
	for _, r := range OddsRisk {
		if p.GreaterThanOrEqual(r.MinProbability) {
			return r.Risk
		}
	}
	return model.RiskHigh
}

// FixedMultiplier pays stake × the selected candidate's multiplier, the way
// coin flip and roulette tables pay. Every wager carries the table's risk.
type FixedMultiplier struct {
	Tier model.RiskTier
}

func (FixedMultiplier) Name() string { return "fixed_multiplier" }

func (FixedMultiplier) WinPayout(o model.Outcome, w model.Wager, mods model.ModifierSet) (int64, error) {
	if o.Kind != model.OutcomeWeighted {
		return 0, ErrWrongOutcome
	}
	for _, c := range o.Choice.Candidates {
		if c.ID != w.Selection.Candidate {
			continue
		}
		payout := w.Stake * c.Multiplier
		if mods.Has(model.EffectDoubleMultiplier) {
			payout *= 2
		}
		return payout, nil
	}
	return 0, outcome.ErrUnknownCandidate
}

func (FixedMultiplier) Honors(k model.EffectKind) bool {
	return k == model.EffectNullifyLoss || k == model.EffectDoubleMultiplier
}

func (f FixedMultiplier) Risk(model.Outcome, model.Wager) model.RiskTier { return f.Tier }

func selectionProbability(o model.Outcome, w model.Wager) (decimal.Decimal, error) {
	if o.Kind != model.OutcomeWeighted {
		return decimal.Zero, ErrWrongOutcome
	}
	return outcome.Probability(o.Choice.Candidates, w.Selection.Candidate)
}
