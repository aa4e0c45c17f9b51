// Package resolve turns an outcome and a wager into a signed bankroll delta.
package resolve

import (
	"errors"
	"fmt"

	"WagerArena/internal/model"
)

var ErrNoOutcome = errors.New("round has no outcome to resolve against")

// Effective drops the modifiers the policy does not honor.
func Effective(p Policy, mods model.ModifierSet) model.ModifierSet {
	var out model.ModifierSet
	for _, k := range mods.Kinds() {
		if p.Honors(k) {
			out = out.With(k)
		}
	}
	return out
}

// Resolve judges w against o. A loss costs the stake unless NullifyLoss is
// active, in which case the delta is zero.
func Resolve(p Policy, o model.Outcome, w model.Wager, mods model.ModifierSet) (model.Result, error) {
	if o.Kind == model.OutcomeNone {
		return model.Result{}, ErrNoOutcome
	}
	mods = Effective(p, mods)

	if o.Matches(w.Selection) {
		payout, err := p.WinPayout(o, w, mods)
		if err != nil {
			return model.Result{}, fmt.Errorf("%s payout: %w", p.Name(), err)
		}
		return model.Result{IsWin: true, Kind: model.KindWin, Payout: payout, TokensDelta: payout}, nil
	}

	loss := lossDelta(w.Stake, mods)
	return model.Result{Kind: model.KindLoss, Payout: loss, TokensDelta: loss}, nil
}

// Timeout is the forced loss of a round whose timer expired. stake is whatever
// was staged; zero when nothing was.
func Timeout(stake int64, mods model.ModifierSet) model.Result {
	loss := lossDelta(stake, mods)
	return model.Result{Kind: model.KindTimeout, Payout: loss, TokensDelta: loss}
}

func lossDelta(stake int64, mods model.ModifierSet) int64 {
	if mods.Has(model.EffectNullifyLoss) || stake <= 0 {
		return 0
	}
	return -stake
}
