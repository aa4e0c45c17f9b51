// Package wager validates a bet against the bankroll and the round state.
package wager

import (
	"fmt"

	"WagerArena/internal/model"
	"WagerArena/internal/rejection"
)

// Validator checks wagers. MaxStake of 0 disables the table limit; an empty
// Levels list accepts any confidence >= 1.
type Validator struct {
	MaxStake int64
	Levels   []int
}

// Validate returns nil when w may be placed. Checks run in a fixed order so the
// first failing rule is reported. Staging a wager before the outcome is known
// passes requireSelection=false.
func (v Validator) Validate(w model.Wager, balance int64, state model.RoundState, requireSelection bool) error {
	switch state.Phase {
	case model.PhaseIdle:
		return rejection.Validation(rejection.CodeRoundNotActive, "no round is active")
	case model.PhaseResolved:
		return rejection.Validation(rejection.CodeWagerAlreadyPlaced, "this round has already been resolved")
	}

	if w.Stake <= 0 {
		return rejection.Validation(rejection.CodeStakeNotPositive, "stake must be greater than zero")
	}
	if w.Stake > balance {
		return rejection.Validation(rejection.CodeStakeExceedsBalance,
			fmt.Sprintf("stake %d exceeds balance %d", w.Stake, balance))
	}
	if v.MaxStake > 0 && w.Stake > v.MaxStake {
		return rejection.Validation(rejection.CodeStakeExceedsLimit,
			fmt.Sprintf("stake %d exceeds the table limit %d", w.Stake, v.MaxStake))
	}
	if requireSelection && w.Selection.IsZero() {
		return rejection.Validation(rejection.CodeSelectionMissing, "pick a selection before betting")
	}
	if !v.confidenceAllowed(w.Confidence) {
		return rejection.Validation(rejection.CodeInvalidConfidence,
			fmt.Sprintf("confidence %d is not one of %v", w.Confidence, v.Levels))
	}
	return nil
}

func (v Validator) confidenceAllowed(c int) bool {
	if c < 1 {
		return false
	}
	if len(v.Levels) == 0 {
		return true
	}
	for _, l := range v.Levels {
		if l == c {
			return true
		}
	}
	return false
}
