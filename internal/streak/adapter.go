// Package streak tracks consecutive wins and escalates difficulty.
package streak

import "WagerArena/internal/model"

// Escalations lists the streak needed to leave each tier. A tier absent from
// the table is terminal.
var Escalations = []struct {
	From      model.DifficultyTier
	To        model.DifficultyTier
	MinStreak int
}{
	{model.TierEasy, model.TierMedium, 3},
	{model.TierMedium, model.TierHard, 6},
}

// Adapter holds the current streak and tier.
type Adapter struct {
	streak int
	tier   model.DifficultyTier
}

func NewAdapter() *Adapter { return &Adapter{tier: model.TierEasy} }

// OnResolved updates the streak after a round and escalates at most one tier.
// The tier never regresses.
func (a *Adapter) OnResolved(isWin bool) (streak int, tier model.DifficultyTier, changed bool) {
	if isWin {
		a.streak++
	} else {
		a.streak = 0
	}
	for _, e := range Escalations {
		if a.tier == e.From && a.streak >= e.MinStreak {
			a.tier = e.To
			changed = true
			break
		}
	}
	return a.streak, a.tier, changed
}

// Streak is the current run of consecutive wins.
func (a *Adapter) Streak() int { return a.streak }

// Tier is the difficulty the next problem is generated at.
func (a *Adapter) Tier() model.DifficultyTier { return a.tier }

// Reset returns to streak 0 at the easiest tier.
func (a *Adapter) Reset() {
	a.streak = 0
	a.tier = model.TierEasy
}
