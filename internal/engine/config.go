package engine

import (
	"fmt"
	"strings"

	"WagerArena/internal/model"
	"WagerArena/internal/outcome"
)

// Mode selects the outcome source and payout policy.
type Mode string

const (
	ModeRace     Mode = "race"     // weighted winner, inverse-odds payout
	ModeQuiz     Mode = "quiz"     // arithmetic problem, confidence payout
	ModeCoinFlip Mode = "coinflip" // weighted winner, fixed multiplier, low risk
	ModeRoulette Mode = "roulette" // weighted winner, fixed multiplier, medium risk
)

// Weighted reports whether rounds draw a winner from Candidates.
func (m Mode) Weighted() bool {
	return m == ModeRace || m == ModeCoinFlip || m == ModeRoulette
}

// FixedPayout reports whether wins pay the candidate's multiplier.
func (m Mode) FixedPayout() bool {
	return m == ModeCoinFlip || m == ModeRoulette
}

// Config holds everything the engine needs for one game mode.
type Config struct {
	Mode             Mode
	InitialBalance   int64
	RoundTicks       int
	TimerBonus       int
	TimerCeiling     int
	MaxStake         int64 // 0 means no table limit
	ConfidenceLevels []int // empty accepts any confidence >= 1
	Candidates       []model.Candidate
	PowerUps         []model.PowerUp
	MaxRounds        int   // 0 means unlimited
	TargetBalance    int64 // 0 means no target
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []string

	switch c.Mode {
	case ModeRace, ModeCoinFlip, ModeRoulette:
		if err := outcome.ValidateCandidates(c.Candidates); err != nil {
			errs = append(errs, fmt.Sprintf("candidates: %v", err))
		}
		seen := map[string]bool{}
		for _, cand := range c.Candidates {
			if cand.ID == "" {
				errs = append(errs, "candidates: empty id")
				continue
			}
			if seen[cand.ID] {
				errs = append(errs, fmt.Sprintf("candidates: duplicate id %q", cand.ID))
			}
			seen[cand.ID] = true
			if c.Mode.FixedPayout() && cand.Multiplier < 1 {
				errs = append(errs, fmt.Sprintf("candidates: %q needs a multiplier >= 1", cand.ID))
			}
		}
	case ModeQuiz:
	default:
		errs = append(errs, fmt.Sprintf("mode must be one of %q, %q, %q or %q, got %q",
			ModeQuiz, ModeRace, ModeCoinFlip, ModeRoulette, c.Mode))
	}

	if c.InitialBalance <= 0 {
		errs = append(errs, "initial balance must be positive")
	}
	if c.RoundTicks <= 0 {
		errs = append(errs, "round ticks must be positive")
	}
	if c.TimerBonus < 0 {
		errs = append(errs, "timer bonus must be non-negative")
	}
	if c.TimerCeiling < c.RoundTicks {
		errs = append(errs, fmt.Sprintf("timer ceiling %d is below round ticks %d", c.TimerCeiling, c.RoundTicks))
	}
	if c.MaxStake < 0 {
		errs = append(errs, "max stake must be non-negative")
	}
	for _, l := range c.ConfidenceLevels {
		if l < 1 {
			errs = append(errs, fmt.Sprintf("confidence level %d must be >= 1", l))
		}
	}
	if c.MaxRounds < 0 {
		errs = append(errs, "max rounds must be non-negative")
	}
	if c.TargetBalance < 0 {
		errs = append(errs, "target balance must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid engine config: %s", strings.Join(errs, "; "))
	}
	return nil
}
