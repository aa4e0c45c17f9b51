package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"WagerArena/internal/engine"
	"WagerArena/internal/model"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Candidate is one weighted choice: a racer, a coin face or a roulette colour.
// Multiplier only applies to table games.
type Candidate struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Weight     float64 `yaml:"weight"`
	Multiplier int64   `yaml:"multiplier"`
}

// PowerUp is a catalog entry. Effect is one of extend_timer,
// reveal_wrong_option, nullify_loss or double_multiplier.
type PowerUp struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Cost   int64  `yaml:"cost"`
	Uses   int    `yaml:"uses"`
	Effect string `yaml:"effect"`
}

// Config holds all application configuration.
type Config struct {
	Game struct {
		Mode             string `yaml:"mode" env:"ARENA_MODE"`
		InitialBalance   int64  `yaml:"initial_balance" env:"ARENA_INITIAL_BALANCE"`
		RoundTicks       int    `yaml:"round_ticks" env:"ARENA_ROUND_TICKS"`
		TimerBonus       int    `yaml:"timer_bonus" env:"ARENA_TIMER_BONUS"`
		TimerCeiling     int    `yaml:"timer_ceiling" env:"ARENA_TIMER_CEILING"`
		MaxStake         int64  `yaml:"max_stake" env:"ARENA_MAX_STAKE"`
		ConfidenceLevels []int  `yaml:"confidence_levels" env:"ARENA_CONFIDENCE_LEVELS" envSeparator:","`
		MaxRounds        int    `yaml:"max_rounds" env:"ARENA_MAX_ROUNDS"`
		TargetBalance    int64  `yaml:"target_balance" env:"ARENA_TARGET_BALANCE"`
		Seed             uint64 `yaml:"seed" env:"ARENA_SEED"` // 0 draws from crypto/rand
	} `yaml:"game"`
	Racers []Candidate `yaml:"racers"`
	Tables struct {
		CoinFlip []Candidate `yaml:"coinflip"`
		Roulette []Candidate `yaml:"roulette"`
	} `yaml:"tables"`
	PowerUps []PowerUp `yaml:"power_ups"`
	Schedule struct {
		TickCron       string `yaml:"tick_cron" env:"ARENA_TICK_CRON"`
		NextRoundDelay *int   `yaml:"next_round_delay" env:"ARENA_NEXT_ROUND_DELAY"` // nil means 3, 0 disables pacing
		AutoStart      bool   `yaml:"auto_start" env:"ARENA_AUTO_START"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
}

// DefaultRacers is the race lineup used when the file defines none.
var DefaultRacers = []Candidate{
	{ID: "lion", Name: "Lion", Weight: 0.5},
	{ID: "cheetah", Name: "Cheetah", Weight: 0.3},
	{ID: "wolf", Name: "Wolf", Weight: 0.2},
}

// DefaultCoinFlip is a fair coin paying double.
var DefaultCoinFlip = []Candidate{
	{ID: "heads", Name: "Heads", Weight: 1, Multiplier: 2},
	{ID: "tails", Name: "Tails", Weight: 1, Multiplier: 2},
}

// DefaultRoulette is a seven-slot wheel: three red, three black, one green.
var DefaultRoulette = []Candidate{
	{ID: "red", Name: "Red", Weight: 3, Multiplier: 2},
	{ID: "black", Name: "Black", Weight: 3, Multiplier: 2},
	{ID: "green", Name: "Green", Weight: 1, Multiplier: 10},
}

const defaultNextRoundDelay = 3

// DefaultPowerUps is the catalog used when the file defines none.
var DefaultPowerUps = []PowerUp{
	{ID: "freeze", Name: "Time Freeze", Cost: 50, Uses: 3, Effect: "extend_timer"},
	{ID: "hint", Name: "Hint", Cost: 75, Uses: 2, Effect: "reveal_wrong_option"},
	{ID: "shield", Name: "Shield", Cost: 100, Uses: 1, Effect: "nullify_loss"},
	{ID: "boost", Name: "Double Boost", Cost: 150, Uses: 1, Effect: "double_multiplier"},
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Defaults
	if cfg.Game.Mode == "" {
		cfg.Game.Mode = string(engine.ModeQuiz)
	}
	if cfg.Game.InitialBalance == 0 {
		cfg.Game.InitialBalance = 500
	}
	if cfg.Game.RoundTicks == 0 {
		cfg.Game.RoundTicks = 15
	}
	if cfg.Game.TimerBonus == 0 {
		cfg.Game.TimerBonus = 5
	}
	if cfg.Game.TimerCeiling == 0 {
		cfg.Game.TimerCeiling = 20
	}
	if len(cfg.Game.ConfidenceLevels) == 0 && cfg.Game.Mode == string(engine.ModeQuiz) {
		cfg.Game.ConfidenceLevels = []int{1, 2, 3, 5}
	}
	if cfg.Game.MaxStake == 0 && cfg.Game.Mode == string(engine.ModeQuiz) {
		cfg.Game.MaxStake = 500
	}
	if len(cfg.Racers) == 0 {
		cfg.Racers = append([]Candidate(nil), DefaultRacers...)
	}
	if len(cfg.Tables.CoinFlip) == 0 {
		cfg.Tables.CoinFlip = append([]Candidate(nil), DefaultCoinFlip...)
	}
	if len(cfg.Tables.Roulette) == 0 {
		cfg.Tables.Roulette = append([]Candidate(nil), DefaultRoulette...)
	}
	if len(cfg.PowerUps) == 0 {
		cfg.PowerUps = append([]PowerUp(nil), DefaultPowerUps...)
	}
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "@every 1s"
	}
	if cfg.Schedule.NextRoundDelay == nil {
		delay := defaultNextRoundDelay
		cfg.Schedule.NextRoundDelay = &delay
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/wager_arena.db"
	}

	return cfg, nil
}

// Validate checks every field and reports all problems together.
func (c *Config) Validate() error {
	var errs []string

	if c.Schedule.TickCron == "" {
		errs = append(errs, "schedule.tick_cron is required")
	}
	if c.Schedule.NextRoundDelay != nil && *c.Schedule.NextRoundDelay < 0 {
		errs = append(errs, "schedule.next_round_delay must be non-negative")
	}
	for i, p := range c.PowerUps {
		if _, ok := model.ParseEffectKind(p.Effect); !ok {
			errs = append(errs, fmt.Sprintf("power_ups[%d]: unknown effect %q", i, p.Effect))
		}
	}
	if len(errs) == 0 {
		if err := c.Engine().Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// RoundDelay is the number of idle ticks between rounds.
func (c *Config) RoundDelay() int {
	if c.Schedule.NextRoundDelay == nil {
		return defaultNextRoundDelay
	}
	return *c.Schedule.NextRoundDelay
}

// Engine converts the file representation to an engine config. The candidate
// list follows the mode.
func (c *Config) Engine() engine.Config {
	src := c.Racers
	switch engine.Mode(c.Game.Mode) {
	case engine.ModeCoinFlip:
		src = c.Tables.CoinFlip
	case engine.ModeRoulette:
		src = c.Tables.Roulette
	}
	cands := make([]model.Candidate, len(src))
	for i, r := range src {
		cands[i] = model.Candidate{ID: r.ID, Name: r.Name, Weight: r.Weight, Multiplier: r.Multiplier}
	}
	pups := make([]model.PowerUp, len(c.PowerUps))
	for i, p := range c.PowerUps {
		effect, _ := model.ParseEffectKind(p.Effect)
		pups[i] = model.PowerUp{ID: p.ID, Name: p.Name, Cost: p.Cost, RemainingUses: p.Uses, Effect: effect}
	}
	return engine.Config{
		Mode:             engine.Mode(c.Game.Mode),
		InitialBalance:   c.Game.InitialBalance,
		RoundTicks:       c.Game.RoundTicks,
		TimerBonus:       c.Game.TimerBonus,
		TimerCeiling:     c.Game.TimerCeiling,
		MaxStake:         c.Game.MaxStake,
		ConfidenceLevels: append([]int(nil), c.Game.ConfidenceLevels...),
		Candidates:       cands,
		PowerUps:         pups,
		MaxRounds:        c.Game.MaxRounds,
		TargetBalance:    c.Game.TargetBalance,
	}
}
