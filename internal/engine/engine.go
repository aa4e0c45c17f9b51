// Package engine runs the round state machine: it generates outcomes, accepts
// wagers and power-ups, resolves rounds and keeps the session bookkeeping.
//
// An Engine is not safe for concurrent use. Callers serialize events.
package engine

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"WagerArena/internal/ledger"
	"WagerArena/internal/model"
	"WagerArena/internal/outcome"
	"WagerArena/internal/powerup"
	"WagerArena/internal/random"
	"WagerArena/internal/recorder"
	"WagerArena/internal/rejection"
	"WagerArena/internal/resolve"
	"WagerArena/internal/streak"
	"WagerArena/internal/wager"

	"github.com/google/uuid"
)

// Engine is one single-player session.
type Engine struct {
	cfg       Config
	src       random.Source
	rec       recorder.Recorder
	policy    resolve.Policy
	validator wager.Validator
	ledger    *ledger.Manager
	powerups  *powerup.Registry
	streak    *streak.Adapter

	session       string
	round         int
	phase         model.RoundPhase
	timeRemaining int
	outcome       model.Outcome
	staged        *model.Wager
	wins          map[string]int
	over          bool
	won           bool
}

// New builds an engine from a validated config. src and rec may be nil.
func New(cfg Config, src random.Source, rec recorder.Recorder) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = random.Default()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}

	lm, err := ledger.NewManager(cfg.InitialBalance, rec)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	reg, err := powerup.NewRegistry(cfg.PowerUps)
	if err != nil {
		return nil, fmt.Errorf("init power-ups: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		src:       src,
		rec:       rec,
		policy:    policyFor(cfg.Mode),
		validator: wager.Validator{MaxStake: cfg.MaxStake, Levels: cfg.ConfidenceLevels},
		ledger:    lm,
		powerups:  reg,
		streak:    streak.NewAdapter(),
		session:   uuid.NewString(),
		phase:     model.PhaseIdle,
		wins:      map[string]int{},
	}, nil
}

func policyFor(m Mode) resolve.Policy {
	switch m {
	case ModeRace:
		return resolve.InverseOdds{}
	case ModeCoinFlip:
		return resolve.FixedMultiplier{Tier: model.RiskLow}
	case ModeRoulette:
		return resolve.FixedMultiplier{Tier: model.RiskMedium}
	default:
		return resolve.Confidence{}
	}
}

// Mode returns the game mode the engine was built for.
func (e *Engine) Mode() Mode { return e.cfg.Mode }

// Session returns the current session id. Reset issues a new one.
func (e *Engine) Session() string { return e.session }

// Balance returns the current bankroll.
func (e *Engine) Balance() int64 { return e.ledger.Balance() }

// Over reports whether the session has ended and needs a Reset.
func (e *Engine) Over() bool { return e.over }

func (e *Engine) state() model.RoundState {
	return model.RoundState{Phase: e.phase, TimeRemaining: e.timeRemaining}
}

// StartRound generates a fresh outcome and starts the countdown.
func (e *Engine) StartRound() (model.RoundSnapshot, error) {
	if e.over {
		return model.RoundSnapshot{}, rejection.Validation(rejection.CodeSessionOver, "session is over, reset to play again")
	}
	if e.phase == model.PhaseActive {
		return model.RoundSnapshot{}, rejection.Validation(rejection.CodeRoundInProgress, "a round is already in progress")
	}

	var o model.Outcome
	if e.cfg.Mode.Weighted() {
		choice, err := outcome.Resolve(e.cfg.Candidates, e.src)
		if err != nil {
			return model.RoundSnapshot{}, fmt.Errorf("draw %s winner: %w", e.cfg.Mode, err)
		}
		o = model.NewWeightedOutcome(choice)
	} else {
		o = model.NewProblemOutcome(outcome.GenerateProblem(e.streak.Tier(), e.src))
	}

	e.round++
	e.outcome = o
	e.phase = model.PhaseActive
	e.timeRemaining = e.cfg.RoundTicks
	e.staged = nil
	e.powerups.ResetRound()

	log.Printf("[INFO] round %d started (%s, tier %s)", e.round, e.cfg.Mode, e.streak.Tier())
	return e.Snapshot(), nil
}

// Tick advances the countdown by one. When it reaches zero the round resolves
// as a timeout.
func (e *Engine) Tick() (model.TickEvent, error) {
	if e.phase != model.PhaseActive {
		return model.TickEvent{}, rejection.Validation(rejection.CodeRoundNotActive, "no round is active")
	}
	if e.timeRemaining > 0 {
		e.timeRemaining--
	}
	if e.timeRemaining > 0 {
		return model.TickEvent{Snapshot: e.Snapshot()}, nil
	}

	res, err := e.timeout()
	if err != nil {
		return model.TickEvent{}, err
	}
	return model.TickEvent{Snapshot: e.Snapshot(), Resolution: &res}, nil
}

// StageWager holds a stake for the current round without resolving it. A round
// that times out forfeits the staged stake.
func (e *Engine) StageWager(w model.Wager) (model.RoundSnapshot, error) {
	if err := e.validator.Validate(w, e.ledger.Balance(), e.state(), false); err != nil {
		return model.RoundSnapshot{}, err
	}
	if !w.Selection.IsZero() && !e.outcome.Offers(w.Selection) {
		return model.RoundSnapshot{}, rejection.Validation(rejection.CodeSelectionUnknown,
			fmt.Sprintf("%q is not a choice this round", w.Selection))
	}
	e.staged = &w
	return e.Snapshot(), nil
}

// SubmitWager resolves the round against w.
func (e *Engine) SubmitWager(w model.Wager) (model.ResolutionEvent, error) {
	if err := e.validator.Validate(w, e.ledger.Balance(), e.state(), true); err != nil {
		return model.ResolutionEvent{}, err
	}
	if !e.outcome.Offers(w.Selection) {
		return model.ResolutionEvent{}, rejection.Validation(rejection.CodeSelectionUnknown,
			fmt.Sprintf("%q is not a choice this round", w.Selection))
	}

	mods := e.powerups.Modifiers()
	res, err := resolve.Resolve(e.policy, e.outcome, w, mods)
	if err != nil {
		return model.ResolutionEvent{}, fmt.Errorf("resolve round %d: %w", e.round, err)
	}
	return e.finish(res, w, mods)
}

func (e *Engine) timeout() (model.ResolutionEvent, error) {
	var w model.Wager
	if e.staged != nil {
		w = *e.staged
	}
	// Purchases after staging may have lowered the balance.
	if bal := e.ledger.Balance(); w.Stake > bal {
		w.Stake = bal
	}
	mods := e.powerups.Modifiers()
	res := resolve.Timeout(w.Stake, resolve.Effective(e.policy, mods))
	return e.finish(res, w, mods)
}

// finish commits the result and advances the session.
func (e *Engine) finish(res model.Result, w model.Wager, mods model.ModifierSet) (model.ResolutionEvent, error) {
	risk := model.RiskLow
	if w.Stake > 0 {
		risk = e.policy.Risk(e.outcome, w)
	}
	tx, err := e.ledger.Commit(res.Payout, ledger.Meta{
		Session: e.session,
		Round:   e.round,
		Game:    string(e.cfg.Mode),
		Stake:   w.Stake,
		Kind:    res.Kind,
		Risk:    risk,
	})
	if err != nil {
		return model.ResolutionEvent{}, fmt.Errorf("commit round %d: %w", e.round, err)
	}

	streakLen, tier, changed := e.streak.OnResolved(res.IsWin)
	if e.outcome.Kind == model.OutcomeWeighted {
		e.wins[e.outcome.Choice.Resolved]++
	}
	e.phase = model.PhaseResolved
	e.timeRemaining = 0
	e.staged = nil
	e.checkOver(tx.ResultingBalance)

	evt := model.ResolutionEvent{
		Round:       e.round,
		Kind:        res.Kind,
		IsWin:       res.IsWin,
		Payout:      res.Payout,
		NewBalance:  tx.ResultingBalance,
		Streak:      streakLen,
		Tier:        tier,
		TierChanged: changed,
		Answer:      e.outcome.Answer(),
		Transaction: tx,
		Over:        e.over,
		Won:         e.won,
	}

	if err := e.rec.RecordRound(&recorder.RoundEvent{
		Session:    e.session,
		Round:      e.round,
		Game:       string(e.cfg.Mode),
		Tier:       tier.String(),
		Answer:     evt.Answer,
		Selection:  w.Selection.String(),
		Stake:      w.Stake,
		Confidence: w.Confidence,
		Modifiers:  modifierNames(mods),
		Kind:       res.Kind,
		Payout:     res.Payout,
		Balance:    tx.ResultingBalance,
		Streak:     streakLen,
	}); err != nil {
		log.Printf("[ERROR] record round %d: %v", e.round, err)
	}

	log.Printf("[INFO] round %d resolved: %s %+d, balance %d, streak %d", e.round, res.Kind, res.Payout, tx.ResultingBalance, streakLen)
	if changed {
		log.Printf("[INFO] difficulty raised to %s", tier)
	}
	if e.over {
		log.Printf("[INFO] session %s over after %d rounds (won=%v)", e.session, e.round, e.won)
	}
	return evt, nil
}

func (e *Engine) checkOver(balance int64) {
	if balance <= 0 || (e.cfg.MaxRounds > 0 && e.round >= e.cfg.MaxRounds) {
		e.over = true
		e.won = e.cfg.TargetBalance > 0 && balance >= e.cfg.TargetBalance
	}
}

// ActivatePowerUp spends a power-up. Its cost is committed to the ledger as a
// purchase; immediate effects apply now, deferred ones at resolution.
func (e *Engine) ActivatePowerUp(id string) (model.AcceptanceEvent, error) {
	if err := e.powerups.Check(id, e.ledger.Balance(), e.state()); err != nil {
		return model.AcceptanceEvent{}, err
	}
	p, _ := e.powerups.Get(id)
	if err := e.applicable(p); err != nil {
		return model.AcceptanceEvent{}, err
	}

	if p.Cost > 0 {
		if _, err := e.ledger.Commit(-p.Cost, ledger.Meta{
			Session: e.session,
			Round:   e.round,
			Game:    string(e.cfg.Mode),
			Stake:   p.Cost,
			Kind:    model.KindPurchase,
			Risk:    model.RiskLow,
			Note:    p.ID,
		}); err != nil {
			return model.AcceptanceEvent{}, fmt.Errorf("charge %s: %w", p.ID, err)
		}
	}
	p, err := e.powerups.Consume(id)
	if err != nil {
		return model.AcceptanceEvent{}, err
	}

	var applied string
	switch p.Effect {
	case model.EffectExtendTimer:
		before := e.timeRemaining
		e.timeRemaining = powerup.ExtendTimer(e.timeRemaining, e.cfg.TimerBonus, e.cfg.TimerCeiling)
		applied = fmt.Sprintf("timer %d -> %d", before, e.timeRemaining)
	case model.EffectRevealWrongOption:
		prob, removed, _ := powerup.RevealWrongOption(*e.outcome.Problem)
		e.outcome.Problem = &prob
		applied = fmt.Sprintf("removed option %d", removed)
	case model.EffectNullifyLoss:
		applied = "next loss is nullified"
	case model.EffectDoubleMultiplier:
		applied = "next win is doubled"
	}

	log.Printf("[INFO] power-up %s used in round %d: %s", p.ID, e.round, applied)

	evt := model.AcceptanceEvent{
		PowerUp:       p,
		EffectApplied: applied,
		TimeRemaining: e.timeRemaining,
		Balance:       e.ledger.Balance(),
	}
	if e.outcome.Kind == model.OutcomeProblem {
		evt.Options = append([]int(nil), e.outcome.Problem.Options...)
	}
	return evt, nil
}

func (e *Engine) applicable(p model.PowerUp) error {
	switch {
	case p.Effect == model.EffectRevealWrongOption:
		if e.outcome.Kind != model.OutcomeProblem {
			return rejection.PowerUp(rejection.CodeEffectNotApplicable, fmt.Sprintf("%s only works on quiz rounds", p.Name))
		}
		if _, _, ok := powerup.RevealWrongOption(*e.outcome.Problem); !ok {
			return rejection.PowerUp(rejection.CodeEffectNotApplicable, "no wrong option left to remove")
		}
	case p.Effect.Deferred() && !e.policy.Honors(p.Effect):
		return rejection.PowerUp(rejection.CodeEffectNotApplicable,
			fmt.Sprintf("%s has no effect on %s payouts", p.Name, e.policy.Name()))
	}
	return nil
}

// Reset starts a new session with the initial bankroll and catalog.
func (e *Engine) Reset() model.InitialSnapshot {
	prev, rounds := e.session, e.round
	closing := e.ledger.GetState()

	e.ledger.Reset()
	e.powerups.Reset()
	e.streak.Reset()
	e.session = uuid.NewString()
	e.round = 0
	e.phase = model.PhaseIdle
	e.timeRemaining = 0
	e.outcome = model.Outcome{}
	e.staged = nil
	e.wins = map[string]int{}
	e.over = false
	e.won = false

	if err := e.rec.RecordReset(&recorder.ResetEvent{
		PrevSession:  prev,
		NewSession:   e.session,
		Rounds:       rounds,
		FinalBalance: closing.Balance,
		Initial:      closing.Initial,
	}); err != nil {
		log.Printf("[ERROR] record reset: %v", err)
	}
	log.Printf("[INFO] session reset: %s -> %s", prev, e.session)

	return model.InitialSnapshot{
		Session:  e.session,
		Balance:  e.ledger.Balance(),
		Streak:   e.streak.Streak(),
		Tier:     e.streak.Tier(),
		PowerUps: e.powerups.Snapshot(),
	}
}

// Snapshot returns an immutable view of the session. It never exposes the
// race winner or the quiz answer.
func (e *Engine) Snapshot() model.RoundSnapshot {
	snap := model.RoundSnapshot{
		Session:       e.session,
		Round:         e.round,
		Phase:         e.phase,
		TimeRemaining: e.timeRemaining,
		Tier:          e.streak.Tier(),
		Streak:        e.streak.Streak(),
		Balance:       e.ledger.Balance(),
		PowerUps:      e.powerups.Snapshot(),
		Over:          e.over,
	}
	if e.staged != nil {
		snap.StagedStake = e.staged.Stake
	}
	if e.cfg.Mode.Weighted() {
		for _, c := range e.cfg.Candidates {
			p, _ := outcome.Probability(e.cfg.Candidates, c.ID)
			snap.Racers = append(snap.Racers, model.RacerView{
				Candidate:   c,
				Probability: p.InexactFloat64(),
				Wins:        e.wins[c.ID],
			})
		}
	} else if e.outcome.Kind == model.OutcomeProblem {
		snap.Prompt = e.outcome.Problem.Prompt
		snap.Options = append([]int(nil), e.outcome.Problem.Options...)
	}
	return snap
}

// History returns the session's transactions in commit order.
func (e *Engine) History() []model.Transaction {
	return e.ledger.History()
}

// ParseSelection turns player input into a selection for the current mode.
// Weighted-mode candidates match by id or name, case-insensitively.
func (e *Engine) ParseSelection(s string) (model.Selection, error) {
	s = strings.TrimSpace(s)
	if e.cfg.Mode.Weighted() {
		for _, c := range e.cfg.Candidates {
			if strings.EqualFold(c.ID, s) || strings.EqualFold(c.Name, s) {
				return model.PickCandidate(c.ID), nil
			}
		}
		return model.Selection{}, rejection.Validation(rejection.CodeSelectionUnknown, fmt.Sprintf("no choice named %q", s))
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return model.Selection{}, rejection.Validation(rejection.CodeUnparsableSelection, fmt.Sprintf("%q is not a number", s))
	}
	return model.PickOption(v), nil
}

func modifierNames(mods model.ModifierSet) string {
	kinds := mods.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}
