package model

// RoundPhase is the lifecycle position of the current round.
type RoundPhase int

const (
	PhaseIdle RoundPhase = iota
	PhaseActive
	PhaseResolved
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// RoundState is the validator/registry view of the round.
type RoundState struct {
	Phase         RoundPhase
	TimeRemaining int
}

// RacerView is a candidate as shown to the player.
type RacerView struct {
	Candidate
	Probability float64
	Wins        int
}

// RoundSnapshot is an immutable view returned by engine operations.
type RoundSnapshot struct {
	Session       string
	Round         int
	Phase         RoundPhase
	TimeRemaining int
	Tier          DifficultyTier
	Streak        int
	Balance       int64
	Racers        []RacerView // weighted modes
	Prompt        string      // quiz mode
	Options       []int       // quiz mode
	PowerUps      []PowerUp
	StagedStake   int64
	Over          bool
}

// ResolutionEvent reports a resolved round.
type ResolutionEvent struct {
	Round       int
	Kind        TransactionKind
	IsWin       bool
	Payout      int64
	NewBalance  int64
	Streak      int
	Tier        DifficultyTier
	TierChanged bool
	Answer      string
	Transaction Transaction
	Over        bool
	Won         bool
}

// TickEvent is returned by Tick. Resolution is set when the countdown forced a
// timeout.
type TickEvent struct {
	Snapshot   RoundSnapshot
	Resolution *ResolutionEvent
}

// AcceptanceEvent reports an activated power-up.
type AcceptanceEvent struct {
	PowerUp       PowerUp
	EffectApplied string
	TimeRemaining int
	Options       []int
	Balance       int64
}

// InitialSnapshot is returned by a full reset.
type InitialSnapshot struct {
	Session  string
	Balance  int64
	Streak   int
	Tier     DifficultyTier
	PowerUps []PowerUp
}
