package recorder

import "WagerArena/internal/model"

// RoundEvent holds the audit data for one resolved round.
type RoundEvent struct {
	Session    string
	Round      int
	Game       string
	Tier       string
	Answer     string
	Selection  string // empty on timeout
	Stake      int64
	Confidence int
	Modifiers  string // comma-separated effect names
	Kind       model.TransactionKind
	Payout     int64
	Balance    int64
	Streak     int
}

// ResetEvent records a full session reset.
type ResetEvent struct {
	PrevSession  string
	NewSession   string
	Rounds       int
	FinalBalance int64
	Initial      int64
}

// Recorder is an append-only audit trail. It is never read back to restore
// engine state.
type Recorder interface {
	RecordTransaction(tx *model.Transaction) error
	RecordRound(evt *RoundEvent) error
	RecordReset(evt *ResetEvent) error
	Close() error
}
