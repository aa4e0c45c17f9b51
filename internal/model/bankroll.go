package model

import "time"

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindWin      TransactionKind = "WIN"
	KindLoss     TransactionKind = "LOSS"
	KindTimeout  TransactionKind = "TIMEOUT"
	KindPurchase TransactionKind = "PURCHASE" // power-up cost
)

// Transaction is an immutable ledger entry. ResultingBalance always equals the
// previous balance plus Payout.
type Transaction struct {
	Seq              int64           `json:"seq"`
	ID               string          `json:"id"`
	Session          string          `json:"session"`
	Round            int             `json:"round"`
	Game             string          `json:"game"`
	Stake            int64           `json:"stake"`
	Kind             TransactionKind `json:"kind"`
	Payout           int64           `json:"payout"`
	ResultingBalance int64           `json:"resulting_balance"`
	Risk             RiskTier        `json:"risk"`
	Note             string          `json:"note,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// Bankroll is a read-only copy of the ledger state.
type Bankroll struct {
	Balance int64
	Initial int64
	History []Transaction
}

// Result is the outcome of resolving one wager.
type Result struct {
	IsWin       bool
	Kind        TransactionKind
	Payout      int64 // signed: positive on win, -stake on loss, 0 when protected
	TokensDelta int64
}
