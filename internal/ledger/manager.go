// Package ledger owns the bankroll. Every balance change goes through Commit.
package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"WagerArena/internal/model"
	"WagerArena/internal/recorder"

	"github.com/google/uuid"
)

var ErrOverdraft = errors.New("commit would make the balance negative")

// Meta describes the context of a committed delta.
type Meta struct {
	Session string
	Round   int
	Game    string
	Stake   int64
	Kind    model.TransactionKind
	Risk    model.RiskTier
	Note    string
}

// Manager handles bankroll mutations with concurrency safety.
type Manager struct {
	mu      sync.Mutex
	initial int64
	balance int64
	history []model.Transaction
	seq     int64
	rec     recorder.Recorder
	now     func() time.Time
}

// NewManager creates a Manager holding the initial bankroll. rec may be nil.
func NewManager(initial int64, rec recorder.Recorder) (*Manager, error) {
	if initial < 0 {
		return nil, fmt.Errorf("initial balance %d must be non-negative", initial)
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Manager{initial: initial, balance: initial, rec: rec, now: time.Now}, nil
}

// Commit applies delta and appends the resulting transaction.
func (m *Manager) Commit(delta int64, meta Meta) (model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.balance + delta
	if next < 0 {
		return model.Transaction{}, fmt.Errorf("%w: balance %d, delta %d", ErrOverdraft, m.balance, delta)
	}

	m.seq++
	tx := model.Transaction{
		Seq:              m.seq,
		ID:               uuid.NewString(),
		Session:          meta.Session,
		Round:            meta.Round,
		Game:             meta.Game,
		Stake:            meta.Stake,
		Kind:             meta.Kind,
		Payout:           delta,
		ResultingBalance: next,
		Risk:             meta.Risk,
		Note:             meta.Note,
		Timestamp:        m.now(),
	}
	m.balance = next
	m.history = append(m.history, tx)

	if err := m.rec.RecordTransaction(&tx); err != nil {
		log.Printf("[ERROR] failed to record transaction %d: %v", tx.Seq, err)
	}
	return tx, nil
}

// Balance returns the current balance.
func (m *Manager) Balance() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// History returns a copy of the transactions in commit order.
func (m *Manager) History() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Transaction(nil), m.history...)
}

// GetState returns a copy of the current bankroll.
func (m *Manager) GetState() model.Bankroll {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.Bankroll{
		Balance: m.balance,
		Initial: m.initial,
		History: append([]model.Transaction(nil), m.history...),
	}
}

// Reset restores the initial balance and clears the history. Sequence numbers
// restart at 1.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balance = m.initial
	m.history = nil
	m.seq = 0
}
