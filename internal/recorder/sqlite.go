package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"WagerArena/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder appends audit rows to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets external tools read the audit trail while the arena writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			tx_id             TEXT NOT NULL,
			session           TEXT NOT NULL,
			seq               INTEGER NOT NULL,
			timestamp         INTEGER NOT NULL,
			round             INTEGER,
			game              TEXT,
			stake             INTEGER,
			kind              TEXT,
			payout            INTEGER,
			resulting_balance INTEGER,
			risk              TEXT,
			note              TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_session ON transactions(session, seq)`,

		`CREATE TABLE IF NOT EXISTS rounds (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session    TEXT NOT NULL,
			round      INTEGER,
			game       TEXT,
			tier       TEXT,
			answer     TEXT,
			selection  TEXT,
			stake      INTEGER,
			confidence INTEGER,
			modifiers  TEXT,
			kind       TEXT,
			payout     INTEGER,
			balance    INTEGER,
			streak     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session, round)`,

		`CREATE TABLE IF NOT EXISTS resets (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			prev_session  TEXT,
			new_session   TEXT,
			rounds        INTEGER,
			final_balance INTEGER,
			initial       INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTransaction(tx *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := tx.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}
	_, err := r.db.Exec(`INSERT INTO transactions
		(tx_id, session, seq, timestamp, round, game, stake, kind, payout, resulting_balance, risk, note)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		tx.ID, tx.Session, tx.Seq, ts.Unix(), tx.Round, tx.Game,
		tx.Stake, string(tx.Kind), tx.Payout, tx.ResultingBalance,
		string(tx.Risk), tx.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordRound(evt *RoundEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rounds
		(timestamp, session, round, game, tier, answer, selection, stake, confidence, modifiers, kind, payout, balance, streak)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.Session, evt.Round, evt.Game, evt.Tier,
		evt.Answer, evt.Selection, evt.Stake, evt.Confidence, evt.Modifiers,
		string(evt.Kind), evt.Payout, evt.Balance, evt.Streak,
	)
	return err
}

func (r *SQLiteRecorder) RecordReset(evt *ResetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO resets
		(timestamp, prev_session, new_session, rounds, final_balance, initial)
		VALUES (?,?,?,?,?,?)`,
		r.now().Unix(), evt.PrevSession, evt.NewSession,
		evt.Rounds, evt.FinalBalance, evt.Initial,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
