package ledger

import "github.com/imran-khalid/settlement-ledger-system/internal/models"

// DB is a transactional settlement database. Transactions are applied
// optimistically as they arrive, negative balances included; Settle then
// rolls back transactions until every balance is non-negative again, keeping
// as much of the submitted sequence as its heuristic manages.
//
// A DB is not safe for concurrent use. The expected call order is any number
// of PushTransaction calls, then Settle, then the accessors; callers that
// share a DB across goroutines must serialize access themselves.
type DB struct {
	book       *book
	pending    pendingLog
	nextID     int
	applied    []int
	rolledBack []int
}

// New builds a database from the initial account balances. Ids are expected
// to be unique; duplicates are not detected and the last entry wins.
func New(initial []models.Account) *DB {
	return &DB{book: newBook(initial)}
}

// PushTransaction validates tx against the current account set and, when
// valid, applies it immediately and marks it pending settlement. A
// transaction naming an unknown account is dropped whole with no effect on
// any balance; ingestion is best effort and no error crosses this boundary.
//
// Every submission consumes one sequence number, dropped or not, so a
// surviving id always equals the transaction's 0-based position in the
// original submission sequence.
func (db *DB) PushTransaction(tx models.Transaction) {
	id := db.nextID
	db.nextID++

	rec, err := newRecord(tx, id, db.book.exists)
	if err != nil {
		return
	}
	db.book.apply(rec)
	db.pending.push(rec)
}

// Settle restores the invariant that no account balance is negative. While
// invalid accounts remain, it scores every pending transaction by how many
// of its own accounts would still be negative after reverting it, reverts
// the lowest scorer (smallest id on ties) and measures again. Once the
// balances are clean the surviving transactions are committed in submission
// order.
//
// The selection is a greedy, locally scored heuristic: it can roll back more
// transactions than a globally minimal search would, because each candidate
// is judged only against the accounts it touches. That trade-off is
// deliberate; the heuristic is linear in the pending set per rollback where
// the exact problem is a combinatorial search.
//
// Settle fails with ErrUnrecoverable only when the pending log is exhausted
// while negative balances remain, which means the initial balances already
// violated the invariant. Calling Settle again with nothing pending is a
// no-op.
func (db *DB) Settle() error {
	for db.book.invalidCount() > 0 {
		if db.pending.empty() {
			return ErrUnrecoverable
		}

		// Ascending iteration plus a strict < keeps the smallest id on ties.
		victim := db.pending.records[0]
		best := db.book.simulateRevertInvalid(victim)
		for _, rec := range db.pending.records[1:] {
			if score := db.book.simulateRevertInvalid(rec); score < best {
				victim, best = rec, score
			}
		}

		db.book.revert(victim)
		if err := db.pending.remove(victim.id); err != nil {
			return err
		}
		db.rolledBack = append(db.rolledBack, victim.id)
	}

	db.applied = append(db.applied, db.pending.drainIDs()...)
	return nil
}

// Balances returns a snapshot of every account, in no particular order.
// Before a settlement the snapshot may contain negative balances.
func (db *DB) Balances() []models.Account {
	return db.book.snapshot()
}

// AppliedTransactions returns the ids of the transactions whose effects
// survive in the settled balances, ascending. It is meaningful once Settle
// has been called after the relevant pushes.
func (db *DB) AppliedTransactions() []int {
	out := make([]int, len(db.applied))
	copy(out, db.applied)
	return out
}

// RolledBackTransactions returns the ids reverted across all settlements, in
// the order they were reverted.
func (db *DB) RolledBackTransactions() []int {
	out := make([]int, len(db.rolledBack))
	copy(out, db.rolledBack)
	return out
}
