package ledger

import "github.com/imran-khalid/settlement-ledger-system/internal/models"

// book owns the account balances. It is mutated only by applying or
// reverting a record, so every balance is always the initial balance plus
// the net changes of the records currently applied.
type book struct {
	balances map[int]int64
}

// newBook builds the balance map from the caller-supplied initial accounts.
// Account ids are expected to be unique; on duplicates the last entry wins.
func newBook(initial []models.Account) *book {
	b := &book{balances: make(map[int]int64, len(initial))}
	for _, acct := range initial {
		b.balances[acct.ID] = acct.Balance
	}
	return b
}

func (b *book) exists(accountID int) bool {
	_, ok := b.balances[accountID]
	return ok
}

// apply adds the record's net changes to the balances. The record's accounts
// were validated when it was built, so apply cannot fail. It may leave
// balances negative until the next settlement.
func (b *book) apply(r *record) {
	for id, delta := range r.net {
		b.balances[id] += delta
	}
}

// revert is the exact inverse of apply. Callers must only revert records
// currently applied.
func (b *book) revert(r *record) {
	for id, delta := range r.net {
		b.balances[id] -= delta
	}
}

// invalidCount returns how many accounts currently hold a negative balance.
func (b *book) invalidCount() int {
	n := 0
	for _, bal := range b.balances {
		if bal < 0 {
			n++
		}
	}
	return n
}

// simulateRevertInvalid counts how many of the accounts touched by r would
// hold a negative balance if r were reverted right now, without mutating
// anything. Accounts r does not touch cannot change under this revert, so
// they are not examined.
func (b *book) simulateRevertInvalid(r *record) int {
	n := 0
	for id, delta := range r.net {
		if b.balances[id]-delta < 0 {
			n++
		}
	}
	return n
}

// snapshot returns every account and its current balance, in no particular
// order.
func (b *book) snapshot() []models.Account {
	out := make([]models.Account, 0, len(b.balances))
	for id, bal := range b.balances {
		out = append(out, models.Account{ID: id, Balance: bal})
	}
	return out
}
