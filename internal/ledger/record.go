package ledger

import (
	"fmt"

	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

// record condenses one transaction into the net change it causes per account.
// M transfers over N distinct accounts collapse into N entries, so applying,
// reverting and scoring a transaction costs O(accounts touched) instead of
// O(transfers). A record is immutable once built; the net changes of a valid
// record always sum to zero, since every transfer moves money rather than
// creating or destroying it.
type record struct {
	id  int
	net map[int]int64
}

// newRecord folds every transfer of tx into a net-change map. If any transfer
// names an account for which exists returns false, the whole build fails with
// ErrUnknownAccount and nothing is kept: a transaction is atomic.
func newRecord(tx models.Transaction, id int, exists func(accountID int) bool) (*record, error) {
	r := &record{id: id, net: make(map[int]int64)}
	for _, xfer := range tx {
		if !exists(xfer.From) || !exists(xfer.To) {
			return nil, fmt.Errorf("%w: transfer %d -> %d", ErrUnknownAccount, xfer.From, xfer.To)
		}
		r.net[xfer.From] -= xfer.Amount
		r.net[xfer.To] += xfer.Amount
	}
	return r, nil
}

// netChange returns the net effect of the transaction on one account,
// 0 if the account was not touched.
func (r *record) netChange(accountID int) int64 {
	return r.net[accountID]
}
