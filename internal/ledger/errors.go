package ledger

import "errors"

var (
	// ErrUnknownAccount reports a transfer naming an account the database
	// does not recognize. The enclosing transaction is dropped whole.
	ErrUnknownAccount = errors.New("ledger: unknown account")

	// ErrUnrecoverable reports that settlement exhausted every pending
	// transaction while negative balances remained. This can only happen
	// when the initial balances already violated the non-negativity
	// invariant, which is a caller precondition.
	ErrUnrecoverable = errors.New("ledger: cannot settle to a valid state")

	// ErrNotPending reports an attempt to remove a transaction id that is
	// not in the pending log. It indicates a programmer error.
	ErrNotPending = errors.New("ledger: transaction not pending")
)
