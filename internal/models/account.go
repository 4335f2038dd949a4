package models

// Account represents a single account balance in the database.
// Balances are whole units; a balance may only be negative between an
// optimistic push and a completed settlement.
type Account struct {
	ID      int   `json:"account_id"`
	Balance int64 `json:"balance"`
}
