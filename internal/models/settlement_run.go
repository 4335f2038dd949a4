package models

import "time"

// SettlementRun is the audit record of one completed settlement: which
// transactions survived, which were rolled back, and the balances the
// database settled on.
type SettlementRun struct {
	RunID               string    `json:"run_id"`
	AppliedTransactions []int     `json:"applied_transactions"`
	RolledBack          []int     `json:"rolled_back"`
	Balances            []Account `json:"balances"`
	CreatedAt           time.Time `json:"created_at"`
}
