package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementCompleted is published after every settlement that reached a
// consistent state.
type SettlementCompleted struct {
	RunID               string          `json:"run_id"`
	AppliedTransactions []int           `json:"applied_transactions"`
	RolledBackCount     int             `json:"rolled_back_count"`
	TotalFunds          decimal.Decimal `json:"total_funds"`
	OccurredAt          time.Time       `json:"occurred_at"`
}
