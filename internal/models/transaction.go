package models

// Transfer represents an intent to move money between two accounts.
type Transfer struct {
	From   int   `json:"from"`
	To     int   `json:"to"`
	Amount int64 `json:"amount"`
}

// Transaction is an ordered group of transfers submitted as one atomic unit.
// It is identified externally by its 0-based position in the submission
// sequence, not by any field on the value itself.
type Transaction []Transfer
