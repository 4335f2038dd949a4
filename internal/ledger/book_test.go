package ledger

import (
	"testing"

	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

func mustRecord(t *testing.T, tx models.Transaction, id int, b *book) *record {
	t.Helper()
	rec, err := newRecord(tx, id, b.exists)
	if err != nil {
		t.Fatalf("newRecord: %v", err)
	}
	return rec
}

func TestApplyRevertRoundTrip(t *testing.T) {
	b := newBook([]models.Account{{ID: 1, Balance: 10}, {ID: 2, Balance: 0}, {ID: 3, Balance: 7}})
	rec := mustRecord(t, models.Transaction{
		{From: 1, To: 2, Amount: 6},
		{From: 3, To: 2, Amount: 1},
	}, 0, b)

	b.apply(rec)
	for id, want := range map[int]int64{1: 4, 2: 7, 3: 6} {
		if got := b.balances[id]; got != want {
			t.Errorf("after apply balance[%d]=%d want=%d", id, got, want)
		}
	}

	b.revert(rec)
	for id, want := range map[int]int64{1: 10, 2: 0, 3: 7} {
		if got := b.balances[id]; got != want {
			t.Errorf("after revert balance[%d]=%d want=%d", id, got, want)
		}
	}
}

func TestInvalidCount(t *testing.T) {
	b := newBook([]models.Account{{ID: 1, Balance: 5}, {ID: 2, Balance: 0}})
	if got := b.invalidCount(); got != 0 {
		t.Fatalf("invalidCount=%d want=0", got)
	}

	b.apply(mustRecord(t, models.Transaction{{From: 1, To: 2, Amount: 8}}, 0, b))
	if got := b.invalidCount(); got != 1 {
		t.Fatalf("invalidCount=%d want=1", got)
	}

	b.apply(mustRecord(t, models.Transaction{{From: 2, To: 1, Amount: 20}}, 1, b))
	if got := b.invalidCount(); got != 1 {
		t.Fatalf("invalidCount=%d want=1", got)
	}
}

func TestSimulateRevertInvalid(t *testing.T) {
	b := newBook([]models.Account{{ID: 1, Balance: 5}, {ID: 2, Balance: 0}, {ID: 3, Balance: 0}})
	rec := mustRecord(t, models.Transaction{{From: 1, To: 2, Amount: 5}}, 0, b)
	b.apply(rec)
	// State: 1:0, 2:5, 3:0.

	// Reverting rec leaves its touched accounts at 1:5 and 2:0, both valid.
	if got := b.simulateRevertInvalid(rec); got != 0 {
		t.Fatalf("simulateRevertInvalid=%d want=0", got)
	}

	// Spend the received money; reverting rec would now take account 2 negative.
	spend := mustRecord(t, models.Transaction{{From: 2, To: 3, Amount: 4}}, 1, b)
	b.apply(spend)
	if got := b.simulateRevertInvalid(rec); got != 1 {
		t.Fatalf("simulateRevertInvalid=%d want=1", got)
	}

	// Simulation must not touch actual balances.
	for id, want := range map[int]int64{1: 0, 2: 1, 3: 4} {
		if got := b.balances[id]; got != want {
			t.Errorf("balance[%d]=%d want=%d (simulate mutated state)", id, got, want)
		}
	}
}
