package textio

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

func TestReadProblem(t *testing.T) {
	input := `2
1 10
2 0
2
1
1 2 5
2
2 1 3
1 2 1
`
	accounts, txs, err := ReadProblem(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadProblem: %v", err)
	}

	wantAccounts := []models.Account{{ID: 1, Balance: 10}, {ID: 2, Balance: 0}}
	if !reflect.DeepEqual(accounts, wantAccounts) {
		t.Errorf("accounts=%v want=%v", accounts, wantAccounts)
	}

	wantTxs := []models.Transaction{
		{{From: 1, To: 2, Amount: 5}},
		{{From: 2, To: 1, Amount: 3}, {From: 1, To: 2, Amount: 1}},
	}
	if !reflect.DeepEqual(txs, wantTxs) {
		t.Errorf("transactions=%v want=%v", txs, wantTxs)
	}
}

func TestReadProblemWhitespaceInsensitive(t *testing.T) {
	// Same problem with all tokens on one line.
	input := "1 1 10 1 1 1 1 5"
	accounts, txs, err := ReadProblem(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadProblem: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != 1 || accounts[0].Balance != 10 {
		t.Errorf("accounts=%v", accounts)
	}
	if len(txs) != 1 || len(txs[0]) != 1 {
		t.Errorf("transactions=%v", txs)
	}
}

func TestReadProblemTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing balance", input: "1 1"},
		{name: "missing transfers", input: "1 1 10 1 2 1 2 5"},
		{name: "non-numeric token", input: "1 1 ten"},
		{name: "negative account count", input: "-1"},
		{name: "negative transaction count", input: "1 1 10 -3"},
		{name: "negative transfer count", input: "1 1 10 1 -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ReadProblem(strings.NewReader(tt.input)); err == nil {
				t.Fatal("want error for truncated input, got nil")
			}
		})
	}
}

func TestReadProblemHugeCount(t *testing.T) {
	// A declared count far beyond the actual data must fail on the missing
	// records, not allocate for the declared size.
	_, _, err := ReadProblem(strings.NewReader("999999999999 1 10"))
	if err == nil {
		t.Fatal("want error for overstated count, got nil")
	}
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	// Unsorted on purpose; output must be sorted.
	applied := []int{2, 0}
	balances := []models.Account{{ID: 3, Balance: 7}, {ID: 1, Balance: 0}}

	if err := WriteResults(&buf, applied, balances); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	want := "2\n0\n2\n2\n1 0\n3 7\n"
	if got := buf.String(); got != want {
		t.Errorf("output=%q want=%q", got, want)
	}
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, nil, nil); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if got, want := buf.String(), "0\n0\n"; got != want {
		t.Errorf("output=%q want=%q", got, want)
	}
}
