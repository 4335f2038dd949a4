// Package textio reads and writes the plain-text problem format the
// settlement database is driven through: whitespace-separated integers,
// each section prefixed by a count.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

// ReadProblem parses a full problem description: an account count followed
// by "id balance" pairs, then a transaction count followed by, for each
// transaction, a transfer count and "from to amount" triples. Tokens may be
// separated by any whitespace, so line breaks are cosmetic.
func ReadProblem(r io.Reader) ([]models.Account, []models.Transaction, error) {
	tr := newTokenReader(r)

	nAccounts, err := tr.nextCount()
	if err != nil {
		return nil, nil, fmt.Errorf("reading account count: %w", err)
	}

	accounts := make([]models.Account, 0, capFor(nAccounts))
	for i := int64(0); i < nAccounts; i++ {
		id, err := tr.nextInt()
		if err != nil {
			return nil, nil, fmt.Errorf("reading account %d: %w", i, err)
		}
		balance, err := tr.nextInt()
		if err != nil {
			return nil, nil, fmt.Errorf("reading balance of account %d: %w", id, err)
		}
		accounts = append(accounts, models.Account{ID: int(id), Balance: balance})
	}

	nTxs, err := tr.nextCount()
	if err != nil {
		return nil, nil, fmt.Errorf("reading transaction count: %w", err)
	}

	txs := make([]models.Transaction, 0, capFor(nTxs))
	for i := int64(0); i < nTxs; i++ {
		nTransfers, err := tr.nextCount()
		if err != nil {
			return nil, nil, fmt.Errorf("reading transfer count of transaction %d: %w", i, err)
		}

		tx := make(models.Transaction, 0, capFor(nTransfers))
		for j := int64(0); j < nTransfers; j++ {
			from, err := tr.nextInt()
			if err != nil {
				return nil, nil, fmt.Errorf("reading transfer %d of transaction %d: %w", j, i, err)
			}
			to, err := tr.nextInt()
			if err != nil {
				return nil, nil, fmt.Errorf("reading transfer %d of transaction %d: %w", j, i, err)
			}
			amount, err := tr.nextInt()
			if err != nil {
				return nil, nil, fmt.Errorf("reading transfer %d of transaction %d: %w", j, i, err)
			}
			tx = append(tx, models.Transfer{From: int(from), To: int(to), Amount: amount})
		}
		txs = append(txs, tx)
	}

	return accounts, txs, nil
}

// WriteResults serializes the settlement outcome: the surviving transaction
// ids ascending, then the balances sorted by account id, each section
// preceded by its count.
func WriteResults(w io.Writer, applied []int, balances []models.Account) error {
	ids := make([]int, len(applied))
	copy(ids, applied)
	sort.Ints(ids)

	accts := make([]models.Account, len(balances))
	copy(accts, balances)
	sort.Slice(accts, func(i, j int) bool { return accts[i].ID < accts[j].ID })

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(ids))
	for _, id := range ids {
		fmt.Fprintln(bw, id)
	}
	fmt.Fprintln(bw, len(accts))
	for _, acct := range accts {
		fmt.Fprintf(bw, "%d %d\n", acct.ID, acct.Balance)
	}
	return bw.Flush()
}

type tokenReader struct {
	sc *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) nextInt() (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseInt(t.sc.Text(), 10, 64)
}

// nextCount reads a section count, which must not be negative.
func (t *tokenReader) nextCount() (int64, error) {
	n, err := t.nextInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// capFor bounds the pre-allocation for a declared count, so a huge count in
// malformed input cannot drive an unbounded allocation before the missing
// records are discovered. Slices still grow by append past the cap.
func capFor(n int64) int64 {
	const maxPrealloc = 1024
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}
