// Command settle runs the settlement database over a plain-text problem
// description: initial balances and a sequence of transactions in, surviving
// transaction ids and settled balances out.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/imran-khalid/settlement-ledger-system/internal/ledger"
	"github.com/imran-khalid/settlement-ledger-system/internal/logger"
	"github.com/imran-khalid/settlement-ledger-system/internal/textio"
)

func main() {
	log := logger.New()

	inputPath := flag.String("input", "", "path to the problem file (default: INPUT_PATH env var, then stdin)")
	flag.Parse()

	path := *inputPath
	if path == "" {
		path = os.Getenv("INPUT_PATH")
	}

	var in io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("opening input")
		}
		defer f.Close()
		in = f
	}

	accounts, txs, err := textio.ReadProblem(in)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing problem")
	}

	db := ledger.New(accounts)
	for _, tx := range txs {
		db.PushTransaction(tx)
	}

	if err := db.Settle(); err != nil {
		log.Fatal().Err(err).Msg("settlement failed")
	}

	if err := textio.WriteResults(os.Stdout, db.AppliedTransactions(), db.Balances()); err != nil {
		log.Fatal().Err(err).Msg("writing results")
	}
}
