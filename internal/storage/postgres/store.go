package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/imran-khalid/settlement-ledger-system/internal/interfaces"
	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

// PostgresSettlementStore persists settlement runs in two tables:
//
//	settlement_runs(run_id, applied_transactions, rolled_back, created_at)
//	settlement_balances(run_id, account_id, balance)
type PostgresSettlementStore struct {
	db *sql.DB
}

func NewPostgresSettlementStore(db *sql.DB) *PostgresSettlementStore {
	return &PostgresSettlementStore{
		db: db,
	}
}

// SaveRun writes the run row and its balance rows in one database
// transaction, so a run is either fully recorded or not at all.
func (p *PostgresSettlementStore) SaveRun(ctx context.Context, run models.SettlementRun) error {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const runQuery = `INSERT INTO settlement_runs (run_id, applied_transactions, rolled_back, created_at)
	VALUES ($1, $2, $3, $4)`

	_, err = dbTx.ExecContext(ctx, runQuery,
		run.RunID,
		pq.Array(run.AppliedTransactions),
		pq.Array(run.RolledBack),
		run.CreatedAt,
	)
	if err != nil {
		return err
	}

	const balanceQuery = `INSERT INTO settlement_balances (run_id, account_id, balance)
	VALUES ($1, $2, $3)`

	for _, acct := range run.Balances {
		_, err = dbTx.ExecContext(ctx, balanceQuery, run.RunID, acct.ID, acct.Balance)
		if err != nil {
			return err
		}
	}

	return dbTx.Commit()
}

func (p *PostgresSettlementStore) GetRuns() ([]models.SettlementRun, error) {
	const query = `SELECT run_id, applied_transactions, rolled_back, created_at
	FROM settlement_runs ORDER BY created_at`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.SettlementRun
	for rows.Next() {
		var run models.SettlementRun
		var applied, rolledBack pq.Int64Array
		if err := rows.Scan(&run.RunID, &applied, &rolledBack, &run.CreatedAt); err != nil {
			return nil, err
		}
		for _, id := range applied {
			run.AppliedTransactions = append(run.AppliedTransactions, int(id))
		}
		for _, id := range rolledBack {
			run.RolledBack = append(run.RolledBack, int(id))
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	balancesByRun, err := p.getBalances()
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].Balances = balancesByRun[runs[i].RunID]
	}
	return runs, nil
}

func (p *PostgresSettlementStore) getBalances() (map[string][]models.Account, error) {
	const query = `SELECT run_id, account_id, balance FROM settlement_balances`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byRun := make(map[string][]models.Account)
	for rows.Next() {
		var runID string
		var acct models.Account
		if err := rows.Scan(&runID, &acct.ID, &acct.Balance); err != nil {
			return nil, err
		}
		byRun[runID] = append(byRun[runID], acct)
	}
	return byRun, rows.Err()
}

var _ interfaces.SettlementStore = (*PostgresSettlementStore)(nil)
