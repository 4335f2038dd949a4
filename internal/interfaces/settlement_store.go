package interfaces

import (
	"context"

	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

type SettlementStore interface {
	SaveRun(ctx context.Context, run models.SettlementRun) error
	GetRuns() ([]models.SettlementRun, error)
}
