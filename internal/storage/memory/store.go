package memory

import (
	"context"
	"sync"

	"github.com/imran-khalid/settlement-ledger-system/internal/interfaces"
	"github.com/imran-khalid/settlement-ledger-system/internal/models"
)

// MemorySettlementStore is an in-memory implementation of
// interfaces.SettlementStore, safe for concurrent use. It is the default
// store when no database is configured.
type MemorySettlementStore struct {
	mu   sync.Mutex
	runs []models.SettlementRun
}

func NewMemorySettlementStore() *MemorySettlementStore {
	return &MemorySettlementStore{}
}

func (m *MemorySettlementStore) SaveRun(ctx context.Context, run models.SettlementRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = append(m.runs, run)
	return nil
}

// GetRuns returns a copy of every recorded settlement run, oldest first, so
// callers cannot mutate internal state.
func (m *MemorySettlementStore) GetRuns() ([]models.SettlementRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.SettlementRun, len(m.runs))
	copy(copied, m.runs)
	return copied, nil
}

// Compile-time check: MemorySettlementStore implements SettlementStore.
var _ interfaces.SettlementStore = (*MemorySettlementStore)(nil)
