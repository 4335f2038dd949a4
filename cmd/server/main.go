package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/imran-khalid/settlement-ledger-system/internal/config"
	"github.com/imran-khalid/settlement-ledger-system/internal/events/kafka"
	"github.com/imran-khalid/settlement-ledger-system/internal/events/noop"
	"github.com/imran-khalid/settlement-ledger-system/internal/interfaces"
	"github.com/imran-khalid/settlement-ledger-system/internal/ledger"
	"github.com/imran-khalid/settlement-ledger-system/internal/logger"
	"github.com/imran-khalid/settlement-ledger-system/internal/models"
	"github.com/imran-khalid/settlement-ledger-system/internal/models/events"
	"github.com/imran-khalid/settlement-ledger-system/internal/storage/memory"
	"github.com/imran-khalid/settlement-ledger-system/internal/storage/postgres"
)

// app serializes all access to the settlement database: the core expects a
// single logical thread of control, so the handlers take one lock around
// every push, settle and read.
type app struct {
	mu        sync.Mutex
	db        *ledger.DB
	store     interfaces.SettlementStore
	publisher interfaces.EventPublisher
	log       zerolog.Logger
}

func main() {
	cfg := config.Load()
	log := logger.WithLevel(logger.New(), cfg.LogLevel)

	var store interfaces.SettlementStore = memory.NewMemorySettlementStore()
	if cfg.PostgresDSN != "" {
		pg, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("opening postgres")
		}
		store = postgres.NewPostgresSettlementStore(pg)
		log.Info().Msg("using postgres settlement store")
	}

	var publisher interfaces.EventPublisher = noop.NewPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("using kafka publisher")
	}

	a := &app{
		db:        ledger.New(nil),
		store:     store,
		publisher: publisher,
		log:       log,
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	http.HandleFunc("/accounts", a.handleCreateAccounts)
	http.HandleFunc("/transactions", a.handlePushTransaction)
	http.HandleFunc("/transactions/applied", a.handleAppliedTransactions)
	http.HandleFunc("/settle", a.handleSettle)
	http.HandleFunc("/balances", a.handleBalances)
	http.HandleFunc("/settlements", a.handleSettlements)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// handleCreateAccounts initializes the database from a list of initial
// balances, replacing any previous state.
func (a *app) handleCreateAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var accounts []models.Account
	if err := json.NewDecoder(r.Body).Decode(&accounts); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.db = ledger.New(accounts)
	a.mu.Unlock()

	a.log.Info().Int("accounts", len(accounts)).Msg("database initialized")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"status":"created"}`))
}

// handlePushTransaction submits one transaction. Ingestion is best effort:
// a transaction naming an unknown account is dropped silently, so the
// response is 202 either way.
func (a *app) handlePushTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Transfers []models.Transfer `json:"transfers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.db.PushTransaction(models.Transaction(req.Transfers))
	a.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"accepted"}`))
}

func (a *app) handleSettle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	a.mu.Lock()
	rolledBefore := len(a.db.RolledBackTransactions())
	err := a.db.Settle()
	applied := a.db.AppliedTransactions()
	rolledBack := a.db.RolledBackTransactions()[rolledBefore:]
	balances := a.db.Balances()
	a.mu.Unlock()

	if err != nil {
		if errors.Is(err, ledger.ErrUnrecoverable) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	run := models.SettlementRun{
		RunID:               uuid.New().String(),
		AppliedTransactions: applied,
		RolledBack:          rolledBack,
		Balances:            balances,
		CreatedAt:           time.Now(),
	}

	if err := a.store.SaveRun(context.Background(), run); err != nil {
		a.log.Error().Err(err).Msg("saving settlement run")
		http.Error(w, "failed to record settlement", http.StatusInternalServerError)
		return
	}

	a.publishCompleted(run)

	a.log.Info().
		Str("run_id", run.RunID).
		Int("applied", len(applied)).
		Int("rolled_back", len(rolledBack)).
		Msg("settlement completed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

func (a *app) publishCompleted(run models.SettlementRun) {
	total := decimal.Zero
	for _, acct := range run.Balances {
		total = total.Add(decimal.NewFromInt(acct.Balance))
	}

	event := events.SettlementCompleted{
		RunID:               run.RunID,
		AppliedTransactions: run.AppliedTransactions,
		RolledBackCount:     len(run.RolledBack),
		TotalFunds:          total,
		OccurredAt:          run.CreatedAt,
	}

	if err := a.publisher.Publish("settlement_completed", event); err != nil {
		// The settlement itself succeeded; a lost event is logged, not fatal.
		a.log.Error().Err(err).Str("run_id", run.RunID).Msg("publishing settlement event")
	}
}

func (a *app) handleBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	a.mu.Lock()
	balances := a.db.Balances()
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(balances)
}

func (a *app) handleAppliedTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	a.mu.Lock()
	applied := a.db.AppliedTransactions()
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applied)
}

func (a *app) handleSettlements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	runs, err := a.store.GetRuns()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
