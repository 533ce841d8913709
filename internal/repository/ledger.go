package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

// Ledger is one unit of work over the ledger tables. Every write made through
// it becomes visible to other readers only on Commit, and all of them are
// discarded on Rollback.
//
// After Commit or Rollback every operation fails with models.ErrConflict.
// Rollback after Commit is a no-op so it can always be deferred.
type Ledger interface {
	// GetCard fetches the card and locks it for the rest of the unit of work
	GetCard(ctx context.Context, cardID int64) (*models.Card, error)
	// UpdateCardBalance overwrites the balance counters of a card previously
	// locked by GetCard in this unit of work
	UpdateCardBalance(ctx context.Context, cardID, newBalanceCents, newLifetimeTotalCents int64) error
	// InsertRecharge stores a recharge with no transaction reference yet
	InsertRecharge(ctx context.Context, recharge *models.Recharge) (int64, error)
	// InsertTransaction stores a transaction pointing at an existing recharge
	InsertTransaction(ctx context.Context, txn *models.Transaction) (int64, error)
	// PatchRechargeTransactionRef closes the mutual link between a recharge and
	// its transaction and records the recharge as the card's latest
	PatchRechargeTransactionRef(ctx context.Context, rechargeID, transactionID int64) error
	Commit() error
	Rollback() error
}

// Store opens ledger units of work
type Store interface {
	Begin(ctx context.Context) (Ledger, error)
}

type store struct {
	db *db.DB
}

// NewStore creates a Store backed by the database pool
func NewStore(database *db.DB) Store {
	return &store{db: database}
}

// Begin starts a database transaction and binds fresh repositories to it
func (s *store) Begin(ctx context.Context) (Ledger, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", classify(err))
	}

	return &unitOfWork{
		tx:           tx,
		cards:        NewCardRepository(tx),
		recharges:    NewRechargeRepository(tx),
		transactions: NewTransactionRepository(tx),
		locked:       make(map[int64]int64),
	}, nil
}

type unitOfWork struct {
	tx           *db.Tx
	cards        CardRepository
	recharges    RechargeRepository
	transactions TransactionRepository

	// card id -> version observed when the card was locked
	locked map[int64]int64
	done   bool
}

var errFinished = fmt.Errorf("unit of work is no longer active: %w", models.ErrConflict)

func (u *unitOfWork) GetCard(ctx context.Context, cardID int64) (*models.Card, error) {
	if u.done {
		return nil, errFinished
	}

	card, err := u.cards.FindByIDForUpdate(ctx, cardID)
	if err != nil {
		return nil, err
	}

	u.locked[card.ID] = card.Version
	return card, nil
}

func (u *unitOfWork) UpdateCardBalance(ctx context.Context, cardID, newBalanceCents, newLifetimeTotalCents int64) error {
	if u.done {
		return errFinished
	}

	version, ok := u.locked[cardID]
	if !ok {
		return fmt.Errorf("card %d is not locked by this unit of work: %w", cardID, models.ErrConflict)
	}

	if err := u.cards.UpdateBalance(ctx, cardID, newBalanceCents, newLifetimeTotalCents, version); err != nil {
		return err
	}

	u.locked[cardID] = version + 1
	return nil
}

func (u *unitOfWork) InsertRecharge(ctx context.Context, recharge *models.Recharge) (int64, error) {
	if u.done {
		return 0, errFinished
	}

	if err := u.recharges.Create(ctx, recharge); err != nil {
		return 0, err
	}
	return recharge.ID, nil
}

func (u *unitOfWork) InsertTransaction(ctx context.Context, txn *models.Transaction) (int64, error) {
	if u.done {
		return 0, errFinished
	}

	if err := u.transactions.Create(ctx, txn); err != nil {
		return 0, err
	}
	return txn.ID, nil
}

func (u *unitOfWork) PatchRechargeTransactionRef(ctx context.Context, rechargeID, transactionID int64) error {
	if u.done {
		return errFinished
	}

	cardID, err := u.recharges.SetTransactionRef(ctx, rechargeID, transactionID)
	if err != nil {
		return err
	}

	return u.cards.SetLastRecharge(ctx, cardID, rechargeID)
}

func (u *unitOfWork) Commit() error {
	if u.done {
		return errFinished
	}
	u.done = true

	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", classify(err))
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true

	// a cancelled context has already rolled the transaction back
	err := u.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back unit of work: %w", err)
	}
	return nil
}
