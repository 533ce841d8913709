package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindByRechargeID(ctx context.Context, rechargeID int64) (*models.Transaction, error)
}

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	exec db.Executor
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(exec db.Executor) TransactionRepository {
	return &transactionRepository{exec: exec}
}

const transactionColumns = `id, user_id, card_id, type, amount_cents, occurred_at, recharge_id, created_at`

// Create inserts a transaction. The recharge it points at must already exist;
// the foreign key rejects anything else.
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.RechargeID <= 0 {
		return fmt.Errorf("transaction requires a recharge reference: %w", models.ErrInvalidReference)
	}
	txn.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO transactions (user_id, card_id, type, amount_cents, occurred_at, recharge_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.exec.QueryRowContext(ctx, query,
		txn.UserID,
		txn.CardID,
		txn.Type,
		txn.AmountCents,
		txn.OccurredAt,
		txn.RechargeID,
		txn.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", classify(err))
	}

	return nil
}

// FindByID retrieves a transaction by its id
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByRechargeID retrieves the transaction created for a recharge
func (r *transactionRepository) FindByRechargeID(ctx context.Context, rechargeID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE recharge_id = $1`
	return r.findOne(ctx, query, rechargeID)
}

func (r *transactionRepository) findOne(ctx context.Context, query string, arg int64) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.exec.QueryRowContext(ctx, query, arg).Scan(
		&txn.ID,
		&txn.UserID,
		&txn.CardID,
		&txn.Type,
		&txn.AmountCents,
		&txn.OccurredAt,
		&txn.RechargeID,
		&txn.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", classify(err))
	}

	return &txn, nil
}
