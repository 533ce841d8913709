package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

// RechargeRepository defines the interface for recharge data access
type RechargeRepository interface {
	Create(ctx context.Context, recharge *models.Recharge) error
	FindByID(ctx context.Context, id int64) (*models.Recharge, error)
	SetTransactionRef(ctx context.Context, id, transactionID int64) (cardID int64, err error)
	ListByCard(ctx context.Context, cardID int64, limit int) ([]*models.Recharge, error)
	FindIncomplete(ctx context.Context) ([]*models.Recharge, error)
}

// rechargeRepository implements RechargeRepository
type rechargeRepository struct {
	exec db.Executor
}

// NewRechargeRepository creates a new RechargeRepository
func NewRechargeRepository(exec db.Executor) RechargeRepository {
	return &rechargeRepository{exec: exec}
}

const rechargeColumns = `id, reference, type, user_id, card_id, amount_cents,
		       occurred_at, transaction_id, created_at`

// Create inserts a recharge with an empty transaction reference. The
// reference is patched by SetTransactionRef once the transaction row exists.
func (r *rechargeRepository) Create(ctx context.Context, recharge *models.Recharge) error {
	if recharge.TransactionID != nil {
		return fmt.Errorf("recharge must be inserted without a transaction reference: %w", models.ErrConstraint)
	}
	if recharge.Reference == uuid.Nil {
		recharge.Reference = uuid.New()
	}
	recharge.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO recharges (reference, type, user_id, card_id, amount_cents,
		                       occurred_at, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)
		RETURNING id
	`

	err := r.exec.QueryRowContext(ctx, query,
		recharge.Reference,
		recharge.Type,
		recharge.UserID,
		recharge.CardID,
		recharge.AmountCents,
		recharge.OccurredAt,
		recharge.CreatedAt,
	).Scan(&recharge.ID)
	if err != nil {
		return fmt.Errorf("failed to create recharge: %w", classify(err))
	}

	return nil
}

// FindByID retrieves a completed recharge. Recharges still waiting for their
// transaction link are reported as not found.
func (r *rechargeRepository) FindByID(ctx context.Context, id int64) (*models.Recharge, error) {
	query := `
		SELECT ` + rechargeColumns + `
		FROM recharges
		WHERE id = $1 AND transaction_id IS NOT NULL
	`

	recharge, err := scanRecharge(r.exec.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recharge %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recharge by id: %w", classify(err))
	}

	return recharge, nil
}

// SetTransactionRef fills the back-reference of a recharge that does not have
// one yet and returns the card the recharge belongs to
func (r *rechargeRepository) SetTransactionRef(ctx context.Context, id, transactionID int64) (int64, error) {
	query := `
		UPDATE recharges
		SET transaction_id = $2
		WHERE id = $1 AND transaction_id IS NULL
		RETURNING card_id
	`

	var cardID int64
	err := r.exec.QueryRowContext(ctx, query, id, transactionID).Scan(&cardID)
	if err == nil {
		return cardID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to link recharge to transaction: %w", classify(err))
	}

	var exists int
	err = r.exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM recharges WHERE id = $1`, id).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check recharge: %w", classify(err))
	}
	if exists == 0 {
		return 0, fmt.Errorf("recharge %d: %w", id, models.ErrNotFound)
	}
	return 0, fmt.Errorf("recharge %d is already linked: %w", id, models.ErrConflict)
}

// ListByCard returns the most recent completed recharges of a card
func (r *rechargeRepository) ListByCard(ctx context.Context, cardID int64, limit int) ([]*models.Recharge, error) {
	query := `
		SELECT ` + rechargeColumns + `
		FROM recharges
		WHERE card_id = $1 AND transaction_id IS NOT NULL
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2
	`

	return r.list(ctx, query, cardID, limit)
}

// FindIncomplete returns recharges that have no transaction reference. Outside
// an open unit of work this list must be empty.
func (r *rechargeRepository) FindIncomplete(ctx context.Context) ([]*models.Recharge, error) {
	query := `
		SELECT ` + rechargeColumns + `
		FROM recharges
		WHERE transaction_id IS NULL
		ORDER BY id
	`

	return r.list(ctx, query)
}

func (r *rechargeRepository) list(ctx context.Context, query string, args ...any) ([]*models.Recharge, error) {
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recharges: %w", classify(err))
	}
	defer rows.Close()

	var recharges []*models.Recharge
	for rows.Next() {
		recharge, err := scanRecharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recharge: %w", err)
		}
		recharges = append(recharges, recharge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recharges: %w", classify(err))
	}

	return recharges, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecharge(row rowScanner) (*models.Recharge, error) {
	var (
		recharge      models.Recharge
		transactionID sql.NullInt64
	)

	if err := row.Scan(
		&recharge.ID,
		&recharge.Reference,
		&recharge.Type,
		&recharge.UserID,
		&recharge.CardID,
		&recharge.AmountCents,
		&recharge.OccurredAt,
		&transactionID,
		&recharge.CreatedAt,
	); err != nil {
		return nil, err
	}

	if transactionID.Valid {
		v := transactionID.Int64
		recharge.TransactionID = &v
	}

	return &recharge, nil
}
