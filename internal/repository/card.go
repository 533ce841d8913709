// Package repository provides the ledger store: data access for cards,
// recharges and transactions, and the unit of work that groups their writes.
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

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id int64) (*models.Card, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Card, error)
	UpdateBalance(ctx context.Context, id, balanceCents, lifetimeTotalCents, expectedVersion int64) error
	SetLastRecharge(ctx context.Context, id, rechargeID int64) error
}

// cardRepository implements CardRepository
type cardRepository struct {
	exec db.Executor
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(exec db.Executor) CardRepository {
	return &cardRepository{exec: exec}
}

const cardColumns = `id, owner_user_id, status, balance_cents, lifetime_total_cents,
		       expires_at, last_recharge_id, version, created_at, updated_at`

// Create inserts a new card. Status defaults to ACTIVE and the lifetime total
// to the opening balance when they are left zero.
func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if card.Status == "" {
		card.Status = models.CardStatusActive
	}
	if card.LifetimeTotalCents < card.BalanceCents {
		card.LifetimeTotalCents = card.BalanceCents
	}
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	query := `
		INSERT INTO cards (owner_user_id, status, balance_cents, lifetime_total_cents,
		                   expires_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $6)
		RETURNING id
	`

	err := r.exec.QueryRowContext(ctx, query,
		card.OwnerUserID,
		card.Status,
		card.BalanceCents,
		card.LifetimeTotalCents,
		card.ExpiresAt,
		now,
	).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", classify(err))
	}

	card.Version = 0
	return nil
}

// FindByID retrieves a card without locking it
func (r *cardRepository) FindByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate retrieves a card and locks the row until the enclosing
// transaction ends
func (r *cardRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1` + r.exec.Dialect().LockRow()
	return r.findOne(ctx, query, id)
}

func (r *cardRepository) findOne(ctx context.Context, query string, id int64) (*models.Card, error) {
	var (
		card           models.Card
		expiresAt      sql.NullTime
		lastRechargeID sql.NullInt64
	)

	err := r.exec.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.OwnerUserID,
		&card.Status,
		&card.BalanceCents,
		&card.LifetimeTotalCents,
		&expiresAt,
		&lastRechargeID,
		&card.Version,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card by id: %w", classify(err))
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		card.ExpiresAt = &t
	}
	if lastRechargeID.Valid {
		v := lastRechargeID.Int64
		card.LastRechargeID = &v
	}

	return &card, nil
}

// UpdateBalance overwrites both balance counters and bumps the version, but
// only if the row still carries expectedVersion
func (r *cardRepository) UpdateBalance(ctx context.Context, id, balanceCents, lifetimeTotalCents, expectedVersion int64) error {
	query := `
		UPDATE cards
		SET balance_cents = $2,
		    lifetime_total_cents = $3,
		    version = version + 1,
		    updated_at = $5
		WHERE id = $1 AND version = $4
	`

	result, err := r.exec.ExecContext(ctx, query, id, balanceCents, lifetimeTotalCents, expectedVersion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update card balance: %w", classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("card %d changed since version %d: %w", id, expectedVersion, models.ErrConflict)
}

// SetLastRecharge records the most recent recharge applied to the card
func (r *cardRepository) SetLastRecharge(ctx context.Context, id, rechargeID int64) error {
	query := `
		UPDATE cards
		SET last_recharge_id = $2,
		    updated_at = $3
		WHERE id = $1
	`

	result, err := r.exec.ExecContext(ctx, query, id, rechargeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set last recharge: %w", classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("card %d: %w", id, models.ErrNotFound)
	}

	return nil
}
