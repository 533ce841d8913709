package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	return db.NewTestDB(t)
}

func seedUser(t *testing.T, database *db.DB) *models.User {
	t.Helper()

	user := &models.User{Username: "user-" + uuid.NewString()}
	require.NoError(t, NewUserRepository(database).Create(context.Background(), user), "failed to seed user")
	return user
}

func seedCard(t *testing.T, database *db.DB, ownerID, balanceCents int64) *models.Card {
	t.Helper()

	card := &models.Card{
		OwnerUserID:        ownerID,
		BalanceCents:       balanceCents,
		LifetimeTotalCents: balanceCents,
	}
	require.NoError(t, NewCardRepository(database).Create(context.Background(), card), "failed to seed card")
	return card
}

func newRecharge(card *models.Card, amountCents int64) *models.Recharge {
	return &models.Recharge{
		Type:        models.PaymentTypeCash,
		UserID:      card.OwnerUserID,
		CardID:      card.ID,
		AmountCents: amountCents,
		OccurredAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func newTransaction(recharge *models.Recharge) *models.Transaction {
	return &models.Transaction{
		Type:        recharge.Type,
		UserID:      recharge.UserID,
		CardID:      recharge.CardID,
		RechargeID:  recharge.ID,
		AmountCents: recharge.AmountCents,
		OccurredAt:  recharge.OccurredAt,
	}
}

// runRecharge drives one full recharge through a unit of work and commits it
func runRecharge(t *testing.T, store Store, cardID, amountCents int64) (rechargeID, transactionID int64) {
	t.Helper()
	ctx := context.Background()

	ledger, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = ledger.Rollback() }()

	card, err := ledger.GetCard(ctx, cardID)
	require.NoError(t, err)

	require.NoError(t, ledger.UpdateCardBalance(ctx, cardID,
		card.BalanceCents+amountCents, card.LifetimeTotalCents+amountCents))

	recharge := newRecharge(card, amountCents)
	rechargeID, err = ledger.InsertRecharge(ctx, recharge)
	require.NoError(t, err)

	transactionID, err = ledger.InsertTransaction(ctx, newTransaction(recharge))
	require.NoError(t, err)

	require.NoError(t, ledger.PatchRechargeTransactionRef(ctx, rechargeID, transactionID))
	require.NoError(t, ledger.Commit())

	return rechargeID, transactionID
}
