package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/models"
)

func TestRechargeRepository_Create(t *testing.T) {
	database := setupTestDB(t)
	repo := NewRechargeRepository(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	t.Run("assigns id and reference", func(t *testing.T) {
		recharge := newRecharge(card, 5000)
		require.NoError(t, repo.Create(ctx, recharge))

		assert.NotZero(t, recharge.ID)
		assert.NotEqual(t, uuid.Nil, recharge.Reference)
		assert.False(t, recharge.Completed())
	})

	t.Run("rejects a pre-filled transaction reference", func(t *testing.T) {
		recharge := newRecharge(card, 5000)
		txID := int64(1)
		recharge.TransactionID = &txID

		err := repo.Create(ctx, recharge)
		assert.ErrorIs(t, err, models.ErrConstraint)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		err := repo.Create(ctx, newRecharge(card, 0))
		assert.ErrorIs(t, err, models.ErrConstraint)
	})

	t.Run("rejects an unknown card", func(t *testing.T) {
		recharge := newRecharge(card, 100)
		recharge.CardID = 424242

		err := repo.Create(ctx, recharge)
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})
}

func TestRechargeRepository_FindByIDHidesIncomplete(t *testing.T) {
	database := setupTestDB(t)
	repo := NewRechargeRepository(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	incomplete := newRecharge(card, 700)
	require.NoError(t, repo.Create(ctx, incomplete))

	_, err := repo.FindByID(ctx, incomplete.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "in-flight recharges must not be visible")

	rechargeID, transactionID := runRecharge(t, NewStore(database), card.ID, 300)

	found, err := repo.FindByID(ctx, rechargeID)
	require.NoError(t, err)
	require.NotNil(t, found.TransactionID)
	assert.Equal(t, transactionID, *found.TransactionID)
	assert.Equal(t, int64(300), found.AmountCents)
	assert.Equal(t, models.PaymentTypeCash, found.Type)
}

func TestRechargeRepository_SetTransactionRef(t *testing.T) {
	database := setupTestDB(t)
	repo := NewRechargeRepository(database)
	txRepo := NewTransactionRepository(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	recharge := newRecharge(card, 1200)
	require.NoError(t, repo.Create(ctx, recharge))
	txn := newTransaction(recharge)
	require.NoError(t, txRepo.Create(ctx, txn))

	cardID, err := repo.SetTransactionRef(ctx, recharge.ID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, cardID)

	tests := []struct {
		name       string
		rechargeID int64
		wantErr    error
	}{
		{name: "already linked", rechargeID: recharge.ID, wantErr: models.ErrConflict},
		{name: "missing recharge", rechargeID: 424242, wantErr: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.SetTransactionRef(ctx, tt.rechargeID, txn.ID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRechargeRepository_ListByCard(t *testing.T) {
	database := setupTestDB(t)
	repo := NewRechargeRepository(database)
	store := NewStore(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	other := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	first, _ := runRecharge(t, store, card.ID, 100)
	second, _ := runRecharge(t, store, card.ID, 200)
	runRecharge(t, store, other.ID, 300)

	incomplete := newRecharge(card, 999)
	require.NoError(t, repo.Create(ctx, incomplete))

	recharges, err := repo.ListByCard(ctx, card.ID, 10)
	require.NoError(t, err)
	require.Len(t, recharges, 2)

	ids := []int64{recharges[0].ID, recharges[1].ID}
	assert.ElementsMatch(t, []int64{first, second}, ids)
	for _, r := range recharges {
		assert.True(t, r.Completed())
		assert.Equal(t, card.ID, r.CardID)
	}

	limited, err := repo.ListByCard(ctx, card.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	pending, err := repo.FindIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, incomplete.ID, pending[0].ID)
}
