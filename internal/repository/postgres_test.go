package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

func TestPostgres_ConcurrentRechargesSerialize(t *testing.T) {
	database := db.NewPostgresTestDB(t)
	store := NewStore(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- rechargeOnce(context.Background(), store, card.ID, 125)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	final, err := NewCardRepository(database).FindByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*125), final.BalanceCents)
	assert.Equal(t, int64(workers), final.Version)
}

func TestPostgres_ErrorClassification(t *testing.T) {
	database := db.NewPostgresTestDB(t)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 100)
	ctx := context.Background()

	err := NewCardRepository(database).UpdateBalance(ctx, card.ID, 200, 100, 0)
	assert.ErrorIs(t, err, models.ErrConstraint)

	txn := &models.Transaction{
		Type:        models.PaymentTypeUPI,
		UserID:      owner.ID,
		CardID:      card.ID,
		RechargeID:  9_999_999,
		AmountCents: 10,
	}
	err = NewTransactionRepository(database).Create(ctx, txn)
	assert.ErrorIs(t, err, models.ErrInvalidReference)
}
