package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkageAuditor_CleanLedger(t *testing.T) {
	database := setupTestDB(t)
	auditor := NewLinkageAuditor(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	store := NewStore(database)
	runRecharge(t, store, card.ID, 100)
	runRecharge(t, store, card.ID, 200)

	incomplete, err := auditor.FindIncompleteRecharges(ctx)
	require.NoError(t, err)
	assert.Empty(t, incomplete)

	broken, err := auditor.FindBrokenLinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, broken)
}

func TestLinkageAuditor_DetectsHalfWrittenRecharge(t *testing.T) {
	database := setupTestDB(t)
	auditor := NewLinkageAuditor(database)
	owner := seedUser(t, database)
	card := seedCard(t, database, owner.ID, 0)
	ctx := context.Background()

	// rows written outside a unit of work, without the final patch
	recharge := newRecharge(card, 100)
	require.NoError(t, NewRechargeRepository(database).Create(ctx, recharge))
	txn := newTransaction(recharge)
	require.NoError(t, NewTransactionRepository(database).Create(ctx, txn))

	incomplete, err := auditor.FindIncompleteRecharges(ctx)
	require.NoError(t, err)
	require.Len(t, incomplete, 1)
	assert.Equal(t, recharge.ID, incomplete[0].ID)

	broken, err := auditor.FindBrokenLinks(ctx)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	assert.Equal(t, recharge.ID, broken[0].RechargeID)
	assert.Equal(t, txn.ID, broken[0].TransactionID)
	assert.NotEmpty(t, broken[0].Reason)
}
