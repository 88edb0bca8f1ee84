package data

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
)

func writeFrom(agg *models.Aggregate, seq uint64) *interfaces.AggregateWrite {
	return &interfaces.AggregateWrite{
		Accounts:     agg.Accounts,
		Transactions: agg.Transactions,
		Stocks:       agg.Stocks,
		Seq:          seq,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func TestAggregateNotFoundForNewIdentity(t *testing.T) {
	mgr := testManager(t)
	store := mgr.AggregateStore()
	ctx := testContext()

	_, err := store.Read(ctx, "fresh_user")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestAggregateMergeAndRead(t *testing.T) {
	mgr := testManager(t)
	store := mgr.AggregateStore()
	ctx := testContext()

	seed := models.SampleAggregate()
	require.NoError(t, store.Merge(ctx, "agg_user", writeFrom(seed, 1)))

	got, err := store.Read(ctx, "agg_user")
	require.NoError(t, err)
	assert.Len(t, got.Accounts, 2)
	assert.Len(t, got.Transactions, 3)
	assert.Len(t, got.Stocks, 2)
	assert.True(t, got.Accounts[0].Balance.Equal(decimal.NewFromInt(52000)),
		"balance survives the round trip, got %s", got.Accounts[0].Balance)
}

func TestAggregateMergeOverwritesFields(t *testing.T) {
	mgr := testManager(t)
	store := mgr.AggregateStore()
	ctx := testContext()

	seed := models.SampleAggregate()
	require.NoError(t, store.Merge(ctx, "agg_user", writeFrom(seed, 1)))

	// Second flush with one account fewer.
	next := seed.Clone()
	next.Accounts = next.Accounts[:1]
	require.NoError(t, store.Merge(ctx, "agg_user", writeFrom(next, 2)))

	got, err := store.Read(ctx, "agg_user")
	require.NoError(t, err)
	assert.Len(t, got.Accounts, 1)
	// Untouched fields survive the merge.
	assert.Len(t, got.Stocks, 2)
}

func TestAggregateIsolatedPerIdentity(t *testing.T) {
	mgr := testManager(t)
	store := mgr.AggregateStore()
	ctx := testContext()

	require.NoError(t, store.Merge(ctx, "user_a", writeFrom(models.SampleAggregate(), 1)))

	_, err := store.Read(ctx, "user_b")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestAggregateStaleWriteDropped(t *testing.T) {
	mgr := testManager(t)
	store := mgr.AggregateStore()
	ctx := testContext()

	now := time.Now().UTC()

	current := models.SampleAggregate()
	fresh := writeFrom(current, 1)
	fresh.UpdatedAt = now.Format(time.RFC3339)
	require.NoError(t, store.Merge(ctx, "order_user", fresh))

	// A write stamped before the stored document, e.g. an in-flight
	// flush from a session that has since signed out, must not land.
	stale := current.Clone()
	stale.Accounts = []models.Account{{ID: "stale", Name: "Ghost", Type: models.AccountCash, Currency: "TWD"}}
	staleWrite := writeFrom(stale, 1)
	staleWrite.UpdatedAt = now.Add(-time.Minute).Format(time.RFC3339)
	require.NoError(t, store.Merge(ctx, "order_user", staleWrite))

	got, err := store.Read(ctx, "order_user")
	require.NoError(t, err)
	assert.Len(t, got.Accounts, 2, "stale write must not replace the stored accounts")
	for _, acc := range got.Accounts {
		assert.NotEqual(t, "stale", acc.ID)
	}
}
