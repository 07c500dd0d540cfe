package alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteConditionStore_PutAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))
	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a2", StockSymbol: "MSFT", ConditionType: ConditionBelow, Threshold: 300.0,
	}))

	conditions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, conditions, 2)
}

func TestSQLiteConditionStore_PutReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))
	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionBelow, Threshold: 120.0,
	}))

	conditions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, conditions, 1)
	assert.Equal(t, ConditionBelow, conditions[0].ConditionType)
	assert.Equal(t, 120.0, conditions[0].Threshold)
}

func TestSQLiteConditionStore_ListBySymbol(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))
	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a2", StockSymbol: "AAPL", ConditionType: ConditionBelow, Threshold: 100.0,
	}))
	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a3", StockSymbol: "MSFT", ConditionType: ConditionAbove, Threshold: 300.0,
	}))

	conditions, err := store.ListBySymbol(ctx, "AAPL")
	require.NoError(t, err)
	assert.Len(t, conditions, 2)

	// Matching is exact, not case-folded
	conditions, err = store.ListBySymbol(ctx, "aapl")
	require.NoError(t, err)
	assert.Empty(t, conditions)
}

func TestSQLiteConditionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))
	require.NoError(t, store.Delete(ctx, "a1"))

	conditions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, conditions)

	// Deleting an unknown id is not an error
	assert.NoError(t, store.Delete(ctx, "missing"))
}
