package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch/internal/cache"
	"stockwatch/internal/database"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    database.MemoryPath,
		Profile: database.ProfileEphemeral,
		Name:    "portfolio-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(db.Conn(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestService_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewService(store, cache.NewMemory(), zerolog.Nop())

	created, err := svc.Create(ctx, Item{UserID: "u1", StockSymbol: "AAPL", Quantity: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, created.PortfolioID)

	other, err := svc.Create(ctx, Item{UserID: "u1", StockSymbol: "MSFT", Quantity: 5})
	require.NoError(t, err)
	assert.NotEqual(t, created.PortfolioID, other.PortfolioID)
}

func TestService_ListWithPrices(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := cache.NewMemory()
	svc := NewService(store, c, zerolog.Nop())

	_, err := svc.Create(ctx, Item{UserID: "u1", StockSymbol: "AAPL", Quantity: 10})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Item{UserID: "u1", StockSymbol: "MSFT", Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, cache.PriceKey("AAPL"), []byte("150.25"), time.Minute))

	items, err := svc.ListWithPrices(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	prices := map[string]string{}
	for _, item := range items {
		prices[item.StockSymbol] = item.CurrentPrice
	}
	assert.Equal(t, "150.25", prices["AAPL"])
	assert.Equal(t, PriceNotAvailable, prices["MSFT"])
}

type brokenCache struct{ cache.Cache }

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, assert.AnError
}

func TestService_ListWithPrices_CacheFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewService(store, brokenCache{Cache: cache.NewMemory()}, zerolog.Nop())

	_, err := svc.Create(ctx, Item{UserID: "u1", StockSymbol: "AAPL", Quantity: 10})
	require.NoError(t, err)

	items, err := svc.ListWithPrices(ctx, "")
	require.NoError(t, err, "a broken price cache must not fail the listing")
	require.Len(t, items, 1)
	assert.Equal(t, PriceError, items[0].CurrentPrice)
}

func TestService_ListWithPrices_UserFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewService(store, cache.NewMemory(), zerolog.Nop())

	_, err := svc.Create(ctx, Item{UserID: "u1", StockSymbol: "AAPL", Quantity: 10})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Item{UserID: "u2", StockSymbol: "TSLA", Quantity: 3})
	require.NoError(t, err)

	items, err := svc.ListWithPrices(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TSLA", items[0].StockSymbol)

	all, err := svc.ListWithPrices(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
