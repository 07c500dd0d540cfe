package stockdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch/internal/cache"
	"stockwatch/internal/queue"
)

type staticSymbols []string

func (s staticSymbols) Symbols(context.Context) ([]string, error) { return s, nil }

type failingSymbols struct{}

func (failingSymbols) Symbols(context.Context) ([]string, error) {
	return nil, errors.New("store unreachable")
}

type fakeFetcher map[string]float64

func (f fakeFetcher) LatestPrice(symbol string) (float64, error) {
	price, ok := f[symbol]
	if !ok {
		return 0, errors.New("no quote for " + symbol)
	}
	return price, nil
}

func newTestPublisher(symbols SymbolSource, fetcher QuoteFetcher, q queue.PriceQueue, c cache.Cache) *Publisher {
	return NewPublisher(PublisherConfig{
		Symbols:  symbols,
		Fetcher:  fetcher,
		Queue:    q,
		Cache:    c,
		PriceTTL: time.Minute,
		Log:      zerolog.Nop(),
	})
}

func TestPublisher_PublishesAndCaches(t *testing.T) {
	ctx := context.Background()
	q := queue.NewMemory()
	c := cache.NewMemory()

	p := newTestPublisher(staticSymbols{"AAPL"}, fakeFetcher{"AAPL": 150.25}, q, c)
	require.NoError(t, p.Run())

	msgs, err := q.Receive(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "AAPL:150.25", msgs[0].Body)

	price, ok, err := c.Get(ctx, cache.PriceKey("AAPL"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "150.25", string(price))
}

func TestPublisher_WholeNumberFormatting(t *testing.T) {
	ctx := context.Background()
	q := queue.NewMemory()

	p := newTestPublisher(staticSymbols{"TSLA"}, fakeFetcher{"TSLA": 215}, q, cache.NewMemory())
	require.NoError(t, p.Run())

	msgs, err := q.Receive(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "TSLA:215", msgs[0].Body)
}

func TestPublisher_SkipsFailedQuotes(t *testing.T) {
	ctx := context.Background()
	q := queue.NewMemory()
	c := cache.NewMemory()

	p := newTestPublisher(staticSymbols{"BAD", "AAPL"}, fakeFetcher{"AAPL": 150.25}, q, c)
	require.NoError(t, p.Run())

	msgs, err := q.Receive(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "AAPL:150.25", msgs[0].Body)

	_, ok, err := c.Get(ctx, cache.PriceKey("BAD"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublisher_EmptyPortfolio(t *testing.T) {
	q := queue.NewMemory()

	p := newTestPublisher(staticSymbols{}, fakeFetcher{}, q, cache.NewMemory())
	require.NoError(t, p.Run())
	assert.Equal(t, 0, q.Len())
}

func TestPublisher_SymbolSourceFailure(t *testing.T) {
	p := newTestPublisher(failingSymbols{}, fakeFetcher{}, queue.NewMemory(), cache.NewMemory())
	assert.Error(t, p.Run())
}
