package stockdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"stockwatch/internal/cache"
	"stockwatch/internal/queue"
)

// SymbolSource lists the stock symbols worth quoting. Implemented by the
// portfolio store.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// Publisher is the scheduled job that fetches the latest quote for every
// portfolio symbol, publishes it to the price queue and caches it for the
// portfolio read path. One symbol failing does not stop the others.
type Publisher struct {
	symbols  SymbolSource
	fetcher  QuoteFetcher
	queue    queue.PriceQueue
	cache    cache.Cache
	priceTTL time.Duration
	log      zerolog.Logger
}

// PublisherConfig holds the publisher's constructor-injected dependencies
type PublisherConfig struct {
	Symbols  SymbolSource
	Fetcher  QuoteFetcher
	Queue    queue.PriceQueue
	Cache    cache.Cache
	PriceTTL time.Duration // defaults to 5 minutes
	Log      zerolog.Logger
}

// NewPublisher creates a new price publisher job
func NewPublisher(cfg PublisherConfig) *Publisher {
	if cfg.PriceTTL <= 0 {
		cfg.PriceTTL = 5 * time.Minute
	}
	return &Publisher{
		symbols:  cfg.Symbols,
		fetcher:  cfg.Fetcher,
		queue:    cfg.Queue,
		cache:    cfg.Cache,
		priceTTL: cfg.PriceTTL,
		log:      cfg.Log.With().Str("job", "price-publisher").Logger(),
	}
}

// Name implements scheduler.Job
func (p *Publisher) Name() string {
	return "price-publisher"
}

// Run implements scheduler.Job
func (p *Publisher) Run() error {
	ctx := context.Background()

	symbols, err := p.symbols.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("failed to list portfolio symbols: %w", err)
	}
	if len(symbols) == 0 {
		p.log.Info().Msg("No tickers found in portfolio, nothing to publish")
		return nil
	}

	for _, symbol := range symbols {
		price, err := p.fetcher.LatestPrice(symbol)
		if err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("No quote available")
			continue
		}

		formatted := strconv.FormatFloat(price, 'f', -1, 64)
		if err := p.queue.Send(ctx, symbol+":"+formatted); err != nil {
			p.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to publish price update")
			continue
		}

		if err := p.cache.Set(ctx, cache.PriceKey(symbol), []byte(formatted), p.priceTTL); err != nil {
			p.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to cache current price")
		}

		p.log.Info().Str("symbol", symbol).Float64("price", price).Msg("Published price update")
	}
	return nil
}
