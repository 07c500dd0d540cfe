package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stockwatch/internal/cache"
)

// Service combines the portfolio store with the shared price cache.
type Service struct {
	store Store
	cache cache.Cache
	log   zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(store Store, c cache.Cache, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		cache: c,
		log:   log.With().Str("service", "portfolio").Logger(),
	}
}

// ListWithPrices returns portfolio items (optionally filtered by user) with
// the cached current price attached to each. A missing cache entry yields
// "Not Available", a cache failure "Error"; neither fails the request.
func (s *Service) ListWithPrices(ctx context.Context, userID string) ([]Item, error) {
	var (
		items []Item
		err   error
	)
	if userID != "" {
		items, err = s.store.ListByUser(ctx, userID)
	} else {
		items, err = s.store.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].StockSymbol == "" {
			continue
		}
		price, ok, err := s.cache.Get(ctx, cache.PriceKey(items[i].StockSymbol))
		if err != nil {
			s.log.Error().Err(err).Str("symbol", items[i].StockSymbol).Msg("Failed to fetch current price")
			items[i].CurrentPrice = PriceError
			continue
		}
		if !ok {
			items[i].CurrentPrice = PriceNotAvailable
			continue
		}
		items[i].CurrentPrice = string(price)
	}
	return items, nil
}

// Create stores a new portfolio item under a generated portfolio_id.
// The item is assumed validated at the handler boundary.
func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	item.PortfolioID = uuid.NewString()
	if err := s.store.Put(ctx, item); err != nil {
		return Item{}, fmt.Errorf("failed to create portfolio item: %w", err)
	}

	s.log.Info().Str("portfolio_id", item.PortfolioID).Str("symbol", item.StockSymbol).Msg("Added portfolio item")
	return item, nil
}

// Update applies a partial update by portfolio_id
func (s *Service) Update(ctx context.Context, portfolioID string, fields map[string]interface{}) error {
	return s.store.Update(ctx, portfolioID, fields)
}

// Delete removes an item by portfolio_id
func (s *Service) Delete(ctx context.Context, portfolioID string) error {
	return s.store.Delete(ctx, portfolioID)
}
