package portfolio

import "context"

// Store is the durable table of portfolio items, keyed by portfolio_id.
type Store interface {
	// List returns every portfolio item.
	List(ctx context.Context) ([]Item, error)
	// ListByUser returns the items whose user_id matches exactly.
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	// Symbols returns the distinct stock symbols across all items.
	Symbols(ctx context.Context) ([]string, error)
	// Put inserts or replaces an item by portfolio_id.
	Put(ctx context.Context, item Item) error
	// Update applies a partial update to the named fields of an item.
	Update(ctx context.Context, portfolioID string, fields map[string]interface{}) error
	// Delete removes an item by portfolio_id.
	Delete(ctx context.Context, portfolioID string) error
}
