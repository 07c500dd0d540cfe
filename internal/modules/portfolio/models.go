package portfolio

import "fmt"

// Sentinel values for the current_price field on reads. The price comes
// from the shared cache and can lag the market by up to the cache TTL.
const (
	PriceNotAvailable = "Not Available"
	PriceError        = "Error"
)

// Item is one portfolio holding owned by a user.
// CurrentPrice is transient: filled from the price cache on reads, never
// stored.
type Item struct {
	PortfolioID  string  `json:"portfolio_id" dynamodbav:"portfolio_id"`
	UserID       string  `json:"user_id" dynamodbav:"user_id"`
	StockSymbol  string  `json:"stock_symbol" dynamodbav:"stock_symbol"`
	Quantity     float64 `json:"quantity" dynamodbav:"quantity"`
	CurrentPrice string  `json:"current_price,omitempty" dynamodbav:"-"`
}

// Validate checks the fields required to store an item
func (i Item) Validate() error {
	if i.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if i.StockSymbol == "" {
		return fmt.Errorf("stock_symbol is required")
	}
	return nil
}
