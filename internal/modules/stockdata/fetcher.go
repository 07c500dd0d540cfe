package stockdata

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// QuoteFetcher returns the latest traded price for a symbol.
type QuoteFetcher interface {
	LatestPrice(symbol string) (float64, error)
}

// YahooFetcher fetches quotes from Yahoo Finance.
type YahooFetcher struct {
	log zerolog.Logger
}

// NewYahooFetcher creates a new Yahoo Finance fetcher
func NewYahooFetcher(log zerolog.Logger) *YahooFetcher {
	return &YahooFetcher{
		log: log.With().Str("client", "yahoo").Logger(),
	}
}

// LatestPrice returns the most recent price for a symbol, preferring the
// regular market price and falling back to pre/post market and previous
// close.
func (f *YahooFetcher) LatestPrice(symbol string) (float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticker for %s: %w", symbol, err)
	}
	defer t.Close()

	quote, err := t.Quote()
	if err == nil && quote != nil {
		if quote.RegularMarketPrice > 0 {
			return quote.RegularMarketPrice, nil
		}
		if quote.PreMarketPrice > 0 {
			return quote.PreMarketPrice, nil
		}
		if quote.PostMarketPrice > 0 {
			return quote.PostMarketPrice, nil
		}
	}

	// Fallback to Info when the quote endpoint has no usable price
	info, err := t.Info()
	if err == nil && info != nil {
		if info.CurrentPrice > 0 {
			return info.CurrentPrice, nil
		}
		if info.RegularMarketPreviousClose > 0 {
			return info.RegularMarketPreviousClose, nil
		}
	}

	return 0, fmt.Errorf("no valid price for %s", symbol)
}
