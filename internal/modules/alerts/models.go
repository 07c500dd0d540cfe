package alerts

import (
	"fmt"
	"strconv"
	"strings"
)

// ConditionType is the direction of an alert threshold
type ConditionType string

const (
	ConditionAbove ConditionType = "above"
	ConditionBelow ConditionType = "below"
)

// AlertCondition is a stored rule mapping a stock symbol and a threshold
// direction to an alert identity. Conditions are created and deleted via the
// API; there is no update-in-place.
type AlertCondition struct {
	AlertID       string        `json:"alert_id" dynamodbav:"alert_id"`
	StockSymbol   string        `json:"stock_symbol" dynamodbav:"stock_symbol"`
	ConditionType ConditionType `json:"condition_type" dynamodbav:"condition_type"`
	Threshold     float64       `json:"threshold" dynamodbav:"threshold"`
}

// Validate checks the fields required to store and evaluate a condition
func (c AlertCondition) Validate() error {
	if c.AlertID == "" {
		return fmt.Errorf("alert_id is required")
	}
	if c.StockSymbol == "" {
		return fmt.Errorf("stock_symbol is required")
	}
	if c.ConditionType != ConditionAbove && c.ConditionType != ConditionBelow {
		return fmt.Errorf("condition_type must be %q or %q", ConditionAbove, ConditionBelow)
	}
	return nil
}

// Triggered reports whether a price satisfies the condition predicate.
// Every satisfying evaluation re-triggers; there is no hysteresis.
func (c AlertCondition) Triggered(price float64) bool {
	switch c.ConditionType {
	case ConditionAbove:
		return price > c.Threshold
	case ConditionBelow:
		return price < c.Threshold
	default:
		return false
	}
}

// PriceUpdate is a parsed queue message. It is transient and never persisted.
type PriceUpdate struct {
	Symbol string
	Price  float64
}

// ParsePriceUpdate parses a queue message body of the form "AAPL:150.0".
func ParsePriceUpdate(body string) (PriceUpdate, error) {
	symbol, raw, ok := strings.Cut(body, ":")
	if !ok || symbol == "" {
		return PriceUpdate{}, fmt.Errorf("malformed price update %q", body)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return PriceUpdate{}, fmt.Errorf("malformed price in %q: %w", body, err)
	}
	return PriceUpdate{Symbol: symbol, Price: price}, nil
}

// TriggeredAlert is the ephemeral cache record written when a price update
// satisfies a condition. Its presence means the condition triggered within
// the TTL window; absence means "not recently triggered".
type TriggeredAlert struct {
	AlertID     string        `json:"alert_id"`
	StockSymbol string        `json:"stock_symbol"`
	Price       float64       `json:"price"`
	Condition   ConditionType `json:"condition"`
	Threshold   float64       `json:"threshold"`
}
