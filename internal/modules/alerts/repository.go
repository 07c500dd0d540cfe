package alerts

import "context"

// ConditionStore is the durable table of alert conditions. Implementations
// must provide atomic single-record operations; no transactions or
// multi-record consistency are assumed.
type ConditionStore interface {
	// List returns every stored condition.
	List(ctx context.Context) ([]AlertCondition, error)
	// ListBySymbol returns the conditions whose stock_symbol matches
	// exactly (case-sensitive).
	ListBySymbol(ctx context.Context, symbol string) ([]AlertCondition, error)
	// Put inserts or replaces a condition by alert_id.
	Put(ctx context.Context, cond AlertCondition) error
	// Delete removes a condition by alert_id. Deleting an unknown id is
	// not an error.
	Delete(ctx context.Context, alertID string) error
}
