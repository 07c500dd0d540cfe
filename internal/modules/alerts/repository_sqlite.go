package alerts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SQLiteConditionStore is the ConditionStore used in local mode.
type SQLiteConditionStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteConditionStore creates the store and ensures its schema exists
func NewSQLiteConditionStore(db *sql.DB, log zerolog.Logger) (*SQLiteConditionStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS alert_conditions (
			alert_id       TEXT PRIMARY KEY,
			stock_symbol   TEXT NOT NULL,
			condition_type TEXT NOT NULL,
			threshold      REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_alert_conditions_symbol
			ON alert_conditions(stock_symbol);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert_conditions schema: %w", err)
	}

	return &SQLiteConditionStore{
		db:  db,
		log: log.With().Str("repository", "conditions").Logger(),
	}, nil
}

// List returns every stored condition
func (s *SQLiteConditionStore) List(ctx context.Context) ([]AlertCondition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alert_id, stock_symbol, condition_type, threshold
		FROM alert_conditions
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert conditions: %w", err)
	}
	defer rows.Close()

	return scanConditions(rows)
}

// ListBySymbol returns the conditions matching a symbol exactly
func (s *SQLiteConditionStore) ListBySymbol(ctx context.Context, symbol string) ([]AlertCondition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alert_id, stock_symbol, condition_type, threshold
		FROM alert_conditions
		WHERE stock_symbol = ?
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert conditions for %s: %w", symbol, err)
	}
	defer rows.Close()

	return scanConditions(rows)
}

// Put inserts or replaces a condition by alert_id
func (s *SQLiteConditionStore) Put(ctx context.Context, cond AlertCondition) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alert_conditions (alert_id, stock_symbol, condition_type, threshold)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(alert_id) DO UPDATE SET
			stock_symbol = excluded.stock_symbol,
			condition_type = excluded.condition_type,
			threshold = excluded.threshold
	`, cond.AlertID, cond.StockSymbol, string(cond.ConditionType), cond.Threshold)
	if err != nil {
		return fmt.Errorf("failed to store alert condition %s: %w", cond.AlertID, err)
	}
	return nil
}

// Delete removes a condition by alert_id
func (s *SQLiteConditionStore) Delete(ctx context.Context, alertID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM alert_conditions WHERE alert_id = ?`, alertID)
	if err != nil {
		return fmt.Errorf("failed to delete alert condition %s: %w", alertID, err)
	}
	return nil
}

func scanConditions(rows *sql.Rows) ([]AlertCondition, error) {
	conditions := make([]AlertCondition, 0)
	for rows.Next() {
		var cond AlertCondition
		var condType string
		if err := rows.Scan(&cond.AlertID, &cond.StockSymbol, &condType, &cond.Threshold); err != nil {
			return nil, fmt.Errorf("failed to scan alert condition: %w", err)
		}
		cond.ConditionType = ConditionType(condType)
		conditions = append(conditions, cond)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert conditions: %w", err)
	}
	return conditions, nil
}
