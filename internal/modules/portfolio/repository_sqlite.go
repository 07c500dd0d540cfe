package portfolio

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Columns allowed in partial updates. Mirrors the permissive update of the
// HTTP API while keeping SQL construction safe.
var updatableColumns = map[string]bool{
	"user_id":      true,
	"stock_symbol": true,
	"quantity":     true,
}

// SQLiteStore is the portfolio Store used in local mode.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteStore creates the store and ensures its schema exists
func NewSQLiteStore(db *sql.DB, log zerolog.Logger) (*SQLiteStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS portfolios (
			portfolio_id TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			stock_symbol TEXT NOT NULL,
			quantity     REAL NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_portfolios_user ON portfolios(user_id);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolios schema: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		log: log.With().Str("repository", "portfolios").Logger(),
	}, nil
}

// List returns every portfolio item
func (s *SQLiteStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT portfolio_id, user_id, stock_symbol, quantity FROM portfolios
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListByUser returns the items belonging to one user
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT portfolio_id, user_id, stock_symbol, quantity
		FROM portfolios
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios for %s: %w", userID, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Symbols returns the distinct stock symbols across all items
func (s *SQLiteStore) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT stock_symbol FROM portfolios WHERE stock_symbol != ''
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}
	return symbols, nil
}

// Put inserts or replaces an item by portfolio_id
func (s *SQLiteStore) Put(ctx context.Context, item Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolios (portfolio_id, user_id, stock_symbol, quantity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(portfolio_id) DO UPDATE SET
			user_id = excluded.user_id,
			stock_symbol = excluded.stock_symbol,
			quantity = excluded.quantity
	`, item.PortfolioID, item.UserID, item.StockSymbol, item.Quantity)
	if err != nil {
		return fmt.Errorf("failed to store portfolio item %s: %w", item.PortfolioID, err)
	}
	return nil
}

// Update applies a partial update to the named fields of an item
func (s *SQLiteStore) Update(ctx context.Context, portfolioID string, fields map[string]interface{}) error {
	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for column, value := range fields {
		if !updatableColumns[column] {
			return fmt.Errorf("cannot update field %q", column)
		}
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}
	if len(assignments) == 0 {
		return nil
	}
	args = append(args, portfolioID)

	query := "UPDATE portfolios SET " + strings.Join(assignments, ", ") + " WHERE portfolio_id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update portfolio item %s: %w", portfolioID, err)
	}
	return nil
}

// Delete removes an item by portfolio_id
func (s *SQLiteStore) Delete(ctx context.Context, portfolioID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE portfolio_id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio item %s: %w", portfolioID, err)
	}
	return nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.PortfolioID, &item.UserID, &item.StockSymbol, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio items: %w", err)
	}
	return items, nil
}
