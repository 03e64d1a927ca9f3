package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=wealthtrack sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// schema lists the migration statements in order.
// avg_buy_price holds a weighted average at full division precision (16 places).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS investments (
			id            UUID PRIMARY KEY,
			owner_id      UUID NOT NULL,
			asset_type    VARCHAR(50) NOT NULL,
			symbol        VARCHAR(50) NOT NULL,
			units         NUMERIC(20, 6) NOT NULL,
			avg_buy_price NUMERIC(30, 16) NOT NULL,
			last_price    NUMERIC(20, 4),
			last_price_at TIMESTAMPTZ
		)`,
	`ALTER TABLE investments ALTER COLUMN avg_buy_price TYPE NUMERIC(30, 16)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_investments_owner_symbol ON investments(owner_id, symbol)`,

	`CREATE TABLE IF NOT EXISTS transactions (
			id          UUID PRIMARY KEY,
			owner_id    UUID NOT NULL,
			type        VARCHAR(50) NOT NULL,
			symbol      VARCHAR(50) NOT NULL DEFAULT '',
			quantity    NUMERIC(20, 6) NOT NULL,
			price       NUMERIC(20, 4) NOT NULL,
			fees        NUMERIC(20, 2) NOT NULL DEFAULT 0,
			executed_at TIMESTAMPTZ NOT NULL
		)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_owner_executed ON transactions(owner_id, executed_at DESC)`,

	`CREATE TABLE IF NOT EXISTS goals (
			id                   UUID PRIMARY KEY,
			owner_id             UUID NOT NULL,
			goal_type            VARCHAR(50) NOT NULL,
			target_amount        NUMERIC(20, 2) NOT NULL,
			target_date          DATE NOT NULL,
			monthly_contribution NUMERIC(20, 2) NOT NULL DEFAULT 0,
			status               VARCHAR(50) NOT NULL DEFAULT 'active',
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id)`,
}

// Migrate creates the tables the repositories use if they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
