package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

const positionColumns = `id, owner_id, symbol, asset_type, units, avg_buy_price, last_price, last_price_at`

// positionRepository implements domain.PositionRepository
type positionRepository struct {
	db *DB
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *DB) domain.PositionRepository {
	return &positionRepository{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (*domain.InvestmentPosition, error) {
	var position domain.InvestmentPosition
	var assetType string
	var unitsStr, avgBuyPriceStr string
	var lastPriceStr sql.NullString
	var lastPriceAt sql.NullTime

	if err := row.Scan(
		&position.ID,
		&position.OwnerID,
		&position.Symbol,
		&assetType,
		&unitsStr,
		&avgBuyPriceStr,
		&lastPriceStr,
		&lastPriceAt,
	); err != nil {
		return nil, err
	}
	position.AssetType = domain.AssetType(assetType)

	// Parse units (DECIMAL)
	units, err := decimal.NewFromString(unitsStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse units: %w", err)
	}
	position.Units = units

	// Parse avg_buy_price (DECIMAL)
	avgBuyPrice, err := decimal.NewFromString(avgBuyPriceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avg_buy_price: %w", err)
	}
	position.AvgBuyPrice = avgBuyPrice

	// Parse last_price (nullable)
	if lastPriceStr.Valid {
		lastPrice, err := decimal.NewFromString(lastPriceStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_price: %w", err)
		}
		position.LastPrice = &lastPrice
	}
	if lastPriceAt.Valid {
		at := lastPriceAt.Time
		position.LastPriceAt = &at
	}

	return &position, nil
}

// GetByID retrieves a position by its ID
func (r *positionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvestmentPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM investments WHERE id = $1`

	position, err := scanPosition(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("position %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get position by ID: %w", err)
	}
	return position, nil
}

// GetBySymbol retrieves the owner's position for a symbol
func (r *positionRepository) GetBySymbol(ctx context.Context, ownerID uuid.UUID, symbol string) (*domain.InvestmentPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM investments WHERE owner_id = $1 AND symbol = $2`

	position, err := scanPosition(r.db.QueryRowContext(ctx, query, ownerID, domain.NormalizeSymbol(symbol)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("position %s: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get position by symbol: %w", err)
	}
	return position, nil
}

// ListByOwner retrieves all positions held by an owner, ordered by symbol
func (r *positionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.InvestmentPosition, error) {
	query := `SELECT ` + positionColumns + ` FROM investments WHERE owner_id = $1 ORDER BY symbol`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]*domain.InvestmentPosition, 0)
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, position)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Save inserts the position or updates it if its ID already exists
func (r *positionRepository) Save(ctx context.Context, position *domain.InvestmentPosition) error {
	return savePosition(ctx, r.db, position)
}

// Delete removes a position
func (r *positionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deletePosition(ctx, r.db, id)
}

// execer is satisfied by *DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func savePosition(ctx context.Context, exec execer, position *domain.InvestmentPosition) error {
	query := `
		INSERT INTO investments (id, owner_id, symbol, asset_type, units, avg_buy_price, last_price, last_price_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			asset_type = EXCLUDED.asset_type,
			units = EXCLUDED.units,
			avg_buy_price = EXCLUDED.avg_buy_price,
			last_price = EXCLUDED.last_price,
			last_price_at = EXCLUDED.last_price_at
	`

	var lastPrice interface{}
	if position.LastPrice != nil {
		lastPrice = position.LastPrice.String()
	}
	var lastPriceAt interface{}
	if position.LastPriceAt != nil {
		lastPriceAt = *position.LastPriceAt
	}

	_, err := exec.ExecContext(ctx, query,
		position.ID,
		position.OwnerID,
		domain.NormalizeSymbol(position.Symbol),
		string(position.AssetType),
		position.Units.String(),
		position.AvgBuyPrice.String(),
		lastPrice,
		lastPriceAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}

	return nil
}

func deletePosition(ctx context.Context, exec execer, id uuid.UUID) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("position %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
