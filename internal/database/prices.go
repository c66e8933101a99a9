package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/pricing"
)

// Amounts travel as text so NUMERIC keeps its exact scale.
const priceColumns = `id, park_product_id, season_id, currency_id, unit_amount::text, tax_behavior`

func scanPrice(row pgx.Row) (*pricing.Price, error) {
	var (
		p      pricing.Price
		amount string
		tax    string
	)
	if err := row.Scan(&p.ID, &p.ProductID, &p.SeasonID, &p.CurrencyID, &amount, &tax); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid unit amount %q: %w", amount, err)
	}
	p.UnitAmount = d
	p.TaxBehavior = pricing.TaxBehavior(tax)
	return &p, nil
}

// FindPrices filters on every non-zero field of f.
func (r *Repository) FindPrices(ctx context.Context, f pricing.PriceFilter) ([]pricing.Price, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != 0 {
		add("park_product_id = $%d", f.ProductID)
	}
	if f.SeasonID != 0 {
		add("season_id = $%d", f.SeasonID)
	}
	if f.CurrencyID != 0 {
		add("currency_id = $%d", f.CurrencyID)
	}
	if f.TaxBehavior != "" {
		add("tax_behavior = $%d", string(f.TaxBehavior))
	}

	query := `SELECT ` + priceColumns + ` FROM park_product_price`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying prices: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.Price, error) {
		p, err := scanPrice(row)
		if err != nil {
			return pricing.Price{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning prices: %w", err)
	}
	return out, nil
}

// InsertPrice maps a unique violation (a concurrent duplicate) to a
// ConflictError.
func (r *Repository) InsertPrice(ctx context.Context, p pricing.Price) (*pricing.Price, error) {
	created, err := scanPrice(r.pool.QueryRow(ctx, `
		INSERT INTO park_product_price (park_product_id, season_id, currency_id, unit_amount, tax_behavior)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING `+priceColumns,
		p.ProductID, p.SeasonID, p.CurrencyID, p.UnitAmount.String(), string(p.TaxBehavior)))
	switch {
	case err == nil:
		return created, nil
	case isUniqueViolation(err):
		return nil, &pricing.ConflictError{Tax: p.TaxBehavior}
	case isForeignKeyViolation(err):
		return nil, &pricing.ValidationError{Field: "price", Reason: "references an unknown product, season or currency"}
	case isAmountViolation(err):
		return nil, &pricing.ValidationError{Field: "unitAmount", Reason: "must be greater than 0 with at most 2 decimal places"}
	default:
		return nil, fmt.Errorf("failed to insert price: %w", err)
	}
}

// UpdatePrice replaces every mutable field of the row in place.
func (r *Repository) UpdatePrice(ctx context.Context, p pricing.Price) (*pricing.Price, error) {
	updated, err := scanPrice(r.pool.QueryRow(ctx, `
		UPDATE park_product_price
		SET season_id = $2, currency_id = $3, unit_amount = $4::numeric, tax_behavior = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+priceColumns,
		p.ID, p.SeasonID, p.CurrencyID, p.UnitAmount.String(), string(p.TaxBehavior)))
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil, pricing.ErrNotFound
	case isUniqueViolation(err):
		return nil, &pricing.ConflictError{Tax: p.TaxBehavior}
	case isForeignKeyViolation(err):
		return nil, &pricing.ValidationError{Field: "price", Reason: "references an unknown season or currency"}
	case isAmountViolation(err):
		return nil, &pricing.ValidationError{Field: "unitAmount", Reason: "must be greater than 0 with at most 2 decimal places"}
	default:
		return nil, fmt.Errorf("failed to update price %d: %w", p.ID, err)
	}
}

func (r *Repository) DeletePrice(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM park_product_price WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting price %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pricing.ErrNotFound
	}
	return nil
}

func (r *Repository) GetPrice(ctx context.Context, id int64) (*pricing.Price, error) {
	p, err := scanPrice(r.pool.QueryRow(ctx, `SELECT `+priceColumns+` FROM park_product_price WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pricing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying price %d: %w", id, err)
	}
	return p, nil
}
