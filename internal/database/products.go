package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/menye94/park-pricing/internal/pricing"
)

const productColumns = `id, national_park_id, park_category_id, entry_type_id, age_group, pricing_type_id, product_name`

func scanProduct(row pgx.Row) (*pricing.Product, error) {
	var p pricing.Product
	err := row.Scan(&p.ID, &p.Key.ParkID, &p.Key.CategoryID, &p.Key.EntryTypeID,
		&p.Key.AgeGroupID, &p.Key.PricingTypeID, &p.Name)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProduct matches the full tuple. A nil category matches only NULL.
func (r *Repository) FindProduct(ctx context.Context, key pricing.ProductKey) (*pricing.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM park_product
		WHERE national_park_id = $1
		  AND park_category_id IS NOT DISTINCT FROM $2
		  AND entry_type_id = $3
		  AND age_group = $4
		  AND pricing_type_id = $5
		LIMIT 1
	`, key.ParkID, key.CategoryID, key.EntryTypeID, key.AgeGroupID, key.PricingTypeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pricing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying product: %w", err)
	}
	return p, nil
}

// InsertProduct uses INSERT ON CONFLICT DO NOTHING against the tuple index.
// When a concurrent insert wins, the winner's row is re-read and returned
// with created=false.
func (r *Repository) InsertProduct(ctx context.Context, key pricing.ProductKey, name string) (*pricing.Product, bool, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO park_product (national_park_id, park_category_id, entry_type_id, age_group, pricing_type_id, product_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (national_park_id, COALESCE(park_category_id, 0), entry_type_id, age_group, pricing_type_id) DO NOTHING
		RETURNING `+productColumns,
		key.ParkID, key.CategoryID, key.EntryTypeID, key.AgeGroupID, key.PricingTypeID, name))
	if err == nil {
		return p, true, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := r.FindProduct(ctx, key)
		if err != nil {
			return nil, false, fmt.Errorf("failed to find product after race: %w", err)
		}
		return existing, false, nil
	}
	if isForeignKeyViolation(err) {
		return nil, false, &pricing.ValidationError{Field: "dimensions", Reason: "references an unknown park, category, entry type, age group or pricing type"}
	}
	return nil, false, fmt.Errorf("failed to insert product: %w", err)
}

// DimensionNames resolves display names in one round trip.
func (r *Repository) DimensionNames(ctx context.Context, key pricing.ProductKey) (pricing.DimensionNames, error) {
	var n pricing.DimensionNames
	err := r.pool.QueryRow(ctx, `
		SELECT np.national_park_name, COALESCE(pc.category_name, ''), et.entry_name,
		       ag.age_group_name, pt.pricing_type_name
		FROM national_parks np
		JOIN entry_type et ON et.id = $2
		JOIN age_group ag ON ag.id = $3
		JOIN pricing_type pt ON pt.id = $4
		LEFT JOIN park_category pc ON pc.id = $5
		WHERE np.id = $1
	`, key.ParkID, key.EntryTypeID, key.AgeGroupID, key.PricingTypeID, key.CategoryID).Scan(
		&n.Park, &n.Category, &n.EntryType, &n.AgeGroup, &n.PricingType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return n, &pricing.ValidationError{Field: "dimensions", Reason: "references an unknown park, entry type, age group or pricing type"}
	}
	if err != nil {
		return n, fmt.Errorf("error resolving dimension names: %w", err)
	}
	if key.CategoryID != nil && n.Category == "" {
		return n, &pricing.ValidationError{Field: "categoryId", Reason: "unknown category"}
	}
	return n, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*pricing.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM park_product WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pricing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying product %d: %w", id, err)
	}
	return p, nil
}

func (r *Repository) ListProducts(ctx context.Context, parkID int64) ([]pricing.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM park_product
		WHERE $1 = 0 OR national_park_id = $1
		ORDER BY product_name
	`, parkID)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.Product, error) {
		p, err := scanProduct(row)
		if err != nil {
			return pricing.Product{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning products: %w", err)
	}
	return out, nil
}

// DeleteProduct relies on ON DELETE RESTRICT to refuse products with prices.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM park_product WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return pricing.ErrProductInUse
	}
	if err != nil {
		return fmt.Errorf("error deleting product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pricing.ErrNotFound
	}
	return nil
}
