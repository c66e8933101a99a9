package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/menye94/park-pricing/internal/quote"
)

// ListLineItems returns the mirrored line items of an offer in creation order.
func (r *Repository) ListLineItems(ctx context.Context, quoteID string) ([]quote.LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT payload
		FROM offer_line_items
		WHERE offer_id = $1
		ORDER BY created_at, id
	`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("error querying offer line items: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (quote.LineItem, error) {
		var (
			payload []byte
			item    quote.LineItem
		)
		if err := row.Scan(&payload); err != nil {
			return item, err
		}
		err := json.Unmarshal(payload, &item)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning offer line items: %w", err)
	}
	return out, nil
}

// UpsertLineItem creates the offer on first use and upserts the item by id.
func (r *Repository) UpsertLineItem(ctx context.Context, quoteID string, item quote.LineItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal line item: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO offers (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET updated_at = now()
	`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to upsert offer: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO offer_line_items (id, offer_id, currency, total, payload)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (id) DO UPDATE SET
			currency = EXCLUDED.currency,
			total = EXCLUDED.total,
			payload = EXCLUDED.payload,
			updated_at = now()
	`, item.ID, quoteID, string(item.Currency), item.Total.String(), payload)
	if err != nil {
		return fmt.Errorf("failed to upsert line item: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteLineItem removes one mirrored item; a missing row is not an error.
func (r *Repository) DeleteLineItem(ctx context.Context, quoteID, itemID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM offer_line_items WHERE offer_id = $1 AND id = $2`, quoteID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	return nil
}
