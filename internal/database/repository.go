package database

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/quote"
)

// Repository is the Postgres implementation of pricing.Store and quote.Mirror.
type Repository struct {
	pool *pgxpool.Pool
}

var (
	_ pricing.Store = (*Repository)(nil)
	_ quote.Mirror  = (*Repository)(nil)
)

// NewRepository creates a repository on pool. A nil pool uses the shared Pool().
func NewRepository(p *pgxpool.Pool) *Repository {
	if p == nil {
		p = Pool()
	}
	return &Repository{pool: p}
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgerrcode.ForeignKeyViolation
}

// isAmountViolation covers the unit_amount CHECK and NUMERIC overflow.
func isAmountViolation(err error) bool {
	switch pgCode(err) {
	case pgerrcode.CheckViolation, pgerrcode.NumericValueOutOfRange:
		return true
	}
	return false
}

// Ping checks connectivity for health probes.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
