package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/menye94/park-pricing/internal/pricing"
)

// listNamed runs a two-column (id, name) query.
func listNamed[T any](ctx context.Context, r *Repository, query string, build func(id int64, name string) T) ([]T, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		var (
			id   int64
			name string
		)
		err := row.Scan(&id, &name)
		return build(id, name), err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListParks(ctx context.Context) ([]pricing.Park, error) {
	out, err := listNamed(ctx, r, `SELECT id, national_park_name FROM national_parks ORDER BY national_park_name`,
		func(id int64, name string) pricing.Park { return pricing.Park{ID: id, Name: name} })
	if err != nil {
		return nil, fmt.Errorf("error listing parks: %w", err)
	}
	return out, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]pricing.Category, error) {
	out, err := listNamed(ctx, r, `SELECT id, category_name FROM park_category ORDER BY category_name`,
		func(id int64, name string) pricing.Category { return pricing.Category{ID: id, Name: name} })
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return out, nil
}

func (r *Repository) ListEntryTypes(ctx context.Context) ([]pricing.EntryType, error) {
	out, err := listNamed(ctx, r, `SELECT id, entry_name FROM entry_type ORDER BY entry_name`,
		func(id int64, name string) pricing.EntryType { return pricing.EntryType{ID: id, Name: name} })
	if err != nil {
		return nil, fmt.Errorf("error listing entry types: %w", err)
	}
	return out, nil
}

func (r *Repository) ListPricingTypes(ctx context.Context) ([]pricing.PricingType, error) {
	out, err := listNamed(ctx, r, `SELECT id, pricing_type_name FROM pricing_type ORDER BY pricing_type_name`,
		func(id int64, name string) pricing.PricingType { return pricing.PricingType{ID: id, Name: name} })
	if err != nil {
		return nil, fmt.Errorf("error listing pricing types: %w", err)
	}
	return out, nil
}

func (r *Repository) ListCurrencies(ctx context.Context) ([]pricing.Currency, error) {
	out, err := listNamed(ctx, r, `SELECT id, currency_name FROM currency ORDER BY currency_name`,
		func(id int64, name string) pricing.Currency { return pricing.Currency{ID: id, Name: name} })
	if err != nil {
		return nil, fmt.Errorf("error listing currencies: %w", err)
	}
	return out, nil
}

// ListAgeGroups orders by min age rather than name.
func (r *Repository) ListAgeGroups(ctx context.Context) ([]pricing.AgeGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, age_group_name, min_age, max_age
		FROM age_group
		ORDER BY min_age, age_group_name
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing age groups: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.AgeGroup, error) {
		var g pricing.AgeGroup
		err := row.Scan(&g.ID, &g.Name, &g.MinAge, &g.MaxAge)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning age groups: %w", err)
	}
	return out, nil
}

func (r *Repository) ListSeasons(ctx context.Context) ([]pricing.Season, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, season_name, start_date, end_date
		FROM seasons
		ORDER BY season_name
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.Season, error) {
		var s pricing.Season
		err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning seasons: %w", err)
	}
	return out, nil
}

// CreateSeason inserts a season. Used by the CLI and tests to seed data.
func (r *Repository) CreateSeason(ctx context.Context, s pricing.Season) (*pricing.Season, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO seasons (season_name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`, s.Name, s.StartDate, s.EndDate).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("error creating season: %w", err)
	}
	return &s, nil
}
