package pricing

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ReferenceData holds every lookup table. A dimension whose load failed is
// empty and listed in Failures; the others are still populated.
type ReferenceData struct {
	Parks        []Park            `json:"parks"`
	Categories   []Category        `json:"categories"`
	EntryTypes   []EntryType       `json:"entryTypes"`
	AgeGroups    []AgeGroup        `json:"ageGroups"`
	PricingTypes []PricingType     `json:"pricingTypes"`
	Seasons      []Season          `json:"seasons"`
	Currencies   []Currency        `json:"currencies"`
	Failures     map[string]string `json:"failures,omitempty"`
}

// CurrencyCodes maps currency ids to their codes.
func (r *ReferenceData) CurrencyCodes() map[int64]CurrencyCode {
	out := make(map[int64]CurrencyCode, len(r.Currencies))
	for _, c := range r.Currencies {
		out[c.ID] = c.Code()
	}
	return out
}

// Dimension names used in Failures and metrics.
const (
	DimParks        = "parks"
	DimCategories   = "categories"
	DimEntryTypes   = "entryTypes"
	DimAgeGroups    = "ageGroups"
	DimPricingTypes = "pricingTypes"
	DimSeasons      = "seasons"
	DimCurrencies   = "currencies"
)

// LoadReferenceData issues one independent read per lookup table. A failed
// read is logged and leaves its dimension empty; it never aborts the others.
// There is no retry: callers re-run the load on demand.
func (s *Service) LoadReferenceData(ctx context.Context) *ReferenceData {
	ctx, span := s.startSpan(ctx, "pricing.LoadReferenceData")
	defer span.End()

	data := &ReferenceData{
		Parks:        []Park{},
		Categories:   []Category{},
		EntryTypes:   []EntryType{},
		AgeGroups:    []AgeGroup{},
		PricingTypes: []PricingType{},
		Seasons:      []Season{},
		Currencies:   []Currency{},
	}

	var mu sync.Mutex
	fail := func(dim string, err error) {
		s.logger.Error().Err(err).Str("dimension", dim).Msg("Failed to load reference data")
		s.metrics.RecordReferenceError(dim)
		mu.Lock()
		if data.Failures == nil {
			data.Failures = make(map[string]string)
		}
		data.Failures[dim] = err.Error()
		mu.Unlock()
	}

	// Goroutines never return an error so one failure cannot cancel the rest.
	var g errgroup.Group
	load := func(dim string, fn func(ctx context.Context) error) {
		g.Go(func() error {
			if err := s.call(ctx, "list_"+dim, fn); err != nil {
				fail(dim, err)
			}
			return nil
		})
	}

	load(DimParks, func(ctx context.Context) error {
		rows, err := s.store.ListParks(ctx)
		if err == nil && rows != nil {
			data.Parks = rows
		}
		return err
	})
	load(DimCategories, func(ctx context.Context) error {
		rows, err := s.store.ListCategories(ctx)
		if err == nil && rows != nil {
			data.Categories = rows
		}
		return err
	})
	load(DimEntryTypes, func(ctx context.Context) error {
		rows, err := s.store.ListEntryTypes(ctx)
		if err == nil && rows != nil {
			data.EntryTypes = rows
		}
		return err
	})
	load(DimAgeGroups, func(ctx context.Context) error {
		rows, err := s.store.ListAgeGroups(ctx)
		if err == nil && rows != nil {
			data.AgeGroups = rows
		}
		return err
	})
	load(DimPricingTypes, func(ctx context.Context) error {
		rows, err := s.store.ListPricingTypes(ctx)
		if err == nil && rows != nil {
			data.PricingTypes = rows
		}
		return err
	})
	load(DimSeasons, func(ctx context.Context) error {
		rows, err := s.store.ListSeasons(ctx)
		if err == nil && rows != nil {
			data.Seasons = rows
		}
		return err
	})
	load(DimCurrencies, func(ctx context.Context) error {
		rows, err := s.store.ListCurrencies(ctx)
		if err == nil && rows != nil {
			data.Currencies = rows
		}
		return err
	})

	_ = g.Wait()
	return data
}
