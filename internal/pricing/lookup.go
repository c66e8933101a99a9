package pricing

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// LookupRequest asks for the prices of one product over a trip.
type LookupRequest struct {
	Key       ProductKey
	TripStart time.Time
	TripEnd   time.Time
	Preferred CurrencyCode
}

// Validate checks the key and the trip range.
func (r LookupRequest) Validate() error {
	if err := r.Key.Validate(); err != nil {
		return err
	}
	if r.TripStart.IsZero() || r.TripEnd.IsZero() {
		return &ValidationError{Field: "tripDates", Reason: "start and end are required"}
	}
	if r.TripEnd.Before(r.TripStart) {
		return &ValidationError{Field: "tripDates", Reason: "end is before start"}
	}
	return nil
}

// SeasonPrice is a displayable price of a product in one overlapping season.
type SeasonPrice struct {
	Season      Season         `json:"season"`
	TaxBehavior TaxBehavior    `json:"taxBehavior"`
	Stored      Amounts        `json:"stored"`
	Display     DisplayedPrice `json:"display"`
}

// LookupPrices returns the product's prices in every season overlapping the
// trip, one entry per season and tax behavior, with the missing currency
// derived and tax applied. Returns ErrNotFound when the product does not exist.
func (s *Service) LookupPrices(ctx context.Context, req LookupRequest) (_ []SeasonPrice, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "pricing.LookupPrices")
	defer func() { endSpan(span, err) }()

	product, err := s.findProduct(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", req.Key, ErrNotFound)
	}

	var (
		seasons    []Season
		currencies []Currency
	)
	if err := s.call(ctx, "list_seasons", func(ctx context.Context) error {
		var err error
		seasons, err = s.store.ListSeasons(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	if err := s.call(ctx, "list_currencies", func(ctx context.Context) error {
		var err error
		currencies, err = s.store.ListCurrencies(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}

	codes := make(map[int64]CurrencyCode, len(currencies))
	for _, c := range currencies {
		codes[c.ID] = c.Code()
	}

	out := []SeasonPrice{}
	for _, season := range OverlappingSeasons(seasons, req.TripStart, req.TripEnd) {
		prices, err := s.findDuplicates(ctx, PriceFilter{ProductID: product.ID, SeasonID: season.ID})
		if err != nil {
			return nil, err
		}

		byTax := make(map[TaxBehavior][]Price)
		for _, p := range prices {
			byTax[p.TaxBehavior] = append(byTax[p.TaxBehavior], p)
		}
		for _, tax := range []TaxBehavior{TaxInclusive, TaxExclusive} {
			rows, ok := byTax[tax]
			if !ok {
				continue
			}
			stored := AmountsFromPrices(rows, codes)
			out = append(out, SeasonPrice{
				Season:      season,
				TaxBehavior: tax,
				Stored:      stored,
				Display:     s.converter.DisplayPrice(PricedItem{Amounts: stored, TaxBehavior: tax}, req.Preferred),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Season.StartDate.Before(out[j].Season.StartDate)
	})
	return out, nil
}
