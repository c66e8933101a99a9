package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// Combination is one cell of a batch's park × entry type × age group product.
type Combination struct {
	ParkID      int64 `json:"parkId"`
	EntryTypeID int64 `json:"entryTypeId"`
	AgeGroupID  int64 `json:"ageGroupId"`
}

func (c Combination) String() string {
	return fmt.Sprintf("park=%d entryType=%d ageGroup=%d", c.ParkID, c.EntryTypeID, c.AgeGroupID)
}

// BatchRequest prices every combination of the selected parks, entry types
// and age groups with the same category, pricing type, season, currency,
// tax behavior and amount.
type BatchRequest struct {
	ParkIDs       []int64         `json:"parkIds"`
	EntryTypeIDs  []int64         `json:"entryTypeIds"`
	AgeGroupIDs   []int64         `json:"ageGroupIds"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	PricingTypeID int64           `json:"pricingTypeId"`
	SeasonID      int64           `json:"seasonId"`
	CurrencyID    int64           `json:"currencyId"`
	TaxBehavior   TaxBehavior     `json:"taxBehavior"`
	UnitAmount    decimal.Decimal `json:"unitAmount"`
}

// Combinations expands the request in park, entry type, age group order.
func (r BatchRequest) Combinations() []Combination {
	out := make([]Combination, 0, len(r.ParkIDs)*len(r.EntryTypeIDs)*len(r.AgeGroupIDs))
	for _, p := range r.ParkIDs {
		for _, e := range r.EntryTypeIDs {
			for _, a := range r.AgeGroupIDs {
				out = append(out, Combination{ParkID: p, EntryTypeID: e, AgeGroupID: a})
			}
		}
	}
	return out
}

// Validate checks every combination before any store call is made.
func (r BatchRequest) Validate() error {
	switch {
	case len(r.ParkIDs) == 0:
		return &ValidationError{Field: "parkIds", Reason: "select at least one park"}
	case len(r.EntryTypeIDs) == 0:
		return &ValidationError{Field: "entryTypeIds", Reason: "select at least one entry type"}
	case len(r.AgeGroupIDs) == 0:
		return &ValidationError{Field: "ageGroupIds", Reason: "select at least one age group"}
	}
	for _, c := range r.Combinations() {
		if err := r.keyFor(c).Validate(); err != nil {
			return err
		}
	}
	return r.priceRequest(1).Validate()
}

func (r BatchRequest) keyFor(c Combination) ProductKey {
	return ProductKey{
		ParkID:        c.ParkID,
		CategoryID:    r.CategoryID,
		EntryTypeID:   c.EntryTypeID,
		AgeGroupID:    c.AgeGroupID,
		PricingTypeID: r.PricingTypeID,
	}
}

func (r BatchRequest) priceRequest(productID int64) PriceRequest {
	return PriceRequest{
		ProductID:   productID,
		SeasonID:    r.SeasonID,
		CurrencyID:  r.CurrencyID,
		TaxBehavior: r.TaxBehavior,
		UnitAmount:  r.UnitAmount,
	}
}

// BatchItem is the outcome of one combination.
type BatchItem struct {
	Combination Combination `json:"combination"`
	ProductID   int64       `json:"productId"`
	Created     bool        `json:"created"`
	PriceID     int64       `json:"priceId,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// BatchResult lists the combinations processed before the batch finished or
// aborted. Err is a *ComboError when a store failure stopped the batch.
type BatchResult struct {
	Created   []BatchItem `json:"created"`
	Conflicts []BatchItem `json:"conflicts"`
	Err       error       `json:"-"`
}

// Aborted reports whether the batch stopped early.
func (b *BatchResult) Aborted() bool {
	return b.Err != nil
}

// CreateBatch resolves product and price for each combination in turn. An
// exact duplicate is reported for its combination and the batch moves on.
// A store failure aborts the batch; combinations already committed stay
// committed.
func (s *Service) CreateBatch(ctx context.Context, req BatchRequest) (_ *BatchResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	combos := req.Combinations()
	ctx, span := s.startSpan(ctx, "pricing.CreateBatch",
		attribute.Int("combinations", len(combos)))
	defer func() { endSpan(span, err) }()

	result := &BatchResult{Created: []BatchItem{}, Conflicts: []BatchItem{}}
	for _, c := range combos {
		if err := ctx.Err(); err != nil {
			result.Err = &ComboError{Combination: c, Err: err}
			break
		}

		product, _, err := s.ResolveOrCreateProduct(ctx, req.keyFor(c))
		if err != nil {
			result.Err = &ComboError{Combination: c, Err: err}
			break
		}

		res, err := s.ResolveOrCreatePrice(ctx, req.priceRequest(product.ID))
		if err != nil {
			result.Err = &ComboError{Combination: c, Err: err}
			break
		}

		item := BatchItem{Combination: c, ProductID: product.ID, Created: res.Created, Message: res.Message}
		if res.Price != nil {
			item.PriceID = res.Price.ID
		}
		if res.Created {
			result.Created = append(result.Created, item)
		} else {
			result.Conflicts = append(result.Conflicts, item)
		}
	}

	s.metrics.RecordBatch(len(combos), result.Aborted())
	log := s.logger.Info()
	if result.Aborted() {
		log = s.logger.Error().Err(result.Err)
	}
	log.Int("combinations", len(combos)).
		Int("created", len(result.Created)).
		Int("conflicts", len(result.Conflicts)).
		Msg("Batch pricing finished")

	return result, nil
}
