package pricing

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// FixedDimensions are the selections shared by every candidate park.
// SeasonID, CurrencyID and TaxBehavior may be left unset while the form is
// incomplete; the price check is skipped until the duplicate key is complete.
type FixedDimensions struct {
	CategoryID    *int64      `json:"categoryId,omitempty"`
	EntryTypeID   int64       `json:"entryTypeId"`
	AgeGroupID    int64       `json:"ageGroupId"`
	PricingTypeID int64       `json:"pricingTypeId"`
	SeasonID      int64       `json:"seasonId,omitempty"`
	CurrencyID    int64       `json:"currencyId,omitempty"`
	TaxBehavior   TaxBehavior `json:"taxBehavior,omitempty"`
}

func (f FixedDimensions) key(parkID int64) ProductKey {
	return ProductKey{
		ParkID:        parkID,
		CategoryID:    f.CategoryID,
		EntryTypeID:   f.EntryTypeID,
		AgeGroupID:    f.AgeGroupID,
		PricingTypeID: f.PricingTypeID,
	}
}

// priceComplete reports whether every field of the duplicate key is chosen.
// Currency only counts when it is part of the key.
func (f FixedDimensions) priceComplete(currencyInKey bool) bool {
	if currencyInKey && f.CurrencyID <= 0 {
		return false
	}
	return f.SeasonID > 0 && f.TaxBehavior.Valid()
}

// Classification annotates one candidate park.
type Classification struct {
	HasProduct    bool  `json:"hasProduct"`
	HasExactPrice bool  `json:"hasExactPrice"`
	ProductID     int64 `json:"productId,omitempty"`
}

// Status is the badge shown for a classification.
func (c Classification) Status() string {
	switch {
	case c.HasExactPrice:
		return "exact_duplicate"
	case c.HasProduct:
		return "existing_product"
	default:
		return "new"
	}
}

// ClassifyCandidates checks each candidate park independently: product
// existence first, then price existence only when a product exists. It is
// advisory; ResolveOrCreatePrice remains the authoritative check and both use
// the same duplicate key.
func (s *Service) ClassifyCandidates(ctx context.Context, fixed FixedDimensions, parkIDs []int64) (_ map[int64]Classification, err error) {
	for _, id := range parkIDs {
		if err := fixed.key(id).Validate(); err != nil {
			return nil, err
		}
	}

	ctx, span := s.startSpan(ctx, "pricing.ClassifyCandidates",
		attribute.Int("candidates", len(parkIDs)))
	defer func() { endSpan(span, err) }()

	var (
		mu  sync.Mutex
		out = make(map[int64]Classification, len(parkIDs))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.DetectorConcurrency)

	for _, parkID := range parkIDs {
		g.Go(func() error {
			c, err := s.classify(ctx, fixed, parkID)
			if err != nil {
				return err
			}
			mu.Lock()
			out[parkID] = c
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) classify(ctx context.Context, fixed FixedDimensions, parkID int64) (Classification, error) {
	var c Classification

	product, err := s.findProduct(ctx, fixed.key(parkID))
	if err != nil || product == nil {
		return c, err
	}
	c.HasProduct = true
	c.ProductID = product.ID

	if !fixed.priceComplete(s.config.CurrencyInDuplicateKey) {
		return c, nil
	}

	dups, err := s.findDuplicates(ctx, s.duplicateFilter(product.ID, fixed.SeasonID, fixed.CurrencyID, fixed.TaxBehavior))
	if err != nil {
		return c, err
	}
	c.HasExactPrice = len(dups) > 0
	return c, nil
}
