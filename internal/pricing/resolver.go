package pricing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// ResolveOrCreateProduct returns the product for key, inserting it on first
// use. A match has no side effect; an unmatched key costs exactly one insert.
// The returned bool reports whether the product was created.
func (s *Service) ResolveOrCreateProduct(ctx context.Context, key ProductKey) (_ *Product, _ bool, err error) {
	if err := key.Validate(); err != nil {
		return nil, false, err
	}

	ctx, span := s.startSpan(ctx, "pricing.ResolveOrCreateProduct",
		attribute.Int64("park_id", key.ParkID))
	defer func() { endSpan(span, err) }()

	existing, err := s.findProduct(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.metrics.RecordProduct(false)
		return existing, false, nil
	}

	var names DimensionNames
	err = s.call(ctx, "dimension_names", func(ctx context.Context) error {
		var err error
		names, err = s.store.DimensionNames(ctx, key)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("resolve product names: %w", err)
	}

	var (
		product *Product
		created bool
	)
	err = s.call(ctx, "insert_product", func(ctx context.Context) error {
		var err error
		product, created, err = s.store.InsertProduct(ctx, key, names.ProductName())
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("insert product: %w", err)
	}

	s.metrics.RecordProduct(created)
	if created {
		s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("Created product")
	} else {
		s.logger.Warn().Int64("product_id", product.ID).Str("key", key.String()).
			Msg("Concurrent insert resolved to existing product")
	}
	return product, created, nil
}

// findProduct returns nil without error when no product matches key.
func (s *Service) findProduct(ctx context.Context, key ProductKey) (*Product, error) {
	var product *Product
	err := s.call(ctx, "find_product", func(ctx context.Context) error {
		var err error
		product, err = s.store.FindProduct(ctx, key)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// duplicateFilter is the exact-duplicate key. Both ResolveOrCreatePrice and
// ClassifyCandidates go through it so the two layers cannot disagree.
func (s *Service) duplicateFilter(productID, seasonID, currencyID int64, tax TaxBehavior) PriceFilter {
	f := PriceFilter{ProductID: productID, SeasonID: seasonID, TaxBehavior: tax}
	if s.config.CurrencyInDuplicateKey {
		f.CurrencyID = currencyID
	}
	return f
}

func (s *Service) findDuplicates(ctx context.Context, f PriceFilter) ([]Price, error) {
	var prices []Price
	err := s.call(ctx, "find_prices", func(ctx context.Context) error {
		var err error
		prices, err = s.store.FindPrices(ctx, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find prices: %w", err)
	}
	return prices, nil
}

// ResolveOrCreatePrice inserts a price unless an exact duplicate exists. On a
// duplicate the result has Created=false, the existing price, and a message
// naming the conflicting park and product; no error is returned.
func (s *Service) ResolveOrCreatePrice(ctx context.Context, req PriceRequest) (_ *PriceResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "pricing.ResolveOrCreatePrice",
		attribute.Int64("product_id", req.ProductID),
		attribute.Int64("season_id", req.SeasonID))
	defer func() { endSpan(span, err) }()

	dups, err := s.findDuplicates(ctx, s.duplicateFilter(req.ProductID, req.SeasonID, req.CurrencyID, req.TaxBehavior))
	if err != nil {
		return nil, err
	}
	if len(dups) > 0 {
		s.metrics.RecordPrice(false)
		conflict := s.conflictFor(ctx, req.ProductID, req.TaxBehavior)
		existing := dups[0]
		return &PriceResult{Created: false, Price: &existing, Message: conflict.Error()}, nil
	}

	var price *Price
	err = s.call(ctx, "insert_price", func(ctx context.Context) error {
		var err error
		price, err = s.store.InsertPrice(ctx, Price{
			ProductID:   req.ProductID,
			SeasonID:    req.SeasonID,
			CurrencyID:  req.CurrencyID,
			UnitAmount:  req.UnitAmount,
			TaxBehavior: req.TaxBehavior,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert price: %w", err)
	}

	s.metrics.RecordPrice(true)
	s.logger.Info().Int64("price_id", price.ID).Int64("product_id", price.ProductID).Msg("Created price")
	return &PriceResult{Created: true, Price: price}, nil
}

// conflictFor builds the user-facing conflict. Name lookups are best effort:
// a failure still yields a conflict, just without names.
func (s *Service) conflictFor(ctx context.Context, productID int64, tax TaxBehavior) *ConflictError {
	conflict := &ConflictError{Tax: tax}

	var product *Product
	err := s.call(ctx, "get_product", func(ctx context.Context) error {
		var err error
		product, err = s.store.GetProduct(ctx, productID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", productID).Msg("Failed to name conflicting product")
		return conflict
	}
	conflict.Products = []string{product.Name}

	var names DimensionNames
	err = s.call(ctx, "dimension_names", func(ctx context.Context) error {
		var err error
		names, err = s.store.DimensionNames(ctx, product.Key)
		return err
	})
	if err == nil && names.Park != "" {
		conflict.Parks = []string{names.Park}
	}
	return conflict
}

// UpdatePrice replaces the amount, currency and tax behavior of a price.
// The update is rejected if it would turn the row into a duplicate of another.
func (s *Service) UpdatePrice(ctx context.Context, id int64, req PriceRequest) (*Price, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "id", Reason: "is required"}
	}

	var current *Price
	err := s.call(ctx, "get_price", func(ctx context.Context) error {
		var err error
		current, err = s.store.GetPrice(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get price: %w", err)
	}

	req.ProductID = current.ProductID
	if req.SeasonID == 0 {
		req.SeasonID = current.SeasonID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dups, err := s.findDuplicates(ctx, s.duplicateFilter(req.ProductID, req.SeasonID, req.CurrencyID, req.TaxBehavior))
	if err != nil {
		return nil, err
	}
	for _, d := range dups {
		if d.ID != id {
			return nil, s.conflictFor(ctx, req.ProductID, req.TaxBehavior)
		}
	}

	var updated *Price
	err = s.call(ctx, "update_price", func(ctx context.Context) error {
		var err error
		updated, err = s.store.UpdatePrice(ctx, Price{
			ID:          id,
			ProductID:   req.ProductID,
			SeasonID:    req.SeasonID,
			CurrencyID:  req.CurrencyID,
			UnitAmount:  req.UnitAmount,
			TaxBehavior: req.TaxBehavior,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update price: %w", err)
	}
	return updated, nil
}

// DeletePrice removes a price.
func (s *Service) DeletePrice(ctx context.Context, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	return s.call(ctx, "delete_price", func(ctx context.Context) error {
		return s.store.DeletePrice(ctx, id)
	})
}

// DeleteProduct removes a product. Products still referenced by prices are
// refused with ErrProductInUse.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	return s.call(ctx, "delete_product", func(ctx context.Context) error {
		return s.store.DeleteProduct(ctx, id)
	})
}

// ListProducts returns the products of a park, or all products for parkID 0.
func (s *Service) ListProducts(ctx context.Context, parkID int64) ([]Product, error) {
	var out []Product
	err := s.call(ctx, "list_products", func(ctx context.Context) error {
		var err error
		out, err = s.store.ListProducts(ctx, parkID)
		return err
	})
	return out, err
}

// ListPrices returns all prices of a product.
func (s *Service) ListPrices(ctx context.Context, productID int64) ([]Price, error) {
	if productID <= 0 {
		return nil, &ValidationError{Field: "productId", Reason: "is required"}
	}
	var out []Price
	err := s.call(ctx, "list_prices", func(ctx context.Context) error {
		var err error
		out, err = s.store.FindPrices(ctx, PriceFilter{ProductID: productID})
		return err
	})
	return out, err
}
