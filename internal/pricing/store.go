package pricing

import (
	"context"
)

// ReferenceSource reads the lookup tables that populate selection widgets.
// Each method returns rows ordered by display name (age groups by min age).
type ReferenceSource interface {
	ListParks(ctx context.Context) ([]Park, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListEntryTypes(ctx context.Context) ([]EntryType, error)
	ListAgeGroups(ctx context.Context) ([]AgeGroup, error)
	ListPricingTypes(ctx context.Context) ([]PricingType, error)
	ListSeasons(ctx context.Context) ([]Season, error)
	ListCurrencies(ctx context.Context) ([]Currency, error)
}

// ProductStore persists products.
type ProductStore interface {
	// FindProduct returns the product matching the full key, treating a nil
	// category as IS NULL. Returns ErrNotFound if there is none.
	FindProduct(ctx context.Context, key ProductKey) (*Product, error)

	// InsertProduct inserts a product for key. If a concurrent insert won the
	// race the existing row is returned with created=false.
	InsertProduct(ctx context.Context, key ProductKey, name string) (product *Product, created bool, err error)

	// DimensionNames resolves the display names of the key's dimensions.
	DimensionNames(ctx context.Context, key ProductKey) (DimensionNames, error)

	// GetProduct returns a product by id or ErrNotFound.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// ListProducts returns products of a park, or all when parkID is 0.
	ListProducts(ctx context.Context, parkID int64) ([]Product, error)

	// DeleteProduct removes a product. Returns ErrProductInUse if prices reference it.
	DeleteProduct(ctx context.Context, id int64) error
}

// PriceStore persists prices.
type PriceStore interface {
	// FindPrices returns the prices matching every non-zero field of f.
	FindPrices(ctx context.Context, f PriceFilter) ([]Price, error)

	InsertPrice(ctx context.Context, p Price) (*Price, error)

	// UpdatePrice replaces amount, currency and tax behavior of an existing price.
	UpdatePrice(ctx context.Context, p Price) (*Price, error)

	DeletePrice(ctx context.Context, id int64) error

	GetPrice(ctx context.Context, id int64) (*Price, error)
}

// Store is everything the pricing service needs from persistence.
type Store interface {
	ReferenceSource
	ProductStore
	PriceStore
}
