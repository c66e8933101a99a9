package pricing

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("store unavailable")

// mockStore is an in-memory Store for testing.
type mockStore struct {
	mu sync.Mutex

	parks        []Park
	categories   []Category
	entryTypes   []EntryType
	ageGroups    []AgeGroup
	pricingTypes []PricingType
	seasons      []Season
	currencies   []Currency

	products map[int64]Product
	prices   map[int64]Price
	nextID   int64

	productInserts int
	priceInserts   int

	// failOn makes the named operation return errStoreDown.
	failOn map[string]bool
	// failPark makes product lookups for one park fail.
	failPark int64
}

func newMockStore() *mockStore {
	return &mockStore{
		parks: []Park{
			{ID: 1, Name: "Serengeti"},
			{ID: 2, Name: "Tarangire"},
			{ID: 3, Name: "Ruaha"},
		},
		categories: []Category{{ID: 1, Name: "Non-Resident"}},
		entryTypes: []EntryType{{ID: 1, Name: "Day Visit"}, {ID: 2, Name: "Vehicle Entry"}},
		ageGroups: []AgeGroup{
			{ID: 1, Name: "Adult", MinAge: 16, MaxAge: 120},
			{ID: 2, Name: "Child", MinAge: 5, MaxAge: 15},
		},
		pricingTypes: []PricingType{{ID: 1, Name: "Per Person"}},
		currencies:   []Currency{{ID: 1, Name: "USD"}, {ID: 2, Name: "TZS"}},
		products:     make(map[int64]Product),
		prices:       make(map[int64]Price),
		failOn:       make(map[string]bool),
	}
}

func (m *mockStore) fail(op string) error {
	if m.failOn[op] {
		return errStoreDown
	}
	return nil
}

func (m *mockStore) ListParks(ctx context.Context) ([]Park, error) {
	return m.parks, m.fail("parks")
}

func (m *mockStore) ListCategories(ctx context.Context) ([]Category, error) {
	return m.categories, m.fail("categories")
}

func (m *mockStore) ListEntryTypes(ctx context.Context) ([]EntryType, error) {
	return m.entryTypes, m.fail("entryTypes")
}

func (m *mockStore) ListAgeGroups(ctx context.Context) ([]AgeGroup, error) {
	return m.ageGroups, m.fail("ageGroups")
}

func (m *mockStore) ListPricingTypes(ctx context.Context) ([]PricingType, error) {
	return m.pricingTypes, m.fail("pricingTypes")
}

func (m *mockStore) ListSeasons(ctx context.Context) ([]Season, error) {
	return m.seasons, m.fail("seasons")
}

func (m *mockStore) ListCurrencies(ctx context.Context) ([]Currency, error) {
	return m.currencies, m.fail("currencies")
}

func sameCategory(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockStore) FindProduct(ctx context.Context, key ProductKey) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("findProduct"); err != nil {
		return nil, err
	}
	if m.failPark != 0 && key.ParkID == m.failPark {
		return nil, errStoreDown
	}
	for _, p := range m.products {
		k := p.Key
		if k.ParkID == key.ParkID && sameCategory(k.CategoryID, key.CategoryID) &&
			k.EntryTypeID == key.EntryTypeID && k.AgeGroupID == key.AgeGroupID &&
			k.PricingTypeID == key.PricingTypeID {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStore) InsertProduct(ctx context.Context, key ProductKey, name string) (*Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("insertProduct"); err != nil {
		return nil, false, err
	}
	m.productInserts++
	m.nextID++
	p := Product{ID: m.nextID, Key: key, Name: name}
	m.products[p.ID] = p
	return &p, true, nil
}

func lookupName[T any](rows []T, id int64, idOf func(T) int64, nameOf func(T) string) string {
	for _, r := range rows {
		if idOf(r) == id {
			return nameOf(r)
		}
	}
	return ""
}

func (m *mockStore) DimensionNames(ctx context.Context, key ProductKey) (DimensionNames, error) {
	if err := m.fail("dimensionNames"); err != nil {
		return DimensionNames{}, err
	}
	n := DimensionNames{
		Park:        lookupName(m.parks, key.ParkID, func(p Park) int64 { return p.ID }, func(p Park) string { return p.Name }),
		EntryType:   lookupName(m.entryTypes, key.EntryTypeID, func(e EntryType) int64 { return e.ID }, func(e EntryType) string { return e.Name }),
		AgeGroup:    lookupName(m.ageGroups, key.AgeGroupID, func(a AgeGroup) int64 { return a.ID }, func(a AgeGroup) string { return a.Name }),
		PricingType: lookupName(m.pricingTypes, key.PricingTypeID, func(p PricingType) int64 { return p.ID }, func(p PricingType) string { return p.Name }),
	}
	if key.CategoryID != nil {
		n.Category = lookupName(m.categories, *key.CategoryID, func(c Category) int64 { return c.ID }, func(c Category) string { return c.Name })
	}
	return n, nil
}

func (m *mockStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *mockStore) ListProducts(ctx context.Context, parkID int64) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Product{}
	for _, p := range m.products {
		if parkID == 0 || p.Key.ParkID == parkID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	for _, p := range m.prices {
		if p.ProductID == id {
			return ErrProductInUse
		}
	}
	delete(m.products, id)
	return nil
}

func (m *mockStore) FindPrices(ctx context.Context, f PriceFilter) ([]Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("findPrices"); err != nil {
		return nil, err
	}
	out := []Price{}
	for _, p := range m.prices {
		if f.ProductID != 0 && p.ProductID != f.ProductID {
			continue
		}
		if f.SeasonID != 0 && p.SeasonID != f.SeasonID {
			continue
		}
		if f.CurrencyID != 0 && p.CurrencyID != f.CurrencyID {
			continue
		}
		if f.TaxBehavior != "" && p.TaxBehavior != f.TaxBehavior {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) InsertPrice(ctx context.Context, p Price) (*Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("insertPrice"); err != nil {
		return nil, err
	}
	m.priceInserts++
	m.nextID++
	p.ID = m.nextID
	m.prices[p.ID] = p
	return &p, nil
}

func (m *mockStore) UpdatePrice(ctx context.Context, p Price) (*Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prices[p.ID]; !ok {
		return nil, ErrNotFound
	}
	m.prices[p.ID] = p
	return &p, nil
}

func (m *mockStore) DeletePrice(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prices[id]; !ok {
		return ErrNotFound
	}
	delete(m.prices, id)
	return nil
}

func (m *mockStore) GetPrice(ctx context.Context, id int64) (*Price, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// seedPrice inserts a product for key plus one price, bypassing the service.
func (m *mockStore) seedPrice(key ProductKey, seasonID, currencyID int64, tax TaxBehavior, amount int64) (Product, Price) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	prod := Product{ID: m.nextID, Key: key, Name: "seeded"}
	for _, p := range m.products {
		if p.Key.ParkID == key.ParkID && sameCategory(p.Key.CategoryID, key.CategoryID) &&
			p.Key.EntryTypeID == key.EntryTypeID && p.Key.AgeGroupID == key.AgeGroupID &&
			p.Key.PricingTypeID == key.PricingTypeID {
			prod = p
		}
	}
	m.products[prod.ID] = prod
	m.nextID++
	price := Price{
		ID:          m.nextID,
		ProductID:   prod.ID,
		SeasonID:    seasonID,
		CurrencyID:  currencyID,
		UnitAmount:  decimal.NewFromInt(amount),
		TaxBehavior: tax,
	}
	m.prices[price.ID] = price
	return prod, price
}
