package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/quote"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("parks"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, Migrate(connStr, Up))

	pool, err := NewPool(ctx, PoolConfig{URL: connStr, MaxConns: 10, SlowQuery: time.Second})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool, connStr
}

// refIDs looks up seeded reference rows by name.
type refIDs struct {
	serengeti, tarangire int64
	nonResident          int64
	dayVisit             int64
	adult                int64
	perPerson            int64
	usd, tzs             int64
	highSeason           int64
}

func loadRefIDs(t *testing.T, ctx context.Context, repo *Repository) refIDs {
	t.Helper()
	var ids refIDs

	parks, err := repo.ListParks(ctx)
	require.NoError(t, err)
	for _, p := range parks {
		switch p.Name {
		case "Serengeti National Park":
			ids.serengeti = p.ID
		case "Tarangire National Park":
			ids.tarangire = p.ID
		}
	}
	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == "Non-Resident" {
			ids.nonResident = c.ID
		}
	}
	entries, err := repo.ListEntryTypes(ctx)
	require.NoError(t, err)
	for _, e := range entries {
		if e.Name == "Day Visit" {
			ids.dayVisit = e.ID
		}
	}
	ages, err := repo.ListAgeGroups(ctx)
	require.NoError(t, err)
	for _, a := range ages {
		if a.Name == "Adult" {
			ids.adult = a.ID
		}
	}
	types, err := repo.ListPricingTypes(ctx)
	require.NoError(t, err)
	for _, pt := range types {
		if pt.Name == "Per Person" {
			ids.perPerson = pt.ID
		}
	}
	curs, err := repo.ListCurrencies(ctx)
	require.NoError(t, err)
	for _, c := range curs {
		switch c.Code() {
		case pricing.USD:
			ids.usd = c.ID
		case pricing.TZS:
			ids.tzs = c.ID
		}
	}

	season, err := repo.CreateSeason(ctx, pricing.Season{
		Name:      "High Season",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	ids.highSeason = season.ID
	return ids
}

func TestRepositoryPricingFlow(t *testing.T) {
	pool, _ := setupTestDatabase(t)
	ctx := context.Background()
	repo := NewRepository(pool)
	ids := loadRefIDs(t, ctx, repo)
	svc := pricing.NewService(repo, nil)

	t.Run("reference data", func(t *testing.T) {
		data := svc.LoadReferenceData(ctx)
		assert.Empty(t, data.Failures)
		assert.Len(t, data.Parks, 5)
		require.Len(t, data.AgeGroups, 3)
		assert.Equal(t, "Infant", data.AgeGroups[0].Name)
		assert.Len(t, data.Seasons, 1)
	})

	key := pricing.ProductKey{
		ParkID:        ids.serengeti,
		EntryTypeID:   ids.dayVisit,
		AgeGroupID:    ids.adult,
		PricingTypeID: ids.perPerson,
	}

	var productID int64
	t.Run("product is resolved once", func(t *testing.T) {
		first, created, err := svc.ResolveOrCreateProduct(ctx, key)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Serengeti National Park - Day Visit - Adult - Per Person", first.Name)

		second, created, err := svc.ResolveOrCreateProduct(ctx, key)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		productID = first.ID

		withCategory := key
		withCategory.CategoryID = &ids.nonResident
		other, created, err := svc.ResolveOrCreateProduct(ctx, withCategory)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, other.ID)
	})

	t.Run("unknown dimension is a validation error", func(t *testing.T) {
		bad := key
		bad.EntryTypeID = 999999
		_, _, err := svc.ResolveOrCreateProduct(ctx, bad)
		assert.True(t, pricing.IsValidation(err))
	})

	t.Run("duplicate price is blocked", func(t *testing.T) {
		res, err := svc.ResolveOrCreatePrice(ctx, pricing.PriceRequest{
			ProductID: productID, SeasonID: ids.highSeason, CurrencyID: ids.usd,
			TaxBehavior: pricing.TaxExclusive, UnitAmount: decimal.RequireFromString("82.50"),
		})
		require.NoError(t, err)
		require.True(t, res.Created)
		assert.Equal(t, "82.5", res.Price.UnitAmount.String())

		res, err = svc.ResolveOrCreatePrice(ctx, pricing.PriceRequest{
			ProductID: productID, SeasonID: ids.highSeason, CurrencyID: ids.tzs,
			TaxBehavior: pricing.TaxExclusive, UnitAmount: decimal.NewFromInt(200000),
		})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Contains(t, res.Message, "Serengeti National Park")
	})

	t.Run("amount the column would round is a validation error", func(t *testing.T) {
		for _, amount := range []string{"0.001", "10000000000000"} {
			_, err := repo.InsertPrice(ctx, pricing.Price{
				ProductID: productID, SeasonID: ids.highSeason, CurrencyID: ids.tzs,
				TaxBehavior: pricing.TaxInclusive, UnitAmount: decimal.RequireFromString(amount),
			})
			var verr *pricing.ValidationError
			require.ErrorAs(t, err, &verr, amount)
			assert.Equal(t, "unitAmount", verr.Field)
		}
	})

	t.Run("product with prices cannot be deleted", func(t *testing.T) {
		err := svc.DeleteProduct(ctx, productID)
		assert.ErrorIs(t, err, pricing.ErrProductInUse)
	})

	t.Run("lookup derives TZS and applies tax", func(t *testing.T) {
		got, err := svc.LookupPrices(ctx, pricing.LookupRequest{
			Key:       key,
			TripStart: time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
			TripEnd:   time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
			Preferred: pricing.TZS,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, decimal.RequireFromString("97.35").Equal(got[0].Display.USD))
		assert.True(t, decimal.NewFromInt(243375).Equal(got[0].Display.TZS))
	})

	t.Run("batch reports conflicts per park", func(t *testing.T) {
		res, err := svc.CreateBatch(ctx, pricing.BatchRequest{
			ParkIDs:       []int64{ids.serengeti, ids.tarangire},
			EntryTypeIDs:  []int64{ids.dayVisit},
			AgeGroupIDs:   []int64{ids.adult},
			PricingTypeID: ids.perPerson,
			SeasonID:      ids.highSeason,
			CurrencyID:    ids.usd,
			TaxBehavior:   pricing.TaxExclusive,
			UnitAmount:    decimal.NewFromInt(60),
		})
		require.NoError(t, err)
		require.False(t, res.Aborted())
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, ids.serengeti, res.Conflicts[0].Combination.ParkID)
		require.Len(t, res.Created, 1)
		assert.Equal(t, ids.tarangire, res.Created[0].Combination.ParkID)
	})
}

// TestInsertProductRace verifies concurrent inserts of one tuple converge on
// a single row.
func TestInsertProductRace(t *testing.T) {
	pool, _ := setupTestDatabase(t)
	ctx := context.Background()
	repo := NewRepository(pool)
	ids := loadRefIDs(t, ctx, repo)

	key := pricing.ProductKey{
		ParkID:        ids.tarangire,
		EntryTypeID:   ids.dayVisit,
		AgeGroupID:    ids.adult,
		PricingTypeID: ids.perPerson,
	}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		seen    = make(map[int64]bool)
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, c, err := repo.InsertProduct(ctx, key, "race")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[p.ID] = true
			if c {
				created++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1)
	assert.Equal(t, 1, created)
}

func TestOfferMirror(t *testing.T) {
	pool, _ := setupTestDatabase(t)
	ctx := context.Background()
	repo := NewRepository(pool)

	item := quote.LineItem{
		ID:          "item-1",
		ProductID:   1,
		ProductName: "Serengeti - Day Visit",
		Currency:    pricing.USD,
		TaxBehavior: pricing.TaxInclusive,
		UnitPrice:   decimal.NewFromInt(50),
		Duration:    2,
		Pax:         3,
		Total:       decimal.NewFromInt(300),
	}
	require.NoError(t, repo.UpsertLineItem(ctx, "offer-1", item))

	item.Pax = 4
	item.Total = decimal.NewFromInt(400)
	require.NoError(t, repo.UpsertLineItem(ctx, "offer-1", item))

	items, err := repo.ListLineItems(ctx, "offer-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Pax)
	assert.True(t, decimal.NewFromInt(400).Equal(items[0].Total))

	require.NoError(t, repo.DeleteLineItem(ctx, "offer-1", "item-1"))
	require.NoError(t, repo.DeleteLineItem(ctx, "offer-1", "item-1"))

	items, err = repo.ListLineItems(ctx, "offer-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMigrateDown(t *testing.T) {
	pool, connStr := setupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, Migrate(connStr, Down))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM currency`).Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, Migrate(connStr, Up))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM currency`).Scan(&n))
	assert.Equal(t, 2, n)
}
