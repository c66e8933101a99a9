package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeParkBatch() BatchRequest {
	return BatchRequest{
		ParkIDs:       []int64{1, 2, 3},
		EntryTypeIDs:  []int64{1},
		AgeGroupIDs:   []int64{1},
		PricingTypeID: 1,
		SeasonID:      1,
		CurrencyID:    1,
		TaxBehavior:   TaxInclusive,
		UnitAmount:    decimal.NewFromInt(100),
	}
}

func TestBatchCombinations(t *testing.T) {
	req := BatchRequest{
		ParkIDs:      []int64{1, 2},
		EntryTypeIDs: []int64{1, 2},
		AgeGroupIDs:  []int64{1, 2},
	}
	combos := req.Combinations()
	require.Len(t, combos, 8)
	assert.Equal(t, Combination{ParkID: 1, EntryTypeID: 1, AgeGroupID: 1}, combos[0])
	assert.Equal(t, Combination{ParkID: 1, EntryTypeID: 1, AgeGroupID: 2}, combos[1])
	assert.Equal(t, Combination{ParkID: 2, EntryTypeID: 2, AgeGroupID: 2}, combos[7])
}

// TestBatchConflictIsPerCombination verifies a duplicate on one park does
// not stop the other parks from being priced.
func TestBatchConflictIsPerCombination(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	store.seedPrice(adultDayVisit(2), 1, 1, TaxInclusive, 100)

	res, err := svc.CreateBatch(context.Background(), threeParkBatch())
	require.NoError(t, err)
	assert.False(t, res.Aborted())

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, int64(2), res.Conflicts[0].Combination.ParkID)
	assert.Contains(t, res.Conflicts[0].Message, "Tarangire")

	require.Len(t, res.Created, 2)
	assert.Equal(t, int64(1), res.Created[0].Combination.ParkID)
	assert.Equal(t, int64(3), res.Created[1].Combination.ParkID)
	assert.Equal(t, 2, store.priceInserts)
}

// TestBatchAbortsOnStoreError verifies the failing combination is named and
// earlier combinations stay committed.
func TestBatchAbortsOnStoreError(t *testing.T) {
	store := newMockStore()
	store.failPark = 2
	svc := NewService(store, nil)

	res, err := svc.CreateBatch(context.Background(), threeParkBatch())
	require.NoError(t, err)
	require.True(t, res.Aborted())

	var combo *ComboError
	require.True(t, errors.As(res.Err, &combo))
	assert.Equal(t, int64(2), combo.Combination.ParkID)
	assert.ErrorIs(t, res.Err, errStoreDown)

	require.Len(t, res.Created, 1)
	assert.Equal(t, int64(1), res.Created[0].Combination.ParkID)
	assert.Equal(t, 1, store.priceInserts)
}

// TestBatchOrphanProduct verifies a price failure leaves the product behind.
func TestBatchOrphanProduct(t *testing.T) {
	store := newMockStore()
	store.failOn["insertPrice"] = true
	svc := NewService(store, nil)

	res, err := svc.CreateBatch(context.Background(), threeParkBatch())
	require.NoError(t, err)
	require.True(t, res.Aborted())
	assert.Empty(t, res.Created)
	assert.Equal(t, 1, store.productInserts)
	assert.Len(t, store.products, 1)
}

func TestBatchValidation(t *testing.T) {
	svc := NewService(newMockStore(), nil)

	req := threeParkBatch()
	req.ParkIDs = nil
	_, err := svc.CreateBatch(context.Background(), req)
	assert.True(t, IsValidation(err))

	req = threeParkBatch()
	req.UnitAmount = decimal.Zero
	_, err = svc.CreateBatch(context.Background(), req)
	assert.True(t, IsValidation(err))
}
