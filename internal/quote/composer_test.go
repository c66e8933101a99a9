package quote

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/storage"
)

var errMirrorDown = errors.New("mirror unavailable")

// mockMirror records mirror calls and can be made to fail.
type mockMirror struct {
	mu      sync.Mutex
	items   map[string][]LineItem
	deleted []string
	fail    bool
}

func newMockMirror() *mockMirror {
	return &mockMirror{items: make(map[string][]LineItem)}
}

func (m *mockMirror) ListLineItems(ctx context.Context, quoteID string) ([]LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errMirrorDown
	}
	return append([]LineItem(nil), m.items[quoteID]...), nil
}

func (m *mockMirror) UpsertLineItem(ctx context.Context, quoteID string, item LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errMirrorDown
	}
	for i, it := range m.items[quoteID] {
		if it.ID == item.ID {
			m.items[quoteID][i] = item
			return nil
		}
	}
	m.items[quoteID] = append(m.items[quoteID], item)
	return nil
}

func (m *mockMirror) DeleteLineItem(ctx context.Context, quoteID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errMirrorDown
	}
	m.deleted = append(m.deleted, itemID)
	kept := m.items[quoteID][:0]
	for _, it := range m.items[quoteID] {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	m.items[quoteID] = kept
	return nil
}

func (m *mockMirror) setFail(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

// gatedMirror blocks upserts for one quote until release is closed.
type gatedMirror struct {
	*mockMirror
	gated   string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedMirror) UpsertLineItem(ctx context.Context, quoteID string, item LineItem) error {
	if quoteID == g.gated {
		close(g.entered)
		<-g.release
	}
	return g.mockMirror.UpsertLineItem(ctx, quoteID, item)
}

// brokenStore is a LocalStore whose writes always fail.
type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, quoteID string) (*Document, error) { return nil, nil }
func (brokenStore) Save(ctx context.Context, quoteID string, doc *Document) error {
	return errors.New("disk full")
}

func setupComposer(t *testing.T) (*Composer, *DocumentStore, *mockMirror) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	local := NewDocumentStore(fs)
	mirror := newMockMirror()
	return NewComposer(local, mirror, pricing.NewConverter(nil)), local, mirror
}

func usdItem(amount int64) LineItemInput {
	return LineItemInput{
		ProductID:   1,
		ProductName: "Serengeti - Day Visit - Adult - Per Person",
		Dimensions:  pricing.ProductKey{ParkID: 1, EntryTypeID: 1, AgeGroupID: 1, PricingTypeID: 1},
		SeasonID:    1,
		Amounts:     pricing.Amounts{USD: decimal.NewFromInt(amount)},
		TaxBehavior: pricing.TaxInclusive,
		Currency:    pricing.USD,
		Duration:    1,
		Pax:         1,
	}
}

func tzsItem(amount int64) LineItemInput {
	in := usdItem(0)
	in.Amounts = pricing.Amounts{TZS: decimal.NewFromInt(amount)}
	in.Currency = pricing.TZS
	return in
}

// TestTotalsPerCurrency verifies USD and TZS totals are kept apart.
func TestTotalsPerCurrency(t *testing.T) {
	c, _, _ := setupComposer(t)
	ctx := context.Background()

	_, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)
	_, err = c.AddLineItem(ctx, "q1", tzsItem(10000))
	require.NoError(t, err)
	_, err = c.AddLineItem(ctx, "q1", usdItem(30))
	require.NoError(t, err)

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, q.Items, 3)

	totals := q.Totals()
	require.Len(t, totals, 2)
	assert.Equal(t, pricing.USD, totals[0].Currency)
	assert.True(t, decimal.NewFromInt(80).Equal(totals[0].Amount))
	assert.Equal(t, 2, totals[0].Items)
	assert.Equal(t, pricing.TZS, totals[1].Currency)
	assert.True(t, decimal.NewFromInt(10000).Equal(totals[1].Amount))
}

func TestPriceAppliesTaxDurationAndPax(t *testing.T) {
	c, _, _ := setupComposer(t)

	in := usdItem(100)
	in.TaxBehavior = pricing.TaxExclusive
	in.Duration = 3
	in.Pax = 2

	item, err := c.Price(in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(118).Equal(item.UnitPrice))
	assert.True(t, decimal.NewFromInt(708).Equal(item.Total))

	// The TZS side is derived when only USD is stored.
	in.Currency = pricing.TZS
	item, err = c.Price(in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(295000).Equal(item.UnitPrice))
}

func TestPriceValidation(t *testing.T) {
	c, _, _ := setupComposer(t)

	in := usdItem(100)
	in.Pax = 0
	_, err := c.Price(in)
	assert.True(t, pricing.IsValidation(err))

	in = usdItem(0)
	_, err = c.Price(in)
	assert.True(t, pricing.IsValidation(err))

	_, err = c.AddLineItem(context.Background(), "../etc", usdItem(10))
	assert.True(t, pricing.IsValidation(err))
}

func TestSaveLineItemUpdatesInPlace(t *testing.T) {
	c, _, mirror := setupComposer(t)
	ctx := context.Background()

	first, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)
	second, err := c.AddLineItem(ctx, "q1", usdItem(30))
	require.NoError(t, err)

	edited, updated, err := c.SaveLineItem(ctx, "q1", first.ID, usdItem(70))
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, first.ID, edited.ID)

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.Equal(t, first.ID, q.Items[0].ID)
	assert.True(t, decimal.NewFromInt(70).Equal(q.Items[0].Total))
	assert.Equal(t, second.ID, q.Items[1].ID)

	// An unknown id appends.
	_, updated, err = c.SaveLineItem(ctx, "q1", "gone", usdItem(5))
	require.NoError(t, err)
	assert.False(t, updated)

	assert.Len(t, mirror.items["q1"], 3)
}

func TestRemoveLineItem(t *testing.T) {
	c, local, mirror := setupComposer(t)
	ctx := context.Background()

	a, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)
	b, err := c.AddLineItem(ctx, "q1", usdItem(30))
	require.NoError(t, err)

	require.NoError(t, c.RemoveLineItem(ctx, "q1", a.ID))

	stored, err := local.Load(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, b.ID, stored.Items[0].ID)
	assert.Empty(t, stored.Removed)
	assert.Equal(t, []string{a.ID}, mirror.deleted)

	err = c.RemoveLineItem(ctx, "q1", a.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

// TestMirrorFailureDoesNotBlock verifies the local write stands when the
// mirror is down.
func TestMirrorFailureDoesNotBlock(t *testing.T) {
	c, local, mirror := setupComposer(t)
	mirror.fail = true
	ctx := context.Background()

	item, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)

	stored, err := local.Load(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, item.ID, stored.Items[0].ID)

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, q.Items, 1)

	require.NoError(t, c.RemoveLineItem(ctx, "q1", item.ID))
}

// TestRemovedItemStaysRemoved verifies a line item removed while the mirror
// delete fails is not brought back by Load, and the delete is replayed later.
func TestRemovedItemStaysRemoved(t *testing.T) {
	c, local, mirror := setupComposer(t)
	ctx := context.Background()

	item, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)
	require.Len(t, mirror.items["q1"], 1)

	mirror.setFail(true)
	require.NoError(t, c.RemoveLineItem(ctx, "q1", item.ID))
	mirror.setFail(false)

	stored, err := local.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Equal(t, []string{item.ID}, stored.Removed)

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, q.Items)
	require.Len(t, mirror.items["q1"], 1)

	writes, err := c.SyncMirror(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 1, writes)
	assert.Equal(t, []string{item.ID}, mirror.deleted)
	assert.Empty(t, mirror.items["q1"])

	stored, err = local.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, stored.Removed)

	writes, err = c.SyncMirror(ctx, "q1")
	require.NoError(t, err)
	assert.Zero(t, writes)
}

// TestSyncMirrorKeepsFailedDeletes verifies a tombstone survives a failed
// replay.
func TestSyncMirrorKeepsFailedDeletes(t *testing.T) {
	c, local, mirror := setupComposer(t)
	ctx := context.Background()

	item, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)

	mirror.setFail(true)
	require.NoError(t, c.RemoveLineItem(ctx, "q1", item.ID))

	_, err = c.SyncMirror(ctx, "q1")
	require.ErrorIs(t, err, errMirrorDown)

	stored, err := local.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, stored.Removed)
}

func TestLoadAcceptsItemListDocument(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, fs.Put(ctx, "quotes/old.json", []byte(`[{"id":"a1","pax":2}]`), nil))

	doc, err := NewDocumentStore(fs).Load(ctx, "old")
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "a1", doc.Items[0].ID)
	assert.Empty(t, doc.Removed)

	doc, err = NewDocumentStore(fs).Load(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, doc.Items)
	assert.Empty(t, doc.Items)
}

// TestSlowMirrorOnlyStallsItsQuote verifies a mirror call in flight on one
// quote does not hold up work on another.
func TestSlowMirrorOnlyStallsItsQuote(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	mirror := &gatedMirror{
		mockMirror: newMockMirror(),
		gated:      "slow",
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	c := NewComposer(NewDocumentStore(fs), mirror, pricing.NewConverter(nil))
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		_, err := c.AddLineItem(ctx, "slow", usdItem(50))
		slowDone <- err
	}()
	<-mirror.entered

	fastDone := make(chan error, 1)
	go func() {
		_, err := c.AddLineItem(ctx, "fast", usdItem(30))
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("quote fast waited on the mirror call of quote slow")
	}

	close(mirror.release)
	require.NoError(t, <-slowDone)
	assert.Zero(t, c.locks.len())
}

func TestLocalFailureSurfaces(t *testing.T) {
	mirror := newMockMirror()
	c := NewComposer(brokenStore{}, mirror, pricing.NewConverter(nil))

	_, err := c.AddLineItem(context.Background(), "q1", usdItem(50))
	require.Error(t, err)
	assert.Empty(t, mirror.items["q1"])
}

// TestLoadReconcilesFromMirror verifies the mirror adds missing items and
// never overwrites local ones.
func TestLoadReconcilesFromMirror(t *testing.T) {
	c, local, mirror := setupComposer(t)
	ctx := context.Background()

	mine, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)

	stale := *mine
	stale.Total = decimal.NewFromInt(999)
	remoteOnly := *mine
	remoteOnly.ID = "remote-1"
	remoteOnly.Total = decimal.NewFromInt(20)
	mirror.items["q1"] = []LineItem{stale, remoteOnly}

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.True(t, decimal.NewFromInt(50).Equal(q.Items[0].Total))
	assert.Equal(t, "remote-1", q.Items[1].ID)

	stored, err := local.Load(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)

	ids, err := local.ListQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, ids)
}

// TestSyncMirrorPushesMissedWrites verifies items whose mirror write failed
// are pushed once the mirror is back, and current ones are skipped.
func TestSyncMirrorPushesMissedWrites(t *testing.T) {
	c, _, mirror := setupComposer(t)
	ctx := context.Background()

	first, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)

	mirror.fail = true
	_, err = c.AddLineItem(ctx, "q1", tzsItem(100000))
	require.NoError(t, err)

	_, err = c.SyncMirror(ctx, "q1")
	require.ErrorIs(t, err, errMirrorDown)

	mirror.fail = false
	pushed, err := c.SyncMirror(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 1, pushed)
	require.Len(t, mirror.items["q1"], 2)
	assert.Equal(t, first.ID, mirror.items["q1"][0].ID)

	pushed, err = c.SyncMirror(ctx, "q1")
	require.NoError(t, err)
	assert.Zero(t, pushed)
}

func TestSyncMirrorWithoutMirror(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	c := NewComposer(NewDocumentStore(fs), nil, pricing.NewConverter(nil))

	pushed, err := c.SyncMirror(context.Background(), "q1")
	require.NoError(t, err)
	assert.Zero(t, pushed)

	_, err = c.SyncMirror(context.Background(), "../etc")
	assert.True(t, pricing.IsValidation(err))
}

func TestExport(t *testing.T) {
	c, _, _ := setupComposer(t)
	ctx := context.Background()

	_, err := c.AddLineItem(ctx, "q1", usdItem(50))
	require.NoError(t, err)
	_, err = c.AddLineItem(ctx, "q1", tzsItem(10000))
	require.NoError(t, err)

	q, err := c.Load(ctx, "q1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(q, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Quote")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)
	assert.Equal(t, "q1", rows[0][1])
	assert.Equal(t, "Product", rows[2][0])
	assert.Equal(t, "USD", rows[3][2])
	assert.Contains(t, rows[4][0], "Total USD")
	assert.Equal(t, "TZS", rows[6][2])
}

func TestFormatAmount(t *testing.T) {
	assert.Contains(t, FormatAmount(pricing.USD, decimal.NewFromInt(1180)), "1,180")
	assert.Contains(t, FormatAmount(pricing.TZS, decimal.NewFromInt(295000)), "295,000")
}
