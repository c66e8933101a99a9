package quote

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/pricing"
)

// ErrItemNotFound is returned when removing a line item that is not in the quote.
var ErrItemNotFound = errors.New("line item not found")

// LocalStore is the authoritative store of a quote's line items.
// Save always receives the full document.
type LocalStore interface {
	Load(ctx context.Context, quoteID string) (*Document, error)
	Save(ctx context.Context, quoteID string, doc *Document) error
}

// Mirror is the backing offer record. Every call is best effort.
type Mirror interface {
	ListLineItems(ctx context.Context, quoteID string) ([]LineItem, error)
	UpsertLineItem(ctx context.Context, quoteID string, item LineItem) error
	DeleteLineItem(ctx context.Context, quoteID, itemID string) error
}

var quoteIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

func checkQuoteID(id string) error {
	if !quoteIDPattern.MatchString(id) {
		return &pricing.ValidationError{Field: "quoteId", Reason: "must be 1-64 letters, digits, '-' or '_'"}
	}
	return nil
}

// Composer accumulates line items into quotes.
type Composer struct {
	local         LocalStore
	mirror        Mirror
	converter     *pricing.Converter
	mirrorTimeout time.Duration
	logger        *zerolog.Logger

	// locks serialize work per quote so concurrent requests cannot drop
	// each other's items between load and save.
	locks *quoteLocks

	now   func() time.Time
	newID func() string
}

// NewComposer creates a composer. mirror may be nil.
func NewComposer(local LocalStore, mirror Mirror, converter *pricing.Converter) *Composer {
	logger := log.With().Str("component", "quote").Logger()
	return &Composer{
		local:         local,
		mirror:        mirror,
		converter:     converter,
		mirrorTimeout: 5 * time.Second,
		logger:        &logger,
		locks:         newQuoteLocks(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithMirrorTimeout bounds each mirror call.
func (c *Composer) WithMirrorTimeout(d time.Duration) *Composer {
	c.mirrorTimeout = d
	return c
}

// Price builds a line item from input: the missing currency is derived, tax
// is applied, and total = unit price with tax × duration × pax.
func (c *Composer) Price(in LineItemInput) (LineItem, error) {
	if err := in.Validate(); err != nil {
		return LineItem{}, err
	}

	shown := c.converter.DisplayPrice(pricing.PricedItem{Amounts: in.Amounts, TaxBehavior: in.TaxBehavior}, in.Currency)
	total := shown.Amount.
		Mul(decimal.NewFromInt(int64(in.Duration))).
		Mul(decimal.NewFromInt(int64(in.Pax)))

	return LineItem{
		Dimensions:  in.Dimensions,
		SeasonID:    in.SeasonID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		PriceID:     in.PriceID,
		TaxBehavior: in.TaxBehavior,
		Currency:    in.Currency,
		UnitPrice:   shown.Amount,
		Duration:    in.Duration,
		Pax:         in.Pax,
		Total:       total,
		UpdatedAt:   c.now().UTC(),
	}, nil
}

// Load reads the quote from the local store, then adds any line items the
// mirror has that the local copy lacks. Local items are never overwritten and
// items removed locally are not brought back. A mirror failure is logged and the local copy is returned as is.
func (c *Composer) Load(ctx context.Context, quoteID string) (*Quote, error) {
	if err := checkQuoteID(quoteID); err != nil {
		return nil, err
	}

	unlock := c.locks.lock(quoteID)
	defer unlock()

	q, err := c.loadLocal(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if c.mirror == nil {
		return q, nil
	}

	mctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	defer cancel()
	remote, err := c.mirror.ListLineItems(mctx, quoteID)
	if err != nil {
		c.logger.Warn().Err(err).Str("quote_id", quoteID).Msg("Mirror read failed, using local quote")
		return q, nil
	}

	added := 0
	for _, it := range remote {
		if q.indexOf(it.ID) < 0 && !q.isRemoved(it.ID) {
			q.Items = append(q.Items, it)
			added++
		}
	}
	if added > 0 {
		c.logger.Info().Str("quote_id", quoteID).Int("added", added).Msg("Reconciled line items from mirror")
		if err := c.saveLocal(ctx, q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// AddLineItem prices input and appends it to the quote.
func (c *Composer) AddLineItem(ctx context.Context, quoteID string, in LineItemInput) (*LineItem, error) {
	item, _, err := c.SaveLineItem(ctx, quoteID, "", in)
	return item, err
}

// SaveLineItem updates the line item with itemID in place, or appends a new
// one when none matches. The bool reports whether an existing item was updated.
func (c *Composer) SaveLineItem(ctx context.Context, quoteID, itemID string, in LineItemInput) (*LineItem, bool, error) {
	if err := checkQuoteID(quoteID); err != nil {
		return nil, false, err
	}
	item, err := c.Price(in)
	if err != nil {
		return nil, false, err
	}

	unlock := c.locks.lock(quoteID)
	defer unlock()

	q, err := c.loadLocal(ctx, quoteID)
	if err != nil {
		return nil, false, err
	}

	updated := false
	if i := q.indexOf(itemID); itemID != "" && i >= 0 {
		item.ID = itemID
		q.Items[i] = item
		updated = true
	} else {
		item.ID = c.newID()
		q.Items = append(q.Items, item)
	}

	if err := c.saveLocal(ctx, q); err != nil {
		return nil, false, err
	}

	c.mirrorCall(ctx, quoteID, "upsert", func(ctx context.Context) error {
		return c.mirror.UpsertLineItem(ctx, quoteID, item)
	})

	return &item, updated, nil
}

// RemoveLineItem drops a line item and records a tombstone for it locally,
// then deletes it from the mirror. The tombstone is cleared once the mirror
// delete succeeds; until then SyncMirror retries it.
func (c *Composer) RemoveLineItem(ctx context.Context, quoteID, itemID string) error {
	if err := checkQuoteID(quoteID); err != nil {
		return err
	}

	unlock := c.locks.lock(quoteID)
	defer unlock()

	q, err := c.loadLocal(ctx, quoteID)
	if err != nil {
		return err
	}
	i := q.indexOf(itemID)
	if i < 0 {
		return fmt.Errorf("%s: %w", itemID, ErrItemNotFound)
	}
	q.Items = append(q.Items[:i], q.Items[i+1:]...)
	if c.mirror != nil {
		q.removed = append(q.removed, itemID)
	}

	if err := c.saveLocal(ctx, q); err != nil {
		return err
	}

	deleted := c.mirrorCall(ctx, quoteID, "delete", func(ctx context.Context) error {
		return c.mirror.DeleteLineItem(ctx, quoteID, itemID)
	})
	if deleted {
		q.forget(itemID)
		// Already logged. A leftover tombstone only costs SyncMirror a retry.
		_ = c.saveLocal(ctx, q)
	}
	return nil
}

func (c *Composer) loadLocal(ctx context.Context, quoteID string) (*Quote, error) {
	doc, err := c.local.Load(ctx, quoteID)
	if err != nil {
		c.logger.Error().Err(err).Str("quote_id", quoteID).Msg("Failed to load quote")
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	q := &Quote{ID: quoteID, Items: []LineItem{}}
	if doc != nil {
		if doc.Items != nil {
			q.Items = doc.Items
		}
		q.removed = doc.Removed
	}
	return q, nil
}

func (c *Composer) saveLocal(ctx context.Context, q *Quote) error {
	if err := c.local.Save(ctx, q.ID, &Document{Items: q.Items, Removed: q.removed}); err != nil {
		c.logger.Error().Err(err).Str("quote_id", q.ID).Msg("Failed to save quote")
		return fmt.Errorf("save quote %s: %w", q.ID, err)
	}
	return nil
}

// mirrorCall runs fn against the mirror. Failures are logged only; the local
// write has already succeeded. It reports whether the call went through.
func (c *Composer) mirrorCall(ctx context.Context, quoteID, op string, fn func(ctx context.Context) error) bool {
	if c.mirror == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		c.logger.Warn().Err(err).Str("quote_id", quoteID).Str("op", op).Msg("Mirror write failed")
		return false
	}
	return true
}

// SyncMirror retries pending mirror deletes, then pushes local line items the
// mirror lacks, or holds an older copy of, back to the mirror. Items only the
// mirror has are left alone; Load pulls those in. It returns the number of
// mirror writes made.
func (c *Composer) SyncMirror(ctx context.Context, quoteID string) (int, error) {
	if err := checkQuoteID(quoteID); err != nil {
		return 0, err
	}
	if c.mirror == nil {
		return 0, nil
	}

	unlock := c.locks.lock(quoteID)
	defer unlock()

	q, err := c.loadLocal(ctx, quoteID)
	if err != nil {
		return 0, err
	}

	pushed, err := c.retryDeletes(ctx, q)
	if err != nil {
		return pushed, err
	}

	mctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	remote, err := c.mirror.ListLineItems(mctx, quoteID)
	cancel()
	if err != nil {
		return pushed, fmt.Errorf("list mirror items of %s: %w", quoteID, err)
	}
	seen := make(map[string]time.Time, len(remote))
	for _, it := range remote {
		seen[it.ID] = it.UpdatedAt
	}

	for _, it := range q.Items {
		if at, ok := seen[it.ID]; ok && !it.UpdatedAt.After(at) {
			continue
		}
		mctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
		err := c.mirror.UpsertLineItem(mctx, quoteID, it)
		cancel()
		if err != nil {
			return pushed, fmt.Errorf("push item %s of %s: %w", it.ID, quoteID, err)
		}
		pushed++
	}
	if pushed > 0 {
		c.logger.Info().Str("quote_id", quoteID).Int("pushed", pushed).Msg("Resynced line items to mirror")
	}
	return pushed, nil
}

// retryDeletes replays the quote's tombstones against the mirror and clears
// the ones that succeed.
func (c *Composer) retryDeletes(ctx context.Context, q *Quote) (int, error) {
	if len(q.removed) == 0 {
		return 0, nil
	}
	var failed error
	pending := append([]string(nil), q.removed...)
	cleared := 0
	for _, id := range pending {
		mctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
		err := c.mirror.DeleteLineItem(mctx, q.ID, id)
		cancel()
		if err != nil {
			failed = fmt.Errorf("delete item %s of %s: %w", id, q.ID, err)
			break
		}
		q.forget(id)
		cleared++
	}
	if cleared > 0 {
		if err := c.saveLocal(ctx, q); err != nil {
			return cleared, err
		}
		c.logger.Info().Str("quote_id", q.ID).Int("deleted", cleared).Msg("Replayed line item deletes to mirror")
	}
	return cleared, failed
}
