// Package quote composes offers out of priced line items. The local store is
// authoritative; a backing mirror is written and read on a best-effort basis.
package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/pricing"
)

// LineItem is one (product, price, duration, pax) entry of a quote.
type LineItem struct {
	// ID is a synthetic id assigned on first save; edits match on it.
	ID string `json:"id"`

	// Dimensions re-populate the edit form.
	Dimensions pricing.ProductKey `json:"dimensions"`
	SeasonID   int64              `json:"seasonId"`

	ProductID   int64                `json:"productId"`
	ProductName string               `json:"productName"`
	PriceID     int64                `json:"priceId,omitempty"`
	TaxBehavior pricing.TaxBehavior  `json:"taxBehavior"`
	Currency    pricing.CurrencyCode `json:"currency"`

	// UnitPrice is the tax-inclusive unit amount in Currency.
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Duration  int             `json:"duration"`
	Pax       int             `json:"pax"`
	Total     decimal.Decimal `json:"total"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// LineItemInput is what the offer form submits.
type LineItemInput struct {
	Dimensions  pricing.ProductKey   `json:"dimensions"`
	SeasonID    int64                `json:"seasonId"`
	ProductID   int64                `json:"productId"`
	ProductName string               `json:"productName"`
	PriceID     int64                `json:"priceId,omitempty"`
	Amounts     pricing.Amounts      `json:"amounts"`
	TaxBehavior pricing.TaxBehavior  `json:"taxBehavior"`
	Currency    pricing.CurrencyCode `json:"currency"`
	Duration    int                  `json:"duration"`
	Pax         int                  `json:"pax"`
}

// Validate checks the input before it is priced.
func (in LineItemInput) Validate() error {
	switch {
	case in.ProductID <= 0:
		return &pricing.ValidationError{Field: "productId", Reason: "is required"}
	case !in.Currency.Valid():
		return &pricing.ValidationError{Field: "currency", Reason: "must be USD or TZS"}
	case !in.TaxBehavior.Valid():
		return &pricing.ValidationError{Field: "taxBehavior", Reason: "must be inclusive or exclusive"}
	case in.Duration < 1:
		return &pricing.ValidationError{Field: "duration", Reason: "must be at least 1"}
	case in.Pax < 1:
		return &pricing.ValidationError{Field: "pax", Reason: "must be at least 1"}
	case in.Amounts.USD.IsZero() && in.Amounts.TZS.IsZero():
		return &pricing.ValidationError{Field: "amounts", Reason: "no price in either currency"}
	case in.Amounts.USD.IsNegative() || in.Amounts.TZS.IsNegative():
		return &pricing.ValidationError{Field: "amounts", Reason: "must not be negative"}
	}
	return nil
}

// Total is the sum of one currency's line items.
type Total struct {
	Currency pricing.CurrencyCode `json:"currency"`
	Amount   decimal.Decimal      `json:"amount"`
	Items    int                  `json:"items"`
}

// Quote is an ordered list of line items. Insertion order is display order.
type Quote struct {
	ID    string     `json:"id"`
	Items []LineItem `json:"items"`

	// removed are tombstones: ids deleted locally whose mirror delete is
	// not yet confirmed.
	removed []string
}

// Document is the locally persisted form of a quote.
type Document struct {
	Items   []LineItem `json:"items"`
	Removed []string   `json:"removed,omitempty"`
}

// Totals sums line items per currency, USD first. Currencies are never
// summed together.
func (q *Quote) Totals() []Total {
	sums := make(map[pricing.CurrencyCode]*Total)
	for _, it := range q.Items {
		t, ok := sums[it.Currency]
		if !ok {
			t = &Total{Currency: it.Currency, Amount: decimal.Zero}
			sums[it.Currency] = t
		}
		t.Amount = t.Amount.Add(it.Total)
		t.Items++
	}

	out := make([]Total, 0, len(sums))
	for _, c := range []pricing.CurrencyCode{pricing.USD, pricing.TZS} {
		if t, ok := sums[c]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// ByCurrency groups line items per currency, keeping insertion order.
func (q *Quote) ByCurrency() map[pricing.CurrencyCode][]LineItem {
	out := make(map[pricing.CurrencyCode][]LineItem)
	for _, it := range q.Items {
		out[it.Currency] = append(out[it.Currency], it)
	}
	return out
}

func (q *Quote) isRemoved(id string) bool {
	for _, r := range q.removed {
		if r == id {
			return true
		}
	}
	return false
}

func (q *Quote) forget(id string) {
	kept := q.removed[:0]
	for _, r := range q.removed {
		if r != id {
			kept = append(kept, r)
		}
	}
	q.removed = kept
}

func (q *Quote) indexOf(id string) int {
	for i, it := range q.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
