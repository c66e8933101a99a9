package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Park is a national park. Reference data.
type Park struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category qualifies a product, e.g. "non-resident".
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EntryType qualifies a product, e.g. "vehicle entry" or "day visit".
type EntryType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AgeGroup is a named age band. Bands are non-overlapping by convention only.
type AgeGroup struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"`
}

// PricingType is the unit of sale ("per person", "per group").
type PricingType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Currency is stored by name; the name doubles as the ISO code (USD, TZS).
type Currency struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Code returns the normalized currency code.
func (c Currency) Code() CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(c.Name)))
}

// CurrencyCode is an ISO 4217 code.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	TZS CurrencyCode = "TZS"
)

// Valid reports whether the code is one of the two supported currencies.
func (c CurrencyCode) Valid() bool {
	return c == USD || c == TZS
}

// ParseCurrencyCode normalizes and validates a currency code.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	c := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", s)}
	}
	return c, nil
}

// TaxBehavior says whether a stored amount already includes tax.
type TaxBehavior string

const (
	TaxInclusive TaxBehavior = "inclusive"
	TaxExclusive TaxBehavior = "exclusive"
)

// Valid reports whether t is one of the two known behaviors.
func (t TaxBehavior) Valid() bool {
	return t == TaxInclusive || t == TaxExclusive
}

// ParseTaxBehavior accepts the textual form and the legacy integer codes.
// Codes 2 and 4 both mean exclusive; 1 and 3 mean inclusive.
func ParseTaxBehavior(s string) (TaxBehavior, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch TaxBehavior(v) {
	case TaxInclusive, TaxExclusive:
		return TaxBehavior(v), nil
	}
	code, err := strconv.Atoi(v)
	if err != nil {
		return "", &ValidationError{Field: "taxBehavior", Reason: fmt.Sprintf("unknown tax behavior %q", s)}
	}
	return TaxBehaviorFromCode(code)
}

// TaxBehaviorFromCode maps a legacy integer code.
func TaxBehaviorFromCode(code int) (TaxBehavior, error) {
	switch code {
	case 1, 3:
		return TaxInclusive, nil
	case 2, 4:
		return TaxExclusive, nil
	default:
		return "", &ValidationError{Field: "taxBehavior", Reason: fmt.Sprintf("unknown tax code %d", code)}
	}
}

// ProductKey is the identity tuple of a sellable combination.
// A nil CategoryID matches only products without a category.
type ProductKey struct {
	ParkID        int64  `json:"parkId"`
	CategoryID    *int64 `json:"categoryId,omitempty"`
	EntryTypeID   int64  `json:"entryTypeId"`
	AgeGroupID    int64  `json:"ageGroupId"`
	PricingTypeID int64  `json:"pricingTypeId"`
}

// Validate checks the required dimensions.
func (k ProductKey) Validate() error {
	switch {
	case k.ParkID <= 0:
		return &ValidationError{Field: "parkId", Reason: "is required"}
	case k.CategoryID != nil && *k.CategoryID <= 0:
		return &ValidationError{Field: "categoryId", Reason: "must be positive when set"}
	case k.EntryTypeID <= 0:
		return &ValidationError{Field: "entryTypeId", Reason: "is required"}
	case k.AgeGroupID <= 0:
		return &ValidationError{Field: "ageGroupId", Reason: "is required"}
	case k.PricingTypeID <= 0:
		return &ValidationError{Field: "pricingTypeId", Reason: "is required"}
	}
	return nil
}

// WithPark returns a copy of k scoped to another park.
func (k ProductKey) WithPark(parkID int64) ProductKey {
	k.ParkID = parkID
	return k
}

func (k ProductKey) String() string {
	cat := "none"
	if k.CategoryID != nil {
		cat = strconv.FormatInt(*k.CategoryID, 10)
	}
	return fmt.Sprintf("park=%d category=%s entryType=%d ageGroup=%d pricingType=%d",
		k.ParkID, cat, k.EntryTypeID, k.AgeGroupID, k.PricingTypeID)
}

// Product is the price-less identity of a ProductKey.
type Product struct {
	ID   int64      `json:"id"`
	Key  ProductKey `json:"key"`
	Name string     `json:"name"`
}

// Price belongs to one product and is scoped by season, currency and tax behavior.
type Price struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	SeasonID    int64           `json:"seasonId"`
	CurrencyID  int64           `json:"currencyId"`
	UnitAmount  decimal.Decimal `json:"unitAmount"`
	TaxBehavior TaxBehavior     `json:"taxBehavior"`
}

// PriceFilter selects price rows of one product. Zero fields are not filtered on.
type PriceFilter struct {
	ProductID   int64
	SeasonID    int64
	CurrencyID  int64
	TaxBehavior TaxBehavior
}

// PriceRequest is the input of ResolveOrCreatePrice.
type PriceRequest struct {
	ProductID   int64           `json:"productId"`
	SeasonID    int64           `json:"seasonId"`
	CurrencyID  int64           `json:"currencyId"`
	TaxBehavior TaxBehavior     `json:"taxBehavior"`
	UnitAmount  decimal.Decimal `json:"unitAmount"`
}

// Validate enforces the create-path preconditions.
func (r PriceRequest) Validate() error {
	switch {
	case r.ProductID <= 0:
		return &ValidationError{Field: "productId", Reason: "is required"}
	case r.SeasonID <= 0:
		return &ValidationError{Field: "seasonId", Reason: "is required"}
	case r.CurrencyID <= 0:
		return &ValidationError{Field: "currencyId", Reason: "is required"}
	case !r.TaxBehavior.Valid():
		return &ValidationError{Field: "taxBehavior", Reason: "must be inclusive or exclusive"}
	}
	return validateUnitAmount(r.UnitAmount)
}

// Stored amounts are NUMERIC(14, 2).
const (
	amountScale  = 2
	amountDigits = 14
)

var maxUnitAmount = decimal.New(1, amountDigits-amountScale)

// validateUnitAmount rejects amounts the price column would round or refuse.
func validateUnitAmount(d decimal.Decimal) error {
	switch {
	case !d.IsPositive():
		return &ValidationError{Field: "unitAmount", Reason: "must be greater than 0"}
	case !d.Equal(d.Round(amountScale)):
		return &ValidationError{Field: "unitAmount", Reason: fmt.Sprintf("must have at most %d decimal places", amountScale)}
	case d.GreaterThanOrEqual(maxUnitAmount):
		return &ValidationError{Field: "unitAmount", Reason: fmt.Sprintf("must be less than %s", maxUnitAmount)}
	}
	return nil
}

// PriceResult is the outcome of ResolveOrCreatePrice.
type PriceResult struct {
	Created bool   `json:"created"`
	Price   *Price `json:"price,omitempty"`
	Message string `json:"message,omitempty"`
}

// DimensionNames carries the display names used to derive a product name.
type DimensionNames struct {
	Park        string
	Category    string
	EntryType   string
	AgeGroup    string
	PricingType string
}

// ProductName derives the display name of a product: park, entry type,
// category (when set), age group and pricing type joined by " - ".
func (n DimensionNames) ProductName() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{n.Park, n.EntryType, n.Category, n.AgeGroup, n.PricingType} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

// dateLayout is the wire format of season and trip dates.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q", s)}
	}
	return t, nil
}
