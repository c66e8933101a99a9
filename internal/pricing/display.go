package pricing

import (
	"github.com/shopspring/decimal"
)

// Amounts carries a unit amount in both currencies. A zero amount means the
// price is not set in that currency, never that it is free.
type Amounts struct {
	USD decimal.Decimal `json:"usd"`
	TZS decimal.Decimal `json:"tzs"`
}

// In returns the amount for a currency.
func (a Amounts) In(c CurrencyCode) decimal.Decimal {
	if c == TZS {
		return a.TZS
	}
	return a.USD
}

// PricedItem is anything displayable: an amount pair plus its tax behavior.
type PricedItem struct {
	Amounts     Amounts     `json:"amounts"`
	TaxBehavior TaxBehavior `json:"taxBehavior"`
}

// DisplayedPrice is the result of DisplayPrice.
type DisplayedPrice struct {
	USD       decimal.Decimal `json:"usd"`
	TZS       decimal.Decimal `json:"tzs"`
	Preferred CurrencyCode    `json:"preferred"`
	Amount    decimal.Decimal `json:"amount"`
}

// Converter derives missing currencies and applies tax.
type Converter struct {
	rate    decimal.Decimal
	taxRate decimal.Decimal
}

// NewConverter creates a converter from the pricing configuration.
func NewConverter(cfg *Config) *Converter {
	if cfg == nil {
		cfg = Defaults()
	}
	return &Converter{rate: cfg.USDToTZSRate, taxRate: cfg.TaxRate}
}

// Rate returns the USD to TZS exchange rate.
func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// Convert fills in whichever side of a is the zero sentinel. When both sides
// are set they are returned unmodified; when neither is, a is returned as is.
func (c *Converter) Convert(a Amounts) Amounts {
	switch {
	case !a.USD.IsZero() && !a.TZS.IsZero():
		return a
	case !a.USD.IsZero():
		return Amounts{USD: a.USD, TZS: a.USD.Mul(c.rate)}
	case !a.TZS.IsZero():
		return Amounts{USD: a.TZS.Div(c.rate), TZS: a.TZS}
	default:
		return a
	}
}

// ApplyTax returns amount as shown tax-inclusive.
func (c *Converter) ApplyTax(amount decimal.Decimal, tax TaxBehavior) decimal.Decimal {
	if tax != TaxExclusive {
		return amount
	}
	return amount.Mul(decimal.NewFromInt(1).Add(c.taxRate))
}

// DisplayPrice derives the missing currency and applies tax to both sides.
func (c *Converter) DisplayPrice(item PricedItem, preferred CurrencyCode) DisplayedPrice {
	a := c.Convert(item.Amounts)
	out := DisplayedPrice{
		USD:       c.ApplyTax(a.USD, item.TaxBehavior),
		TZS:       c.ApplyTax(a.TZS, item.TaxBehavior),
		Preferred: preferred,
	}
	if preferred == TZS {
		out.Amount = out.TZS
	} else {
		out.Preferred = USD
		out.Amount = out.USD
	}
	return out
}

// AmountsFromPrices assembles an amount pair from price rows of one product,
// keyed by currency id. Rows in other currencies are ignored.
func AmountsFromPrices(prices []Price, currencies map[int64]CurrencyCode) Amounts {
	var a Amounts
	for _, p := range prices {
		switch currencies[p.CurrencyID] {
		case USD:
			a.USD = p.UnitAmount
		case TZS:
			a.TZS = p.UnitAmount
		}
	}
	return a
}
