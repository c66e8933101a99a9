package quote

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/menye94/park-pricing/internal/pricing"
)

const exportSheet = "Quote"

var exportHeader = []string{"Product", "Tax", "Currency", "Unit price", "Duration", "Pax", "Total"}

// FormatAmount renders an amount with its ISO code and grouped digits at
// the currency's standard scale, e.g. "USD 1,180.00".
func FormatAmount(code pricing.CurrencyCode, amount decimal.Decimal) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return string(code) + " " + amount.StringFixed(2)
	}
	scale, _ := currency.Standard.Rounding(unit)
	f, _ := amount.Round(int32(scale)).Float64()
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s %v", unit, number.Decimal(f, number.Scale(scale)))
}

// Export writes the quote as an XLSX workbook: one section per currency,
// each followed by its own total row.
func Export(q *Quote, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	setRow := func(values ...any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	boldRow := func() error {
		first, _ := excelize.CoordinatesToCellName(1, row-1)
		last, _ := excelize.CoordinatesToCellName(len(exportHeader), row-1)
		return f.SetCellStyle(exportSheet, first, last, bold)
	}

	if err := setRow("Quote", q.ID); err != nil {
		return err
	}
	row++

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := setRow(header...); err != nil {
		return err
	}
	if err := boldRow(); err != nil {
		return err
	}

	groups := q.ByCurrency()
	for _, total := range q.Totals() {
		for _, it := range groups[total.Currency] {
			unit, _ := it.UnitPrice.Float64()
			sum, _ := it.Total.Float64()
			if err := setRow(it.ProductName, string(it.TaxBehavior), string(it.Currency), unit, it.Duration, it.Pax, sum); err != nil {
				return err
			}
		}
		amount, _ := total.Amount.Float64()
		if err := setRow(fmt.Sprintf("Total %s (%s)", total.Currency, FormatAmount(total.Currency, total.Amount)),
			"", string(total.Currency), "", "", "", amount); err != nil {
			return err
		}
		if err := boldRow(); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 48); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
