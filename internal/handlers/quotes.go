package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/quote"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LineItemRequest is one line of the offer form.
type LineItemRequest struct {
	Dimensions  *ProductKeyRequest `json:"dimensions,omitempty"`
	SeasonID    int64              `json:"seasonId,omitempty" binding:"omitempty,gt=0"`
	ProductID   int64              `json:"productId" binding:"required,gt=0" jsonschema:"required"`
	ProductName string             `json:"productName" binding:"max=255"`
	PriceID     int64              `json:"priceId,omitempty" binding:"omitempty,gt=0"`
	USD         decimal.Decimal    `json:"usd"`
	TZS         decimal.Decimal    `json:"tzs"`
	TaxBehavior string             `json:"taxBehavior" binding:"required,taxbehavior" jsonschema:"required"`
	Currency    string             `json:"currency" binding:"required,oneof=USD TZS usd tzs" jsonschema:"required,enum=USD,enum=TZS"`
	Duration    int                `json:"duration" binding:"required,min=1" jsonschema:"required,minimum=1"`
	Pax         int                `json:"pax" binding:"required,min=1" jsonschema:"required,minimum=1"`
}

func (r LineItemRequest) input(c *gin.Context) (quote.LineItemInput, bool) {
	tax, ok := parseTax(c, r.TaxBehavior)
	if !ok {
		return quote.LineItemInput{}, false
	}
	cur, err := pricing.ParseCurrencyCode(r.Currency)
	if err != nil {
		respondError(c, err)
		return quote.LineItemInput{}, false
	}
	in := quote.LineItemInput{
		SeasonID:    r.SeasonID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		PriceID:     r.PriceID,
		Amounts:     pricing.Amounts{USD: r.USD, TZS: r.TZS},
		TaxBehavior: tax,
		Currency:    cur,
		Duration:    r.Duration,
		Pax:         r.Pax,
	}
	if r.Dimensions != nil {
		in.Dimensions = r.Dimensions.key()
	}
	return in, true
}

// QuoteResponse is a quote with its per-currency totals.
type QuoteResponse struct {
	ID     string           `json:"id" jsonschema:"required"`
	Items  []quote.LineItem `json:"items" jsonschema:"required"`
	Totals []quote.Total    `json:"totals" jsonschema:"required"`
}

func newQuoteResponse(q *quote.Quote) QuoteResponse {
	return QuoteResponse{ID: q.ID, Items: q.Items, Totals: q.Totals()}
}

// LineItemResponse is the saved line item.
type LineItemResponse struct {
	Item    *quote.LineItem `json:"item" jsonschema:"required"`
	Updated bool            `json:"updated"`
}

// GetQuote returns a quote, reconciled with the backing offer record
// @Summary Get quote
// @Tags quotes
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Router /quotes/{quoteId} [get]
func GetQuote(c *gin.Context) {
	q, err := quoteComposer.Load(c.Request.Context(), c.Param("quoteId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(q))
}

// AddQuoteItem prices a line item and appends it to the quote
// @Summary Add line item
// @Tags quotes
// @Accept json
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param request body LineItemRequest true "Line item"
// @Success 201 {object} LineItemResponse
// @Failure 400 {object} ErrorResponse
// @Router /quotes/{quoteId}/items [post]
func AddQuoteItem(c *gin.Context) {
	var req LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}

	item, err := quoteComposer.AddLineItem(c.Request.Context(), c.Param("quoteId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, LineItemResponse{Item: item})
}

// SaveQuoteItem updates a line item in place, or appends it when the id is unknown
// @Summary Save line item
// @Tags quotes
// @Accept json
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param itemId path string true "Line item ID"
// @Param request body LineItemRequest true "Line item"
// @Success 200 {object} LineItemResponse "Updated"
// @Success 201 {object} LineItemResponse "Appended"
// @Router /quotes/{quoteId}/items/{itemId} [put]
func SaveQuoteItem(c *gin.Context) {
	var req LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}

	item, updated, err := quoteComposer.SaveLineItem(c.Request.Context(), c.Param("quoteId"), c.Param("itemId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	c.JSON(status, LineItemResponse{Item: item, Updated: updated})
}

// RemoveQuoteItem drops a line item
// @Summary Remove line item
// @Tags quotes
// @Param quoteId path string true "Quote ID"
// @Param itemId path string true "Line item ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /quotes/{quoteId}/items/{itemId} [delete]
func RemoveQuoteItem(c *gin.Context) {
	if err := quoteComposer.RemoveLineItem(c.Request.Context(), c.Param("quoteId"), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportQuote downloads the quote as a spreadsheet
// @Summary Export quote
// @Tags quotes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param quoteId path string true "Quote ID"
// @Success 200 {file} file
// @Router /quotes/{quoteId}/export [get]
func ExportQuote(c *gin.Context) {
	q, err := quoteComposer.Load(c.Request.Context(), c.Param("quoteId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := quote.Export(q, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.xlsx"`, q.ID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
