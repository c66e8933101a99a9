package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/menye94/park-pricing/internal/pricing"
)

// CreatePriceRequest creates a price for an existing product.
// TaxBehavior accepts "inclusive", "exclusive" or the legacy codes 1-4.
type CreatePriceRequest struct {
	ProductID   int64           `json:"productId" binding:"required,gt=0" jsonschema:"required"`
	SeasonID    int64           `json:"seasonId" binding:"required,gt=0" jsonschema:"required"`
	CurrencyID  int64           `json:"currencyId" binding:"required,gt=0" jsonschema:"required"`
	TaxBehavior string          `json:"taxBehavior" binding:"required,taxbehavior" jsonschema:"required"`
	UnitAmount  decimal.Decimal `json:"unitAmount" jsonschema:"required"`
}

// UpdatePriceRequest replaces the amount, currency and tax behavior of a price.
// A zero SeasonID keeps the current season.
type UpdatePriceRequest struct {
	SeasonID    int64           `json:"seasonId,omitempty" binding:"omitempty,gt=0"`
	CurrencyID  int64           `json:"currencyId" binding:"required,gt=0" jsonschema:"required"`
	TaxBehavior string          `json:"taxBehavior" binding:"required,taxbehavior" jsonschema:"required"`
	UnitAmount  decimal.Decimal `json:"unitAmount" jsonschema:"required"`
}

// BatchPriceRequest prices every park × entry type × age group combination.
type BatchPriceRequest struct {
	ParkIDs       []int64         `json:"parkIds" binding:"required,min=1,dive,gt=0" jsonschema:"required"`
	EntryTypeIDs  []int64         `json:"entryTypeIds" binding:"required,min=1,dive,gt=0" jsonschema:"required"`
	AgeGroupIDs   []int64         `json:"ageGroupIds" binding:"required,min=1,dive,gt=0" jsonschema:"required"`
	CategoryID    *int64          `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	PricingTypeID int64           `json:"pricingTypeId" binding:"required,gt=0" jsonschema:"required"`
	SeasonID      int64           `json:"seasonId" binding:"required,gt=0" jsonschema:"required"`
	CurrencyID    int64           `json:"currencyId" binding:"required,gt=0" jsonschema:"required"`
	TaxBehavior   string          `json:"taxBehavior" binding:"required,taxbehavior" jsonschema:"required"`
	UnitAmount    decimal.Decimal `json:"unitAmount" jsonschema:"required"`
}

// BatchPriceResponse reports each processed combination. When Aborted is set
// the batch stopped at FailedCombination; earlier combinations stay saved.
type BatchPriceResponse struct {
	Created           []pricing.BatchItem  `json:"created" jsonschema:"required"`
	Conflicts         []pricing.BatchItem  `json:"conflicts" jsonschema:"required"`
	Aborted           bool                 `json:"aborted"`
	FailedCombination *pricing.Combination `json:"failedCombination,omitempty"`
	Error             string               `json:"error,omitempty"`
}

// ClassifyRequest asks for the duplicate status of each candidate park.
// SeasonID and TaxBehavior may be empty while the form is incomplete.
type ClassifyRequest struct {
	ParkIDs       []int64 `json:"parkIds" binding:"required,min=1,dive,gt=0" jsonschema:"required"`
	CategoryID    *int64  `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	EntryTypeID   int64   `json:"entryTypeId" binding:"required,gt=0" jsonschema:"required"`
	AgeGroupID    int64   `json:"ageGroupId" binding:"required,gt=0" jsonschema:"required"`
	PricingTypeID int64   `json:"pricingTypeId" binding:"required,gt=0" jsonschema:"required"`
	SeasonID      int64   `json:"seasonId,omitempty" binding:"omitempty,gt=0"`
	CurrencyID    int64   `json:"currencyId,omitempty" binding:"omitempty,gt=0"`
	TaxBehavior   string  `json:"taxBehavior,omitempty" binding:"omitempty,taxbehavior"`
}

// ParkClassification is the status badge of one candidate park.
type ParkClassification struct {
	ParkID int64  `json:"parkId"`
	Status string `json:"status" jsonschema:"enum=new,enum=existing_product,enum=exact_duplicate"`
	pricing.Classification
}

// ClassifyResponse lists candidates in request order.
type ClassifyResponse struct {
	Parks []ParkClassification `json:"parks" jsonschema:"required"`
}

// DisplayItemRequest is one stored amount pair to display. A zero amount
// means "not set in that currency".
type DisplayItemRequest struct {
	USD         decimal.Decimal `json:"usd"`
	TZS         decimal.Decimal `json:"tzs"`
	TaxBehavior string          `json:"taxBehavior" binding:"required,taxbehavior" jsonschema:"required"`
}

// DisplayRequest converts and taxes a list of prices for display.
type DisplayRequest struct {
	Preferred string               `json:"preferred" binding:"required,oneof=USD TZS usd tzs" jsonschema:"required,enum=USD,enum=TZS"`
	Items     []DisplayItemRequest `json:"items" binding:"required,min=1,dive" jsonschema:"required"`
}

// DisplayResponse carries one displayed price per requested item.
type DisplayResponse struct {
	Rate  decimal.Decimal          `json:"rate"`
	Items []pricing.DisplayedPrice `json:"items"`
}

// LookupRequest asks for the prices of one product over a trip.
type LookupRequest struct {
	ProductKeyRequest
	TripStart string `json:"tripStart" binding:"required" jsonschema:"required,format=date"`
	TripEnd   string `json:"tripEnd" binding:"required" jsonschema:"required,format=date"`
	Preferred string `json:"preferred" binding:"omitempty,oneof=USD TZS usd tzs" jsonschema:"enum=USD,enum=TZS"`
}

// LookupResponse lists the product's prices in the seasons overlapping the trip.
type LookupResponse struct {
	Prices []pricing.SeasonPrice `json:"prices" jsonschema:"required"`
}

// CreatePrice saves a price unless an exact duplicate exists
// @Summary Create price
// @Tags prices
// @Accept json
// @Produce json
// @Param request body CreatePriceRequest true "Price"
// @Success 201 {object} pricing.PriceResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} pricing.PriceResult "Exact duplicate exists"
// @Router /prices [post]
func CreatePrice(c *gin.Context) {
	var req CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tax, ok := parseTax(c, req.TaxBehavior)
	if !ok {
		return
	}

	result, err := pricingService.ResolveOrCreatePrice(c.Request.Context(), pricing.PriceRequest{
		ProductID:   req.ProductID,
		SeasonID:    req.SeasonID,
		CurrencyID:  req.CurrencyID,
		TaxBehavior: tax,
		UnitAmount:  req.UnitAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CreatePriceBatch resolves product and price for every combination
// @Summary Create prices in batch
// @Description Conflicts are reported per combination. A store failure stops the batch; earlier combinations stay saved.
// @Tags prices
// @Accept json
// @Produce json
// @Param request body BatchPriceRequest true "Batch"
// @Success 200 {object} BatchPriceResponse "Nothing new was created"
// @Success 201 {object} BatchPriceResponse "At least one price was created"
// @Failure 500 {object} BatchPriceResponse "Batch aborted"
// @Router /prices/batch [post]
func CreatePriceBatch(c *gin.Context) {
	var req BatchPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tax, ok := parseTax(c, req.TaxBehavior)
	if !ok {
		return
	}

	result, err := pricingService.CreateBatch(c.Request.Context(), pricing.BatchRequest{
		ParkIDs:       req.ParkIDs,
		EntryTypeIDs:  req.EntryTypeIDs,
		AgeGroupIDs:   req.AgeGroupIDs,
		CategoryID:    req.CategoryID,
		PricingTypeID: req.PricingTypeID,
		SeasonID:      req.SeasonID,
		CurrencyID:    req.CurrencyID,
		TaxBehavior:   tax,
		UnitAmount:    req.UnitAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := BatchPriceResponse{
		Created:   nonNilItems(result.Created),
		Conflicts: nonNilItems(result.Conflicts),
	}
	if result.Aborted() {
		resp.Aborted = true
		resp.Error = "batch stopped, try again"
		var combo *pricing.ComboError
		if errors.As(result.Err, &combo) {
			resp.FailedCombination = &combo.Combination
			resp.Error = fmt.Sprintf("batch stopped at %s; earlier combinations were saved", combo.Combination)
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	status := http.StatusOK
	if len(resp.Created) > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func nonNilItems(items []pricing.BatchItem) []pricing.BatchItem {
	if items == nil {
		return []pricing.BatchItem{}
	}
	return items
}

// UpdatePrice edits an existing price
// @Summary Update price
// @Tags prices
// @Accept json
// @Produce json
// @Param id path int true "Price ID"
// @Param request body UpdatePriceRequest true "New values"
// @Success 200 {object} pricing.Price
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Would duplicate another price"
// @Router /prices/{id} [put]
func UpdatePrice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tax, ok := parseTax(c, req.TaxBehavior)
	if !ok {
		return
	}

	price, err := pricingService.UpdatePrice(c.Request.Context(), id, pricing.PriceRequest{
		SeasonID:    req.SeasonID,
		CurrencyID:  req.CurrencyID,
		TaxBehavior: tax,
		UnitAmount:  req.UnitAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}

// DeletePrice removes a price
// @Summary Delete price
// @Tags prices
// @Param id path int true "Price ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /prices/{id} [delete]
func DeletePrice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pricingService.DeletePrice(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClassifyPrices annotates candidate parks as new, existing product or exact duplicate
// @Summary Classify candidate parks
// @Tags prices
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Fixed dimensions and candidate parks"
// @Success 200 {object} ClassifyResponse
// @Router /prices/classify [post]
func ClassifyPrices(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	fixed := pricing.FixedDimensions{
		CategoryID:    req.CategoryID,
		EntryTypeID:   req.EntryTypeID,
		AgeGroupID:    req.AgeGroupID,
		PricingTypeID: req.PricingTypeID,
		SeasonID:      req.SeasonID,
		CurrencyID:    req.CurrencyID,
	}
	if req.TaxBehavior != "" {
		tax, ok := parseTax(c, req.TaxBehavior)
		if !ok {
			return
		}
		fixed.TaxBehavior = tax
	}

	classes, err := pricingService.ClassifyCandidates(c.Request.Context(), fixed, req.ParkIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := ClassifyResponse{Parks: make([]ParkClassification, 0, len(req.ParkIDs))}
	for _, id := range req.ParkIDs {
		cl := classes[id]
		resp.Parks = append(resp.Parks, ParkClassification{ParkID: id, Status: cl.Status(), Classification: cl})
	}
	c.JSON(http.StatusOK, resp)
}

// DisplayPrice derives the missing currency and applies tax
// @Summary Display prices
// @Tags prices
// @Accept json
// @Produce json
// @Param request body DisplayRequest true "Stored amounts"
// @Success 200 {object} DisplayResponse
// @Router /prices/display [post]
func DisplayPrice(c *gin.Context) {
	var req DisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	preferred, err := pricing.ParseCurrencyCode(req.Preferred)
	if err != nil {
		respondError(c, err)
		return
	}

	conv := pricingService.Converter()
	resp := DisplayResponse{Rate: conv.Rate(), Items: make([]pricing.DisplayedPrice, 0, len(req.Items))}
	for _, it := range req.Items {
		tax, ok := parseTax(c, it.TaxBehavior)
		if !ok {
			return
		}
		resp.Items = append(resp.Items, conv.DisplayPrice(pricing.PricedItem{
			Amounts:     pricing.Amounts{USD: it.USD, TZS: it.TZS},
			TaxBehavior: tax,
		}, preferred))
	}
	c.JSON(http.StatusOK, resp)
}

// LookupPrices returns a product's prices for a trip
// @Summary Look up trip prices
// @Tags prices
// @Accept json
// @Produce json
// @Param request body LookupRequest true "Product and trip dates"
// @Success 200 {object} LookupResponse
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Router /prices/lookup [post]
func LookupPrices(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	start, err := pricing.ParseDate(req.TripStart)
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := pricing.ParseDate(req.TripEnd)
	if err != nil {
		respondError(c, err)
		return
	}
	preferred := pricing.USD
	if req.Preferred != "" {
		if preferred, err = pricing.ParseCurrencyCode(req.Preferred); err != nil {
			respondError(c, err)
			return
		}
	}

	prices, err := pricingService.LookupPrices(c.Request.Context(), pricing.LookupRequest{
		Key:       req.key(),
		TripStart: start,
		TripEnd:   end,
		Preferred: preferred,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if prices == nil {
		prices = []pricing.SeasonPrice{}
	}
	c.JSON(http.StatusOK, LookupResponse{Prices: prices})
}
