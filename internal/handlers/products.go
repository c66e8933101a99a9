package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menye94/park-pricing/internal/pricing"
)

// ProductKeyRequest identifies a product by its dimensions.
type ProductKeyRequest struct {
	ParkID        int64  `json:"parkId" binding:"required,gt=0" jsonschema:"required"`
	CategoryID    *int64 `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	EntryTypeID   int64  `json:"entryTypeId" binding:"required,gt=0" jsonschema:"required"`
	AgeGroupID    int64  `json:"ageGroupId" binding:"required,gt=0" jsonschema:"required"`
	PricingTypeID int64  `json:"pricingTypeId" binding:"required,gt=0" jsonschema:"required"`
}

func (r ProductKeyRequest) key() pricing.ProductKey {
	return pricing.ProductKey{
		ParkID:        r.ParkID,
		CategoryID:    r.CategoryID,
		EntryTypeID:   r.EntryTypeID,
		AgeGroupID:    r.AgeGroupID,
		PricingTypeID: r.PricingTypeID,
	}
}

// ResolveProductResponse is the outcome of a product resolve.
type ResolveProductResponse struct {
	Product *pricing.Product `json:"product" jsonschema:"required"`
	Created bool             `json:"created" jsonschema:"required"`
}

// ListProductsRequest filters the product list.
type ListProductsRequest struct {
	ParkID int64 `form:"parkId" binding:"omitempty,gt=0"`
}

// ListProductsResponse lists products.
type ListProductsResponse struct {
	Products []pricing.Product `json:"products" jsonschema:"required"`
	Total    int               `json:"total" jsonschema:"required"`
}

// ListPricesResponse lists the prices of one product.
type ListPricesResponse struct {
	ProductID int64           `json:"productId" jsonschema:"required"`
	Prices    []pricing.Price `json:"prices" jsonschema:"required"`
}

// ResolveProduct returns the product for a dimension tuple, creating it on first use
// @Summary Resolve product
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductKeyRequest true "Product dimensions"
// @Success 200 {object} ResolveProductResponse "Existing product"
// @Success 201 {object} ResolveProductResponse "Created product"
// @Failure 400 {object} ErrorResponse
// @Router /products/resolve [post]
func ResolveProduct(c *gin.Context) {
	var req ProductKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, created, err := pricingService.ResolveOrCreateProduct(c.Request.Context(), req.key())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ResolveProductResponse{Product: product, Created: created})
}

// ListProducts returns products, optionally of one park
// @Summary List products
// @Tags products
// @Produce json
// @Param parkId query int false "Filter by park"
// @Success 200 {object} ListProductsResponse
// @Router /products [get]
func ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	products, err := pricingService.ListProducts(c.Request.Context(), req.ParkID)
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []pricing.Product{}
	}
	c.JSON(http.StatusOK, ListProductsResponse{Products: products, Total: len(products)})
}

// DeleteProduct removes a product that has no prices
// @Summary Delete product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Product still has prices"
// @Router /products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pricingService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProductPrices returns every price of a product
// @Summary List product prices
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ListPricesResponse
// @Router /products/{id}/prices [get]
func ListProductPrices(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	prices, err := pricingService.ListPrices(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if prices == nil {
		prices = []pricing.Price{}
	}
	c.JSON(http.StatusOK, ListPricesResponse{ProductID: id, Prices: prices})
}
