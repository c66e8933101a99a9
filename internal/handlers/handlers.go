// Package handlers exposes the pricing and quote operations over HTTP.
//
// @title Park Pricing API
// @version 1.0
// @description Park products, prices, duplicate checks and quotes.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/quote"
)

// PricingService is the subset of pricing.Service the handlers call.
type PricingService interface {
	LoadReferenceData(ctx context.Context) *pricing.ReferenceData
	ResolveOrCreateProduct(ctx context.Context, key pricing.ProductKey) (*pricing.Product, bool, error)
	ListProducts(ctx context.Context, parkID int64) ([]pricing.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ResolveOrCreatePrice(ctx context.Context, req pricing.PriceRequest) (*pricing.PriceResult, error)
	CreateBatch(ctx context.Context, req pricing.BatchRequest) (*pricing.BatchResult, error)
	UpdatePrice(ctx context.Context, id int64, req pricing.PriceRequest) (*pricing.Price, error)
	DeletePrice(ctx context.Context, id int64) error
	ListPrices(ctx context.Context, productID int64) ([]pricing.Price, error)
	ClassifyCandidates(ctx context.Context, fixed pricing.FixedDimensions, parkIDs []int64) (map[int64]pricing.Classification, error)
	LookupPrices(ctx context.Context, req pricing.LookupRequest) ([]pricing.SeasonPrice, error)
	Converter() *pricing.Converter
}

// Global service instances (initialized by the application)
var (
	pricingService PricingService
	quoteComposer  *quote.Composer
)

// Init wires the services used by the handlers.
// This should be called during application startup
func Init(svc PricingService, composer *quote.Composer) {
	pricingService = svc
	quoteComposer = composer
	registerValidators()
}

// RegisterRoutes mounts every API route on rg.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reference", GetReference)

	products := rg.Group("/products")
	{
		products.GET("", ListProducts)
		products.POST("/resolve", ResolveProduct)
		products.DELETE("/:id", DeleteProduct)
		products.GET("/:id/prices", ListProductPrices)
	}

	prices := rg.Group("/prices")
	{
		prices.POST("", CreatePrice)
		prices.POST("/batch", CreatePriceBatch)
		prices.POST("/classify", ClassifyPrices)
		prices.POST("/display", DisplayPrice)
		prices.POST("/lookup", LookupPrices)
		prices.PUT("/:id", UpdatePrice)
		prices.DELETE("/:id", DeletePrice)
	}

	quotes := rg.Group("/quotes/:quoteId")
	{
		quotes.GET("", GetQuote)
		quotes.GET("/export", ExportQuote)
		quotes.POST("/items", AddQuoteItem)
		quotes.PUT("/items/:itemId", SaveQuoteItem)
		quotes.DELETE("/items/:itemId", RemoveQuoteItem)
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validation *pricing.ValidationError
		conflict   *pricing.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Error(), Field: validation.Field})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflict.Error()})
	case errors.Is(err, pricing.ErrProductInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, pricing.ErrNotFound), errors.Is(err, quote.ErrItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "the database did not respond in time, try again"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong, try again"})
	}
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be a positive integer", Field: name})
		return 0, false
	}
	return id, true
}

func parseTax(c *gin.Context, raw string) (pricing.TaxBehavior, bool) {
	tax, err := pricing.ParseTaxBehavior(raw)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return tax, true
}
