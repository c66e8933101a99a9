package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReference returns every lookup table. Dimensions that failed to load
// are empty and listed under failures; the request itself still succeeds.
// @Summary Reference data
// @Tags reference
// @Produce json
// @Success 200 {object} pricing.ReferenceData
// @Router /reference [get]
func GetReference(c *gin.Context) {
	data := pricingService.LoadReferenceData(c.Request.Context())
	c.JSON(http.StatusOK, data)
}
