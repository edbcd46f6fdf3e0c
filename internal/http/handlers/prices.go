package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// GET /api/admin/prices
func ListPrices(c *gin.Context) {
	out, err := priceService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/prices/options
func PriceFormOptions(c *gin.Context) {
	out, err := priceService(c).FormOptions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/prices/:id
func GetPrice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := priceService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/admin/prices
func CreatePrice(c *gin.Context) {
	var in models.PriceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := priceService(c).Create(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/admin/prices/:id
func UpdatePrice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PriceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := priceService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/admin/prices/:id
func DeletePrice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := priceService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price deleted successfully"})
}

// PATCH /api/admin/prices/:id/toggle-availability
func TogglePriceAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := priceService(c).ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
