package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// GET /api/admin/cities
func ListCities(c *gin.Context) {
	out, err := catalogService(c).ListCities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/cities/:id
func GetCity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	city, err := catalogService(c).GetCity(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

// POST /api/admin/cities
func CreateCity(c *gin.Context) {
	var in models.CityInput
	if !BindJSONOrError(c, &in) {
		return
	}
	city, err := catalogService(c).CreateCity(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

// PUT /api/admin/cities/:id
func UpdateCity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.CityInput
	if !BindJSONOrError(c, &in) {
		return
	}
	city, err := catalogService(c).UpdateCity(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

// DELETE /api/admin/cities/:id
func DeleteCity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteCity(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted successfully"})
}
