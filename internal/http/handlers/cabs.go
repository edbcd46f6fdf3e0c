package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// GET /api/admin/cabs?status=Available
func ListCabs(c *gin.Context) {
	out, err := catalogService(c).ListCabs(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/cabs/:id
func GetCab(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cab, err := catalogService(c).GetCab(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cab)
}

// POST /api/admin/cabs
func CreateCab(c *gin.Context) {
	var in models.CabInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cab, err := catalogService(c).CreateCab(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cab)
}

// PUT /api/admin/cabs/:id
func UpdateCab(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.CabInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cab, err := catalogService(c).UpdateCab(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cab)
}

// DELETE /api/admin/cabs/:id
func DeleteCab(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteCab(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cab deleted successfully"})
}

// PATCH /api/admin/cabs/:id/toggle-status
func ToggleCabStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cab, err := catalogService(c).ToggleCabStatus(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cab)
}
