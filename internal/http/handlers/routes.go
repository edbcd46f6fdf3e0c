package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// GET /api/admin/routes
func ListRoutes(c *gin.Context) {
	out, err := routeService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/routes/:id
func GetRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rt, err := routeService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/admin/routes
func CreateRoute(c *gin.Context) {
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := routeService(c).Create(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/admin/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := routeService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/admin/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := routeService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
