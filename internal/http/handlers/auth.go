package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// POST /api/auth/register
func Register(c *gin.Context) {
	var in models.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := authService(c)
	u, err := svc.Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	token, err := svc.IssueToken(u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var in models.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	token, u, err := authService(c).Login(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	u, err := authService(c).Profile(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
