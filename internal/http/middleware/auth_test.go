package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tours/internal/domain"
)

type stubParser map[string]domain.RequestContext

func (p stubParser) ParseToken(raw string) (domain.RequestContext, error) {
	if rc, ok := p[raw]; ok {
		return rc, nil
	}
	return domain.RequestContext{}, errors.New("bad token")
}

func TestAuthOptionalAndRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parser := stubParser{
		"admin": {UserID: 1, Role: domain.RoleAdmin, Username: "root"},
		"user":  {UserID: 7, Role: domain.RoleUser, Username: "asha"},
	}
	r := gin.New()
	r.Use(AuthOptional(parser))
	r.GET("/whoami", func(c *gin.Context) { c.JSON(http.StatusOK, Actor(c)) })
	r.GET("/admin", RequireRoles(domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/me", RequireRoles(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(path, auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.JSONEq(t, `{"userId":7,"username":"asha","role":"user"}`, call("/whoami", "Bearer user").Body.String())
	assert.JSONEq(t, `{"userId":0,"username":"","role":""}`, call("/whoami", "Bearer forged").Body.String())
	assert.JSONEq(t, `{"userId":0,"username":"","role":""}`, call("/whoami", "Basic user").Body.String())

	assert.Equal(t, http.StatusNoContent, call("/admin", "bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, call("/admin", "Bearer user").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/admin", "").Code)
	assert.Equal(t, http.StatusNoContent, call("/me", "Bearer user").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/me", "").Code)
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}
