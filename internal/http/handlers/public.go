package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/http/middleware"
	"tours/internal/notify"
	"tours/internal/utils"
)

// GET /api/search?fromCity=Pune&toCity=Mumbai&travelDate=2026-01-02&journeyType=OneWay
func Search(c *gin.Context) {
	var q models.SearchCriteria
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", "Please select both cities", fieldErrors(err))
		return
	}
	if raw := strings.TrimSpace(c.Query("journeyType")); raw != "" {
		j, err := domain.ParseJourneyType(raw)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		q.JourneyType = j
	}
	res, err := searchService(c).Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/home
func HomePage(c *gin.Context) {
	out, err := searchService(c).HomePage(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/about
func AboutStats(c *gin.Context) {
	out, err := searchService(c).AboutStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/cities/popular
func PopularCities(c *gin.Context) {
	out, err := searchService(c).PopularCities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/cities/suggest?term=pu
func SuggestCities(c *gin.Context) {
	out, err := searchService(c).SuggestCities(c.Request.Context(), c.Query("term"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/cities/available
func AvailableCities(c *gin.Context) {
	out, err := searchService(c).AvailableCities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/cabs/featured
func FeaturedCabs(c *gin.Context) {
	out, err := searchService(c).FeaturedCabs(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/cabs/:id
func CabInfo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := searchService(c).CabInfo(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/prices/:id
func CabDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := searchService(c).CabDetails(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/contact
func SubmitContact(c *gin.Context) {
	var form notify.ContactForm
	if !BindJSONOrError(c, &form) {
		return
	}
	msg, err := notify.ContactMessage(form)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	if deps.Contact != "" {
		msg.To = deps.Contact
	}
	rid := middleware.GetRequestID(c)
	if err := deps.Mailer.Send(context.WithoutCancel(c.Request.Context()), msg); err != nil {
		utils.LogError(rid, "contact", "send", err)
		respondError(c, http.StatusBadGateway, "mail_failed", "Could not send your message, please try again later", nil)
		return
	}
	utils.LogEvent(rid, "contact", "send", "subject="+form.Subject)
	c.JSON(http.StatusOK, gin.H{"message": "Thank you for contacting us. We will get back to you soon."})
}
