package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain/models"
	"tours/internal/http/middleware"
)

// GET /api/bookings/form/:priceId
func BookingForm(c *gin.Context) {
	id, ok := paramID(c, "priceId")
	if !ok {
		return
	}
	out, err := bookingService(c).Form(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := bookingService(c).Create(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings/:id?bookingNumber=
func BookingConfirmation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := bookingService(c).Confirmation(c.Request.Context(), middleware.Actor(c), id, c.Query("bookingNumber"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings/mine
func MyBookings(c *gin.Context) {
	out, err := bookingService(c).MyBookings(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := bookingService(c).Cancel(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}

// GET /api/bookings/:id/invoice?bookingNumber=
func DownloadInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateInvoice(c.Request.Context(), middleware.Actor(c), id, c.Query("bookingNumber"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
