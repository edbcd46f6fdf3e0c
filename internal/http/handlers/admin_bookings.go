package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/http/middleware"
	"tours/internal/services"
)

type statusUpdateRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// GET /api/admin/dashboard
func Dashboard(c *gin.Context) {
	out, err := adminBookingService(c).Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/bookings/pending-count
func PendingBookingsCount(c *gin.Context) {
	n, err := adminBookingService(c).PendingCount(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func bookingFilter(c *gin.Context) (models.BookingFilter, bool) {
	f, err := services.ParseBookingFilter(c.Query("status"), c.Query("search"), c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		RespondDomainError(c, err)
		return f, false
	}
	return f, true
}

// GET /api/admin/bookings?status=&search=&fromDate=&toDate=
func AdminListBookings(c *gin.Context) {
	f, ok := bookingFilter(c)
	if !ok {
		return
	}
	out, err := adminBookingService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/bookings/export
func ExportBookings(c *gin.Context) {
	f, ok := bookingFilter(c)
	if !ok {
		return
	}
	data, filename, err := adminBookingService(c).ExportCSV(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GET /api/admin/bookings/:id
func AdminBookingDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := adminBookingService(c).Details(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/admin/bookings/:id/status
func AdminUpdateBookingStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in statusUpdateRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := adminBookingService(c).UpdateStatus(c.Request.Context(), middleware.Actor(c), id, in.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated to " + b.Status.String(), "booking": b})
}

// PUT /api/admin/bookings/:id/payment
func AdminUpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PaymentUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := adminBookingService(c).UpdatePayment(c.Request.Context(), middleware.Actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated to " + b.PaymentStatus.String(), "booking": b})
}

// PUT /api/admin/bookings/:id/driver
func AdminAssignDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.DriverAssignment
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := adminBookingService(c).AssignDriver(c.Request.Context(), middleware.Actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver assigned successfully", "booking": b})
}

// POST /api/admin/bookings/:id/cancel
func AdminCancelBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := adminBookingService(c).Cancel(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}
