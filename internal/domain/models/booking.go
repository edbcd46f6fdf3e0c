package models

import (
	"time"

	"tours/internal/domain"

	"github.com/shopspring/decimal"
)

// Booking is a reservation of a cab route price for a travel date.
type Booking struct {
	ID                   int64                `json:"id"`
	BookingNumber        string               `json:"bookingNumber"`
	UserID               *int64               `json:"userId,omitempty"`
	GuestName            string               `json:"guestName,omitempty"`
	GuestEmail           string               `json:"guestEmail,omitempty"`
	GuestPhone           string               `json:"guestPhone,omitempty"`
	PriceID              int64                `json:"cabRoutePriceId"`
	CabID                *int64               `json:"cabId,omitempty"`
	TravelDate           time.Time            `json:"travelDate"`
	PickupTime           string               `json:"pickupTime"`
	PickupLocation       string               `json:"pickupLocation"`
	DropoffLocation      string               `json:"dropoffLocation"`
	NumberOfPassengers   int                  `json:"numberOfPassengers"`
	AdditionalNotes      string               `json:"additionalNotes,omitempty"`
	BasePrice            decimal.Decimal      `json:"basePrice"`
	ExtraCharges         decimal.Decimal      `json:"extraCharges"`
	Discount             decimal.Decimal      `json:"discount"`
	TotalPrice           decimal.Decimal      `json:"totalPrice"`
	Status               domain.BookingStatus `json:"status"`
	PaymentMethod        domain.PaymentMethod `json:"paymentMethod"`
	PaymentStatus        domain.PaymentStatus `json:"paymentStatus"`
	PaymentTransactionID string               `json:"paymentTransactionId,omitempty"`
	PaymentDate          *time.Time           `json:"paymentDate,omitempty"`
	AssignedDriverID     string               `json:"assignedDriverId,omitempty"`
	AssignedDriverName   string               `json:"assignedDriverName,omitempty"`
	AssignedDriverPhone  string               `json:"assignedDriverPhone,omitempty"`
	VehicleNumber        string               `json:"vehicleNumber,omitempty"`
	CreatedBy            string               `json:"createdBy,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedBy            string               `json:"updatedBy,omitempty"`
	UpdatedAt            *time.Time           `json:"updatedAt,omitempty"`
	IsActive             bool                 `json:"isActive"`

	// Joined for display.
	UserName  string         `json:"userName,omitempty"`
	UserEmail string         `json:"userEmail,omitempty"`
	UserPhone string         `json:"userPhone,omitempty"`
	Price     *CabRoutePrice `json:"cabRoutePrice,omitempty"`
}

// CustomerName prefers the account name over guest details.
func (b Booking) CustomerName() string {
	if b.UserName != "" {
		return b.UserName
	}
	return b.GuestName
}

func (b Booking) CustomerEmail() string {
	if b.UserEmail != "" {
		return b.UserEmail
	}
	return b.GuestEmail
}

func (b Booking) CustomerPhone() string {
	if b.UserPhone != "" {
		return b.UserPhone
	}
	return b.GuestPhone
}

// BookingInput is the customer booking form.
type BookingInput struct {
	PriceID            int64                `json:"cabRoutePriceId" binding:"required,min=1"`
	TravelDate         string               `json:"travelDate" binding:"required"`
	PickupTime         string               `json:"pickupTime" binding:"required"`
	PickupLocation     string               `json:"pickupLocation" binding:"required,max=500"`
	DropoffLocation    string               `json:"dropoffLocation" binding:"required,max=500"`
	NumberOfPassengers int                  `json:"numberOfPassengers" binding:"required,min=1,max=10"`
	AdditionalNotes    string               `json:"additionalNotes"`
	GuestName          string               `json:"guestName" binding:"max=100"`
	GuestEmail         string               `json:"guestEmail" binding:"omitempty,email,max=100"`
	GuestPhone         string               `json:"guestPhone" binding:"omitempty,phone,max=15"`
	PaymentMethod      domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

// BookingForm is the data needed to render the booking form of a price.
type BookingForm struct {
	Price      CabRoutePrice `json:"cabRoutePrice"`
	TravelDate string        `json:"travelDate"`
}

// BookingFilter narrows the admin booking list.
type BookingFilter struct {
	Status   domain.BookingStatus
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
}

// PaymentUpdate carries an admin payment status change.
type PaymentUpdate struct {
	Status        domain.PaymentStatus `json:"status" binding:"required"`
	TransactionID string               `json:"transactionId"`
}

// DriverAssignment carries the driver details set by an admin.
type DriverAssignment struct {
	DriverID      string `json:"driverId"`
	DriverName    string `json:"driverName" binding:"required,max=100"`
	DriverPhone   string `json:"driverPhone" binding:"required,phone"`
	VehicleNumber string `json:"vehicleNumber" binding:"max=20"`
}

// BookingDetails is the admin view of one booking.
type BookingDetails struct {
	Booking              Booking         `json:"booking"`
	StatusOptions        []domain.Option `json:"statusOptions"`
	PaymentStatusOptions []domain.Option `json:"paymentStatusOptions"`
	AllowedStatuses      []domain.Option `json:"allowedStatuses"`
}
