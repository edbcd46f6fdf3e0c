package models

import (
	"time"

	"tours/internal/domain"

	"github.com/shopspring/decimal"
)

type Cab struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Type               domain.CabType   `json:"type"`
	Model              string           `json:"model"`
	RegistrationNumber string           `json:"registrationNumber"`
	Year               int              `json:"year"`
	HasAC              bool             `json:"hasAC"`
	SeatingCapacity    int              `json:"seatingCapacity"`
	BasePricePerKM     decimal.Decimal  `json:"basePricePerKm"`
	Features           StringList       `json:"features"`
	ImageURL           string           `json:"imageUrl,omitempty"`
	Status             domain.CabStatus `json:"status"`
	DriverID           string           `json:"driverId,omitempty"`
	DriverName         string           `json:"driverName,omitempty"`
	DriverPhone        string           `json:"driverPhone,omitempty"`
	CreatedBy          string           `json:"createdBy,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	IsActive           bool             `json:"isActive"`
}

// CabInput carries editable cab fields from admin forms.
type CabInput struct {
	Name               string           `json:"name" binding:"required,max=100"`
	Type               domain.CabType   `json:"type" binding:"required"`
	Model              string           `json:"model" binding:"required,max=50"`
	RegistrationNumber string           `json:"registrationNumber" binding:"required,max=20"`
	Year               int              `json:"year" binding:"required,min=1950,max=2100"`
	HasAC              bool             `json:"hasAC"`
	SeatingCapacity    int              `json:"seatingCapacity" binding:"required,min=1,max=60"`
	BasePricePerKM     decimal.Decimal  `json:"basePricePerKm"`
	Features           StringList       `json:"features"`
	ImageURL           string           `json:"imageUrl" binding:"omitempty,url"`
	Status             domain.CabStatus `json:"status"`
	DriverID           string           `json:"driverId"`
	DriverName         string           `json:"driverName" binding:"max=100"`
	DriverPhone        string           `json:"driverPhone" binding:"omitempty,phone"`
}
