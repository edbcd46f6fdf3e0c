package models

import (
	"time"

	"tours/internal/domain"

	"github.com/shopspring/decimal"
)

// CabRoutePrice is the quoted price of a cab on a route for one journey type.
type CabRoutePrice struct {
	ID                 int64              `json:"id"`
	CabID              int64              `json:"cabId"`
	RouteID            int64              `json:"routeId"`
	JourneyType        domain.JourneyType `json:"journeyType"`
	Price              decimal.Decimal    `json:"price"`
	IncludedServices   StringList         `json:"includedServices"`
	ExcludedServices   StringList         `json:"excludedServices"`
	ExtraCharges       string             `json:"extraCharges,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	TermsAndConditions string             `json:"termsAndConditions,omitempty"`
	IsAvailable        bool               `json:"isAvailable"`
	IsActive           bool               `json:"isActive"`
	CreatedBy          string             `json:"createdBy,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`

	Cab   *Cab   `json:"cab,omitempty"`
	Route *Route `json:"route,omitempty"`
}

type PriceInput struct {
	CabID              int64              `json:"cabId" binding:"required,min=1"`
	RouteID            int64              `json:"routeId" binding:"required,min=1"`
	JourneyType        domain.JourneyType `json:"journeyType" binding:"required"`
	Price              decimal.Decimal    `json:"price"`
	IncludedServices   StringList         `json:"includedServices"`
	ExcludedServices   StringList         `json:"excludedServices"`
	ExtraCharges       string             `json:"extraCharges"`
	Notes              string             `json:"notes"`
	TermsAndConditions string             `json:"termsAndConditions"`
	IsAvailable        *bool              `json:"isAvailable"`
}

// PriceFormOptions feeds the admin price editor.
type PriceFormOptions struct {
	Cabs         []Cab           `json:"cabs"`
	Routes       []Route         `json:"routes"`
	JourneyTypes []domain.Option `json:"journeyTypes"`
}
