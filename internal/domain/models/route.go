package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Route struct {
	ID            int64           `json:"id"`
	FromCityID    int64           `json:"fromCityId"`
	FromCityName  string          `json:"fromCity"`
	ToCityID      int64           `json:"toCityId"`
	ToCityName    string          `json:"toCity"`
	Distance      decimal.Decimal `json:"distanceKm"`
	EstimatedTime decimal.Decimal `json:"estimatedHours"`
	Description   string          `json:"description,omitempty"`
	PopularStops  StringList      `json:"popularStops"`
	IsActive      bool            `json:"isActive"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type RouteInput struct {
	FromCityID    int64           `json:"fromCityId" binding:"required,min=1"`
	ToCityID      int64           `json:"toCityId" binding:"required,min=1"`
	Distance      decimal.Decimal `json:"distanceKm"`
	EstimatedTime decimal.Decimal `json:"estimatedHours"`
	Description   string          `json:"description"`
	PopularStops  StringList      `json:"popularStops"`
}
