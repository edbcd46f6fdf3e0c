package models

import "tours/internal/domain"

type SearchCriteria struct {
	FromCity    string             `json:"fromCity" form:"fromCity" binding:"required"`
	ToCity      string             `json:"toCity" form:"toCity" binding:"required"`
	TravelDate  string             `json:"travelDate" form:"travelDate"`
	JourneyType domain.JourneyType `json:"journeyType" form:"-"`
}

type SearchResult struct {
	Criteria SearchCriteria  `json:"criteria"`
	Route    Route           `json:"route"`
	Results  []CabRoutePrice `json:"results"`
}

type CabDetails struct {
	Price   CabRoutePrice   `json:"cabRoutePrice"`
	Similar []CabRoutePrice `json:"similarCabs"`
}
