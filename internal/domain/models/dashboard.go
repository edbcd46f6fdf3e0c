package models

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalCabs       int             `json:"totalCabs"`
	AvailableCabs   int             `json:"availableCabs"`
	TotalBookings   int             `json:"totalBookings"`
	TodayBookings   int             `json:"todayBookings"`
	PendingBookings int             `json:"pendingBookings"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	RecentBookings  []Booking       `json:"recentBookings"`
}

type HomePage struct {
	PopularCities []City  `json:"popularCities"`
	FeaturedCabs  []Cab   `json:"featuredCabs"`
	PopularRoutes []Route `json:"popularRoutes"`
	TotalCabs     int     `json:"totalCabs"`
	TotalBookings int     `json:"totalBookings"`
}

type AboutStats struct {
	TotalCabs          int `json:"totalCabs"`
	TotalCities        int `json:"totalCities"`
	TotalBookings      int `json:"totalBookings"`
	SatisfiedCustomers int `json:"satisfiedCustomers"`
}
