// Package repotest builds sqlmock rows matching the repository SELECT lists.
package repotest

import (
	"database/sql/driver"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tours/internal/domain"
)

var Created = time.Date(2026, 1, 10, 8, 0, 0, 0, time.Local)

var cabCols = []string{
	"id", "name", "cab_type", "model", "registration_number", "year", "has_ac",
	"seating_capacity", "base_price_per_km", "features", "image_url", "status",
	"driver_id", "driver_name", "driver_phone", "created_by", "created_at", "is_active",
}

var routeCols = []string{
	"id", "from_city_id", "from_name", "to_city_id", "to_name", "distance",
	"estimated_time", "description", "popular_stops", "is_active", "created_by", "created_at",
}

var priceCols = []string{
	"id", "cab_id", "route_id", "journey_type", "price", "included_services",
	"excluded_services", "extra_charges", "notes", "terms", "is_available", "is_active",
	"created_by", "created_at",
}

var cityCols = []string{
	"id", "name", "state", "country", "description", "image_url", "popular_places",
	"is_popular", "created_by", "created_at", "is_active",
}

var bookingCols = []string{
	"id", "booking_number", "user_id", "guest_name", "guest_email", "guest_phone", "cab_route_price_id", "cab_id",
	"travel_date", "pickup_time", "pickup_location", "dropoff_location", "number_of_passengers",
	"additional_notes", "base_price", "extra_charges", "discount", "total_price",
	"status", "payment_method", "payment_status", "payment_transaction_id", "payment_date",
	"assigned_driver_id", "assigned_driver_name", "assigned_driver_phone", "vehicle_number",
	"created_by", "created_at", "updated_by", "updated_at", "is_active",
	"user_name", "user_email", "user_phone", "journey_type", "cab_name", "cab_registration", "from_city", "to_city",
}

// Cab describes the fields tests usually vary.
type Cab struct {
	ID       int64
	Name     string
	Seats    int
	Status   domain.CabStatus
	HasAC    bool
	RegNo    string
	PerKM    string
	Features string
}

func (c Cab) values() []driver.Value {
	if c.Status == 0 {
		c.Status = domain.CabAvailable
	}
	if c.Seats == 0 {
		c.Seats = 4
	}
	if c.RegNo == "" {
		c.RegNo = "MH12AB1234"
	}
	if c.PerKM == "" {
		c.PerKM = "15.00"
	}
	if c.Name == "" {
		c.Name = "SWIFT DZIRE"
	}
	return []driver.Value{
		c.ID, c.Name, int64(domain.CabTypeSedan), "Dzire", c.RegNo, int64(2022), c.HasAC,
		int64(c.Seats), c.PerKM, nullable(c.Features), "", int64(c.Status),
		"", "", "", "admin", Created, true,
	}
}

// CabRows returns rows for the cab SELECT list.
func CabRows(cabs ...Cab) *sqlmock.Rows {
	rows := sqlmock.NewRows(cabCols)
	for _, c := range cabs {
		rows.AddRow(c.values()...)
	}
	return rows
}

type City struct {
	ID      int64
	Name    string
	State   string
	Popular bool
}

func CityRows(cities ...City) *sqlmock.Rows {
	rows := sqlmock.NewRows(cityCols)
	for _, c := range cities {
		rows.AddRow(c.ID, c.Name, c.State, "India", "", "", `["Fort"]`, c.Popular, "admin", Created, true)
	}
	return rows
}

type Route struct {
	ID       int64
	FromID   int64
	From     string
	ToID     int64
	To       string
	Distance string
}

func (r Route) values() []driver.Value {
	if r.Distance == "" {
		r.Distance = "150.00"
	}
	return []driver.Value{
		r.ID, r.FromID, r.From, r.ToID, r.To, r.Distance,
		"3.50", "", nil, true, "admin", Created,
	}
}

func RouteRows(routes ...Route) *sqlmock.Rows {
	rows := sqlmock.NewRows(routeCols)
	for _, r := range routes {
		rows.AddRow(r.values()...)
	}
	return rows
}

type Price struct {
	ID        int64
	Journey   domain.JourneyType
	Amount    string
	Available bool
	Cab       Cab
	Route     Route
}

func PriceRows(prices ...Price) *sqlmock.Rows {
	cols := append(append(append([]string{}, priceCols...), cabCols...), routeCols...)
	rows := sqlmock.NewRows(cols)
	for _, p := range prices {
		if p.Journey == 0 {
			p.Journey = domain.JourneyOneWay
		}
		if p.Amount == "" {
			p.Amount = "2500.00"
		}
		vals := []driver.Value{
			p.ID, p.Cab.ID, p.Route.ID, int64(p.Journey), p.Amount, `["Fuel","Driver"]`,
			`["Toll"]`, "", "", "", p.Available, true, "admin", Created,
		}
		vals = append(vals, p.Cab.values()...)
		vals = append(vals, p.Route.values()...)
		rows.AddRow(vals...)
	}
	return rows
}

type Booking struct {
	ID         int64
	Number     string
	UserID     *int64
	GuestName  string
	GuestEmail string
	GuestPhone string
	PriceID    int64
	CabID      *int64
	TravelDate time.Time
	Status     domain.BookingStatus
	Payment    domain.PaymentStatus
	Total      string
	UserName   string
	UserEmail  string
	UserPhone  string
	DriverName string
}

func BookingRows(bookings ...Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows(bookingCols)
	for _, b := range bookings {
		if b.Status == 0 {
			b.Status = domain.BookingPending
		}
		if b.Payment == 0 {
			b.Payment = domain.PaymentPending
		}
		if b.Total == "" {
			b.Total = "2500.00"
		}
		if b.Number == "" {
			b.Number = "AB12CD34"
		}
		if b.GuestPhone == "" && b.UserID == nil {
			b.GuestPhone = "9876543210"
		}
		if b.TravelDate.IsZero() {
			b.TravelDate = Created.AddDate(0, 0, 5)
		}
		rows.AddRow(
			b.ID, b.Number, ptr(b.UserID), b.GuestName, b.GuestEmail, b.GuestPhone, b.PriceID, ptr(b.CabID),
			b.TravelDate, "09:30:00", "Shivaji Nagar", "Airport", int64(2),
			"", b.Total, "0.00", "0.00", b.Total,
			int64(b.Status), int64(domain.PaymentUPI), int64(b.Payment), "", nil,
			"", b.DriverName, "", "",
			"Guest", Created, "", nil, true,
			b.UserName, b.UserEmail, b.UserPhone, int64(domain.JourneyOneWay), "SWIFT DZIRE", "MH12AB1234", "Pune", "Mumbai",
		)
	}
	return rows
}

func Int64(v int64) *int64 { return &v }

func ptr(v *int64) driver.Value {
	if v == nil {
		return nil
	}
	return *v
}

func nullable(s string) driver.Value {
	if s == "" {
		return nil
	}
	return s
}
