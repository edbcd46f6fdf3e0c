package repositories

import (
	"database/sql"
	"time"

	intconfig "tours/internal/config"
	intdb "tours/internal/db"
	"tours/internal/domain/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// conn falls back to the shared pool when no handle was injected.
func conn(q intdb.DBTX) intdb.DBTX {
	if db, ok := q.(*sql.DB); ok && db == nil {
		q = nil
	}
	if q != nil {
		return q
	}
	if intconfig.DB != nil {
		return intconfig.DB
	}
	return nil
}

const cabColumns = `c.id, c.name, c.cab_type, c.model, c.registration_number, c.year, c.has_ac,
	c.seating_capacity, c.base_price_per_km, c.features, COALESCE(c.image_url, ''), c.status,
	COALESCE(c.driver_id, ''), COALESCE(c.driver_name, ''), COALESCE(c.driver_phone, ''),
	COALESCE(c.created_by, ''), c.created_at, c.is_active`

func scanCab(s rowScanner, c *models.Cab) error {
	return s.Scan(
		&c.ID, &c.Name, &c.Type, &c.Model, &c.RegistrationNumber, &c.Year, &c.HasAC,
		&c.SeatingCapacity, &c.BasePricePerKM, &c.Features, &c.ImageURL, &c.Status,
		&c.DriverID, &c.DriverName, &c.DriverPhone,
		&c.CreatedBy, &c.CreatedAt, &c.IsActive,
	)
}

const cityColumns = `ci.id, ci.name, ci.state, ci.country, COALESCE(ci.description, ''),
	COALESCE(ci.image_url, ''), ci.popular_places, ci.is_popular, COALESCE(ci.created_by, ''),
	ci.created_at, ci.is_active`

func scanCity(s rowScanner, c *models.City) error {
	return s.Scan(
		&c.ID, &c.Name, &c.State, &c.Country, &c.Description,
		&c.ImageURL, &c.PopularPlaces, &c.IsPopular, &c.CreatedBy,
		&c.CreatedAt, &c.IsActive,
	)
}

const routeColumns = `r.id, r.from_city_id, fc.name, r.to_city_id, tc.name, r.distance,
	r.estimated_time, COALESCE(r.description, ''), r.popular_stops, r.is_active,
	COALESCE(r.created_by, ''), r.created_at`

const routeJoins = `JOIN cities fc ON fc.id = r.from_city_id
	JOIN cities tc ON tc.id = r.to_city_id`

func scanRoute(s rowScanner, r *models.Route) error {
	return s.Scan(
		&r.ID, &r.FromCityID, &r.FromCityName, &r.ToCityID, &r.ToCityName, &r.Distance,
		&r.EstimatedTime, &r.Description, &r.PopularStops, &r.IsActive,
		&r.CreatedBy, &r.CreatedAt,
	)
}

const priceColumns = `p.id, p.cab_id, p.route_id, p.journey_type, p.price, p.included_services,
	p.excluded_services, COALESCE(p.extra_charges, ''), COALESCE(p.notes, ''),
	COALESCE(p.terms, ''), p.is_available, p.is_active, COALESCE(p.created_by, ''), p.created_at`

// priceSelect loads a price with its cab, route and both cities.
const priceSelect = `SELECT ` + priceColumns + `, ` + cabColumns + `, ` + routeColumns + `
	FROM cab_route_prices p
	JOIN cabs c ON c.id = p.cab_id
	JOIN routes r ON r.id = p.route_id
	` + routeJoins

func scanPrice(s rowScanner, p *models.CabRoutePrice) error {
	var cab models.Cab
	var route models.Route
	err := s.Scan(
		&p.ID, &p.CabID, &p.RouteID, &p.JourneyType, &p.Price, &p.IncludedServices,
		&p.ExcludedServices, &p.ExtraCharges, &p.Notes,
		&p.TermsAndConditions, &p.IsAvailable, &p.IsActive, &p.CreatedBy, &p.CreatedAt,

		&cab.ID, &cab.Name, &cab.Type, &cab.Model, &cab.RegistrationNumber, &cab.Year, &cab.HasAC,
		&cab.SeatingCapacity, &cab.BasePricePerKM, &cab.Features, &cab.ImageURL, &cab.Status,
		&cab.DriverID, &cab.DriverName, &cab.DriverPhone,
		&cab.CreatedBy, &cab.CreatedAt, &cab.IsActive,

		&route.ID, &route.FromCityID, &route.FromCityName, &route.ToCityID, &route.ToCityName, &route.Distance,
		&route.EstimatedTime, &route.Description, &route.PopularStops, &route.IsActive,
		&route.CreatedBy, &route.CreatedAt,
	)
	if err != nil {
		return err
	}
	p.Cab = &cab
	p.Route = &route
	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
