package repositories

import (
	"context"

	intdb "tours/internal/db"
	"tours/internal/domain"
	"tours/internal/domain/models"
)

type PriceRepo struct {
	DB intdb.DBTX
}

func (r PriceRepo) db() intdb.DBTX { return conn(r.DB) }

// bookable narrows to prices a customer may pick.
const bookable = `p.is_active = 1 AND p.is_available = 1 AND c.is_active = 1 AND c.status = ?`

func (r PriceRepo) list(ctx context.Context, where string, args ...any) ([]models.CabRoutePrice, error) {
	rows, err := r.db().QueryContext(ctx, priceSelect+` WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CabRoutePrice{}
	for rows.Next() {
		var p models.CabRoutePrice
		if err := scanPrice(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns active prices whose cab, route and cities are all active.
func (r PriceRepo) List(ctx context.Context) ([]models.CabRoutePrice, error) {
	return r.list(ctx, `p.is_active = 1 AND c.is_active = 1 AND r.is_active = 1
		AND fc.is_active = 1 AND tc.is_active = 1
		ORDER BY fc.name, tc.name, p.journey_type, p.price`)
}

// Get returns an active price with cab and route.
func (r PriceRepo) Get(ctx context.Context, id int64) (models.CabRoutePrice, error) {
	var p models.CabRoutePrice
	err := scanPrice(r.db().QueryRowContext(ctx, priceSelect+` WHERE p.id = ? AND p.is_active = 1`, id), &p)
	return p, err
}

// GetAny ignores soft deletion; bookings keep pointing at retired prices.
func (r PriceRepo) GetAny(ctx context.Context, id int64) (models.CabRoutePrice, error) {
	var p models.CabRoutePrice
	err := scanPrice(r.db().QueryRowContext(ctx, priceSelect+` WHERE p.id = ?`, id), &p)
	return p, err
}

// Search lists bookable prices of a route, cheapest first. A zero journey
// type matches every journey.
func (r PriceRepo) Search(ctx context.Context, routeID int64, journey domain.JourneyType) ([]models.CabRoutePrice, error) {
	where := `p.route_id = ? AND ` + bookable
	args := []any{routeID, domain.CabAvailable}
	if journey.Valid() {
		where += ` AND p.journey_type = ?`
		args = append(args, journey)
	}
	return r.list(ctx, where+` ORDER BY p.price, c.name`, args...)
}

// Similar lists other bookable prices on the same route.
func (r PriceRepo) Similar(ctx context.Context, routeID, excludeID int64, limit int) ([]models.CabRoutePrice, error) {
	return r.list(ctx, `p.route_id = ? AND p.id <> ? AND `+bookable+` ORDER BY p.price LIMIT ?`,
		routeID, excludeID, domain.CabAvailable, limit)
}

// Exists reports an active price for the same cab, route and journey type.
func (r PriceRepo) Exists(ctx context.Context, cabID, routeID int64, journey domain.JourneyType, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cab_route_prices
		WHERE cab_id = ? AND route_id = ? AND journey_type = ? AND is_active = 1 AND id <> ?`,
		cabID, routeID, journey, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r PriceRepo) Create(ctx context.Context, p models.CabRoutePrice) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO cab_route_prices (cab_id, route_id, journey_type, price, included_services,
			excluded_services, extra_charges, notes, terms, is_available, is_active, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		p.CabID, p.RouteID, p.JourneyType, p.Price, p.IncludedServices,
		p.ExcludedServices, intdb.NullIfEmpty(p.ExtraCharges), intdb.NullIfEmpty(p.Notes),
		intdb.NullIfEmpty(p.TermsAndConditions), p.IsAvailable, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PriceRepo) Update(ctx context.Context, p models.CabRoutePrice) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE cab_route_prices SET cab_id = ?, route_id = ?, journey_type = ?, price = ?,
			included_services = ?, excluded_services = ?, extra_charges = ?, notes = ?, terms = ?,
			is_available = ?
		WHERE id = ? AND is_active = 1`,
		p.CabID, p.RouteID, p.JourneyType, p.Price,
		p.IncludedServices, p.ExcludedServices, intdb.NullIfEmpty(p.ExtraCharges),
		intdb.NullIfEmpty(p.Notes), intdb.NullIfEmpty(p.TermsAndConditions),
		p.IsAvailable, p.ID,
	)
	return err
}

func (r PriceRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `UPDATE cab_route_prices SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	return affectedOne(res, err)
}

func (r PriceRepo) SetAvailable(ctx context.Context, id int64, available bool) error {
	_, err := r.db().ExecContext(ctx, `UPDATE cab_route_prices SET is_available = ? WHERE id = ? AND is_active = 1`, available, id)
	return err
}
