package repositories

import (
	"context"
	"strings"

	intdb "tours/internal/db"
	"tours/internal/domain/models"
)

type RouteRepo struct {
	DB intdb.DBTX
}

func (r RouteRepo) db() intdb.DBTX { return conn(r.DB) }

const routeSelect = `SELECT ` + routeColumns + ` FROM routes r ` + routeJoins

func (r RouteRepo) list(ctx context.Context, where string, args ...any) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, routeSelect+` WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := scanRoute(rows, &rt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepo) List(ctx context.Context) ([]models.Route, error) {
	return r.list(ctx, `r.is_active = 1 ORDER BY fc.name, tc.name`)
}

// Popular lists the longest active routes between active cities.
func (r RouteRepo) Popular(ctx context.Context, limit int) ([]models.Route, error) {
	return r.list(ctx, `r.is_active = 1 AND fc.is_active = 1 AND tc.is_active = 1
		ORDER BY r.distance DESC, fc.name LIMIT ?`, limit)
}

func (r RouteRepo) Get(ctx context.Context, id int64) (models.Route, error) {
	var rt models.Route
	err := scanRoute(r.db().QueryRowContext(ctx, routeSelect+` WHERE r.id = ? AND r.is_active = 1`, id), &rt)
	return rt, err
}

// FindByCityNames resolves an active route from the city names a customer typed.
func (r RouteRepo) FindByCityNames(ctx context.Context, from, to string) (models.Route, error) {
	var rt models.Route
	row := r.db().QueryRowContext(ctx, routeSelect+`
		WHERE r.is_active = 1 AND fc.is_active = 1 AND tc.is_active = 1
		AND LOWER(fc.name) = ? AND LOWER(tc.name) = ?
		ORDER BY r.id LIMIT 1`,
		strings.ToLower(strings.TrimSpace(from)), strings.ToLower(strings.TrimSpace(to)))
	err := scanRoute(row, &rt)
	return rt, err
}

// PairExists reports an active route with the same from/to cities.
func (r RouteRepo) PairExists(ctx context.Context, fromID, toID, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM routes WHERE from_city_id = ? AND to_city_id = ? AND is_active = 1 AND id <> ?`,
		fromID, toID, excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r RouteRepo) Create(ctx context.Context, rt models.Route) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO routes (from_city_id, to_city_id, distance, estimated_time, description, popular_stops,
			is_active, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		rt.FromCityID, rt.ToCityID, rt.Distance, rt.EstimatedTime, intdb.NullIfEmpty(rt.Description),
		rt.PopularStops, rt.CreatedBy, rt.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepo) Update(ctx context.Context, rt models.Route) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE routes SET from_city_id = ?, to_city_id = ?, distance = ?, estimated_time = ?,
			description = ?, popular_stops = ?
		WHERE id = ? AND is_active = 1`,
		rt.FromCityID, rt.ToCityID, rt.Distance, rt.EstimatedTime,
		intdb.NullIfEmpty(rt.Description), rt.PopularStops, rt.ID,
	)
	return err
}

func (r RouteRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `UPDATE routes SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	return affectedOne(res, err)
}
