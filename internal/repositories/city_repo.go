package repositories

import (
	"context"
	"strings"

	intdb "tours/internal/db"
	"tours/internal/domain/models"
)

type CityRepo struct {
	DB intdb.DBTX
}

func (r CityRepo) db() intdb.DBTX { return conn(r.DB) }

func (r CityRepo) list(ctx context.Context, where string, args ...any) ([]models.City, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+cityColumns+` FROM cities ci WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.City{}
	for rows.Next() {
		var c models.City
		if err := scanCity(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CityRepo) List(ctx context.Context) ([]models.City, error) {
	return r.list(ctx, `ci.is_active = 1 ORDER BY ci.name`)
}

// Popular lists active cities flagged popular, by name.
func (r CityRepo) Popular(ctx context.Context, limit int) ([]models.City, error) {
	return r.list(ctx, `ci.is_active = 1 AND ci.is_popular = 1 ORDER BY ci.name LIMIT ?`, limit)
}

func (r CityRepo) Get(ctx context.Context, id int64) (models.City, error) {
	var c models.City
	row := r.db().QueryRowContext(ctx, `SELECT `+cityColumns+` FROM cities ci WHERE ci.id = ? AND ci.is_active = 1`, id)
	err := scanCity(row, &c)
	return c, err
}

// Exists reports an active city with the same name and state.
func (r CityRepo) Exists(ctx context.Context, name, state string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cities WHERE LOWER(name) = ? AND LOWER(state) = ? AND is_active = 1 AND id <> ?`,
		strings.ToLower(strings.TrimSpace(name)), strings.ToLower(strings.TrimSpace(state)), excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r CityRepo) Create(ctx context.Context, c models.City) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO cities (name, state, country, description, image_url, popular_places, is_popular,
			created_by, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		c.Name, c.State, c.Country, intdb.NullIfEmpty(c.Description), intdb.NullIfEmpty(c.ImageURL),
		c.PopularPlaces, c.IsPopular, c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CityRepo) Update(ctx context.Context, c models.City) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE cities SET name = ?, state = ?, country = ?, description = ?, image_url = ?,
			popular_places = ?, is_popular = ?
		WHERE id = ? AND is_active = 1`,
		c.Name, c.State, c.Country, intdb.NullIfEmpty(c.Description), intdb.NullIfEmpty(c.ImageURL),
		c.PopularPlaces, c.IsPopular, c.ID,
	)
	return err
}

func (r CityRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `UPDATE cities SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	return affectedOne(res, err)
}

// Suggest matches active city names containing term.
func (r CityRepo) Suggest(ctx context.Context, term string, limit int) ([]models.CityRef, error) {
	return r.refs(ctx,
		`SELECT id, name FROM cities WHERE is_active = 1 AND name LIKE ? ORDER BY name LIMIT ?`,
		intdb.Like(term), limit)
}

// Available lists the active popular cities offered in pickers.
func (r CityRepo) Available(ctx context.Context) ([]models.CityRef, error) {
	return r.refs(ctx, `SELECT id, name FROM cities WHERE is_active = 1 AND is_popular = 1 ORDER BY name`)
}

func (r CityRepo) refs(ctx context.Context, query string, args ...any) ([]models.CityRef, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CityRef{}
	for rows.Next() {
		var c models.CityRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CityRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM cities WHERE is_active = 1`).Scan(&n)
	return n, err
}
