package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "tours/internal/db"
	"tours/internal/domain"
	"tours/internal/domain/models"
)

type CabRepo struct {
	DB intdb.DBTX
}

func (r CabRepo) db() intdb.DBTX { return conn(r.DB) }

// List returns active cabs, optionally narrowed to one status.
func (r CabRepo) List(ctx context.Context, status domain.CabStatus) ([]models.Cab, error) {
	query := `SELECT ` + cabColumns + ` FROM cabs c WHERE c.is_active = 1`
	args := []any{}
	if status.Valid() {
		query += ` AND c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.name, c.status`
	return r.query(ctx, query, args...)
}

func (r CabRepo) query(ctx context.Context, query string, args ...any) ([]models.Cab, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Cab{}
	for rows.Next() {
		var c models.Cab
		if err := scanCab(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns an active cab or sql.ErrNoRows.
func (r CabRepo) Get(ctx context.Context, id int64) (models.Cab, error) {
	var c models.Cab
	row := r.db().QueryRowContext(ctx, `SELECT `+cabColumns+` FROM cabs c WHERE c.id = ? AND c.is_active = 1`, id)
	err := scanCab(row, &c)
	return c, err
}

// RegistrationTaken reports whether another active cab uses reg.
func (r CabRepo) RegistrationTaken(ctx context.Context, reg string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cabs WHERE UPPER(registration_number) = ? AND is_active = 1 AND id <> ?`,
		strings.ToUpper(strings.TrimSpace(reg)), excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r CabRepo) Create(ctx context.Context, c models.Cab) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO cabs (name, cab_type, model, registration_number, year, has_ac, seating_capacity,
			base_price_per_km, features, image_url, status, driver_id, driver_name, driver_phone,
			created_by, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		c.Name, c.Type, c.Model, c.RegistrationNumber, c.Year, c.HasAC, c.SeatingCapacity,
		c.BasePricePerKM, c.Features, intdb.NullIfEmpty(c.ImageURL), c.Status,
		intdb.NullIfEmpty(c.DriverID), intdb.NullIfEmpty(c.DriverName), intdb.NullIfEmpty(c.DriverPhone),
		c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CabRepo) Update(ctx context.Context, c models.Cab) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE cabs SET name = ?, cab_type = ?, model = ?, registration_number = ?, year = ?, has_ac = ?,
			seating_capacity = ?, base_price_per_km = ?, features = ?, image_url = ?, status = ?,
			driver_id = ?, driver_name = ?, driver_phone = ?
		WHERE id = ? AND is_active = 1`,
		c.Name, c.Type, c.Model, c.RegistrationNumber, c.Year, c.HasAC,
		c.SeatingCapacity, c.BasePricePerKM, c.Features, intdb.NullIfEmpty(c.ImageURL), c.Status,
		intdb.NullIfEmpty(c.DriverID), intdb.NullIfEmpty(c.DriverName), intdb.NullIfEmpty(c.DriverPhone),
		c.ID,
	)
	return err
}

// SoftDelete hides the cab; bookings keep their reference.
func (r CabRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `UPDATE cabs SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	return affectedOne(res, err)
}

func (r CabRepo) SetStatus(ctx context.Context, id int64, status domain.CabStatus) error {
	_, err := r.db().ExecContext(ctx, `UPDATE cabs SET status = ? WHERE id = ?`, status, id)
	return err
}

// LockStatus reads the cab status with a row lock; call inside a transaction.
func (r CabRepo) LockStatus(ctx context.Context, id int64) (domain.CabStatus, error) {
	var s domain.CabStatus
	err := r.db().QueryRowContext(ctx, `SELECT status FROM cabs WHERE id = ? FOR UPDATE`, id).Scan(&s)
	return s, err
}

// Count counts active cabs; a zero status counts all of them.
func (r CabRepo) Count(ctx context.Context, status domain.CabStatus) (int, error) {
	query := `SELECT COUNT(*) FROM cabs WHERE is_active = 1`
	args := []any{}
	if status.Valid() {
		query += ` AND status = ?`
		args = append(args, status)
	}
	var n int
	err := r.db().QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// Featured lists available cabs that have at least one bookable price,
// largest first.
func (r CabRepo) Featured(ctx context.Context, limit int, acOnly bool) ([]models.Cab, error) {
	query := `SELECT ` + cabColumns + ` FROM cabs c
		WHERE c.is_active = 1 AND c.status = ?
		AND EXISTS (SELECT 1 FROM cab_route_prices p WHERE p.cab_id = c.id AND p.is_active = 1 AND p.is_available = 1)`
	if acOnly {
		query += ` AND c.has_ac = 1`
	}
	query += ` ORDER BY c.seating_capacity DESC, c.name LIMIT ?`
	return r.query(ctx, query, domain.CabAvailable, limit)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
