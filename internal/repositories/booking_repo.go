package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intdb "tours/internal/db"
	"tours/internal/domain"
	"tours/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepo struct {
	DB intdb.DBTX
}

func (r BookingRepo) db() intdb.DBTX { return conn(r.DB) }

// bookingSelect loads a booking with the customer account and a compact
// price summary for list views.
const bookingSelect = `SELECT b.id, b.booking_number, b.user_id, COALESCE(b.guest_name, ''),
	COALESCE(b.guest_email, ''), COALESCE(b.guest_phone, ''), b.cab_route_price_id, b.cab_id,
	b.travel_date, b.pickup_time, b.pickup_location, b.dropoff_location, b.number_of_passengers,
	COALESCE(b.additional_notes, ''), b.base_price, b.extra_charges, b.discount, b.total_price,
	b.status, b.payment_method, b.payment_status, COALESCE(b.payment_transaction_id, ''), b.payment_date,
	COALESCE(b.assigned_driver_id, ''), COALESCE(b.assigned_driver_name, ''),
	COALESCE(b.assigned_driver_phone, ''), COALESCE(b.vehicle_number, ''),
	COALESCE(b.created_by, ''), b.created_at, COALESCE(b.updated_by, ''), b.updated_at, b.is_active,
	COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.phone, ''),
	COALESCE(p.journey_type, 0), COALESCE(c.name, ''), COALESCE(c.registration_number, ''),
	COALESCE(fc.name, ''), COALESCE(tc.name, '')
	FROM cab_bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN cab_route_prices p ON p.id = b.cab_route_price_id
	LEFT JOIN cabs c ON c.id = p.cab_id
	LEFT JOIN routes r ON r.id = p.route_id
	LEFT JOIN cities fc ON fc.id = r.from_city_id
	LEFT JOIN cities tc ON tc.id = r.to_city_id`

func scanBooking(s rowScanner, b *models.Booking) error {
	var userID, cabID sql.NullInt64
	var paymentDate, updatedAt sql.NullTime
	var journey domain.JourneyType
	var cabName, regNo, fromCity, toCity string
	err := s.Scan(
		&b.ID, &b.BookingNumber, &userID, &b.GuestName,
		&b.GuestEmail, &b.GuestPhone, &b.PriceID, &cabID,
		&b.TravelDate, &b.PickupTime, &b.PickupLocation, &b.DropoffLocation, &b.NumberOfPassengers,
		&b.AdditionalNotes, &b.BasePrice, &b.ExtraCharges, &b.Discount, &b.TotalPrice,
		&b.Status, &b.PaymentMethod, &b.PaymentStatus, &b.PaymentTransactionID, &paymentDate,
		&b.AssignedDriverID, &b.AssignedDriverName,
		&b.AssignedDriverPhone, &b.VehicleNumber,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedBy, &updatedAt, &b.IsActive,
		&b.UserName, &b.UserEmail, &b.UserPhone,
		&journey, &cabName, &regNo,
		&fromCity, &toCity,
	)
	if err != nil {
		return err
	}
	b.UserID = intdb.Int64Ptr(userID)
	b.CabID = intdb.Int64Ptr(cabID)
	b.PaymentDate = nullTimePtr(paymentDate)
	b.UpdatedAt = nullTimePtr(updatedAt)
	b.Price = &models.CabRoutePrice{
		ID:          b.PriceID,
		JourneyType: journey,
		Cab:         &models.Cab{Name: cabName, RegistrationNumber: regNo},
		Route:       &models.Route{FromCityName: fromCity, ToCityName: toCity},
	}
	return nil
}

func (r BookingRepo) list(ctx context.Context, where string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().QueryContext(ctx, bookingSelect+` WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Get returns an active booking or sql.ErrNoRows.
func (r BookingRepo) Get(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	err := scanBooking(r.db().QueryRowContext(ctx, bookingSelect+` WHERE b.id = ? AND b.is_active = 1`, id), &b)
	return b, err
}

func (r BookingRepo) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return r.list(ctx, `b.user_id = ? AND b.is_active = 1 ORDER BY b.created_at DESC, b.id DESC`, userID)
}

// List applies the admin filters, newest first.
func (r BookingRepo) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	where, args := bookingFilterSQL(f)
	where += ` ORDER BY b.created_at DESC, b.id DESC`
	if f.Limit > 0 {
		where += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	return r.list(ctx, where, args...)
}

func bookingFilterSQL(f models.BookingFilter) (string, []any) {
	conds := []string{"b.is_active = 1"}
	args := []any{}
	if f.Status.Valid() {
		conds = append(conds, "b.status = ?")
		args = append(args, f.Status)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := intdb.Like(term)
		cols := []string{
			"b.booking_number", "b.guest_name", "b.guest_email", "b.guest_phone",
			"b.assigned_driver_name", "b.vehicle_number", "u.name", "u.email",
		}
		parts := make([]string, 0, len(cols))
		for _, col := range cols {
			parts = append(parts, col+" LIKE ?")
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}
	if f.FromDate != nil {
		conds = append(conds, "b.created_at >= ?")
		args = append(args, *f.FromDate)
	}
	if f.ToDate != nil {
		// inclusive: anything before the next midnight
		conds = append(conds, "b.created_at < ?")
		args = append(args, f.ToDate.AddDate(0, 0, 1))
	}
	return strings.Join(conds, " AND "), args
}

// HasConflict reports a live booking of the cab on the same travel date.
func (r BookingRepo) HasConflict(ctx context.Context, cabID int64, travelDate time.Time) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cab_bookings
		WHERE cab_id = ? AND travel_date = ? AND is_active = 1 AND status <> ?`,
		cabID, travelDate.Format("2006-01-02"), domain.BookingCancelled,
	).Scan(&n)
	return n > 0, err
}

func (r BookingRepo) Insert(ctx context.Context, b models.Booking) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO cab_bookings (booking_number, user_id, guest_name, guest_email, guest_phone,
			cab_route_price_id, cab_id, travel_date, pickup_time, pickup_location, dropoff_location,
			number_of_passengers, additional_notes, base_price, extra_charges, discount, total_price,
			status, payment_method, payment_status, created_by, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		b.BookingNumber, intdb.NullInt64(b.UserID), intdb.NullIfEmpty(b.GuestName),
		intdb.NullIfEmpty(b.GuestEmail), intdb.NullIfEmpty(b.GuestPhone),
		b.PriceID, intdb.NullInt64(b.CabID), b.TravelDate.Format("2006-01-02"), b.PickupTime,
		b.PickupLocation, b.DropoffLocation,
		b.NumberOfPassengers, intdb.NullIfEmpty(b.AdditionalNotes), b.BasePrice, b.ExtraCharges,
		b.Discount, b.TotalPrice,
		b.Status, b.PaymentMethod, b.PaymentStatus, b.CreatedBy, b.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BookingState is the locked subset of a booking used for transitions.
type BookingState struct {
	ID     int64
	Status domain.BookingStatus
	CabID  *int64
	UserID *int64
}

// LockState reads the booking with a row lock; call inside a transaction.
func (r BookingRepo) LockState(ctx context.Context, id int64) (BookingState, error) {
	var st BookingState
	var cabID, userID sql.NullInt64
	err := r.db().QueryRowContext(ctx,
		`SELECT id, status, cab_id, user_id FROM cab_bookings WHERE id = ? AND is_active = 1 FOR UPDATE`, id,
	).Scan(&st.ID, &st.Status, &cabID, &userID)
	if err != nil {
		return st, err
	}
	st.CabID = intdb.Int64Ptr(cabID)
	st.UserID = intdb.Int64Ptr(userID)
	return st, nil
}

func (r BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, by string, at time.Time) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE cab_bookings SET status = ?, updated_by = ?, updated_at = ? WHERE id = ?`,
		status, by, at, id)
	return err
}

// UpdatePayment sets the payment status; a nil paidAt keeps the stored date.
func (r BookingRepo) UpdatePayment(ctx context.Context, id int64, status domain.PaymentStatus, txID string, paidAt *time.Time, by string, at time.Time) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE cab_bookings SET payment_status = ?,
			payment_transaction_id = COALESCE(?, payment_transaction_id),
			payment_date = COALESCE(?, payment_date),
			updated_by = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		status, intdb.NullIfEmpty(txID), paidAt, by, at, id)
	return err
}

func (r BookingRepo) AssignDriver(ctx context.Context, id int64, a models.DriverAssignment, by string, at time.Time) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE cab_bookings SET assigned_driver_id = ?, assigned_driver_name = ?, assigned_driver_phone = ?,
			vehicle_number = ?, updated_by = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		intdb.NullIfEmpty(a.DriverID), a.DriverName, a.DriverPhone,
		intdb.NullIfEmpty(a.VehicleNumber), by, at, id)
	return affectedOne(res, err)
}

// BookingCounts aggregates the dashboard numbers in one round trip.
type BookingCounts struct {
	Total   int
	Today   int
	Pending int
}

func (r BookingRepo) Counts(ctx context.Context, today time.Time) (BookingCounts, error) {
	var c BookingCounts
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM cab_bookings WHERE is_active = 1`,
		today, today.AddDate(0, 0, 1), domain.BookingPending,
	).Scan(&c.Total, &c.Today, &c.Pending)
	return c, err
}

func (r BookingRepo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cab_bookings WHERE is_active = 1 AND status = ?`, domain.BookingPending,
	).Scan(&n)
	return n, err
}

// Revenue sums total price over completed bookings.
func (r BookingRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var s decimal.Decimal
	err := r.db().QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM cab_bookings WHERE is_active = 1 AND status = ?`,
		domain.BookingCompleted,
	).Scan(&s)
	return s, err
}

// CompletedCustomers counts distinct customers with a completed trip.
func (r BookingRepo) CompletedCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT COALESCE(CAST(user_id AS CHAR), guest_email, guest_phone))
		FROM cab_bookings WHERE is_active = 1 AND status = ?`,
		domain.BookingCompleted,
	).Scan(&n)
	return n, err
}
