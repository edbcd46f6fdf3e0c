package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories/repotest"
)

func TestBookingRepoGetMapsJoinedSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM cab_bookings b`).
		WithArgs(int64(7)).
		WillReturnRows(repotest.BookingRows(repotest.Booking{
			ID: 7, UserID: repotest.Int64(3), PriceID: 11, CabID: repotest.Int64(2),
			Status: domain.BookingConfirmed, UserName: "Asha", UserEmail: "asha@test.in", UserPhone: "9822001122",
		}))

	b, err := BookingRepo{DB: db}.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.UserID == nil || *b.UserID != 3 || b.CabID == nil || *b.CabID != 2 {
		t.Fatalf("nullable ids not mapped: %+v", b)
	}
	if b.Status != domain.BookingConfirmed || b.PaymentMethod != domain.PaymentUPI {
		t.Fatalf("enums not mapped: %v %v", b.Status, b.PaymentMethod)
	}
	if b.Price == nil || b.Price.Route.FromCityName != "Pune" || b.Price.Cab.Name != "SWIFT DZIRE" {
		t.Fatalf("summary not mapped: %+v", b.Price)
	}
	if b.CustomerPhone() != "9822001122" || b.GuestPhone != "" {
		t.Fatalf("account phone not mapped: %q %q", b.CustomerPhone(), b.GuestPhone)
	}
	if b.CustomerName() != "Asha" || b.PaymentDate != nil {
		t.Fatalf("unexpected customer/payment: %q %v", b.CustomerName(), b.PaymentDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestBookingFilterSQL(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local)
	where, args := bookingFilterSQL(models.BookingFilter{
		Status:   domain.BookingPending,
		Search:   "AB12",
		FromDate: &from,
		ToDate:   &to,
	})

	want := "b.is_active = 1 AND b.status = ? AND (b.booking_number LIKE ? OR b.guest_name LIKE ? OR b.guest_email LIKE ? OR b.guest_phone LIKE ? OR b.assigned_driver_name LIKE ? OR b.vehicle_number LIKE ? OR u.name LIKE ? OR u.email LIKE ?) AND b.created_at >= ? AND b.created_at < ?"
	if where != want {
		t.Fatalf("unexpected where:\n%s", where)
	}
	if len(args) != 11 {
		t.Fatalf("expected 11 args, got %d", len(args))
	}
	if args[1] != "%AB12%" {
		t.Fatalf("unexpected like arg %v", args[1])
	}
	if got := args[10].(time.Time); !got.Equal(to.AddDate(0, 0, 1)) {
		t.Fatalf("to date must be exclusive next day, got %v", got)
	}

	where, args = bookingFilterSQL(models.BookingFilter{Search: "   "})
	if where != "b.is_active = 1" || len(args) != 0 {
		t.Fatalf("blank filter must not narrow: %q %v", where, args)
	}
}

func TestBookingRepoHasConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	travel := time.Date(2026, 4, 2, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cab_bookings`).
		WithArgs(int64(2), "2026-04-02", domain.BookingCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	taken, err := BookingRepo{DB: db}.HasConflict(context.Background(), 2, travel)
	if err != nil || !taken {
		t.Fatalf("expected conflict, got %v %v", taken, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestBookingRepoLockState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, status, cab_id, user_id FROM cab_bookings WHERE id = \? AND is_active = 1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "cab_id", "user_id"}).AddRow(5, 2, 9, nil))

	st, err := BookingRepo{DB: db}.LockState(context.Background(), 5)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if st.Status != domain.BookingConfirmed || st.CabID == nil || *st.CabID != 9 || st.UserID != nil {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestBookingRepoAssignDriverMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE cab_bookings SET assigned_driver_id`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = BookingRepo{DB: db}.AssignDriver(context.Background(), 99, models.DriverAssignment{DriverName: "Raju", DriverPhone: "9876543210"}, "admin", time.Now())
	if err == nil {
		t.Fatalf("expected no rows error")
	}
}

func TestBookingRepoDashboardCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery(`SELECT COUNT\(\*\),`).
		WithArgs(today, today.AddDate(0, 0, 1), domain.BookingPending).
		WillReturnRows(sqlmock.NewRows([]string{"total", "today", "pending"}).AddRow(12, 3, 5))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_price\), 0\) FROM cab_bookings`).
		WithArgs(domain.BookingCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"revenue"}).AddRow("7500.50"))

	repo := BookingRepo{DB: db}
	c, err := repo.Counts(context.Background(), today)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if c.Total != 12 || c.Today != 3 || c.Pending != 5 {
		t.Fatalf("unexpected counts %+v", c)
	}
	rev, err := repo.Revenue(context.Background())
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if rev.String() != "7500.5" {
		t.Fatalf("unexpected revenue %s", rev)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
