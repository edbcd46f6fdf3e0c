package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories/repotest"
)

var admin = domain.RequestContext{UserID: 1, Username: "admin", Role: domain.RoleAdmin}

func lockedBooking(status domain.BookingStatus, cabID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "status", "cab_id", "user_id"}).
		AddRow(int64(7), int64(status), cabID, nil)
}

func expectReload(mock sqlmock.Sqlmock, status domain.BookingStatus) {
	mock.ExpectQuery(bookingQuery).WithArgs(int64(7)).
		WillReturnRows(repotest.BookingRows(repotest.Booking{ID: 7, PriceID: 11, CabID: repotest.Int64(2), Status: status}))
	mock.ExpectQuery(priceQuery).WithArgs(int64(11)).WillReturnRows(repotest.PriceRows(dzirePrice()))
}

func TestAdminConfirmBooksCab(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(lockedBooking(domain.BookingPending, 2))
	mock.ExpectExec(`UPDATE cab_bookings SET status = \?`).
		WithArgs(domain.BookingConfirmed, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(lockCab).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(int64(domain.CabAvailable)))
	mock.ExpectExec(`UPDATE cabs SET status = \?`).WithArgs(domain.CabBooked, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectReload(mock, domain.BookingConfirmed)

	b, err := AdminBookingService{DB: db}.UpdateStatus(context.Background(), admin, 7, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestAdminCancelPendingLeavesCab(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(lockedBooking(domain.BookingPending, 2))
	mock.ExpectExec(`UPDATE cab_bookings SET status = \?`).
		WithArgs(domain.BookingCancelled, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no cab lock or cab update: a pending booking never held the cab
	mock.ExpectCommit()
	expectReload(mock, domain.BookingCancelled)

	b, err := AdminBookingService{DB: db}.Cancel(context.Background(), admin, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestAdminCompleteKeepsMaintenanceCab(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(lockedBooking(domain.BookingInProgress, 2))
	mock.ExpectExec(`UPDATE cab_bookings SET status = \?`).
		WithArgs(domain.BookingCompleted, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(lockCab).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(int64(domain.CabMaintenance)))
	mock.ExpectCommit()
	expectReload(mock, domain.BookingCompleted)

	_, err := AdminBookingService{DB: db}.UpdateStatus(context.Background(), admin, 7, domain.BookingCompleted)
	require.NoError(t, err)
}

func TestAdminStartTripLeavesCab(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(lockedBooking(domain.BookingConfirmed, 2))
	mock.ExpectExec(`UPDATE cab_bookings SET status = \?`).
		WithArgs(domain.BookingInProgress, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectReload(mock, domain.BookingInProgress)

	_, err := AdminBookingService{DB: db}.UpdateStatus(context.Background(), admin, 7, domain.BookingInProgress)
	require.NoError(t, err)
}

func TestAdminInvalidTransition(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(lockedBooking(domain.BookingCompleted, 2))
	mock.ExpectRollback()

	_, err := AdminBookingService{DB: db}.Cancel(context.Background(), admin, 7)
	require.True(t, domain.IsValidation(err), "got %v", err)
	assert.Contains(t, err.Error(), "invalid status transition from Completed to Cancelled")
}

func TestAdminTransitionUnknownBooking(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockBooking).WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := AdminBookingService{DB: db}.UpdateStatus(context.Background(), admin, 7, domain.BookingConfirmed)
	assert.True(t, domain.IsNotFound(err), "got %v", err)
}

func TestAdminUpdatePaymentCompletedStampsDate(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(bookingQuery).WithArgs(int64(7)).
		WillReturnRows(repotest.BookingRows(repotest.Booking{ID: 7, PriceID: 11}))
	mock.ExpectExec(`UPDATE cab_bookings SET payment_status = \?`).
		WithArgs(domain.PaymentCompleted, "TXN-1", fixedNow, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := AdminBookingService{DB: db}.UpdatePayment(context.Background(), admin, 7,
		models.PaymentUpdate{Status: domain.PaymentCompleted, TransactionID: " TXN-1 "})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, b.PaymentStatus)
	require.NotNil(t, b.PaymentDate)
	assert.Equal(t, fixedNow, *b.PaymentDate)
	assert.Equal(t, "TXN-1", b.PaymentTransactionID)
}

func TestAdminUpdatePaymentFailedKeepsDate(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(bookingQuery).WithArgs(int64(7)).
		WillReturnRows(repotest.BookingRows(repotest.Booking{ID: 7, PriceID: 11}))
	mock.ExpectExec(`UPDATE cab_bookings SET payment_status = \?`).
		WithArgs(domain.PaymentFailed, nil, nil, "admin", fixedNow, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := AdminBookingService{DB: db}.UpdatePayment(context.Background(), admin, 7,
		models.PaymentUpdate{Status: domain.PaymentFailed})
	require.NoError(t, err)
	assert.Nil(t, b.PaymentDate)
}

func TestParseBookingFilter(t *testing.T) {
	f, err := ParseBookingFilter("confirmed", " AB12 ", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, f.Status)
	assert.Equal(t, "AB12", f.Search)
	require.NotNil(t, f.FromDate)
	require.NotNil(t, f.ToDate)

	f, err = ParseBookingFilter("Archived", "", "", "")
	require.NoError(t, err)
	assert.Zero(t, f.Status)

	_, err = ParseBookingFilter("", "", "", "31/01/2026")
	assert.True(t, domain.IsValidation(err))
}

func TestExportCSV(t *testing.T) {
	freezeClock(t)
	db, mock := newMock(t)
	mock.ExpectQuery(bookingQuery).
		WillReturnRows(repotest.BookingRows(
			repotest.Booking{ID: 1, Number: "AAAA1111", GuestName: "Ravi", GuestEmail: "ravi@test.in", DriverName: "Sunil"},
			repotest.Booking{ID: 2, Number: "BBBB2222", UserID: repotest.Int64(3), UserName: "Asha", UserEmail: "asha@test.in", UserPhone: "9822001122"},
		))

	data, filename, err := AdminBookingService{DB: db}.ExportCSV(context.Background(), models.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, "bookings_20260110_090000.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "AAAA1111", records[1][0])
	assert.Equal(t, "Ravi", records[1][2])
	assert.Equal(t, "Pune", records[1][5])
	assert.Equal(t, "Sunil", records[1][17])
	assert.Equal(t, "9876543210", records[1][4])
	assert.Equal(t, "Asha", records[2][2])
	assert.Equal(t, "9822001122", records[2][4])
	assert.Equal(t, "2500.00", records[2][13])
}

func TestAdminDetailsAllowedStatuses(t *testing.T) {
	db, mock := newMock(t)
	expectReload(mock, domain.BookingConfirmed)

	d, err := AdminBookingService{DB: db}.Details(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{
		{ID: int(domain.BookingInProgress), Name: "InProgress"},
		{ID: int(domain.BookingCancelled), Name: "Cancelled"},
	}, d.AllowedStatuses)
	assert.Len(t, d.StatusOptions, 5)
}
