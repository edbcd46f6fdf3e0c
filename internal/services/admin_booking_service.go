package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/notify"
	"tours/internal/repositories"
	"tours/internal/utils"
)

const recentBookingLimit = 10

// AdminBookingService covers fulfillment: dashboard, status, payment and
// driver assignment.
type AdminBookingService struct {
	DB        *sql.DB
	Mailer    notify.Mailer
	RequestID string
}

func (s AdminBookingService) db() *sql.DB { return sharedDB(s.DB) }

func (s AdminBookingService) bookingService() BookingService {
	return BookingService{DB: s.DB, Mailer: s.Mailer, RequestID: s.RequestID}
}

func (s AdminBookingService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var d models.DashboardStats
	var err error
	cabs := repositories.CabRepo{DB: s.db()}
	if d.TotalCabs, err = cabs.Count(ctx, 0); err != nil {
		return d, internal(err)
	}
	if d.AvailableCabs, err = cabs.Count(ctx, domain.CabAvailable); err != nil {
		return d, internal(err)
	}
	bookings := repositories.BookingRepo{DB: s.db()}
	counts, err := bookings.Counts(ctx, utils.Today())
	if err != nil {
		return d, internal(err)
	}
	d.TotalBookings, d.TodayBookings, d.PendingBookings = counts.Total, counts.Today, counts.Pending
	if d.TotalRevenue, err = bookings.Revenue(ctx); err != nil {
		return d, internal(err)
	}
	if d.RecentBookings, err = bookings.List(ctx, models.BookingFilter{Limit: recentBookingLimit}); err != nil {
		return d, internal(err)
	}
	return d, nil
}

func (s AdminBookingService) PendingCount(ctx context.Context) (int, error) {
	n, err := repositories.BookingRepo{DB: s.db()}.CountPending(ctx)
	return n, internal(err)
}

// ParseBookingFilter reads the admin list query. Unknown statuses are
// ignored; malformed dates are rejected.
func ParseBookingFilter(status, search, from, to string) (models.BookingFilter, error) {
	f := models.BookingFilter{Search: strings.TrimSpace(search)}
	if strings.TrimSpace(status) != "" {
		if st, err := domain.ParseBookingStatus(status); err == nil {
			f.Status = st
		}
	}
	if strings.TrimSpace(from) != "" {
		d, err := utils.ParseDate(from)
		if err != nil {
			return f, domain.ValidationError{Field: "fromDate", Msg: "expected YYYY-MM-DD"}
		}
		f.FromDate = &d
	}
	if strings.TrimSpace(to) != "" {
		d, err := utils.ParseDate(to)
		if err != nil {
			return f, domain.ValidationError{Field: "toDate", Msg: "expected YYYY-MM-DD"}
		}
		f.ToDate = &d
	}
	return f, nil
}

func (s AdminBookingService) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	out, err := repositories.BookingRepo{DB: s.db()}.List(ctx, f)
	return out, internal(err)
}

func (s AdminBookingService) Details(ctx context.Context, id int64) (models.BookingDetails, error) {
	b, err := s.bookingService().load(ctx, id)
	if err != nil {
		return models.BookingDetails{}, err
	}
	allowed := []domain.Option{}
	for _, st := range domain.BookingStatuses() {
		if domain.CanTransition(b.Status, st) {
			allowed = append(allowed, domain.Option{ID: int(st), Name: st.String()})
		}
	}
	return models.BookingDetails{
		Booking:              b,
		StatusOptions:        domain.StatusOptions(),
		PaymentStatusOptions: domain.PaymentStatusOptions(),
		AllowedStatuses:      allowed,
	}, nil
}

// UpdateStatus moves a booking through the status table and syncs its cab.
func (s AdminBookingService) UpdateStatus(ctx context.Context, actor domain.RequestContext, id int64, next domain.BookingStatus) (models.Booking, error) {
	return s.bookingService().transition(ctx, actor, id, next, nil)
}

func (s AdminBookingService) Cancel(ctx context.Context, actor domain.RequestContext, id int64) (models.Booking, error) {
	return s.bookingService().transition(ctx, actor, id, domain.BookingCancelled, nil)
}

// UpdatePayment records a payment status; Completed stamps the payment date.
func (s AdminBookingService) UpdatePayment(ctx context.Context, actor domain.RequestContext, id int64, in models.PaymentUpdate) (models.Booking, error) {
	if !in.Status.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown payment status"}
	}
	if err := validID("id", id); err != nil {
		return models.Booking{}, err
	}
	bookings := repositories.BookingRepo{DB: s.db()}
	b, err := bookings.Get(ctx, id)
	if err != nil {
		return models.Booking{}, lookupErr("booking", err)
	}

	at := utils.Now()
	var paidAt *time.Time
	if in.Status == domain.PaymentCompleted {
		paidAt = &at
	}
	txID := strings.TrimSpace(in.TransactionID)
	if err := bookings.UpdatePayment(ctx, id, in.Status, txID, paidAt, actorName(actor), at); err != nil {
		return models.Booking{}, internal(err)
	}
	utils.LogEvent(s.RequestID, "booking", "update_payment",
		fmt.Sprintf("booking_id=%d %s->%s", id, b.PaymentStatus, in.Status))

	b.PaymentStatus = in.Status
	if txID != "" {
		b.PaymentTransactionID = txID
	}
	if paidAt != nil {
		b.PaymentDate = paidAt
	}
	b.UpdatedBy, b.UpdatedAt = actorName(actor), &at
	return b, nil
}

func (s AdminBookingService) AssignDriver(ctx context.Context, actor domain.RequestContext, id int64, in models.DriverAssignment) (models.Booking, error) {
	if err := validID("id", id); err != nil {
		return models.Booking{}, err
	}
	in.DriverID = strings.TrimSpace(in.DriverID)
	in.DriverName = utils.NormalizeSpace(in.DriverName)
	in.DriverPhone = strings.TrimSpace(in.DriverPhone)
	in.VehicleNumber = strings.ToUpper(strings.TrimSpace(in.VehicleNumber))
	if in.DriverName == "" {
		return models.Booking{}, domain.ValidationError{Field: "driverName", Msg: "is required"}
	}
	if in.DriverPhone == "" {
		return models.Booking{}, domain.ValidationError{Field: "driverPhone", Msg: "is required"}
	}

	err := repositories.BookingRepo{DB: s.db()}.AssignDriver(ctx, id, in, actorName(actor), utils.Now())
	if err != nil {
		return models.Booking{}, lookupErr("booking", err)
	}
	utils.LogEvent(s.RequestID, "booking", "assign_driver", fmt.Sprintf("booking_id=%d driver=%s", id, in.DriverName))

	b, err := s.bookingService().load(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	s.bookingService().notify(ctx, b, notify.StatusChangedMessage)
	return b, nil
}

var exportHeader = []string{
	"Booking Number", "Created", "Customer", "Email", "Phone", "From", "To", "Cab", "Registration",
	"Journey", "Travel Date", "Pickup Time", "Passengers", "Total", "Status", "Payment Method",
	"Payment Status", "Driver", "Vehicle",
}

// ExportCSV renders the filtered bookings as CSV.
func (s AdminBookingService) ExportCSV(ctx context.Context, f models.BookingFilter) ([]byte, string, error) {
	f.Limit = 0
	list, err := s.List(ctx, f)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", internal(err)
	}
	for _, b := range list {
		var from, to, cab, reg, journey string
		if b.Price != nil {
			journey = b.Price.JourneyType.String()
			if b.Price.Route != nil {
				from, to = b.Price.Route.FromCityName, b.Price.Route.ToCityName
			}
			if b.Price.Cab != nil {
				cab, reg = b.Price.Cab.Name, b.Price.Cab.RegistrationNumber
			}
		}
		record := []string{
			b.BookingNumber, utils.FormatDateTime(b.CreatedAt), b.CustomerName(), b.CustomerEmail(), b.CustomerPhone(),
			from, to, cab, reg,
			journey, utils.FormatDate(b.TravelDate), b.PickupTime, strconv.Itoa(b.NumberOfPassengers),
			utils.FormatMoney(b.TotalPrice), b.Status.String(), b.PaymentMethod.String(),
			b.PaymentStatus.String(), b.AssignedDriverName, b.VehicleNumber,
		}
		if err := w.Write(record); err != nil {
			return nil, "", internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", internal(err)
	}

	utils.LogEvent(s.RequestID, "booking", "export", fmt.Sprintf("rows=%d", len(list)))
	filename := fmt.Sprintf("bookings_%s.csv", utils.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
