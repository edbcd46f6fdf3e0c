package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	intdb "tours/internal/db"
	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/metrics"
	"tours/internal/notify"
	"tours/internal/repositories"
	"tours/internal/utils"
)

const bookingNumberAttempts = 3

var errCannotView = domain.ForbiddenError{Msg: "You cannot view this booking"}

// BookingService handles the customer side of a booking.
type BookingService struct {
	DB        *sql.DB
	Mailer    notify.Mailer
	RequestID string
}

func (s BookingService) db() *sql.DB { return sharedDB(s.DB) }

// Form returns the price to book and tomorrow as the default travel date.
func (s BookingService) Form(ctx context.Context, priceID int64) (models.BookingForm, error) {
	if err := validID("id", priceID); err != nil {
		return models.BookingForm{}, err
	}
	p, err := repositories.PriceRepo{DB: s.db()}.Get(ctx, priceID)
	if err != nil {
		return models.BookingForm{}, lookupErr("price", err)
	}
	return models.BookingForm{
		Price:      p,
		TravelDate: utils.FormatDate(utils.Today().AddDate(0, 0, 1)),
	}, nil
}

// NewBookingNumber returns 8 upper-case hex characters.
func NewBookingNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// validateBooking normalizes the form into a booking draft.
func validateBooking(actor domain.RequestContext, in models.BookingInput) (models.Booking, error) {
	b := models.Booking{
		PriceID:            in.PriceID,
		PickupLocation:     strings.TrimSpace(in.PickupLocation),
		DropoffLocation:    strings.TrimSpace(in.DropoffLocation),
		NumberOfPassengers: in.NumberOfPassengers,
		AdditionalNotes:    strings.TrimSpace(in.AdditionalNotes),
		PaymentMethod:      in.PaymentMethod,
	}
	if err := validID("cabRoutePriceId", in.PriceID); err != nil {
		return b, err
	}
	travel, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return b, domain.ValidationError{Field: "travelDate", Msg: "expected YYYY-MM-DD"}
	}
	if travel.Before(utils.Today()) {
		return b, domain.ValidationError{Field: "travelDate", Msg: "Travel date cannot be in the past"}
	}
	b.TravelDate = travel

	if b.PickupTime, err = utils.NormalizeClock(in.PickupTime); err != nil {
		return b, domain.ValidationError{Field: "pickupTime", Msg: "expected HH:MM"}
	}
	switch {
	case b.PickupLocation == "":
		return b, domain.ValidationError{Field: "pickupLocation", Msg: "is required"}
	case len(b.PickupLocation) > 500:
		return b, domain.ValidationError{Field: "pickupLocation", Msg: "must be at most 500 characters"}
	case b.DropoffLocation == "":
		return b, domain.ValidationError{Field: "dropoffLocation", Msg: "is required"}
	case len(b.DropoffLocation) > 500:
		return b, domain.ValidationError{Field: "dropoffLocation", Msg: "must be at most 500 characters"}
	case b.NumberOfPassengers < 1 || b.NumberOfPassengers > 10:
		return b, domain.ValidationError{Field: "numberOfPassengers", Msg: "must be between 1 and 10"}
	case !b.PaymentMethod.Valid():
		return b, domain.ValidationError{Field: "paymentMethod", Msg: "is required"}
	}

	if actor.Authenticated() {
		uid := int64(actor.UserID)
		b.UserID = &uid
		b.CreatedBy = actorName(actor)
		return b, nil
	}

	b.GuestName = utils.NormalizeSpace(in.GuestName)
	b.GuestEmail = strings.TrimSpace(in.GuestEmail)
	b.GuestPhone = strings.TrimSpace(in.GuestPhone)
	switch {
	case b.GuestName == "":
		return b, domain.ValidationError{Field: "guestName", Msg: "is required for guest bookings"}
	case b.GuestEmail == "" && b.GuestPhone == "":
		return b, domain.ValidationError{Field: "guestPhone", Msg: "phone or email is required for guest bookings"}
	case len(b.GuestPhone) > 15:
		return b, domain.ValidationError{Field: "guestPhone", Msg: "must be at most 15 characters"}
	}
	b.CreatedBy = "Guest"
	return b, nil
}

// Create books a price for a date. The cab row is locked for the duration of
// the conflict check and insert so two requests cannot take the same cab on
// the same date.
func (s BookingService) Create(ctx context.Context, actor domain.RequestContext, in models.BookingInput) (models.Booking, error) {
	b, err := validateBooking(actor, in)
	if err != nil {
		return models.Booking{}, err
	}

	price, err := repositories.PriceRepo{DB: s.db()}.Get(ctx, b.PriceID)
	if err != nil {
		return models.Booking{}, lookupErr("price", err)
	}
	if !price.IsAvailable || price.Cab == nil || !price.Cab.IsActive {
		return models.Booking{}, domain.ValidationError{Field: "cabRoutePriceId", Msg: "This cab is not available for booking"}
	}
	if b.NumberOfPassengers > price.Cab.SeatingCapacity {
		return models.Booking{}, domain.ValidationError{
			Field: "numberOfPassengers",
			Msg:   fmt.Sprintf("This cab seats at most %d passengers", price.Cab.SeatingCapacity),
		}
	}

	cabID := price.CabID
	b.CabID = &cabID
	b.BasePrice = price.Price
	b.ExtraCharges = decimal.Zero
	b.Discount = decimal.Zero
	b.TotalPrice = price.Price
	b.Status = domain.BookingPending
	b.PaymentStatus = domain.PaymentPending
	b.CreatedAt = utils.Now()
	b.IsActive = true

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		cabStatus, err := repositories.CabRepo{DB: tx}.LockStatus(ctx, cabID)
		if err != nil {
			return lookupErr("cab", err)
		}
		if cabStatus == domain.CabMaintenance || cabStatus == domain.CabUnavailable {
			return domain.ValidationError{Field: "cabRoutePriceId", Msg: "This cab is not available for booking"}
		}

		bookings := repositories.BookingRepo{DB: tx}
		taken, err := bookings.HasConflict(ctx, cabID, b.TravelDate)
		if err != nil {
			return internal(err)
		}
		if taken {
			metrics.BookingConflicts.Inc()
			return domain.ConflictError{Resource: "booking", Msg: "This cab is already booked for the selected date"}
		}

		for attempt := 1; ; attempt++ {
			b.BookingNumber = NewBookingNumber()
			id, err := bookings.Insert(ctx, b)
			if err == nil {
				b.ID = id
				return nil
			}
			if !intdb.IsDuplicateKey(err) || attempt == bookingNumberAttempts {
				return internal(err)
			}
		}
	})
	if err != nil {
		return models.Booking{}, err
	}

	metrics.BookingsCreated.WithLabelValues(price.JourneyType.String()).Inc()
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d number=%s cab_id=%d date=%s", b.ID, b.BookingNumber, cabID, utils.FormatDate(b.TravelDate)))

	saved, err := s.load(ctx, b.ID)
	if err != nil {
		b.Price = &price
		return b, nil
	}
	s.notify(ctx, saved, notify.BookingCreatedMessage)
	return saved, nil
}

// canView allows the owner and admins. A guest booking is only reachable
// together with its booking number, since ids are sequential.
func canView(actor domain.RequestContext, b models.Booking, bookingNumber string) bool {
	if actor.IsAdmin() {
		return true
	}
	if b.UserID == nil {
		n := strings.TrimSpace(bookingNumber)
		return n != "" && strings.EqualFold(n, b.BookingNumber)
	}
	return actor.Authenticated() && *b.UserID == int64(actor.UserID)
}

// Confirmation loads a booking with its full price, cab and route. Guests
// pass the booking number they received.
func (s BookingService) Confirmation(ctx context.Context, actor domain.RequestContext, id int64, bookingNumber string) (models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !canView(actor, b, bookingNumber) {
		return models.Booking{}, errCannotView
	}
	return b, nil
}

func (s BookingService) load(ctx context.Context, id int64) (models.Booking, error) {
	if err := validID("id", id); err != nil {
		return models.Booking{}, err
	}
	b, err := repositories.BookingRepo{DB: s.db()}.Get(ctx, id)
	if err != nil {
		return models.Booking{}, lookupErr("booking", err)
	}
	p, err := repositories.PriceRepo{DB: s.db()}.GetAny(ctx, b.PriceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, internal(err)
	}
	if err == nil {
		b.Price = &p
	}
	return b, nil
}

func (s BookingService) MyBookings(ctx context.Context, actor domain.RequestContext) ([]models.Booking, error) {
	if !actor.Authenticated() {
		return nil, domain.UnauthorizedError{Msg: "Please sign in to see your bookings"}
	}
	out, err := repositories.BookingRepo{DB: s.db()}.ListByUser(ctx, int64(actor.UserID))
	return out, internal(err)
}

// Cancel is the customer cancellation: only the owner, and only while the
// booking is Pending or Confirmed.
func (s BookingService) Cancel(ctx context.Context, actor domain.RequestContext, id int64) (models.Booking, error) {
	guard := func(st repositories.BookingState) error {
		if st.UserID == nil || !actor.Authenticated() || *st.UserID != int64(actor.UserID) {
			return domain.ForbiddenError{Msg: "You can only cancel your own bookings"}
		}
		if !st.Status.CustomerCancellable() {
			return domain.ValidationError{Field: "status", Msg: "Cannot cancel booking in current status"}
		}
		return nil
	}
	return s.transition(ctx, actor, id, domain.BookingCancelled, guard)
}

// transition applies a status change and the derived cab status in one
// transaction. Booking row is locked before the cab row.
func (s BookingService) transition(ctx context.Context, actor domain.RequestContext, id int64, next domain.BookingStatus, guard func(repositories.BookingState) error) (models.Booking, error) {
	if err := validID("id", id); err != nil {
		return models.Booking{}, err
	}
	if !next.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}

	var prev domain.BookingStatus
	var cabNote string
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		bookings := repositories.BookingRepo{DB: tx}
		st, err := bookings.LockState(ctx, id)
		if err != nil {
			return lookupErr("booking", err)
		}
		if guard != nil {
			if err := guard(st); err != nil {
				return err
			}
		}
		if err := domain.ValidateTransition(st.Status, next); err != nil {
			return err
		}
		if err := bookings.UpdateStatus(ctx, id, next, actorName(actor), utils.Now()); err != nil {
			return internal(err)
		}
		prev = st.Status

		target, ok := domain.CabStatusAfter(st.Status, next)
		if !ok || st.CabID == nil {
			return nil
		}
		cabs := repositories.CabRepo{DB: tx}
		current, err := cabs.LockStatus(ctx, *st.CabID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return internal(err)
		}
		final, changed := domain.ApplyCabStatus(current, target)
		if !changed {
			return nil
		}
		if err := cabs.SetStatus(ctx, *st.CabID, final); err != nil {
			return internal(err)
		}
		cabNote = fmt.Sprintf(" cab_id=%d %s->%s", *st.CabID, current, final)
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	metrics.RecordTransition(prev.String(), next.String())
	utils.LogEvent(s.RequestID, "booking", "transition",
		fmt.Sprintf("booking_id=%d %s->%s by=%s%s", id, prev, next, actorName(actor), cabNote))

	b, err := s.load(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	s.notify(ctx, b, notify.StatusChangedMessage)
	return b, nil
}

// notify is best-effort; failures are logged only.
func (s BookingService) notify(ctx context.Context, b models.Booking, build func(models.Booking) (notify.Message, error)) {
	if s.Mailer == nil || b.CustomerEmail() == "" {
		return
	}
	msg, err := build(b)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		utils.LogError(s.RequestID, "booking", "notify", err)
	}
}
