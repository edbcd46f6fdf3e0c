package repositories

import (
	"context"
	"database/sql"

	intdb "tours/internal/db"
	"tours/internal/domain/models"
)

type InvoiceRepo struct {
	DB intdb.DBTX
}

func (r InvoiceRepo) db() intdb.DBTX { return conn(r.DB) }

func (r InvoiceRepo) GetByBooking(ctx context.Context, bookingID int64) (models.Invoice, error) {
	var inv models.Invoice
	var paidAt sql.NullTime
	err := r.db().QueryRowContext(ctx, `
		SELECT id, invoice_number, booking_id, COALESCE(customer_name, ''), COALESCE(customer_email, ''),
			COALESCE(customer_phone, ''), invoice_date, due_date, COALESCE(billing_address, ''),
			base_fare, toll_charges, driver_allowance, parking_charges, night_charges, gst, other_charges,
			total_amount, amount_paid, balance_due, COALESCE(notes, ''), is_paid, payment_date,
			COALESCE(created_by, ''), created_at
		FROM cab_booking_invoices WHERE booking_id = ?`, bookingID,
	).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.BookingID, &inv.CustomerName, &inv.CustomerEmail,
		&inv.CustomerPhone, &inv.InvoiceDate, &inv.DueDate, &inv.BillingAddress,
		&inv.BaseFare, &inv.TollCharges, &inv.DriverAllowance, &inv.ParkingCharges, &inv.NightCharges, &inv.GST, &inv.OtherCharges,
		&inv.TotalAmount, &inv.AmountPaid, &inv.BalanceDue, &inv.Notes, &inv.IsPaid, &paidAt,
		&inv.CreatedBy, &inv.CreatedAt,
	)
	inv.PaymentDate = nullTimePtr(paidAt)
	return inv, err
}

func (r InvoiceRepo) Create(ctx context.Context, inv models.Invoice) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO cab_booking_invoices (invoice_number, booking_id, customer_name, customer_email,
			customer_phone, invoice_date, due_date, billing_address, base_fare, toll_charges,
			driver_allowance, parking_charges, night_charges, gst, other_charges, total_amount,
			amount_paid, balance_due, notes, is_paid, payment_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.InvoiceNumber, inv.BookingID, intdb.NullIfEmpty(inv.CustomerName), intdb.NullIfEmpty(inv.CustomerEmail),
		intdb.NullIfEmpty(inv.CustomerPhone), inv.InvoiceDate, inv.DueDate, intdb.NullIfEmpty(inv.BillingAddress),
		inv.BaseFare, inv.TollCharges,
		inv.DriverAllowance, inv.ParkingCharges, inv.NightCharges, inv.GST, inv.OtherCharges, inv.TotalAmount,
		inv.AmountPaid, inv.BalanceDue, intdb.NullIfEmpty(inv.Notes), inv.IsPaid, inv.PaymentDate,
		inv.CreatedBy, inv.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
