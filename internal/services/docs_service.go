package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	intdb "tours/internal/db"
	"tours/internal/domain"
	"tours/internal/domain/models"
	"tours/internal/repositories"
	"tours/internal/utils"
)

const (
	invoiceDueDays        = 7
	invoiceNumberAttempts = 3
)

// DocsService renders the booking invoice PDF.
type DocsService struct {
	DB        *sql.DB
	RequestID string
}

type invoiceDoc struct {
	Booking models.Booking
	Invoice models.Invoice
}

// GenerateInvoice returns the PDF bytes and a download filename. Access is
// checked before anything is written; the invoice row is created on first
// download and reused afterwards.
func (s DocsService) GenerateInvoice(ctx context.Context, actor domain.RequestContext, bookingID int64, bookingNumber string) ([]byte, string, error) {
	b, err := BookingService{DB: s.DB, RequestID: s.RequestID}.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if !canView(actor, b, bookingNumber) {
		return nil, "", domain.ForbiddenError{Msg: "You cannot download this invoice"}
	}
	inv, err := s.invoiceFor(ctx, b)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice",
		fmt.Sprintf("booking_id=%d invoice=%s", bookingID, inv.InvoiceNumber))
	return buildInvoicePDF(invoiceDoc{Booking: b, Invoice: inv})
}

// invoiceFor returns the stored invoice of b or creates one. A duplicate key
// is either a concurrent download or an invoice number collision; the
// re-read on the next attempt tells them apart.
func (s DocsService) invoiceFor(ctx context.Context, b models.Booking) (models.Invoice, error) {
	invoices := repositories.InvoiceRepo{DB: sharedDB(s.DB)}
	for attempt := 1; ; attempt++ {
		inv, err := invoices.GetByBooking(ctx, b.ID)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, internal(err)
		}

		inv = newInvoice(b)
		id, err := invoices.Create(ctx, inv)
		if err == nil {
			inv.ID = id
			utils.LogEvent(s.RequestID, "docs", "create_invoice", fmt.Sprintf("booking_id=%d invoice=%s", b.ID, inv.InvoiceNumber))
			return inv, nil
		}
		if !intdb.IsDuplicateKey(err) || attempt == invoiceNumberAttempts {
			return models.Invoice{}, internal(err)
		}
	}
}

// NewInvoiceNumber formats INV-yyyymmdd-XXXX.
func NewInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("INV-%s-%s", utils.Now().Format("20060102"), suffix)
}

func newInvoice(b models.Booking) models.Invoice {
	at := utils.Now()
	inv := models.Invoice{
		InvoiceNumber: NewInvoiceNumber(),
		BookingID:     b.ID,
		CustomerName:  b.CustomerName(),
		CustomerEmail: b.CustomerEmail(),
		CustomerPhone: b.CustomerPhone(),
		InvoiceDate:   at,
		DueDate:       at.AddDate(0, 0, invoiceDueDays),
		BaseFare:      b.BasePrice,
		OtherCharges:  b.ExtraCharges,
		TotalAmount:   b.TotalPrice,
		CreatedBy:     "System",
		CreatedAt:     at,
	}
	if b.PaymentStatus == domain.PaymentCompleted {
		inv.AmountPaid = b.TotalPrice
		inv.IsPaid = true
		inv.PaymentDate = b.PaymentDate
	}
	inv.BalanceDue = inv.TotalAmount.Sub(inv.AmountPaid)
	if b.Discount.IsPositive() {
		inv.Notes = "Discount applied: " + utils.FormatRupee(b.Discount)
	}
	return inv
}

func buildInvoicePDF(d invoiceDoc) ([]byte, string, error) {
	b, inv := d.Booking, d.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TOURS & TRAVELS - INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		"Invoice No   : " + inv.InvoiceNumber,
		"Invoice Date : " + utils.FormatDate(inv.InvoiceDate),
		"Due Date     : " + utils.FormatDate(inv.DueDate),
		"Booking No   : " + b.BookingNumber,
	}
	for _, line := range header {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Name  : "+safe(inv.CustomerName, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Email : "+safe(inv.CustomerEmail, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Phone : "+safe(inv.CustomerPhone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range tripLines(b) {
		pdf.MultiCell(0, 6, line, "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	charges := []struct {
		label  string
		amount string
	}{
		{"Base fare", utils.FormatRupee(inv.BaseFare)},
		{"Toll charges", utils.FormatRupee(inv.TollCharges)},
		{"Driver allowance", utils.FormatRupee(inv.DriverAllowance)},
		{"Parking charges", utils.FormatRupee(inv.ParkingCharges)},
		{"Night charges", utils.FormatRupee(inv.NightCharges)},
		{"GST", utils.FormatRupee(inv.GST)},
		{"Other charges", utils.FormatRupee(inv.OtherCharges)},
	}
	for _, c := range charges {
		pdf.CellFormat(120, 6, c.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, c.amount, "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, utils.FormatRupee(inv.TotalAmount), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(120, 6, "Amount paid", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, utils.FormatRupee(inv.AmountPaid), "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 6, "Balance due", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, utils.FormatRupee(inv.BalanceDue), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	status := "Payment status: " + b.PaymentStatus.String() + " (" + b.PaymentMethod.String() + ")"
	pdf.MultiCell(0, 6, status, "", "", false)
	if inv.Notes != "" {
		pdf.MultiCell(0, 6, inv.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", internal(err)
	}
	filename := fmt.Sprintf("Invoice_%s.pdf", utils.SafeFilenamePart(b.BookingNumber))
	return buf.Bytes(), filename, nil
}

func tripLines(b models.Booking) []string {
	from, to, cab, journey := "-", "-", "-", "-"
	if p := b.Price; p != nil {
		journey = p.JourneyType.String()
		if p.Route != nil {
			from, to = safe(p.Route.FromCityName, "-"), safe(p.Route.ToCityName, "-")
		}
		if p.Cab != nil {
			cab = strings.TrimSpace(p.Cab.Name + " " + p.Cab.RegistrationNumber)
		}
	}
	return []string{
		fmt.Sprintf("Route      : %s -> %s (%s)", from, to, journey),
		fmt.Sprintf("Cab        : %s", safe(cab, "-")),
		fmt.Sprintf("Travel     : %s %s", utils.FormatDate(b.TravelDate), timeHM(b.PickupTime)),
		fmt.Sprintf("Pickup     : %s", safe(b.PickupLocation, "-")),
		fmt.Sprintf("Drop-off   : %s", safe(b.DropoffLocation, "-")),
		fmt.Sprintf("Passengers : %d", b.NumberOfPassengers),
		fmt.Sprintf("Driver     : %s %s", safe(b.AssignedDriverName, "-"), b.VehicleNumber),
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func timeHM(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}
