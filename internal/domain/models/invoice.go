package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID              int64           `json:"id"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	BookingID       int64           `json:"bookingId"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	DueDate         time.Time       `json:"dueDate"`
	BillingAddress  string          `json:"billingAddress,omitempty"`
	BaseFare        decimal.Decimal `json:"baseFare"`
	TollCharges     decimal.Decimal `json:"tollCharges"`
	DriverAllowance decimal.Decimal `json:"driverAllowance"`
	ParkingCharges  decimal.Decimal `json:"parkingCharges"`
	NightCharges    decimal.Decimal `json:"nightCharges"`
	GST             decimal.Decimal `json:"gst"`
	OtherCharges    decimal.Decimal `json:"otherCharges"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	BalanceDue      decimal.Decimal `json:"balanceDue"`
	Notes           string          `json:"notes,omitempty"`
	IsPaid          bool            `json:"isPaid"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
	CreatedBy       string          `json:"createdBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
