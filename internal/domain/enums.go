package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// enumNames maps 1-based enum values to their canonical names.
type enumNames []string

func (n enumNames) name(v int) string {
	if v < 1 || v > len(n) {
		return strconv.Itoa(v)
	}
	return n[v-1]
}

func (n enumNames) valid(v int) bool { return v >= 1 && v <= len(n) }

// parse accepts the case-insensitive name or the numeric value.
func (n enumNames) parse(kind, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ValidationError{Field: kind, Msg: "is required"}
	}
	if v, err := strconv.Atoi(s); err == nil {
		if n.valid(v) {
			return v, nil
		}
		return 0, ValidationError{Field: kind, Msg: fmt.Sprintf("unknown value %d", v)}
	}
	for i, name := range n {
		if strings.EqualFold(name, s) {
			return i + 1, nil
		}
	}
	return 0, ValidationError{Field: kind, Msg: fmt.Sprintf("unknown value %q", s)}
}

func (n enumNames) unmarshal(kind string, b []byte) (int, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return 0, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		return n.parse(kind, s)
	}
	return n.parse(kind, string(b))
}

var (
	cabTypeNames       = enumNames{"Hatchback", "Sedan", "SUV", "MUV", "Luxury", "TempoTraveller"}
	cabStatusNames     = enumNames{"Available", "Booked", "Maintenance", "Unavailable"}
	journeyTypeNames   = enumNames{"OneWay", "Outstation", "Local", "Transfer"}
	bookingStatusNames = enumNames{"Pending", "Confirmed", "InProgress", "Completed", "Cancelled"}
	paymentMethodNames = enumNames{"Cash", "OnlinePayment", "CreditCard", "DebitCard", "UPI"}
	paymentStatusNames = enumNames{"Pending", "Completed", "Failed", "Refunded", "Cancelled"}
)

type CabType int

const (
	CabTypeHatchback CabType = iota + 1
	CabTypeSedan
	CabTypeSUV
	CabTypeMUV
	CabTypeLuxury
	CabTypeTempoTraveller
)

func (t CabType) String() string { return cabTypeNames.name(int(t)) }
func (t CabType) Valid() bool    { return cabTypeNames.valid(int(t)) }

func ParseCabType(s string) (CabType, error) {
	v, err := cabTypeNames.parse("type", s)
	return CabType(v), err
}

func (t CabType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *CabType) UnmarshalJSON(b []byte) error {
	v, err := cabTypeNames.unmarshal("type", b)
	*t = CabType(v)
	return err
}

type CabStatus int

const (
	CabAvailable CabStatus = iota + 1
	CabBooked
	CabMaintenance
	CabUnavailable
)

func (s CabStatus) String() string { return cabStatusNames.name(int(s)) }
func (s CabStatus) Valid() bool    { return cabStatusNames.valid(int(s)) }

func ParseCabStatus(s string) (CabStatus, error) {
	v, err := cabStatusNames.parse("status", s)
	return CabStatus(v), err
}

func (s CabStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *CabStatus) UnmarshalJSON(b []byte) error {
	v, err := cabStatusNames.unmarshal("status", b)
	*s = CabStatus(v)
	return err
}

type JourneyType int

const (
	JourneyOneWay JourneyType = iota + 1
	JourneyOutstation
	JourneyLocal
	JourneyTransfer
)

func (j JourneyType) String() string { return journeyTypeNames.name(int(j)) }
func (j JourneyType) Valid() bool    { return journeyTypeNames.valid(int(j)) }

func ParseJourneyType(s string) (JourneyType, error) {
	v, err := journeyTypeNames.parse("journey_type", s)
	return JourneyType(v), err
}

func (j JourneyType) MarshalJSON() ([]byte, error) { return json.Marshal(j.String()) }

func (j *JourneyType) UnmarshalJSON(b []byte) error {
	v, err := journeyTypeNames.unmarshal("journey_type", b)
	*j = JourneyType(v)
	return err
}

// JourneyTypes lists every journey type in declaration order.
func JourneyTypes() []JourneyType {
	out := make([]JourneyType, 0, len(journeyTypeNames))
	for i := range journeyTypeNames {
		out = append(out, JourneyType(i+1))
	}
	return out
}

type BookingStatus int

const (
	BookingPending BookingStatus = iota + 1
	BookingConfirmed
	BookingInProgress
	BookingCompleted
	BookingCancelled
)

func (s BookingStatus) String() string { return bookingStatusNames.name(int(s)) }
func (s BookingStatus) Valid() bool    { return bookingStatusNames.valid(int(s)) }

func ParseBookingStatus(s string) (BookingStatus, error) {
	v, err := bookingStatusNames.parse("status", s)
	return BookingStatus(v), err
}

func (s BookingStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	v, err := bookingStatusNames.unmarshal("status", b)
	*s = BookingStatus(v)
	return err
}

// BookingStatuses lists every booking status in declaration order.
func BookingStatuses() []BookingStatus {
	out := make([]BookingStatus, 0, len(bookingStatusNames))
	for i := range bookingStatusNames {
		out = append(out, BookingStatus(i+1))
	}
	return out
}

type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota + 1
	PaymentOnline
	PaymentCreditCard
	PaymentDebitCard
	PaymentUPI
)

func (m PaymentMethod) String() string { return paymentMethodNames.name(int(m)) }
func (m PaymentMethod) Valid() bool    { return paymentMethodNames.valid(int(m)) }

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	v, err := paymentMethodNames.parse("payment_method", s)
	return PaymentMethod(v), err
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	v, err := paymentMethodNames.unmarshal("payment_method", b)
	*m = PaymentMethod(v)
	return err
}

type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota + 1
	PaymentCompleted
	PaymentFailed
	PaymentRefunded
	PaymentCancelled
)

func (s PaymentStatus) String() string { return paymentStatusNames.name(int(s)) }
func (s PaymentStatus) Valid() bool    { return paymentStatusNames.valid(int(s)) }

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	v, err := paymentStatusNames.parse("payment_status", s)
	return PaymentStatus(v), err
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	v, err := paymentStatusNames.unmarshal("payment_status", b)
	*s = PaymentStatus(v)
	return err
}

// PaymentStatuses lists every payment status in declaration order.
func PaymentStatuses() []PaymentStatus {
	out := make([]PaymentStatus, 0, len(paymentStatusNames))
	for i := range paymentStatusNames {
		out = append(out, PaymentStatus(i+1))
	}
	return out
}

// Option is a value/name pair used to populate admin select lists.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func StatusOptions() []Option {
	out := []Option{}
	for _, s := range BookingStatuses() {
		out = append(out, Option{ID: int(s), Name: s.String()})
	}
	return out
}

func PaymentStatusOptions() []Option {
	out := []Option{}
	for _, s := range PaymentStatuses() {
		out = append(out, Option{ID: int(s), Name: s.String()})
	}
	return out
}

func JourneyTypeOptions() []Option {
	out := []Option{}
	for _, j := range JourneyTypes() {
		out = append(out, Option{ID: int(j), Name: j.String()})
	}
	return out
}
