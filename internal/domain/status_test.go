package domain

import (
	"encoding/json"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingInProgress, false},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingInProgress, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingInProgress, BookingCompleted, true},
		{BookingInProgress, BookingCancelled, true},
		{BookingInProgress, BookingConfirmed, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCompleted, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingPending, BookingPending, false},
		{BookingStatus(0), BookingConfirmed, false},
		{BookingStatus(42), BookingConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range BookingStatuses() {
		want := s == BookingCompleted || s == BookingCancelled
		if s.IsTerminal() != want {
			t.Fatalf("%s terminal = %v, want %v", s, s.IsTerminal(), want)
		}
	}
}

func TestValidateTransitionMessage(t *testing.T) {
	err := ValidateTransition(BookingCompleted, BookingCancelled)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if got := err.Error(); got != "status: invalid status transition from Completed to Cancelled" {
		t.Fatalf("unexpected message %q", got)
	}
	if err := ValidateTransition(BookingPending, BookingConfirmed); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCabStatusAfter(t *testing.T) {
	cases := []struct {
		old, next BookingStatus
		want      CabStatus
		changed   bool
	}{
		{BookingPending, BookingConfirmed, CabBooked, true},
		{BookingPending, BookingCancelled, 0, false},
		{BookingConfirmed, BookingCancelled, CabAvailable, true},
		{BookingConfirmed, BookingInProgress, 0, false},
		{BookingInProgress, BookingCompleted, CabAvailable, true},
		{BookingInProgress, BookingCancelled, CabAvailable, true},
	}
	for _, tc := range cases {
		got, changed := CabStatusAfter(tc.old, tc.next)
		if changed != tc.changed || got != tc.want {
			t.Fatalf("CabStatusAfter(%s, %s) = (%s, %v), want (%s, %v)", tc.old, tc.next, got, changed, tc.want, tc.changed)
		}
	}
}

func TestApplyCabStatusKeepsAdminStatuses(t *testing.T) {
	if s, ok := ApplyCabStatus(CabMaintenance, CabAvailable); ok || s != CabMaintenance {
		t.Fatalf("maintenance cab must stay, got %s %v", s, ok)
	}
	if s, ok := ApplyCabStatus(CabBooked, CabAvailable); !ok || s != CabAvailable {
		t.Fatalf("booked cab must be released, got %s %v", s, ok)
	}
	if s, ok := ApplyCabStatus(CabAvailable, CabBooked); !ok || s != CabBooked {
		t.Fatalf("available cab must be booked, got %s %v", s, ok)
	}
	if _, ok := ApplyCabStatus(CabBooked, CabBooked); ok {
		t.Fatalf("no-op expected")
	}
}

func TestEnumParsing(t *testing.T) {
	if s, err := ParseBookingStatus("inprogress"); err != nil || s != BookingInProgress {
		t.Fatalf("parse by name: %v %v", s, err)
	}
	if s, err := ParseBookingStatus("5"); err != nil || s != BookingCancelled {
		t.Fatalf("parse by number: %v %v", s, err)
	}
	if _, err := ParseBookingStatus("Archived"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParseCabStatus("9"); err == nil {
		t.Fatalf("expected error for out of range value")
	}
	if j, err := ParseJourneyType("Outstation"); err != nil || j != JourneyOutstation {
		t.Fatalf("parse journey: %v %v", j, err)
	}
}

func TestEnumJSON(t *testing.T) {
	var payload struct {
		Type   CabType       `json:"type"`
		Method PaymentMethod `json:"payment_method"`
	}
	if err := json.Unmarshal([]byte(`{"type":"SUV","payment_method":5}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Type != CabTypeSUV || payload.Method != PaymentUPI {
		t.Fatalf("unexpected payload %+v", payload)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"type":"SUV","payment_method":"UPI"}` {
		t.Fatalf("unexpected json %s", out)
	}
}
