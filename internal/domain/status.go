package domain

import "fmt"

var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:    {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed:  {BookingInProgress: true, BookingCancelled: true},
	BookingInProgress: {BookingCompleted: true, BookingCancelled: true},
	BookingCompleted:  {},
	BookingCancelled:  {},
}

func CanTransition(from, to BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CustomerCancellable reports whether the booking owner may still cancel.
func (s BookingStatus) CustomerCancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}

// HoldsCab reports whether a booking in status s keeps its cab Booked.
func (s BookingStatus) HoldsCab() bool {
	return s == BookingConfirmed || s == BookingInProgress
}

// ValidateTransition returns a ValidationError when from -> to is not allowed.
func ValidateTransition(from, to BookingStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return ValidationError{
		Field: "status",
		Msg:   fmt.Sprintf("invalid status transition from %s to %s", from, to),
	}
}

// CabStatusAfter returns the status a cab must take when its booking moves
// from old to next, and false when the cab is left untouched.
func CabStatusAfter(old, next BookingStatus) (CabStatus, bool) {
	switch next {
	case BookingConfirmed:
		return CabBooked, true
	case BookingCancelled, BookingCompleted:
		if old.HoldsCab() {
			return CabAvailable, true
		}
	}
	return 0, false
}

// ApplyCabStatus resolves the cab status to persist, given the cab's current
// status and the derived target. Only a Booked cab is released back to
// Available; Maintenance and Unavailable are admin decisions and stay.
func ApplyCabStatus(current, target CabStatus) (CabStatus, bool) {
	if current == target {
		return current, false
	}
	if target == CabAvailable && current != CabBooked {
		return current, false
	}
	return target, true
}
