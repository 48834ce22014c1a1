package booking

import (
	"time"

	"hotelhub/internal/domain"
	"hotelhub/internal/policy"
)

// CancellationNotice is the minimum lead time a non-staff owner must leave
// between cancelling and check-in.
const CancellationNotice = 48 * time.Hour

// Terminal reports whether no further transition is permitted out of s.
func Terminal(s domain.BookingStatus) bool {
	return s == domain.BookingCancelled || s == domain.BookingCompleted
}

// CanTransition encodes the status machine:
//
//	pending -> confirmed -> completed
//	pending/confirmed -> cancelled
//	pending -> completed (staff closing out a stay directly)
//
// cancelled and completed are terminal.
func CanTransition(from, to domain.BookingStatus) bool {
	if Terminal(from) {
		return false
	}
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled || to == domain.BookingCompleted
	case domain.BookingConfirmed:
		return to == domain.BookingCancelled || to == domain.BookingCompleted
	}
	return false
}

// CheckCancellable decides whether actor may cancel b at the given time.
// Staff may always cancel a live booking; the owning user only with at
// least CancellationNotice before check-in. The error distinguishes the
// state guard, the ownership guard and the temporal policy.
func CheckCancellable(actor policy.Actor, b *domain.Booking, now time.Time) error {
	if Terminal(b.Status) {
		return ErrTerminalStatus
	}
	if policy.CanBypassCancellationWindow(actor) {
		return nil
	}
	if actor.ID != b.UserID {
		return ErrForbidden
	}
	if now.Add(CancellationNotice).After(b.CheckIn) {
		return ErrCancellationWindow
	}
	return nil
}
