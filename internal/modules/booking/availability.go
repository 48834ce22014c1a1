package booking

import (
	"time"

	"hotelhub/internal/domain"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Under this definition a stay that checks out
// the day another checks in does not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict scans the given bookings for one that blocks the candidate
// range. Only pending and confirmed bookings block; callers pass the read
// view already filtered to those statuses, but the status guard stays here
// so a wider slice cannot produce false conflicts. excludeID skips the
// booking being updated.
func HasConflict(existing []domain.Booking, checkIn, checkOut time.Time, excludeID int64) bool {
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID {
			continue
		}
		if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return true
		}
	}
	return false
}
