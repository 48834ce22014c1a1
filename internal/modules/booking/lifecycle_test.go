package booking

import (
	"testing"
	"time"

	"hotelhub/internal/domain"
	"hotelhub/internal/policy"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(domain.BookingPending, domain.BookingConfirmed))
	assert.True(t, CanTransition(domain.BookingPending, domain.BookingCancelled))
	assert.True(t, CanTransition(domain.BookingPending, domain.BookingCompleted))
	assert.True(t, CanTransition(domain.BookingConfirmed, domain.BookingCompleted))
	assert.True(t, CanTransition(domain.BookingConfirmed, domain.BookingCancelled))

	assert.False(t, CanTransition(domain.BookingConfirmed, domain.BookingPending))
	assert.False(t, CanTransition(domain.BookingCancelled, domain.BookingPending))
	assert.False(t, CanTransition(domain.BookingCancelled, domain.BookingConfirmed))
	assert.False(t, CanTransition(domain.BookingCompleted, domain.BookingCancelled))
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(domain.BookingCancelled))
	assert.True(t, Terminal(domain.BookingCompleted))
	assert.False(t, Terminal(domain.BookingPending))
	assert.False(t, Terminal(domain.BookingConfirmed))
}

func TestCheckCancellable_WindowBoundary(t *testing.T) {
	owner := policy.Actor{ID: 7, Role: domain.RoleUser}
	checkIn := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)
	b := &domain.Booking{UserID: 7, Status: domain.BookingConfirmed, CheckIn: checkIn}

	// Exactly 48h before check-in: allowed.
	atBoundary := checkIn.Add(-CancellationNotice)
	assert.NoError(t, CheckCancellable(owner, b, atBoundary))

	// One minute later: too late.
	err := CheckCancellable(owner, b, atBoundary.Add(time.Minute))
	assert.ErrorIs(t, err, ErrCancellationWindow)

	// Well before the window: allowed.
	assert.NoError(t, CheckCancellable(owner, b, checkIn.Add(-72*time.Hour)))
}

func TestCheckCancellable_StaffBypassesWindow(t *testing.T) {
	checkIn := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)
	b := &domain.Booking{UserID: 7, Status: domain.BookingPending, CheckIn: checkIn}

	employee := policy.Actor{ID: 99, Role: domain.RoleEmployee}
	assert.NoError(t, CheckCancellable(employee, b, checkIn.Add(-time.Hour)))

	admin := policy.Actor{ID: 100, Role: domain.RoleAdmin}
	assert.NoError(t, CheckCancellable(admin, b, checkIn.Add(-time.Minute)))
}

func TestCheckCancellable_OwnershipRequired(t *testing.T) {
	checkIn := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)
	b := &domain.Booking{UserID: 7, Status: domain.BookingPending, CheckIn: checkIn}

	stranger := policy.Actor{ID: 8, Role: domain.RoleUser}
	err := CheckCancellable(stranger, b, checkIn.Add(-96*time.Hour))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCheckCancellable_TerminalBooking(t *testing.T) {
	staff := policy.Actor{ID: 99, Role: domain.RoleAdmin}
	b := &domain.Booking{UserID: 7, Status: domain.BookingCancelled, CheckIn: time.Now().Add(240 * time.Hour)}

	err := CheckCancellable(staff, b, time.Now())
	assert.ErrorIs(t, err, ErrTerminalStatus)
}
