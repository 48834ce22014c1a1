package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelhub/internal/domain"
	"hotelhub/internal/policy"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service orchestrates reservations: access policy first, then date
// ordering, availability, pricing, lifecycle, and finally the write. Every
// mutation of a booking runs inside one transaction that holds a lock on
// the hotel row (create, date change) or the booking row (cancel, status
// edit), so the check and the write are a single atomic unit.
type Service struct {
	tx       TxRunner
	bookings BookingRepository
	hotels   HotelRepository
	now      func() time.Time
}

func NewService(tx TxRunner, bookings BookingRepository, hotels HotelRepository) *Service {
	return &Service{
		tx:       tx,
		bookings: bookings,
		hotels:   hotels,
		now:      time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, actor policy.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if v := policy.AuthorizeBooking(actor, policy.ActionCreate, actor.ID); v.Denied() {
		return nil, ErrForbidden
	}

	names := normalizeGuestNames(req.GuestNames)
	if len(names) == 0 {
		return nil, ErrValidation
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrValidation
	}
	if req.CheckIn.Before(s.now()) {
		return nil, ErrValidation
	}

	var out *domain.Booking
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		hotel, err := s.hotels.GetByIDForUpdate(ctx, tx, req.HotelID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHotelNotFound
			}
			return err
		}
		if !hotel.IsAvailable || hotel.AvailableRooms < 1 {
			return ErrHotelUnavailable
		}

		existing, err := s.bookings.ActiveForHotel(ctx, tx, hotel.ID, 0)
		if err != nil {
			return err
		}
		if HasConflict(existing, req.CheckIn, req.CheckOut, 0) {
			return ErrNotAvailable
		}

		b := &domain.Booking{
			UserID:          actor.ID,
			HotelID:         hotel.ID,
			CheckIn:         req.CheckIn,
			CheckOut:        req.CheckOut,
			GuestNames:      names,
			GuestsCount:     len(names),
			TotalPrice:      TotalPrice(hotel.NightlyRate, req.CheckIn, req.CheckOut),
			Status:          domain.BookingPending,
			ContactPhone:    strings.TrimSpace(req.ContactPhone),
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		}

		if err := s.bookings.Create(ctx, tx, b); err != nil {
			if isOverbookingError(err) {
				return ErrOverbooking
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) UpdateBooking(ctx context.Context, actor policy.Actor, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	var out *domain.Booking
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		b, err := s.bookings.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if v := policy.AuthorizeBooking(actor, policy.ActionUpdate, b.UserID); v.Denied() {
			return ErrForbidden
		}
		if Terminal(b.Status) {
			return ErrTerminalStatus
		}

		if req.Status != nil {
			if !policy.CanSetBookingStatus(actor) {
				return ErrForbidden
			}
			next := domain.BookingStatus(*req.Status)
			if !next.Valid() {
				return ErrValidation
			}
			if next != b.Status {
				if !CanTransition(b.Status, next) {
					return ErrInvalidStatusTransition
				}
				b.Status = next
				if next == domain.BookingCancelled {
					now := s.now()
					b.CancelledAt = &now
				}
			}
		}

		checkIn, checkOut := b.CheckIn, b.CheckOut
		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}
		datesChanged := !checkIn.Equal(b.CheckIn) || !checkOut.Equal(b.CheckOut)

		if datesChanged {
			if !checkOut.After(checkIn) {
				return ErrValidation
			}

			// Lock the hotel row so the re-check and the write stay atomic
			// against concurrent creates for the same hotel.
			hotel, err := s.hotels.GetByIDForUpdate(ctx, tx, b.HotelID)
			if err != nil {
				return err
			}

			existing, err := s.bookings.ActiveForHotel(ctx, tx, hotel.ID, b.ID)
			if err != nil {
				return err
			}
			if HasConflict(existing, checkIn, checkOut, b.ID) {
				return ErrNotAvailable
			}

			b.CheckIn = checkIn
			b.CheckOut = checkOut
			b.TotalPrice = TotalPrice(hotel.NightlyRate, checkIn, checkOut)
		}

		if req.GuestNames != nil {
			names := normalizeGuestNames(*req.GuestNames)
			if len(names) == 0 {
				return ErrValidation
			}
			b.GuestNames = names
			b.GuestsCount = len(names)
		}
		if req.ContactPhone != nil {
			phone := strings.TrimSpace(*req.ContactPhone)
			if phone == "" {
				return ErrValidation
			}
			b.ContactPhone = phone
		}
		if req.SpecialRequests != nil {
			b.SpecialRequests = strings.TrimSpace(*req.SpecialRequests)
		}

		if err := s.bookings.Update(ctx, tx, b); err != nil {
			if isOverbookingError(err) {
				return ErrOverbooking
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelBooking is the explicit cancel (delete action). Owners are bound by
// the 48-hour notice; staff may cancel any live booking. The terminal guard
// runs on the locked row so a finished booking cannot be cancelled twice.
func (s *Service) CancelBooking(ctx context.Context, actor policy.Actor, id int64) error {
	return s.tx.InTx(ctx, func(tx *gorm.DB) error {
		b, err := s.bookings.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if v := policy.AuthorizeBooking(actor, policy.ActionDelete, b.UserID); v.Denied() {
			return ErrForbidden
		}
		if err := CheckCancellable(actor, b, s.now()); err != nil {
			return err
		}

		now := s.now()
		b.Status = domain.BookingCancelled
		b.CancelledAt = &now
		return s.bookings.Update(ctx, tx, b)
	})
}

func (s *Service) GetBooking(ctx context.Context, actor policy.Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v := policy.AuthorizeBooking(actor, policy.ActionRead, b.UserID); v.Denied() {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListBookings returns the actor's own bookings; staff see everything.
func (s *Service) ListBookings(ctx context.Context, actor policy.Actor, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if actor.Role.IsStaff() {
		return s.bookings.ListAll(ctx, limit, offset)
	}
	return s.bookings.ListByUser(ctx, actor.ID, limit, offset)
}

// CheckAvailability is the read-only probe: no locks, no special isolation.
func (s *Service) CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, ErrValidation
	}
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrHotelNotFound
		}
		return false, err
	}

	existing, err := s.bookings.ActiveForHotel(ctx, nil, hotelID, 0)
	if err != nil {
		return false, err
	}
	return !HasConflict(existing, checkIn, checkOut, 0), nil
}

func normalizeGuestNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// isOverbookingError recognizes the Postgres overlap constraint firing when
// a concurrent insert slipped past the in-transaction check. Safe for the
// caller to retry.
func isOverbookingError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" {
			return true
		}
		return pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_no_overlap"
	}
	return false
}
