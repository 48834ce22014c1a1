package hotel

import (
	"context"
	"errors"
	"strings"

	"hotelhub/internal/domain"
	"hotelhub/internal/policy"

	"gorm.io/gorm"
)

type Service struct {
	tx       TxRunner
	hotels   HotelRepository
	bookings BookingCounter
}

func NewService(tx TxRunner, hotels HotelRepository, bookings BookingCounter) *Service {
	return &Service{tx: tx, hotels: hotels, bookings: bookings}
}

func (s *Service) CreateHotel(ctx context.Context, actor policy.Actor, req CreateHotelRequest) (*domain.Hotel, error) {
	if v := policy.AuthorizeHotel(actor, policy.ActionCreate); v.Denied() {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	h := &domain.Hotel{
		Name:           name,
		City:           strings.TrimSpace(req.City),
		Description:    strings.TrimSpace(req.Description),
		NightlyRate:    req.NightlyRate,
		TotalRooms:     req.TotalRooms,
		AvailableRooms: req.TotalRooms,
		IsAvailable:    isAvailable,
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) ListHotels(ctx context.Context, limit, offset int) ([]domain.Hotel, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.hotels.List(ctx, limit, offset)
}

func (s *Service) UpdateHotel(ctx context.Context, actor policy.Actor, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	if v := policy.AuthorizeHotel(actor, policy.ActionUpdate); v.Denied() {
		return nil, ErrForbidden
	}

	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		h.Name = name
	}
	if req.City != nil {
		h.City = strings.TrimSpace(*req.City)
	}
	if req.Description != nil {
		h.Description = strings.TrimSpace(*req.Description)
	}
	if req.NightlyRate != nil {
		if *req.NightlyRate <= 0 {
			return nil, ErrValidation
		}
		h.NightlyRate = *req.NightlyRate
	}
	if req.TotalRooms != nil {
		if *req.TotalRooms <= 0 {
			return nil, ErrValidation
		}
		h.TotalRooms = *req.TotalRooms
	}
	if req.AvailableRooms != nil {
		if *req.AvailableRooms < 0 {
			return nil, ErrValidation
		}
		h.AvailableRooms = *req.AvailableRooms
	}
	// available_rooms never exceeds total_rooms, whichever side moved.
	if h.AvailableRooms > h.TotalRooms {
		h.AvailableRooms = h.TotalRooms
	}
	if req.IsAvailable != nil {
		h.IsAvailable = *req.IsAvailable
	}

	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHotel soft-deletes a hotel. The row is locked first so a booking
// being created in parallel either lands before the count or fails against
// the deleted hotel.
func (s *Service) DeleteHotel(ctx context.Context, actor policy.Actor, id int64) error {
	if v := policy.AuthorizeHotel(actor, policy.ActionDelete); v.Denied() {
		return ErrForbidden
	}

	return s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.hotels.GetByIDForUpdate(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		active, err := s.bookings.CountNonCancelledForHotel(ctx, tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrHasBookings
		}

		return s.hotels.SoftDelete(ctx, tx, id)
	})
}
