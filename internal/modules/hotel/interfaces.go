package hotel

import (
	"context"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Hotel, error)
	List(ctx context.Context, limit, offset int) ([]domain.Hotel, error)
	Update(ctx context.Context, h *domain.Hotel) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id int64) error
}

// BookingCounter reports live bookings for a hotel; deletion is refused
// while any exist.
type BookingCounter interface {
	CountNonCancelledForHotel(ctx context.Context, tx *gorm.DB, hotelID int64) (int64, error)
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
