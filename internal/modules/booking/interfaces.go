package booking

import (
	"context"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

// BookingRepository — only the methods the reservation service uses.
// Methods taking a tx participate in the service's atomic unit; a nil tx
// runs against the repository's own handle.
type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error)
	ActiveForHotel(ctx context.Context, tx *gorm.DB, hotelID, excludeID int64) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	Update(ctx context.Context, tx *gorm.DB, b *domain.Booking) error
}

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Hotel, error)
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
