package repository

import (
	"context"
	"time"

	"hotelhub/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64                        `gorm:"column:id;primaryKey"`
	UserID          int64                        `gorm:"column:user_id;index"`
	HotelID         int64                        `gorm:"column:hotel_id;index"`
	CheckIn         time.Time                    `gorm:"column:check_in"`
	CheckOut        time.Time                    `gorm:"column:check_out"`
	GuestNames      datatypes.JSONSlice[string]  `gorm:"column:guest_names"`
	GuestsCount     int                          `gorm:"column:guests_count"`
	TotalPrice      float64                      `gorm:"column:total_price"`
	Status          string                       `gorm:"column:status;index"`
	ContactPhone    string                       `gorm:"column:contact_phone"`
	SpecialRequests *string                      `gorm:"column:special_requests"`
	CreatedAt       time.Time                    `gorm:"column:created_at"`
	UpdatedAt       time.Time                    `gorm:"column:updated_at"`
	CancelledAt     *time.Time                   `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var requests string
	if m.SpecialRequests != nil {
		requests = *m.SpecialRequests
	}

	return &domain.Booking{
		ID:              m.ID,
		UserID:          m.UserID,
		HotelID:         m.HotelID,
		CheckIn:         m.CheckIn,
		CheckOut:        m.CheckOut,
		GuestNames:      []string(m.GuestNames),
		GuestsCount:     m.GuestsCount,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		ContactPhone:    m.ContactPhone,
		SpecialRequests: requests,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var requests *string
	if b.SpecialRequests != "" {
		v := b.SpecialRequests
		requests = &v
	}

	return bookingModel{
		ID:              b.ID,
		UserID:          b.UserID,
		HotelID:         b.HotelID,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		GuestNames:      datatypes.JSONSlice[string](b.GuestNames),
		GuestsCount:     b.GuestsCount,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		ContactPhone:    b.ContactPhone,
		SpecialRequests: requests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx *gorm.DB, b *domain.Booking) error {
	m := toBookingModel(b)
	q := dbOr(r.db, tx).WithContext(ctx).Create(&m)
	if q.Error != nil {
		return q.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// GetByIDForUpdate locks the booking row so a concurrent status update
// cannot revive a just-cancelled booking.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error) {
	var m bookingModel
	q := forUpdate(dbOr(r.db, tx).WithContext(ctx)).First(&m, id)
	if q.Error != nil {
		return nil, q.Error
	}
	return toDomainBooking(m), nil
}

// ActiveForHotel returns the hotel's bookings that can still block dates
// (pending or confirmed), optionally excluding one booking id so updates do
// not conflict with themselves.
func (r *BookingRepository) ActiveForHotel(ctx context.Context, tx *gorm.DB, hotelID, excludeID int64) ([]domain.Booking, error) {
	q := dbOr(r.db, tx).WithContext(ctx).
		Where("hotel_id = ? AND status IN ?", hotelID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)})
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var models []bookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CountNonCancelledForHotel counts bookings that block hotel deletion.
func (r *BookingRepository) CountNonCancelledForHotel(ctx context.Context, tx *gorm.DB, hotelID int64) (int64, error) {
	var cnt int64
	q := dbOr(r.db, tx).WithContext(ctx).Model(&bookingModel{}).
		Where("hotel_id = ? AND status <> ?", hotelID, string(domain.BookingCancelled)).
		Count(&cnt)
	if q.Error != nil {
		return 0, q.Error
	}
	return cnt, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), limit, offset)
}

func (r *BookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, r.db.WithContext(ctx), limit, offset)
}

func (r *BookingRepository) list(_ context.Context, q *gorm.DB, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	if err := q.Order("check_in ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx *gorm.DB, b *domain.Booking) error {
	m := toBookingModel(b)
	return dbOr(r.db, tx).WithContext(ctx).Model(&bookingModel{}).Where("id = ?", b.ID).Updates(map[string]any{
		"check_in":         m.CheckIn,
		"check_out":        m.CheckOut,
		"guest_names":      m.GuestNames,
		"guests_count":     m.GuestsCount,
		"total_price":      m.TotalPrice,
		"status":           m.Status,
		"contact_phone":    m.ContactPhone,
		"special_requests": m.SpecialRequests,
		"cancelled_at":     m.CancelledAt,
	}).Error
}
