package repository

import (
	"context"
	"time"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID             int64          `gorm:"column:id;primaryKey"`
	Name           string         `gorm:"column:name"`
	City           *string        `gorm:"column:city;index"`
	Description    *string        `gorm:"column:description"`
	NightlyRate    float64        `gorm:"column:nightly_rate"`
	TotalRooms     int            `gorm:"column:total_rooms"`
	AvailableRooms int            `gorm:"column:available_rooms"`
	IsAvailable    bool           `gorm:"column:is_available"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (hotelModel) TableName() string { return "hotels" }

func toDomainHotel(m hotelModel) *domain.Hotel {
	var city, description string
	if m.City != nil {
		city = *m.City
	}
	if m.Description != nil {
		description = *m.Description
	}

	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		v := m.DeletedAt.Time
		deletedAt = &v
	}

	return &domain.Hotel{
		ID:             m.ID,
		Name:           m.Name,
		City:           city,
		Description:    description,
		NightlyRate:    m.NightlyRate,
		TotalRooms:     m.TotalRooms,
		AvailableRooms: m.AvailableRooms,
		IsAvailable:    m.IsAvailable,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

func toHotelModel(h *domain.Hotel) hotelModel {
	var city, description *string
	if h.City != "" {
		v := h.City
		city = &v
	}
	if h.Description != "" {
		v := h.Description
		description = &v
	}

	return hotelModel{
		ID:             h.ID,
		Name:           h.Name,
		City:           city,
		Description:    description,
		NightlyRate:    h.NightlyRate,
		TotalRooms:     h.TotalRooms,
		AvailableRooms: h.AvailableRooms,
		IsAvailable:    h.IsAvailable,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainHotel(m)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var m hotelModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHotel(m), nil
}

// GetByIDForUpdate locks the hotel row for the duration of tx. The lock
// serializes concurrent booking writes for the same hotel, which makes the
// conflict check and the insert one atomic unit.
func (r *HotelRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Hotel, error) {
	var m hotelModel
	q := forUpdate(dbOr(r.db, tx).WithContext(ctx)).First(&m, id)
	if q.Error != nil {
		return nil, q.Error
	}
	return toDomainHotel(m), nil
}

func (r *HotelRepository) List(ctx context.Context, limit, offset int) ([]domain.Hotel, error) {
	var models []hotelModel
	tx := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Hotel, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainHotel(m))
	}
	return out, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	return r.db.WithContext(ctx).Model(&hotelModel{}).Where("id = ?", h.ID).Updates(map[string]any{
		"name":            m.Name,
		"city":            m.City,
		"description":     m.Description,
		"nightly_rate":    m.NightlyRate,
		"total_rooms":     m.TotalRooms,
		"available_rooms": m.AvailableRooms,
		"is_available":    m.IsAvailable,
	}).Error
}

func (r *HotelRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id int64) error {
	return dbOr(r.db, tx).WithContext(ctx).Delete(&hotelModel{}, id).Error
}
