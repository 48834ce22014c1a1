package domain

import "time"

type Hotel struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name" validate:"required"`
	City           string     `json:"city,omitempty"`
	Description    string     `json:"description,omitempty"`
	NightlyRate    float64    `json:"nightly_rate" validate:"gte=0"`
	TotalRooms     int        `json:"total_rooms" validate:"required,gt=0"`
	AvailableRooms int        `json:"available_rooms" validate:"gte=0"`
	IsAvailable    bool       `json:"is_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}
