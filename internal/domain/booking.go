package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking holds a stay as a half-open interval [CheckIn, CheckOut).
// GuestsCount and TotalPrice are derived: the reservation service recomputes
// them whenever guest names or dates change, they are never client-supplied.
type Booking struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	HotelID         int64         `json:"hotel_id" validate:"required"`
	CheckIn         time.Time     `json:"check_in" validate:"required"`
	CheckOut        time.Time     `json:"check_out" validate:"required"`
	GuestNames      []string      `json:"guest_names"`
	GuestsCount     int           `json:"guests_count"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	ContactPhone    string        `json:"contact_phone"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	User  *User  `json:"user,omitempty"`
	Hotel *Hotel `json:"hotel,omitempty"`
}
