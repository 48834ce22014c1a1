package booking

import "time"

type CreateBookingRequest struct {
	HotelID         int64     `json:"hotel_id" binding:"required"`
	CheckIn         time.Time `json:"check_in" binding:"required"`
	CheckOut        time.Time `json:"check_out" binding:"required"`
	GuestNames      []string  `json:"guest_names" binding:"required"`
	ContactPhone    string    `json:"contact_phone" binding:"required"`
	SpecialRequests string    `json:"special_requests"`
}

// UpdateBookingRequest is a patch: nil fields stay untouched. Status is a
// staff-only field; owners use the cancel endpoint instead.
type UpdateBookingRequest struct {
	CheckIn         *time.Time `json:"check_in"`
	CheckOut        *time.Time `json:"check_out"`
	GuestNames      *[]string  `json:"guest_names"`
	ContactPhone    *string    `json:"contact_phone"`
	SpecialRequests *string    `json:"special_requests"`
	Status          *string    `json:"status"`
}

type AvailabilityRequest struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02"`
}

type AvailabilityResponse struct {
	HotelID   int64     `json:"hotel_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Available bool      `json:"available"`
}
