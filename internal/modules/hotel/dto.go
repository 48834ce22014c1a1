package hotel

type CreateHotelRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	City        string  `json:"city" binding:"max=100"`
	Description string  `json:"description" binding:"max=2000"`
	NightlyRate float64 `json:"nightly_rate" binding:"required,gt=0"`
	TotalRooms  int     `json:"total_rooms" binding:"required,gt=0"`
	IsAvailable *bool   `json:"is_available"`
}

type UpdateHotelRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=2,max=200"`
	City           *string  `json:"city" binding:"omitempty,max=100"`
	Description    *string  `json:"description" binding:"omitempty,max=2000"`
	NightlyRate    *float64 `json:"nightly_rate" binding:"omitempty,gt=0"`
	TotalRooms     *int     `json:"total_rooms" binding:"omitempty,gt=0"`
	AvailableRooms *int     `json:"available_rooms" binding:"omitempty,gte=0"`
	IsAvailable    *bool    `json:"is_available"`
}
