package user

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"max=20"`
	Role     string `json:"role" validate:"omitempty,oneof=user employee admin"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone" validate:"omitempty,max=20"`
	Role   *string `json:"role" validate:"omitempty,oneof=user employee admin"`
	Active *bool   `json:"active"`
}
