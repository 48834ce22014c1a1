package domain

import "time"

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

// IsStaff reports whether the role carries staff privileges.
func (r UserRole) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleEmployee || r == RoleAdmin
}

type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email" validate:"required,email"`
	PasswordHash        string     `json:"-"`
	Role                UserRole   `json:"role"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone,omitempty"`
	Active              bool       `json:"active"`
	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	DeletedAt           *time.Time `json:"-"`
}
