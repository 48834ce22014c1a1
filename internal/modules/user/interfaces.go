package user

import (
	"context"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Update(ctx context.Context, tx *gorm.DB, u *domain.User) error
	CountOtherAdmins(ctx context.Context, tx *gorm.DB, excludeID int64) (int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, id int64) error
}

// SessionRevoker invalidates a user's refresh tokens after deletion or
// deactivation.
type SessionRevoker interface {
	RevokeByUser(ctx context.Context, userID int64) error
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
