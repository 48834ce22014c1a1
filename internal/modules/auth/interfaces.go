package auth

import (
	"context"
	"time"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error
	ClearLoginLock(ctx context.Context, id int64) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, tx *gorm.DB, hash string) (*domain.RefreshToken, error)
	MarkUsed(ctx context.Context, tx *gorm.DB, id int64, replacedByID *int64) error
	RevokeFamily(ctx context.Context, tx *gorm.DB, familyID string) error
	Revoke(ctx context.Context, id int64) error
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
