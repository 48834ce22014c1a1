package repository

import (
	"context"
	"time"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, tx *gorm.DB, t *domain.RefreshToken) error {
	return dbOr(r.db, tx).WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, tx *gorm.DB, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := forUpdate(dbOr(r.db, tx).WithContext(ctx)).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) MarkUsed(ctx context.Context, tx *gorm.DB, id int64, replacedByID *int64) error {
	now := time.Now().UTC()
	updates := map[string]any{"used_at": now, "revoked_at": now}
	if replacedByID != nil {
		updates["replaced_by_id"] = *replacedByID
	}
	return dbOr(r.db, tx).WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

// RevokeFamily revokes every live token descended from the same login.
// Used when token reuse is detected.
func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, tx *gorm.DB, familyID string) error {
	now := time.Now().UTC()
	return dbOr(r.db, tx).WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", now).Error
}

func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	q := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", now).
		Delete(&domain.RefreshToken{})
	return q.RowsAffected, q.Error
}
