package repository

import (
	"context"
	"strings"
	"time"

	"hotelhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                  int64          `gorm:"column:id;primaryKey"`
	Email               string         `gorm:"column:email;uniqueIndex"`
	PasswordHash        string         `gorm:"column:password_hash"`
	Role                string         `gorm:"column:role;index"`
	Name                string         `gorm:"column:name"`
	Phone               *string        `gorm:"column:phone"`
	Active              bool           `gorm:"column:active"`
	FailedLoginAttempts int            `gorm:"column:failed_login_attempts"`
	LockedUntil         *time.Time     `gorm:"column:locked_until"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}

	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		v := m.DeletedAt.Time
		deletedAt = &v
	}

	return &domain.User{
		ID:                  m.ID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                domain.UserRole(m.Role),
		Name:                m.Name,
		Phone:               phone,
		Active:              m.Active,
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}

	return userModel{
		ID:                  u.ID,
		Email:               email,
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		Name:                u.Name,
		Phone:               phone,
		Active:              u.Active,
		FailedLoginAttempts: u.FailedLoginAttempts,
		LockedUntil:         u.LockedUntil,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// GetByIDForUpdate locks the user row for the duration of tx.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.User, error) {
	var m userModel
	q := forUpdate(dbOr(r.db, tx).WithContext(ctx)).First(&m, id)
	if q.Error != nil {
		return nil, q.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var models []userModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, tx *gorm.DB, u *domain.User) error {
	m := toUserModel(u)
	q := dbOr(r.db, tx).WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email":  m.Email,
		"role":   m.Role,
		"name":   m.Name,
		"phone":  m.Phone,
		"active": m.Active,
	})
	return q.Error
}

// RecordFailedLogin bumps the failed-attempt counter, locking the account
// when lockedUntil is non-nil.
func (r *UserRepository) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	updates := map[string]any{"failed_login_attempts": attempts}
	if lockedUntil != nil {
		updates["locked_until"] = *lockedUntil
	}
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) ClearLoginLock(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}).Error
}

// CountOtherAdmins counts live admin accounts excluding id. Callers run it
// inside the deletion transaction so the last-admin check and the delete see
// the same state.
func (r *UserRepository) CountOtherAdmins(ctx context.Context, tx *gorm.DB, excludeID int64) (int64, error) {
	var cnt int64
	q := dbOr(r.db, tx).WithContext(ctx).Model(&userModel{}).
		Where("role = ? AND id <> ?", string(domain.RoleAdmin), excludeID).
		Count(&cnt)
	if q.Error != nil {
		return 0, q.Error
	}
	return cnt, nil
}

// SoftDelete marks the account deleted; the row stays for audit purposes.
func (r *UserRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id int64) error {
	return dbOr(r.db, tx).WithContext(ctx).Delete(&userModel{}, id).Error
}
