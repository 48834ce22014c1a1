package user

import (
	"context"
	"errors"
	"strings"

	"hotelhub/internal/domain"
	"hotelhub/internal/policy"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	tx       TxRunner
	users    UserRepository
	sessions SessionRevoker
}

func NewService(tx TxRunner, users UserRepository, sessions SessionRevoker) *Service {
	return &Service{tx: tx, users: users, sessions: sessions}
}

func (s *Service) ListUsers(ctx context.Context, actor policy.Actor, limit, offset int) ([]domain.User, error) {
	if v := policy.AuthorizeUser(actor, policy.ActionList, 0); v.Denied() {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *Service) GetUser(ctx context.Context, actor policy.Actor, id int64) (*domain.User, error) {
	if v := policy.AuthorizeUser(actor, policy.ActionRead, id); v.Denied() {
		return nil, ErrForbidden
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// CreateUser is the staff-facing account creation. The role the caller asks
// for is capped by what the caller may assign: only admins hand out staff
// roles, everyone else gets a regular user.
func (s *Service) CreateUser(ctx context.Context, actor policy.Actor, req CreateUserRequest) (*domain.User, error) {
	if v := policy.AuthorizeUser(actor, policy.ActionCreate, 0); v.Denied() {
		return nil, ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrValidation
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := policy.AssignableRole(actor, domain.UserRole(req.Role))

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser applies the patch inside one transaction with the target row
// locked. A role demotion re-counts other admins on the same transaction, so
// two concurrent demotions of the last two admins serialize on the row locks
// instead of both observing a surviving admin.
func (s *Service) UpdateUser(ctx context.Context, actor policy.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if v := policy.AuthorizeUser(actor, policy.ActionUpdate, id); v.Denied() {
		return nil, ErrForbidden
	}

	var u *domain.User
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		var err error
		u, err = s.users.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Role != nil {
			next := domain.UserRole(*req.Role)
			if !next.Valid() {
				return ErrValidation
			}
			if next != u.Role {
				if !policy.CanChangeRole(actor) {
					return ErrForbidden
				}
				// Demoting the last admin is the same hazard as deleting one.
				if u.Role == domain.RoleAdmin && next != domain.RoleAdmin {
					others, err := s.users.CountOtherAdmins(ctx, tx, u.ID)
					if err != nil {
						return err
					}
					if others == 0 {
						return ErrLastAdmin
					}
				}
				u.Role = next
			}
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrValidation
			}
			u.Name = name
		}
		if req.Phone != nil {
			u.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Active != nil {
			if !policy.CanChangeRole(actor) {
				return ErrForbidden
			}
			u.Active = *req.Active
		}

		return s.users.Update(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}

	if req.Active != nil && !u.Active {
		if err := s.sessions.RevokeByUser(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// DeleteUser soft-deletes an account. The admin count and the delete run in
// one transaction with the target row locked, so two concurrent deletions
// cannot both observe "another admin still exists".
func (s *Service) DeleteUser(ctx context.Context, actor policy.Actor, id int64) error {
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		u, err := s.users.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if v := policy.AuthorizeUser(actor, policy.ActionDelete, u.ID); v.Denied() {
			return ErrForbidden
		}

		others, err := s.users.CountOtherAdmins(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		if v := policy.CheckAdminDeletion(u, others); v.Denied() {
			return ErrLastAdmin
		}

		return s.users.SoftDelete(ctx, tx, u.ID)
	})
	if err != nil {
		return err
	}

	return s.sessions.RevokeByUser(ctx, id)
}
