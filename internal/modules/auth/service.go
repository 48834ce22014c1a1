package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"hotelhub/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type Service struct {
	tx     TxRunner
	users  UserRepository
	tokens RefreshTokenRepository
	jwt    jwtService

	refreshTokenPepper string
	refreshTTL         time.Duration

	now func() time.Time
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

func NewService(
	tx TxRunner,
	users UserRepository,
	tokens RefreshTokenRepository,
	jwt jwtService,
	refreshTokenPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		tx:                 tx,
		users:              users,
		tokens:             tokens,
		jwt:                jwt,
		refreshTokenPepper: refreshTokenPepper,
		refreshTTL:         refreshTTL,
		now:                time.Now,
	}
}

// Register creates a regular user account. Privileged accounts are created
// by admins through the user module, never through self-registration.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedLoginAttempts {
			t := now.Add(lockoutDuration)
			lockedUntil = &t
		}
		if recErr := s.users.RecordFailedLogin(ctx, user.ID, attempts, lockedUntil); recErr != nil {
			return nil, recErr
		}
		if lockedUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.users.ClearLoginLock(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshRaw, refreshHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, nil, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: refreshHash,
		JTI:       uuid.NewString(),
		FamilyID:  uuid.NewString(),
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

// RefreshSession rotates the refresh token. Presenting a token that was
// already rotated or revoked burns the whole family: someone is replaying
// a stolen token, so every descendant session is cut.
func (s *Service) RefreshSession(ctx context.Context, refreshRaw string) (*RefreshResult, error) {
	now := s.now()
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)

	var result *RefreshResult
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		current, err := s.tokens.GetByHash(ctx, tx, hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}

		if current.IsExpired(now) {
			return ErrInvalidRefreshToken
		}
		if current.UsedAt != nil || current.IsRevoked() {
			if err := s.tokens.RevokeFamily(ctx, tx, current.FamilyID); err != nil {
				return err
			}
			return ErrRefreshTokenReused
		}

		user, err := s.users.GetByID(ctx, current.UserID)
		if err != nil {
			return err
		}
		if !user.Active {
			if err := s.tokens.RevokeFamily(ctx, tx, current.FamilyID); err != nil {
				return err
			}
			return ErrAccountDisabled
		}

		accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
		if err != nil {
			return err
		}
		newRaw, newHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
		if err != nil {
			return err
		}

		next := &domain.RefreshToken{
			UserID:    current.UserID,
			TokenHash: newHash,
			JTI:       uuid.NewString(),
			FamilyID:  current.FamilyID,
			ExpiresAt: now.Add(s.refreshTTL),
		}
		if err := s.tokens.Create(ctx, tx, next); err != nil {
			return err
		}
		if err := s.tokens.MarkUsed(ctx, tx, current.ID, &next.ID); err != nil {
			return err
		}

		result = &RefreshResult{AccessToken: accessToken, RefreshToken: newRaw}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op so
// logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)

	token, err := s.tokens.GetByHash(ctx, nil, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.tokens.Revoke(ctx, token.ID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
