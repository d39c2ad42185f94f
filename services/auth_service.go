package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/entity"
	"storefront/repository"
	"storefront/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SessionStore tracks issued tokens so logout can revoke them before they expire.
type SessionStore interface {
	Create(ctx context.Context, s *entity.Session) error
	Active(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) (bool, error)
}

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// AuthService จัดการ business logic ของการ login/logout
type AuthService struct {
	db        *gorm.DB
	userRepo  *repository.UserRepository
	sessions  SessionStore
	otp       OTPVerifier
	jwtSecret string
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, repo *repository.UserRepository, sessions SessionStore, otp OTPVerifier, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		userRepo:  repo,
		sessions:  sessions,
		otp:       otp,
		jwtSecret: secret,
		jwtTTL:    ttl,
		now:       time.Now,
	}
}

type UpdateProfileIn struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
	Created   bool         `json:"-"`
}

// Login ตรวจ OTP แล้ว get-or-create user ตามเบอร์ + ออก token
func (s *AuthService) Login(ctx context.Context, mobile, otp, fullName string) (*LoginResult, error) {
	mobile = strings.TrimSpace(mobile)
	if len(mobile) > 15 || !mobilePattern.MatchString(mobile) {
		return nil, invalidArgument("mobile must be 6 to 15 characters of digits with an optional leading +")
	}
	if !s.otp.Verify(mobile, strings.TrimSpace(otp)) {
		return nil, ErrInvalidCredentials
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = mobile
	}

	var (
		user    *entity.User
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, created, err = s.userRepo.GetOrCreate(tx, mobile, fullName)
		if err != nil {
			return err
		}
		if !user.IsActive {
			if err := s.userRepo.MarkActive(tx, user.ID); err != nil {
				return err
			}
			user.IsActive = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", mobile, err)
	}

	now := s.now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.jwtTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, user.IsStaff, sess.ID, s.jwtSecret, now, s.jwtTTL)
	if err != nil {
		return nil, fmt.Errorf("cannot generate token: %w", err)
	}

	log.Info().Uint("userId", user.ID).Str("name", user.DisplayName()).Bool("created", created).Msg("user logged in")
	return &LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, User: user, Created: created}, nil
}

// Logout revokes the session behind the current token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnauthenticated
	}
	ok, err := s.sessions.Revoke(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if !ok {
		return ErrUnauthenticated
	}
	return nil
}

// CurrentUser โหลด user ของ session ปัจจุบัน
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

// UpdateProfile แก้ชื่อของ user ปัจจุบัน; ชื่อว่างจะแสดงเป็นเบอร์มือถือแทน
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in *UpdateProfileIn) (*entity.User, error) {
	if _, err := s.CurrentUser(ctx, userID); err != nil {
		return nil, err
	}
	if in.FullName != nil {
		if err := s.userRepo.Update(ctx, userID, map[string]any{"full_name": strings.TrimSpace(*in.FullName)}); err != nil {
			return nil, fmt.Errorf("update user %d: %w", userID, err)
		}
	}
	return s.CurrentUser(ctx, userID)
}
