package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/campusworks/rollbook-backend/internal/mailer"
	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/rs/zerolog"
)

// OTP verification errors.
var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrInvalidOTP    = errors.New("invalid otp")
	ErrExpiredOTP    = errors.New("otp expired")
)

// AdminStore is the persistence surface AdminService needs.
// *repository.AdminRepository satisfies it.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.Admin, error)
	MarkVerified(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

// AdminService handles admin registration, OTP verification and sign-in.
type AdminService struct {
	store       AdminStore
	auth        *AuthService
	mail        mailer.Mailer
	otpValidity time.Duration
	log         zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(store AdminStore, auth *AuthService, mail mailer.Mailer, otpValidity time.Duration, log zerolog.Logger) *AdminService {
	return &AdminService{
		store:       store,
		auth:        auth,
		mail:        mail,
		otpValidity: otpValidity,
		log:         log.With().Str("component", "admin_service").Logger(),
	}
}

// SignUp creates an unverified admin and emails a one-time passcode.
func (s *AdminService) SignUp(ctx context.Context, req *model.AdminSignupRequest) error {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiry := time.Now().Add(s.otpValidity)

	admin := &model.Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		SecretKey:    req.SecretKey,
		OTP:          &otp,
		OTPExpiresAt: &expiry,
	}

	if err := s.store.Create(ctx, admin); err != nil {
		return err
	}

	if err := s.mail.SendOTP(admin.Email, otp); err != nil {
		// The pending row stays; the OTP expires on its own and the
		// user can sign up again once mail delivery works.
		return err
	}

	s.log.Info().Str("email", admin.Email).Msg("Admin signup pending verification")
	return nil
}

// VerifyOTP confirms the passcode for a pending admin. A wrong or
// expired passcode removes the pending account entirely, forcing a
// fresh signup.
func (s *AdminService) VerifyOTP(ctx context.Context, email, otp string) error {
	admin, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return ErrAdminNotFound
	}

	if admin.OTP == nil || *admin.OTP != otp {
		if delErr := s.store.Delete(ctx, admin.ID); delErr != nil {
			s.log.Error().Err(delErr).Int("admin_id", admin.ID).Msg("Failed to discard pending admin")
		}
		return ErrInvalidOTP
	}

	if admin.OTPExpiresAt == nil || time.Now().After(*admin.OTPExpiresAt) {
		if delErr := s.store.Delete(ctx, admin.ID); delErr != nil {
			s.log.Error().Err(delErr).Int("admin_id", admin.ID).Msg("Failed to discard pending admin")
		}
		return ErrExpiredOTP
	}

	return s.store.MarkVerified(ctx, admin.ID)
}

// SignIn authenticates an admin by username or email. The shared secret
// key is checked before the password, so a correct password with a
// wrong secret never succeeds.
func (s *AdminService) SignIn(ctx context.Context, req *model.AdminLoginRequest) (*model.Admin, string, error) {
	admin, err := s.store.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if req.SecretKey != admin.SecretKey {
		return nil, "", ErrWrongSecretKey
	}
	if !admin.IsVerified {
		return nil, "", ErrNotVerified
	}
	if err := s.auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(RoleAdmin, admin.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return admin, token, nil
}

// generateOTP returns a 6-digit passcode from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
