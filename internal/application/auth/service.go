package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/incial/crm-api/internal/application/otp"
	"github.com/incial/crm-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute name used in partial update maps.
const fieldPasswordHash = "password_hash"

type Service interface {
	// Login checks credentials and issues a signed token carrying the role.
	Login(ctx context.Context, req domain.LoginRequest) (token string, user *domain.User, err error)
	// RequestReset issues a reset code. Unknown emails succeed silently so the
	// endpoint cannot be used to probe for accounts.
	RequestReset(ctx context.Context, email string) error
	// VerifyReset consumes the code without changing the password.
	VerifyReset(ctx context.Context, email, code string) (bool, error)
	// ConfirmReset consumes the code and, on success, replaces the password.
	ConfirmReset(ctx context.Context, req domain.ConfirmResetRequest) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type tokenSigner interface {
	Sign(subject, role string) (string, error)
}

type service struct {
	users  userStore
	otps   otp.Service
	signer tokenSigner
}

func NewService(users userStore, otps otp.Service, signer tokenSigner) Service {
	return &service{users: users, otps: otps, signer: signer}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown email and bad password.
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return "", nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) RequestReset(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("reset requested for unknown email", "email", email)
			return nil
		}
		return err
	}
	_, err := s.otps.Generate(ctx, email)
	return err
}

func (s *service) VerifyReset(ctx context.Context, email, code string) (bool, error) {
	return s.otps.Verify(ctx, email, code)
}

func (s *service) ConfirmReset(ctx context.Context, req domain.ConfirmResetRequest) error {
	ok, err := s.otps.Verify(ctx, req.Email, req.Otp)
	if err != nil {
		return err
	}
	if !ok {
		// Wrong, expired, and reused codes are indistinguishable here.
		return fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, req.Email, map[string]interface{}{fieldPasswordHash: string(hash)})
}
