package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/incial/crm-api/internal/config"
	"github.com/incial/crm-api/internal/domain"
)

// Notifier delivers a reset code to a recipient. Delivery failures are opaque
// to the lifecycle: the committed code stays valid either way.
type Notifier interface {
	Send(ctx context.Context, recipient, code string) error
}

// Store is the storage contract the lifecycle needs. Put must atomically
// supersede any prior code for the same email, and MarkVerified must be a
// single conditional operation (match + unverified + unexpired -> verified).
type Store interface {
	Put(ctx context.Context, o *domain.Otp) error
	DeleteByEmail(ctx context.Context, email string) error
	MarkVerified(ctx context.Context, email, code string, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type Service interface {
	// Generate issues a fresh code for the email, invalidating any prior one,
	// and triggers delivery. The code is returned even when delivery fails
	// (the error then wraps domain.ErrDelivery).
	Generate(ctx context.Context, email string) (string, error)
	// Verify consumes the code: true at most once per generated code.
	Verify(ctx context.Context, email, code string) (bool, error)
	// SweepExpired is best-effort housekeeping; errors are logged, not returned.
	SweepExpired(ctx context.Context)
}

type service struct {
	store    Store
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time
}

func NewService(store Store, notifier Notifier) Service {
	return &service{
		store:    store,
		notifier: notifier,
		ttl:      config.OtpTTL,
		now:      time.Now,
	}
}

func (s *service) Generate(ctx context.Context, email string) (string, error) {
	code, err := newCode()
	if err != nil {
		return "", err
	}

	now := s.now()
	o := &domain.Otp{
		Email:     email,
		Code:      code,
		Verified:  false,
		ExpiresAt: now.Add(s.ttl).Unix(),
		CreatedAt: now.UTC(),
	}
	// Put replaces any prior code for this email in one write; there is never
	// a window where zero or two active codes exist.
	if err := s.store.Put(ctx, o); err != nil {
		return "", fmt.Errorf("persist otp: %v: %w", err, domain.ErrStorage)
	}

	// Delivery happens after the code is committed. A notifier failure must
	// not undo the stored code, so it is reported under a separate sentinel.
	if err := s.notifier.Send(ctx, email, code); err != nil {
		slog.Warn("otp delivery failed", "recipient", email, "err", err)
		return code, fmt.Errorf("send otp: %v: %w", err, domain.ErrDelivery)
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, email, code string) (bool, error) {
	ok, err := s.store.MarkVerified(ctx, email, code, s.now())
	if err != nil {
		return false, fmt.Errorf("verify otp: %v: %w", err, domain.ErrStorage)
	}
	// false covers wrong, expired, already used, and never issued alike.
	return ok, nil
}

func (s *service) SweepExpired(ctx context.Context) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		slog.Warn("otp sweep failed", "err", err)
		return
	}
	if n > 0 {
		slog.Info("swept expired otps", "deleted", n)
	}
}

// newCode draws a 6-digit zero-padded code from crypto/rand.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("draw otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
