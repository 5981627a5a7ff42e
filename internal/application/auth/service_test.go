package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/incial/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	return m.Called(ctx, email, updates).Error(0)
}

type mockOtpSvc struct{ mock.Mock }

func (m *mockOtpSvc) Generate(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *mockOtpSvc) Verify(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}
func (m *mockOtpSvc) SweepExpired(ctx context.Context) { m.Called(ctx) }

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(subject, role string) (string, error) {
	args := m.Called(subject, role)
	return args.String(0), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Login ---

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	sg := &mockSigner{}
	user := &domain.User{Email: "a@x.com", Role: domain.RoleEmployee, Enable: true, PasswordHash: hashOf(t, "hunter22")}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)
	sg.On("Sign", "a@x.com", domain.RoleEmployee).Return("signed-token", nil)

	svc := NewService(us, &mockOtpSvc{}, sg)
	token, u, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "hunter22"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, user, u)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	user := &domain.User{Email: "a@x.com", Role: domain.RoleAdmin, Enable: true, PasswordHash: hashOf(t, "hunter22")}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)

	svc := NewService(us, &mockOtpSvc{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "nope"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UnknownEmail_SameError(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := NewService(us, &mockOtpSvc{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@x.com", Password: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.False(t, errors.Is(err, domain.ErrNotFound), "must not leak account existence")
}

func TestLogin_DisabledAccount(t *testing.T) {
	us := &mockUserStore{}
	user := &domain.User{Email: "a@x.com", Enable: false, PasswordHash: hashOf(t, "hunter22")}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil)

	svc := NewService(us, &mockOtpSvc{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "hunter22"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// --- RequestReset ---

func TestRequestReset_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{Email: "a@x.com", Enable: true}, nil)
	os.On("Generate", mock.Anything, "a@x.com").Return("048213", nil)

	svc := NewService(us, os, &mockSigner{})
	require.NoError(t, svc.RequestReset(context.Background(), "a@x.com"))
	os.AssertCalled(t, "Generate", mock.Anything, "a@x.com")
}

func TestRequestReset_UnknownEmail_SilentSuccess(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := NewService(us, os, &mockSigner{})
	require.NoError(t, svc.RequestReset(context.Background(), "ghost@x.com"))
	os.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRequestReset_DeliveryErrorPropagates(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{Email: "a@x.com", Enable: true}, nil)
	os.On("Generate", mock.Anything, "a@x.com").Return("048213", domain.ErrDelivery)

	svc := NewService(us, os, &mockSigner{})
	err := svc.RequestReset(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
}

// --- ConfirmReset ---

func TestConfirmReset_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	os.On("Verify", mock.Anything, "a@x.com", "048213").Return(true, nil)
	us.On("Update", mock.Anything, "a@x.com", mock.MatchedBy(func(updates map[string]interface{}) bool {
		hash, ok := updates[fieldPasswordHash].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword1")) == nil
	})).Return(nil)

	svc := NewService(us, os, &mockSigner{})
	err := svc.ConfirmReset(context.Background(), domain.ConfirmResetRequest{
		Email: "a@x.com", Otp: "048213", NewPassword: "newpassword1",
	})
	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestConfirmReset_BadCode_NoPasswordChange(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	os.On("Verify", mock.Anything, "a@x.com", "000000").Return(false, nil)

	svc := NewService(us, os, &mockSigner{})
	err := svc.ConfirmReset(context.Background(), domain.ConfirmResetRequest{
		Email: "a@x.com", Otp: "000000", NewPassword: "newpassword1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmReset_StorageErrorPropagates(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOtpSvc{}
	os.On("Verify", mock.Anything, "a@x.com", "048213").Return(false, domain.ErrStorage)

	svc := NewService(us, os, &mockSigner{})
	err := svc.ConfirmReset(context.Background(), domain.ConfirmResetRequest{
		Email: "a@x.com", Otp: "048213", NewPassword: "newpassword1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}
