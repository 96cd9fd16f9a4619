package mocks

import (
	"context"

	"github.com/you/foodauth/domain"
)

// MockAuthService implements domain.AuthService interface for testing.
// Unset functions fail the way an empty system would.
type MockAuthService struct {
	RegisterUserFunc func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error)
	LoginUserFunc    func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginStaffFunc   func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	VerifyOTPFunc    func(ctx context.Context, userID, code string) (*domain.AuthResult, error)
	ResendOTPFunc    func(ctx context.Context, userID string) error
	RefreshFunc      func(ctx context.Context, refreshToken string) (string, error)
	CurrentUserFunc  func(ctx context.Context, userID string) (*domain.User, error)
	CurrentStaffFunc func(ctx context.Context, staffID string) (*domain.Staff, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RegisterUser(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(ctx, in)
	}
	return &domain.AuthResult{UserID: "user-1", RequiresVerification: true}, nil
}

func (m *MockAuthService) LoginUser(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginUserFunc != nil {
		return m.LoginUserFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) LoginStaff(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginStaffFunc != nil {
		return m.LoginStaffFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, userID, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, userID, code)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockAuthService) ResendOTP(ctx context.Context, userID string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, userID)
	}
	return nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "", domain.ErrInvalidRefreshToken
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) CurrentStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	if m.CurrentStaffFunc != nil {
		return m.CurrentStaffFunc(ctx, staffID)
	}
	return nil, domain.ErrStaffNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)
