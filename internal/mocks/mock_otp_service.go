package mocks

import (
	"context"
	"time"

	"github.com/you/foodauth/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc func() (string, error)
	IssueFunc    func(ctx context.Context, userID, phone string) (*domain.OTPRecord, error)
	VerifyFunc   func(ctx context.Context, userID, code string) (*domain.OTPRecord, error)

	IssueCalls int
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "123456", nil
}

func (m *MockOTPService) Issue(ctx context.Context, userID, phone string) (*domain.OTPRecord, error) {
	m.IssueCalls++
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, phone)
	}
	return &domain.OTPRecord{
		ID:        "otp-1",
		UserID:    userID,
		Phone:     phone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now(),
	}, nil
}

// Verify accepts "123456" by default.
func (m *MockOTPService) Verify(ctx context.Context, userID, code string) (*domain.OTPRecord, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, code)
	}
	if code != "123456" {
		return nil, domain.ErrOTPInvalid
	}
	return &domain.OTPRecord{ID: "otp-1", UserID: userID, Code: code, Verified: true}, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
