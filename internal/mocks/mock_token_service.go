package mocks

import (
	"fmt"
	"strings"

	"github.com/you/foodauth/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens are readable strings that the default Verify parses back.
type MockTokenService struct {
	IssueAccessTokenFunc  func(payload domain.TokenPayload) (string, error)
	IssueRefreshTokenFunc func(payload domain.TokenPayload) (string, error)
	VerifyFunc            func(token string, kind domain.SecretKind) (*domain.TokenPayload, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func mockToken(prefix string, p domain.TokenPayload) string {
	id := p.UserID
	if p.Type == domain.PrincipalStaff {
		id = p.StaffID
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", prefix, p.Type, id, p.Email, p.Role)
}

func (m *MockTokenService) IssueAccessToken(payload domain.TokenPayload) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(payload)
	}
	return mockToken("access", payload), nil
}

func (m *MockTokenService) IssueRefreshToken(payload domain.TokenPayload) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(payload)
	}
	return mockToken("refresh", payload), nil
}

func (m *MockTokenService) IssuePair(payload domain.TokenPayload) (*domain.TokenPair, error) {
	access, err := m.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses tokens produced by the default issuers.
func (m *MockTokenService) Verify(token string, kind domain.SecretKind) (*domain.TokenPayload, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, kind)
	}
	parts := strings.Split(token, "|")
	if len(parts) != 5 {
		return nil, domain.ErrTokenInvalid
	}
	want := "access"
	if kind == domain.RefreshSecret {
		want = "refresh"
	}
	if parts[0] != want {
		return nil, domain.ErrTokenInvalid
	}

	p := &domain.TokenPayload{Type: domain.PrincipalType(parts[1]), Email: parts[3]}
	switch p.Type {
	case domain.PrincipalUser:
		p.UserID = parts[2]
	case domain.PrincipalStaff:
		p.StaffID = parts[2]
		role, err := domain.ParseStaffRole(parts[4])
		if err != nil {
			return nil, domain.ErrTokenInvalid
		}
		p.Role = role
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	return p, nil
}

var _ domain.TokenService = (*MockTokenService)(nil)
