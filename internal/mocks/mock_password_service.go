package mocks

import (
	"strings"

	"github.com/you/foodauth/domain"
)

// HashPrefix marks hashes produced by MockPasswordService so fixtures can be
// written by hand.
const HashPrefix = "hashed_"

// FakeHash is the hash MockPasswordService produces for password.
func FakeHash(password string) string {
	return HashPrefix + password
}

// MockPasswordService is a reversible stand-in for bcrypt. It records the
// plaintexts it hashed and the hashes it was asked to check.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool

	Hashed   []string
	Verified []string
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	m.Hashed = append(m.Hashed, password)
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return FakeHash(password), nil
}

// Verify rejects anything not carrying HashPrefix, the way bcrypt rejects a
// malformed hash.
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	m.Verified = append(m.Verified, hashedPassword)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	plain, ok := strings.CutPrefix(hashedPassword, HashPrefix)
	return ok && plain == password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
