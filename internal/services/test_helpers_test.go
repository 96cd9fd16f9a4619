package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/mocks"
)

// testClock is a settable time source shared by the services under test.
type testClock struct{ t time.Time }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// authFixture wires an AuthServiceImpl to in-memory collaborators and a real
// OTP ledger over the mock OTP repository.
type authFixture struct {
	svc       domain.AuthService
	users     *mocks.MockUserRepository
	staff     *mocks.MockStaffRepository
	otpRepo   *mocks.MockOTPRepository
	otp       *OTPServiceImpl
	tx        *mocks.MockTransactor
	passwords *mocks.MockPasswordService
	tokens    *mocks.MockTokenService
	sms       *mocks.MockSMSSender
	audit     *mocks.MockAuditLogger
	clock     *testClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:     mocks.NewMockUserRepository(),
		staff:     mocks.NewMockStaffRepository(),
		otpRepo:   mocks.NewMockOTPRepository(),
		tx:        mocks.NewMockTransactor(),
		passwords: mocks.NewMockPasswordService(),
		tokens:    mocks.NewMockTokenService(),
		sms:       mocks.NewMockSMSSender(),
		audit:     mocks.NewMockAuditLogger(),
		clock:     newTestClock(),
	}
	f.otp = NewOTPService(f.otpRepo, OTPConfig{Length: 6, TTL: 10 * time.Minute}).WithClock(f.clock.Now)
	f.svc = NewAuthService(AuthDeps{
		Users:     f.users,
		Staff:     f.staff,
		OTP:       f.otp,
		Tx:        f.tx,
		Passwords: f.passwords,
		Tokens:    f.tokens,
		SMS:       f.sms,
		Audit:     f.audit,
		Log:       zerolog.Nop(),
	})
	return f
}

// createVerifiedUser stores a customer whose phone is verified and whose
// password is "password123".
func createVerifiedUser(t *testing.T, repo *mocks.MockUserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:         "test@example.com",
		Phone:         "+1234567890",
		PasswordHash:  mocks.FakeHash("password123"),
		FirstName:     "Test",
		PhoneVerified: true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// createUnverifiedUser stores a customer who has not confirmed the phone yet.
func createUnverifiedUser(t *testing.T, repo *mocks.MockUserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        "pending@example.com",
		Phone:        "+1987654321",
		PasswordHash: mocks.FakeHash("password123"),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// createStaffMember stores a staff member with password "password123".
func createStaffMember(t *testing.T, repo *mocks.MockStaffRepository, email string, role domain.StaffRole, active bool) *domain.Staff {
	t.Helper()
	staff := &domain.Staff{
		Email:        email,
		PasswordHash: mocks.FakeHash("password123"),
		FirstName:    "Staff",
		LastName:     role.String(),
		Role:         role,
		IsActive:     active,
	}
	if err := repo.Create(context.Background(), staff); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}
