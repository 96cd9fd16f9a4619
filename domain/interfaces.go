package domain

import (
	"context"
	"time"
)

// UserRepository defines customer data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkPhoneVerified(ctx context.Context, userID string) error
}

// StaffRepository defines staff data access operations
type StaffRepository interface {
	Create(ctx context.Context, staff *Staff) error
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	FindByPhone(ctx context.Context, phone string) (*Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	Update(ctx context.Context, staff *Staff) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter StaffFilter) ([]Staff, int64, error)
}

// OTPRepository defines OTP ledger persistence
type OTPRepository interface {
	Create(ctx context.Context, record *OTPRecord) error
	// FindLatestPending returns the newest unverified record for (userID, code).
	FindLatestPending(ctx context.Context, userID, code string) (*OTPRecord, error)
	MarkVerified(ctx context.Context, id string) error
}

// Transactor runs fn inside one store transaction. Repositories called with
// the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// SecretKind selects which signing secret a token is checked against.
type SecretKind int

const (
	AccessSecret SecretKind = iota
	RefreshSecret
)

// TokenService defines token operations
type TokenService interface {
	IssueAccessToken(payload TokenPayload) (string, error)
	IssueRefreshToken(payload TokenPayload) (string, error)
	IssuePair(payload TokenPayload) (*TokenPair, error)
	Verify(token string, kind SecretKind) (*TokenPayload, error)
}

// OTPService defines the OTP ledger operations
type OTPService interface {
	Generate() (string, error)
	Issue(ctx context.Context, userID, phone string) (*OTPRecord, error)
	Verify(ctx context.Context, userID, code string) (*OTPRecord, error)
}

// RateCounter counts hits on a key within a fixed window. Hit returns the
// count including this hit and the time left in the window.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// SMSSender delivers one-time codes
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*AuthResult, error)
	LoginUser(ctx context.Context, email, password string) (*AuthResult, error)
	LoginStaff(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyOTP(ctx context.Context, userID, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*User, error)
	CurrentStaff(ctx context.Context, staffID string) (*Staff, error)
}

// StaffService defines staff administration
type StaffService interface {
	Create(ctx context.Context, in StaffInput) (*Staff, error)
	// Update applies upd on behalf of the staff member actorID holding actorRole.
	Update(ctx context.Context, actorID string, actorRole StaffRole, id string, upd StaffUpdate) (*Staff, error)
	Deactivate(ctx context.Context, actorID, id string) error
	Get(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, filter StaffFilter) (*StaffPage, error)
}

// ProfileService defines customer self-service profile operations
type ProfileService interface {
	Get(ctx context.Context, userID string) (*User, error)
	Update(ctx context.Context, userID string, upd ProfileUpdate) (*User, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role StaffRole, resource, action string) error
	RemovePolicy(role StaffRole, resource, action string) error
	CheckPermission(role StaffRole, resource, action string) (bool, error)
	GetPolicies() ([][]string, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// PolicySubject is the casbin subject used for a staff role.
func PolicySubject(role StaffRole) string {
	return "role_" + role.String()
}
