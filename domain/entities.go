package domain

import "time"

// PrincipalType tells which kind of account a token or request belongs to.
type PrincipalType string

const (
	PrincipalUser  PrincipalType = "user"
	PrincipalStaff PrincipalType = "staff"
)

// Principal is the capability set shared by customers and staff members.
type Principal interface {
	PrincipalID() string
	PrincipalEmail() string
	PrincipalType() PrincipalType
}

// User represents a customer account
type User struct {
	ID            string
	Email         string
	Phone         string
	PasswordHash  string
	FirstName     string
	LastName      string
	PhoneVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) PrincipalID() string          { return u.ID }
func (u *User) PrincipalEmail() string       { return u.Email }
func (u *User) PrincipalType() PrincipalType { return PrincipalUser }

// HasPhone reports whether a phone number is on file.
func (u *User) HasPhone() bool { return u.Phone != "" }

// Staff represents an internal operator account
type Staff struct {
	ID           string
	Email        string
	Phone        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         StaffRole
	IsActive     bool
	LocationID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Staff) PrincipalID() string          { return s.ID }
func (s *Staff) PrincipalEmail() string       { return s.Email }
func (s *Staff) PrincipalType() PrincipalType { return PrincipalStaff }

// OTPRecord is a one-time code sent to a user's phone
type OTPRecord struct {
	ID        string
	UserID    string
	Phone     string
	Code      string
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

// IsExpired reports whether the code is past its expiry at now.
func (o *OTPRecord) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// TokenPayload is the identity asserted by a signed token.
type TokenPayload struct {
	UserID  string
	StaffID string
	Email   string
	Type    PrincipalType
	Role    StaffRole
}

// NewUserPayload builds the token payload for a customer.
func NewUserPayload(u *User) TokenPayload {
	return TokenPayload{UserID: u.ID, Email: u.Email, Type: PrincipalUser}
}

// NewStaffPayload builds the token payload for a staff member.
func NewStaffPayload(s *Staff) TokenPayload {
	return TokenPayload{StaffID: s.ID, Email: s.Email, Type: PrincipalStaff, Role: s.Role}
}

// Validate checks that the declared type and its id field agree.
func (p TokenPayload) Validate() error {
	switch p.Type {
	case PrincipalUser:
		if p.UserID == "" || p.StaffID != "" {
			return ErrInvalidToken
		}
	case PrincipalStaff:
		if p.StaffID == "" || p.UserID != "" || !p.Role.Valid() {
			return ErrInvalidToken
		}
	default:
		return ErrInvalidToken
	}
	return nil
}

// TokenPair is an access token with its refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput carries customer registration data
type RegisterInput struct {
	Email     string
	Password  string
	Phone     string
	FirstName string
	LastName  string
}

// AuthResult represents authentication outcome.
// Exactly one of User / Staff is set when Tokens is set; RequiresVerification
// is returned instead of tokens while the customer's phone is unverified.
type AuthResult struct {
	User                 *User
	Staff                *Staff
	Tokens               *TokenPair
	RequiresVerification bool
	UserID               string
}

// StaffInput carries the fields for creating a staff member
type StaffInput struct {
	Email      string
	Password   string
	Phone      string
	FirstName  string
	LastName   string
	Role       StaffRole
	LocationID string
	IsActive   *bool
}

// StaffUpdate carries a partial staff update; nil fields are left untouched.
type StaffUpdate struct {
	Email      *string
	Password   *string
	Phone      *string
	FirstName  *string
	LastName   *string
	Role       *StaffRole
	LocationID *string
	IsActive   *bool
}

// StaffFilter narrows staff listings
type StaffFilter struct {
	Search     string
	Role       *StaffRole
	LocationID string
	IsActive   *bool
	Page       int
	Limit      int
}

// Normalize applies paging defaults.
func (f *StaffFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Offset returns the number of rows to skip for the current page.
func (f StaffFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// StaffPage is one page of a staff listing
type StaffPage struct {
	Staff      []Staff
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ProfileUpdate carries the customer-editable profile fields
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}
