package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/you/foodauth/domain"
)

const minPasswordLength = 6

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	staffRepo   domain.StaffRepository
	otpSvc      domain.OTPService
	tx          domain.Transactor
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	sms         domain.SMSSender
	audit       domain.AuditLogger
	log         zerolog.Logger
}

// AuthDeps groups the collaborators of the auth service.
type AuthDeps struct {
	Users     domain.UserRepository
	Staff     domain.StaffRepository
	OTP       domain.OTPService
	Tx        domain.Transactor
	Passwords domain.PasswordService
	Tokens    domain.TokenService
	SMS       domain.SMSSender
	Audit     domain.AuditLogger
	Log       zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(d AuthDeps) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    d.Users,
		staffRepo:   d.Staff,
		otpSvc:      d.OTP,
		tx:          d.Tx,
		passwordSvc: d.Passwords,
		tokenSvc:    d.Tokens,
		sms:         d.SMS,
		audit:       d.Audit,
		log:         d.Log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser implements domain.AuthService. The account and its first OTP
// are written together; the SMS goes out after commit.
func (s *AuthServiceImpl) RegisterUser(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Email == "" || in.Password == "" || in.Phone == "" {
		return nil, domain.NewValidationError("Email, password, and phone are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByPhone(ctx, in.Phone); err == nil {
		return nil, domain.ErrPhoneAlreadyUsed
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	var otp *domain.OTPRecord
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		otp, err = s.otpSvc.Issue(ctx, user.ID, user.Phone)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID, domain.PrincipalUser).
		WithEmail(user.Email).WithPhone(user.Phone))
	s.dispatchOTP(ctx, user, otp)

	return &domain.AuthResult{User: user, UserID: user.ID, RequiresVerification: true}, nil
}

// LoginUser implements domain.AuthService. Unknown email and wrong password
// fail identically.
func (s *AuthServiceImpl) LoginUser(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, "", domain.PrincipalUser).
				WithEmail(email).WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID, domain.PrincipalUser).
			WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.PhoneVerified {
		return &domain.AuthResult{UserID: user.ID, RequiresVerification: true}, nil
	}

	tokens, err := s.tokenSvc.IssuePair(domain.NewUserPayload(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID, domain.PrincipalUser).WithEmail(email))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// LoginStaff implements domain.AuthService. The active flag is only checked
// once the password matched.
func (s *AuthServiceImpl) LoginStaff(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Email and password are required")
	}

	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffLoginFailure, "", domain.PrincipalStaff).
				WithEmail(email).WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.passwordSvc.Verify(staff.PasswordHash, password) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffLoginFailure, staff.ID, domain.PrincipalStaff).
			WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}
	if !staff.IsActive {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffLoginFailure, staff.ID, domain.PrincipalStaff).
			WithEmail(email).WithError(domain.ErrAccountDeactivated))
		return nil, domain.ErrAccountDeactivated
	}

	tokens, err := s.tokenSvc.IssuePair(domain.NewStaffPayload(staff))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffLoginEvent, staff.ID, domain.PrincipalStaff).
		WithEmail(email).WithMetadata("role", staff.Role.String()))
	return &domain.AuthResult{Staff: staff, Tokens: tokens}, nil
}

// VerifyOTP implements domain.AuthService. Consuming the code and flagging the
// phone as verified commit or roll back together.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, userID, code string) (*domain.AuthResult, error) {
	userID = strings.TrimSpace(userID)
	code = strings.TrimSpace(code)
	if userID == "" || code == "" {
		return nil, domain.NewValidationError("User ID and OTP code are required")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.otpSvc.Verify(ctx, userID, code); err != nil {
			return err
		}
		return s.userRepo.MarkPhoneVerified(ctx, userID)
	})
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPFailureEvent, userID, domain.PrincipalUser).WithError(err))
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.tokenSvc.IssuePair(domain.NewUserPayload(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPVerifyEvent, user.ID, domain.PrincipalUser).WithPhone(user.Phone))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.NewValidationError("User ID is required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PhoneVerified {
		return domain.ErrPhoneAlreadyVerified
	}
	if !user.HasPhone() {
		return domain.ErrNoPhoneOnFile
	}

	otp, err := s.otpSvc.Issue(ctx, user.ID, user.Phone)
	if err != nil {
		return err
	}
	s.dispatchOTP(ctx, user, otp)
	return nil
}

// Refresh implements domain.AuthService. Every failure is reported as
// ErrInvalidRefreshToken.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", domain.NewValidationError("Refresh token is required")
	}
	payload, err := s.tokenSvc.Verify(refreshToken, domain.RefreshSecret)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}
	access, err := s.tokenSvc.IssueAccessToken(*payload)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}
	return access, nil
}

// CurrentUser implements domain.AuthService
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// CurrentStaff implements domain.AuthService
func (s *AuthServiceImpl) CurrentStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	return s.staffRepo.FindByID(ctx, staffID)
}

// dispatchOTP sends the code. Delivery failures are logged and audited only.
func (s *AuthServiceImpl) dispatchOTP(ctx context.Context, user *domain.User, otp *domain.OTPRecord) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPRequestEvent, user.ID, domain.PrincipalUser).
		WithPhone(otp.Phone).WithMetadata("expires_at", otp.ExpiresAt))

	if err := s.sms.SendOTP(ctx, otp.Phone, otp.Code); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("otp sms delivery failed")
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SMSDeliveryFailure, user.ID, domain.PrincipalUser).
			WithPhone(otp.Phone).WithError(err))
	}
}
