package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/you/foodauth/domain"
)

// TokenPolicy holds the signing secrets and lifetimes for both token kinds.
type TokenPolicy struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// tokenClaims is the signed body of both access and refresh tokens.
type tokenClaims struct {
	UserID  string `json:"userId,omitempty"`
	StaffID string `json:"staffId,omitempty"`
	Email   string `json:"email"`
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	policy TokenPolicy
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(policy TokenPolicy) *JWTServiceImpl {
	return &JWTServiceImpl{policy: policy, now: time.Now}
}

// WithClock replaces the time source used for issuing and checking tokens.
func (j *JWTServiceImpl) WithClock(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(payload domain.TokenPayload) (string, error) {
	return j.sign(payload, j.policy.AccessSecret, j.policy.AccessTTL)
}

// IssueRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) IssueRefreshToken(payload domain.TokenPayload) (string, error) {
	return j.sign(payload, j.policy.RefreshSecret, j.policy.RefreshTTL)
}

// IssuePair implements domain.TokenService
func (j *JWTServiceImpl) IssuePair(payload domain.TokenPayload) (*domain.TokenPair, error) {
	access, err := j.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refresh, err := j.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *JWTServiceImpl) sign(payload domain.TokenPayload, secret string, ttl time.Duration) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}
	now := j.now()
	claims := tokenClaims{
		UserID:  payload.UserID,
		StaffID: payload.StaffID,
		Email:   payload.Email,
		Type:    string(payload.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.policy.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(), // two tokens issued in the same second still differ
		},
	}
	if payload.Type == domain.PrincipalStaff {
		claims.Role = payload.Role.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify implements domain.TokenService. Expiry is reported as
// domain.ErrTokenExpired; every other failure as domain.ErrTokenInvalid.
func (j *JWTServiceImpl) Verify(tokenString string, kind domain.SecretKind) (*domain.TokenPayload, error) {
	secret := j.policy.AccessSecret
	if kind == domain.RefreshSecret {
		secret = j.policy.RefreshSecret
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	payload := &domain.TokenPayload{
		UserID:  claims.UserID,
		StaffID: claims.StaffID,
		Email:   claims.Email,
		Type:    domain.PrincipalType(claims.Type),
	}
	if claims.Role != "" {
		role, err := domain.ParseStaffRole(claims.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, domain.ErrInvalidToken)
		}
		payload.Role = role
	}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	return payload, nil
}
