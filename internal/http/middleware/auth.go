package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/response"
)

// Context keys set by the authentication middleware.
const (
	UserIDKey        = "user_id"
	StaffIDKey       = "staff_id"
	StaffRoleKey     = "staff_role"
	PrincipalTypeKey = "principal_type"
)

// AuthMW authenticates requests with bearer access tokens
type AuthMW struct {
	tokenSvc domain.TokenService
	audit    domain.AuditLogger
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, audit domain.AuditLogger) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, audit: audit}
}

// AuthenticateAny admits user and staff tokens alike.
func (mw *AuthMW) AuthenticateAny() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := mw.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// AuthenticateStaffOnly admits staff tokens and rejects user tokens with 403.
func (mw *AuthMW) AuthenticateStaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := mw.authenticate(c)
		if !ok {
			return
		}
		if payload.Type != domain.PrincipalStaff {
			mw.denied(c, payload, domain.ErrStaffOnly)
			return
		}
		c.Next()
	}
}

// RequireUser admits only customer principals. It runs after AuthenticateAny.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipalType(c) != domain.PrincipalUser {
			response.Abort(c, domain.ErrUserOnly)
			return
		}
		c.Next()
	}
}

// RequireRole is RequireAnyRole with a single role.
func RequireRole(role domain.StaffRole) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole admits staff whose role is in roles. It runs after
// AuthenticateStaffOnly and does no I/O.
func RequireAnyRole(roles ...domain.StaffRole) gin.HandlerFunc {
	allowed := domain.NewRoleSet(roles...)
	return func(c *gin.Context) {
		_, role, ok := CurrentStaff(c)
		if !ok || !allowed.Contains(role) {
			response.Abort(c, domain.ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

func (mw *AuthMW) authenticate(c *gin.Context) (*domain.TokenPayload, bool) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		response.Abort(c, domain.ErrAuthRequired)
		return nil, false
	}

	payload, err := mw.tokenSvc.Verify(token, domain.AccessSecret)
	if err != nil {
		// Signature and expiry failures look the same to the caller.
		if errors.Is(err, domain.ErrInvalidToken) {
			response.Abort(c, domain.ErrInvalidToken)
		} else {
			response.Abort(c, domain.ErrInvalidOrExpiredToken)
		}
		return nil, false
	}
	if err := payload.Validate(); err != nil {
		response.Abort(c, domain.ErrInvalidToken)
		return nil, false
	}

	c.Set(PrincipalTypeKey, payload.Type)
	switch payload.Type {
	case domain.PrincipalUser:
		c.Set(UserIDKey, payload.UserID)
	case domain.PrincipalStaff:
		c.Set(StaffIDKey, payload.StaffID)
		c.Set(StaffRoleKey, payload.Role)
	}
	return payload, true
}

func (mw *AuthMW) denied(c *gin.Context, payload *domain.TokenPayload, err error) {
	if mw.audit != nil {
		id := payload.UserID
		if payload.Type == domain.PrincipalStaff {
			id = payload.StaffID
		}
		mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, id, payload.Type).
			WithMetadata("path", c.Request.URL.Path).WithError(err))
	}
	response.Abort(c, err)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUserID returns the authenticated customer id.
func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

// CurrentStaff returns the authenticated staff id and role.
func CurrentStaff(c *gin.Context) (string, domain.StaffRole, bool) {
	id := c.GetString(StaffIDKey)
	role, _ := c.Get(StaffRoleKey)
	r, ok := role.(domain.StaffRole)
	if id == "" || !ok {
		return "", 0, false
	}
	return id, r, true
}

// CurrentPrincipalType returns the principal type attached by the middleware.
func CurrentPrincipalType(c *gin.Context) domain.PrincipalType {
	v, _ := c.Get(PrincipalTypeKey)
	t, _ := v.(domain.PrincipalType)
	return t
}
