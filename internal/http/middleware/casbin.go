package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/response"
)

// PolicyMW authorizes staff requests against the stored access policies.
// Subject is the staff role, object the request path, action the method.
type PolicyMW struct {
	policies domain.PolicyService
	audit    domain.AuditLogger
}

// NewPolicyMW creates new casbin middleware wrapper
func NewPolicyMW(policies domain.PolicyService, audit domain.AuditLogger) *PolicyMW {
	return &PolicyMW{policies: policies, audit: audit}
}

// Enforce returns the casbin authorization middleware. It runs after
// AuthenticateStaffOnly.
func (mw *PolicyMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID, role, ok := CurrentStaff(c)
		if !ok {
			response.Abort(c, domain.ErrStaffOnly)
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policies.CheckPermission(role, path, method)
		if err != nil {
			response.Abort(c, fmt.Errorf("authorization check failed: %w", err))
			return
		}
		if !allowed {
			if mw.audit != nil {
				mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, staffID, domain.PrincipalStaff).
					WithMetadata("role", role.String()).
					WithMetadata("path", path).
					WithMetadata("method", method).
					WithError(domain.ErrInsufficientRole))
			}
			response.Abort(c, domain.ErrInsufficientRole)
			return
		}

		c.Next()
	}
}
