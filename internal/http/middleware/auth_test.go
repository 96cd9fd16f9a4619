package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/mocks"
)

type principalEcho struct {
	UserID  string `json:"userId"`
	StaffID string `json:"staffId"`
	Role    string `json:"role"`
	Type    string `json:"type"`
}

// newAuthRouter mounts handlers behind the given chain and echoes what the
// middleware attached.
func newAuthRouter(chain ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(chain, func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		staffID, role, _ := CurrentStaff(c)
		c.JSON(http.StatusOK, principalEcho{
			UserID:  userID,
			StaffID: staffID,
			Role:    role.String(),
			Type:    string(CurrentPrincipalType(c)),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Message
}

func issue(t *testing.T, tokens *mocks.MockTokenService, p domain.TokenPayload) string {
	t.Helper()
	token, err := tokens.IssueAccessToken(p)
	require.NoError(t, err)
	return "Bearer " + token
}

var (
	userPayload  = domain.TokenPayload{UserID: "user-1", Email: "u@x.com", Type: domain.PrincipalUser}
	chefPayload  = domain.TokenPayload{StaffID: "staff-1", Email: "c@x.com", Type: domain.PrincipalStaff, Role: domain.RoleChef}
	adminPayload = domain.TokenPayload{StaffID: "staff-9", Email: "a@x.com", Type: domain.PrincipalStaff, Role: domain.RoleSuperAdmin}
)

func TestAuthMW_AuthenticateAny(t *testing.T) {
	tokens := mocks.NewMockTokenService()
	mw := NewAuthMW(tokens, mocks.NewMockAuditLogger())
	r := newAuthRouter(mw.AuthenticateAny())

	refresh, err := tokens.IssueRefreshToken(userPayload)
	require.NoError(t, err)

	tests := []struct {
		name          string
		header        string
		expectStatus  int
		expectMessage string
		expectEcho    principalEcho
	}{
		{name: "no header", expectStatus: http.StatusUnauthorized, expectMessage: "Authentication required"},
		{name: "wrong scheme", header: "Basic abc", expectStatus: http.StatusUnauthorized, expectMessage: "Authentication required"},
		{name: "empty bearer", header: "Bearer ", expectStatus: http.StatusUnauthorized, expectMessage: "Authentication required"},
		{name: "garbage token", header: "Bearer nope", expectStatus: http.StatusUnauthorized, expectMessage: "Invalid or expired token"},
		{name: "refresh token used as access", header: "Bearer " + refresh, expectStatus: http.StatusUnauthorized, expectMessage: "Invalid or expired token"},
		{name: "user type without user id", header: "Bearer access|user||x@x.com|", expectStatus: http.StatusUnauthorized, expectMessage: "Invalid token"},
		{name: "unknown type", header: "Bearer access|robot|r-1|x@x.com|", expectStatus: http.StatusUnauthorized, expectMessage: "Invalid token"},
		{
			name:         "user token",
			header:       issue(t, tokens, userPayload),
			expectStatus: http.StatusOK,
			expectEcho:   principalEcho{UserID: "user-1", Type: "user"},
		},
		{
			name:         "staff token",
			header:       issue(t, tokens, chefPayload),
			expectStatus: http.StatusOK,
			expectEcho:   principalEcho{StaffID: "staff-1", Role: "CHEF", Type: "staff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			require.Equal(t, tt.expectStatus, w.Code)
			if tt.expectStatus != http.StatusOK {
				assert.Equal(t, tt.expectMessage, errorMessage(t, w))
				return
			}
			var got principalEcho
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.expectEcho, got)
		})
	}
}

func TestAuthMW_ExpiredTokenLooksInvalid(t *testing.T) {
	tokens := mocks.NewMockTokenService()
	tokens.VerifyFunc = func(token string, kind domain.SecretKind) (*domain.TokenPayload, error) {
		return nil, domain.ErrTokenExpired
	}
	r := newAuthRouter(NewAuthMW(tokens, nil).AuthenticateAny())

	w := doGet(r, "Bearer whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errorMessage(t, w))
}

func TestAuthMW_AuthenticateStaffOnly(t *testing.T) {
	tokens := mocks.NewMockTokenService()
	audit := mocks.NewMockAuditLogger()
	r := newAuthRouter(NewAuthMW(tokens, audit).AuthenticateStaffOnly())

	w := doGet(r, issue(t, tokens, userPayload))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Staff access required", errorMessage(t, w))
	assert.True(t, audit.Has(domain.AccessDeniedEvent))

	w = doGet(r, issue(t, tokens, chefPayload))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAnyRole(t *testing.T) {
	tokens := mocks.NewMockTokenService()
	mw := NewAuthMW(tokens, nil)

	tests := []struct {
		name         string
		guard        gin.HandlerFunc
		payload      domain.TokenPayload
		expectStatus int
	}{
		{"chef rejected by super admin guard", RequireAnyRole(domain.RoleSuperAdmin), chefPayload, http.StatusForbidden},
		{"super admin accepted", RequireAnyRole(domain.RoleSuperAdmin), adminPayload, http.StatusOK},
		{"chef in set", RequireAnyRole(domain.RoleLocationManager, domain.RoleChef), chefPayload, http.StatusOK},
		{"single role guard", RequireRole(domain.RoleLocationManager), adminPayload, http.StatusForbidden},
		{"empty set admits nobody", RequireAnyRole(), adminPayload, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(mw.AuthenticateStaffOnly(), tt.guard)
			w := doGet(r, issue(t, tokens, tt.payload))
			require.Equal(t, tt.expectStatus, w.Code)
			if tt.expectStatus == http.StatusForbidden {
				assert.Equal(t, "Access denied - insufficient permissions", errorMessage(t, w))
			}
		})
	}
}

func TestRequireAnyRole_WithoutAuthentication(t *testing.T) {
	r := newAuthRouter(RequireAnyRole(domain.RoleSuperAdmin))
	w := doGet(r, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireUser(t *testing.T) {
	tokens := mocks.NewMockTokenService()
	mw := NewAuthMW(tokens, nil)
	r := newAuthRouter(mw.AuthenticateAny(), RequireUser())

	assert.Equal(t, http.StatusOK, doGet(r, issue(t, tokens, userPayload)).Code)

	w := doGet(r, issue(t, tokens, chefPayload))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User access required", errorMessage(t, w))
}
