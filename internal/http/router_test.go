package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/config"
	"github.com/you/foodauth/internal/http/handlers"
	"github.com/you/foodauth/internal/http/middleware"
	"github.com/you/foodauth/internal/infrastructure/auth"
	"github.com/you/foodauth/internal/infrastructure/repositories"
	"github.com/you/foodauth/internal/mocks"
)

type testServer struct {
	router http.Handler
	tokens *auth.JWTServiceImpl
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens := auth.NewJWTService(auth.TokenPolicy{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	audit := mocks.NewMockAuditLogger()

	r := BuildRouter(RouterDeps{
		Auth:        handlers.NewAuthHandlers(mocks.NewMockAuthService()),
		Staff:       handlers.NewStaffHandlers(mocks.NewMockStaffService()),
		Profile:     handlers.NewProfileHandlers(mocks.NewMockProfileService()),
		Policies:    handlers.NewPolicyHandlers(mocks.NewMockPolicyService()),
		AuthMW:      middleware.NewAuthMW(tokens, audit),
		PolicyMW:    middleware.NewPolicyMW(mocks.NewMockPolicyService(), audit),
		Limiter:     middleware.NewRateLimiter(repositories.NewRedisRateCounter(client)),
		FrontendURL: "http://localhost:3000",
		GlobalLimit: config.Limit{Requests: 1000, Window: 15 * time.Minute},
		AuthLimit:   config.Limit{Requests: 5, Window: 15 * time.Minute},
		OTPLimit:    config.Limit{Requests: 1, Window: time.Minute},
		Now:         func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	return &testServer{router: r, tokens: tokens, redis: mr}
}

func (s *testServer) bearer(t *testing.T, p domain.TokenPayload) string {
	t.Helper()
	token, err := s.tokens.IssueAccessToken(p)
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(method, path, authz string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	assert.False(t, body.Success)
	return body.Error.Message
}

var (
	customer = domain.TokenPayload{UserID: "user-1", Email: "u@x.com", Type: domain.PrincipalUser}
	chef     = domain.TokenPayload{StaffID: "staff-1", Email: "c@x.com", Type: domain.PrincipalStaff, Role: domain.RoleChef}
	manager  = domain.TokenPayload{StaffID: "staff-2", Email: "m@x.com", Type: domain.PrincipalStaff, Role: domain.RoleLocationManager}
	admin    = domain.TokenPayload{StaffID: "staff-9", Email: "a@x.com", Type: domain.PrincipalStaff, Role: domain.RoleSuperAdmin}
)

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","timestamp":"2026-01-02T03:04:05Z"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Gates(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name          string
		method        string
		path          string
		principal     *domain.TokenPayload
		body          interface{}
		expectStatus  int
		expectMessage string
	}{
		{name: "me without token", method: http.MethodGet, path: "/api/auth/me", expectStatus: http.StatusUnauthorized, expectMessage: "Authentication required"},
		{name: "profile as staff", method: http.MethodGet, path: "/api/profile/me", principal: &chef, expectStatus: http.StatusForbidden, expectMessage: "User access required"},
		{name: "staff list as customer", method: http.MethodGet, path: "/api/staff", principal: &customer, expectStatus: http.StatusForbidden, expectMessage: "Staff access required"},
		{name: "staff list as chef", method: http.MethodGet, path: "/api/staff", principal: &chef, expectStatus: http.StatusForbidden, expectMessage: "Access denied - insufficient permissions"},
		{name: "staff list as manager", method: http.MethodGet, path: "/api/staff", principal: &manager, expectStatus: http.StatusOK},
		{name: "staff create as manager", method: http.MethodPost, path: "/api/staff", principal: &manager, body: gin.H{"email": "n@x.com", "password": "secret1", "role": "CHEF"}, expectStatus: http.StatusForbidden, expectMessage: "Access denied - insufficient permissions"},
		{name: "staff create as admin", method: http.MethodPost, path: "/api/staff", principal: &admin, body: gin.H{"email": "n@x.com", "password": "secret1", "role": "CHEF"}, expectStatus: http.StatusCreated},
		{name: "staff delete as manager", method: http.MethodDelete, path: "/api/staff/staff-5", principal: &manager, expectStatus: http.StatusForbidden, expectMessage: "Access denied - insufficient permissions"},
		{name: "policies as chef", method: http.MethodGet, path: "/api/admin/policies", principal: &chef, expectStatus: http.StatusForbidden, expectMessage: "Access denied - insufficient permissions"},
		{name: "policies as customer", method: http.MethodGet, path: "/api/admin/policies", principal: &customer, expectStatus: http.StatusForbidden, expectMessage: "Staff access required"},
		{name: "policies as admin", method: http.MethodGet, path: "/api/admin/policies", principal: &admin, expectStatus: http.StatusOK},
		{name: "policy check as admin", method: http.MethodGet, path: "/api/admin/policies/check?role=CHEF&resource=/api/staff&action=GET", principal: &admin, expectStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authz := ""
			if tt.principal != nil {
				authz = s.bearer(t, *tt.principal)
			}
			w := s.do(tt.method, tt.path, authz, tt.body)

			require.Equal(t, tt.expectStatus, w.Code, w.Body.String())
			if tt.expectMessage != "" {
				assert.Equal(t, tt.expectMessage, errMessage(t, w))
			}
		})
	}
}

func TestRouter_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	s := newTestServer(t)
	refresh, err := s.tokens.IssueRefreshToken(admin)
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/auth/me", "Bearer "+refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AuthLimiter(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"email": "a@x.com", "password": "secret1", "phone": "+15550001"}

	for i := 0; i < 5; i++ {
		w := s.do(http.MethodPost, "/api/auth/register", "", body)
		require.Equal(t, http.StatusCreated, w.Code, "request %d", i+1)
	}
	w := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many authentication attempts, please try again later.", errMessage(t, w))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// refresh is not behind the auth limiter
	w = s.do(http.MethodPost, "/api/auth/refresh-token", "", gin.H{"refreshToken": "x"})
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)

	s.redis.FastForward(16 * time.Minute)
	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", errMessage(t, w))
}

func TestRouter_OTPLimiter(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/resend-otp", "", gin.H{"userId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"userId": "user-1", "code": "123456"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Please wait before requesting another OTP code.", errMessage(t, w))
}

func TestRouter_Preflight(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodOptions, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
