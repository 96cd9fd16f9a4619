package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/foodauth/internal/app"
	"github.com/you/foodauth/internal/config"
	"github.com/you/foodauth/internal/mocks"
)

// TestServer is the full service over in-memory stores.
type TestServer struct {
	t      *testing.T
	App    *app.Container
	Router http.Handler
	SMS    *mocks.MockSMSSender
	Redis  *miniredis.Miniredis
}

// Response is a decoded envelope.
type Response struct {
	Status  int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		AccessSecret:  "e2e-access-secret",
		RefreshSecret: "e2e-refresh-secret",
		JWTIssuer:     "food-delivery-api",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
		OTP_TTL:       10 * time.Minute,
		OTP_Length:    6,
		FrontendURL:   "http://localhost:3000",
		GlobalLimit:   config.Limit{Requests: 1000, Window: 15 * time.Minute},
		AuthLimit:     config.Limit{Requests: 50, Window: 15 * time.Minute},
		OTPLimit:      config.Limit{Requests: 20, Window: time.Minute},
	}
}

// NewTestServer wires the application against sqlite and miniredis.
func NewTestServer(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sms := mocks.NewMockSMSSender()
	c, err := app.Build(cfg, db, rdb, sms)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return &TestServer{t: t, App: c, Router: c.Router(), SMS: sms, Redis: mr}
}

// Do sends a JSON request, with a bearer token when token is not empty.
func (s *TestServer) Do(method, path, token string, body interface{}) Response {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	resp := Response{Status: w.Code}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// Decode unmarshals the data member into v.
func (r Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}
