package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/config"
	"github.com/you/foodauth/internal/http/handlers"
	"github.com/you/foodauth/internal/http/middleware"
)

const requestTimeout = 30 * time.Second

// Rate limit rejection messages.
const (
	msgGlobalLimit = "Too many requests from this IP, please try again later."
	msgAuthLimit   = "Too many authentication attempts, please try again later."
	msgOTPLimit    = "Please wait before requesting another OTP code."
)

// RouterDeps is everything the HTTP surface needs.
type RouterDeps struct {
	Auth     *handlers.AuthHandlers
	Staff    *handlers.StaffHandlers
	Profile  *handlers.ProfileHandlers
	Policies *handlers.PolicyHandlers

	AuthMW   *middleware.AuthMW
	PolicyMW *middleware.PolicyMW
	Limiter  *middleware.RateLimiter

	FrontendURL string
	GlobalLimit config.Limit
	AuthLimit   config.Limit
	OTPLimit    config.Limit

	// Now is used by the health check; defaults to time.Now.
	Now func() time.Time
}

func BuildRouter(d RouterDeps) *gin.Engine {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.SecureHeaders(),
		middleware.CORS(d.FrontendURL),
		middleware.Timeout(requestTimeout),
		d.Limiter.Limit("global", d.GlobalLimit.Requests, d.GlobalLimit.Window, msgGlobalLimit),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": now().UTC().Format(time.RFC3339)})
	})

	api := r.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Food Delivery API v1.0"})
	})

	authLimit := d.Limiter.Limit("auth", d.AuthLimit.Requests, d.AuthLimit.Window, msgAuthLimit)
	otpLimit := d.Limiter.Limit("otp", d.OTPLimit.Requests, d.OTPLimit.Window, msgOTPLimit)

	auth := api.Group("/auth")
	auth.POST("/register", authLimit, d.Auth.Register)
	auth.POST("/login", authLimit, d.Auth.Login)
	auth.POST("/verify-otp", otpLimit, d.Auth.VerifyOTP)
	auth.POST("/resend-otp", otpLimit, d.Auth.ResendOTP)
	auth.POST("/refresh-token", d.Auth.Refresh)
	auth.POST("/staff/login", authLimit, d.Auth.StaffLogin)
	auth.POST("/staff/refresh-token", d.Auth.Refresh)
	auth.GET("/me", d.AuthMW.AuthenticateAny(), d.Auth.Me)

	profile := api.Group("/profile", d.AuthMW.AuthenticateAny(), middleware.RequireUser())
	profile.GET("/me", d.Profile.Get)
	profile.PUT("/me", d.Profile.Update)

	managers := middleware.RequireAnyRole(domain.RoleSuperAdmin, domain.RoleLocationManager)
	superAdmin := middleware.RequireRole(domain.RoleSuperAdmin)

	staff := api.Group("/staff", d.AuthMW.AuthenticateStaffOnly())
	staff.GET("", managers, d.Staff.List)
	staff.GET("/:id", managers, d.Staff.Get)
	staff.POST("", superAdmin, d.Staff.Create)
	staff.PUT("/:id", managers, d.Staff.Update)
	staff.DELETE("/:id", superAdmin, d.Staff.Deactivate)

	admin := api.Group("/admin", d.AuthMW.AuthenticateStaffOnly(), d.PolicyMW.Enforce())
	admin.GET("/policies", d.Policies.List)
	admin.POST("/policies", d.Policies.Add)
	admin.DELETE("/policies", d.Policies.Remove)
	admin.GET("/policies/check", d.Policies.Check)

	return r
}
