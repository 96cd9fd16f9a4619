package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/config"
	httpx "github.com/you/foodauth/internal/http"
	"github.com/you/foodauth/internal/http/handlers"
	"github.com/you/foodauth/internal/http/middleware"
	"github.com/you/foodauth/internal/infrastructure/audit"
	"github.com/you/foodauth/internal/infrastructure/auth"
	"github.com/you/foodauth/internal/infrastructure/database"
	"github.com/you/foodauth/internal/infrastructure/notifications"
	"github.com/you/foodauth/internal/infrastructure/repositories"
	"github.com/you/foodauth/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	StaffRepo   domain.StaffRepository
	OTPRepo     domain.OTPRepository
	RateCounter domain.RateCounter
	Tx          domain.Transactor

	// Services
	Audit       domain.AuditLogger
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	SMS         domain.SMSSender
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	StaffSvc    domain.StaffService
	ProfileSvc  domain.ProfileService
	PolicySvc   domain.PolicyService
}

// NewContainer connects to the stores and builds every service.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	db, err := database.Open(cfg.DSN, !cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	sms := notifications.NewTwilioSMSSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, log.Logger)

	c, err := Build(cfg, db, rdb, sms)
	if err != nil {
		rdb.Close()
		closeDB(db)
		return nil, err
	}
	return c, nil
}

// Build migrates db and assembles the services over already open stores.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, sms domain.SMSSender) (*Container, error) {
	c := &Container{Config: cfg, DB: db, RedisClient: rdb, SMS: sms}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := c.initCasbin(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	if err := cas.SeedDefaults(); err != nil {
		return err
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.StaffRepo = repositories.NewStaffRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.RateCounter = repositories.NewRedisRateCounter(c.RedisClient)
	c.Tx = repositories.NewTransactor(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.Audit = audit.NewZerologAuditLogger(log.Logger)
	c.PasswordSvc = auth.NewPasswordService(auth.DefaultPasswordCost)
	c.TokenSvc = auth.NewJWTService(auth.TokenPolicy{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		Issuer:        cfg.JWTIssuer,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})
	c.OTPSvc = services.NewOTPService(c.OTPRepo, services.OTPConfig{
		Length: cfg.OTP_Length,
		TTL:    cfg.OTP_TTL,
	})
	c.AuthSvc = services.NewAuthService(services.AuthDeps{
		Users:     c.UserRepo,
		Staff:     c.StaffRepo,
		OTP:       c.OTPSvc,
		Tx:        c.Tx,
		Passwords: c.PasswordSvc,
		Tokens:    c.TokenSvc,
		SMS:       c.SMS,
		Audit:     c.Audit,
		Log:       log.Logger,
	})
	c.StaffSvc = services.NewStaffService(c.StaffRepo, c.PasswordSvc, c.Audit)
	c.ProfileSvc = services.NewProfileService(c.UserRepo)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

// Router builds the HTTP surface over the container's services.
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	return httpx.BuildRouter(httpx.RouterDeps{
		Auth:        handlers.NewAuthHandlers(c.AuthSvc),
		Staff:       handlers.NewStaffHandlers(c.StaffSvc),
		Profile:     handlers.NewProfileHandlers(c.ProfileSvc),
		Policies:    handlers.NewPolicyHandlers(c.PolicySvc),
		AuthMW:      middleware.NewAuthMW(c.TokenSvc, c.Audit),
		PolicyMW:    middleware.NewPolicyMW(c.PolicySvc, c.Audit),
		Limiter:     middleware.NewRateLimiter(c.RateCounter),
		FrontendURL: cfg.FrontendURL,
		GlobalLimit: cfg.GlobalLimit,
		AuthLimit:   cfg.AuthLimit,
		OTPLimit:    cfg.OTPLimit,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
