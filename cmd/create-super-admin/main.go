// Command create-super-admin creates the first SUPER_ADMIN staff account, or
// resets the password of an existing one.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/you/foodauth/internal/app"
	"github.com/you/foodauth/internal/config"
	"github.com/you/foodauth/internal/infrastructure/auth"
	"github.com/you/foodauth/internal/infrastructure/database"
	"github.com/you/foodauth/internal/infrastructure/repositories"
	"github.com/you/foodauth/internal/services"
)

func main() {
	path := flag.String("config", "config/config.yml", "path to the YAML config file")
	email := flag.String("email", os.Getenv("SUPER_ADMIN_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("SUPER_ADMIN_PASSWORD"), "account password")
	phone := flag.String("phone", os.Getenv("SUPER_ADMIN_PHONE"), "account phone number")
	first := flag.String("first-name", "Super", "first name")
	last := flag.String("last-name", "Admin", "last name")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	app.SetupLogging(cfg)

	db, err := database.Open(cfg.DSN, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	staff, created, err := services.EnsureSuperAdmin(ctx,
		repositories.NewStaffRepository(db),
		auth.NewPasswordService(auth.DefaultPasswordCost),
		services.SuperAdminInput{
			Email:     *email,
			Password:  *password,
			Phone:     *phone,
			FirstName: *first,
			LastName:  *last,
		})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create super admin")
	}

	if created {
		log.Info().Str("id", staff.ID).Str("email", staff.Email).Msg("super admin created")
		return
	}
	log.Info().Str("id", staff.ID).Str("email", staff.Email).Msg("super admin already existed; password, role and active flag reset")
}
