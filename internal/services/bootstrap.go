package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/you/foodauth/domain"
)

// SuperAdminInput describes the operator account created at bootstrap.
type SuperAdminInput struct {
	Email     string
	Password  string
	Phone     string
	FirstName string
	LastName  string
}

// EnsureSuperAdmin creates the super admin account, or resets the password,
// role and active flag of an existing account with the same email. It
// reports whether a new account was created.
func EnsureSuperAdmin(ctx context.Context, repo domain.StaffRepository, passwords domain.PasswordService, in SuperAdminInput) (*domain.Staff, bool, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || len(in.Password) < minPasswordLength {
		return nil, false, domain.NewValidationError(fmt.Sprintf("email and a password of at least %d characters are required", minPasswordLength))
	}

	hash, err := passwords.Hash(in.Password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Role = domain.RoleSuperAdmin
		existing.IsActive = true
		if err := repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, domain.ErrStaffNotFound):
		return nil, false, err
	}

	staff := &domain.Staff{
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := repo.Create(ctx, staff); err != nil {
		return nil, false, err
	}
	return staff, true, nil
}
