package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/you/foodauth/domain"
)

// StaffServiceImpl implements domain.StaffService
type StaffServiceImpl struct {
	staffRepo   domain.StaffRepository
	passwordSvc domain.PasswordService
	audit       domain.AuditLogger
}

// NewStaffService creates a new staff administration service
func NewStaffService(staffRepo domain.StaffRepository, passwordSvc domain.PasswordService, audit domain.AuditLogger) domain.StaffService {
	return &StaffServiceImpl{staffRepo: staffRepo, passwordSvc: passwordSvc, audit: audit}
}

// Create implements domain.StaffService
func (s *StaffServiceImpl) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, domain.NewValidationError("Email, password, first name, last name, and role are required")
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	if err := s.ensureEmailFree(ctx, in.Email, "", domain.ErrStaffEmailTaken); err != nil {
		return nil, err
	}
	if err := s.ensurePhoneFree(ctx, in.Phone, "", domain.ErrStaffPhoneTaken); err != nil {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &domain.Staff{
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         in.Role,
		IsActive:     true,
		LocationID:   strings.TrimSpace(in.LocationID),
	}
	if in.IsActive != nil {
		staff.IsActive = *in.IsActive
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffCreatedEvent, staff.ID, domain.PrincipalStaff).
		WithEmail(staff.Email).WithMetadata("role", staff.Role.String()))
	return staff, nil
}

// Update implements domain.StaffService. Only a super admin may touch a
// super admin account or grant that role, and nobody may deactivate themselves.
func (s *StaffServiceImpl) Update(ctx context.Context, actorID string, actorRole domain.StaffRole, id string, upd domain.StaffUpdate) (*domain.Staff, error) {
	if upd.IsActive != nil && !*upd.IsActive && actorID == id {
		return nil, domain.ErrCannotDeactivateSelf
	}
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != domain.RoleSuperAdmin {
		if staff.Role == domain.RoleSuperAdmin || (upd.Role != nil && *upd.Role == domain.RoleSuperAdmin) {
			return nil, domain.ErrInsufficientRole
		}
	}

	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return nil, domain.NewValidationError("Email cannot be empty")
		}
		if email != staff.Email {
			if err := s.ensureEmailFree(ctx, email, staff.ID, domain.NewConflictError("Email already in use")); err != nil {
				return nil, err
			}
			staff.Email = email
		}
	}
	if upd.Phone != nil {
		phone := strings.TrimSpace(*upd.Phone)
		if phone != staff.Phone {
			if err := s.ensurePhoneFree(ctx, phone, staff.ID, domain.NewConflictError("Phone number already in use")); err != nil {
				return nil, err
			}
			staff.Phone = phone
		}
	}
	if upd.Password != nil {
		if len(*upd.Password) < minPasswordLength {
			return nil, domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		}
		hash, err := s.passwordSvc.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		staff.PasswordHash = hash
	}
	if upd.FirstName != nil {
		staff.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		staff.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		staff.Role = *upd.Role
	}
	if upd.LocationID != nil {
		staff.LocationID = strings.TrimSpace(*upd.LocationID)
	}
	if upd.IsActive != nil {
		staff.IsActive = *upd.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Deactivate implements domain.StaffService
func (s *StaffServiceImpl) Deactivate(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrCannotDeactivateSelf
	}
	if err := s.staffRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.StaffDeactivatedEvent, id, domain.PrincipalStaff).
		WithMetadata("actor_id", actorID))
	return nil
}

// Get implements domain.StaffService
func (s *StaffServiceImpl) Get(ctx context.Context, id string) (*domain.Staff, error) {
	return s.staffRepo.FindByID(ctx, id)
}

// List implements domain.StaffService
func (s *StaffServiceImpl) List(ctx context.Context, filter domain.StaffFilter) (*domain.StaffPage, error) {
	filter.Normalize()
	rows, total, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &domain.StaffPage{
		Staff:      rows,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: pages,
	}, nil
}

func (s *StaffServiceImpl) ensureEmailFree(ctx context.Context, email, selfID string, conflict error) error {
	existing, err := s.staffRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return conflict
	}
	if err != nil && !errors.Is(err, domain.ErrStaffNotFound) {
		return err
	}
	return nil
}

func (s *StaffServiceImpl) ensurePhoneFree(ctx context.Context, phone, selfID string, conflict error) error {
	if phone == "" {
		return nil
	}
	existing, err := s.staffRepo.FindByPhone(ctx, phone)
	if err == nil && existing.ID != selfID {
		return conflict
	}
	if err != nil && !errors.Is(err, domain.ErrStaffNotFound) {
		return err
	}
	return nil
}
