package mocks

import (
	"context"

	"github.com/you/foodauth/domain"
)

// MockStaffService implements domain.StaffService interface for testing
type MockStaffService struct {
	CreateFunc     func(ctx context.Context, in domain.StaffInput) (*domain.Staff, error)
	UpdateFunc     func(ctx context.Context, actorID string, actorRole domain.StaffRole, id string, upd domain.StaffUpdate) (*domain.Staff, error)
	DeactivateFunc func(ctx context.Context, actorID, id string) error
	GetFunc        func(ctx context.Context, id string) (*domain.Staff, error)
	ListFunc       func(ctx context.Context, filter domain.StaffFilter) (*domain.StaffPage, error)
}

func NewMockStaffService() *MockStaffService {
	return &MockStaffService{}
}

func (m *MockStaffService) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.Staff{ID: "staff-1", Email: in.Email, Role: in.Role, IsActive: true}, nil
}

func (m *MockStaffService) Update(ctx context.Context, actorID string, actorRole domain.StaffRole, id string, upd domain.StaffUpdate) (*domain.Staff, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actorID, actorRole, id, upd)
	}
	return nil, domain.ErrStaffNotFound
}

func (m *MockStaffService) Deactivate(ctx context.Context, actorID, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, actorID, id)
	}
	if actorID == id {
		return domain.ErrCannotDeactivateSelf
	}
	return nil
}

func (m *MockStaffService) Get(ctx context.Context, id string) (*domain.Staff, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrStaffNotFound
}

func (m *MockStaffService) List(ctx context.Context, filter domain.StaffFilter) (*domain.StaffPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	filter.Normalize()
	return &domain.StaffPage{Page: filter.Page, Limit: filter.Limit}, nil
}

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	GetFunc    func(ctx context.Context, userID string) (*domain.User, error)
	UpdateFunc func(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error)
}

func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockProfileService) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, upd)
	}
	return nil, domain.ErrUserNotFound
}

var (
	_ domain.StaffService   = (*MockStaffService)(nil)
	_ domain.ProfileService = (*MockProfileService)(nil)
)
