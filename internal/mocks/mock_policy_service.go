package mocks

import "github.com/you/foodauth/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(role domain.StaffRole, resource, action string) error
	RemovePolicyFunc    func(role domain.StaffRole, resource, action string) error
	CheckPermissionFunc func(role domain.StaffRole, resource, action string) (bool, error)
	GetPoliciesFunc     func() ([][]string, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(role domain.StaffRole, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role domain.StaffRole, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

// CheckPermission allows only SUPER_ADMIN by default.
func (m *MockPolicyService) CheckPermission(role domain.StaffRole, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return role == domain.RoleSuperAdmin, nil
}

func (m *MockPolicyService) GetPolicies() ([][]string, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{{domain.PolicySubject(domain.RoleSuperAdmin), "/api/admin/policies", "*"}}, nil
}

var _ domain.PolicyService = (*MockPolicyService)(nil)
