package services

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/you/foodauth/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin. Subjects
// are staff roles, stored as domain.PolicySubject.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: NewCasbinEnforcerWrapper(enforcer)}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

func checkPolicyArgs(role domain.StaffRole, resource, action string) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if !strings.HasPrefix(resource, "/") || strings.TrimSpace(action) == "" {
		return domain.NewValidationError("Resource must be a path and action is required")
	}
	return nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role domain.StaffRole, resource, action string) error {
	if err := checkPolicyArgs(role, resource, action); err != nil {
		return err
	}
	added, err := p.enforcer.AddPolicy(domain.PolicySubject(role), resource, strings.ToUpper(action))
	if err != nil {
		return fmt.Errorf("add policy: %w", err)
	}
	if !added {
		return nil
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role domain.StaffRole, resource, action string) error {
	if err := checkPolicyArgs(role, resource, action); err != nil {
		return err
	}
	removed, err := p.enforcer.RemovePolicy(domain.PolicySubject(role), resource, strings.ToUpper(action))
	if err != nil {
		return fmt.Errorf("remove policy: %w", err)
	}
	if !removed {
		return domain.NewNotFoundError("Policy not found")
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role domain.StaffRole, resource, action string) (bool, error) {
	if !role.Valid() {
		return false, nil
	}
	return p.enforcer.Enforce(domain.PolicySubject(role), resource, strings.ToUpper(action))
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}
