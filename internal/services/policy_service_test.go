package services

import (
	"errors"
	"testing"

	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/mocks"
)

func createPolicyServiceForTest(t *testing.T, rules ...[]string) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()
	enforcer := mocks.NewMockCasbinEnforcer(rules...)
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name         string
		existing     [][]string
		role         domain.StaffRole
		resource     string
		action       string
		expectedKind *domain.ErrorKind
		expectSaves  int
	}{
		{
			name:        "new rule is saved",
			role:        domain.RoleChef,
			resource:    "/api/kitchen/*",
			action:      "get",
			expectSaves: 1,
		},
		{
			name:        "existing rule is a no-op",
			existing:    [][]string{{"role_CHEF", "/api/kitchen/*", "GET"}},
			role:        domain.RoleChef,
			resource:    "/api/kitchen/*",
			action:      "GET",
			expectSaves: 0,
		},
		{
			name:         "invalid role",
			role:         domain.StaffRole(42),
			resource:     "/api/x",
			action:       "GET",
			expectedKind: kindPtr(domain.KindValidation),
		},
		{
			name:         "resource is not a path",
			role:         domain.RoleChef,
			resource:     "kitchen",
			action:       "GET",
			expectedKind: kindPtr(domain.KindValidation),
		},
		{
			name:         "missing action",
			role:         domain.RoleChef,
			resource:     "/api/kitchen",
			action:       " ",
			expectedKind: kindPtr(domain.KindValidation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t, tt.existing...)

			err := svc.AddPolicy(tt.role, tt.resource, tt.action)
			if tt.expectedKind != nil {
				if err == nil || domain.KindOf(err) != *tt.expectedKind {
					t.Fatalf("expected kind %s, got %v", *tt.expectedKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if enforcer.SaveCalls != tt.expectSaves {
				t.Errorf("expected %d saves, got %d", tt.expectSaves, enforcer.SaveCalls)
			}
			ok, _ := svc.CheckPermission(tt.role, "/api/kitchen/orders", "GET")
			if !ok {
				t.Error("rule should grant access after add")
			}
		})
	}
}

func TestPolicyServiceImpl_AddPolicyEnforcerError(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	boom := errors.New("adapter down")
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) { return false, boom }

	if err := svc.AddPolicy(domain.RoleChef, "/api/kitchen", "GET"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped adapter error, got %v", err)
	}
	if enforcer.SaveCalls != 0 {
		t.Error("nothing should be saved on failure")
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t, []string{"role_CHEF", "/api/kitchen", "GET"})

	if err := svc.RemovePolicy(domain.RoleChef, "/api/kitchen", "get"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if enforcer.SaveCalls != 1 {
		t.Errorf("expected one save, got %d", enforcer.SaveCalls)
	}

	err := svc.RemovePolicy(domain.RoleChef, "/api/kitchen", "GET")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("removing a missing rule should be not found, got %v", err)
	}
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t,
		[]string{"role_SUPER_ADMIN", "/api/admin/*", "*"},
		[]string{"role_LOCATION_MANAGER", "/api/staff", "GET"},
	)

	tests := []struct {
		name     string
		role     domain.StaffRole
		resource string
		action   string
		expected bool
	}{
		{"super admin wildcard", domain.RoleSuperAdmin, "/api/admin/policies", "DELETE", true},
		{"manager exact", domain.RoleLocationManager, "/api/staff", "get", true},
		{"manager wrong action", domain.RoleLocationManager, "/api/staff", "POST", false},
		{"chef denied", domain.RoleChef, "/api/admin/policies", "GET", false},
		{"invalid role", domain.StaffRole(0), "/api/admin/policies", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckPermission(tt.role, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPolicyServiceImpl_GetPolicies(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t, []string{"role_CHEF", "/api/kitchen", "GET"})
	if err := svc.AddPolicy(domain.RoleNutritionist, "/api/menus", "PUT"); err != nil {
		t.Fatalf("add: %v", err)
	}

	policies, err := svc.GetPolicies()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(policies) != 2 || policies[1][0] != "role_NUTRITIONIST" || policies[1][2] != "PUT" {
		t.Errorf("unexpected policies %v", policies)
	}
}

func kindPtr(k domain.ErrorKind) *domain.ErrorKind { return &k }
