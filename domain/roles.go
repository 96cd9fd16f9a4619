package domain

import (
	"encoding/json"
	"fmt"
)

// StaffRole is the closed set of operator roles. The zero value is invalid.
type StaffRole uint8

const (
	RoleSuperAdmin StaffRole = iota + 1
	RoleLocationManager
	RoleChef
	RoleDeliveryDriver
	RoleCustomerSupport
	RoleNutritionist
)

// AllStaffRoles lists every role in declaration order.
func AllStaffRoles() []StaffRole {
	return []StaffRole{
		RoleSuperAdmin,
		RoleLocationManager,
		RoleChef,
		RoleDeliveryDriver,
		RoleCustomerSupport,
		RoleNutritionist,
	}
}

func (r StaffRole) String() string {
	switch r {
	case RoleSuperAdmin:
		return "SUPER_ADMIN"
	case RoleLocationManager:
		return "LOCATION_MANAGER"
	case RoleChef:
		return "CHEF"
	case RoleDeliveryDriver:
		return "DELIVERY_DRIVER"
	case RoleCustomerSupport:
		return "CUSTOMER_SUPPORT"
	case RoleNutritionist:
		return "NUTRITIONIST"
	default:
		return ""
	}
}

// Valid reports whether r is one of the declared roles.
func (r StaffRole) Valid() bool {
	return r.String() != ""
}

// ParseStaffRole maps the wire name of a role back to its value.
func ParseStaffRole(s string) (StaffRole, error) {
	switch s {
	case "SUPER_ADMIN":
		return RoleSuperAdmin, nil
	case "LOCATION_MANAGER":
		return RoleLocationManager, nil
	case "CHEF":
		return RoleChef, nil
	case "DELIVERY_DRIVER":
		return RoleDeliveryDriver, nil
	case "CUSTOMER_SUPPORT":
		return RoleCustomerSupport, nil
	case "NUTRITIONIST":
		return RoleNutritionist, nil
	default:
		return 0, fmt.Errorf("unknown staff role %q", s)
	}
}

func (r StaffRole) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid staff role %d", uint8(r))
	}
	return json.Marshal(r.String())
}

func (r *StaffRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseStaffRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleSet is a bitset of staff roles.
type RoleSet uint16

// NewRoleSet builds a set; invalid roles are ignored.
func NewRoleSet(roles ...StaffRole) RoleSet {
	var set RoleSet
	for _, r := range roles {
		if r.Valid() {
			set |= 1 << r
		}
	}
	return set
}

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r StaffRole) bool {
	return r.Valid() && s&(1<<r) != 0
}

// Roles returns the members of the set in declaration order.
func (s RoleSet) Roles() []StaffRole {
	var out []StaffRole
	for _, r := range AllStaffRoles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
