package model

import (
	"errors"
	"fmt"
)

// Role is the canonical identifier of a console role.
// Permissions are set membership, the catalog carries no ordering.
type Role string

const (
	RoleSuperAdmin     Role = "SuperAdmin"
	RoleSystemAdmin    Role = "SystemAdmin"
	RoleManager        Role = "Manager"
	RoleCashier        Role = "Cashier"
	RoleInventoryClerk Role = "InventoryClerk"
)

var ErrUnknownRole = errors.New("unknown role")

// RoleInfo describes a catalog entry
type RoleInfo struct {
	Code        Role   `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Roles is the closed role catalog, in display order.
var Roles = []RoleInfo{
	{
		Code:        RoleSuperAdmin,
		Name:        "Super Admin",
		Description: "Full access including database administration",
	},
	{
		Code:        RoleSystemAdmin,
		Name:        "System Admin",
		Description: "User, role and system settings administration",
	},
	{
		Code:        RoleManager,
		Name:        "Manager",
		Description: "Store operations, people and finance",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "Point of sale and customer lookup",
	},
	{
		Code:        RoleInventoryClerk,
		Name:        "Inventory Clerk",
		Description: "Stock, suppliers and purchasing",
	},
}

// Valid reports whether r is a member of the catalog
func (r Role) Valid() bool {
	for _, info := range Roles {
		if info.Code == r {
			return true
		}
	}
	return false
}

// DisplayName returns the human readable role name, or the raw value for roles outside the catalog.
func (r Role) DisplayName() string {
	for _, info := range Roles {
		if info.Code == r {
			return info.Name
		}
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts an external role string to the canonical Role.
// It accepts the canonical code or the exact display name. Matching is case-sensitive.
func ParseRole(s string) (Role, error) {
	for _, info := range Roles {
		if string(info.Code) == s || info.Name == s {
			return info.Code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
