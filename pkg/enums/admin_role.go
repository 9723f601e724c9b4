package enums

import "fmt"

// AdminRole is the stored authorization role of a console user.
type AdminRole string

const (
	AdminRoleSuper   AdminRole = "super_admin"
	AdminRoleFinance AdminRole = "finance_admin"
	AdminRoleContent AdminRole = "content_admin"
)

var validAdminRoles = []AdminRole{
	AdminRoleSuper,
	AdminRoleFinance,
	AdminRoleContent,
}

// String implements fmt.Stringer.
func (r AdminRole) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAdminRole converts raw input into an AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
