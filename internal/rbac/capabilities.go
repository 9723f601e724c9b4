package rbac

import "github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"

// Capability names one guarded admin surface. Routes declare the capability
// they need; roles are granted capabilities here and nowhere else.
type Capability string

const (
	CapabilityManageAdmins  Capability = "manage_admins"
	CapabilityViewAudit     Capability = "view_audit"
	CapabilityViewDonations Capability = "view_donations"
	CapabilityManageContent Capability = "manage_content"
)

// capabilitiesByRole is the single authorization table. A role/capability
// pair absent from this map is denied.
var capabilitiesByRole = map[enums.AdminRole]map[Capability]bool{
	enums.AdminRoleSuper: {
		CapabilityManageAdmins:  true,
		CapabilityViewAudit:     true,
		CapabilityViewDonations: true,
		CapabilityManageContent: true,
	},
	enums.AdminRoleFinance: {
		CapabilityViewDonations: true,
	},
	enums.AdminRoleContent: {
		CapabilityManageContent: true,
	},
}

// Allowed reports whether the role is granted the capability.
func Allowed(role enums.AdminRole, capability Capability) bool {
	grants, ok := capabilitiesByRole[role]
	if !ok {
		return false
	}
	return grants[capability]
}
