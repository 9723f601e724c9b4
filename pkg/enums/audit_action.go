package enums

// AuditAction codes every privileged mutation recorded in the audit log.
type AuditAction string

const (
	AuditAdminRoleChanged    AuditAction = "ADMIN_ROLE_CHANGED"
	AuditAdminActivated      AuditAction = "ADMIN_ACTIVATED"
	AuditAdminDeactivated    AuditAction = "ADMIN_DEACTIVATED"
	AuditAdminProfileUpdated AuditAction = "ADMIN_PROFILE_UPDATED"
	AuditContentCreated      AuditAction = "CONTENT_CREATED"
	AuditContentUpdated      AuditAction = "CONTENT_UPDATED"
	AuditContentDeleted      AuditAction = "CONTENT_DELETED"
	AuditTeamMemberCreated   AuditAction = "TEAM_MEMBER_CREATED"
	AuditTeamMemberUpdated   AuditAction = "TEAM_MEMBER_UPDATED"
	AuditTeamMemberDeleted   AuditAction = "TEAM_MEMBER_DELETED"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}
