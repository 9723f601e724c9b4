package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// AuditLog is an append-only record of a privileged mutation. Actor fields are
// snapshot copies taken at write time so history stays accurate even if the
// acting admin is later renamed, deactivated, or deleted.
type AuditLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action     enums.AuditAction `gorm:"column:action;not null;index" json:"action"`
	EntityType string            `gorm:"column:entity_type;not null" json:"entityType"`
	EntityID   string            `gorm:"column:entity_id;not null" json:"entityId"`
	Summary    string            `gorm:"column:summary;not null" json:"summary"`
	ActorID    uuid.UUID         `gorm:"column:actor_id;type:uuid;not null" json:"actorId"`
	ActorEmail string            `gorm:"column:actor_email;not null" json:"actorEmail"`
	ActorName  string            `gorm:"column:actor_name;not null" json:"actorName"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}
