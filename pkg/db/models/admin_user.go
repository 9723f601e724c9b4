package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// AdminUser holds the console identity plus its authorization attributes.
// The auth layer owns credentials; this row is the source of truth for role
// and the active flag.
type AdminUser struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string          `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	DisplayName  string          `gorm:"column:display_name;not null" json:"displayName"`
	PhotoURL     *string         `gorm:"column:photo_url" json:"photoURL,omitempty"`
	Role         enums.AdminRole `gorm:"column:role;type:admin_role;not null;default:'content_admin'" json:"role"`
	Active       bool            `gorm:"column:active;not null;default:true" json:"active"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
