package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember is one entry on the foundation's team page.
type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Bio       *string   `gorm:"column:bio" json:"bio,omitempty"`
	PhotoURL  *string   `gorm:"column:photo_url" json:"photoURL,omitempty"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sortOrder"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
