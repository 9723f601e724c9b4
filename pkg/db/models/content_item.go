package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// ContentItem backs the media library managers (videos, audios, ebooks, gallery).
type ContentItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kind        enums.ContentKind `gorm:"column:kind;type:content_kind;not null;index" json:"kind"`
	Title       string            `gorm:"column:title;not null" json:"title"`
	Description *string           `gorm:"column:description" json:"description,omitempty"`
	MediaURL    string            `gorm:"column:media_url;not null" json:"mediaURL"`
	StorageKey  *string           `gorm:"column:storage_key" json:"storageKey,omitempty"`
	Published   bool              `gorm:"column:published;not null;default:false" json:"published"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
