package content

import (
	"time"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// CreateContentInput is the payload for a new media library entry.
type CreateContentInput struct {
	Kind        enums.ContentKind
	Title       string
	Description *string
	MediaURL    string
	StorageKey  *string
	Published   bool
}

// UpdateContentInput carries the editable fields. Nil means unchanged.
type UpdateContentInput struct {
	Title       *string
	Description *string
	MediaURL    *string
	Published   *bool
}

// CreateTeamMemberInput is the payload for a new team page entry.
type CreateTeamMemberInput struct {
	Name      string
	Title     string
	Bio       *string
	PhotoURL  *string
	SortOrder int
}

// UpdateTeamMemberInput carries the editable fields. Nil means unchanged.
type UpdateTeamMemberInput struct {
	Name      *string
	Title     *string
	Bio       *string
	PhotoURL  *string
	SortOrder *int
}

// PresignInput models a request for a browser upload URL.
type PresignInput struct {
	Kind     enums.ContentKind
	FileName string
	MimeType string
}

// PresignOutput is returned to the console so it can PUT the object directly.
type PresignOutput struct {
	StorageKey   string    `json:"storage_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	PublicURL    string    `json:"public_url"`
	ContentType  string    `json:"content_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}
