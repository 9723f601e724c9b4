package enums

import "fmt"

// ContentKind distinguishes the media library entity types.
type ContentKind string

const (
	ContentKindVideo   ContentKind = "video"
	ContentKindAudio   ContentKind = "audio"
	ContentKindEbook   ContentKind = "ebook"
	ContentKindGallery ContentKind = "gallery"
)

var validContentKinds = []ContentKind{
	ContentKindVideo,
	ContentKindAudio,
	ContentKindEbook,
	ContentKindGallery,
}

// String implements fmt.Stringer.
func (c ContentKind) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c ContentKind) IsValid() bool {
	for _, candidate := range validContentKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContentKind converts raw input into a ContentKind.
func ParseContentKind(value string) (ContentKind, error) {
	for _, candidate := range validContentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid content kind %q", value)
}
