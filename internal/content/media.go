package content

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

const defaultUploadTTL = 15 * time.Minute

type uploadSigner interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	DefaultBucket() string
}

var mimeTypesByKind = map[enums.ContentKind][]string{
	enums.ContentKindVideo:   {"video/mp4", "video/webm"},
	enums.ContentKindAudio:   {"audio/mpeg", "audio/mp4", "audio/ogg", "audio/wav"},
	enums.ContentKindEbook:   {"application/pdf", "application/epub+zip"},
	enums.ContentKindGallery: {"image/png", "image/jpeg", "image/webp", "image/gif"},
}

// PresignUpload issues a short-lived PUT URL so the console uploads media
// straight to the bucket. The object key is minted here, never client chosen.
func (s *service) PresignUpload(ctx context.Context, input PresignInput) (*PresignOutput, error) {
	if s.signer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media uploads are not configured")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid content kind")
	}
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	mimeType := strings.TrimSpace(input.MimeType)
	if mimeType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type is required")
	}
	if !isAllowedMime(input.Kind, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type not allowed for content kind")
	}

	bucket := s.signer.DefaultBucket()
	if bucket == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media bucket is not configured")
	}

	storageKey := buildStorageKey(input.Kind, uuid.New(), fileName)
	signedURL, err := s.signer.SignedURL(bucket, storageKey, mimeType, defaultUploadTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignOutput{
		StorageKey:   storageKey,
		SignedPUTURL: signedURL,
		PublicURL:    fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, storageKey),
		ContentType:  mimeType,
		ExpiresAt:    time.Now().Add(defaultUploadTTL),
	}, nil
}

func isAllowedMime(kind enums.ContentKind, mimeType string) bool {
	allowed, ok := mimeTypesByKind[kind]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, mimeType) {
			return true
		}
	}
	return false
}

func buildStorageKey(kind enums.ContentKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("content/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range clean {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
