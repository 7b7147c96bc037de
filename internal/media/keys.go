package media

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Object keys follow {ownerID}/{inspectionID}/{objectID}{ext} so a
// bucket listing under an owner prefix yields exactly that owner's
// files, and deleting an inspection prefix removes its whole subtree.

var photoMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
}

var voiceNoteMimeTypes = []string{
	"audio/mpeg",
	"audio/mp4",
	"audio/wav",
	"audio/x-wav",
	"audio/webm",
	"audio/aac",
	"audio/x-m4a",
}

// IsAllowedPhotoMime reports whether the content type is accepted for photo uploads.
func IsAllowedPhotoMime(mimeType string) bool {
	return containsFold(photoMimeTypes, mimeType)
}

// IsAllowedVoiceNoteMime reports whether the content type is accepted for voice note uploads.
func IsAllowedVoiceNoteMime(mimeType string) bool {
	return containsFold(voiceNoteMimeTypes, mimeType)
}

func containsFold(allowed []string, value string) bool {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}

// BuildObjectKey renders the storage key for a new object.
func BuildObjectKey(ownerID, inspectionID, objectID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s%s", ownerID, inspectionID, objectID, fileExtension(fileName))
}

func fileExtension(name string) string {
	clean := SanitizeFileName(name)
	ext := strings.ToLower(path.Ext(clean))
	if ext == "." {
		return ""
	}
	return ext
}

// SanitizeFileName strips path segments, control characters, and
// whitespace from a client-supplied file name.
func SanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
