package media

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBuildObjectKeyLayout(t *testing.T) {
	owner := uuid.New()
	inspection := uuid.New()
	object := uuid.New()

	key := BuildObjectKey(owner, inspection, object, "Kitchen Sink.JPG")
	want := fmt.Sprintf("%s/%s/%s.jpg", owner, inspection, object)
	if key != want {
		t.Fatalf("key = %s, want %s", key, want)
	}
}

func TestBuildObjectKeyWithoutExtension(t *testing.T) {
	owner := uuid.New()
	inspection := uuid.New()
	object := uuid.New()

	key := BuildObjectKey(owner, inspection, object, "memo")
	if strings.Contains(key[strings.LastIndex(key, "/"):], ".") {
		t.Fatalf("expected no extension, got %s", key)
	}
}

func TestSanitizeFileNameStripsPathSegments(t *testing.T) {
	got := SanitizeFileName("../../etc/pass wd.png")
	if strings.Contains(got, "/") || strings.Contains(got, "..") {
		t.Fatalf("sanitized name still contains path parts: %s", got)
	}
	if got != "pass-wd.png" {
		t.Fatalf("got %s", got)
	}
}

func TestPhotoMimeAllowances(t *testing.T) {
	cases := []struct {
		mime string
		ok   bool
	}{
		{"image/jpeg", true},
		{"IMAGE/PNG", true},
		{"image/webp; charset=binary", true},
		{"application/pdf", false},
		{"audio/mpeg", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsAllowedPhotoMime(tc.mime); got != tc.ok {
			t.Fatalf("IsAllowedPhotoMime(%q) = %v, want %v", tc.mime, got, tc.ok)
		}
	}
}

func TestVoiceNoteMimeAllowances(t *testing.T) {
	if !IsAllowedVoiceNoteMime("audio/mp4") {
		t.Fatal("audio/mp4 should be allowed")
	}
	if IsAllowedVoiceNoteMime("image/jpeg") {
		t.Fatal("image/jpeg should be rejected for voice notes")
	}
}
