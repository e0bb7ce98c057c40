package attachments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectKey(t *testing.T) {
	cfg := &Config{BucketName: "facilityfox"}

	key := cfg.GetObjectKey(42, "0b1e7a2c-9f1d-4a52-8a9a-3f2f9b6a7c01", ".jpg")
	assert.Equal(t, "issues/42/0b1e7a2c-9f1d-4a52-8a9a-3f2f9b6a7c01.jpg", key)
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".jpg", "image/jpeg"},
		{".jpeg", "image/jpeg"},
		{".png", "image/png"},
		{".gif", "image/gif"},
		{".webp", "image/webp"},
		{".pdf", "application/pdf"},
		{".bin", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := getContentType(tt.ext); got != tt.want {
			t.Fatalf("getContentType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
