package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		extension string
		expected  string
	}{
		{".mp4", "video/mp4"},
		{".MP4", "video/mp4"},
		{".webm", "video/webm"},
		{".mov", "video/quicktime"},
		{".mkv", "video/x-matroska"},
		{".jpg", "image/jpeg"},
		{".JPEG", "image/jpeg"},
		{".png", "image/png"},
		{".gif", "image/gif"},
		{".webp", "image/webp"},
		{".unknown", "application/octet-stream"},
		{"", "application/octet-stream"},
		{".avi", "application/octet-stream"}, // Not supported
	}

	for _, tt := range tests {
		t.Run(tt.extension, func(t *testing.T) {
			assert.Equal(t, tt.expected, getContentType(tt.extension))
		})
	}
}

func TestDefaultExtension(t *testing.T) {
	assert.Equal(t, ".mp4", defaultExtension(MediaKindVideo))
	assert.Equal(t, ".jpg", defaultExtension(MediaKindThumbnail))
	assert.Equal(t, ".jpg", defaultExtension(MediaKindAvatar))
	assert.Equal(t, ".jpg", defaultExtension(MediaKindCover))
}
