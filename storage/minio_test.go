package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeForObject(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sounds/track.mp3", "audio/mpeg"},
		{"lyrics/track.lrc", "text/plain"},
		{"lyrics/track.txt", "text/plain"},
		{"misc/cover.jpg", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeForObject(tt.name))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.size))
	}
}
