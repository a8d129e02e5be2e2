package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "explicit backend url wins",
			cfg:  Config{BackendURL: "https://api.example.com", BackendHost: "0.0.0.0", BackendPort: "8000"},
			want: "https://api.example.com",
		},
		{
			name: "trailing slash stripped",
			cfg:  Config{BackendURL: "https://api.example.com/"},
			want: "https://api.example.com",
		},
		{
			name: "wildcard bind rewritten to loopback",
			cfg:  Config{BackendHost: "0.0.0.0", BackendPort: "8000"},
			want: "http://127.0.0.1:8000",
		},
		{
			name: "concrete host kept",
			cfg:  Config{BackendHost: "music.internal", BackendPort: "9000"},
			want: "http://music.internal:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.PublicBaseURL())
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"http://localhost:3000", []string{"http://localhost:3000"}},
		{"http://a.test, http://b.test", []string{"http://a.test", "http://b.test"}},
		{"http://a.test,,  ,http://b.test", []string{"http://a.test", "http://b.test"}},
		{"*", []string{"*"}},
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitOrigins(tt.raw))
	}
}
