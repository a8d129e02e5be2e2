package commentary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		lyrics   string
		contains string
	}{
		{
			name:     "title and lyrics use the detailed template",
			title:    "Mat Ket Noi",
			lyrics:   "some lyrics",
			contains: "Here are the lyrics:",
		},
		{
			name:     "title only",
			title:    "Mat Ket Noi",
			contains: "based on the song title",
		},
		{
			name:     "nothing known falls back to greeting",
			contains: "funny greeting",
		},
		{
			name:     "lyrics without a title still greet",
			lyrics:   "orphaned lyrics",
			contains: "funny greeting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPrompt(tt.title, tt.lyrics)
			assert.Contains(t, got, tt.contains)
			if tt.title != "" {
				assert.Contains(t, got, tt.title)
			}
		})
	}
}

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))

		var req model.OpenAIChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)

		json.NewEncoder(w).Encode(model.OpenAIChatResponse{
			Choices: []struct {
				Message model.OpenAIChatMessage `json:"message"`
			}{
				{Message: model.OpenAIChatMessage{Role: "assistant", Content: reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCommentSuccess(t *testing.T) {
	srv := chatServer(t, "  Nice taste, for a human.  ")
	g := NewGenerator(&Config{APIBaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})

	got, err := g.Comment(context.Background(), "Mat Ket Noi", "lyrics here")
	require.NoError(t, err)
	assert.Equal(t, "Nice taste, for a human.", got)
}

func TestCommentEmptyReplyFallsBack(t *testing.T) {
	srv := chatServer(t, "   ")
	g := NewGenerator(&Config{APIBaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})

	got, err := g.Comment(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, FallbackComment, got)
}

func TestCommentAPIErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	g := NewGenerator(&Config{APIBaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})

	got, err := g.Comment(context.Background(), "Some Song", "")
	require.Error(t, err)
	assert.Equal(t, FallbackComment, got, "errors must still yield a usable comment")
}

func TestCommentUnreachableAPIFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	g := NewGenerator(&Config{APIBaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})

	got, err := g.Comment(context.Background(), "Some Song", "")
	require.Error(t, err)
	assert.Equal(t, FallbackComment, got)
}
