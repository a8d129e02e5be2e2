// Package commentary produces short robot comments about the song the
// user is listening to. Commentary is a non-critical enhancement: any
// failure degrades to a fixed fallback line instead of an error.
package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"
)

// FallbackComment is returned whenever generation fails or comes back empty.
const FallbackComment = "So, did that track live up to the hype or what? 🎵"

// Prompt templates. Which one is used depends on what the caller knows:
// title and lyrics give the detailed roast, a title alone a lighter jab,
// and with nothing to go on the robot just greets the listener.
const (
	promptWithLyrics = `You are "Mam Chan", a witty music-player robot with a sharp but good-natured tongue.
The user is listening to the song titled %q.
Here are the lyrics:
%s
Write one short comment (70 words max) teasing the user based on what the song is about.
Reply with ONLY the comment, no explanation, no analysis.`

	promptWithTitle = `You are "Mam Chan", a witty music-player robot.
The user is listening to the song titled %q.
Write one short comment (70 words max) teasing the user based on the song title.
Reply with ONLY the comment.`

	promptGreeting = `You are "Mam Chan", a witty music-player robot.
Write one short, funny greeting (50 words max) for a user who is listening to music.
Reply with ONLY the comment.`
)

// Config holds the chat-completions API settings.
type Config struct {
	APIBaseURL  string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Generator calls an OpenAI-compatible chat completions API.
type Generator struct {
	cfg        *Config
	httpClient *http.Client
}

// NewGenerator creates a comment generator.
func NewGenerator(cfg *Config) *Generator {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 200
	}
	return &Generator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// buildPrompt selects the template. Title presence gates the choice:
// lyrics without a title still get the plain greeting.
func buildPrompt(songTitle, lyricsText string) string {
	switch {
	case songTitle != "" && lyricsText != "":
		return fmt.Sprintf(promptWithLyrics, songTitle, lyricsText)
	case songTitle != "":
		return fmt.Sprintf(promptWithTitle, songTitle)
	default:
		return promptGreeting
	}
}

// Comment generates a robot comment for the given song context. It never
// fails the caller: on any error the fallback comment is returned together
// with the error so the handler can report degraded mode.
func (g *Generator) Comment(ctx context.Context, songTitle, lyricsText string) (string, error) {
	text, err := g.generate(ctx, buildPrompt(songTitle, lyricsText))
	if err != nil {
		logger.Warn("Robot comment generation failed", logger.ErrorField(err))
		return FallbackComment, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackComment, nil
	}
	return text, nil
}

// generate performs a single bounded chat-completions call. No retries,
// no streaming.
func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := model.OpenAIChatRequest{
		Model: g.cfg.Model,
		Messages: []model.OpenAIChatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(g.cfg.APIBaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp model.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}
