package model

// OpenAIChatMessage is a single chat message in the completions API format.
type OpenAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIChatRequest is the request body for a chat completions call.
type OpenAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []OpenAIChatMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// OpenAIChatResponse is the subset of the completions response we read.
type OpenAIChatResponse struct {
	Choices []struct {
		Message OpenAIChatMessage `json:"message"`
	} `json:"choices"`
}

// RobotCommentRequest is the body of POST /api/robot-comment.
type RobotCommentRequest struct {
	SongTitle string `json:"song_title,omitempty"`
	Lyrics    string `json:"lyrics,omitempty"`
}
