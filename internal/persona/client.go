// Package persona answers visitor messages in Golden's voice through an
// OpenAI-compatible chat completions API.
package persona

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/evcraddock/golden-profile/internal/metrics"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = openai.GPT3Dot5Turbo

	// FallbackReply is returned when the model produces no text.
	FallbackReply = "Meow? I didn't quite catch that! 🐱"

	maxTokens   = 150
	temperature = 0.8
)

const systemPrompt = `You are Golden, a New Zealand-based cat who loves to respond to messages from humans.
You should respond in a playful, cat-like manner with lots of "meow", "purr", and cat emojis.
Keep responses short (1-2 sentences) and friendly.
If someone is commenting on your photos, be flattered and respond accordingly.
If someone is asking about you, share fun cat facts about yourself.
Always maintain a cute, sassy cat personality.
Use cat emojis.
Be conversational and engaging like a real cat would be.`

// ErrEmptyMessage is returned when the visitor's message is blank.
var ErrEmptyMessage = errors.New("message is required")

// UpstreamError reports a failed call to the completions API.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Detail)
	}
	return e.Detail
}

// Reply is Golden's answer to a message.
type Reply struct {
	Text      string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Config holds the connection settings for the completions API.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls the completions API.
type Client struct {
	http  *resty.Client
	model string
	ready bool
	now   func() time.Time
}

// NewClient creates a client. A missing API key still yields a usable client
// whose calls fail with an UpstreamError.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)
	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		http:  rc,
		model: cfg.Model,
		ready: cfg.APIKey != "",
		now:   time.Now,
	}
}

// Reply sends message to the model and returns its answer. Exactly one
// upstream request is made per call.
func (c *Client) Reply(ctx context.Context, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if !c.ready {
		metrics.UpstreamCallsTotal.WithLabelValues("openai", "unconfigured").Inc()
		return nil, &UpstreamError{Detail: "API key is not configured"}
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var completion openai.ChatCompletionResponse
	var apiErr openai.ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&completion).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("openai", "error").Inc()
		return nil, &UpstreamError{Detail: err.Error()}
	}
	if resp.IsError() {
		metrics.UpstreamCallsTotal.WithLabelValues("openai", "error").Inc()
		detail := strings.TrimSpace(resp.String())
		if apiErr.Error != nil && apiErr.Error.Message != "" {
			detail = apiErr.Error.Message
		}
		return nil, &UpstreamError{Status: resp.StatusCode(), Detail: detail}
	}
	metrics.UpstreamCallsTotal.WithLabelValues("openai", "ok").Inc()

	text := ""
	if len(completion.Choices) > 0 {
		text = strings.TrimSpace(completion.Choices[0].Message.Content)
	}
	if text == "" {
		text = FallbackReply
	}

	zerolog.Ctx(ctx).Debug().Str("model", c.model).Int("tokens", completion.Usage.TotalTokens).Msg("persona replied")
	return &Reply{Text: text, Timestamp: c.now().UTC()}, nil
}
