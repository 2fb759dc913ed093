package openai

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"contract-backend/internal/llm"
	"contract-backend/internal/shared/telemetry"
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	api     *openai.Client
	timeout time.Duration
}

// NewClient constructs a new OpenAI client. The request timeout can be
// overridden with OPENAI_TIMEOUT_SECONDS.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		api:     openai.NewClient(apiKey),
		timeout: timeout,
	}, nil
}

// Complete sends one chat completion request and returns the response text.
// No retries: a failed call surfaces as llm.ErrCompletion and the caller
// decides whether the request degrades or aborts.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("%w: model is required", llm.ErrCompletion)
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("%w: messages are required", llm.ErrCompletion)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response missing choices", llm.ErrCompletion)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: response empty content", llm.ErrCompletion)
	}

	telemetry.Info("llm.complete", map[string]any{
		"model":             req.Model,
		"duration_ms":       float64(time.Since(start).Microseconds()) / 1000.0,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})
	return content, nil
}

var _ llm.Client = (*Client)(nil)
