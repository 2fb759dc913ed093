package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message is one role-tagged entry of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Roles accepted by the completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest carries one completion call: an ordered message list plus the
// fixed model/parameter profile of the calling pipeline.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client abstracts LLM providers. Implementations are stateless; one instance
// is constructed at startup and injected into every pipeline that needs it.
type Client interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ErrCompletion wraps provider, network, and timeout failures.
var ErrCompletion = errors.New("completion failed")

// Unavailable is a Client for processes booted without provider credentials.
// Every call fails with ErrCompletion so callers exercise their degraded
// paths instead of crashing at startup.
type Unavailable struct{}

func (Unavailable) Complete(ctx context.Context, req ChatRequest) (string, error) {
	return "", fmt.Errorf("%w: no completion provider configured", ErrCompletion)
}

var _ Client = Unavailable{}
