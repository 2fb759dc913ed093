package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"contract-backend/internal/llm"
)

// scriptedLLM returns canned responses in order and records requests.
type scriptedLLM struct {
	responses []string
	err       error
	requests  []llm.ChatRequest
}

func (s *scriptedLLM) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", fmt.Errorf("%w: no scripted response", llm.ErrCompletion)
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func newTestService(client llm.Client) *Service {
	return &Service{
		LLM:       client,
		Template:  DefaultGuidelineTemplate(),
		Model:     "gpt-3.5-turbo",
		TextLimit: 3000,
		FieldGaps: func(int, string) {},
	}
}

func TestAnalyze_HappyPath(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		`[{"sentence":"S","types":["toxin"],"law":"L","description":"D","recommend":"R","risk":"high","title":"T"}]`,
	}}
	svc := newTestService(client)

	result, err := svc.Analyze(context.Background(), "계약서 본문")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Stats.Total != 1 || result.Stats.Toxin != 1 || result.Stats.RiskHigh != 1 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Highlights) != 1 || result.Highlights[0] != "[T] D" {
		t.Fatalf("unexpected highlights: %v", result.Highlights)
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected a single completion call, got %d", len(client.requests))
	}
	req := client.requests[0]
	if req.Model != "gpt-3.5-turbo" || req.Temperature != 0.5 || req.MaxTokens != 1500 {
		t.Fatalf("unexpected analysis profile: %+v", req)
	}
}

func TestAnalyze_CompletionErrorSurfaces(t *testing.T) {
	client := &scriptedLLM{err: fmt.Errorf("%w: boom", llm.ErrCompletion)}
	svc := newTestService(client)

	_, err := svc.Analyze(context.Background(), "본문")
	if !errors.Is(err, llm.ErrCompletion) {
		t.Fatalf("expected ErrCompletion, got: %v", err)
	}
}

func TestAnalyze_FixRepromptRecovers(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"죄송합니다, JSON이 아닙니다.",
		`[{"sentence":"S","types":["main"]}]`,
	}}
	svc := newTestService(client)

	result, err := svc.Analyze(context.Background(), "본문")
	if err != nil {
		t.Fatalf("analyze with fix reprompt: %v", err)
	}
	if result.Stats.Total != 1 || result.Stats.Main != 1 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(client.requests) != 2 {
		t.Fatalf("expected exactly 2 completion calls, got %d", len(client.requests))
	}
	fix := client.requests[1]
	last := fix.Messages[len(fix.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != fixJSONPrompt {
		t.Fatalf("fix request must end with the fix instruction: %+v", last)
	}
}

func TestAnalyze_SchemaErrorAfterSingleReprompt(t *testing.T) {
	client := &scriptedLLM{responses: []string{"not json", "still not json"}}
	svc := newTestService(client)

	_, err := svc.Analyze(context.Background(), "본문")
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got: %v", err)
	}
	if len(client.requests) != 2 {
		t.Fatalf("reprompt must be bounded to one retry, got %d calls", len(client.requests))
	}
}
