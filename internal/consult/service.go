package consult

import (
	"context"
	"errors"
	"strings"

	"contract-backend/internal/documents"
	"contract-backend/internal/llm"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/telemetry"
)

const (
	consultTemperature = 0.2
	consultMaxTokens   = 500

	fallbackAnswer = "AI 응답 생성에 실패했습니다. 다시 시도해주세요."
)

var ErrInvalidInput = errors.New("document id and message are required")

// DocumentSource resolves a document scoped to its owner.
type DocumentSource interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service runs one consultation turn: resolve the document, build the
// grounded context, persist the user message, complete, persist the answer.
type Service struct {
	LLM       llm.Client
	Repo      Repo
	Docs      DocumentSource
	Model     string
	TextLimit int
}

// TurnResult carries both persisted messages of a completed turn.
type TurnResult struct {
	UserMessage ChatMessage
	AIMessage   ChatMessage
}

// Ask handles one chat turn. The user message is persisted before the
// completion call so it survives a completion failure; a failed completion
// degrades to a fixed fallback answer instead of aborting the turn.
func (s *Service) Ask(ctx context.Context, userID, documentID, message string) (TurnResult, error) {
	if strings.TrimSpace(documentID) == "" || strings.TrimSpace(message) == "" {
		return TurnResult{}, ErrInvalidInput
	}

	start := metrics.NowMillis()

	doc, err := s.Docs.Get(ctx, userID, documentID)
	if err != nil {
		return TurnResult{}, err
	}

	history, err := s.Repo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return TurnResult{}, err
	}

	msgs := BuildConsultMessages(doc.Title, doc.ExtractedText, history, message, s.TextLimit)

	userMsg, err := s.Repo.Append(ctx, ChatMessage{
		DocumentID: doc.ID,
		UserID:     userID,
		Sender:     SenderUser,
		Text:       message,
	})
	if err != nil {
		return TurnResult{}, err
	}

	answer, err := s.LLM.Complete(ctx, llm.ChatRequest{
		Model:       s.Model,
		Messages:    msgs,
		Temperature: consultTemperature,
		MaxTokens:   consultMaxTokens,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrCompletion) {
			return TurnResult{}, err
		}
		telemetry.Warn("consult.fallback", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		metrics.IncConsultFallback()
		answer = fallbackAnswer
	}

	aiMsg, err := s.Repo.Append(ctx, ChatMessage{
		DocumentID: doc.ID,
		UserID:     userID,
		Sender:     SenderAI,
		Text:       answer,
	})
	if err != nil {
		// The user message is already durable; surface the write failure.
		return TurnResult{}, err
	}

	metrics.IncConsultTurn()
	metrics.ObserveConsultDurationMs(metrics.NowMillis() - start)
	telemetry.Info("consult.turn", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"history":     len(history),
	})

	return TurnResult{UserMessage: userMsg, AIMessage: aiMsg}, nil
}

// History returns the full chat log for a document the user owns.
func (s *Service) History(ctx context.Context, userID, documentID string) ([]ChatMessage, error) {
	doc, err := s.Docs.Get(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByDocument(ctx, doc.ID)
}
