package analysis

import (
	"context"
	"errors"

	"contract-backend/internal/llm"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/telemetry"
)

const (
	analysisTemperature = 0.5
	analysisMaxTokens   = 1500

	fixJSONPrompt = "이전 답변은 유효한 JSON 배열이 아닙니다. 동일한 내용을 규칙에 맞는 JSON 배열로만 다시 출력하십시오. JSON 외의 텍스트는 포함하지 마십시오."
)

// Service runs the analysis pipeline stages that sit between text extraction
// and report rendering: prompt construction, completion, validation, and
// aggregation.
type Service struct {
	LLM       llm.Client
	Template  GuidelineTemplate
	Model     string
	TextLimit int
	FieldGaps FieldGapReporter
}

// Analyze turns extracted contract text into a full analysis result.
// Completion errors surface as llm.ErrCompletion; output that is not a JSON
// array after the single fix re-prompt surfaces as ErrSchema.
func (s *Service) Analyze(ctx context.Context, contractText string) (Result, error) {
	metrics.IncAnalysisStarted()
	start := metrics.NowMillis()

	messages := BuildAnalysisMessages(s.Template, contractText, s.TextLimit)
	raw, err := s.LLM.Complete(ctx, llm.ChatRequest{
		Model:       s.Model,
		Messages:    messages,
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	reporter := s.FieldGaps
	if reporter == nil {
		reporter = TelemetryFieldGaps
	}

	findings, err := ParseFindings(raw, reporter)
	if errors.Is(err, ErrSchema) {
		findings, err = s.reparse(ctx, messages, raw, reporter)
	}
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	stats, highlights := Aggregate(findings)

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(metrics.NowMillis() - start)
	telemetry.Info("analysis.complete", map[string]any{
		"findings":   stats.Total,
		"toxin":      stats.Toxin,
		"risk_high":  stats.RiskHigh,
		"highlights": len(highlights),
	})

	return Result{Findings: findings, Stats: stats, Highlights: highlights}, nil
}

// reparse asks the model once to restate its previous answer as a bare JSON
// array. A second malformed answer is terminal.
func (s *Service) reparse(ctx context.Context, messages []llm.Message, previous string, reporter FieldGapReporter) ([]ClauseFinding, error) {
	telemetry.Warn("analysis.fix_json_reprompt", map[string]any{"raw_len": len(previous)})

	fixMessages := append(append([]llm.Message{}, messages...),
		llm.Message{Role: llm.RoleAssistant, Content: previous},
		llm.Message{Role: llm.RoleUser, Content: fixJSONPrompt},
	)
	raw, err := s.LLM.Complete(ctx, llm.ChatRequest{
		Model:       s.Model,
		Messages:    fixMessages,
		Temperature: 0,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return ParseFindings(raw, reporter)
}
