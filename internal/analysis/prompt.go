package analysis

import (
	"fmt"
	"strings"

	"contract-backend/internal/llm"
)

const (
	slotContext      = "{{context}}"
	slotUserQuestion = "{{user_question}}"

	analysisSystemPrompt = "당신은 변호사입니다."
)

// GuidelineTemplate is an immutable prompt template with exactly two
// substitution slots: {{context}} and {{user_question}}. Slot presence is
// validated once at load time; Fill is a pure function.
type GuidelineTemplate struct {
	raw string
}

// NewGuidelineTemplate validates and wraps a raw template string.
func NewGuidelineTemplate(raw string) (GuidelineTemplate, error) {
	for _, slot := range []string{slotContext, slotUserQuestion} {
		switch strings.Count(raw, slot) {
		case 1:
		case 0:
			return GuidelineTemplate{}, fmt.Errorf("guideline template missing slot %s", slot)
		default:
			return GuidelineTemplate{}, fmt.Errorf("guideline template has duplicate slot %s", slot)
		}
	}
	return GuidelineTemplate{raw: raw}, nil
}

// MustGuidelineTemplate is NewGuidelineTemplate for compile-time constants.
func MustGuidelineTemplate(raw string) GuidelineTemplate {
	t, err := NewGuidelineTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Fill substitutes both slots and returns the final prompt text.
func (t GuidelineTemplate) Fill(contextText, userText string) string {
	out := strings.Replace(t.raw, slotContext, contextText, 1)
	out = strings.Replace(out, slotUserQuestion, userText, 1)
	return out
}

// BuildAnalysisMessages produces the fixed two-message analysis prompt.
// Contract text beyond limit runes is cut without a marker; only the chat
// path signals its truncation.
func BuildAnalysisMessages(tmpl GuidelineTemplate, contractText string, limit int) []llm.Message {
	text := contractText
	if limit > 0 {
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: analysisSystemPrompt},
		{Role: llm.RoleUser, Content: tmpl.Fill("", text)},
	}
}

// DefaultGuidelineTemplate returns the built-in employment-contract guideline.
func DefaultGuidelineTemplate() GuidelineTemplate {
	return MustGuidelineTemplate(guidelinePrompt)
}

const guidelinePrompt = `
당신은 **근로 계약** 전문 변호사입니다.
당신의 임무는 제공된 계약서를 기반으로 피계약자가 주의깊게 살펴보아야 할 주요 조항과 독소 조항, 그리고 모호한 표현들을 찾아내는 것입니다.
청자는 해당 계약서의 피계약자이며, 피계약자는 20살 이상의 성인이지만, 법률에 대한 지식이 계약자보다 상대적으로 부족한 사람입니다.

##규칙
계약서의 조항은 실제 법률에 근거하여 작성된 계약서의 내용뿐 아니라, 법률에 근거하지 않은 모든 내용을 포함합니다.
- **주요 조항** : 계약이 성사될 시 피계약자가 가장 중요하게 살펴봐야 하는 조항을 의미합니다.
- **독소 조항** : 계약이 성사될 시 피계약자에게 불리하게 작용할 수 있거나 법률에 어긋나는 조항을 의미합니다.
- **모호한 표현** : 계약 체결 후 피계약자에게 잠재적 피해를 끼칠 수 있는 조항을 의미합니다.

당신은 계약서의 각 문장을 기준으로 가장 유사한 법률 조항을 찾아, 그에 어긋나는 표현이 있는지 파악해야 합니다.
계약서의 내용과 법률 조항 간의 맥락을 파악하여 피계약자에게 불리하게 작용할 수 있는 모든 조항을 탐색합니다.
주요 조항, 독소 조항, 모호한 표현은 모두 법률 데이터를 기반으로, '왜' 중요한지, '왜' 어긋나는지, '왜' 모호한지 피계약자에게 명확하고, 구체적으로 설명해야 합니다.

계약서 상의 조건 및 조항을 법률과 비교하여 피계약자에게 불리한 점을 찾지 못했다면, 계약이 체결되어도 무방하다고 할 수 있습니다. 그러나 한 번 더 확인하는 것을 기본으로 합니다.

## 출력 형식
출력 형식은 JSON 형태로 각 key는 다음과 같이 구성되어야 합니다.
- **sentence**: 주어진 계약서에 작성된 내용을 포함합니다.
- **types**: 배열 형태를 가지며, 'main'(주요 조항), 'toxin'(독소 조항), 'ambi'(모호한 표현) 중 1~3개를 가질 수 있습니다.
- **law**: "sentence"와 가장 유사도가 높은 실제 법률 조항을 의미합니다. 이를 출력할 때는 '000법 제00조0'와 같은 형식으로 출력합니다.
- **description**: "law"의 법률 데이터와 계약서 내용의 차이점을 설명합니다.
- **recommend**: "law"와 "description"에 따라 수정이 완료된 수정 조항입니다.
- **title**: 해당 조항의 핵심을 요약한 짧은 제목입니다.
- **risk**: 피계약자 관점에서 본 위험도이며 'low', 'mid', 'high' 중 하나입니다.
- **category**: 조항이 속한 계약 영역입니다. (예: 근로시간, 임금, 계약 해지)

답안은 [] 내부에 작성되어야 하며, JSON만 제공합니다.

## 질문
1. 이 계약서의 주요 조항은 모두 무엇입니까? 주요 조항을 찾고 'main' 타입으로 분류하여, 각 조항이 중요한 이유를 설명하십시오.
2. 이 계약서에서 독소 조항은 모두 무엇입니까? 독소 조항을 찾고 'toxin' 타입으로 분류하여, 각 조항이 피계약자에게 불리한 이유를 설명하십시오.
3. 이 계약서에서 모호한 표현은 모두 무엇입니까? 모호한 표현을 찾고 'ambi' 타입으로 분류하여, 각 표현이 모호한 이유와 그로 인한 잠재적 피해를 설명하십시오.

## 입력 데이터
- Context: {{context}}
- 계약서: {{user_question}}
`
