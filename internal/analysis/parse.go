package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"contract-backend/internal/shared/telemetry"
)

// FieldGapReporter receives one call per defaulted field so that schema drift
// in model output stays observable instead of being silently papered over.
type FieldGapReporter func(index int, field string)

// TelemetryFieldGaps logs defaulted fields through the shared logger.
func TelemetryFieldGaps(index int, field string) {
	telemetry.Warn("analysis.field_defaulted", map[string]any{
		"finding": index,
		"field":   field,
	})
}

// ParseFindings normalizes and strictly parses the model's structured output.
// Step 1 strips stray code fences, step 2 requires a top-level JSON array,
// step 3 builds one ClauseFinding per element with per-field defaulting.
func ParseFindings(raw string, report FieldGapReporter) ([]ClauseFinding, error) {
	if report == nil {
		report = func(int, string) {}
	}

	cleaned := stripCodeFences(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	findings := make([]ClauseFinding, 0, len(elements))
	for i, element := range elements {
		findings = append(findings, buildFinding(i, element, report))
	}
	return findings, nil
}

// stripCodeFences removes a leading/trailing markdown fence the model may add
// despite instructions. Anything else is left untouched.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func buildFinding(index int, element json.RawMessage, report FieldGapReporter) ClauseFinding {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		// Non-object element: every field defaults.
		fields = nil
	}

	finding := ClauseFinding{
		Sentence:    stringField(fields, "sentence", "", index, report),
		Types:       typesField(fields, index, report),
		Law:         stringField(fields, "law", "-", index, report),
		Description: stringField(fields, "description", "-", index, report),
		Recommend:   stringField(fields, "recommend", "-", index, report),
		Title:       stringField(fields, "title", fmt.Sprintf("조항 %d", index+1), index, report),
		Risk:        riskField(fields, index, report),
		Category:    stringField(fields, "category", "-", index, report),
	}
	return finding
}

func stringField(fields map[string]json.RawMessage, key, def string, index int, report FieldGapReporter) string {
	raw, ok := fields[key]
	if !ok {
		report(index, key)
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		report(index, key)
		return def
	}
	return s
}

func typesField(fields map[string]json.RawMessage, index int, report FieldGapReporter) []string {
	raw, ok := fields["types"]
	if !ok {
		report(index, "types")
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		report(index, "types")
		return []string{}
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case TypeMain:
			out = append(out, TypeMain)
		case TypeToxin:
			out = append(out, TypeToxin)
		case TypeAmbi:
			out = append(out, TypeAmbi)
		}
	}
	return out
}

func riskField(fields map[string]json.RawMessage, index int, report FieldGapReporter) RiskLevel {
	raw, ok := fields["risk"]
	if !ok {
		report(index, "risk")
		return RiskLow
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		report(index, "risk")
		return RiskLow
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RiskHigh):
		return RiskHigh
	case string(RiskMid):
		return RiskMid
	case string(RiskLow):
		return RiskLow
	default:
		report(index, "risk")
		return RiskLow
	}
}
