package analysis

import (
	"errors"
	"testing"
)

func TestParseFindings_FullSchema(t *testing.T) {
	raw := `[{"sentence":"S","types":["toxin"],"law":"L","description":"D","recommend":"R","risk":"high","title":"T","category":"C"}]`

	findings, err := ParseFindings(raw, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Sentence != "S" || f.Law != "L" || f.Description != "D" || f.Recommend != "R" || f.Title != "T" || f.Category != "C" {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if f.Risk != RiskHigh {
		t.Fatalf("expected high risk, got %s", f.Risk)
	}
	if !f.HasType(TypeToxin) {
		t.Fatalf("expected toxin type, got %v", f.Types)
	}
}

func TestParseFindings_StripsCodeFences(t *testing.T) {
	raw := "```json\n[{\"sentence\":\"S\",\"types\":[\"main\"]}]\n```"

	findings, err := ParseFindings(raw, nil)
	if err != nil {
		t.Fatalf("parse fenced output: %v", err)
	}
	if len(findings) != 1 || findings[0].Sentence != "S" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestParseFindings_DefaultsMissingFields(t *testing.T) {
	var defaulted []string
	report := func(index int, field string) {
		defaulted = append(defaulted, field)
	}

	findings, err := ParseFindings(`[{}]`, report)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := findings[0]
	if f.Sentence != "" {
		t.Fatalf("expected empty sentence default, got %q", f.Sentence)
	}
	if len(f.Types) != 0 {
		t.Fatalf("expected empty types default, got %v", f.Types)
	}
	if f.Law != "-" || f.Description != "-" || f.Recommend != "-" || f.Category != "-" {
		t.Fatalf("expected dash defaults, got %+v", f)
	}
	if f.Title != "조항 1" {
		t.Fatalf("expected placeholder title, got %q", f.Title)
	}
	if f.Risk != RiskLow {
		t.Fatalf("expected low risk default, got %s", f.Risk)
	}
	if len(defaulted) == 0 {
		t.Fatal("expected field gap reports for defaulted fields")
	}
}

func TestParseFindings_InvalidRiskNormalizesToLow(t *testing.T) {
	for _, risk := range []string{`"critical"`, `"HIGHEST"`, `""`, `42`} {
		findings, err := ParseFindings(`[{"sentence":"S","risk":`+risk+`}]`, nil)
		if err != nil {
			t.Fatalf("parse risk=%s: %v", risk, err)
		}
		if findings[0].Risk != RiskLow {
			t.Fatalf("risk=%s: expected low, got %s", risk, findings[0].Risk)
		}
	}
}

func TestParseFindings_RiskCaseInsensitive(t *testing.T) {
	findings, err := ParseFindings(`[{"risk":"HIGH"},{"risk":" Mid "}]`, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if findings[0].Risk != RiskHigh || findings[1].Risk != RiskMid {
		t.Fatalf("unexpected risks: %s %s", findings[0].Risk, findings[1].Risk)
	}
}

func TestParseFindings_UnknownTypeTagsDropped(t *testing.T) {
	findings, err := ParseFindings(`[{"types":["toxin","poison","MAIN"]}]`, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := findings[0]
	if !f.HasType(TypeToxin) || !f.HasType(TypeMain) || f.HasType("poison") {
		t.Fatalf("unexpected types: %v", f.Types)
	}
}

func TestParseFindings_NotJSON(t *testing.T) {
	_, err := ParseFindings("죄송하지만 분석할 수 없습니다.", nil)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got: %v", err)
	}
}

func TestParseFindings_TopLevelNotArray(t *testing.T) {
	_, err := ParseFindings(`{"sentence":"S"}`, nil)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for object, got: %v", err)
	}
}

func TestParseFindings_NonObjectElementDefaultsEverything(t *testing.T) {
	findings, err := ParseFindings(`["just a string"]`, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if findings[0].Title != "조항 1" || findings[0].Risk != RiskLow {
		t.Fatalf("expected all-default finding, got %+v", findings[0])
	}
}

func TestParseFindings_EmptyArray(t *testing.T) {
	findings, err := ParseFindings("[]", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %d", len(findings))
	}
}
