package report

import (
	"errors"
	"testing"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
)

func TestNormalize_FreshShape(t *testing.T) {
	payload := []byte(`{
		"summary": {
			"total": 3,
			"critical": 1,
			"serious": 1,
			"minor": 1,
			"india_compliance": "Partially Compliant",
			"status": "completed"
		},
		"report": [
			{
				"rule": "image-alt",
				"description": "Images must have alternate text",
				"wcag_sc": "1.1.1",
				"fix_priority": "CRITICAL",
				"selector": "img.hero",
				"html_snippet": "<img class=\"hero\">",
				"ai_explanation": "Add an alt attribute.",
				"ai_fixed_code": "<img class=\"hero\" alt=\"Hero\">",
				"category": "syntax"
			},
			{
				"rule": "color-contrast",
				"description": "Contrast too low",
				"fix_priority": "MEDIUM",
				"is_vision": true
			},
			{
				"rule": "label",
				"description": "Form elements must have labels",
				"fix_priority": "LOW"
			}
		]
	}`)

	result, err := Normalize(payload, "https://example.com")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if result.Summary.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Summary.Total)
	}
	if result.Summary.Critical != 1 || result.Summary.Serious != 1 || result.Summary.Minor != 1 {
		t.Errorf("severity counts = %d/%d/%d, want 1/1/1",
			result.Summary.Critical, result.Summary.Serious, result.Summary.Minor)
	}
	if result.Summary.ComplianceLabel != "Partially Compliant" {
		t.Errorf("ComplianceLabel = %q", result.Summary.ComplianceLabel)
	}
	if result.SourceURL != "https://example.com" {
		t.Errorf("SourceURL = %q", result.SourceURL)
	}
	if len(result.Issues) != 3 {
		t.Fatalf("len(Issues) = %d, want 3", len(result.Issues))
	}

	// Order and field renames are 1:1
	first := result.Issues[0]
	if first.Rule != "image-alt" {
		t.Errorf("Issues[0].Rule = %q", first.Rule)
	}
	if first.WCAGCriterion != "1.1.1" {
		t.Errorf("Issues[0].WCAGCriterion = %q", first.WCAGCriterion)
	}
	if first.FixPriority != "CRITICAL" {
		t.Errorf("Issues[0].FixPriority = %q", first.FixPriority)
	}
	if first.AIFixedCode != `<img class="hero" alt="Hero">` {
		t.Errorf("Issues[0].AIFixedCode = %q", first.AIFixedCode)
	}
	if !result.Issues[1].IsVision {
		t.Error("Issues[1].IsVision = false, want true")
	}
	if result.Issues[2].Rule != "label" {
		t.Errorf("Issues[2].Rule = %q", result.Issues[2].Rule)
	}
}

func TestNormalize_StoredShape(t *testing.T) {
	payload := []byte(`{
		"url": "https://stored.example.com",
		"total_issues": 2,
		"priority": "HIGH",
		"issues": [
			{"rule": "image-alt", "description": "Missing alt", "priority": "HIGH"},
			{"rule": "html-has-lang", "description": "Missing lang", "priority": "LOW"}
		]
	}`)

	result, err := Normalize(payload, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Stored audits synthesize their summary
	if result.Summary.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Summary.Total)
	}
	if result.Summary.ComplianceLabel != "Unknown" {
		t.Errorf("ComplianceLabel = %q, want Unknown", result.Summary.ComplianceLabel)
	}
	if result.Summary.Status != "completed" {
		t.Errorf("Status = %q, want completed", result.Summary.Status)
	}
	if result.Summary.Critical != 0 || result.Summary.Serious != 0 || result.Summary.Minor != 0 {
		t.Error("synthesized summary must not invent severity counts")
	}

	if result.SourceURL != "https://stored.example.com" {
		t.Errorf("SourceURL = %q", result.SourceURL)
	}

	// The stored shape's priority field lands in FixPriority
	if result.Issues[0].FixPriority != "HIGH" {
		t.Errorf("Issues[0].FixPriority = %q, want HIGH", result.Issues[0].FixPriority)
	}
	if result.Issues[1].FixPriority != "LOW" {
		t.Errorf("Issues[1].FixPriority = %q, want LOW", result.Issues[1].FixPriority)
	}
}

func TestNormalize_EmptyReportIsNotMalformed(t *testing.T) {
	payload := []byte(`{
		"summary": {"total": 0, "critical": 0, "serious": 0, "minor": 0,
			"india_compliance": "Compliant", "status": "completed"},
		"report": []
	}`)

	result, err := Normalize(payload, "https://clean.example.com")
	if err != nil {
		t.Fatalf("empty report must normalize cleanly: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Errorf("len(Issues) = %d, want 0", len(result.Issues))
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"no issue list", `{"summary": {"total": 1}}`},
		{"fresh without summary", `{"report": []}`},
		{"stored without total", `{"issues": []}`},
		{"report not a list", `{"summary": {"total": 1}, "report": {"rule": "x"}}`},
		{"report null", `{"summary": {"total": 1}, "report": null, "issues": null}`},
		{"issues not a list", `{"total_issues": 1, "issues": "nope"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]byte(tc.payload), "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, apperrors.ErrMalformedPayload) {
				t.Errorf("error %v does not match ErrMalformedPayload", err)
			}
		})
	}
}

func TestNormalize_FreshShapeWinsWhenBothListsPresent(t *testing.T) {
	payload := []byte(`{
		"summary": {"total": 1},
		"report": [{"rule": "from-report"}],
		"total_issues": 5,
		"issues": [{"rule": "from-issues"}]
	}`)

	result, err := Normalize(payload, "")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].Rule != "from-report" {
		t.Errorf("fresh shape should take precedence, got %+v", result.Issues)
	}
}
