package report

import (
	"strings"
	"testing"
)

func TestRender_EmptyState(t *testing.T) {
	result := &AuditResult{
		Summary:   AuditSummary{Total: 0, ComplianceLabel: "Compliant", Status: "completed"},
		SourceURL: "https://clean.example.com",
	}

	out := Render(result, RenderOptions{})
	if !strings.Contains(out, "No issues found!") {
		t.Error("missing empty-state headline")
	}
	if !strings.Contains(out, "This page passed all accessibility checks.") {
		t.Error("missing empty-state body")
	}
	if strings.Contains(out, "Issues & Remediation") {
		t.Error("empty state must not render the issue section")
	}
}

func TestRender_IssueRows(t *testing.T) {
	result := &AuditResult{
		Summary:   AuditSummary{Total: 2},
		SourceURL: "https://example.com",
		Issues: []Issue{
			{Rule: "image-alt", Description: "Images must have alternate text", FixPriority: "CRITICAL"},
			{Rule: "color-contrast", Description: "Contrast too low\nsecond line", FixPriority: "MEDIUM", IsVision: true},
		},
	}

	out := Render(result, RenderOptions{})
	if !strings.Contains(out, "image-alt") || !strings.Contains(out, "color-contrast") {
		t.Error("missing issue rules")
	}
	if !strings.Contains(out, "Total Issues: 2") {
		t.Error("missing metrics line")
	}
	// Collapsed rows show only the first description line
	if strings.Contains(out, "second line") {
		t.Error("collapsed view leaked past the first description line")
	}
	if strings.Contains(out, "THE VIOLATION") {
		t.Error("collapsed view must not render detail panels")
	}
}

func TestRender_ExpandedDetail(t *testing.T) {
	result := &AuditResult{
		Summary:   AuditSummary{Total: 1},
		SourceURL: "https://example.com",
		Issues: []Issue{
			{
				Rule:          "image-alt",
				Description:   "Images must have alternate text",
				FixPriority:   "CRITICAL",
				WCAGCriterion: "1.1.1",
				Selector:      "img.hero",
				HTMLSnippet:   `<img class="hero">`,
				AIExplanation: "Add an alt attribute.",
				AIFixedCode:   `<img alt="Hero">`,
			},
		},
	}

	out := Render(result, RenderOptions{Expanded: true})
	for _, want := range []string{
		"THE VIOLATION", "WCAG Criteria: 1.1.1", "img.hero",
		`<img class="hero">`, "AI SOLUTION", "Add an alt attribute.",
		"FIXED:", `<img alt="Hero">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}
}

func TestRender_ExpandedDefaults(t *testing.T) {
	result := &AuditResult{
		Summary: AuditSummary{Total: 1},
		Issues:  []Issue{{Rule: "sparse", Description: "bare issue"}},
	}

	out := Render(result, RenderOptions{Expanded: true})
	if !strings.Contains(out, "WCAG Criteria: N/A") {
		t.Error("missing WCAG default")
	}
	if !strings.Contains(out, "Code not available") {
		t.Error("missing snippet default")
	}
	if !strings.Contains(out, "No AI explanation available.") {
		t.Error("missing AI placeholder")
	}
	if strings.Contains(out, "FIXED:") {
		t.Error("FIXED block must only appear when fixed code is present")
	}
}

func TestPriorityBadge(t *testing.T) {
	tests := []struct {
		priority string
		want     string
	}{
		{"CRITICAL", "[Critical]"},
		{"HIGH", "[Critical]"},
		{"MEDIUM", "[Serious]"},
		{"LOW", "[Minor]"},
		{"", "[Minor]"},
	}
	for _, tc := range tests {
		badge := PriorityBadge(Issue{FixPriority: tc.priority})
		if !strings.Contains(badge, tc.want) {
			t.Errorf("PriorityBadge(%q) = %q, want substring %q", tc.priority, badge, tc.want)
		}
	}
}

func TestCategoryBadge(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{"syntax labeled Code", Issue{Category: CategorySyntax}, "[Code]"},
		{"visual", Issue{Category: CategoryVisual}, "[Visual]"},
		{"semantic", Issue{Category: CategorySemantic}, "[Semantic]"},
		{"interaction", Issue{Category: CategoryInteraction}, "[Interaction]"},
		{"vision fallback", Issue{IsVision: true}, "[Visual]"},
		{"absent fallback", Issue{}, "[Code]"},
		{"unknown keeps its label", Issue{Category: "cognitive"}, "[Cognitive]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			badge := CategoryBadge(tc.issue)
			if !strings.Contains(badge, tc.want) {
				t.Errorf("CategoryBadge = %q, want substring %q", badge, tc.want)
			}
		})
	}
}

func TestDisplaySelector(t *testing.T) {
	long := strings.Repeat("a", 80)

	tests := []struct {
		input    string
		expected string
	}{
		{"", "N/A..."},
		{"div.short", "div.short..."},
		{long, long[:60] + "..."},
		// Truncation never splits a multi-byte rune
		{strings.Repeat("é", 70), strings.Repeat("é", 60) + "..."},
	}
	for _, tc := range tests {
		if got := DisplaySelector(tc.input); got != tc.expected {
			t.Errorf("DisplaySelector(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
