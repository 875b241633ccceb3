// Package report holds the canonical audit report model. Raw backend
// payloads arrive in two shapes (a fresh-audit shape and a stored-audit
// shape); Normalize maps both to one AuditResult at the boundary so nothing
// downstream ever branches on the wire format.
package report

import "strings"

// Issue categories as reported by the audit engine.
const (
	CategorySyntax      = "syntax"
	CategoryVisual      = "visual"
	CategorySemantic    = "semantic"
	CategoryInteraction = "interaction"
)

// Priority is the classified severity bucket of an issue.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PrioritySerious  Priority = "Serious"
	PriorityMinor    Priority = "Minor"
)

// Issue is one accessibility finding. Optional fields are empty strings
// when the backend omitted them; display defaults are applied at render
// time, never during normalization.
type Issue struct {
	Rule          string
	Description   string
	WCAGCriterion string
	FixPriority   string // raw backend label, preserved for display
	Selector      string
	HTMLSnippet   string
	AIExplanation string
	AIFixedCode   string
	Category      string
	IsVision      bool
}

// AuditSummary carries the backend-supplied aggregate counts. They are not
// recomputed from the issue list except where the PDF deliberately rescans
// priorities (see pkg/reporting).
type AuditSummary struct {
	Total           int
	Critical        int
	Serious         int
	Minor           int
	ComplianceLabel string
	Status          string
}

// AuditResult is the canonical in-memory report. Issue order is the
// backend's insertion order and is preserved through both renderings.
type AuditResult struct {
	Summary   AuditSummary
	Issues    []Issue
	SourceURL string
}

// ClassifyPriority maps a free-text priority label onto exactly one
// severity bucket. The substring match is case-sensitive; an absent label
// classifies as Minor while the raw label stays available for display.
func ClassifyPriority(label string) Priority {
	if strings.Contains(label, "CRITICAL") || strings.Contains(label, "HIGH") {
		return PriorityCritical
	}
	if strings.Contains(label, "MEDIUM") {
		return PrioritySerious
	}
	return PriorityMinor
}

// ResolveCategory returns the issue's display category. When the backend
// sent none, the legacy is_vision flag decides between visual and syntax.
// Unrecognized category strings pass through; styling falls back to the
// syntax bucket for them.
func ResolveCategory(iss Issue) string {
	if iss.Category != "" {
		return iss.Category
	}
	if iss.IsVision {
		return CategoryVisual
	}
	return CategorySyntax
}

// CategoryCounts are the five headline counters of the issue browser.
// Total mirrors the backend summary; the four category counts are derived
// from the issue list itself and may legitimately disagree with Total.
type CategoryCounts struct {
	Total       int
	Syntax      int
	Visual      int
	Semantic    int
	Interaction int
}

// CountCategories computes the counters in a single linear scan.
func CountCategories(result *AuditResult) CategoryCounts {
	counts := CategoryCounts{Total: result.Summary.Total}
	for _, iss := range result.Issues {
		// The four filters mirror the issue browser's metric cards and are
		// intentionally not exclusive: a vision-flagged issue with an
		// explicit non-visual category counts in both buckets.
		if iss.Category == CategorySyntax || (iss.Category == "" && !iss.IsVision) {
			counts.Syntax++
		}
		if iss.Category == CategoryVisual || iss.IsVision {
			counts.Visual++
		}
		if iss.Category == CategorySemantic {
			counts.Semantic++
		}
		if iss.Category == CategoryInteraction {
			counts.Interaction++
		}
	}
	return counts
}
