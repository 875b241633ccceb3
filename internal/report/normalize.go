package report

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
)

// MalformedPayloadError reports a backend response that cannot be
// normalized: a missing summary, a missing issue list, or an issue list
// that is not list-shaped. It is distinct from an empty report, which is a
// valid AuditResult with zero issues.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return "malformed audit payload: " + e.Reason
}

// Is lets callers match against the package-level sentinel.
func (e *MalformedPayloadError) Is(target error) bool {
	return target == apperrors.ErrMalformedPayload
}

// rawIssue covers the union of both wire shapes. The fresh-audit shape
// carries fix_priority; the stored-audit shape carries priority instead.
type rawIssue struct {
	Rule          string `json:"rule"`
	Description   string `json:"description"`
	WCAGSC        string `json:"wcag_sc"`
	FixPriority   string `json:"fix_priority"`
	Priority      string `json:"priority"`
	Selector      string `json:"selector"`
	HTMLSnippet   string `json:"html_snippet"`
	AIExplanation string `json:"ai_explanation"`
	AIFixedCode   string `json:"ai_fixed_code"`
	Category      string `json:"category"`
	IsVision      bool   `json:"is_vision"`
}

type rawSummary struct {
	Total           int    `json:"total"`
	Critical        int    `json:"critical"`
	Serious         int    `json:"serious"`
	Minor           int    `json:"minor"`
	IndiaCompliance string `json:"india_compliance"`
	Status          string `json:"status"`
}

type rawPayload struct {
	Summary *rawSummary      `json:"summary"`
	Report  *json.RawMessage `json:"report"`
	Issues  *json.RawMessage `json:"issues"`
	URL     string           `json:"url"`
	Total   *int             `json:"total_issues"`
}

// Normalize maps a raw backend payload in either known shape onto the
// canonical AuditResult. Field renames are 1:1; no values are transformed
// and issue order is preserved. sourceURL applies when the payload itself
// carries no url field (the fresh-audit shape).
func Normalize(data []byte, sourceURL string) (*AuditResult, error) {
	var payload rawPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &MalformedPayloadError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	switch {
	case payload.Report != nil:
		return normalizeFresh(&payload, sourceURL)
	case payload.Issues != nil:
		return normalizeStored(&payload, sourceURL)
	default:
		return nil, &MalformedPayloadError{Reason: "no issue list present"}
	}
}

// normalizeFresh handles the POST /audit response shape.
func normalizeFresh(payload *rawPayload, sourceURL string) (*AuditResult, error) {
	if payload.Summary == nil {
		return nil, &MalformedPayloadError{Reason: "summary missing"}
	}

	issues, err := decodeIssueList(*payload.Report)
	if err != nil {
		return nil, err
	}

	result := &AuditResult{
		Summary: AuditSummary{
			Total:           payload.Summary.Total,
			Critical:        payload.Summary.Critical,
			Serious:         payload.Summary.Serious,
			Minor:           payload.Summary.Minor,
			ComplianceLabel: payload.Summary.IndiaCompliance,
			Status:          payload.Summary.Status,
		},
		SourceURL: sourceURL,
	}
	if payload.URL != "" {
		result.SourceURL = payload.URL
	}

	for _, raw := range issues {
		result.Issues = append(result.Issues, Issue{
			Rule:          raw.Rule,
			Description:   raw.Description,
			WCAGCriterion: raw.WCAGSC,
			FixPriority:   raw.FixPriority,
			Selector:      raw.Selector,
			HTMLSnippet:   raw.HTMLSnippet,
			AIExplanation: raw.AIExplanation,
			AIFixedCode:   raw.AIFixedCode,
			Category:      raw.Category,
			IsVision:      raw.IsVision,
		})
	}
	return result, nil
}

// normalizeStored handles the GET /audits/{id} response shape. Stored
// audits carry no per-severity summary, so one is synthesized the way the
// report viewer always has: total_issues plus neutral placeholders.
func normalizeStored(payload *rawPayload, sourceURL string) (*AuditResult, error) {
	if payload.Total == nil {
		return nil, &MalformedPayloadError{Reason: "summary missing"}
	}

	issues, err := decodeIssueList(*payload.Issues)
	if err != nil {
		return nil, err
	}

	result := &AuditResult{
		Summary: AuditSummary{
			Total:           *payload.Total,
			ComplianceLabel: "Unknown",
			Status:          "completed",
		},
		SourceURL: payload.URL,
	}
	if result.SourceURL == "" {
		result.SourceURL = sourceURL
	}

	for _, raw := range issues {
		result.Issues = append(result.Issues, Issue{
			Rule:          raw.Rule,
			Description:   raw.Description,
			WCAGCriterion: raw.WCAGSC,
			FixPriority:   raw.Priority,
			Selector:      raw.Selector,
			HTMLSnippet:   raw.HTMLSnippet,
			AIExplanation: raw.AIExplanation,
			AIFixedCode:   raw.AIFixedCode,
			Category:      raw.Category,
			IsVision:      raw.IsVision,
		})
	}
	return result, nil
}

func decodeIssueList(raw json.RawMessage) ([]rawIssue, error) {
	var issues []rawIssue
	if err := json.Unmarshal(raw, &issues); err != nil {
		return nil, &MalformedPayloadError{Reason: "issue list is not list-shaped"}
	}
	if issues == nil {
		return nil, &MalformedPayloadError{Reason: "issue list is null"}
	}
	return issues, nil
}
