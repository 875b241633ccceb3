package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Badge styles, one per priority and category bucket.
var (
	styleBadgeCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleBadgeSerious  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	styleBadgeMinor    = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)

	styleCatSyntax      = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleCatVisual      = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	styleCatSemantic    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	styleCatInteraction = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	styleRule    = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHeading = lipgloss.NewStyle().Bold(true).Underline(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	styleAIPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("40")).
			Padding(0, 1)
)

// RenderOptions controls the issue browser output.
type RenderOptions struct {
	// Expanded renders every issue's violation and solution panels; the
	// collapsed form shows only the badge row per issue.
	Expanded bool
	// Width bounds panel wrapping. Zero means the default width.
	Width int
}

const defaultRenderWidth = 100

// Render produces the interactive issue browser view as styled terminal
// text. It is a pure function of the normalized result.
func Render(result *AuditResult, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = defaultRenderWidth
	}

	var b strings.Builder

	b.WriteString(styleHeading.Render("Audit Report"))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(result.SourceURL))
	b.WriteString("\n\n")

	writeMetrics(&b, result)
	b.WriteString("\n")

	if len(result.Issues) == 0 {
		// Success empty state, distinct from the malformed-payload error path
		b.WriteString(styleSuccess.Render("No issues found!"))
		b.WriteString("\n")
		b.WriteString("This page passed all accessibility checks.\n")
		return b.String()
	}

	b.WriteString(styleHeading.Render("Issues & Remediation"))
	b.WriteString("\n\n")

	for i, iss := range result.Issues {
		writeIssueRow(&b, i, iss)
		if opts.Expanded {
			writeIssueDetail(&b, iss, width)
		}
	}

	return b.String()
}

func writeMetrics(b *strings.Builder, result *AuditResult) {
	counts := CountCategories(result)
	fmt.Fprintf(b, "Total Issues: %d    Syntax (Axe): %d    Visual AI: %d    Semantics: %d    Interaction: %d\n",
		counts.Total, counts.Syntax, counts.Visual, counts.Semantic, counts.Interaction)
}

func writeIssueRow(b *strings.Builder, idx int, iss Issue) {
	fmt.Fprintf(b, "%3d. %s %s %s\n", idx+1,
		PriorityBadge(iss), CategoryBadge(iss), styleRule.Render(iss.Rule))
	b.WriteString("     " + firstLine(iss.Description) + "\n")
}

func writeIssueDetail(b *strings.Builder, iss Issue, width int) {
	var violation strings.Builder
	violation.WriteString("THE VIOLATION\n")

	criterion := iss.WCAGCriterion
	if criterion == "" {
		criterion = "N/A"
	}
	fmt.Fprintf(&violation, "WCAG Criteria: %s\n", criterion)
	fmt.Fprintf(&violation, "Selector: %s\n", DisplaySelector(iss.Selector))

	snippet := iss.HTMLSnippet
	if snippet == "" {
		snippet = "Code not available"
	}
	violation.WriteString("Detected Source:\n" + snippet)

	b.WriteString(indent(stylePanel.Width(width-6).Render(violation.String()), "     "))
	b.WriteString("\n")

	var solution strings.Builder
	solution.WriteString("AI SOLUTION\n")
	if iss.AIExplanation == "" {
		solution.WriteString(styleMuted.Render("No AI explanation available."))
	} else {
		solution.WriteString(iss.AIExplanation)
		if iss.AIFixedCode != "" {
			solution.WriteString("\n\nFIXED:\n" + iss.AIFixedCode)
		}
	}

	b.WriteString(indent(styleAIPanel.Width(width-6).Render(solution.String()), "     "))
	b.WriteString("\n\n")
}

// PriorityBadge renders the severity badge for one issue. It depends only
// on the issue itself.
func PriorityBadge(iss Issue) string {
	switch ClassifyPriority(iss.FixPriority) {
	case PriorityCritical:
		return styleBadgeCritical.Render("[Critical]")
	case PrioritySerious:
		return styleBadgeSerious.Render("[Serious]")
	default:
		return styleBadgeMinor.Render("[Minor]")
	}
}

// CategoryBadge renders the category badge for one issue. Unrecognized
// categories keep their own label but take the syntax style bucket.
func CategoryBadge(iss Issue) string {
	category := ResolveCategory(iss)

	label := strings.ToUpper(category[:1]) + category[1:]
	if category == CategorySyntax {
		label = "Code"
	}

	style := styleCatSyntax
	switch category {
	case CategoryVisual:
		style = styleCatVisual
	case CategorySemantic:
		style = styleCatSemantic
	case CategoryInteraction:
		style = styleCatInteraction
	}
	return style.Render("[" + label + "]")
}

// DisplaySelector truncates a selector for the interactive view: the first
// 60 characters with an ellipsis appended unconditionally, "N/A" when the
// selector is absent. The PDF summary table truncates differently; the two
// widths are kept as shipped.
func DisplaySelector(selector string) string {
	display := selector
	if runes := []rune(display); len(runes) > 60 {
		display = string(runes[:60])
	}
	if display == "" {
		display = "N/A"
	}
	return display + "..."
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
