package reporting

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/a11ysutra/a11ysutra-cli/internal/report"
)

// Color scheme - slate brand palette
var (
	colorBrand      = [3]int{15, 23, 42}    // slate-900 banner and table header
	colorBodyText   = [3]int{51, 65, 85}    // slate-700
	colorMutedText  = [3]int{150, 150, 150} // footer gray
	colorBannerSub  = [3]int{200, 200, 200} // banner subtitle
	colorTableAlt   = [3]int{248, 250, 252} // alternating row
	colorIssueBar   = [3]int{241, 245, 249} // slate-100 issue header bar
	colorAIFill     = [3]int{240, 253, 244} // green-50 AI panel
	colorAIBorder   = [3]int{187, 247, 208} // green-200
	colorAITitle    = [3]int{21, 128, 61}   // green-700
	colorAIText     = [3]int{22, 101, 52}   // green-800
	colorGridLine   = [3]int{220, 220, 220}
	colorTableWhite = [3]int{255, 255, 255}
)

// Layout thresholds, in mm from the top of an A4 page. The findings
// section forces a page break when less room than these remain.
const (
	sideMargin      = 14.0
	bodyLineHeight  = 4.0
	codeLineHeight  = 3.5
	sectionMinRoom  = 40.0 // before the findings heading
	issueMinRoom    = 60.0 // before each issue header bar
	aiPanelMinRoom  = 50.0 // before the AI sub-panel
	tableBottomRoom = 25.0
)

// Summary table column widths, fixed ratios carried over from the hosted
// report exporter.
var tableColWidths = [5]float64{35, 60, 20, 25, 40}

var tableHeaders = [5]string{"Violated Rule", "Description", "Priority", "WCAG Criteria", "Selector"}

// PDFGenerator serializes an AuditResult into a paginated document.
type PDFGenerator struct {
	// Clock supplies the generation timestamp; tests pin it.
	Clock func() time.Time
}

// NewPDFGenerator creates a new PDF generator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{Clock: time.Now}
}

// Generate creates the PDF report. A nil result is a silent no-op: no
// document, no error.
func (g *PDFGenerator) Generate(data *report.AuditResult) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	g.writeHeaderBand(pdf, pageWidth)

	y := 55.0
	y = g.writeExecutiveSummary(pdf, data, y)

	// The table owns the footer from here on: page 1 gets its footer when
	// the table starts, continuation pages when they are added.
	g.addFooter(pdf, pageWidth, pageHeight)
	y = g.writeSummaryTable(pdf, data, y, pageWidth, pageHeight)

	g.writeFindings(pdf, data, y, pageWidth, pageHeight)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

// writeHeaderBand draws the fixed-height title banner, page 1 only.
func (g *PDFGenerator) writeHeaderBand(pdf *fpdf.Fpdf, pageWidth float64) {
	pdf.SetFillColor(colorBrand[0], colorBrand[1], colorBrand[2])
	pdf.Rect(0, 0, pageWidth, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(sideMargin, 20, "Ay11Sutra Audit Report")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(colorBannerSub[0], colorBannerSub[1], colorBannerSub[2])
	pdf.Text(sideMargin, 30, "Generated on: "+g.Clock().Format("1/2/2006, 3:04:05 PM"))
}

// writeExecutiveSummary writes the labeled numeric block. The
// critical-or-serious count here is recomputed by scanning priority labels
// rather than taken from the backend summary; the two can disagree and the
// divergence is shipped behavior.
func (g *PDFGenerator) writeExecutiveSummary(pdf *fpdf.Fpdf, data *report.AuditResult, y float64) float64 {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(sideMargin, y, "Executive Summary")
	y += 8

	criticalCount, autoFixable := executiveCounts(data.Issues)

	targetURL := data.SourceURL
	if targetURL == "" {
		targetURL = "N/A"
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(sideMargin, y, "Target URL: "+targetURL)
	y += 6
	pdf.Text(sideMargin, y, fmt.Sprintf("Total Issues Found: %d", data.Summary.Total))
	y += 6
	pdf.Text(sideMargin, y, fmt.Sprintf("Critical/Serious Issues: %d", criticalCount))
	y += 6
	pdf.Text(sideMargin, y, fmt.Sprintf("AI-Fixable Issues: %d", autoFixable))
	y += 15

	return y
}

// writeSummaryTable draws one row per issue with wrapped cells, repeating
// the header row on every continuation page. Returns the Y below the final
// row.
func (g *PDFGenerator) writeSummaryTable(pdf *fpdf.Fpdf, data *report.AuditResult, y float64, pageWidth, pageHeight float64) float64 {
	y = g.drawTableHeader(pdf, y)

	fill := false
	for _, iss := range data.Issues {
		cells := summaryRow(iss)

		// Measure the row: tallest wrapped cell wins
		pdf.SetFont("Helvetica", "", 9)
		lines := make([][]string, len(cells))
		maxLines := 1
		for i, cell := range cells {
			lines[i] = pdf.SplitText(cell, tableColWidths[i]-2)
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}
		rowHeight := float64(maxLines)*bodyLineHeight + 2

		if y+rowHeight > pageHeight-tableBottomRoom {
			pdf.AddPage()
			g.addFooter(pdf, pageWidth, pageHeight)
			y = g.drawTableHeader(pdf, 20)
			pdf.SetFont("Helvetica", "", 9)
		}

		if fill {
			pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		} else {
			pdf.SetFillColor(colorTableWhite[0], colorTableWhite[1], colorTableWhite[2])
		}
		pdf.SetDrawColor(colorGridLine[0], colorGridLine[1], colorGridLine[2])
		pdf.SetTextColor(colorBodyText[0], colorBodyText[1], colorBodyText[2])

		x := sideMargin
		for i := range cells {
			pdf.Rect(x, y, tableColWidths[i], rowHeight, "FD")
			for j, line := range lines[i] {
				pdf.Text(x+1, y+4+float64(j)*bodyLineHeight, line)
			}
			x += tableColWidths[i]
		}

		y += rowHeight
		fill = !fill
	}

	return y
}

func (g *PDFGenerator) drawTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	const headerHeight = 8.0

	pdf.SetFillColor(colorBrand[0], colorBrand[1], colorBrand[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)

	x := sideMargin
	for i, header := range tableHeaders {
		pdf.Rect(x, y, tableColWidths[i], headerHeight, "F")
		pdf.Text(x+1, y+5.5, header)
		x += tableColWidths[i]
	}
	return y + headerHeight
}

// executiveCounts rescans the issue list for the executive summary block:
// priority labels containing "CRIT" or "HIGH" count as critical-or-serious,
// issues carrying fixed code count as AI-fixable. The rescan is independent
// of the backend's summary.critical and the two can disagree.
func executiveCounts(issues []report.Issue) (criticalOrSerious, autoFixable int) {
	for _, iss := range issues {
		if strings.Contains(iss.FixPriority, "CRIT") || strings.Contains(iss.FixPriority, "HIGH") {
			criticalOrSerious++
		}
		if iss.AIFixedCode != "" {
			autoFixable++
		}
	}
	return criticalOrSerious, autoFixable
}

// summaryRow maps one issue onto the five table cells with the table's
// display defaults.
func summaryRow(iss report.Issue) [5]string {
	priority := iss.FixPriority
	if priority == "" {
		priority = "Medium"
	}
	wcag := iss.WCAGCriterion
	if wcag == "" {
		wcag = "N/A"
	}
	selector := "N/A"
	if iss.Selector != "" {
		selector = iss.Selector
		if runes := []rune(selector); len(runes) > 40 {
			selector = string(runes[:40])
		}
		selector += "..."
	}
	return [5]string{iss.Rule, iss.Description, priority, wcag, selector}
}

// writeFindings renders the detailed findings section with its two
// page-break thresholds: one before each issue header, a larger one before
// the AI sub-panel.
func (g *PDFGenerator) writeFindings(pdf *fpdf.Fpdf, data *report.AuditResult, y float64, pageWidth, pageHeight float64) {
	y += 20

	if y > pageHeight-sectionMinRoom {
		pdf.AddPage()
		g.addFooter(pdf, pageWidth, pageHeight)
		y = 20
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(colorBrand[0], colorBrand[1], colorBrand[2])
	pdf.Text(sideMargin, y, "Detailed Findings & AI Remediation")
	y += 10

	for i, iss := range data.Issues {
		if y > pageHeight-issueMinRoom {
			pdf.AddPage()
			g.addFooter(pdf, pageWidth, pageHeight)
			y = 20
		}

		// Issue header bar
		pdf.SetFillColor(colorIssueBar[0], colorIssueBar[1], colorIssueBar[2])
		pdf.Rect(sideMargin, y, pageWidth-2*sideMargin, 8, "F")

		priority := iss.FixPriority
		if priority == "" {
			priority = "MEDIUM"
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(colorBrand[0], colorBrand[1], colorBrand[2])
		pdf.Text(sideMargin+4, y+5.5, fmt.Sprintf("Issue #%d: %s (%s)", i+1, iss.Rule, priority))
		y += 12

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorBodyText[0], colorBodyText[1], colorBodyText[2])

		descLines := pdf.SplitText("Description: "+iss.Description, pageWidth-2*sideMargin)
		y = drawLines(pdf, descLines, sideMargin, y, bodyLineHeight)
		y += 2

		selector := iss.Selector
		if selector == "" {
			selector = "N/A"
		}
		selectorLines := pdf.SplitText("Selector: "+selector, pageWidth-2*sideMargin)
		y = drawLines(pdf, selectorLines, sideMargin, y, bodyLineHeight)
		y += 4

		if iss.AIExplanation != "" || iss.AIFixedCode != "" {
			if y > pageHeight-aiPanelMinRoom {
				pdf.AddPage()
				g.addFooter(pdf, pageWidth, pageHeight)
				y = 20
			}
			y = g.writeAIPanel(pdf, iss, y, pageWidth)
		} else {
			y += 5
		}
	}
}

// writeAIPanel draws the bordered AI insight sub-panel. Content is
// measured first so the fill and border enclose exactly the measured
// height; the box is never a fixed size.
func (g *PDFGenerator) writeAIPanel(pdf *fpdf.Fpdf, iss report.Issue, y float64, pageWidth float64) float64 {
	boxX := sideMargin
	boxWidth := pageWidth - 2*sideMargin
	innerWidth := pageWidth - 2*sideMargin - 8

	// Measure pass
	pdf.SetFont("Helvetica", "", 9)
	var explainLines []string
	if iss.AIExplanation != "" {
		explainLines = pdf.SplitText(iss.AIExplanation, innerWidth)
	}
	pdf.SetFont("Courier", "", 8)
	var codeLines []string
	if iss.AIFixedCode != "" {
		codeLines = pdf.SplitText(iss.AIFixedCode, innerWidth)
	}

	boxHeight := 13.0 // panel padding plus title line
	if len(explainLines) > 0 {
		boxHeight += float64(len(explainLines))*bodyLineHeight + 4
	}
	if len(codeLines) > 0 {
		boxHeight += float64(len(codeLines))*codeLineHeight + 6
	}

	// Fill, then content, then border
	pdf.SetFillColor(colorAIFill[0], colorAIFill[1], colorAIFill[2])
	pdf.Rect(boxX, y, boxWidth, boxHeight, "F")

	innerY := y + 5
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(colorAITitle[0], colorAITitle[1], colorAITitle[2])
	pdf.Text(boxX+4, innerY+3, "AI Insight & Solution")
	innerY += 8

	if len(explainLines) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorAIText[0], colorAIText[1], colorAIText[2])
		innerY = drawLines(pdf, explainLines, boxX+4, innerY, bodyLineHeight)
		innerY += 4
	}

	if len(codeLines) > 0 {
		// Code block on white inside the panel
		pdf.SetFillColor(255, 255, 255)
		pdf.Rect(boxX+4, innerY-2, innerWidth, float64(len(codeLines))*codeLineHeight+4, "F")

		pdf.SetFont("Courier", "", 8)
		pdf.SetTextColor(0, 0, 0)
		drawLines(pdf, codeLines, boxX+6, innerY+2, codeLineHeight)
		innerY += float64(len(codeLines))*codeLineHeight + 6
	}

	pdf.SetDrawColor(colorAIBorder[0], colorAIBorder[1], colorAIBorder[2])
	pdf.Rect(boxX, y, boxWidth, boxHeight, "D")

	return y + boxHeight + 10
}

// addFooter draws the running page footer: report title, page number, and
// the generation date.
func (g *PDFGenerator) addFooter(pdf *fpdf.Fpdf, pageWidth, pageHeight float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(colorMutedText[0], colorMutedText[1], colorMutedText[2])
	pdf.Text(sideMargin, pageHeight-10, fmt.Sprintf("Ay11Sutra Accessibility Report - Page %d", pdf.PageNo()))
	pdf.Text(pageWidth-30, pageHeight-10, g.Clock().Format("1/2/2006"))
}

// drawLines writes wrapped lines top-down and returns the Y after the
// final line.
func drawLines(pdf *fpdf.Fpdf, lines []string, x, y, lineHeight float64) float64 {
	for i, line := range lines {
		pdf.Text(x, y+float64(i)*lineHeight, line)
	}
	return y + float64(len(lines))*lineHeight
}
