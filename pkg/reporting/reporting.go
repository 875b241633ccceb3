package reporting

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/a11ysutra/a11ysutra-cli/internal/report"
)

// ReportFormat represents the output format of a report
type ReportFormat string

const (
	FormatPDF ReportFormat = "pdf"
)

// Engine defines the interface for report generation.
type Engine interface {
	Generate(result *report.AuditResult) ([]byte, error)
}

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Filename derives the deterministic download name for an exported report:
// scheme stripped, every character outside [A-Za-z0-9_-] replaced with an
// underscore, slug truncated to 30 characters, local date appended.
func Filename(sourceURL string, now time.Time) string {
	slug := strings.TrimPrefix(sourceURL, "https://")
	slug = strings.TrimPrefix(slug, "http://")
	slug = slugPattern.ReplaceAllString(slug, "_")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	return fmt.Sprintf("Ay11Sutra_Report_%s_%s.pdf", slug, now.Format("2006-01-02"))
}
