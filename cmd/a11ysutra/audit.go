package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
	"github.com/a11ysutra/a11ysutra-cli/internal/report"
	"github.com/a11ysutra/a11ysutra-cli/internal/validate"
	"github.com/a11ysutra/a11ysutra-cli/pkg/reporting"
)

var (
	auditExportPDF bool
	auditExpand    bool
	auditOutputDir string
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Scan a URL for accessibility issues",
	Long:  `Submits a URL to the audit service for WCAG 2.1/2.2 evaluation and renders the resulting violation report. The URL is validated locally (including its domain extension) before any request is made.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		// Validation rejects bad input before any network call
		auditURL, err := validate.AuditURL(args[0])
		if err != nil {
			return apperrors.WrapValidationError("audit", err)
		}

		ui.Info("Scanning %s for accessibility issues...", auditURL)

		raw, err := apiClient.RunAudit(cmd.Context(), auditURL)
		if err != nil {
			if apperrors.IsAuthError(err) {
				return fmt.Errorf("session expired - run 'a11ysutra login' again")
			}
			return err
		}

		result, err := report.Normalize(raw, auditURL)
		if err != nil {
			return err
		}

		fmt.Fprint(ui.Out, report.Render(result, report.RenderOptions{Expanded: auditExpand}))

		if auditExportPDF {
			return exportPDF(result, auditOutputDir)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditExportPDF, "pdf", false, "Also export the report as PDF")
	auditCmd.Flags().BoolVar(&auditExpand, "expand", false, "Expand every issue's violation and solution details")
	auditCmd.Flags().StringVar(&auditOutputDir, "output", ".", "Directory for exported PDF files")
}

// exportPDF writes the composed document next to the caller. A nil result
// produces no file and no error.
func exportPDF(result *report.AuditResult, dir string) error {
	gen := reporting.NewPDFGenerator()
	data, err := gen.Generate(result)
	if err != nil {
		return fmt.Errorf("compose PDF: %w", err)
	}
	if data == nil {
		return nil
	}

	name := reporting.Filename(result.SourceURL, time.Now())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("PDF exported")
	ui.Success("Report exported to %s", path)
	return nil
}
