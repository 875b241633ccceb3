package main

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
	"github.com/a11ysutra/a11ysutra-cli/internal/report"
)

var (
	reportExportPDF bool
	reportExpand    bool
	reportOutputDir string
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "View a stored audit report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		raw, err := apiClient.GetAudit(cmd.Context(), args[0])
		if err != nil {
			if apperrors.IsAuthError(err) {
				return fmt.Errorf("session expired - run 'a11ysutra login' again")
			}
			return err
		}

		result, err := report.Normalize(raw, "")
		if err != nil {
			return err
		}

		fmt.Fprint(ui.Out, report.Render(result, report.RenderOptions{Expanded: reportExpand}))

		if reportExportPDF {
			return exportPDF(result, reportOutputDir)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportExportPDF, "pdf", false, "Also export the report as PDF")
	reportCmd.Flags().BoolVar(&reportExpand, "expand", false, "Expand every issue's violation and solution details")
	reportCmd.Flags().StringVar(&reportOutputDir, "output", ".", "Directory for exported PDF files")
}
