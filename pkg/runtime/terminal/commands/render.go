package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/med-tools/clinreport/pkg/services/export"
	"github.com/med-tools/clinreport/pkg/services/pdf"
)

type RenderCmd struct {
	inputPath  string
	outputPath string
	configPath string
}

func NewRenderCmd() *cobra.Command {
	rc := &RenderCmd{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report JSON file into a PDF document",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.inputPath, "input", "", "Path to the report JSON file")
	cmd.Flags().StringVar(&rc.outputPath, "output", "", "Output PDF path (defaults to <report-type>-report-<date>.pdf)")
	cmd.Flags().StringVar(&rc.configPath, "render-config", "", "Path to a YAML render profile")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, _ []string) error {
	report, err := loadReport(rc.inputPath)
	if err != nil {
		return err
	}

	opts, err := renderOptions(rc.configPath)
	if err != nil {
		return err
	}

	blob, err := pdf.Generate(report, opts)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	output := rc.outputPath
	if output == "" {
		output = export.DefaultFilename(report.ReportType, report.GeneratedDate)
	}

	if err := export.SaveFile(output, blob); err != nil {
		return err
	}

	cmd.Printf("report written to %s\n", output)
	return nil
}
